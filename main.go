package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"trivia/auth"
	"trivia/config"
	"trivia/handlers"
	"trivia/models"
	"trivia/routes"
	"trivia/services"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Invalid configuration:", err)
	}
	log.Printf("Starting with %s", cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize database
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Auto-migrate database models
	if err := db.AutoMigrate(models.All()...); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Initialize Redis
	redisClient := config.InitRedis(cfg)
	if redisClient != nil {
		defer redisClient.Close()
	}

	verifier, err := newVerifier(cfg)
	if err != nil {
		log.Fatal("Failed to configure token verification:", err)
	}

	// Initialize services
	categoryService := services.NewCategoryService(db, redisClient, cfg.CategoryCacheTTL)
	if err := categoryService.SeedDefaults(ctx); err != nil {
		log.Fatal("Failed to seed categories:", err)
	}
	questionService := services.NewQuestionService(db, categoryService)
	quizService := services.NewQuizService(db, categoryService)
	drinkService := services.NewDrinkService(db)

	// Initialize WebSocket hub
	hub := services.NewHub()
	go hub.Run(ctx)

	// Initialize handlers
	h := routes.Handlers{
		Category: handlers.NewCategoryHandler(categoryService, questionService),
		Question: handlers.NewQuestionHandler(questionService, categoryService, hub),
		Quiz:     handlers.NewQuizHandler(quizService),
		Drink:    handlers.NewDrinkHandler(drinkService, hub),
		WS:       handlers.NewWSHandler(hub, cfg.CORSOrigins),
	}
	if !cfg.UsesExternalAuthority() {
		issuer := auth.NewIssuer(cfg.JWTSecret, cfg.TokenTTL, cfg.AuthIssuer, cfg.AuthAudience)
		authService := services.NewAuthService(db, issuer)
		if err := seedAccounts(ctx, authService, cfg); err != nil {
			log.Fatal("Failed to seed accounts:", err)
		}
		h.Auth = handlers.NewAuthHandler(authService)
	}

	// Setup Gin router
	router := routes.NewRouter(cfg.CORSOrigins)
	routes.SetupRoutes(router, h, verifier)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Server starting on %s", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server:", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown: %v", err)
	}
}

func newVerifier(cfg *config.Config) (*auth.Verifier, error) {
	vc := auth.VerifierConfig{
		Secret:   cfg.JWTSecret,
		Issuer:   cfg.AuthIssuer,
		Audience: cfg.AuthAudience,
	}
	if cfg.UsesExternalAuthority() {
		pem, err := os.ReadFile(cfg.AuthPublicKeyFile)
		if err != nil {
			return nil, fmt.Errorf("read public key: %w", err)
		}
		vc.PublicKeyPEM = pem
	}
	return auth.NewVerifier(vc)
}

// seedAccounts creates the development barista and manager logins for every
// password that is configured.
func seedAccounts(ctx context.Context, authService *services.AuthService, cfg *config.Config) error {
	seeds := []struct {
		username, password, role string
	}{
		{"barista", cfg.SeedBaristaPassword, models.RoleBarista},
		{"manager", cfg.SeedManagerPassword, models.RoleManager},
	}
	for _, s := range seeds {
		if s.password == "" {
			continue
		}
		if _, err := authService.EnsureAccount(ctx, s.username, s.password, s.role); err != nil {
			return err
		}
		log.Printf("Seeded %s account %q", s.role, s.username)
	}
	return nil
}
