package routes

import (
	"trivia/auth"
	"trivia/handlers"
	"trivia/middleware"
	"trivia/services"

	"github.com/gin-gonic/gin"
)

type Handlers struct {
	Category *handlers.CategoryHandler
	Question *handlers.QuestionHandler
	Quiz     *handlers.QuizHandler
	Drink    *handlers.DrinkHandler
	WS       *handlers.WSHandler
	// Auth is nil when tokens come from an external identity provider.
	Auth *handlers.AuthHandler
}

// NewRouter returns a gin engine with the shared middleware and the JSON
// error envelope for unknown routes, methods and panics.
func NewRouter(corsOrigins []string) *gin.Engine {
	router := gin.New()
	router.HandleMethodNotAllowed = true

	router.Use(middleware.RequestID())
	router.Use(gin.Logger())
	router.Use(gin.CustomRecovery(handlers.Recover))
	router.Use(middleware.CORS(corsOrigins))

	router.NoRoute(handlers.NotFound)
	router.NoMethod(handlers.MethodNotAllowed)
	return router
}

func SetupRoutes(router *gin.Engine, h Handlers, verifier *auth.Verifier) {
	// Trivia routes (public)
	router.GET("/categories", h.Category.GetCategories)
	router.GET("/categories/:id/questions", h.Category.GetCategoryQuestions)

	router.GET("/questions", h.Question.GetQuestions)
	router.POST("/questions", h.Question.PostQuestions)
	router.DELETE("/questions/:id", h.Question.DeleteQuestion)

	router.POST("/quizzes", h.Quiz.NextQuestion)

	// Coffee shop routes
	router.GET("/drinks", h.Drink.GetDrinks)
	router.GET("/drinks-detail",
		middleware.RequirePermission(verifier, services.PermGetDrinksDetail), h.Drink.GetDrinksDetail)
	router.POST("/drinks",
		middleware.RequirePermission(verifier, services.PermPostDrinks), h.Drink.CreateDrink)
	router.PATCH("/drinks/:id",
		middleware.RequirePermission(verifier, services.PermPatchDrinks), h.Drink.UpdateDrink)
	router.DELETE("/drinks/:id",
		middleware.RequirePermission(verifier, services.PermDeleteDrinks), h.Drink.DeleteDrink)

	if h.Auth != nil {
		router.POST("/auth/login", h.Auth.Login)
	}

	// WebSocket change feed
	router.GET("/ws/:topic", h.WS.Subscribe)

	// Health check endpoint
	router.GET("/health", handlers.Health)
}
