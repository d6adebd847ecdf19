package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type Config struct {
	Port        string
	BindAddress string

	DBDriver   string // postgres | sqlite
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPath     string // sqlite file

	RedisHost        string
	RedisPort        string
	RedisPassword    string
	CategoryCacheTTL time.Duration

	JWTSecret         string
	AuthPublicKeyFile string
	AuthIssuer        string
	AuthAudience      string
	TokenTTL          time.Duration

	CORSOrigins []string

	SeedBaristaPassword string
	SeedManagerPassword string
}

func Load() (*Config, error) {
	cacheTTL, err := getEnvDuration("CATEGORY_CACHE_TTL", 10*time.Minute)
	if err != nil {
		return nil, err
	}
	tokenTTL, err := getEnvDuration("TOKEN_TTL", 8*time.Hour)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Port:        getEnv("PORT", "5000"),
		BindAddress: getEnv("BIND_ADDRESS", "localhost"),

		DBDriver:   strings.ToLower(getEnv("DB_DRIVER", "postgres")),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBName:     getEnv("DB_NAME", "trivia"),
		DBPath:     getEnv("DB_PATH", "trivia.db"),

		RedisHost:        getEnv("REDIS_HOST", ""),
		RedisPort:        getEnv("REDIS_PORT", "6379"),
		RedisPassword:    getEnv("REDIS_PASSWORD", ""),
		CategoryCacheTTL: cacheTTL,

		JWTSecret:         getEnv("JWT_SECRET", ""),
		AuthPublicKeyFile: getEnv("AUTH_PUBLIC_KEY_FILE", ""),
		AuthIssuer:        getEnv("AUTH_ISSUER", ""),
		AuthAudience:      getEnv("AUTH_AUDIENCE", ""),
		TokenTTL:          tokenTTL,

		CORSOrigins: splitList(getEnv("CORS_ORIGINS", "*")),

		SeedBaristaPassword: getEnv("SEED_BARISTA_PASSWORD", ""),
		SeedManagerPassword: getEnv("SEED_MANAGER_PASSWORD", ""),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks settings that would otherwise fail late at request time.
func (c *Config) Validate() error {
	switch c.DBDriver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	if c.JWTSecret == "" && c.AuthPublicKeyFile == "" {
		return errors.New("either JWT_SECRET or AUTH_PUBLIC_KEY_FILE must be set")
	}
	if c.TokenTTL <= 0 {
		return errors.New("TOKEN_TTL must be positive")
	}
	return nil
}

// UsesExternalAuthority reports whether tokens are verified against an RSA key
// rather than the local shared secret.
func (c *Config) UsesExternalAuthority() bool {
	return c.AuthPublicKeyFile != ""
}

func (c *Config) Addr() string {
	return c.BindAddress + ":" + c.Port
}

// String masks secrets so the config can be logged at startup.
func (c *Config) String() string {
	db := c.DBPath
	if c.DBDriver == "postgres" {
		db = fmt.Sprintf("%s@%s:%s/%s", c.DBUser, c.DBHost, c.DBPort, c.DBName)
	}
	redisAddr := "disabled"
	if c.RedisHost != "" {
		redisAddr = c.RedisHost + ":" + c.RedisPort
	}
	return fmt.Sprintf("Config{Addr: %s, DB: %s(%s), Redis: %s, Auth: *** (masked) ***}",
		c.Addr(), c.DBDriver, db, redisAddr)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid integer for %s: %w", key, err)
	}
	return parsed, nil
}

// getEnvDuration accepts Go duration strings ("90s") or a bare number of seconds.
func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d, nil
	}
	seconds, err := getEnvInt(key, 0)
	if err != nil {
		return 0, fmt.Errorf("invalid duration for %s: %q", key, value)
	}
	return time.Duration(seconds) * time.Second, nil
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func InitDB(cfg *Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case "sqlite":
		dialector = sqlite.Open(cfg.DBPath)
	default:
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
			cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort)
		dialector = postgres.Open(dsn)
	}

	db, err := gorm.Open(dialector, &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}

// InitRedis returns nil when no Redis host is configured; callers treat a nil
// client as "cache disabled".
func InitRedis(cfg *Config) *redis.Client {
	if cfg.RedisHost == "" {
		log.Println("REDIS_HOST not set, category cache disabled")
		return nil
	}

	return redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.RedisHost, cfg.RedisPort),
		Password: cfg.RedisPassword,
		DB:       0,
	})
}
