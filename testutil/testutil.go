package testutil

import (
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"trivia/auth"
	"trivia/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const JWTSecret = "test-secret"

var dbCounter atomic.Int64

// OpenTestDB opens a private in-memory SQLite database with every model
// migrated. The database is closed via t.Cleanup.
func OpenTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, dbCounter.Add(1))

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("test db handle: %v", err)
	}
	// One connection keeps the shared in-memory database alive and avoids
	// shared-cache table locks between pooled connections.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(models.All()...); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

// SeedCategories inserts categories by name and returns them with ids set.
func SeedCategories(t *testing.T, db *gorm.DB, names ...string) []models.Category {
	t.Helper()
	categories := make([]models.Category, 0, len(names))
	for _, name := range names {
		categories = append(categories, models.Category{Type: name})
	}
	if err := db.Create(&categories).Error; err != nil {
		t.Fatalf("seed categories: %v", err)
	}
	return categories
}

// SeedQuestions inserts n questions in category, numbered from 1.
func SeedQuestions(t *testing.T, db *gorm.DB, category uint, n int) []models.Question {
	t.Helper()
	questions := make([]models.Question, 0, n)
	for i := 1; i <= n; i++ {
		questions = append(questions, models.Question{
			Question:   fmt.Sprintf("Question %d of category %d?", i, category),
			Answer:     fmt.Sprintf("Answer %d", i),
			Category:   category,
			Difficulty: 1 + i%5,
		})
	}
	if n > 0 {
		if err := db.Create(&questions).Error; err != nil {
			t.Fatalf("seed questions: %v", err)
		}
	}
	return questions
}

// NewRedis starts an in-process Redis server for the duration of the test.
func NewRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

// SignToken returns an HS256 token signed with JWTSecret.
func SignToken(t *testing.T, subject string, permissions ...string) string {
	t.Helper()
	tok, _, err := auth.NewIssuer(JWTSecret, time.Hour, "", "").Issue(subject, permissions)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return tok
}

// NewVerifier returns a verifier accepting tokens from SignToken.
func NewVerifier(t *testing.T) *auth.Verifier {
	t.Helper()
	v, err := auth.NewVerifier(auth.VerifierConfig{Secret: JWTSecret})
	if err != nil {
		t.Fatalf("new verifier: %v", err)
	}
	return v
}
