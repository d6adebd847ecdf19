package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"trivia/models"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const categoriesCacheKey = "trivia:categories"

// DefaultCategories is the reference data seeded into an empty database.
var DefaultCategories = []string{"Science", "Art", "Geography", "History", "Entertainment", "Sports"}

type CategoryService struct {
	db    *gorm.DB
	redis *redis.Client
	ttl   time.Duration
}

// NewCategoryService builds the category store. A nil redis client disables
// caching.
func NewCategoryService(db *gorm.DB, redis *redis.Client, ttl time.Duration) *CategoryService {
	return &CategoryService{
		db:    db,
		redis: redis,
		ttl:   ttl,
	}
}

// Categories returns id -> type for every category.
func (s *CategoryService) Categories(ctx context.Context) (map[uint]string, error) {
	if cached := s.getCached(ctx); cached != nil {
		return cached, nil
	}

	var categories []models.Category
	if err := s.db.WithContext(ctx).Order("id").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("load categories: %w", err)
	}

	byID := make(map[uint]string, len(categories))
	for _, c := range categories {
		byID[c.ID] = c.Type
	}

	s.storeCached(ctx, byID)
	return byID, nil
}

func (s *CategoryService) Exists(ctx context.Context, id uint) (bool, error) {
	categories, err := s.Categories(ctx)
	if err != nil {
		return false, err
	}
	_, ok := categories[id]
	return ok, nil
}

// SeedDefaults inserts DefaultCategories when the table is empty.
func (s *CategoryService) SeedDefaults(ctx context.Context) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Category{}).Count(&count).Error; err != nil {
		return fmt.Errorf("count categories: %w", err)
	}
	if count > 0 {
		return nil
	}

	categories := make([]models.Category, 0, len(DefaultCategories))
	for _, name := range DefaultCategories {
		categories = append(categories, models.Category{Type: name})
	}
	if err := s.db.WithContext(ctx).Create(&categories).Error; err != nil {
		return fmt.Errorf("seed categories: %w", err)
	}

	log.Printf("Seeded %d categories", len(categories))
	s.Invalidate(ctx)
	return nil
}

func (s *CategoryService) Invalidate(ctx context.Context) {
	if s.redis == nil {
		return
	}
	if err := s.redis.Del(ctx, categoriesCacheKey).Err(); err != nil {
		log.Printf("Failed to invalidate category cache: %v", err)
	}
}

func (s *CategoryService) getCached(ctx context.Context) map[uint]string {
	if s.redis == nil {
		return nil
	}

	data, err := s.redis.Get(ctx, categoriesCacheKey).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Printf("Redis error getting categories: %v", err)
		}
		return nil
	}

	var byID map[uint]string
	if err := json.Unmarshal([]byte(data), &byID); err != nil {
		log.Printf("Failed to unmarshal cached categories: %v", err)
		return nil
	}
	return byID
}

func (s *CategoryService) storeCached(ctx context.Context, byID map[uint]string) {
	if s.redis == nil || len(byID) == 0 {
		return
	}

	data, err := json.Marshal(byID)
	if err != nil {
		log.Printf("Failed to marshal categories: %v", err)
		return
	}
	if err := s.redis.Set(ctx, categoriesCacheKey, data, s.ttl).Err(); err != nil {
		log.Printf("Failed to store categories in Redis: %v", err)
	}
}
