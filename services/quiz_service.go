package services

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"trivia/models"

	"gorm.io/gorm"
)

// AllCategories asks NextQuestion to draw from every category.
const AllCategories uint = 0

// QuizService serves quiz rounds. It keeps no per-session state: the caller
// carries the ids already served and sends them back on every round.
type QuizService struct {
	db         *gorm.DB
	categories *CategoryService

	mu  sync.Mutex
	rnd *rand.Rand
}

func NewQuizService(db *gorm.DB, categories *CategoryService) *QuizService {
	return NewQuizServiceWithRand(db, categories, rand.New(rand.NewSource(time.Now().UnixNano())))
}

func NewQuizServiceWithRand(db *gorm.DB, categories *CategoryService, rnd *rand.Rand) *QuizService {
	return &QuizService{
		db:         db,
		categories: categories,
		rnd:        rnd,
	}
}

// NextQuestion picks a random question from categoryID (or from all
// categories for AllCategories) whose id is not in previous. It returns nil,
// nil once every candidate has been served.
func (s *QuizService) NextQuestion(ctx context.Context, categoryID uint, previous []uint) (*models.Question, error) {
	query := s.db.WithContext(ctx).Model(&models.Question{})

	if categoryID != AllCategories {
		ok, err := s.categories.Exists(ctx, categoryID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("category %d: %w", categoryID, ErrNotFound)
		}
		query = query.Scopes(inCategory(categoryID))
	}
	if len(previous) > 0 {
		query = query.Where("id NOT IN ?", previous)
	}

	var candidates []models.Question
	if err := query.Order("id").Find(&candidates).Error; err != nil {
		return nil, fmt.Errorf("load quiz candidates: %w", err)
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	picked := candidates[s.intn(len(candidates))]
	return &picked, nil
}

func (s *QuizService) intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rnd.Intn(n)
}
