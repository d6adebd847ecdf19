package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"trivia/models"

	"gorm.io/gorm"
)

const QuestionsPerPage = 10

const (
	MinDifficulty = 1
	MaxDifficulty = 5
)

type QuestionService struct {
	db         *gorm.DB
	categories *CategoryService
}

func NewQuestionService(db *gorm.DB, categories *CategoryService) *QuestionService {
	return &QuestionService{
		db:         db,
		categories: categories,
	}
}

type QuestionPage struct {
	Questions []models.Question
	Total     int64
}

type CreateQuestionInput struct {
	Question   string
	Answer     string
	Category   uint
	Difficulty int
}

// List returns one page of questions, optionally filtered by a
// case-insensitive substring of the question text.
func (s *QuestionService) List(ctx context.Context, page int, searchTerm string) (*QuestionPage, error) {
	var scopes []func(*gorm.DB) *gorm.DB
	if term := strings.TrimSpace(searchTerm); term != "" {
		scopes = append(scopes, textContains(term))
	}
	return s.paginate(ctx, page, scopes...)
}

func (s *QuestionService) ListByCategory(ctx context.Context, page int, categoryID uint) (*QuestionPage, error) {
	ok, err := s.categories.Exists(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("category %d: %w", categoryID, ErrNotFound)
	}
	return s.paginate(ctx, page, inCategory(categoryID))
}

func (s *QuestionService) Get(ctx context.Context, id uint) (*models.Question, error) {
	var question models.Question
	err := s.db.WithContext(ctx).First(&question, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("question %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &question, nil
}

func (s *QuestionService) Create(ctx context.Context, in CreateQuestionInput) (*models.Question, error) {
	question := models.Question{
		Question:   strings.TrimSpace(in.Question),
		Answer:     strings.TrimSpace(in.Answer),
		Category:   in.Category,
		Difficulty: in.Difficulty,
	}

	switch {
	case question.Question == "":
		return nil, fmt.Errorf("question text is required: %w", ErrUnprocessable)
	case question.Answer == "":
		return nil, fmt.Errorf("answer is required: %w", ErrUnprocessable)
	case question.Difficulty < MinDifficulty || question.Difficulty > MaxDifficulty:
		return nil, fmt.Errorf("difficulty %d out of range: %w", question.Difficulty, ErrUnprocessable)
	}

	ok, err := s.categories.Exists(ctx, question.Category)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("category %d does not exist: %w", question.Category, ErrUnprocessable)
	}

	if err := s.db.WithContext(ctx).Create(&question).Error; err != nil {
		return nil, fmt.Errorf("create question: %w", err)
	}
	return &question, nil
}

func (s *QuestionService) Delete(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).Delete(&models.Question{}, id)
	if result.Error != nil {
		return fmt.Errorf("delete question %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("question %d: %w", id, ErrNotFound)
	}
	return nil
}

// paginate counts the filtered rows and loads the requested page. Page 1 of
// an empty result is valid; any later page without rows is not found.
func (s *QuestionService) paginate(ctx context.Context, page int, scopes ...func(*gorm.DB) *gorm.DB) (*QuestionPage, error) {
	if page < 1 {
		return nil, fmt.Errorf("page %d: %w", page, ErrNotFound)
	}

	base := func() *gorm.DB {
		return s.db.WithContext(ctx).Model(&models.Question{}).Scopes(scopes...)
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, fmt.Errorf("count questions: %w", err)
	}

	questions := []models.Question{}
	if err := base().Order("id").
		Offset((page - 1) * QuestionsPerPage).
		Limit(QuestionsPerPage).
		Find(&questions).Error; err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}

	if page > 1 && len(questions) == 0 {
		return nil, fmt.Errorf("page %d: %w", page, ErrNotFound)
	}

	return &QuestionPage{Questions: questions, Total: total}, nil
}

func inCategory(categoryID uint) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("category = ?", categoryID)
	}
}

func textContains(term string) func(*gorm.DB) *gorm.DB {
	pattern := "%" + escapeLike(strings.ToLower(term)) + "%"
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(`LOWER(question) LIKE ? ESCAPE '\'`, pattern)
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
