package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"trivia/models"

	"gorm.io/gorm"
)

const maxDrinkTitle = 80

type DrinkService struct {
	db *gorm.DB
}

func NewDrinkService(db *gorm.DB) *DrinkService {
	return &DrinkService{db: db}
}

type DrinkInput struct {
	Title  string
	Recipe []models.Ingredient
}

// DrinkPatch carries optional fields; nil leaves the stored value untouched.
type DrinkPatch struct {
	Title  *string
	Recipe []models.Ingredient
}

func (s *DrinkService) List(ctx context.Context) ([]models.Drink, error) {
	drinks := []models.Drink{}
	if err := s.db.WithContext(ctx).Order("id").Find(&drinks).Error; err != nil {
		return nil, fmt.Errorf("list drinks: %w", err)
	}
	return drinks, nil
}

func (s *DrinkService) Get(ctx context.Context, id uint) (*models.Drink, error) {
	var drink models.Drink
	err := s.db.WithContext(ctx).First(&drink, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("drink %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &drink, nil
}

func (s *DrinkService) Create(ctx context.Context, in DrinkInput) (*models.Drink, error) {
	drink := models.Drink{
		Title:  strings.TrimSpace(in.Title),
		Recipe: in.Recipe,
	}
	if err := validateDrink(&drink); err != nil {
		return nil, err
	}
	if err := s.ensureTitleFree(ctx, drink.Title, 0); err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Create(&drink).Error; err != nil {
		return nil, translateDrinkError(err)
	}
	return &drink, nil
}

func (s *DrinkService) Update(ctx context.Context, id uint, patch DrinkPatch) (*models.Drink, error) {
	drink, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		drink.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Recipe != nil {
		drink.Recipe = patch.Recipe
	}
	if err := validateDrink(drink); err != nil {
		return nil, err
	}
	if patch.Title != nil {
		if err := s.ensureTitleFree(ctx, drink.Title, drink.ID); err != nil {
			return nil, err
		}
	}

	if err := s.db.WithContext(ctx).Save(drink).Error; err != nil {
		return nil, translateDrinkError(err)
	}
	return drink, nil
}

func (s *DrinkService) Delete(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).Delete(&models.Drink{}, id)
	if result.Error != nil {
		return fmt.Errorf("delete drink %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("drink %d: %w", id, ErrNotFound)
	}
	return nil
}

func (s *DrinkService) ensureTitleFree(ctx context.Context, title string, exceptID uint) error {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Drink{}).
		Where("title = ? AND id <> ?", title, exceptID).
		Count(&count).Error
	if err != nil {
		return fmt.Errorf("check drink title: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("drink %q already exists: %w", title, ErrUnprocessable)
	}
	return nil
}

func validateDrink(d *models.Drink) error {
	if d.Title == "" {
		return fmt.Errorf("drink title is required: %w", ErrUnprocessable)
	}
	if len(d.Title) > maxDrinkTitle {
		return fmt.Errorf("drink title longer than %d characters: %w", maxDrinkTitle, ErrUnprocessable)
	}
	if len(d.Recipe) == 0 {
		return fmt.Errorf("recipe needs at least one ingredient: %w", ErrUnprocessable)
	}
	for i, ing := range d.Recipe {
		if strings.TrimSpace(ing.Name) == "" || strings.TrimSpace(ing.Color) == "" {
			return fmt.Errorf("ingredient %d needs a name and a color: %w", i, ErrUnprocessable)
		}
		if ing.Parts < 1 {
			return fmt.Errorf("ingredient %d needs at least one part: %w", i, ErrUnprocessable)
		}
	}
	return nil
}

// translateDrinkError maps a unique-title race lost at insert time onto the
// same error the pre-check reports.
func translateDrinkError(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("drink title already exists: %w", ErrUnprocessable)
	}
	return fmt.Errorf("save drink: %w", err)
}
