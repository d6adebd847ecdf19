package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"trivia/models"
)

// categoryRef is a category id sent either as a JSON number or as a numeric
// string, which is what the trivia frontend posts from its <select>.
type categoryRef uint

func (r *categoryRef) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	raw := string(data)
	if unquoted, err := strconv.Unquote(raw); err == nil {
		raw = strings.TrimSpace(unquoted)
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return errors.New("category must be a non-negative integer")
	}
	*r = categoryRef(id)
	return nil
}

// recipeInput accepts a single ingredient object or a list of them.
type recipeInput []models.Ingredient

func (r *recipeInput) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		return nil
	}
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var one models.Ingredient
		if err := json.Unmarshal(trimmed, &one); err != nil {
			return err
		}
		*r = recipeInput{one}
		return nil
	}
	var many []models.Ingredient
	if err := json.Unmarshal(trimmed, &many); err != nil {
		return err
	}
	if many == nil {
		many = []models.Ingredient{}
	}
	*r = many
	return nil
}

type questionsResponse struct {
	Success         bool              `json:"success"`
	Questions       []models.Question `json:"questions"`
	TotalQuestions  int64             `json:"total_questions"`
	CurrentCategory *uint             `json:"current_category"`
	Categories      map[uint]string   `json:"categories"`
	Created         uint              `json:"created,omitempty"`
}

type categoriesResponse struct {
	Success    bool            `json:"success"`
	Categories map[uint]string `json:"categories"`
}

type deleteQuestionResponse struct {
	Success bool `json:"success"`
	ID      uint `json:"id"`
}

type searchRequest struct {
	SearchTerm *string `json:"searchTerm"`
}

type createQuestionRequest struct {
	Question   string      `json:"question" binding:"required"`
	Answer     string      `json:"answer" binding:"required"`
	Category   categoryRef `json:"category" binding:"required"`
	Difficulty int         `json:"difficulty" binding:"required,min=1,max=5"`
}

type quizCategory struct {
	ID   categoryRef `json:"id"`
	Type string      `json:"type"`
}

type quizRequest struct {
	PreviousQuestions []uint        `json:"previous_questions"`
	QuizCategory      *quizCategory `json:"quiz_category"`
}

type quizResponse struct {
	Success  bool             `json:"success"`
	Question *models.Question `json:"question"`
}

type drinkRequest struct {
	Title  string      `json:"title" binding:"required"`
	Recipe recipeInput `json:"recipe" binding:"required"`
}

type patchDrinkRequest struct {
	Title  *string      `json:"title"`
	Recipe *recipeInput `json:"recipe"`
}

type shortDrinksResponse struct {
	Success bool                `json:"success"`
	Drinks  []models.ShortDrink `json:"drinks"`
}

type longDrinksResponse struct {
	Success bool               `json:"success"`
	Drinks  []models.LongDrink `json:"drinks"`
}

type deleteDrinkResponse struct {
	Success bool `json:"success"`
	Delete  uint `json:"delete"`
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginResponse struct {
	Success   bool   `json:"success"`
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expires_at"`
}
