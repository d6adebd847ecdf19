package handlers

import (
	"net/http"

	"trivia/services"

	"github.com/gin-gonic/gin"
)

type CategoryHandler struct {
	categoryService *services.CategoryService
	questionService *services.QuestionService
}

func NewCategoryHandler(categoryService *services.CategoryService, questionService *services.QuestionService) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
		questionService: questionService,
	}
}

func (h *CategoryHandler) GetCategories(c *gin.Context) {
	categories, err := h.categoryService.Categories(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, categoriesResponse{Success: true, Categories: categories})
}

func (h *CategoryHandler) GetCategoryQuestions(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	page, ok := parsePage(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	result, err := h.questionService.ListByCategory(ctx, page, id)
	if err != nil {
		respondError(c, err)
		return
	}
	categories, err := h.categoryService.Categories(ctx)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, questionsResponse{
		Success:         true,
		Questions:       result.Questions,
		TotalQuestions:  result.Total,
		CurrentCategory: &id,
		Categories:      categories,
	})
}
