package handlers

import (
	"encoding/json"
	"net/http"

	"trivia/services"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

type QuestionHandler struct {
	questionService *services.QuestionService
	categoryService *services.CategoryService
	hub             *services.Hub
}

func NewQuestionHandler(questionService *services.QuestionService, categoryService *services.CategoryService, hub *services.Hub) *QuestionHandler {
	return &QuestionHandler{
		questionService: questionService,
		categoryService: categoryService,
		hub:             hub,
	}
}

func (h *QuestionHandler) GetQuestions(c *gin.Context) {
	page, ok := parsePage(c)
	if !ok {
		return
	}
	h.respondPage(c, http.StatusOK, page, "", 0)
}

// PostQuestions searches when the body carries searchTerm and creates a
// question otherwise.
func (h *QuestionHandler) PostQuestions(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		abortWithStatus(c, http.StatusBadRequest)
		return
	}

	var search searchRequest
	if err := json.Unmarshal(body, &search); err != nil {
		abortWithStatus(c, http.StatusBadRequest)
		return
	}
	if search.SearchTerm != nil {
		page, ok := parsePage(c)
		if !ok {
			return
		}
		h.respondPage(c, http.StatusOK, page, *search.SearchTerm, 0)
		return
	}

	var req createQuestionRequest
	if err := json.Unmarshal(body, &req); err != nil {
		abortWithStatus(c, http.StatusBadRequest)
		return
	}
	if err := binding.Validator.ValidateStruct(&req); err != nil {
		abortWithStatus(c, http.StatusUnprocessableEntity)
		return
	}

	question, err := h.questionService.Create(c.Request.Context(), services.CreateQuestionInput{
		Question:   req.Question,
		Answer:     req.Answer,
		Category:   uint(req.Category),
		Difficulty: req.Difficulty,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	h.hub.Broadcast(services.TopicTrivia, services.EventQuestionCreated, question)

	h.respondPage(c, http.StatusCreated, 1, "", question.ID)
}

func (h *QuestionHandler) DeleteQuestion(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.questionService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	h.hub.Broadcast(services.TopicTrivia, services.EventQuestionDeleted, gin.H{"id": id})

	c.JSON(http.StatusOK, deleteQuestionResponse{Success: true, ID: id})
}

func (h *QuestionHandler) respondPage(c *gin.Context, status, page int, searchTerm string, created uint) {
	ctx := c.Request.Context()

	result, err := h.questionService.List(ctx, page, searchTerm)
	if err != nil {
		respondError(c, err)
		return
	}
	categories, err := h.categoryService.Categories(ctx)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(status, questionsResponse{
		Success:        true,
		Questions:      result.Questions,
		TotalQuestions: result.Total,
		Categories:     categories,
		Created:        created,
	})
}
