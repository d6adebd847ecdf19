package handlers

import (
	"net/http"

	"trivia/services"

	"github.com/gin-gonic/gin"
)

type QuizHandler struct {
	quizService *services.QuizService
}

func NewQuizHandler(quizService *services.QuizService) *QuizHandler {
	return &QuizHandler{
		quizService: quizService,
	}
}

// NextQuestion serves one unplayed question of the chosen category. A null
// question tells the client the round is over.
func (h *QuizHandler) NextQuestion(c *gin.Context) {
	var req quizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithStatus(c, http.StatusBadRequest)
		return
	}

	categoryID := services.AllCategories
	if req.QuizCategory != nil {
		categoryID = uint(req.QuizCategory.ID)
	}

	question, err := h.quizService.NextQuestion(c.Request.Context(), categoryID, req.PreviousQuestions)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, quizResponse{Success: true, Question: question})
}
