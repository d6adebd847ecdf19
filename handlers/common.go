package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"trivia/middleware"
	"trivia/services"

	"github.com/gin-gonic/gin"
)

type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   int    `json:"error"`
	Message string `json:"message"`
}

var errorMessages = map[int]string{
	http.StatusBadRequest:          "bad request",
	http.StatusUnauthorized:        "unauthorized",
	http.StatusNotFound:            "resource not found",
	http.StatusMethodNotAllowed:    "method not allowed",
	http.StatusUnprocessableEntity: "unprocessable",
	http.StatusInternalServerError: "internal server error",
}

// abortWithStatus writes the JSON error envelope for status.
func abortWithStatus(c *gin.Context, status int) {
	message, ok := errorMessages[status]
	if !ok {
		message = http.StatusText(status)
	}
	c.AbortWithStatusJSON(status, ErrorResponse{Success: false, Error: status, Message: message})
}

// respondError maps service errors onto the error envelope.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		abortWithStatus(c, http.StatusNotFound)
	case errors.Is(err, services.ErrUnprocessable):
		abortWithStatus(c, http.StatusUnprocessableEntity)
	case errors.Is(err, services.ErrInvalidCredentials):
		abortWithStatus(c, http.StatusUnauthorized)
	default:
		log.Printf("[%s] %s %s failed: %v", c.GetString(middleware.RequestIDKey), c.Request.Method, c.Request.URL.Path, err)
		abortWithStatus(c, http.StatusInternalServerError)
	}
}

func NotFound(c *gin.Context) {
	abortWithStatus(c, http.StatusNotFound)
}

func MethodNotAllowed(c *gin.Context) {
	abortWithStatus(c, http.StatusMethodNotAllowed)
}

// Recover turns a recovered panic into the 500 envelope.
func Recover(c *gin.Context, recovered any) {
	log.Printf("[%s] panic serving %s %s: %v", c.GetString(middleware.RequestIDKey), c.Request.Method, c.Request.URL.Path, recovered)
	abortWithStatus(c, http.StatusInternalServerError)
}

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// parseID reads a positive numeric path parameter.
func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		abortWithStatus(c, http.StatusBadRequest)
		return 0, false
	}
	return uint(id), true
}

// parsePage reads the 1-based ?page= parameter, defaulting to 1. Range checks
// are left to the service so out-of-range pages surface as not found.
func parsePage(c *gin.Context) (int, bool) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		abortWithStatus(c, http.StatusBadRequest)
		return 0, false
	}
	return page, true
}
