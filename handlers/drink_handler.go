package handlers

import (
	"net/http"

	"trivia/models"
	"trivia/services"

	"github.com/gin-gonic/gin"
)

type DrinkHandler struct {
	drinkService *services.DrinkService
	hub          *services.Hub
}

func NewDrinkHandler(drinkService *services.DrinkService, hub *services.Hub) *DrinkHandler {
	return &DrinkHandler{
		drinkService: drinkService,
		hub:          hub,
	}
}

// GetDrinks is public and only exposes the short recipe view.
func (h *DrinkHandler) GetDrinks(c *gin.Context) {
	drinks, err := h.drinkService.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	short := make([]models.ShortDrink, 0, len(drinks))
	for _, d := range drinks {
		short = append(short, d.Short())
	}
	c.JSON(http.StatusOK, shortDrinksResponse{Success: true, Drinks: short})
}

func (h *DrinkHandler) GetDrinksDetail(c *gin.Context) {
	h.respondAllLong(c, http.StatusOK)
}

func (h *DrinkHandler) CreateDrink(c *gin.Context) {
	var req drinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithStatus(c, http.StatusBadRequest)
		return
	}

	drink, err := h.drinkService.Create(c.Request.Context(), services.DrinkInput{
		Title:  req.Title,
		Recipe: req.Recipe,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	h.hub.Broadcast(services.TopicDrinks, services.EventDrinkCreated, drink.Long())

	h.respondAllLong(c, http.StatusOK)
}

// UpdateDrink applies a partial update and returns the updated drink.
func (h *DrinkHandler) UpdateDrink(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req patchDrinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithStatus(c, http.StatusBadRequest)
		return
	}

	patch := services.DrinkPatch{Title: req.Title}
	if req.Recipe != nil {
		patch.Recipe = []models.Ingredient(*req.Recipe)
		if patch.Recipe == nil {
			patch.Recipe = []models.Ingredient{}
		}
	}

	drink, err := h.drinkService.Update(c.Request.Context(), id, patch)
	if err != nil {
		respondError(c, err)
		return
	}
	long := drink.Long()
	h.hub.Broadcast(services.TopicDrinks, services.EventDrinkUpdated, long)

	c.JSON(http.StatusOK, longDrinksResponse{Success: true, Drinks: []models.LongDrink{long}})
}

func (h *DrinkHandler) DeleteDrink(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.drinkService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	h.hub.Broadcast(services.TopicDrinks, services.EventDrinkDeleted, gin.H{"id": id})

	c.JSON(http.StatusOK, deleteDrinkResponse{Success: true, Delete: id})
}

func (h *DrinkHandler) respondAllLong(c *gin.Context, status int) {
	drinks, err := h.drinkService.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	long := make([]models.LongDrink, 0, len(drinks))
	for _, d := range drinks {
		long = append(long, d.Long())
	}
	c.JSON(status, longDrinksResponse{Success: true, Drinks: long})
}
