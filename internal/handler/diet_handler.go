package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/unohub/unohub/internal/pkg/errcode"
	"github.com/unohub/unohub/internal/pkg/response"
	"github.com/unohub/unohub/internal/service"
)

type DietHandler struct {
	diet *service.DietService
}

func NewDietHandler(diet *service.DietService) *DietHandler {
	return &DietHandler{diet: diet}
}

func (h *DietHandler) Profile(c *gin.Context) {
	profile, err := h.diet.Profile(c.Request.Context(), getUserID(c))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, profile)
}

func (h *DietHandler) PutProfile(c *gin.Context) {
	var req service.DietProfileInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errcode.ErrInvalid, "invalid request")
		return
	}
	profile, err := h.diet.UpsertProfile(c.Request.Context(), getUserID(c), req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, profile)
}

func (h *DietHandler) Day(c *gin.Context) {
	day, err := h.diet.Day(c.Request.Context(), getUserID(c), c.Query("day"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, day)
}

func (h *DietHandler) AddMeal(c *gin.Context) {
	var req service.DietMealInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errcode.ErrInvalid, "invalid request")
		return
	}
	meal, err := h.diet.AddMeal(c.Request.Context(), getUserID(c), req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, meal)
}

func (h *DietHandler) DeleteMeal(c *gin.Context) {
	if err := h.diet.DeleteMeal(c.Request.Context(), getUserID(c), c.Param("id")); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"ok": true})
}

func (h *DietHandler) AddWater(c *gin.Context) {
	var req service.DietWaterInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errcode.ErrInvalid, "invalid request")
		return
	}
	entry, err := h.diet.AddWater(c.Request.Context(), getUserID(c), req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, entry)
}

func (h *DietHandler) SearchFoods(c *gin.Context) {
	foods, err := h.diet.SearchFoods(c.Request.Context(), getUserID(c), c.Query("q"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, foods)
}

func (h *DietHandler) AddFood(c *gin.Context) {
	var req service.DietFoodInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errcode.ErrInvalid, "invalid request")
		return
	}
	food, err := h.diet.AddFood(c.Request.Context(), getUserID(c), req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, food)
}
