package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/unohub/unohub/internal/pkg/errcode"
	"github.com/unohub/unohub/internal/pkg/response"
	"github.com/unohub/unohub/internal/service"
)

type HabitHandler struct {
	habits *service.HabitService
}

func NewHabitHandler(habits *service.HabitService) *HabitHandler {
	return &HabitHandler{habits: habits}
}

func (h *HabitHandler) List(c *gin.Context) {
	habits, err := h.habits.List(c.Request.Context(), getUserID(c))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, habits)
}

func (h *HabitHandler) Create(c *gin.Context) {
	var req service.HabitInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errcode.ErrInvalid, "invalid request")
		return
	}
	habit, err := h.habits.Create(c.Request.Context(), getUserID(c), req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, habit)
}

func (h *HabitHandler) Update(c *gin.Context) {
	var req service.HabitInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errcode.ErrInvalid, "invalid request")
		return
	}
	if err := h.habits.Update(c.Request.Context(), getUserID(c), c.Param("id"), req); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"ok": true})
}

func (h *HabitHandler) Delete(c *gin.Context) {
	if err := h.habits.Delete(c.Request.Context(), getUserID(c), c.Param("id")); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"ok": true})
}

func (h *HabitHandler) Logs(c *gin.Context) {
	logs, err := h.habits.Logs(c.Request.Context(), getUserID(c), c.Query("from"), c.Query("to"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, logs)
}

type habitToggleRequest struct {
	Day string `json:"day"`
}

func (h *HabitHandler) Toggle(c *gin.Context) {
	var req habitToggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errcode.ErrInvalid, "invalid request")
		return
	}
	checked, err := h.habits.Toggle(c.Request.Context(), getUserID(c), c.Param("id"), req.Day)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"checked": checked})
}
