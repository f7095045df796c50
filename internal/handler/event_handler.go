package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/unohub/unohub/internal/pkg/errcode"
	"github.com/unohub/unohub/internal/pkg/response"
	"github.com/unohub/unohub/internal/service"
)

type EventHandler struct {
	events *service.EventService
}

func NewEventHandler(events *service.EventService) *EventHandler {
	return &EventHandler{events: events}
}

func queryInt64(c *gin.Context, name string) int64 {
	value, err := strconv.ParseInt(c.Query(name), 10, 64)
	if err != nil {
		return 0
	}
	return value
}

func (h *EventHandler) List(c *gin.Context) {
	events, err := h.events.List(c.Request.Context(), getUserID(c), queryInt64(c, "from"), queryInt64(c, "to"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, events)
}

func (h *EventHandler) Create(c *gin.Context) {
	var req service.EventInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errcode.ErrInvalid, "invalid request")
		return
	}
	event, err := h.events.Create(c.Request.Context(), getUserID(c), req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, event)
}

func (h *EventHandler) Update(c *gin.Context) {
	var req service.EventInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errcode.ErrInvalid, "invalid request")
		return
	}
	if err := h.events.Update(c.Request.Context(), getUserID(c), c.Param("id"), req); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"ok": true})
}

func (h *EventHandler) Delete(c *gin.Context) {
	if err := h.events.Delete(c.Request.Context(), getUserID(c), c.Param("id")); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"ok": true})
}
