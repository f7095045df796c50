package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/unohub/unohub/internal/pkg/errcode"
	"github.com/unohub/unohub/internal/pkg/response"
	"github.com/unohub/unohub/internal/service"
)

type PageHandler struct {
	pages *service.PageService
}

func NewPageHandler(pages *service.PageService) *PageHandler {
	return &PageHandler{pages: pages}
}

func (h *PageHandler) List(c *gin.Context) {
	pages, err := h.pages.List(c.Request.Context(), getUserID(c))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, pages)
}

func (h *PageHandler) Tree(c *gin.Context) {
	tree, err := h.pages.Tree(c.Request.Context(), getUserID(c))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, tree)
}

func (h *PageHandler) Get(c *gin.Context) {
	page, err := h.pages.Get(c.Request.Context(), getUserID(c), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, page)
}

// Resolve answers "which page should the editor open when this node is
// clicked": folders descend to their first leaf, and the chain of folders
// passed on the way is returned for the sidebar to expand.
func (h *PageHandler) Resolve(c *gin.Context) {
	selection, err := h.pages.Resolve(c.Request.Context(), getUserID(c), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, selection)
}

type pageCreateRequest struct {
	ParentID *string `json:"parent_id"`
}

func (h *PageHandler) Create(c *gin.Context) {
	var req pageCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errcode.ErrInvalid, "invalid request")
		return
	}
	page, err := h.pages.Create(c.Request.Context(), getUserID(c), req.ParentID)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, page)
}

type pageTitleRequest struct {
	Title string `json:"title"`
}

func (h *PageHandler) Rename(c *gin.Context) {
	var req pageTitleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errcode.ErrInvalid, "invalid request")
		return
	}
	page, err := h.pages.Rename(c.Request.Context(), getUserID(c), c.Param("id"), req.Title)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, page)
}

type pageContentRequest struct {
	Content string `json:"content"`
}

func (h *PageHandler) UpdateContent(c *gin.Context) {
	var req pageContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errcode.ErrInvalid, "invalid request")
		return
	}
	if err := h.pages.UpdateContent(c.Request.Context(), getUserID(c), c.Param("id"), req.Content); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"ok": true})
}

type pageIconRequest struct {
	Icon *string `json:"icon"`
}

func (h *PageHandler) UpdateIcon(c *gin.Context) {
	var req pageIconRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errcode.ErrInvalid, "invalid request")
		return
	}
	if err := h.pages.UpdateIcon(c.Request.Context(), getUserID(c), c.Param("id"), req.Icon); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"ok": true})
}

type pageMoveRequest struct {
	ParentID *string `json:"parent_id"`
}

func (h *PageHandler) Move(c *gin.Context) {
	var req pageMoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errcode.ErrInvalid, "invalid request")
		return
	}
	if err := h.pages.Move(c.Request.Context(), getUserID(c), c.Param("id"), req.ParentID); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"ok": true})
}

func (h *PageHandler) Archive(c *gin.Context) {
	if err := h.pages.Archive(c.Request.Context(), getUserID(c), c.Param("id")); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"ok": true})
}

func (h *PageHandler) Restore(c *gin.Context) {
	if err := h.pages.Restore(c.Request.Context(), getUserID(c), c.Param("id")); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"ok": true})
}

func (h *PageHandler) Delete(c *gin.Context) {
	if err := h.pages.Delete(c.Request.Context(), getUserID(c), c.Param("id")); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"ok": true})
}
