package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/unohub/unohub/internal/pkg/errcode"
	appErr "github.com/unohub/unohub/internal/pkg/errors"
	"github.com/unohub/unohub/internal/pkg/response"
	"github.com/unohub/unohub/internal/service"
)

type FinanceHandler struct {
	finance *service.FinanceService
}

func NewFinanceHandler(finance *service.FinanceService) *FinanceHandler {
	return &FinanceHandler{finance: finance}
}

// monthRef parses the optional "month" query (YYYY-MM). Absent means the
// current month.
func monthRef(c *gin.Context) (time.Time, bool) {
	raw := c.Query("month")
	if raw == "" {
		return time.Now().UTC(), true
	}
	ref, err := time.ParseInLocation("2006-01", raw, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return ref, true
}

func (h *FinanceHandler) ListTransactions(c *gin.Context) {
	txs, err := h.finance.ListTransactions(c.Request.Context(), getUserID(c))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, txs)
}

func (h *FinanceHandler) CreateTransaction(c *gin.Context) {
	var req service.TransactionInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errcode.ErrInvalid, "invalid request")
		return
	}
	tx, err := h.finance.AddTransaction(c.Request.Context(), getUserID(c), req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, tx)
}

func (h *FinanceHandler) DeleteTransaction(c *gin.Context) {
	if err := h.finance.DeleteTransaction(c.Request.Context(), getUserID(c), c.Param("id")); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"ok": true})
}

func (h *FinanceHandler) ListRecurring(c *gin.Context) {
	items, err := h.finance.ListRecurring(c.Request.Context(), getUserID(c))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, items)
}

type recurringCreateRequest struct {
	Items []service.RecurringInput `json:"items"`
}

func (h *FinanceHandler) CreateRecurring(c *gin.Context) {
	var req recurringCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errcode.ErrInvalid, "invalid request")
		return
	}
	items, err := h.finance.AddRecurring(c.Request.Context(), getUserID(c), req.Items)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, items)
}

func (h *FinanceHandler) DeleteRecurring(c *gin.Context) {
	if err := h.finance.DeleteRecurring(c.Request.Context(), getUserID(c), c.Param("id")); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"ok": true})
}

func (h *FinanceHandler) ProcessedMonths(c *gin.Context) {
	keys, err := h.finance.ProcessedMonths(c.Request.Context(), getUserID(c))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, keys)
}

func (h *FinanceHandler) ProcessMonth(c *gin.Context) {
	ref, ok := monthRef(c)
	if !ok {
		response.Error(c, errcode.ErrInvalid, "invalid month")
		return
	}
	txs, err := h.finance.ProcessMonth(c.Request.Context(), getUserID(c), ref)
	if err != nil {
		if appErr.IsConflict(err) {
			response.Error(c, errcode.ErrMonthProcessed, "month already processed")
			return
		}
		handleError(c, err)
		return
	}
	response.Success(c, txs)
}

func (h *FinanceHandler) Summary(c *gin.Context) {
	ref, ok := monthRef(c)
	if !ok {
		response.Error(c, errcode.ErrInvalid, "invalid month")
		return
	}
	summary, err := h.finance.Summary(c.Request.Context(), getUserID(c), ref)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, summary)
}
