package handler_test

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/unohub/unohub/internal/pkg/errcode"
	"github.com/unohub/unohub/test/testutil"
)

func TestFinanceRecurringProcessFlow(t *testing.T) {
	router, cleanup := setupRouter(t)
	defer cleanup()

	token := registerUser(t, router, testutil.NewID()+"@example.com")

	resp, parsed := doJSON(t, router, http.MethodPost, "/api/v1/finance/recurring", token, map[string]interface{}{
		"items": []map[string]interface{}{
			{"description": "rent", "amount": 1200, "kind": "expense", "category": "housing", "day_of_month": 1},
			{"description": "salary", "amount": 3000, "kind": "income", "category": "work", "day_of_month": 25},
		},
	})
	require.Equal(t, http.StatusOK, resp.Code)
	require.Zero(t, parsed.Code)

	month := time.Now().UTC().Format("2006-01")
	resp, parsed = doJSON(t, router, http.MethodPost, "/api/v1/finance/recurring/process?month="+month, token, nil)
	require.Equal(t, http.StatusOK, resp.Code)
	require.Zero(t, parsed.Code)
	var txs []struct {
		IsRecurring int `json:"is_recurring"`
	}
	require.NoError(t, json.Unmarshal(parsed.Data, &txs))
	require.Len(t, txs, 2)
	for _, tx := range txs {
		require.Equal(t, 1, tx.IsRecurring)
	}

	resp, parsed = doJSON(t, router, http.MethodPost, "/api/v1/finance/recurring/process?month="+month, token, nil)
	require.Equal(t, http.StatusOK, resp.Code)
	require.Equal(t, errcode.ErrMonthProcessed, parsed.Code)

	resp, parsed = doJSON(t, router, http.MethodGet, "/api/v1/finance/processed", token, nil)
	require.Equal(t, http.StatusOK, resp.Code)
	var keys []string
	require.NoError(t, json.Unmarshal(parsed.Data, &keys))
	require.Contains(t, keys, month)

	resp, parsed = doJSON(t, router, http.MethodGet, "/api/v1/finance/summary?month="+month, token, nil)
	require.Equal(t, http.StatusOK, resp.Code)
	var summary struct {
		MonthKey  string `json:"month_key"`
		Processed bool   `json:"processed"`
		Totals    struct {
			Income  float64 `json:"income"`
			Expense float64 `json:"expense"`
		} `json:"totals"`
		Balance float64 `json:"balance"`
	}
	require.NoError(t, json.Unmarshal(parsed.Data, &summary))
	require.Equal(t, month, summary.MonthKey)
	require.True(t, summary.Processed)
	require.InDelta(t, 3000.0, summary.Totals.Income, 1e-9)
	require.InDelta(t, 1200.0, summary.Totals.Expense, 1e-9)
	require.InDelta(t, 1800.0, summary.Balance, 1e-9)
}

func TestFinanceTransactionValidation(t *testing.T) {
	router, cleanup := setupRouter(t)
	defer cleanup()

	token := registerUser(t, router, testutil.NewID()+"@example.com")

	resp, parsed := doJSON(t, router, http.MethodPost, "/api/v1/finance/transactions", token, map[string]interface{}{
		"description": "groceries",
		"amount":      -10,
		"kind":        "expense",
		"date":        time.Now().Unix(),
	})
	require.Equal(t, http.StatusOK, resp.Code)
	require.Equal(t, errcode.ErrInvalid, parsed.Code)

	resp, parsed = doJSON(t, router, http.MethodPost, "/api/v1/finance/recurring/process?month=2026-13", token, nil)
	require.Equal(t, http.StatusOK, resp.Code)
	require.Equal(t, errcode.ErrInvalid, parsed.Code)
}
