package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/unohub/unohub/internal/model"
	appErr "github.com/unohub/unohub/internal/pkg/errors"
	"github.com/unohub/unohub/internal/repo"
	"github.com/unohub/unohub/internal/service"
	"github.com/unohub/unohub/test/testutil"
)

func newFinanceService(t *testing.T) (*service.FinanceService, func()) {
	t.Helper()
	db, cleanup := testutil.OpenTestDB(t)
	svc := service.NewFinanceService(
		repo.NewTransactionRepo(db),
		repo.NewRecurringRepo(db),
		repo.NewProcessedMonthRepo(db),
		repo.NewMaterializeRepo(db),
	)
	return svc, cleanup
}

func TestFinanceServiceProcessMonthOnce(t *testing.T) {
	svc, cleanup := newFinanceService(t)
	defer cleanup()

	userID := testutil.NewID()
	ctx := context.Background()
	ref := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)

	_, err := svc.AddRecurring(ctx, userID, []service.RecurringInput{
		{Description: "rent", Amount: 1200, Kind: model.KindExpense, Category: "housing", DayOfMonth: 1},
		{Description: "salary", Amount: 3000, Kind: model.KindIncome, Category: "work", DayOfMonth: 25},
	})
	require.NoError(t, err)

	processed, err := svc.IsMonthProcessed(ctx, userID, ref)
	require.NoError(t, err)
	require.False(t, processed)

	txs, err := svc.ProcessMonth(ctx, userID, ref)
	require.NoError(t, err)
	require.Len(t, txs, 2)
	for _, tx := range txs {
		require.Equal(t, 1, tx.IsRecurring)
		require.Equal(t, "2026-08", service.MonthKey(time.Unix(tx.Date, 0).UTC()))
	}

	processed, err = svc.IsMonthProcessed(ctx, userID, ref)
	require.NoError(t, err)
	require.True(t, processed)

	_, err = svc.ProcessMonth(ctx, userID, ref)
	require.ErrorIs(t, err, appErr.ErrConflict)

	listed, err := svc.ListTransactions(ctx, userID)
	require.NoError(t, err)
	require.Len(t, listed, 2)

	keys, err := svc.ProcessedMonths(ctx, userID)
	require.NoError(t, err)
	require.Contains(t, keys, "2026-08")
}

func TestFinanceServiceSummary(t *testing.T) {
	svc, cleanup := newFinanceService(t)
	defer cleanup()

	userID := testutil.NewID()
	ctx := context.Background()
	ref := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)

	add := func(desc string, amount float64, kind string, date time.Time) {
		_, err := svc.AddTransaction(ctx, userID, service.TransactionInput{
			Description: desc,
			Amount:      amount,
			Kind:        kind,
			Date:        date.Unix(),
		})
		require.NoError(t, err)
	}
	// previous month: +500 income, -200 expense
	add("bonus", 500, model.KindIncome, time.Date(2026, 7, 5, 0, 0, 0, 0, time.UTC))
	add("repair", 200, model.KindExpense, time.Date(2026, 7, 20, 0, 0, 0, 0, time.UTC))
	// current month
	add("salary", 3000, model.KindIncome, time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC))
	add("rent", 1200, model.KindExpense, time.Date(2026, 8, 3, 9, 0, 0, 0, time.UTC))

	summary, err := svc.Summary(ctx, userID, ref)
	require.NoError(t, err)
	require.Equal(t, "2026-08", summary.MonthKey)
	require.False(t, summary.Processed)
	require.InDelta(t, 3000.0, summary.Totals.Income, 1e-9)
	require.InDelta(t, 1200.0, summary.Totals.Expense, 1e-9)
	require.InDelta(t, 1800.0, summary.Balance, 1e-9)
	require.InDelta(t, 300.0, summary.PreviousBalance, 1e-9)
	require.Len(t, summary.Daily, 31)
	require.InDelta(t, 3000.0, summary.Daily[0].Income, 1e-9)
	require.InDelta(t, 1200.0, summary.Daily[2].Expense, 1e-9)
}

func TestFinanceServiceRejectsBadInput(t *testing.T) {
	svc, cleanup := newFinanceService(t)
	defer cleanup()

	userID := testutil.NewID()
	ctx := context.Background()

	_, err := svc.AddTransaction(ctx, userID, service.TransactionInput{Description: "x", Amount: -5, Kind: model.KindExpense, Date: 1})
	require.ErrorIs(t, err, appErr.ErrInvalid)

	_, err = svc.AddTransaction(ctx, userID, service.TransactionInput{Description: "x", Amount: 5, Kind: "transfer", Date: 1})
	require.ErrorIs(t, err, appErr.ErrInvalid)

	_, err = svc.AddRecurring(ctx, userID, []service.RecurringInput{
		{Description: "x", Amount: 5, Kind: model.KindExpense, DayOfMonth: 32},
	})
	require.ErrorIs(t, err, appErr.ErrInvalid)

	_, err = svc.AddRecurring(ctx, userID, nil)
	require.ErrorIs(t, err, appErr.ErrInvalid)
}
