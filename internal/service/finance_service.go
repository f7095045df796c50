package service

import (
	"context"
	"time"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/unohub/unohub/internal/model"
	appErr "github.com/unohub/unohub/internal/pkg/errors"
	"github.com/unohub/unohub/internal/pkg/timeutil"
	"github.com/unohub/unohub/internal/repo"
)

type FinanceService struct {
	transactions *repo.TransactionRepo
	recurring    *repo.RecurringRepo
	processed    *repo.ProcessedMonthRepo
	materializer *repo.MaterializeRepo
}

func NewFinanceService(transactions *repo.TransactionRepo, recurring *repo.RecurringRepo, processed *repo.ProcessedMonthRepo, materializer *repo.MaterializeRepo) *FinanceService {
	return &FinanceService{transactions: transactions, recurring: recurring, processed: processed, materializer: materializer}
}

type TransactionInput struct {
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Kind        string  `json:"kind"`
	Category    string  `json:"category"`
	Date        int64   `json:"date"`
}

func validKind(kind string) bool {
	return kind == model.KindIncome || kind == model.KindExpense
}

func (s *FinanceService) ListTransactions(ctx context.Context, userID string) ([]model.Transaction, error) {
	return s.transactions.List(ctx, userID)
}

func (s *FinanceService) AddTransaction(ctx context.Context, userID string, input TransactionInput) (*model.Transaction, error) {
	if input.Description == "" || input.Amount <= 0 || !validKind(input.Kind) || input.Date == 0 {
		return nil, appErr.ErrInvalid
	}
	tx := &model.Transaction{
		ID:          newID(),
		UserID:      userID,
		Description: input.Description,
		Amount:      input.Amount,
		Kind:        input.Kind,
		Category:    input.Category,
		Date:        input.Date,
		Ctime:       timeutil.NowUnix(),
	}
	if err := s.transactions.Create(ctx, tx); err != nil {
		return nil, err
	}
	return tx, nil
}

func (s *FinanceService) DeleteTransaction(ctx context.Context, userID, txID string) error {
	return s.transactions.Delete(ctx, userID, txID)
}

type RecurringInput struct {
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Kind        string  `json:"kind"`
	Category    string  `json:"category"`
	DayOfMonth  int     `json:"day_of_month"`
}

func (s *FinanceService) ListRecurring(ctx context.Context, userID string) ([]model.RecurringItem, error) {
	return s.recurring.List(ctx, userID)
}

func (s *FinanceService) AddRecurring(ctx context.Context, userID string, inputs []RecurringInput) ([]*model.RecurringItem, error) {
	if len(inputs) == 0 {
		return nil, appErr.ErrInvalid
	}
	now := timeutil.NowUnix()
	items := make([]*model.RecurringItem, 0, len(inputs))
	for _, input := range inputs {
		if input.Description == "" || input.Amount <= 0 || !validKind(input.Kind) || input.DayOfMonth < 1 || input.DayOfMonth > 31 {
			return nil, appErr.ErrInvalid
		}
		items = append(items, &model.RecurringItem{
			ID:          newID(),
			UserID:      userID,
			Description: input.Description,
			Amount:      input.Amount,
			Kind:        input.Kind,
			Category:    input.Category,
			DayOfMonth:  input.DayOfMonth,
			Ctime:       now,
		})
	}
	if err := s.recurring.CreateBatch(ctx, items); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *FinanceService) DeleteRecurring(ctx context.Context, userID, itemID string) error {
	return s.recurring.Delete(ctx, userID, itemID)
}

func (s *FinanceService) ProcessedMonths(ctx context.Context, userID string) ([]string, error) {
	return s.processed.ListKeys(ctx, userID)
}

func (s *FinanceService) IsMonthProcessed(ctx context.Context, userID string, ref time.Time) (bool, error) {
	return s.processed.Exists(ctx, userID, MonthKey(ref))
}

// ProcessMonth materializes the user's recurring items into concrete
// transactions for ref's month, exactly once. The marker and the batch land
// in one database transaction; a concurrent duplicate call loses the marker
// race and gets ErrConflict with nothing written.
func (s *FinanceService) ProcessMonth(ctx context.Context, userID string, ref time.Time) ([]*model.Transaction, error) {
	items, err := s.recurring.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	monthKey := MonthKey(ref)
	now := timeutil.NowUnix()
	txs := make([]*model.Transaction, 0, len(items))
	for _, item := range items {
		txs = append(txs, &model.Transaction{
			ID:          newID(),
			UserID:      userID,
			Description: item.Description,
			Amount:      item.Amount,
			Kind:        item.Kind,
			Category:    item.Category,
			Date:        MaterializeDate(ref, item.DayOfMonth).Unix(),
			IsRecurring: 1,
			Ctime:       now,
		})
	}
	marker := &model.ProcessedMonth{UserID: userID, MonthKey: monthKey, Ctime: now}
	if err := s.materializer.Materialize(ctx, marker, txs); err != nil {
		return nil, err
	}
	logutil.GetLogger(ctx).Info("recurring items materialized",
		zap.String("user_id", userID),
		zap.String("month_key", monthKey),
		zap.Int("count", len(txs)),
	)
	return txs, nil
}

type FinanceSummary struct {
	MonthKey        string      `json:"month_key"`
	Processed       bool        `json:"processed"`
	Totals          MonthTotals `json:"totals"`
	Balance         float64     `json:"balance"`
	PreviousBalance float64     `json:"previous_balance"`
	Daily           []DayBucket `json:"daily"`
}

// Summary computes the month dashboard from the full transaction history and
// a reference instant.
func (s *FinanceService) Summary(ctx context.Context, userID string, ref time.Time) (*FinanceSummary, error) {
	txs, err := s.transactions.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	processed, err := s.IsMonthProcessed(ctx, userID, ref)
	if err != nil {
		return nil, err
	}
	totals := TotalsForMonth(txs, ref)
	return &FinanceSummary{
		MonthKey:        MonthKey(ref),
		Processed:       processed,
		Totals:          totals,
		Balance:         totals.Income - totals.Expense,
		PreviousBalance: PreviousBalance(txs, ref),
		Daily:           DailySeries(txs, ref),
	}, nil
}
