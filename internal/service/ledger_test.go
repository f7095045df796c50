package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/unohub/unohub/internal/model"
)

func unixDate(year int, month time.Month, day int) int64 {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Unix()
}

func tx(amount float64, kind string, date int64) model.Transaction {
	return model.Transaction{ID: newID(), UserID: "u1", Description: "tx", Amount: amount, Kind: kind, Date: date}
}

func TestMonthKey(t *testing.T) {
	ref := time.Date(2026, time.January, 15, 10, 30, 0, 0, time.UTC)
	require.Equal(t, "2026-01", MonthKey(ref))
}

func TestMaterializeDate(t *testing.T) {
	ref := time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC)
	require.Equal(t, unixDate(2026, time.January, 5), MaterializeDate(ref, 5).Unix())
	require.Equal(t, unixDate(2026, time.January, 1), MaterializeDate(ref, 1).Unix())
	require.Equal(t, unixDate(2026, time.January, 31), MaterializeDate(ref, 31).Unix())
}

func TestMaterializeDateClampsShortMonths(t *testing.T) {
	feb := time.Date(2026, time.February, 10, 0, 0, 0, 0, time.UTC)
	require.Equal(t, unixDate(2026, time.February, 28), MaterializeDate(feb, 31).Unix())

	leapFeb := time.Date(2028, time.February, 10, 0, 0, 0, 0, time.UTC)
	require.Equal(t, unixDate(2028, time.February, 29), MaterializeDate(leapFeb, 31).Unix())
}

func TestBalanceFold(t *testing.T) {
	txs := []model.Transaction{
		tx(100, model.KindIncome, unixDate(2025, time.December, 15)),
		tx(40, model.KindExpense, unixDate(2025, time.December, 20)),
		tx(200, model.KindIncome, unixDate(2026, time.January, 10)),
	}
	ref := time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC)

	require.InDelta(t, 60, PreviousBalance(txs, ref), 1e-9)

	totals := TotalsForMonth(txs, ref)
	require.InDelta(t, 200, totals.Income, 1e-9)
	require.InDelta(t, 0, totals.Expense, 1e-9)
}

func TestDailySeriesBucketing(t *testing.T) {
	ref := time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC)
	txs := []model.Transaction{
		tx(50, model.KindIncome, unixDate(2026, time.January, 5)),
		tx(20, model.KindExpense, unixDate(2026, time.January, 5)),
		tx(999, model.KindIncome, unixDate(2025, time.December, 5)),
	}
	series := DailySeries(txs, ref)
	require.Len(t, series, 31)
	require.Equal(t, 5, series[4].Day)
	require.InDelta(t, 50, series[4].Income, 1e-9)
	require.InDelta(t, 20, series[4].Expense, 1e-9)
	for i, bucket := range series {
		if i == 4 {
			continue
		}
		require.Zero(t, bucket.Income)
		require.Zero(t, bucket.Expense)
	}
}

func TestDailySeriesShortMonthLength(t *testing.T) {
	ref := time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC)
	series := DailySeries(nil, ref)
	require.Len(t, series, 28)
}
