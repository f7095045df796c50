package service

import (
	"time"

	"github.com/unohub/unohub/internal/model"
)

// MonthKey returns the "YYYY-MM" key for t in UTC, the processed-month
// marker format.
func MonthKey(t time.Time) string {
	return t.UTC().Format("2006-01")
}

// MonthBounds returns the first instant of t's month and of the next month,
// both UTC.
func MonthBounds(t time.Time) (time.Time, time.Time) {
	t = t.UTC()
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}

// MaterializeDate places a recurring item's day inside ref's month, clamping
// days past the end of a short month to its last day.
func MaterializeDate(ref time.Time, dayOfMonth int) time.Time {
	start, end := MonthBounds(ref)
	last := end.Add(-time.Second).Day()
	if dayOfMonth < 1 {
		dayOfMonth = 1
	}
	if dayOfMonth > last {
		dayOfMonth = last
	}
	return time.Date(start.Year(), start.Month(), dayOfMonth, 0, 0, 0, 0, time.UTC)
}

type MonthTotals struct {
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
}

// TotalsForMonth sums income and expense over transactions dated inside
// ref's month.
func TotalsForMonth(txs []model.Transaction, ref time.Time) MonthTotals {
	start, end := MonthBounds(ref)
	var totals MonthTotals
	for i := range txs {
		date := time.Unix(txs[i].Date, 0).UTC()
		if date.Before(start) || !date.Before(end) {
			continue
		}
		if txs[i].Kind == model.KindIncome {
			totals.Income += txs[i].Amount
		} else {
			totals.Expense += txs[i].Amount
		}
	}
	return totals
}

// PreviousBalance is the signed sum over everything strictly before ref's
// month start. Recomputed from the full history on every call; there is no
// cached running total to drift.
func PreviousBalance(txs []model.Transaction, ref time.Time) float64 {
	start, _ := MonthBounds(ref)
	var balance float64
	for i := range txs {
		date := time.Unix(txs[i].Date, 0).UTC()
		if !date.Before(start) {
			continue
		}
		if txs[i].Kind == model.KindIncome {
			balance += txs[i].Amount
		} else {
			balance -= txs[i].Amount
		}
	}
	return balance
}

type DayBucket struct {
	Day     int     `json:"day"`
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
}

// DailySeries buckets ref-month transactions per day of month. The result
// always has one zero-filled entry per day of the month, so a 31-day month
// yields 31 buckets and a transaction on the 5th lands in index 4.
func DailySeries(txs []model.Transaction, ref time.Time) []DayBucket {
	start, end := MonthBounds(ref)
	days := end.Add(-time.Second).Day()
	series := make([]DayBucket, days)
	for i := range series {
		series[i].Day = i + 1
	}
	for i := range txs {
		date := time.Unix(txs[i].Date, 0).UTC()
		if date.Before(start) || !date.Before(end) {
			continue
		}
		bucket := &series[date.Day()-1]
		if txs[i].Kind == model.KindIncome {
			bucket.Income += txs[i].Amount
		} else {
			bucket.Expense += txs[i].Amount
		}
	}
	return series
}
