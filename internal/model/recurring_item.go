package model

// RecurringItem is a template for a transaction generated once per month on
// DayOfMonth. Days past the end of a short month clamp to its last day.
type RecurringItem struct {
	ID          string  `json:"id"`
	UserID      string  `json:"user_id"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Kind        string  `json:"kind"`
	Category    string  `json:"category"`
	DayOfMonth  int     `json:"day_of_month"`
	Ctime       int64   `json:"ctime"`
}
