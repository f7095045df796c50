package model

const (
	KindIncome  = "income"
	KindExpense = "expense"
)

type Transaction struct {
	ID          string  `json:"id"`
	UserID      string  `json:"user_id"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Kind        string  `json:"kind"`
	Category    string  `json:"category"`
	Date        int64   `json:"date"`
	IsRecurring int     `json:"is_recurring"`
	Ctime       int64   `json:"ctime"`
}
