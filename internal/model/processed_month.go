package model

// ProcessedMonth marks that recurring items were already materialized for
// (UserID, MonthKey). MonthKey is "YYYY-MM".
type ProcessedMonth struct {
	UserID   string `json:"user_id"`
	MonthKey string `json:"month_key"`
	Ctime    int64  `json:"ctime"`
}
