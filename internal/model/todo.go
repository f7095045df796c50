package model

const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

type Todo struct {
	ID          string `json:"id"`
	UserID      string `json:"user_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
	Category    string `json:"category"`
	DueDate     *int64 `json:"due_date"`
	IsCompleted int    `json:"is_completed"`
	Ctime       int64  `json:"ctime"`
	Mtime       int64  `json:"mtime"`
}
