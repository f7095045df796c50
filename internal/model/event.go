package model

const (
	EventWork     = "work"
	EventPersonal = "personal"
	EventHealth   = "health"
	EventLeisure  = "leisure"
	EventOther    = "other"
)

type Event struct {
	ID          string `json:"id"`
	UserID      string `json:"user_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Location    string `json:"location"`
	Kind        string `json:"kind"`
	StartTime   int64  `json:"start_time"`
	EndTime     int64  `json:"end_time"`
	Ctime       int64  `json:"ctime"`
}
