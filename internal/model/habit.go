package model

const (
	PeriodMorning   = "morning"
	PeriodAfternoon = "afternoon"
	PeriodEvening   = "evening"
	PeriodAnytime   = "anytime"
)

// Habit.Frequency holds weekday codes ("mon".."sun"); empty means every day.
type Habit struct {
	ID          string   `json:"id"`
	UserID      string   `json:"user_id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Period      string   `json:"period"`
	Frequency   []string `json:"frequency"`
	Color       string   `json:"color"`
	Ctime       int64    `json:"ctime"`
}

// HabitLog records a check-in of a habit on a day ("YYYY-MM-DD").
type HabitLog struct {
	ID      string `json:"id"`
	UserID  string `json:"user_id"`
	HabitID string `json:"habit_id"`
	Day     string `json:"day"`
	Ctime   int64  `json:"ctime"`
}
