package model

const (
	MealBreakfast = "breakfast"
	MealLunch     = "lunch"
	MealSnack     = "snack"
	MealDinner    = "dinner"
)

const (
	GoalLose     = "lose"
	GoalMaintain = "maintain"
	GoalGain     = "gain"
)

const (
	GenderMale   = "male"
	GenderFemale = "female"
)

// DietProfile stores the onboarding answers plus the targets derived from
// them. One row per user.
type DietProfile struct {
	UserID         string  `json:"user_id"`
	Gender         string  `json:"gender"`
	Age            int     `json:"age"`
	Weight         float64 `json:"weight"`
	Height         float64 `json:"height"`
	ActivityLevel  float64 `json:"activity_level"`
	Goal           string  `json:"goal"`
	TargetCalories int     `json:"target_calories"`
	TargetProtein  int     `json:"target_protein"`
	TargetCarbs    int     `json:"target_carbs"`
	TargetFats     int     `json:"target_fats"`
	TargetWater    int     `json:"target_water"`
	Ctime          int64   `json:"ctime"`
	Mtime          int64   `json:"mtime"`
}

// DietMeal is one logged food entry on a day.
type DietMeal struct {
	ID       string  `json:"id"`
	UserID   string  `json:"user_id"`
	Day      string  `json:"day"`
	MealType string  `json:"meal_type"`
	FoodName string  `json:"food_name"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fats     float64 `json:"fats"`
	Ctime    int64   `json:"ctime"`
}

// DietWater is one water intake entry in milliliters.
type DietWater struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`
	Day    string `json:"day"`
	Amount int    `json:"amount"`
	Ctime  int64  `json:"ctime"`
}

// DietFood is a saved catalog entry the meal form completes from.
type DietFood struct {
	ID       string  `json:"id"`
	UserID   string  `json:"user_id"`
	Name     string  `json:"name"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fats     float64 `json:"fats"`
	Ctime    int64   `json:"ctime"`
}
