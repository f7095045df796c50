package service

import (
	"context"
	"math"
	"strings"

	"github.com/unohub/unohub/internal/model"
	appErr "github.com/unohub/unohub/internal/pkg/errors"
	"github.com/unohub/unohub/internal/pkg/timeutil"
	"github.com/unohub/unohub/internal/repo"
)

// Targets a user sees before finishing onboarding.
var defaultDietTargets = DietTargets{
	Calories: 2000,
	Protein:  150,
	Carbs:    200,
	Fats:     65,
	Water:    2500,
}

const minDietCalories = 1200

// Calorie adjustments per goal, relative to maintenance.
const (
	loseDeficit = 500
	gainSurplus = 300
)

type DietService struct {
	profiles *repo.DietProfileRepo
	meals    *repo.DietMealRepo
	water    *repo.DietWaterRepo
	foods    *repo.DietFoodRepo
}

func NewDietService(profiles *repo.DietProfileRepo, meals *repo.DietMealRepo, water *repo.DietWaterRepo, foods *repo.DietFoodRepo) *DietService {
	return &DietService{profiles: profiles, meals: meals, water: water, foods: foods}
}

type DietProfileInput struct {
	Gender        string  `json:"gender"`
	Age           int     `json:"age"`
	Weight        float64 `json:"weight"`
	Height        float64 `json:"height"`
	ActivityLevel float64 `json:"activity_level"`
	Goal          string  `json:"goal"`
}

type DietTargets struct {
	Calories int `json:"calories"`
	Protein  int `json:"protein"`
	Carbs    int `json:"carbs"`
	Fats     int `json:"fats"`
	Water    int `json:"water"`
}

// Nutrients is a running total over meal entries.
type Nutrients struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fats     float64 `json:"fats"`
}

// DietDay is everything the day view needs in one response: the entries,
// their folded totals, the water drunk so far and the targets to draw the
// progress rings against.
type DietDay struct {
	Day     string           `json:"day"`
	Meals   []model.DietMeal `json:"meals"`
	Totals  Nutrients        `json:"totals"`
	Water   int              `json:"water"`
	Targets DietTargets      `json:"targets"`
}

func validGoal(goal string) bool {
	switch goal {
	case model.GoalLose, model.GoalMaintain, model.GoalGain:
		return true
	}
	return false
}

func validGender(gender string) bool {
	return gender == model.GenderMale || gender == model.GenderFemale
}

func validMealType(mealType string) bool {
	switch mealType {
	case model.MealBreakfast, model.MealLunch, model.MealSnack, model.MealDinner:
		return true
	}
	return false
}

// ComputeTargets derives the daily targets from body stats using the
// Mifflin-St Jeor estimate. Maintenance is BMR times the activity factor,
// shifted down for a cut and up for a bulk, never below 1200 kcal. Protein
// is 2 g and fat 0.9 g per kg of body weight; carbs absorb the remaining
// calories. Water is 35 ml per kg.
func ComputeTargets(input DietProfileInput) DietTargets {
	bmr := 10*input.Weight + 6.25*input.Height - 5*float64(input.Age)
	if input.Gender == model.GenderMale {
		bmr += 5
	} else {
		bmr -= 161
	}
	calories := bmr * input.ActivityLevel
	switch input.Goal {
	case model.GoalLose:
		calories -= loseDeficit
	case model.GoalGain:
		calories += gainSurplus
	}
	if calories < minDietCalories {
		calories = minDietCalories
	}
	targetCalories := int(math.Round(calories))
	protein := int(math.Round(input.Weight * 2))
	fats := int(math.Round(input.Weight * 0.9))
	carbCalories := float64(targetCalories) - float64(protein)*4 - float64(fats)*9
	carbs := 0
	if carbCalories > 0 {
		carbs = int(math.Round(carbCalories / 4))
	}
	return DietTargets{
		Calories: targetCalories,
		Protein:  protein,
		Carbs:    carbs,
		Fats:     fats,
		Water:    int(math.Round(input.Weight * 35)),
	}
}

// SumMeals folds meal entries into one nutrient total.
func SumMeals(meals []model.DietMeal) Nutrients {
	var total Nutrients
	for _, meal := range meals {
		total.Calories += meal.Calories
		total.Protein += meal.Protein
		total.Carbs += meal.Carbs
		total.Fats += meal.Fats
	}
	return total
}

func sumWater(entries []model.DietWater) int {
	total := 0
	for _, entry := range entries {
		total += entry.Amount
	}
	return total
}

func (s *DietService) UpsertProfile(ctx context.Context, userID string, input DietProfileInput) (*model.DietProfile, error) {
	if !validGender(input.Gender) || !validGoal(input.Goal) {
		return nil, appErr.ErrInvalid
	}
	if input.Age <= 0 || input.Age > 120 {
		return nil, appErr.ErrInvalid
	}
	if input.Weight <= 0 || input.Height <= 0 {
		return nil, appErr.ErrInvalid
	}
	if input.ActivityLevel < 1 || input.ActivityLevel > 2.5 {
		return nil, appErr.ErrInvalid
	}
	targets := ComputeTargets(input)
	now := timeutil.NowUnix()
	profile := &model.DietProfile{
		UserID:         userID,
		Gender:         input.Gender,
		Age:            input.Age,
		Weight:         input.Weight,
		Height:         input.Height,
		ActivityLevel:  input.ActivityLevel,
		Goal:           input.Goal,
		TargetCalories: targets.Calories,
		TargetProtein:  targets.Protein,
		TargetCarbs:    targets.Carbs,
		TargetFats:     targets.Fats,
		TargetWater:    targets.Water,
		Ctime:          now,
		Mtime:          now,
	}
	if err := s.profiles.Upsert(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *DietService) Profile(ctx context.Context, userID string) (*model.DietProfile, error) {
	return s.profiles.Get(ctx, userID)
}

type DietMealInput struct {
	Day      string  `json:"day"`
	MealType string  `json:"meal_type"`
	FoodName string  `json:"food_name"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fats     float64 `json:"fats"`
	SaveFood bool    `json:"save_food"`
}

func (s *DietService) AddMeal(ctx context.Context, userID string, input DietMealInput) (*model.DietMeal, error) {
	if !validDay(input.Day) || !validMealType(input.MealType) {
		return nil, appErr.ErrInvalid
	}
	name := strings.TrimSpace(input.FoodName)
	if name == "" {
		return nil, appErr.ErrInvalid
	}
	if input.Calories <= 0 || input.Protein < 0 || input.Carbs < 0 || input.Fats < 0 {
		return nil, appErr.ErrInvalid
	}
	now := timeutil.NowUnix()
	meal := &model.DietMeal{
		ID:       newID(),
		UserID:   userID,
		Day:      input.Day,
		MealType: input.MealType,
		FoodName: name,
		Calories: input.Calories,
		Protein:  input.Protein,
		Carbs:    input.Carbs,
		Fats:     input.Fats,
		Ctime:    now,
	}
	if err := s.meals.Create(ctx, meal); err != nil {
		return nil, err
	}
	if input.SaveFood {
		food := &model.DietFood{
			ID:       newID(),
			UserID:   userID,
			Name:     name,
			Calories: input.Calories,
			Protein:  input.Protein,
			Carbs:    input.Carbs,
			Fats:     input.Fats,
			Ctime:    now,
		}
		if err := s.foods.Create(ctx, food); err != nil {
			return nil, err
		}
	}
	return meal, nil
}

func (s *DietService) DeleteMeal(ctx context.Context, userID, mealID string) error {
	return s.meals.Delete(ctx, userID, mealID)
}

type DietWaterInput struct {
	Day    string `json:"day"`
	Amount int    `json:"amount"`
}

func (s *DietService) AddWater(ctx context.Context, userID string, input DietWaterInput) (*model.DietWater, error) {
	if !validDay(input.Day) || input.Amount <= 0 {
		return nil, appErr.ErrInvalid
	}
	entry := &model.DietWater{
		ID:     newID(),
		UserID: userID,
		Day:    input.Day,
		Amount: input.Amount,
		Ctime:  timeutil.NowUnix(),
	}
	if err := s.water.Create(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// Day assembles the day view. Users without a profile get the default
// targets so the view works before onboarding.
func (s *DietService) Day(ctx context.Context, userID, day string) (*DietDay, error) {
	if !validDay(day) {
		return nil, appErr.ErrInvalid
	}
	meals, err := s.meals.ListByDay(ctx, userID, day)
	if err != nil {
		return nil, err
	}
	waterEntries, err := s.water.ListByDay(ctx, userID, day)
	if err != nil {
		return nil, err
	}
	targets := defaultDietTargets
	profile, err := s.profiles.Get(ctx, userID)
	if err == nil {
		targets = DietTargets{
			Calories: profile.TargetCalories,
			Protein:  profile.TargetProtein,
			Carbs:    profile.TargetCarbs,
			Fats:     profile.TargetFats,
			Water:    profile.TargetWater,
		}
	} else if !appErr.IsNotFound(err) {
		return nil, err
	}
	return &DietDay{
		Day:     day,
		Meals:   meals,
		Totals:  SumMeals(meals),
		Water:   sumWater(waterEntries),
		Targets: targets,
	}, nil
}

type DietFoodInput struct {
	Name     string  `json:"name"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fats     float64 `json:"fats"`
}

func (s *DietService) AddFood(ctx context.Context, userID string, input DietFoodInput) (*model.DietFood, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, appErr.ErrInvalid
	}
	if input.Calories <= 0 || input.Protein < 0 || input.Carbs < 0 || input.Fats < 0 {
		return nil, appErr.ErrInvalid
	}
	food := &model.DietFood{
		ID:       newID(),
		UserID:   userID,
		Name:     name,
		Calories: input.Calories,
		Protein:  input.Protein,
		Carbs:    input.Carbs,
		Fats:     input.Fats,
		Ctime:    timeutil.NowUnix(),
	}
	if err := s.foods.Create(ctx, food); err != nil {
		return nil, err
	}
	return food, nil
}

func (s *DietService) SearchFoods(ctx context.Context, userID, query string) ([]model.DietFood, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []model.DietFood{}, nil
	}
	return s.foods.Search(ctx, userID, query)
}
