package repo

import (
	"context"
	"database/sql"

	"github.com/didi/gendry/builder"

	"github.com/unohub/unohub/internal/model"
	"github.com/unohub/unohub/internal/pkg/dbutil"
	appErr "github.com/unohub/unohub/internal/pkg/errors"
)

var dietMealColumns = []string{"id", "user_id", "day", "meal_type", "food_name", "calories", "protein", "carbs", "fats", "ctime"}

type DietMealRepo struct {
	db *sql.DB
}

func NewDietMealRepo(db *sql.DB) *DietMealRepo {
	return &DietMealRepo{db: db}
}

func (r *DietMealRepo) Create(ctx context.Context, meal *model.DietMeal) error {
	data := map[string]interface{}{
		"id":        meal.ID,
		"user_id":   meal.UserID,
		"day":       meal.Day,
		"meal_type": meal.MealType,
		"food_name": meal.FoodName,
		"calories":  meal.Calories,
		"protein":   meal.Protein,
		"carbs":     meal.Carbs,
		"fats":      meal.Fats,
		"ctime":     meal.Ctime,
	}
	sqlStr, args, err := builder.BuildInsert("diet_meals", []map[string]interface{}{data})
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	_, err = r.db.ExecContext(ctx, sqlStr, args...)
	return err
}

func (r *DietMealRepo) ListByDay(ctx context.Context, userID, day string) ([]model.DietMeal, error) {
	where := map[string]interface{}{
		"user_id":  userID,
		"day":      day,
		"_orderby": "ctime asc",
	}
	sqlStr, args, err := builder.BuildSelect("diet_meals", where, dietMealColumns)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	meals := make([]model.DietMeal, 0)
	for rows.Next() {
		var meal model.DietMeal
		if err := rows.Scan(&meal.ID, &meal.UserID, &meal.Day, &meal.MealType, &meal.FoodName,
			&meal.Calories, &meal.Protein, &meal.Carbs, &meal.Fats, &meal.Ctime); err != nil {
			return nil, err
		}
		meals = append(meals, meal)
	}
	return meals, rows.Err()
}

func (r *DietMealRepo) Delete(ctx context.Context, userID, mealID string) error {
	where := map[string]interface{}{
		"id":      mealID,
		"user_id": userID,
	}
	sqlStr, args, err := builder.BuildDelete("diet_meals", where)
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	result, err := r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return appErr.ErrNotFound
	}
	return nil
}
