package repo

import (
	"context"
	"database/sql"

	"github.com/didi/gendry/builder"

	"github.com/unohub/unohub/internal/model"
	"github.com/unohub/unohub/internal/pkg/dbutil"
)

var dietFoodColumns = []string{"id", "user_id", "name", "calories", "protein", "carbs", "fats", "ctime"}

const dietFoodSearchLimit = 20

type DietFoodRepo struct {
	db *sql.DB
}

func NewDietFoodRepo(db *sql.DB) *DietFoodRepo {
	return &DietFoodRepo{db: db}
}

func (r *DietFoodRepo) Create(ctx context.Context, food *model.DietFood) error {
	data := map[string]interface{}{
		"id":       food.ID,
		"user_id":  food.UserID,
		"name":     food.Name,
		"calories": food.Calories,
		"protein":  food.Protein,
		"carbs":    food.Carbs,
		"fats":     food.Fats,
		"ctime":    food.Ctime,
	}
	sqlStr, args, err := builder.BuildInsert("diet_foods", []map[string]interface{}{data})
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	_, err = r.db.ExecContext(ctx, sqlStr, args...)
	return err
}

// Search matches the catalog by name substring, case-insensitive, for the
// meal form's autocomplete. ILIKE keeps the matching in the database.
func (r *DietFoodRepo) Search(ctx context.Context, userID, query string) ([]model.DietFood, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, user_id, name, calories, protein, carbs, fats, ctime FROM diet_foods WHERE user_id = $1 AND name ILIKE $2 ORDER BY name ASC LIMIT $3",
		userID, "%"+query+"%", dietFoodSearchLimit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	return scanDietFoods(rows)
}

func scanDietFoods(rows *sql.Rows) ([]model.DietFood, error) {
	foods := make([]model.DietFood, 0)
	for rows.Next() {
		var food model.DietFood
		if err := rows.Scan(&food.ID, &food.UserID, &food.Name, &food.Calories,
			&food.Protein, &food.Carbs, &food.Fats, &food.Ctime); err != nil {
			return nil, err
		}
		foods = append(foods, food)
	}
	return foods, rows.Err()
}
