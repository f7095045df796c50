package repo

import (
	"context"
	"database/sql"

	"github.com/didi/gendry/builder"

	"github.com/unohub/unohub/internal/model"
	"github.com/unohub/unohub/internal/pkg/dbutil"
	appErr "github.com/unohub/unohub/internal/pkg/errors"
)

var dietProfileColumns = []string{
	"user_id", "gender", "age", "weight", "height", "activity_level", "goal",
	"target_calories", "target_protein", "target_carbs", "target_fats", "target_water",
	"ctime", "mtime",
}

type DietProfileRepo struct {
	db *sql.DB
}

func NewDietProfileRepo(db *sql.DB) *DietProfileRepo {
	return &DietProfileRepo{db: db}
}

// Upsert writes the profile as one statement keyed on user_id, so saving
// the onboarding form again just replaces the previous answers. The ctime
// of the first save is kept.
func (r *DietProfileRepo) Upsert(ctx context.Context, profile *model.DietProfile) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO diet_profiles
			(user_id, gender, age, weight, height, activity_level, goal,
			 target_calories, target_protein, target_carbs, target_fats, target_water,
			 ctime, mtime)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (user_id) DO UPDATE SET
			gender = EXCLUDED.gender,
			age = EXCLUDED.age,
			weight = EXCLUDED.weight,
			height = EXCLUDED.height,
			activity_level = EXCLUDED.activity_level,
			goal = EXCLUDED.goal,
			target_calories = EXCLUDED.target_calories,
			target_protein = EXCLUDED.target_protein,
			target_carbs = EXCLUDED.target_carbs,
			target_fats = EXCLUDED.target_fats,
			target_water = EXCLUDED.target_water,
			mtime = EXCLUDED.mtime`,
		profile.UserID, profile.Gender, profile.Age, profile.Weight, profile.Height,
		profile.ActivityLevel, profile.Goal,
		profile.TargetCalories, profile.TargetProtein, profile.TargetCarbs,
		profile.TargetFats, profile.TargetWater,
		profile.Ctime, profile.Mtime)
	return err
}

func (r *DietProfileRepo) Get(ctx context.Context, userID string) (*model.DietProfile, error) {
	where := map[string]interface{}{
		"user_id": userID,
	}
	sqlStr, args, err := builder.BuildSelect("diet_profiles", where, dietProfileColumns)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	if !rows.Next() {
		return nil, appErr.ErrNotFound
	}
	var profile model.DietProfile
	if err := rows.Scan(&profile.UserID, &profile.Gender, &profile.Age, &profile.Weight,
		&profile.Height, &profile.ActivityLevel, &profile.Goal,
		&profile.TargetCalories, &profile.TargetProtein, &profile.TargetCarbs,
		&profile.TargetFats, &profile.TargetWater,
		&profile.Ctime, &profile.Mtime); err != nil {
		return nil, err
	}
	return &profile, nil
}
