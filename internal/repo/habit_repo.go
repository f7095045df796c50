package repo

import (
	"context"
	"database/sql"
	"strings"

	"github.com/didi/gendry/builder"

	"github.com/unohub/unohub/internal/model"
	"github.com/unohub/unohub/internal/pkg/dbutil"
	appErr "github.com/unohub/unohub/internal/pkg/errors"
)

var habitColumns = []string{"id", "user_id", "title", "description", "period", "frequency", "color", "ctime"}

type HabitRepo struct {
	db *sql.DB
}

func NewHabitRepo(db *sql.DB) *HabitRepo {
	return &HabitRepo{db: db}
}

func (r *HabitRepo) Create(ctx context.Context, habit *model.Habit) error {
	data := map[string]interface{}{
		"id":          habit.ID,
		"user_id":     habit.UserID,
		"title":       habit.Title,
		"description": habit.Description,
		"period":      habit.Period,
		"frequency":   joinFrequency(habit.Frequency),
		"color":       habit.Color,
		"ctime":       habit.Ctime,
	}
	sqlStr, args, err := builder.BuildInsert("habits", []map[string]interface{}{data})
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	_, err = r.db.ExecContext(ctx, sqlStr, args...)
	return err
}

func (r *HabitRepo) List(ctx context.Context, userID string) ([]model.Habit, error) {
	where := map[string]interface{}{
		"user_id":  userID,
		"_orderby": "ctime asc",
	}
	sqlStr, args, err := builder.BuildSelect("habits", where, habitColumns)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	habits := make([]model.Habit, 0)
	for rows.Next() {
		var habit model.Habit
		var frequency string
		if err := rows.Scan(&habit.ID, &habit.UserID, &habit.Title, &habit.Description, &habit.Period, &frequency, &habit.Color, &habit.Ctime); err != nil {
			return nil, err
		}
		habit.Frequency = splitFrequency(frequency)
		habits = append(habits, habit)
	}
	return habits, rows.Err()
}

func (r *HabitRepo) GetByID(ctx context.Context, userID, habitID string) (*model.Habit, error) {
	where := map[string]interface{}{
		"id":      habitID,
		"user_id": userID,
	}
	sqlStr, args, err := builder.BuildSelect("habits", where, habitColumns)
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
	var habit model.Habit
	var frequency string
	if err := rows.Scan(&habit.ID, &habit.UserID, &habit.Title, &habit.Description, &habit.Period, &frequency, &habit.Color, &habit.Ctime); err != nil {
		return nil, err
	}
	habit.Frequency = splitFrequency(frequency)
	return &habit, nil
}

func (r *HabitRepo) Update(ctx context.Context, userID, habitID string, update map[string]interface{}) error {
	where := map[string]interface{}{
		"id":      habitID,
		"user_id": userID,
	}
	sqlStr, args, err := builder.BuildUpdate("habits", where, update)
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

// Delete removes the habit and its logs together.
func (r *HabitRepo) Delete(ctx context.Context, userID, habitID string) error {
	dbTx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = dbTx.Rollback() }()

	result, err := dbTx.ExecContext(ctx, "DELETE FROM habits WHERE id = $1 AND user_id = $2", habitID, userID)
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
	if _, err := dbTx.ExecContext(ctx, "DELETE FROM habit_logs WHERE habit_id = $1 AND user_id = $2", habitID, userID); err != nil {
		return err
	}
	return dbTx.Commit()
}

func joinFrequency(days []string) string {
	return strings.Join(days, ",")
}

func splitFrequency(value string) []string {
	if value == "" {
		return []string{}
	}
	return strings.Split(value, ",")
}
