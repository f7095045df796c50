package repo

import (
	"context"
	"database/sql"

	"github.com/didi/gendry/builder"

	"github.com/unohub/unohub/internal/model"
	"github.com/unohub/unohub/internal/pkg/dbutil"
	appErr "github.com/unohub/unohub/internal/pkg/errors"
)

var habitLogColumns = []string{"id", "user_id", "habit_id", "day", "ctime"}

type HabitLogRepo struct {
	db *sql.DB
}

func NewHabitLogRepo(db *sql.DB) *HabitLogRepo {
	return &HabitLogRepo{db: db}
}

func (r *HabitLogRepo) Create(ctx context.Context, log *model.HabitLog) error {
	data := map[string]interface{}{
		"id":       log.ID,
		"user_id":  log.UserID,
		"habit_id": log.HabitID,
		"day":      log.Day,
		"ctime":    log.Ctime,
	}
	sqlStr, args, err := builder.BuildInsert("habit_logs", []map[string]interface{}{data})
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	_, err = r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		if dbutil.IsConflict(err) {
			return appErr.ErrConflict
		}
		return err
	}
	return nil
}

func (r *HabitLogRepo) ListByDay(ctx context.Context, userID, day string) ([]model.HabitLog, error) {
	where := map[string]interface{}{
		"user_id": userID,
		"day":     day,
	}
	return r.list(ctx, where)
}

func (r *HabitLogRepo) ListRange(ctx context.Context, userID, fromDay, toDay string) ([]model.HabitLog, error) {
	where := map[string]interface{}{
		"user_id": userID,
		"day >=":  fromDay,
		"day <=":  toDay,
	}
	return r.list(ctx, where)
}

func (r *HabitLogRepo) Get(ctx context.Context, userID, habitID, day string) (*model.HabitLog, error) {
	where := map[string]interface{}{
		"user_id":  userID,
		"habit_id": habitID,
		"day":      day,
	}
	logs, err := r.list(ctx, where)
	if err != nil {
		return nil, err
	}
	if len(logs) == 0 {
		return nil, appErr.ErrNotFound
	}
	return &logs[0], nil
}

func (r *HabitLogRepo) Delete(ctx context.Context, userID, logID string) error {
	where := map[string]interface{}{
		"id":      logID,
		"user_id": userID,
	}
	sqlStr, args, err := builder.BuildDelete("habit_logs", where)
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

func (r *HabitLogRepo) list(ctx context.Context, where map[string]interface{}) ([]model.HabitLog, error) {
	where["_orderby"] = "day asc, ctime asc"
	sqlStr, args, err := builder.BuildSelect("habit_logs", where, habitLogColumns)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	logs := make([]model.HabitLog, 0)
	for rows.Next() {
		var log model.HabitLog
		if err := rows.Scan(&log.ID, &log.UserID, &log.HabitID, &log.Day, &log.Ctime); err != nil {
			return nil, err
		}
		logs = append(logs, log)
	}
	return logs, rows.Err()
}
