package repo

import (
	"context"
	"database/sql"

	"github.com/didi/gendry/builder"

	"github.com/unohub/unohub/internal/model"
	"github.com/unohub/unohub/internal/pkg/dbutil"
	appErr "github.com/unohub/unohub/internal/pkg/errors"
)

var eventColumns = []string{"id", "user_id", "title", "description", "location", "kind", "start_time", "end_time", "ctime"}

type EventRepo struct {
	db *sql.DB
}

func NewEventRepo(db *sql.DB) *EventRepo {
	return &EventRepo{db: db}
}

func (r *EventRepo) Create(ctx context.Context, event *model.Event) error {
	data := map[string]interface{}{
		"id":          event.ID,
		"user_id":     event.UserID,
		"title":       event.Title,
		"description": event.Description,
		"location":    event.Location,
		"kind":        event.Kind,
		"start_time":  event.StartTime,
		"end_time":    event.EndTime,
		"ctime":       event.Ctime,
	}
	sqlStr, args, err := builder.BuildInsert("events", []map[string]interface{}{data})
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	_, err = r.db.ExecContext(ctx, sqlStr, args...)
	return err
}

// List returns events ordered by start time; from/to bound the range when
// non-zero.
func (r *EventRepo) List(ctx context.Context, userID string, from, to int64) ([]model.Event, error) {
	where := map[string]interface{}{
		"user_id":  userID,
		"_orderby": "start_time asc",
	}
	if from > 0 {
		where["start_time >="] = from
	}
	if to > 0 {
		where["start_time <"] = to
	}
	sqlStr, args, err := builder.BuildSelect("events", where, eventColumns)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	events := make([]model.Event, 0)
	for rows.Next() {
		var event model.Event
		if err := rows.Scan(&event.ID, &event.UserID, &event.Title, &event.Description, &event.Location, &event.Kind, &event.StartTime, &event.EndTime, &event.Ctime); err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, rows.Err()
}

func (r *EventRepo) Update(ctx context.Context, userID, eventID string, update map[string]interface{}) error {
	where := map[string]interface{}{
		"id":      eventID,
		"user_id": userID,
	}
	sqlStr, args, err := builder.BuildUpdate("events", where, update)
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

func (r *EventRepo) Delete(ctx context.Context, userID, eventID string) error {
	where := map[string]interface{}{
		"id":      eventID,
		"user_id": userID,
	}
	sqlStr, args, err := builder.BuildDelete("events", where)
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
