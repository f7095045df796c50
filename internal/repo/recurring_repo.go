package repo

import (
	"context"
	"database/sql"

	"github.com/didi/gendry/builder"

	"github.com/unohub/unohub/internal/model"
	"github.com/unohub/unohub/internal/pkg/dbutil"
	appErr "github.com/unohub/unohub/internal/pkg/errors"
)

var recurringColumns = []string{"id", "user_id", "description", "amount", "kind", "category", "day_of_month", "ctime"}

type RecurringRepo struct {
	db *sql.DB
}

func NewRecurringRepo(db *sql.DB) *RecurringRepo {
	return &RecurringRepo{db: db}
}

func (r *RecurringRepo) CreateBatch(ctx context.Context, items []*model.RecurringItem) error {
	if len(items) == 0 {
		return nil
	}
	data := make([]map[string]interface{}, 0, len(items))
	for _, item := range items {
		data = append(data, map[string]interface{}{
			"id":           item.ID,
			"user_id":      item.UserID,
			"description":  item.Description,
			"amount":       item.Amount,
			"kind":         item.Kind,
			"category":     item.Category,
			"day_of_month": item.DayOfMonth,
			"ctime":        item.Ctime,
		})
	}
	sqlStr, args, err := builder.BuildInsert("recurring_items", data)
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	_, err = r.db.ExecContext(ctx, sqlStr, args...)
	return err
}

func (r *RecurringRepo) List(ctx context.Context, userID string) ([]model.RecurringItem, error) {
	where := map[string]interface{}{
		"user_id":  userID,
		"_orderby": "day_of_month asc, ctime asc",
	}
	sqlStr, args, err := builder.BuildSelect("recurring_items", where, recurringColumns)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	items := make([]model.RecurringItem, 0)
	for rows.Next() {
		var item model.RecurringItem
		if err := rows.Scan(&item.ID, &item.UserID, &item.Description, &item.Amount, &item.Kind, &item.Category, &item.DayOfMonth, &item.Ctime); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// ListOwners returns the ids of users that have at least one recurring item,
// the user set the materialization sweep walks.
func (r *RecurringRepo) ListOwners(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT DISTINCT user_id FROM recurring_items")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	owners := make([]string, 0)
	for rows.Next() {
		var owner string
		if err := rows.Scan(&owner); err != nil {
			return nil, err
		}
		owners = append(owners, owner)
	}
	return owners, rows.Err()
}

func (r *RecurringRepo) Delete(ctx context.Context, userID, itemID string) error {
	where := map[string]interface{}{
		"id":      itemID,
		"user_id": userID,
	}
	sqlStr, args, err := builder.BuildDelete("recurring_items", where)
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
