package repo

import (
	"context"
	"database/sql"

	"github.com/didi/gendry/builder"

	"github.com/unohub/unohub/internal/model"
	"github.com/unohub/unohub/internal/pkg/dbutil"
)

var dietWaterColumns = []string{"id", "user_id", "day", "amount", "ctime"}

type DietWaterRepo struct {
	db *sql.DB
}

func NewDietWaterRepo(db *sql.DB) *DietWaterRepo {
	return &DietWaterRepo{db: db}
}

func (r *DietWaterRepo) Create(ctx context.Context, entry *model.DietWater) error {
	data := map[string]interface{}{
		"id":      entry.ID,
		"user_id": entry.UserID,
		"day":     entry.Day,
		"amount":  entry.Amount,
		"ctime":   entry.Ctime,
	}
	sqlStr, args, err := builder.BuildInsert("diet_water", []map[string]interface{}{data})
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	_, err = r.db.ExecContext(ctx, sqlStr, args...)
	return err
}

func (r *DietWaterRepo) ListByDay(ctx context.Context, userID, day string) ([]model.DietWater, error) {
	where := map[string]interface{}{
		"user_id":  userID,
		"day":      day,
		"_orderby": "ctime asc",
	}
	sqlStr, args, err := builder.BuildSelect("diet_water", where, dietWaterColumns)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	entries := make([]model.DietWater, 0)
	for rows.Next() {
		var entry model.DietWater
		if err := rows.Scan(&entry.ID, &entry.UserID, &entry.Day, &entry.Amount, &entry.Ctime); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
