package repo

import (
	"context"
	"database/sql"
)

type ProcessedMonthRepo struct {
	db *sql.DB
}

func NewProcessedMonthRepo(db *sql.DB) *ProcessedMonthRepo {
	return &ProcessedMonthRepo{db: db}
}

func (r *ProcessedMonthRepo) ListKeys(ctx context.Context, userID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT month_key FROM processed_months WHERE user_id = $1 ORDER BY month_key", userID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	keys := make([]string, 0)
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	return keys, rows.Err()
}

func (r *ProcessedMonthRepo) Exists(ctx context.Context, userID, monthKey string) (bool, error) {
	row := r.db.QueryRowContext(ctx, "SELECT COUNT(1) FROM processed_months WHERE user_id = $1 AND month_key = $2", userID, monthKey)
	var count int
	if err := row.Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}
