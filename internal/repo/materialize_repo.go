package repo

import (
	"context"
	"database/sql"

	"github.com/didi/gendry/builder"

	"github.com/unohub/unohub/internal/model"
	"github.com/unohub/unohub/internal/pkg/dbutil"
	appErr "github.com/unohub/unohub/internal/pkg/errors"
)

// MaterializeRepo writes a month's worth of recurring transactions and the
// processed-month marker as one database transaction. The marker insert goes
// first with ON CONFLICT DO NOTHING: if another writer already claimed the
// month, zero rows come back and the whole thing rolls back as a no-op, so
// duplicate transactions cannot be produced by concurrent callers.
type MaterializeRepo struct {
	db *sql.DB
}

func NewMaterializeRepo(db *sql.DB) *MaterializeRepo {
	return &MaterializeRepo{db: db}
}

func (r *MaterializeRepo) Materialize(ctx context.Context, marker *model.ProcessedMonth, txs []*model.Transaction) error {
	dbTx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = dbTx.Rollback() }()

	result, err := dbTx.ExecContext(ctx,
		"INSERT INTO processed_months (user_id, month_key, ctime) VALUES ($1, $2, $3) ON CONFLICT (user_id, month_key) DO NOTHING",
		marker.UserID, marker.MonthKey, marker.Ctime)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return appErr.ErrConflict
	}

	if len(txs) > 0 {
		data := make([]map[string]interface{}, 0, len(txs))
		for _, tx := range txs {
			data = append(data, transactionRow(tx))
		}
		sqlStr, args, err := builder.BuildInsert("transactions", data)
		if err != nil {
			return err
		}
		sqlStr, args = dbutil.Finalize(sqlStr, args)
		if _, err := dbTx.ExecContext(ctx, sqlStr, args...); err != nil {
			return err
		}
	}
	return dbTx.Commit()
}
