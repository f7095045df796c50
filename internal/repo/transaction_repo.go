package repo

import (
	"context"
	"database/sql"

	"github.com/didi/gendry/builder"

	"github.com/unohub/unohub/internal/model"
	"github.com/unohub/unohub/internal/pkg/dbutil"
	appErr "github.com/unohub/unohub/internal/pkg/errors"
)

var transactionColumns = []string{"id", "user_id", "description", "amount", "kind", "category", "date", "is_recurring", "ctime"}

type TransactionRepo struct {
	db *sql.DB
}

func NewTransactionRepo(db *sql.DB) *TransactionRepo {
	return &TransactionRepo{db: db}
}

func (r *TransactionRepo) Create(ctx context.Context, tx *model.Transaction) error {
	sqlStr, args, err := builder.BuildInsert("transactions", []map[string]interface{}{transactionRow(tx)})
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	_, err = r.db.ExecContext(ctx, sqlStr, args...)
	return err
}

// List returns all of the user's transactions, newest first. The ledger folds
// recompute balances from the full history, so there is no pagination here.
func (r *TransactionRepo) List(ctx context.Context, userID string) ([]model.Transaction, error) {
	where := map[string]interface{}{
		"user_id":  userID,
		"_orderby": "date desc, ctime desc",
	}
	sqlStr, args, err := builder.BuildSelect("transactions", where, transactionColumns)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	txs := make([]model.Transaction, 0)
	for rows.Next() {
		var tx model.Transaction
		if err := rows.Scan(&tx.ID, &tx.UserID, &tx.Description, &tx.Amount, &tx.Kind, &tx.Category, &tx.Date, &tx.IsRecurring, &tx.Ctime); err != nil {
			return nil, err
		}
		txs = append(txs, tx)
	}
	return txs, rows.Err()
}

func (r *TransactionRepo) Delete(ctx context.Context, userID, txID string) error {
	where := map[string]interface{}{
		"id":      txID,
		"user_id": userID,
	}
	sqlStr, args, err := builder.BuildDelete("transactions", where)
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

func transactionRow(tx *model.Transaction) map[string]interface{} {
	return map[string]interface{}{
		"id":           tx.ID,
		"user_id":      tx.UserID,
		"description":  tx.Description,
		"amount":       tx.Amount,
		"kind":         tx.Kind,
		"category":     tx.Category,
		"date":         tx.Date,
		"is_recurring": tx.IsRecurring,
		"ctime":        tx.Ctime,
	}
}
