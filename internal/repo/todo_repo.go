package repo

import (
	"context"
	"database/sql"

	"github.com/didi/gendry/builder"

	"github.com/unohub/unohub/internal/model"
	"github.com/unohub/unohub/internal/pkg/dbutil"
	appErr "github.com/unohub/unohub/internal/pkg/errors"
)

var todoColumns = []string{"id", "user_id", "title", "description", "priority", "category", "due_date", "is_completed", "ctime", "mtime"}

type TodoRepo struct {
	db *sql.DB
}

func NewTodoRepo(db *sql.DB) *TodoRepo {
	return &TodoRepo{db: db}
}

func (r *TodoRepo) Create(ctx context.Context, todo *model.Todo) error {
	data := map[string]interface{}{
		"id":           todo.ID,
		"user_id":      todo.UserID,
		"title":        todo.Title,
		"description":  todo.Description,
		"priority":     todo.Priority,
		"category":     todo.Category,
		"due_date":     todo.DueDate,
		"is_completed": todo.IsCompleted,
		"ctime":        todo.Ctime,
		"mtime":        todo.Mtime,
	}
	sqlStr, args, err := builder.BuildInsert("todos", []map[string]interface{}{data})
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	_, err = r.db.ExecContext(ctx, sqlStr, args...)
	return err
}

func (r *TodoRepo) List(ctx context.Context, userID string) ([]model.Todo, error) {
	where := map[string]interface{}{
		"user_id":  userID,
		"_orderby": "is_completed asc, ctime desc",
	}
	sqlStr, args, err := builder.BuildSelect("todos", where, todoColumns)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	todos := make([]model.Todo, 0)
	for rows.Next() {
		var todo model.Todo
		var due sql.NullInt64
		if err := rows.Scan(&todo.ID, &todo.UserID, &todo.Title, &todo.Description, &todo.Priority, &todo.Category, &due, &todo.IsCompleted, &todo.Ctime, &todo.Mtime); err != nil {
			return nil, err
		}
		if due.Valid {
			todo.DueDate = &due.Int64
		}
		todos = append(todos, todo)
	}
	return todos, rows.Err()
}

func (r *TodoRepo) Update(ctx context.Context, userID, todoID string, update map[string]interface{}) error {
	where := map[string]interface{}{
		"id":      todoID,
		"user_id": userID,
	}
	sqlStr, args, err := builder.BuildUpdate("todos", where, update)
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

func (r *TodoRepo) Delete(ctx context.Context, userID, todoID string) error {
	where := map[string]interface{}{
		"id":      todoID,
		"user_id": userID,
	}
	sqlStr, args, err := builder.BuildDelete("todos", where)
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
