package service

import (
	"context"
	"strings"

	"github.com/unohub/unohub/internal/model"
	appErr "github.com/unohub/unohub/internal/pkg/errors"
	"github.com/unohub/unohub/internal/pkg/timeutil"
	"github.com/unohub/unohub/internal/repo"
)

type TodoService struct {
	todos *repo.TodoRepo
}

func NewTodoService(todos *repo.TodoRepo) *TodoService {
	return &TodoService{todos: todos}
}

type TodoInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
	Category    string `json:"category"`
	DueDate     *int64 `json:"due_date"`
}

func validPriority(priority string) bool {
	switch priority {
	case model.PriorityLow, model.PriorityMedium, model.PriorityHigh:
		return true
	}
	return false
}

func (s *TodoService) List(ctx context.Context, userID string) ([]model.Todo, error) {
	return s.todos.List(ctx, userID)
}

func (s *TodoService) Create(ctx context.Context, userID string, input TodoInput) (*model.Todo, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, appErr.ErrInvalid
	}
	if input.Priority == "" {
		input.Priority = model.PriorityMedium
	}
	if !validPriority(input.Priority) {
		return nil, appErr.ErrInvalid
	}
	now := timeutil.NowUnix()
	todo := &model.Todo{
		ID:          newID(),
		UserID:      userID,
		Title:       input.Title,
		Description: input.Description,
		Priority:    input.Priority,
		Category:    input.Category,
		DueDate:     input.DueDate,
		Ctime:       now,
		Mtime:       now,
	}
	if err := s.todos.Create(ctx, todo); err != nil {
		return nil, err
	}
	return todo, nil
}

func (s *TodoService) Update(ctx context.Context, userID, todoID string, input TodoInput) error {
	if strings.TrimSpace(input.Title) == "" {
		return appErr.ErrInvalid
	}
	if input.Priority == "" {
		input.Priority = model.PriorityMedium
	}
	if !validPriority(input.Priority) {
		return appErr.ErrInvalid
	}
	return s.todos.Update(ctx, userID, todoID, map[string]interface{}{
		"title":       input.Title,
		"description": input.Description,
		"priority":    input.Priority,
		"category":    input.Category,
		"due_date":    input.DueDate,
		"mtime":       timeutil.NowUnix(),
	})
}

func (s *TodoService) SetCompleted(ctx context.Context, userID, todoID string, completed bool) error {
	value := 0
	if completed {
		value = 1
	}
	return s.todos.Update(ctx, userID, todoID, map[string]interface{}{
		"is_completed": value,
		"mtime":        timeutil.NowUnix(),
	})
}

func (s *TodoService) Delete(ctx context.Context, userID, todoID string) error {
	return s.todos.Delete(ctx, userID, todoID)
}
