package service

import (
	"context"
	"strings"

	"github.com/unohub/unohub/internal/model"
	appErr "github.com/unohub/unohub/internal/pkg/errors"
	"github.com/unohub/unohub/internal/pkg/timeutil"
	"github.com/unohub/unohub/internal/repo"
)

type EventService struct {
	events *repo.EventRepo
}

func NewEventService(events *repo.EventRepo) *EventService {
	return &EventService{events: events}
}

type EventInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Location    string `json:"location"`
	Kind        string `json:"kind"`
	StartTime   int64  `json:"start_time"`
	EndTime     int64  `json:"end_time"`
}

func validEventKind(kind string) bool {
	switch kind {
	case model.EventWork, model.EventPersonal, model.EventHealth, model.EventLeisure, model.EventOther:
		return true
	}
	return false
}

func (s *EventService) validate(input *EventInput) error {
	if strings.TrimSpace(input.Title) == "" {
		return appErr.ErrInvalid
	}
	if input.Kind == "" {
		input.Kind = model.EventOther
	}
	if !validEventKind(input.Kind) {
		return appErr.ErrInvalid
	}
	if input.StartTime == 0 || input.EndTime < input.StartTime {
		return appErr.ErrInvalid
	}
	return nil
}

func (s *EventService) List(ctx context.Context, userID string, from, to int64) ([]model.Event, error) {
	return s.events.List(ctx, userID, from, to)
}

func (s *EventService) Create(ctx context.Context, userID string, input EventInput) (*model.Event, error) {
	if err := s.validate(&input); err != nil {
		return nil, err
	}
	event := &model.Event{
		ID:          newID(),
		UserID:      userID,
		Title:       input.Title,
		Description: input.Description,
		Location:    input.Location,
		Kind:        input.Kind,
		StartTime:   input.StartTime,
		EndTime:     input.EndTime,
		Ctime:       timeutil.NowUnix(),
	}
	if err := s.events.Create(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

func (s *EventService) Update(ctx context.Context, userID, eventID string, input EventInput) error {
	if err := s.validate(&input); err != nil {
		return err
	}
	return s.events.Update(ctx, userID, eventID, map[string]interface{}{
		"title":       input.Title,
		"description": input.Description,
		"location":    input.Location,
		"kind":        input.Kind,
		"start_time":  input.StartTime,
		"end_time":    input.EndTime,
	})
}

func (s *EventService) Delete(ctx context.Context, userID, eventID string) error {
	return s.events.Delete(ctx, userID, eventID)
}
