package service

import (
	"context"
	"strings"

	"github.com/unohub/unohub/internal/model"
	appErr "github.com/unohub/unohub/internal/pkg/errors"
	"github.com/unohub/unohub/internal/pkg/timeutil"
	"github.com/unohub/unohub/internal/repo"
)

var weekdayCodes = map[string]struct{}{
	"mon": {}, "tue": {}, "wed": {}, "thu": {}, "fri": {}, "sat": {}, "sun": {},
}

type HabitService struct {
	habits *repo.HabitRepo
	logs   *repo.HabitLogRepo
}

func NewHabitService(habits *repo.HabitRepo, logs *repo.HabitLogRepo) *HabitService {
	return &HabitService{habits: habits, logs: logs}
}

type HabitInput struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Period      string   `json:"period"`
	Frequency   []string `json:"frequency"`
	Color       string   `json:"color"`
}

func validPeriod(period string) bool {
	switch period {
	case model.PeriodMorning, model.PeriodAfternoon, model.PeriodEvening, model.PeriodAnytime:
		return true
	}
	return false
}

func (s *HabitService) validate(input *HabitInput) error {
	if strings.TrimSpace(input.Title) == "" {
		return appErr.ErrInvalid
	}
	if input.Period == "" {
		input.Period = model.PeriodAnytime
	}
	if !validPeriod(input.Period) {
		return appErr.ErrInvalid
	}
	for _, day := range input.Frequency {
		if _, ok := weekdayCodes[day]; !ok {
			return appErr.ErrInvalid
		}
	}
	return nil
}

func (s *HabitService) List(ctx context.Context, userID string) ([]model.Habit, error) {
	return s.habits.List(ctx, userID)
}

func (s *HabitService) Create(ctx context.Context, userID string, input HabitInput) (*model.Habit, error) {
	if err := s.validate(&input); err != nil {
		return nil, err
	}
	habit := &model.Habit{
		ID:          newID(),
		UserID:      userID,
		Title:       input.Title,
		Description: input.Description,
		Period:      input.Period,
		Frequency:   input.Frequency,
		Color:       input.Color,
		Ctime:       timeutil.NowUnix(),
	}
	if err := s.habits.Create(ctx, habit); err != nil {
		return nil, err
	}
	return habit, nil
}

func (s *HabitService) Update(ctx context.Context, userID, habitID string, input HabitInput) error {
	if err := s.validate(&input); err != nil {
		return err
	}
	return s.habits.Update(ctx, userID, habitID, map[string]interface{}{
		"title":       input.Title,
		"description": input.Description,
		"period":      input.Period,
		"frequency":   strings.Join(input.Frequency, ","),
		"color":       input.Color,
	})
}

func (s *HabitService) Delete(ctx context.Context, userID, habitID string) error {
	return s.habits.Delete(ctx, userID, habitID)
}

func validDay(day string) bool {
	_, err := timeutil.ParseDayKey(day)
	return err == nil
}

func (s *HabitService) Logs(ctx context.Context, userID, fromDay, toDay string) ([]model.HabitLog, error) {
	if !validDay(fromDay) || !validDay(toDay) {
		return nil, appErr.ErrInvalid
	}
	return s.logs.ListRange(ctx, userID, fromDay, toDay)
}

// Toggle flips the check-in state of a habit for a day: absent creates the
// log, present removes it. The unique (habit_id, day) constraint makes
// concurrent duplicate check-ins collapse into one.
func (s *HabitService) Toggle(ctx context.Context, userID, habitID, day string) (bool, error) {
	if !validDay(day) {
		return false, appErr.ErrInvalid
	}
	if _, err := s.habits.GetByID(ctx, userID, habitID); err != nil {
		return false, err
	}
	existing, err := s.logs.Get(ctx, userID, habitID, day)
	if err == nil {
		if err := s.logs.Delete(ctx, userID, existing.ID); err != nil {
			return false, err
		}
		return false, nil
	}
	if !appErr.IsNotFound(err) {
		return false, err
	}
	log := &model.HabitLog{
		ID:      newID(),
		UserID:  userID,
		HabitID: habitID,
		Day:     day,
		Ctime:   timeutil.NowUnix(),
	}
	if err := s.logs.Create(ctx, log); err != nil {
		if appErr.IsConflict(err) {
			return true, nil
		}
		return false, err
	}
	return true, nil
}
