package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	appErr "github.com/unohub/unohub/internal/pkg/errors"
	"github.com/unohub/unohub/internal/repo"
	"github.com/unohub/unohub/internal/service"
	"github.com/unohub/unohub/test/testutil"
)

func newHabitService(t *testing.T) (*service.HabitService, func()) {
	t.Helper()
	db, cleanup := testutil.OpenTestDB(t)
	return service.NewHabitService(repo.NewHabitRepo(db), repo.NewHabitLogRepo(db)), cleanup
}

func TestHabitServiceToggle(t *testing.T) {
	svc, cleanup := newHabitService(t)
	defer cleanup()

	userID := testutil.NewID()
	ctx := context.Background()

	habit, err := svc.Create(ctx, userID, service.HabitInput{
		Title:     "morning run",
		Frequency: []string{"mon", "wed", "fri"},
	})
	require.NoError(t, err)

	checked, err := svc.Toggle(ctx, userID, habit.ID, "2026-08-28")
	require.NoError(t, err)
	require.True(t, checked)

	logs, err := svc.Logs(ctx, userID, "2026-08-01", "2026-08-31")
	require.NoError(t, err)
	require.Len(t, logs, 1)
	require.Equal(t, habit.ID, logs[0].HabitID)

	checked, err = svc.Toggle(ctx, userID, habit.ID, "2026-08-28")
	require.NoError(t, err)
	require.False(t, checked)

	logs, err = svc.Logs(ctx, userID, "2026-08-01", "2026-08-31")
	require.NoError(t, err)
	require.Empty(t, logs)
}

func TestHabitServiceRejectsMalformedDayKeys(t *testing.T) {
	svc, cleanup := newHabitService(t)
	defer cleanup()

	userID := testutil.NewID()
	ctx := context.Background()

	habit, err := svc.Create(ctx, userID, service.HabitInput{Title: "stretch"})
	require.NoError(t, err)

	for _, day := range []string{"", "2026-8-1", "28-08-2026", "not-a-day", "2026-13-01"} {
		_, err := svc.Toggle(ctx, userID, habit.ID, day)
		require.ErrorIs(t, err, appErr.ErrInvalid, "day %q", day)
	}

	_, err = svc.Logs(ctx, userID, "2026-8-1", "2026-08-31")
	require.ErrorIs(t, err, appErr.ErrInvalid)
	_, err = svc.Logs(ctx, userID, "2026-08-01", "")
	require.ErrorIs(t, err, appErr.ErrInvalid)

	logs, err := svc.Logs(ctx, userID, "2026-08-01", "2026-08-31")
	require.NoError(t, err)
	require.Empty(t, logs)
}

func TestHabitServiceToggleUnknownHabit(t *testing.T) {
	svc, cleanup := newHabitService(t)
	defer cleanup()

	_, err := svc.Toggle(context.Background(), testutil.NewID(), testutil.NewID(), "2026-08-28")
	require.ErrorIs(t, err, appErr.ErrNotFound)
}

func TestHabitServiceValidation(t *testing.T) {
	svc, cleanup := newHabitService(t)
	defer cleanup()

	userID := testutil.NewID()
	ctx := context.Background()

	_, err := svc.Create(ctx, userID, service.HabitInput{Title: " "})
	require.ErrorIs(t, err, appErr.ErrInvalid)

	_, err = svc.Create(ctx, userID, service.HabitInput{Title: "read", Frequency: []string{"monday"}})
	require.ErrorIs(t, err, appErr.ErrInvalid)

	_, err = svc.Create(ctx, userID, service.HabitInput{Title: "read", Period: "night"})
	require.ErrorIs(t, err, appErr.ErrInvalid)

	habit, err := svc.Create(ctx, userID, service.HabitInput{Title: "read"})
	require.NoError(t, err)
	require.Equal(t, "anytime", habit.Period)

	require.NoError(t, svc.Delete(ctx, userID, habit.ID))
	_, err = svc.Toggle(ctx, userID, habit.ID, "2026-08-28")
	require.ErrorIs(t, err, appErr.ErrNotFound)
}
