package repo_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/unohub/unohub/internal/model"
	appErr "github.com/unohub/unohub/internal/pkg/errors"
	"github.com/unohub/unohub/internal/pkg/timeutil"
	"github.com/unohub/unohub/internal/repo"
	"github.com/unohub/unohub/test/testutil"
)

func newPage(userID, title string, parentID *string) *model.Page {
	now := timeutil.NowUnix()
	return &model.Page{
		ID:       testutil.NewID(),
		UserID:   userID,
		Title:    title,
		ParentID: parentID,
		Archived: repo.PageLive,
		Ctime:    now,
		Mtime:    now,
	}
}

func TestPageRepoCRUDAndIsolation(t *testing.T) {
	db, cleanup := testutil.OpenTestDB(t)
	defer cleanup()

	pages := repo.NewPageRepo(db)
	userID := testutil.NewID()
	otherID := testutil.NewID()

	page := newPage(userID, "first", nil)
	require.NoError(t, pages.Create(context.Background(), page))

	fetched, err := pages.GetByID(context.Background(), userID, page.ID)
	require.NoError(t, err)
	require.Equal(t, "first", fetched.Title)
	require.Nil(t, fetched.ParentID)

	_, err = pages.GetByID(context.Background(), otherID, page.ID)
	require.ErrorIs(t, err, appErr.ErrNotFound)

	require.NoError(t, pages.UpdateFields(context.Background(), userID, page.ID, map[string]interface{}{
		"title": "renamed",
		"mtime": timeutil.NowUnix(),
	}))
	fetched, err = pages.GetByID(context.Background(), userID, page.ID)
	require.NoError(t, err)
	require.Equal(t, "renamed", fetched.Title)

	err = pages.UpdateFields(context.Background(), otherID, page.ID, map[string]interface{}{"title": "stolen"})
	require.ErrorIs(t, err, appErr.ErrNotFound)
}

func TestPageRepoDeleteByIDsRemovesWholeSet(t *testing.T) {
	db, cleanup := testutil.OpenTestDB(t)
	defer cleanup()

	pages := repo.NewPageRepo(db)
	userID := testutil.NewID()

	root := newPage(userID, "root", nil)
	require.NoError(t, pages.Create(context.Background(), root))
	child := newPage(userID, "child", &root.ID)
	require.NoError(t, pages.Create(context.Background(), child))
	grandchild := newPage(userID, "grandchild", &child.ID)
	require.NoError(t, pages.Create(context.Background(), grandchild))
	sibling := newPage(userID, "sibling", nil)
	require.NoError(t, pages.Create(context.Background(), sibling))

	require.NoError(t, pages.DeleteByIDs(context.Background(), userID, []string{root.ID, child.ID, grandchild.ID}))

	remaining, err := pages.List(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	require.Equal(t, sibling.ID, remaining[0].ID)

	err = pages.DeleteByIDs(context.Background(), userID, []string{root.ID})
	require.ErrorIs(t, err, appErr.ErrNotFound)
}

func TestPageRepoArchiveVisibility(t *testing.T) {
	db, cleanup := testutil.OpenTestDB(t)
	defer cleanup()

	pages := repo.NewPageRepo(db)
	userID := testutil.NewID()

	page := newPage(userID, "to archive", nil)
	require.NoError(t, pages.Create(context.Background(), page))

	oldMtime := time.Now().Add(-90 * 24 * time.Hour).Unix()
	require.NoError(t, pages.SetArchived(context.Background(), userID, page.ID, repo.PageArchived, oldMtime))

	listed, err := pages.List(context.Background(), userID)
	require.NoError(t, err)
	for _, p := range listed {
		require.NotEqual(t, page.ID, p.ID)
	}

	cutoff := time.Now().Add(-30 * 24 * time.Hour).Unix()
	expired, err := pages.ListArchivedBefore(context.Background(), cutoff)
	require.NoError(t, err)
	found := false
	for _, p := range expired {
		if p.ID == page.ID {
			found = true
		}
	}
	require.True(t, found)

	require.NoError(t, pages.SetArchived(context.Background(), userID, page.ID, repo.PageLive, timeutil.NowUnix()))
	listed, err = pages.List(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, listed, 1)
}
