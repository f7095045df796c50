package handler_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/unohub/unohub/internal/pkg/errcode"
	"github.com/unohub/unohub/test/testutil"
)

type pagePayload struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	ParentID *string `json:"parent_id"`
}

func createPage(t *testing.T, router http.Handler, token string, parentID *string) pagePayload {
	t.Helper()
	resp, parsed := doJSON(t, router, http.MethodPost, "/api/v1/pages", token, map[string]interface{}{
		"parent_id": parentID,
	})
	require.Equal(t, http.StatusOK, resp.Code)
	require.Zero(t, parsed.Code)
	var page pagePayload
	require.NoError(t, json.Unmarshal(parsed.Data, &page))
	require.NotEmpty(t, page.ID)
	return page
}

func TestPageTreeAndResolve(t *testing.T) {
	router, cleanup := setupRouter(t)
	defer cleanup()

	token := registerUser(t, router, testutil.NewID()+"@example.com")

	folder := createPage(t, router, token, nil)
	sub := createPage(t, router, token, &folder.ID)
	leaf := createPage(t, router, token, &sub.ID)

	resp, parsed := doJSON(t, router, http.MethodPut, "/api/v1/pages/"+folder.ID+"/title", token, map[string]string{"title": "Projects"})
	require.Equal(t, http.StatusOK, resp.Code)
	require.Zero(t, parsed.Code)

	resp, parsed = doJSON(t, router, http.MethodGet, "/api/v1/pages/"+folder.ID+"/resolve", token, nil)
	require.Equal(t, http.StatusOK, resp.Code)
	var selection struct {
		PageID   string   `json:"page_id"`
		Expanded []string `json:"expanded"`
	}
	require.NoError(t, json.Unmarshal(parsed.Data, &selection))
	require.Equal(t, leaf.ID, selection.PageID)
	require.Equal(t, []string{folder.ID, sub.ID}, selection.Expanded)
}

func TestPageMoveCycleRejected(t *testing.T) {
	router, cleanup := setupRouter(t)
	defer cleanup()

	token := registerUser(t, router, testutil.NewID()+"@example.com")

	root := createPage(t, router, token, nil)
	child := createPage(t, router, token, &root.ID)

	resp, parsed := doJSON(t, router, http.MethodPut, "/api/v1/pages/"+root.ID+"/move", token, map[string]interface{}{
		"parent_id": child.ID,
	})
	require.Equal(t, http.StatusOK, resp.Code)
	require.Equal(t, errcode.ErrInvalid, parsed.Code)
}

func TestPageDeleteCascades(t *testing.T) {
	router, cleanup := setupRouter(t)
	defer cleanup()

	token := registerUser(t, router, testutil.NewID()+"@example.com")

	root := createPage(t, router, token, nil)
	child := createPage(t, router, token, &root.ID)
	keep := createPage(t, router, token, nil)

	resp, parsed := doJSON(t, router, http.MethodDelete, "/api/v1/pages/"+root.ID, token, nil)
	require.Equal(t, http.StatusOK, resp.Code)
	require.Zero(t, parsed.Code)

	resp, parsed = doJSON(t, router, http.MethodGet, "/api/v1/pages", token, nil)
	require.Equal(t, http.StatusOK, resp.Code)
	var pages []pagePayload
	require.NoError(t, json.Unmarshal(parsed.Data, &pages))
	require.Len(t, pages, 1)
	require.Equal(t, keep.ID, pages[0].ID)

	resp, parsed = doJSON(t, router, http.MethodGet, "/api/v1/pages/"+child.ID, token, nil)
	require.Equal(t, http.StatusOK, resp.Code)
	require.Equal(t, errcode.ErrNotFound, parsed.Code)
}

func TestPageArchiveAndRestore(t *testing.T) {
	router, cleanup := setupRouter(t)
	defer cleanup()

	token := registerUser(t, router, testutil.NewID()+"@example.com")
	page := createPage(t, router, token, nil)

	resp, parsed := doJSON(t, router, http.MethodPost, "/api/v1/pages/"+page.ID+"/archive", token, nil)
	require.Equal(t, http.StatusOK, resp.Code)
	require.Zero(t, parsed.Code)

	resp, parsed = doJSON(t, router, http.MethodGet, "/api/v1/pages", token, nil)
	require.Equal(t, http.StatusOK, resp.Code)
	var pages []pagePayload
	require.NoError(t, json.Unmarshal(parsed.Data, &pages))
	require.Empty(t, pages)

	resp, parsed = doJSON(t, router, http.MethodPost, "/api/v1/pages/"+page.ID+"/restore", token, nil)
	require.Equal(t, http.StatusOK, resp.Code)
	require.Zero(t, parsed.Code)

	resp, parsed = doJSON(t, router, http.MethodGet, "/api/v1/pages", token, nil)
	require.Equal(t, http.StatusOK, resp.Code)
	require.NoError(t, json.Unmarshal(parsed.Data, &pages))
	require.Len(t, pages, 1)
}
