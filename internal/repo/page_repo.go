package repo

import (
	"context"
	"database/sql"

	"github.com/didi/gendry/builder"

	"github.com/unohub/unohub/internal/model"
	"github.com/unohub/unohub/internal/pkg/dbutil"
	appErr "github.com/unohub/unohub/internal/pkg/errors"
)

const (
	PageLive     = 0
	PageArchived = 1
)

var pageColumns = []string{"id", "user_id", "title", "content", "icon", "parent_id", "archived", "ctime", "mtime"}

type PageRepo struct {
	db *sql.DB
}

func NewPageRepo(db *sql.DB) *PageRepo {
	return &PageRepo{db: db}
}

func (r *PageRepo) Create(ctx context.Context, page *model.Page) error {
	data := map[string]interface{}{
		"id":        page.ID,
		"user_id":   page.UserID,
		"title":     page.Title,
		"content":   page.Content,
		"icon":      page.Icon,
		"parent_id": page.ParentID,
		"archived":  page.Archived,
		"ctime":     page.Ctime,
		"mtime":     page.Mtime,
	}
	sqlStr, args, err := builder.BuildInsert("pages", []map[string]interface{}{data})
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	_, err = r.db.ExecContext(ctx, sqlStr, args...)
	return err
}

// List returns the user's live pages in creation order, the order sibling
// nodes keep in the tree.
func (r *PageRepo) List(ctx context.Context, userID string) ([]model.Page, error) {
	where := map[string]interface{}{
		"user_id":  userID,
		"archived": PageLive,
		"_orderby": "ctime asc",
	}
	return r.list(ctx, where)
}

// ListAll returns every page of the user, archived included. Subtree
// resolution must see archived intermediates or a cascade would stop at them.
func (r *PageRepo) ListAll(ctx context.Context, userID string) ([]model.Page, error) {
	where := map[string]interface{}{
		"user_id":  userID,
		"_orderby": "ctime asc",
	}
	return r.list(ctx, where)
}

func (r *PageRepo) ListArchivedBefore(ctx context.Context, cutoff int64) ([]model.Page, error) {
	where := map[string]interface{}{
		"archived": PageArchived,
		"mtime <":  cutoff,
		"_orderby": "ctime asc",
	}
	return r.list(ctx, where)
}

func (r *PageRepo) GetByID(ctx context.Context, userID, pageID string) (*model.Page, error) {
	where := map[string]interface{}{
		"id":      pageID,
		"user_id": userID,
	}
	pages, err := r.list(ctx, where)
	if err != nil {
		return nil, err
	}
	if len(pages) == 0 {
		return nil, appErr.ErrNotFound
	}
	return &pages[0], nil
}

// UpdateFields applies a partial update to a live page, bumping nothing the
// caller did not include. Callers pass mtime themselves.
func (r *PageRepo) UpdateFields(ctx context.Context, userID, pageID string, update map[string]interface{}) error {
	where := map[string]interface{}{
		"id":       pageID,
		"user_id":  userID,
		"archived": PageLive,
	}
	return r.update(ctx, where, update)
}

func (r *PageRepo) SetArchived(ctx context.Context, userID, pageID string, archived int, mtime int64) error {
	where := map[string]interface{}{
		"id":      pageID,
		"user_id": userID,
	}
	return r.update(ctx, where, map[string]interface{}{"archived": archived, "mtime": mtime})
}

// DeleteByIDs removes a page set in one statement so a subtree cascade is
// atomic without relying on foreign-key behavior.
func (r *PageRepo) DeleteByIDs(ctx context.Context, userID string, pageIDs []string) error {
	if len(pageIDs) == 0 {
		return nil
	}
	ids := make([]interface{}, 0, len(pageIDs))
	for _, id := range pageIDs {
		ids = append(ids, id)
	}
	where := map[string]interface{}{
		"user_id": userID,
		"id in":   ids,
	}
	sqlStr, args, err := builder.BuildDelete("pages", where)
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

func (r *PageRepo) update(ctx context.Context, where, update map[string]interface{}) error {
	sqlStr, args, err := builder.BuildUpdate("pages", where, update)
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

func (r *PageRepo) list(ctx context.Context, where map[string]interface{}) ([]model.Page, error) {
	sqlStr, args, err := builder.BuildSelect("pages", where, pageColumns)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	pages := make([]model.Page, 0)
	for rows.Next() {
		page, err := scanPage(rows)
		if err != nil {
			return nil, err
		}
		pages = append(pages, *page)
	}
	return pages, rows.Err()
}

func scanPage(rows *sql.Rows) (*model.Page, error) {
	var page model.Page
	var icon, parentID sql.NullString
	if err := rows.Scan(&page.ID, &page.UserID, &page.Title, &page.Content, &icon, &parentID, &page.Archived, &page.Ctime, &page.Mtime); err != nil {
		return nil, err
	}
	if icon.Valid {
		page.Icon = &icon.String
	}
	if parentID.Valid {
		page.ParentID = &parentID.String
	}
	return &page, nil
}
