package service

import (
	"context"
	"strings"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/unohub/unohub/internal/model"
	appErr "github.com/unohub/unohub/internal/pkg/errors"
	"github.com/unohub/unohub/internal/pkg/timeutil"
	"github.com/unohub/unohub/internal/repo"
)

type PageService struct {
	pages *repo.PageRepo
}

func NewPageService(pages *repo.PageRepo) *PageService {
	return &PageService{pages: pages}
}

func (s *PageService) List(ctx context.Context, userID string) ([]model.Page, error) {
	return s.pages.List(ctx, userID)
}

func (s *PageService) Tree(ctx context.Context, userID string) ([]*PageNode, error) {
	pages, err := s.pages.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	return BuildPageTree(pages), nil
}

type Selection struct {
	PageID   string   `json:"page_id"`
	Expanded []string `json:"expanded"`
}

// Resolve maps a clicked page to the leaf the editor should open, plus the
// folder chain to expand on the way down.
func (s *PageService) Resolve(ctx context.Context, userID, pageID string) (*Selection, error) {
	pages, err := s.pages.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	leaf, chain, err := ResolveSelection(pages, pageID)
	if err != nil {
		return nil, err
	}
	return &Selection{PageID: leaf, Expanded: chain}, nil
}

func (s *PageService) Get(ctx context.Context, userID, pageID string) (*model.Page, error) {
	return s.pages.GetByID(ctx, userID, pageID)
}

// Create persists a blank page under the given parent. Nothing is staged
// locally before the insert; the id is server-assigned and the stored row is
// returned as-is.
func (s *PageService) Create(ctx context.Context, userID string, parentID *string) (*model.Page, error) {
	if parentID != nil {
		parent, err := s.pages.GetByID(ctx, userID, *parentID)
		if err != nil {
			return nil, appErr.ErrInvalid
		}
		if parent.Archived != repo.PageLive {
			return nil, appErr.ErrInvalid
		}
	}
	now := timeutil.NowUnix()
	page := &model.Page{
		ID:       newID(),
		UserID:   userID,
		Title:    "",
		Content:  "",
		ParentID: parentID,
		Archived: repo.PageLive,
		Ctime:    now,
		Mtime:    now,
	}
	if err := s.pages.Create(ctx, page); err != nil {
		return nil, err
	}
	return page, nil
}

// Rename rejects blank titles before touching the row; renaming to the
// current title is a successful no-op.
func (s *PageService) Rename(ctx context.Context, userID, pageID, title string) (*model.Page, error) {
	if strings.TrimSpace(title) == "" {
		return nil, appErr.ErrInvalid
	}
	page, err := s.pages.GetByID(ctx, userID, pageID)
	if err != nil {
		return nil, err
	}
	if page.Title == title {
		return page, nil
	}
	now := timeutil.NowUnix()
	if err := s.pages.UpdateFields(ctx, userID, pageID, map[string]interface{}{"title": title, "mtime": now}); err != nil {
		return nil, err
	}
	page.Title = title
	page.Mtime = now
	return page, nil
}

func (s *PageService) UpdateContent(ctx context.Context, userID, pageID, content string) error {
	return s.pages.UpdateFields(ctx, userID, pageID, map[string]interface{}{"content": content, "mtime": timeutil.NowUnix()})
}

func (s *PageService) UpdateIcon(ctx context.Context, userID, pageID string, icon *string) error {
	return s.pages.UpdateFields(ctx, userID, pageID, map[string]interface{}{"icon": icon, "mtime": timeutil.NowUnix()})
}

// Move re-parents a page. A page cannot become its own descendant, which is
// what keeps the stored forest acyclic.
func (s *PageService) Move(ctx context.Context, userID, pageID string, newParentID *string) error {
	if _, err := s.pages.GetByID(ctx, userID, pageID); err != nil {
		return err
	}
	if newParentID != nil {
		if *newParentID == pageID {
			return appErr.ErrInvalid
		}
		if _, err := s.pages.GetByID(ctx, userID, *newParentID); err != nil {
			return appErr.ErrInvalid
		}
		// descendants are resolved over the full set: an archived intermediate
		// must not hide the pages below it, or a cycle could slip through
		pages, err := s.pages.ListAll(ctx, userID)
		if err != nil {
			return err
		}
		for _, id := range subtreeIDs(pages, pageID) {
			if id == *newParentID {
				return appErr.ErrInvalid
			}
		}
	}
	return s.pages.UpdateFields(ctx, userID, pageID, map[string]interface{}{"parent_id": newParentID, "mtime": timeutil.NowUnix()})
}

func (s *PageService) Archive(ctx context.Context, userID, pageID string) error {
	return s.pages.SetArchived(ctx, userID, pageID, repo.PageArchived, timeutil.NowUnix())
}

func (s *PageService) Restore(ctx context.Context, userID, pageID string) error {
	return s.pages.SetArchived(ctx, userID, pageID, repo.PageLive, timeutil.NowUnix())
}

// Delete removes the page and every descendant in one statement. The
// descendant set is resolved from the user's full flat list, archived pages
// included, rather than trusting the store to cascade.
func (s *PageService) Delete(ctx context.Context, userID, pageID string) error {
	if _, err := s.pages.GetByID(ctx, userID, pageID); err != nil {
		return err
	}
	pages, err := s.pages.ListAll(ctx, userID)
	if err != nil {
		return err
	}
	ids := subtreeIDs(pages, pageID)
	if err := s.pages.DeleteByIDs(ctx, userID, ids); err != nil {
		return err
	}
	logutil.GetLogger(ctx).Info("page subtree deleted",
		zap.String("user_id", userID),
		zap.String("page_id", pageID),
		zap.Int("count", len(ids)),
	)
	return nil
}

// PurgeArchivedBefore hard-deletes every page archived before cutoff,
// together with its whole subtree.
func (s *PageService) PurgeArchivedBefore(ctx context.Context, cutoff int64) (int, error) {
	expired, err := s.pages.ListArchivedBefore(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	if len(expired) == 0 {
		return 0, nil
	}
	byUser := make(map[string][]string)
	for _, page := range expired {
		byUser[page.UserID] = append(byUser[page.UserID], page.ID)
	}
	purged := 0
	for userID, roots := range byUser {
		all, err := s.pages.ListAll(ctx, userID)
		if err != nil {
			return purged, err
		}
		seen := make(map[string]struct{})
		ids := make([]string, 0, len(roots))
		for _, root := range roots {
			for _, id := range subtreeIDs(all, root) {
				if _, ok := seen[id]; ok {
					continue
				}
				seen[id] = struct{}{}
				ids = append(ids, id)
			}
		}
		if err := s.pages.DeleteByIDs(ctx, userID, ids); err != nil {
			logutil.GetLogger(ctx).Error("purge archived pages failed",
				zap.String("user_id", userID),
				zap.Error(err),
			)
			continue
		}
		purged += len(ids)
	}
	return purged, nil
}
