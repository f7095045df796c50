package job

import (
	"context"
	"time"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/unohub/unohub/internal/service"
)

// ArchivePurgeJob hard-deletes pages that have sat in the archive longer
// than the configured retention, subtrees included.
type ArchivePurgeJob struct {
	pages      *service.PageService
	maxAgeDays int
}

func NewArchivePurgeJob(pages *service.PageService, maxAgeDays int) *ArchivePurgeJob {
	return &ArchivePurgeJob{pages: pages, maxAgeDays: maxAgeDays}
}

func (j *ArchivePurgeJob) Name() string {
	return "archive_purge"
}

func (j *ArchivePurgeJob) Run(ctx context.Context) error {
	if j.pages == nil {
		return nil
	}
	maxAgeDays := j.maxAgeDays
	if maxAgeDays <= 0 {
		maxAgeDays = 30
	}
	cutoff := time.Now().Add(-time.Duration(maxAgeDays) * 24 * time.Hour).Unix()
	purged, err := j.pages.PurgeArchivedBefore(ctx, cutoff)
	if err != nil {
		return err
	}
	if purged > 0 {
		logutil.GetLogger(ctx).Info("archived pages purged", zap.Int("count", purged))
	}
	return nil
}
