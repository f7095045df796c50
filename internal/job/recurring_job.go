package job

import (
	"context"
	"time"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	appErr "github.com/unohub/unohub/internal/pkg/errors"
	"github.com/unohub/unohub/internal/repo"
	"github.com/unohub/unohub/internal/service"
)

// RecurringMaterializeJob sweeps every user that owns recurring items and
// materializes the current month. Users whose month is already processed
// lose the marker race inside ProcessMonth and are skipped, so the sweep can
// run daily.
type RecurringMaterializeJob struct {
	recurring *repo.RecurringRepo
	finance   *service.FinanceService
}

func NewRecurringMaterializeJob(recurring *repo.RecurringRepo, finance *service.FinanceService) *RecurringMaterializeJob {
	return &RecurringMaterializeJob{recurring: recurring, finance: finance}
}

func (j *RecurringMaterializeJob) Name() string {
	return "recurring_materialize"
}

func (j *RecurringMaterializeJob) Run(ctx context.Context) error {
	if j.recurring == nil || j.finance == nil {
		return nil
	}
	owners, err := j.recurring.ListOwners(ctx)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	processed := 0
	for _, userID := range owners {
		if _, err := j.finance.ProcessMonth(ctx, userID, now); err != nil {
			if appErr.IsConflict(err) {
				continue
			}
			logutil.GetLogger(ctx).Error("materialize month failed",
				zap.String("user_id", userID),
				zap.Error(err),
			)
			continue
		}
		processed++
	}
	logutil.GetLogger(ctx).Info("recurring sweep done",
		zap.Int("owners", len(owners)),
		zap.Int("processed", processed),
	)
	return nil
}
