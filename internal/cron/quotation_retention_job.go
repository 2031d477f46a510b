package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/quotewise/rfq-backend/pkg/logger"
)

const defaultRetentionDays = 90

type quotationPruner interface {
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// QuotationRetentionJob deletes quotations older than the retention window.
// Line items go with them through the repository.
type QuotationRetentionJob struct {
	repo          quotationPruner
	logg          *logger.Logger
	retentionDays int
	now           func() time.Time
}

// NewQuotationRetentionJob builds the retention job. A non-positive
// retentionDays falls back to the default window.
func NewQuotationRetentionJob(repo quotationPruner, logg *logger.Logger, retentionDays int) (*QuotationRetentionJob, error) {
	if repo == nil {
		return nil, fmt.Errorf("quotation repository required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	if retentionDays <= 0 {
		retentionDays = defaultRetentionDays
	}
	return &QuotationRetentionJob{
		repo:          repo,
		logg:          logg,
		retentionDays: retentionDays,
		now:           time.Now,
	}, nil
}

func (j *QuotationRetentionJob) Name() string {
	return "quotation_retention"
}

// Run prunes expired quotations and logs the count removed.
func (j *QuotationRetentionJob) Run(ctx context.Context) error {
	cutoff := j.now().AddDate(0, 0, -j.retentionDays)
	removed, err := j.repo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("pruning quotations: %w", err)
	}
	ctx = j.logg.WithFields(ctx, map[string]any{
		"removed": removed,
		"cutoff":  cutoff.Format(time.RFC3339),
	})
	j.logg.Info(ctx, "quotation retention sweep complete")
	return nil
}
