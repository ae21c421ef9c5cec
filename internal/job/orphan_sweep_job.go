package job

import (
	"context"
	"time"

	"go.uber.org/zap"

	"taskboard-api/internal/metrics"
	"taskboard-api/internal/repository"
)

const sweepTimeout = 2 * time.Minute

// OrphanSweepJob removes rows left behind when a create raced a cascading delete
type OrphanSweepJob struct {
	orphanRepo repository.OrphanRepository
	metrics    *metrics.Metrics
	logger     *zap.Logger
}

// NewOrphanSweepJob creates a new OrphanSweepJob instance
func NewOrphanSweepJob(
	orphanRepo repository.OrphanRepository,
	m *metrics.Metrics,
	logger *zap.Logger,
) *OrphanSweepJob {
	return &OrphanSweepJob{
		orphanRepo: orphanRepo,
		metrics:    m,
		logger:     logger,
	}
}

// Run executes one sweep; it satisfies cron.Job
func (j *OrphanSweepJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
	defer cancel()

	j.Sweep(ctx)
}

// Sweep walks every kind parent-first and returns the number of rows removed per kind.
// A failing kind is logged and skipped.
func (j *OrphanSweepJob) Sweep(ctx context.Context) map[repository.OrphanKind]int64 {
	removed := make(map[repository.OrphanKind]int64, len(repository.OrphanKinds))
	var total int64
	failed := 0

	for _, kind := range repository.OrphanKinds {
		if ctx.Err() != nil {
			j.logger.Warn("Orphan sweep interrupted", zap.Error(ctx.Err()))
			break
		}

		n, err := j.orphanRepo.DeleteOrphans(ctx, kind)
		if err != nil {
			j.logger.Error("Failed to delete orphans",
				zap.String("kind", string(kind)),
				zap.Error(err),
			)
			failed++
			continue
		}

		removed[kind] = n
		total += n
		if n > 0 {
			j.logger.Info("Deleted orphans",
				zap.String("kind", string(kind)),
				zap.Int64("count", n),
			)
			if j.metrics != nil {
				j.metrics.RecordOrphansSwept(string(kind), n)
			}
		}
	}

	j.logger.Debug("Orphan sweep completed",
		zap.Int64("removed", total),
		zap.Int("failed_kinds", failed),
	)
	return removed
}
