package metrics

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// BusinessMetricsCollector refreshes the business gauges from the store.
// It implements cron.Job and is scheduled by main.
type BusinessMetricsCollector struct {
	db      *gorm.DB
	metrics *Metrics
	logger  *zap.Logger
	timeout time.Duration
}

// NewBusinessMetricsCollector creates a new collector
func NewBusinessMetricsCollector(db *gorm.DB, metrics *Metrics, logger *zap.Logger) *BusinessMetricsCollector {
	return &BusinessMetricsCollector{
		db:      db,
		metrics: metrics,
		logger:  logger,
		timeout: 5 * time.Second,
	}
}

// Run collects once
func (c *BusinessMetricsCollector) Run() {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("Panic in business metrics collection",
				zap.Any("panic", r),
			)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	var totals Totals
	counts := []struct {
		table string
		where string
		dst   *int64
	}{
		{"users", "", &totals.Users},
		{"boards", "", &totals.Boards},
		{"cards", "", &totals.Cards},
		{"tasks", "", &totals.Tasks},
		{"invitations", "status = 'pending'", &totals.PendingInvitations},
	}

	for _, q := range counts {
		tx := c.db.WithContext(ctx).Table(q.table)
		if q.where != "" {
			tx = tx.Where(q.where)
		}
		if err := tx.Count(q.dst).Error; err != nil {
			c.logger.Error("Failed to count rows", zap.String("table", q.table), zap.Error(err))
			return
		}
	}

	c.metrics.SetTotals(totals)
}
