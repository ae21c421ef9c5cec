package database

import (
	"time"

	"gorm.io/gorm"
)

// MetricsRecorder is an interface for recording database metrics
type MetricsRecorder interface {
	RecordDBQuery(operation, table string, duration time.Duration, err error)
	UpdateDBStats(stats interface{})
}

const startTimeKey = "metrics:start_time"

// RegisterMetricsCallbacks times every query, create, update and delete statement
func RegisterMetricsCallbacks(db *gorm.DB, recorder MetricsRecorder) {
	cb := db.Callback()

	cb.Query().Before("gorm:query").Register("metrics:select_before", startTimer)
	cb.Query().After("gorm:query").Register("metrics:select_after", recordQuery("select", recorder))

	cb.Create().Before("gorm:create").Register("metrics:insert_before", startTimer)
	cb.Create().After("gorm:create").Register("metrics:insert_after", recordQuery("insert", recorder))

	cb.Update().Before("gorm:update").Register("metrics:update_before", startTimer)
	cb.Update().After("gorm:update").Register("metrics:update_after", recordQuery("update", recorder))

	cb.Delete().Before("gorm:delete").Register("metrics:delete_before", startTimer)
	cb.Delete().After("gorm:delete").Register("metrics:delete_after", recordQuery("delete", recorder))
}

func startTimer(db *gorm.DB) {
	db.InstanceSet(startTimeKey, time.Now())
}

func recordQuery(operation string, recorder MetricsRecorder) func(*gorm.DB) {
	return func(db *gorm.DB) {
		startTime, ok := db.InstanceGet(startTimeKey)
		if !ok {
			return
		}
		table := db.Statement.Table
		if table == "" {
			table = "unknown"
		}
		recorder.RecordDBQuery(operation, table, time.Since(startTime.(time.Time)), db.Error)
	}
}

// StartDBStatsCollector pushes connection pool stats to the recorder until done is closed
func StartDBStatsCollector(db *gorm.DB, recorder MetricsRecorder, interval time.Duration) chan struct{} {
	done := make(chan struct{})

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				sqlDB, err := db.DB()
				if err != nil {
					continue
				}
				recorder.UpdateDBStats(sqlDB.Stats())
			case <-done:
				return
			}
		}
	}()

	return done
}
