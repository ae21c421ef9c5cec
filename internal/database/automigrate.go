package database

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"taskboard-api/internal/domain"
)

// Models lists every persisted domain model in migration order
func Models() []interface{} {
	return []interface{}{
		&domain.User{},
		&domain.Board{},
		&domain.BoardMember{},
		&domain.Card{},
		&domain.Task{},
		&domain.TaskAssignee{},
		&domain.Invitation{},
		&domain.GitHubAttachment{},
		&domain.GitHubRepository{},
	}
}

// AutoMigrate creates or updates tables and indexes for all domain models
func AutoMigrate(db *gorm.DB, logger *zap.Logger) error {
	migrator := db.Migrator()

	for _, model := range Models() {
		existed := migrator.HasTable(model)

		if err := db.AutoMigrate(model); err != nil {
			logger.Error("Failed to migrate table",
				zap.String("model", fmt.Sprintf("%T", model)),
				zap.Bool("table_existed", existed),
				zap.Error(err),
			)
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}

		logger.Debug("Migrated table",
			zap.String("model", fmt.Sprintf("%T", model)),
			zap.Bool("was_existing", existed),
		)
	}

	logger.Info("Auto-migration completed", zap.Int("tables", len(Models())))
	return nil
}
