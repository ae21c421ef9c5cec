package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// OrphanKind names a child table swept by the reconciliation job
type OrphanKind string

const (
	OrphanCards             OrphanKind = "cards"
	OrphanTasks             OrphanKind = "tasks"
	OrphanTaskAssignees     OrphanKind = "task_assignees"
	OrphanGitHubAttachments OrphanKind = "github_attachments"
	OrphanBoardMembers      OrphanKind = "board_members"
	OrphanInvitations       OrphanKind = "invitations"
)

// OrphanKinds lists the kinds parent-first, so a single pass also removes grandchildren
var OrphanKinds = []OrphanKind{
	OrphanCards,
	OrphanTasks,
	OrphanTaskAssignees,
	OrphanGitHubAttachments,
	OrphanBoardMembers,
	OrphanInvitations,
}

var orphanConditions = map[OrphanKind]string{
	OrphanCards:             "board_id NOT IN (SELECT id FROM boards)",
	OrphanTasks:             "card_id NOT IN (SELECT id FROM cards)",
	OrphanTaskAssignees:     "task_id NOT IN (SELECT id FROM tasks)",
	OrphanGitHubAttachments: "task_id NOT IN (SELECT id FROM tasks)",
	OrphanBoardMembers:      "board_id NOT IN (SELECT id FROM boards)",
	OrphanInvitations:       "board_id NOT IN (SELECT id FROM boards)",
}

// OrphanRepository finds and removes rows whose parent no longer exists
type OrphanRepository interface {
	CountOrphans(ctx context.Context, kind OrphanKind) (int64, error)
	DeleteOrphans(ctx context.Context, kind OrphanKind) (int64, error)
}

type orphanRepositoryImpl struct {
	db *gorm.DB
}

// NewOrphanRepository creates a new instance of OrphanRepository
func NewOrphanRepository(db *gorm.DB) OrphanRepository {
	return &orphanRepositoryImpl{db: db}
}

func (r *orphanRepositoryImpl) CountOrphans(ctx context.Context, kind OrphanKind) (int64, error) {
	cond, ok := orphanConditions[kind]
	if !ok {
		return 0, fmt.Errorf("unknown orphan kind %q", kind)
	}
	var count int64
	if err := r.db.WithContext(ctx).Table(string(kind)).Where(cond).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *orphanRepositoryImpl) DeleteOrphans(ctx context.Context, kind OrphanKind) (int64, error) {
	cond, ok := orphanConditions[kind]
	if !ok {
		return 0, fmt.Errorf("unknown orphan kind %q", kind)
	}
	result := r.db.WithContext(ctx).Exec(fmt.Sprintf("DELETE FROM %s WHERE %s", kind, cond))
	return result.RowsAffected, result.Error
}
