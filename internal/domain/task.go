package domain

import (
	"time"

	"github.com/google/uuid"
)

// TaskStatus is the column a task sits in; any status may move to any other
type TaskStatus string

const (
	TaskStatusIcebox  TaskStatus = "icebox"
	TaskStatusBacklog TaskStatus = "backlog"
	TaskStatusOngoing TaskStatus = "ongoing"
	TaskStatusReview  TaskStatus = "review"
	TaskStatusDone    TaskStatus = "done"
)

// IsValid reports whether s is one of the known statuses
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusIcebox, TaskStatusBacklog, TaskStatusOngoing, TaskStatusReview, TaskStatusDone:
		return true
	}
	return false
}

// TaskPriority ranks a task
type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
)

// IsValid reports whether p is one of the known priorities
func (p TaskPriority) IsValid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh:
		return true
	}
	return false
}

// Task is a unit of work inside a card. CardID and BoardID never change after creation.
type Task struct {
	BaseModel
	CardID      uuid.UUID      `gorm:"type:uuid;not null;index:idx_tasks_card_id" json:"cardId"`
	BoardID     uuid.UUID      `gorm:"type:uuid;not null;index:idx_tasks_board_id" json:"boardId"`
	Title       string         `gorm:"type:varchar(255);not null" json:"title"`
	Description string         `gorm:"type:text" json:"description"`
	Status      TaskStatus     `gorm:"type:varchar(20);not null;default:'icebox'" json:"status"`
	Priority    TaskPriority   `gorm:"type:varchar(20);not null;default:'medium'" json:"priority"`
	Deadline    *time.Time     `json:"deadline"`
	OwnerID     uuid.UUID      `gorm:"type:uuid;not null;index:idx_tasks_owner_id" json:"ownerId"`
	Assignees   []TaskAssignee `gorm:"foreignKey:TaskID" json:"-"`
}

// TableName specifies the table name for Task
func (Task) TableName() string {
	return "tasks"
}

// AssigneeIDs returns the user IDs of the loaded Assignees association
func (t *Task) AssigneeIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(t.Assignees))
	for _, a := range t.Assignees {
		ids = append(ids, a.UserID)
	}
	return ids
}

// TaskAssignee links a task to an assigned board member
type TaskAssignee struct {
	TaskID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"taskId"`
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey;index:idx_task_assignees_user_id" json:"memberId"`
	CreatedAt time.Time `gorm:"not null" json:"assignedAt"`
}

// TableName specifies the table name for TaskAssignee
func (TaskAssignee) TableName() string {
	return "task_assignees"
}
