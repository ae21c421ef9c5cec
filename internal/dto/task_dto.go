package dto

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// CreateTaskRequest represents the request to create a task in a card.
// Status defaults to icebox and priority to medium.
type CreateTaskRequest struct {
	Title           string      `json:"title" binding:"required,min=1,max=255" example:"Write API"`
	Description     string      `json:"description"`
	Status          string      `json:"status,omitempty" example:"backlog"`
	Priority        string      `json:"priority,omitempty" example:"medium"`
	Deadline        *time.Time  `json:"deadline,omitempty"`
	AssignedMembers []uuid.UUID `json:"assignedMembers,omitempty"`
}

// UpdateTaskRequest represents the request to update a task; omitted fields are unchanged
type UpdateTaskRequest struct {
	Title       *string    `json:"title,omitempty" binding:"omitempty,min=1,max=255"`
	Description *string    `json:"description,omitempty"`
	Status      *string    `json:"status,omitempty"`
	Priority    *string    `json:"priority,omitempty"`
	// Deadline: an absent key keeps the current value, null clears it
	Deadline OptionalTime `json:"deadline,omitzero" swaggertype:"string" format:"date-time"`
}

// OptionalTime records whether a JSON key was present as well as its value
type OptionalTime struct {
	Set   bool
	Value *time.Time
}

// SetTime returns an OptionalTime carrying t
func SetTime(t time.Time) OptionalTime {
	return OptionalTime{Set: true, Value: &t}
}

// ClearTime returns an OptionalTime that marshals to null
func ClearTime() OptionalTime {
	return OptionalTime{Set: true}
}

func (o *OptionalTime) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Value = nil
		return nil
	}
	var t time.Time
	if err := json.Unmarshal(data, &t); err != nil {
		return err
	}
	o.Value = &t
	return nil
}

func (o OptionalTime) MarshalJSON() ([]byte, error) {
	if o.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*o.Value)
}

// IsZero reports an absent key, so omitzero drops it
func (o OptionalTime) IsZero() bool {
	return !o.Set
}

// MoveTaskRequest changes only the task status
type MoveTaskRequest struct {
	Status string `json:"status" binding:"required" example:"ongoing"`
}

// AssignTaskRequest assigns a board member to a task
type AssignTaskRequest struct {
	MemberID uuid.UUID `json:"memberId" binding:"required"`
}

// TaskResponse represents the task response
type TaskResponse struct {
	ID              uuid.UUID   `json:"id"`
	CardID          uuid.UUID   `json:"cardId"`
	BoardID         uuid.UUID   `json:"boardId"`
	Title           string      `json:"title"`
	Description     string      `json:"description"`
	Status          string      `json:"status"`
	Priority        string      `json:"priority"`
	Deadline        *time.Time  `json:"deadline"`
	OwnerID         uuid.UUID   `json:"ownerId"`
	AssignedMembers []uuid.UUID `json:"assignedMembers"`
	CreatedAt       time.Time   `json:"createdAt"`
	UpdatedAt       time.Time   `json:"updatedAt"`
}

// MoveTaskResponse carries both statuses so the client can emit task-moved
type MoveTaskResponse struct {
	Task       *TaskResponse `json:"task"`
	FromStatus string        `json:"fromStatus"`
	ToStatus   string        `json:"toStatus"`
}

// AssignmentResponse is one task/member pair
type AssignmentResponse struct {
	TaskID   uuid.UUID `json:"taskId"`
	MemberID uuid.UUID `json:"memberId"`
}
