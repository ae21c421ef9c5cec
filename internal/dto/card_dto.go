package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreateCardRequest represents the request to create a card on a board
type CreateCardRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=255" example:"Backend"`
	Description string `json:"description"`
}

// UpdateCardRequest represents the request to update a card; omitted fields are unchanged
type UpdateCardRequest struct {
	Name        *string      `json:"name,omitempty" binding:"omitempty,min=1,max=255"`
	Description *string      `json:"description,omitempty"`
	ListMember  *[]uuid.UUID `json:"list_member,omitempty"`
}

// CardResponse represents the card response
type CardResponse struct {
	ID          uuid.UUID   `json:"id"`
	BoardID     uuid.UUID   `json:"boardId"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	OwnerID     uuid.UUID   `json:"ownerId"`
	ListMember  []uuid.UUID `json:"list_member"`
	TasksCount  int         `json:"tasks_count"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}
