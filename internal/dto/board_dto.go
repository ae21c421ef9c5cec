package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreateBoardRequest represents the request to create a board.
// The caller becomes the owner and first member.
type CreateBoardRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=255" example:"Sprint 1"`
	Description string `json:"description"`
}

// UpdateBoardRequest represents the request to update a board; omitted fields are unchanged
type UpdateBoardRequest struct {
	Name        *string `json:"name,omitempty" binding:"omitempty,min=1,max=255"`
	Description *string `json:"description,omitempty"`
}

// BoardResponse represents the board response
type BoardResponse struct {
	ID          uuid.UUID   `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	OwnerID     uuid.UUID   `json:"ownerId"`
	Members     []uuid.UUID `json:"members"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}
