package dto

import (
	"time"

	"github.com/google/uuid"
)

// InviteRequest invites a registered user to a board by email
type InviteRequest struct {
	EmailMember string `json:"email_member" binding:"required,email" example:"bob@example.com"`
}

// RespondInvitationRequest accepts or declines an invitation
type RespondInvitationRequest struct {
	InviteID uuid.UUID `json:"invite_id" binding:"required"`
	Status   string    `json:"status" binding:"required" example:"accepted"`
}

// InvitationResponse represents the invitation response
type InvitationResponse struct {
	ID           uuid.UUID `json:"id"`
	BoardID      uuid.UUID `json:"boardId"`
	BoardOwnerID uuid.UUID `json:"board_owner_id"`
	SentBy       uuid.UUID `json:"sent_by"`
	MemberID     uuid.UUID `json:"member_id"`
	EmailMember  string    `json:"email_member"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
