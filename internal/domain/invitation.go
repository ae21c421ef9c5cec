package domain

import (
	"github.com/google/uuid"
)

// InvitationStatus tracks the invitation lifecycle: pending -> accepted | declined
type InvitationStatus string

const (
	InvitationStatusPending  InvitationStatus = "pending"
	InvitationStatusAccepted InvitationStatus = "accepted"
	InvitationStatusDeclined InvitationStatus = "declined"
)

// IsTerminal reports whether no further transition is allowed
func (s InvitationStatus) IsTerminal() bool {
	return s == InvitationStatusAccepted || s == InvitationStatusDeclined
}

// Invitation asks a registered user to join a board
type Invitation struct {
	BaseModel
	BoardID      uuid.UUID        `gorm:"type:uuid;not null;index:idx_invitations_board_invitee,priority:1" json:"boardId"`
	InviterID    uuid.UUID        `gorm:"type:uuid;not null;index:idx_invitations_inviter_id" json:"board_owner_id"`
	SentByID     uuid.UUID        `gorm:"type:uuid;not null" json:"sent_by"`
	InviteeID    uuid.UUID        `gorm:"type:uuid;not null;index:idx_invitations_board_invitee,priority:2;index:idx_invitations_invitee_status,priority:1" json:"member_id"`
	InviteeEmail string           `gorm:"type:varchar(255);not null" json:"email_member"`
	Status       InvitationStatus `gorm:"type:varchar(20);not null;default:'pending';index:idx_invitations_invitee_status,priority:2" json:"status"`
}

// TableName specifies the table name for Invitation
func (Invitation) TableName() string {
	return "invitations"
}
