package domain

import (
	"time"

	"github.com/google/uuid"
)

// Board is the top-level workspace; the owner is always one of its members
type Board struct {
	BaseModel
	Name        string        `gorm:"type:varchar(255);not null" json:"name"`
	Description string        `gorm:"type:text" json:"description"`
	OwnerID     uuid.UUID     `gorm:"type:uuid;not null;index:idx_boards_owner_id" json:"ownerId"`
	Members     []BoardMember `gorm:"foreignKey:BoardID" json:"-"`
}

// TableName specifies the table name for Board
func (Board) TableName() string {
	return "boards"
}

// MemberIDs returns the user IDs of the loaded Members association
func (b *Board) MemberIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(b.Members))
	for _, m := range b.Members {
		ids = append(ids, m.UserID)
	}
	return ids
}

// HasMember reports whether userID is the owner or in the loaded member set
func (b *Board) HasMember(userID uuid.UUID) bool {
	if b.OwnerID == userID {
		return true
	}
	for _, m := range b.Members {
		if m.UserID == userID {
			return true
		}
	}
	return false
}

// BoardMember is one row of the board membership set
type BoardMember struct {
	BoardID   uuid.UUID `gorm:"type:uuid;primaryKey" json:"boardId"`
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey;index:idx_board_members_user_id" json:"userId"`
	CreatedAt time.Time `gorm:"not null" json:"joinedAt"`
}

// TableName specifies the table name for BoardMember
func (BoardMember) TableName() string {
	return "board_members"
}
