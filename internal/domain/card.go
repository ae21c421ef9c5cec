package domain

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Card groups tasks within a board. BoardID never changes after creation.
type Card struct {
	BaseModel
	BoardID     uuid.UUID                      `gorm:"type:uuid;not null;index:idx_cards_board_id" json:"boardId"`
	Name        string                         `gorm:"type:varchar(255);not null" json:"name"`
	Description string                         `gorm:"type:text" json:"description"`
	OwnerID     uuid.UUID                      `gorm:"type:uuid;not null;index:idx_cards_owner_id" json:"ownerId"`
	ListMember  datatypes.JSONSlice[uuid.UUID] `json:"list_member"`
	TasksCount  int                            `gorm:"not null;default:0" json:"tasks_count"`
}

// TableName specifies the table name for Card
func (Card) TableName() string {
	return "cards"
}
