package types

import (
	"time"

	"gorm.io/datatypes"
)

// UserDocument is the per-user document holding recipe collections, stored as
// a single JSONB payload. Recipes maps an inventory key
// ("inventory-items-{user_id}") to an ordered list of Recipe records. The
// backend treats it as read-only.
type UserDocument struct {
	ID        string         `gorm:"primaryKey;column:id" json:"id"`
	Recipes   datatypes.JSON `gorm:"type:jsonb;column:recipes" json:"recipes"`
	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
}

func (UserDocument) TableName() string {
	return "user_document"
}
