package models

import "time"

// Block is one-directional: the blocker hides their content from the
// blocked user. No reciprocal edge is stored.
type Block struct {
	ID            uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	BlockerUserID uint      `gorm:"not null;index;uniqueIndex:idx_blocker_blocked" json:"blocker_user_id"`
	BlockedUserID uint      `gorm:"not null;index;uniqueIndex:idx_blocker_blocked" json:"blocked_user_id"`
	CreatedAt     time.Time `json:"created_at"`

	BlockerUser User `gorm:"foreignKey:BlockerUserID" json:"-"`
	BlockedUser User `gorm:"foreignKey:BlockedUserID" json:"-"`
}
