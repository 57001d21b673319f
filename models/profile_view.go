package models

import "time"

// ProfileView records that a viewer opened the owner's profile.
// At most one row per distinct viewer; insertion order is preserved
// through the auto-increment id.
type ProfileView struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	ViewerUserID uint      `gorm:"not null;index;uniqueIndex:idx_viewer_owner" json:"viewer_user_id"`
	OwnerUserID  uint      `gorm:"not null;index;uniqueIndex:idx_viewer_owner" json:"owner_user_id"`
	CreatedAt    time.Time `json:"created_at"`

	ViewerUser User `gorm:"foreignKey:ViewerUserID" json:"-"`
	OwnerUser  User `gorm:"foreignKey:OwnerUserID" json:"-"`
}
