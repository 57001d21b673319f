package models

import "time"

// PostView records a distinct reader of a post. Views are never removed;
// the table is a one-way historical counter.
type PostView struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	PostID    uint      `gorm:"not null;index;uniqueIndex:idx_post_viewer" json:"post_id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_post_viewer" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
	Post Post `gorm:"foreignKey:PostID" json:"-"`
}
