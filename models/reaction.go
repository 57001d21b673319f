package models

import "time"

const (
	ReactionLike    = "like"
	ReactionDislike = "dislike"
)

// Reaction is a user's like or dislike on a post. One row per
// (post, user) pair, so a user can never hold both kinds at once.
type Reaction struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	PostID    uint      `gorm:"not null;index;uniqueIndex:idx_post_user_reaction" json:"post_id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_post_user_reaction" json:"user_id"`
	Kind      string    `gorm:"not null;type:varchar(10)" json:"kind"`
	CreatedAt time.Time `json:"created_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
	Post Post `gorm:"foreignKey:PostID" json:"-"`
}
