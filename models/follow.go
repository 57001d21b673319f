package models

import "time"

// Follow is a directed edge: the follower follows the following user.
// The composite unique index makes double-follows impossible at the
// storage layer regardless of request interleaving.
type Follow struct {
	ID              uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	FollowerUserID  uint      `gorm:"not null;index;uniqueIndex:idx_follower_following" json:"follower_user_id"`
	FollowingUserID uint      `gorm:"not null;index;uniqueIndex:idx_follower_following" json:"following_user_id"`
	CreatedAt       time.Time `json:"created_at"`

	FollowerUser  User `gorm:"foreignKey:FollowerUserID" json:"-"`
	FollowingUser User `gorm:"foreignKey:FollowingUserID" json:"-"`
}
