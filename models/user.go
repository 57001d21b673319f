package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Award tiers assigned from a user's total post count.
const (
	AwardBronze = "Bronze"
	AwardSilver = "Silver"
	AwardGold   = "Gold"
)

type User struct {
	ID           uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"deleted_at"`
	FirstName    string         `gorm:"not null" json:"first_name"`
	LastName     string         `gorm:"not null" json:"last_name"`
	Email        string         `gorm:"unique;not null" json:"email"`
	Password     string         `gorm:"not null" json:"-"` // bcrypt hash, never exposed
	Bio          string         `json:"bio"`
	ProfilePhoto string         `json:"profile_photo"`
	IsAdmin      bool           `gorm:"default:false" json:"is_admin"`

	// IsBlocked is the effective suspension flag checked on every write path.
	// AdminBlocked records that an administrator suspended the account; the
	// engagement derivation never clears IsBlocked while AdminBlocked is set.
	IsBlocked    bool `gorm:"default:false" json:"is_blocked"`
	AdminBlocked bool `gorm:"default:false" json:"admin_blocked"`

	// Derived from post history by the engagement service.
	UserAward  string     `gorm:"type:varchar(10);default:'Bronze'" json:"user_award"`
	LastPostAt *time.Time `json:"last_post_at"`
	IsInactive bool       `gorm:"default:false" json:"is_inactive"`

	Posts    []Post    `json:"posts,omitempty" gorm:"foreignKey:UserID"`
	Comments []Comment `json:"comments,omitempty" gorm:"foreignKey:UserID"`
}

// FullName returns the user's display name.
func (u *User) FullName() string {
	return fmt.Sprintf("%s %s", u.FirstName, u.LastName)
}

// Initials returns the first letter of each name part.
func (u *User) Initials() string {
	var initials string
	if len(u.FirstName) > 0 {
		initials += string(u.FirstName[0])
	}
	if len(u.LastName) > 0 {
		initials += string(u.LastName[0])
	}
	return initials
}

// LastSeen phrases the time since the user's last post.
func (u *User) LastSeen(now time.Time) string {
	if u.LastPostAt == nil {
		return "Never posted"
	}
	days := int(now.Sub(*u.LastPostAt).Hours() / 24)
	switch {
	case days <= 0:
		return "Today"
	case days == 1:
		return "Yesterday"
	default:
		return fmt.Sprintf("%d days ago", days)
	}
}
