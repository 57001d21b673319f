package models

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

type Post struct {
	ID          uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"deleted_at"`
	Title       string         `gorm:"not null" json:"title"`
	Description string         `gorm:"type:text;not null" json:"description"`
	Photo       string         `json:"photo"`
	Tags        pq.StringArray `gorm:"type:text[]" json:"tags"`
	UserID      uint           `gorm:"not null;index" json:"user_id"`
	User        User           `json:"user" gorm:"foreignKey:UserID"`
	CategoryID  *uint          `json:"category_id"`
	Category    *Category      `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	Comments    []Comment      `json:"comments,omitempty" gorm:"foreignKey:PostID"`
	Reactions   []Reaction     `json:"reactions,omitempty" gorm:"foreignKey:PostID"`
	Views       []PostView     `json:"-" gorm:"foreignKey:PostID"`
}

// ReactionCounts tallies likes and dislikes from a preloaded Reactions slice.
func (p *Post) ReactionCounts() (likes, dislikes int) {
	for _, r := range p.Reactions {
		switch r.Kind {
		case ReactionLike:
			likes++
		case ReactionDislike:
			dislikes++
		}
	}
	return likes, dislikes
}
