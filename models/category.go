package models

import (
	"time"

	"gorm.io/gorm"
)

type Category struct {
	ID        uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at"`
	Title     string         `gorm:"not null;unique" json:"title"`
	UserID    uint           `gorm:"not null" json:"user_id"`

	User  User   `gorm:"foreignKey:UserID" json:"-"`
	Posts []Post `gorm:"foreignKey:CategoryID" json:"posts,omitempty"`
}
