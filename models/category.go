package models

import "time"

// Category groups posts into broad editorial sections.
type Category struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"not null" json:"name"`
	Slug        string `gorm:"unique;not null" json:"slug"`
	Description string `json:"description"`
	Color       string `json:"color"`
	IsActive    bool   `gorm:"not null;default:true" json:"is_active"`
	Posts       []Post `gorm:"many2many:post_categories" json:"posts,omitempty"`
	// PostCount is not persisted; computed at query time
	PostCount int64     `gorm:"-" json:"post_count"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
