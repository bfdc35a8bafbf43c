package models

import "time"

// Tag is a free-form label attached to posts.
type Tag struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Name     string `gorm:"not null" json:"name"`
	Slug     string `gorm:"unique;not null" json:"slug"`
	Color    string `json:"color"`
	IsActive bool   `gorm:"not null;default:true" json:"is_active"`
	Posts    []Post `gorm:"many2many:post_tags" json:"posts,omitempty"`
	// PostCount is not persisted; computed at query time
	PostCount int64     `gorm:"-" json:"post_count"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
