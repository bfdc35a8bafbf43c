// Package models contains data structures for the application's domain models.
package models

import "time"

// Role determines what a user is allowed to do in the admin dashboard.
type Role string

const (
	RoleAdmin       Role = "ADMIN"
	RoleEditor      Role = "EDITOR"
	RoleAuthor      Role = "AUTHOR"
	RoleContributor Role = "CONTRIBUTOR"
	RoleSubscriber  Role = "SUBSCRIBER"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleEditor, RoleAuthor, RoleContributor, RoleSubscriber:
		return true
	}
	return false
}

// User represents an account that can author posts, comments and media.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"unique;not null" json:"email"`
	Username  string    `gorm:"unique;not null" json:"username"`
	Password  string    `gorm:"not null" json:"-"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Bio       string    `json:"bio"`
	Avatar    string    `json:"avatar"`
	Role      Role      `gorm:"not null;default:SUBSCRIBER" json:"role"`
	IsActive  bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Posts     []Post    `gorm:"foreignKey:AuthorID" json:"posts,omitempty"`
	Comments  []Comment `gorm:"foreignKey:AuthorID" json:"comments,omitempty"`
	Media     []Media   `gorm:"foreignKey:UploadedByID" json:"media,omitempty"`
}
