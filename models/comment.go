package models

import "time"

// CommentStatus is the moderation state of a comment.
type CommentStatus string

const (
	CommentPending  CommentStatus = "PENDING"
	CommentApproved CommentStatus = "APPROVED"
	CommentSpam     CommentStatus = "SPAM"
	CommentTrash    CommentStatus = "TRASH"
)

// Valid reports whether s is one of the known comment statuses.
func (s CommentStatus) Valid() bool {
	switch s {
	case CommentPending, CommentApproved, CommentSpam, CommentTrash:
		return true
	}
	return false
}

// Comment belongs to exactly one post. A nil ParentID marks a top-level
// comment; replies nest exactly one level deep. Attribution is deliberately
// permissive: a comment may carry an account author, a free-text name/email,
// or neither.
type Comment struct {
	ID          uint          `gorm:"primaryKey" json:"id"`
	Content     string        `gorm:"not null" json:"content"`
	Status      CommentStatus `gorm:"not null;default:PENDING" json:"status"`
	AuthorName  string        `json:"author_name"`
	AuthorEmail string        `json:"author_email"`
	AuthorID    *uint         `json:"author_id"`
	Author      *User         `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	PostID      uint          `gorm:"not null" json:"post_id"`
	Post        Post          `gorm:"foreignKey:PostID" json:"post,omitempty"`
	ParentID    *uint         `json:"parent_id"`
	Replies     []Comment     `gorm:"foreignKey:ParentID" json:"replies"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}
