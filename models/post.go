package models

import "time"

// PostStatus is the editorial lifecycle state of a post.
type PostStatus string

const (
	PostDraft     PostStatus = "DRAFT"
	PostPublished PostStatus = "PUBLISHED"
	PostScheduled PostStatus = "SCHEDULED"
	PostArchived  PostStatus = "ARCHIVED"
)

// Valid reports whether s is one of the known post statuses.
func (s PostStatus) Valid() bool {
	switch s {
	case PostDraft, PostPublished, PostScheduled, PostArchived:
		return true
	}
	return false
}

// Post is a blog article. Slug is the URL-safe alternative identifier and is
// unique across all posts regardless of status.
type Post struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	Title           string     `gorm:"not null" json:"title"`
	Slug            string     `gorm:"unique;not null" json:"slug"`
	Excerpt         string     `json:"excerpt"`
	Content         string     `json:"content"`
	FeaturedImage   string     `json:"featured_image"`
	Status          PostStatus `gorm:"not null;default:DRAFT" json:"status"`
	PublishedAt     *time.Time `json:"published_at"`
	ScheduledAt     *time.Time `json:"scheduled_at"`
	MetaTitle       string     `json:"meta_title"`
	MetaDescription string     `json:"meta_description"`
	CanonicalURL    string     `json:"canonical_url"`
	AuthorID        uint       `gorm:"not null" json:"author_id"`
	Author          User       `gorm:"foreignKey:AuthorID" json:"author"`
	Categories      []Category `gorm:"many2many:post_categories" json:"categories"`
	Tags            []Tag      `gorm:"many2many:post_tags" json:"tags"`
	Comments        []Comment  `gorm:"foreignKey:PostID" json:"comments,omitempty"`
	// CommentCount is not persisted; computed at query time
	CommentCount int64     `gorm:"-" json:"comment_count"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
