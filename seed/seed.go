// Package seed populates a fresh database with a usable starting state:
// an admin account, a few categories and tags, two published posts, sample
// comments and the default site settings. Every write is an upsert keyed on
// a unique column, so re-running the seeder changes nothing.
package seed

import (
	"context"
	"log"
	"time"

	"inkwell/models"
	"inkwell/repository"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AdminEmail and AdminPassword are the seeded dashboard credentials.
const (
	AdminEmail    = "admin@inkwell.blog"
	AdminPassword = "admin123"
)

// Seeder owns the repositories the seed data flows through.
type Seeder struct {
	users      repository.UserRepository
	posts      repository.PostRepository
	categories repository.CategoryRepository
	tags       repository.TagRepository
	comments   repository.CommentRepository
	settings   repository.SettingRepository
}

// NewSeeder creates a seeder around a connected database handle.
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{
		users:      repository.NewUserRepository(db),
		posts:      repository.NewPostRepository(db),
		categories: repository.NewCategoryRepository(db),
		tags:       repository.NewTagRepository(db),
		comments:   repository.NewCommentRepository(db),
		settings:   repository.NewSettingRepository(db),
	}
}

// Run seeds everything. Safe to call repeatedly.
func (s *Seeder) Run(ctx context.Context) error {
	admin, err := s.seedAdmin(ctx)
	if err != nil {
		return err
	}

	categories, err := s.seedCategories(ctx)
	if err != nil {
		return err
	}

	tags, err := s.seedTags(ctx)
	if err != nil {
		return err
	}

	posts, err := s.seedPosts(ctx, admin, categories, tags)
	if err != nil {
		return err
	}

	if err := s.seedComments(ctx, posts); err != nil {
		return err
	}

	if err := s.seedSettings(ctx); err != nil {
		return err
	}

	log.Println("Database seeded")
	log.Printf("Admin credentials: %s / %s", AdminEmail, AdminPassword)
	return nil
}

func (s *Seeder) seedAdmin(ctx context.Context) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	admin := &models.User{
		Email:     AdminEmail,
		Username:  "admin",
		Password:  string(hash),
		FirstName: "Admin",
		LastName:  "User",
		Role:      models.RoleAdmin,
		IsActive:  true,
	}
	if err := s.users.UpsertByEmail(ctx, admin); err != nil {
		return nil, err
	}
	return admin, nil
}

func (s *Seeder) seedCategories(ctx context.Context) (map[string]*models.Category, error) {
	fixtures := []*models.Category{
		{
			Name:        "Technology",
			Slug:        "technology",
			Description: "Latest in tech, programming, and digital innovation",
			Color:       "#3B82F6",
			IsActive:    true,
		},
		{
			Name:        "Lifestyle",
			Slug:        "lifestyle",
			Description: "Personal development, habits, and life experiences",
			Color:       "#10B981",
			IsActive:    true,
		},
		{
			Name:        "Business",
			Slug:        "business",
			Description: "Entrepreneurship, finance, and career advice",
			Color:       "#F59E0B",
			IsActive:    true,
		},
	}

	out := make(map[string]*models.Category, len(fixtures))
	for _, cat := range fixtures {
		if err := s.categories.UpsertBySlug(ctx, cat); err != nil {
			return nil, err
		}
		out[cat.Slug] = cat
	}
	return out, nil
}

func (s *Seeder) seedTags(ctx context.Context) (map[string]*models.Tag, error) {
	fixtures := []*models.Tag{
		{Name: "Tutorial", Slug: "tutorial", Color: "#8B5CF6", IsActive: true},
		{Name: "Opinion", Slug: "opinion", Color: "#EF4444", IsActive: true},
		{Name: "News", Slug: "news", Color: "#06B6D4", IsActive: true},
	}

	out := make(map[string]*models.Tag, len(fixtures))
	for _, tag := range fixtures {
		if err := s.tags.UpsertBySlug(ctx, tag); err != nil {
			return nil, err
		}
		out[tag.Slug] = tag
	}
	return out, nil
}

func (s *Seeder) seedPosts(
	ctx context.Context,
	admin *models.User,
	categories map[string]*models.Category,
	tags map[string]*models.Tag,
) ([]*models.Post, error) {
	now := time.Now()
	dayAgo := now.Add(-24 * time.Hour)

	fixtures := []struct {
		post       models.Post
		categories []uint
		tags       []uint
	}{
		{
			post: models.Post{
				Title:           "Welcome to Inkwell",
				Slug:            "welcome-to-inkwell",
				Excerpt:         "Introducing the new modern blog platform built with cutting-edge technology",
				Content:         welcomeContent,
				Status:          models.PostPublished,
				PublishedAt:     &now,
				MetaTitle:       "Welcome to Inkwell - Modern Blog Platform",
				MetaDescription: "Discover the new modern blog platform",
				AuthorID:        admin.ID,
			},
			categories: []uint{categories["technology"].ID},
			tags:       []uint{tags["opinion"].ID},
		},
		{
			post: models.Post{
				Title:           "Building Scalable Web Applications",
				Slug:            "building-scalable-web-apps",
				Excerpt:         "Best practices for building web applications that can grow with your user base",
				Content:         scalableContent,
				Status:          models.PostPublished,
				PublishedAt:     &dayAgo,
				MetaTitle:       "Building Scalable Web Applications - Best Practices",
				MetaDescription: "Learn how to build web applications that scale with your growing user base",
				AuthorID:        admin.ID,
			},
			categories: []uint{categories["technology"].ID},
			tags:       []uint{tags["tutorial"].ID},
		},
	}

	posts := make([]*models.Post, 0, len(fixtures))
	for _, f := range fixtures {
		existing, err := s.posts.GetBySlug(ctx, f.post.Slug)
		if err == nil {
			posts = append(posts, existing)
			continue
		}
		if !models.IsNotFound(err) {
			return nil, err
		}

		post := f.post
		if err := s.posts.Create(ctx, &post, f.categories, f.tags); err != nil {
			return nil, err
		}
		posts = append(posts, &post)
	}
	return posts, nil
}

// seedComments adds the fixed sample comments plus a handful of generated
// pending ones. Comments have no unique key, so idempotency is coarse: a post
// that already has comments is skipped entirely.
func (s *Seeder) seedComments(ctx context.Context, posts []*models.Post) error {
	if len(posts) < 2 {
		return nil
	}

	fixtures := []models.Comment{
		{
			Content:     "Great article! Looking forward to more content like this.",
			Status:      models.CommentApproved,
			AuthorName:  "John Doe",
			AuthorEmail: "john@example.com",
			PostID:      posts[0].ID,
		},
		{
			Content:     "Very informative. The scalability tips are particularly useful.",
			Status:      models.CommentApproved,
			AuthorName:  "Jane Smith",
			AuthorEmail: "jane@example.com",
			PostID:      posts[1].ID,
		},
		{
			Content:     "Thanks for sharing these insights!",
			Status:      models.CommentPending,
			AuthorName:  "Bob Wilson",
			AuthorEmail: "bob@example.com",
			PostID:      posts[1].ID,
		},
	}

	seeded := map[uint]bool{}
	for _, post := range posts {
		_, total, err := s.comments.ListByPost(ctx, post.ID, nil, 1, 0)
		if err != nil {
			return err
		}
		seeded[post.ID] = total > 0
	}

	for _, comment := range fixtures {
		if seeded[comment.PostID] {
			continue
		}
		c := comment
		if err := s.comments.Create(ctx, &c); err != nil {
			return err
		}
	}

	// Filler: a few generated pending comments on the welcome post.
	if !seeded[posts[0].ID] {
		for i := 0; i < 5; i++ {
			c := models.Comment{
				Content:     gofakeit.Sentence(12),
				Status:      models.CommentPending,
				AuthorName:  gofakeit.Name(),
				AuthorEmail: gofakeit.Email(),
				PostID:      posts[0].ID,
			}
			if err := s.comments.Create(ctx, &c); err != nil {
				return err
			}
		}
	}
	return nil
}

// seedSettings writes defaults only for keys that do not exist yet, so a
// customized value survives re-seeding.
func (s *Seeder) seedSettings(ctx context.Context) error {
	defaults := []struct{ key, value string }{
		{"site_title", "Inkwell"},
		{"site_description", "A modern blog platform for content creators"},
		{"site_url", "https://inkwell.blog"},
		{"admin_email", AdminEmail},
		{"posts_per_page", "10"},
		{"comments_enabled", "true"},
		{"theme", "light"},
	}

	for _, d := range defaults {
		_, err := s.settings.GetByKey(ctx, d.key)
		if err == nil {
			continue
		}
		if !models.IsNotFound(err) {
			return err
		}
		if _, err := s.settings.Set(ctx, d.key, d.value); err != nil {
			return err
		}
	}
	return nil
}

const welcomeContent = `# Welcome to Inkwell

This is a modern, feature-rich blog platform designed for content creators who want to focus on writing rather than technical complexities.

## Features

- **Admin Dashboard**: WordPress-inspired content management
- **SEO Optimized**: Built-in meta tags and structured data
- **Responsive Design**: Works perfectly on all devices
- **Fast & Secure**: Optimized performance and security best practices

## Getting Started

Start creating amazing content and reach your audience effectively.

---

*This is just the beginning. Stay tuned for more features!*`

const scalableContent = `# Building Scalable Web Applications

Scalability is crucial for modern web applications. Here are key principles to follow:

## 1. Database Design

- Use proper indexing
- Normalize data appropriately
- Consider read replicas for high-traffic apps

## 2. Caching Strategy

- Implement Redis for session storage
- Cache API responses
- Use CDN for static assets

## 3. Microservices Architecture

- Break down monolithic apps
- Use event-driven communication
- Implement proper API gateways

## 4. Monitoring & Analytics

- Track performance metrics
- Set up error monitoring
- Use analytics to understand user behavior

Remember: Start simple, but design for scale from day one.`
