// Package repository defines the data-access interfaces and their gorm
// implementations. Each list operation takes an explicit filter struct so the
// set of supported predicates is enumerable, and runs its page and count
// queries concurrently against the same predicate.
package repository

import (
	"context"
	"strings"
	"time"

	"inkwell/models"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostFilter enumerates every predicate the post list operation supports.
// Zero values mean "not filtered".
type PostFilter struct {
	Status     *models.PostStatus
	AuthorID   *uint
	CategoryID *uint
	TagID      *uint
	Search     string
	// SearchTitleContentOnly drops excerpt from the search columns; the page
	// routes match title and content only.
	SearchTitleContentOnly bool
	// Published forces status=PUBLISHED and published_at <= now, and switches
	// the sort to published_at desc. It overrides Status when both are set.
	Published bool
}

func (f PostFilter) apply(q *gorm.DB) *gorm.DB {
	if f.Published {
		q = q.Where("posts.status = ?", models.PostPublished).
			Where("posts.published_at <= ?", time.Now())
	} else if f.Status != nil {
		q = q.Where("posts.status = ?", *f.Status)
	}
	if f.AuthorID != nil {
		q = q.Where("posts.author_id = ?", *f.AuthorID)
	}
	if f.CategoryID != nil {
		q = q.Joins("JOIN post_categories ON post_categories.post_id = posts.id").
			Where("post_categories.category_id = ?", *f.CategoryID)
	}
	if f.TagID != nil {
		q = q.Joins("JOIN post_tags ON post_tags.post_id = posts.id").
			Where("post_tags.tag_id = ?", *f.TagID)
	}
	if f.Search != "" {
		pat := "%" + strings.ToLower(f.Search) + "%"
		cond := "LOWER(posts.title) LIKE ? OR LOWER(posts.content) LIKE ? OR LOWER(posts.excerpt) LIKE ?"
		args := []any{pat, pat, pat}
		if f.SearchTitleContentOnly {
			cond = "LOWER(posts.title) LIKE ? OR LOWER(posts.content) LIKE ?"
			args = args[:2]
		}
		q = q.Where(cond, args...)
	}
	return q
}

// PostRepository defines the interface for post data operations
type PostRepository interface {
	List(ctx context.Context, filter PostFilter, limit, offset int) ([]*models.Post, int64, error)
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	GetBySlug(ctx context.Context, slug string) (*models.Post, error)
	Create(ctx context.Context, post *models.Post, categoryIDs, tagIDs []uint) error
	Update(ctx context.Context, post *models.Post, categoryIDs, tagIDs *[]uint) error
	Delete(ctx context.Context, id uint) error
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) List(ctx context.Context, filter PostFilter, limit, offset int) ([]*models.Post, int64, error) {
	var (
		posts []*models.Post
		total int64
	)

	order := "posts.created_at DESC"
	if filter.Published {
		order = "posts.published_at DESC"
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return filter.apply(r.db.WithContext(gctx).Model(&models.Post{})).
			Preload("Author").
			Preload("Categories").
			Preload("Tags").
			Order(order).
			Limit(limit).
			Offset(offset).
			Find(&posts).Error
	})
	g.Go(func() error {
		return filter.apply(r.db.WithContext(gctx).Model(&models.Post{})).Count(&total).Error
	})
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}

	if err := r.loadCommentCounts(ctx, posts); err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	return r.getOne(ctx, "posts.id = ?", id)
}

func (r *postRepository) GetBySlug(ctx context.Context, slug string) (*models.Post, error) {
	return r.getOne(ctx, "posts.slug = ?", slug)
}

func (r *postRepository) getOne(ctx context.Context, cond string, arg any) (*models.Post, error) {
	var post models.Post
	err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Categories").
		Preload("Tags").
		Where(cond, arg).
		First(&post).Error
	if err != nil {
		return nil, err
	}
	if err := r.loadCommentCounts(ctx, []*models.Post{&post}); err != nil {
		return nil, err
	}
	return &post, nil
}

// Create inserts the post and connects the given category and tag IDs
// (additive). A missing referenced ID fails the whole create.
func (r *postRepository) Create(ctx context.Context, post *models.Post, categoryIDs, tagIDs []uint) error {
	cats, err := r.resolveCategories(ctx, categoryIDs)
	if err != nil {
		return err
	}
	tags, err := r.resolveTags(ctx, tagIDs)
	if err != nil {
		return err
	}
	post.Categories = cats
	post.Tags = tags
	return r.db.WithContext(ctx).Create(post).Error
}

// Update saves scalar fields and, when an ID array was supplied, replaces the
// full relation set. nil means "leave the relation untouched"; an empty slice
// clears it. Replace, not connect: update is set-semantics by contract.
func (r *postRepository) Update(ctx context.Context, post *models.Post, categoryIDs, tagIDs *[]uint) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(post).Error; err != nil {
		return err
	}
	if categoryIDs != nil {
		cats, err := r.resolveCategories(ctx, *categoryIDs)
		if err != nil {
			return err
		}
		if err := r.db.WithContext(ctx).Model(post).Association("Categories").Replace(&cats); err != nil {
			return err
		}
		post.Categories = cats
	}
	if tagIDs != nil {
		tags, err := r.resolveTags(ctx, *tagIDs)
		if err != nil {
			return err
		}
		if err := r.db.WithContext(ctx).Model(post).Association("Tags").Replace(&tags); err != nil {
			return err
		}
		post.Tags = tags
	}
	return nil
}

func (r *postRepository) Delete(ctx context.Context, id uint) error {
	tx := r.db.WithContext(ctx).Delete(&models.Post{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *postRepository) resolveCategories(ctx context.Context, ids []uint) ([]models.Category, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var cats []models.Category
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&cats).Error; err != nil {
		return nil, err
	}
	if len(cats) != len(dedupe(ids)) {
		return nil, models.NewValidationError("one or more category IDs do not exist")
	}
	return cats, nil
}

func (r *postRepository) resolveTags(ctx context.Context, ids []uint) ([]models.Tag, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var tags []models.Tag
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&tags).Error; err != nil {
		return nil, err
	}
	if len(tags) != len(dedupe(ids)) {
		return nil, models.NewValidationError("one or more tag IDs do not exist")
	}
	return tags, nil
}

func (r *postRepository) loadCommentCounts(ctx context.Context, posts []*models.Post) error {
	if len(posts) == 0 {
		return nil
	}
	ids := make([]uint, len(posts))
	for i, p := range posts {
		ids[i] = p.ID
	}

	var rows []struct {
		PostID uint
		N      int64
	}
	err := r.db.WithContext(ctx).Model(&models.Comment{}).
		Select("post_id, COUNT(*) AS n").
		Where("post_id IN ?", ids).
		Group("post_id").
		Scan(&rows).Error
	if err != nil {
		return err
	}

	counts := make(map[uint]int64, len(rows))
	for _, row := range rows {
		counts[row.PostID] = row.N
	}
	for _, p := range posts {
		p.CommentCount = counts[p.ID]
	}
	return nil
}

func dedupe(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := ids[:0:0]
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
