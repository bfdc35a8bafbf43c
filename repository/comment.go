package repository

import (
	"context"
	"strings"

	"inkwell/models"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// CommentFilter enumerates the predicates of the admin comment list.
type CommentFilter struct {
	Status *models.CommentStatus
	Search string
}

func (f CommentFilter) apply(q *gorm.DB) *gorm.DB {
	if f.Status != nil {
		q = q.Where("comments.status = ?", *f.Status)
	}
	if f.Search != "" {
		pat := "%" + strings.ToLower(f.Search) + "%"
		q = q.Where(
			"LOWER(comments.content) LIKE ? OR LOWER(comments.author_name) LIKE ? OR LOWER(comments.author_email) LIKE ?",
			pat, pat, pat,
		)
	}
	return q
}

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	// List returns comments across all posts, newest first (admin view).
	List(ctx context.Context, filter CommentFilter, limit, offset int) ([]*models.Comment, int64, error)
	// ListByPost returns only top-level comments of one post, oldest first,
	// each with its direct replies embedded. Replies never nest further.
	ListByPost(ctx context.Context, postID uint, status *models.CommentStatus, limit, offset int) ([]*models.Comment, int64, error)
	GetByID(ctx context.Context, id uint) (*models.Comment, error)
	Create(ctx context.Context, comment *models.Comment) error
	UpdateStatus(ctx context.Context, id uint, status models.CommentStatus) (*models.Comment, error)
	// Delete removes the comment row unconditionally. Replies of a deleted
	// parent are left to the storage layer's foreign-key behavior.
	Delete(ctx context.Context, id uint) error
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new comment repository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) List(ctx context.Context, filter CommentFilter, limit, offset int) ([]*models.Comment, int64, error) {
	var (
		comments []*models.Comment
		total    int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return filter.apply(r.db.WithContext(gctx).Model(&models.Comment{})).
			Preload("Author").
			Preload("Post").
			Preload("Replies", func(q *gorm.DB) *gorm.DB {
				return q.Order("comments.created_at ASC")
			}).
			Preload("Replies.Author").
			Order("comments.created_at DESC").
			Limit(limit).
			Offset(offset).
			Find(&comments).Error
	})
	g.Go(func() error {
		return filter.apply(r.db.WithContext(gctx).Model(&models.Comment{})).Count(&total).Error
	})
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}
	return comments, total, nil
}

func (r *commentRepository) ListByPost(ctx context.Context, postID uint, status *models.CommentStatus, limit, offset int) ([]*models.Comment, int64, error) {
	var (
		comments []*models.Comment
		total    int64
	)

	base := func(q *gorm.DB) *gorm.DB {
		q = q.Where("comments.post_id = ?", postID).Where("comments.parent_id IS NULL")
		if status != nil {
			q = q.Where("comments.status = ?", *status)
		}
		return q
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return base(r.db.WithContext(gctx).Model(&models.Comment{})).
			Preload("Author").
			Preload("Post").
			Preload("Replies", func(q *gorm.DB) *gorm.DB {
				return q.Order("comments.created_at ASC")
			}).
			Preload("Replies.Author").
			Order("comments.created_at ASC").
			Limit(limit).
			Offset(offset).
			Find(&comments).Error
	})
	g.Go(func() error {
		return base(r.db.WithContext(gctx).Model(&models.Comment{})).Count(&total).Error
	})
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}
	return comments, total, nil
}

func (r *commentRepository) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Post").
		Preload("Replies", func(q *gorm.DB) *gorm.DB {
			return q.Order("comments.created_at ASC")
		}).
		Preload("Replies.Author").
		First(&comment, id).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *commentRepository) UpdateStatus(ctx context.Context, id uint, status models.CommentStatus) (*models.Comment, error) {
	tx := r.db.WithContext(ctx).Model(&models.Comment{}).Where("id = ?", id).Update("status", status)
	if tx.Error != nil {
		return nil, tx.Error
	}
	if tx.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *commentRepository) Delete(ctx context.Context, id uint) error {
	tx := r.db.WithContext(ctx).Delete(&models.Comment{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
