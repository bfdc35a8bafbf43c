package repository

import (
	"context"
	"strings"

	"inkwell/models"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// MediaFilter enumerates the predicates of the media library list.
type MediaFilter struct {
	UploadedByID *uint
	Search       string
}

func (f MediaFilter) apply(q *gorm.DB) *gorm.DB {
	if f.UploadedByID != nil {
		q = q.Where("uploaded_by_id = ?", *f.UploadedByID)
	}
	if f.Search != "" {
		pat := "%" + strings.ToLower(f.Search) + "%"
		q = q.Where(
			"LOWER(filename) LIKE ? OR LOWER(original_name) LIKE ? OR LOWER(alt) LIKE ? OR LOWER(caption) LIKE ?",
			pat, pat, pat, pat,
		)
	}
	return q
}

// MediaRepository defines the interface for media data operations
type MediaRepository interface {
	List(ctx context.Context, filter MediaFilter, limit, offset int) ([]*models.Media, int64, error)
	GetByID(ctx context.Context, id uint) (*models.Media, error)
	Create(ctx context.Context, media *models.Media) error
	Update(ctx context.Context, media *models.Media) error
	Delete(ctx context.Context, id uint) error
}

type mediaRepository struct {
	db *gorm.DB
}

// NewMediaRepository creates a new media repository
func NewMediaRepository(db *gorm.DB) MediaRepository {
	return &mediaRepository{db: db}
}

func (r *mediaRepository) List(ctx context.Context, filter MediaFilter, limit, offset int) ([]*models.Media, int64, error) {
	var (
		media []*models.Media
		total int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return filter.apply(r.db.WithContext(gctx).Model(&models.Media{})).
			Preload("UploadedBy").
			Order("created_at DESC").
			Limit(limit).
			Offset(offset).
			Find(&media).Error
	})
	g.Go(func() error {
		return filter.apply(r.db.WithContext(gctx).Model(&models.Media{})).Count(&total).Error
	})
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}
	return media, total, nil
}

func (r *mediaRepository) GetByID(ctx context.Context, id uint) (*models.Media, error) {
	var media models.Media
	if err := r.db.WithContext(ctx).Preload("UploadedBy").First(&media, id).Error; err != nil {
		return nil, err
	}
	return &media, nil
}

func (r *mediaRepository) Create(ctx context.Context, media *models.Media) error {
	return r.db.WithContext(ctx).Create(media).Error
}

func (r *mediaRepository) Update(ctx context.Context, media *models.Media) error {
	return r.db.WithContext(ctx).Save(media).Error
}

func (r *mediaRepository) Delete(ctx context.Context, id uint) error {
	tx := r.db.WithContext(ctx).Delete(&models.Media{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
