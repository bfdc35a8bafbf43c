package repository

import (
	"context"

	"inkwell/models"

	"gorm.io/gorm"
)

// TagRepository defines the interface for tag data operations
type TagRepository interface {
	// List returns up to limit tags ordered by name with their post counts.
	List(ctx context.Context, activeOnly bool, limit int) ([]*models.Tag, error)
	GetByID(ctx context.Context, id uint) (*models.Tag, error)
	GetBySlug(ctx context.Context, slug string) (*models.Tag, error)
	Create(ctx context.Context, tag *models.Tag) error
	Update(ctx context.Context, tag *models.Tag) error
	Delete(ctx context.Context, id uint) error
	// UpsertBySlug creates the tag unless one with the same slug exists.
	UpsertBySlug(ctx context.Context, tag *models.Tag) error
}

type tagRepository struct {
	db *gorm.DB
}

// NewTagRepository creates a new tag repository
func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

func (r *tagRepository) List(ctx context.Context, activeOnly bool, limit int) ([]*models.Tag, error) {
	var tags []*models.Tag
	q := r.db.WithContext(ctx).Order("name ASC").Limit(limit)
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	if err := q.Find(&tags).Error; err != nil {
		return nil, err
	}
	if err := r.loadPostCounts(ctx, tags); err != nil {
		return nil, err
	}
	return tags, nil
}

func (r *tagRepository) GetByID(ctx context.Context, id uint) (*models.Tag, error) {
	return r.getOne(ctx, "id = ?", id)
}

func (r *tagRepository) GetBySlug(ctx context.Context, slug string) (*models.Tag, error) {
	return r.getOne(ctx, "slug = ?", slug)
}

func (r *tagRepository) getOne(ctx context.Context, cond string, arg any) (*models.Tag, error) {
	var tag models.Tag
	if err := r.db.WithContext(ctx).Where(cond, arg).First(&tag).Error; err != nil {
		return nil, err
	}
	if err := r.loadPostCounts(ctx, []*models.Tag{&tag}); err != nil {
		return nil, err
	}
	return &tag, nil
}

func (r *tagRepository) Create(ctx context.Context, tag *models.Tag) error {
	return r.db.WithContext(ctx).Create(tag).Error
}

func (r *tagRepository) Update(ctx context.Context, tag *models.Tag) error {
	return r.db.WithContext(ctx).Save(tag).Error
}

func (r *tagRepository) Delete(ctx context.Context, id uint) error {
	tx := r.db.WithContext(ctx).Delete(&models.Tag{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *tagRepository) UpsertBySlug(ctx context.Context, tag *models.Tag) error {
	return r.db.WithContext(ctx).Where("slug = ?", tag.Slug).FirstOrCreate(tag).Error
}

func (r *tagRepository) loadPostCounts(ctx context.Context, tags []*models.Tag) error {
	if len(tags) == 0 {
		return nil
	}
	ids := make([]uint, len(tags))
	for i, t := range tags {
		ids[i] = t.ID
	}

	var rows []struct {
		TagID uint
		N     int64
	}
	err := r.db.WithContext(ctx).Table("post_tags").
		Select("tag_id, COUNT(*) AS n").
		Where("tag_id IN ?", ids).
		Group("tag_id").
		Scan(&rows).Error
	if err != nil {
		return err
	}

	counts := make(map[uint]int64, len(rows))
	for _, row := range rows {
		counts[row.TagID] = row.N
	}
	for _, t := range tags {
		t.PostCount = counts[t.ID]
	}
	return nil
}
