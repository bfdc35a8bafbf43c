package repository

import (
	"context"

	"inkwell/models"

	"gorm.io/gorm"
)

// CategoryRepository defines the interface for category data operations
type CategoryRepository interface {
	// List returns categories ordered by name with their post counts.
	List(ctx context.Context, activeOnly bool) ([]*models.Category, error)
	GetByID(ctx context.Context, id uint) (*models.Category, error)
	GetBySlug(ctx context.Context, slug string) (*models.Category, error)
	Create(ctx context.Context, category *models.Category) error
	Update(ctx context.Context, category *models.Category) error
	Delete(ctx context.Context, id uint) error
	// UpsertBySlug creates the category unless one with the same slug exists.
	UpsertBySlug(ctx context.Context, category *models.Category) error
}

type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) List(ctx context.Context, activeOnly bool) ([]*models.Category, error) {
	var cats []*models.Category
	q := r.db.WithContext(ctx).Order("name ASC")
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	if err := q.Find(&cats).Error; err != nil {
		return nil, err
	}
	if err := r.loadPostCounts(ctx, cats); err != nil {
		return nil, err
	}
	return cats, nil
}

func (r *categoryRepository) GetByID(ctx context.Context, id uint) (*models.Category, error) {
	return r.getOne(ctx, "id = ?", id)
}

func (r *categoryRepository) GetBySlug(ctx context.Context, slug string) (*models.Category, error) {
	return r.getOne(ctx, "slug = ?", slug)
}

func (r *categoryRepository) getOne(ctx context.Context, cond string, arg any) (*models.Category, error) {
	var cat models.Category
	if err := r.db.WithContext(ctx).Where(cond, arg).First(&cat).Error; err != nil {
		return nil, err
	}
	if err := r.loadPostCounts(ctx, []*models.Category{&cat}); err != nil {
		return nil, err
	}
	return &cat, nil
}

func (r *categoryRepository) Create(ctx context.Context, category *models.Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}

func (r *categoryRepository) Update(ctx context.Context, category *models.Category) error {
	return r.db.WithContext(ctx).Save(category).Error
}

func (r *categoryRepository) Delete(ctx context.Context, id uint) error {
	tx := r.db.WithContext(ctx).Delete(&models.Category{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *categoryRepository) UpsertBySlug(ctx context.Context, category *models.Category) error {
	return r.db.WithContext(ctx).Where("slug = ?", category.Slug).FirstOrCreate(category).Error
}

func (r *categoryRepository) loadPostCounts(ctx context.Context, cats []*models.Category) error {
	if len(cats) == 0 {
		return nil
	}
	ids := make([]uint, len(cats))
	for i, c := range cats {
		ids[i] = c.ID
	}

	var rows []struct {
		CategoryID uint
		N          int64
	}
	err := r.db.WithContext(ctx).Table("post_categories").
		Select("category_id, COUNT(*) AS n").
		Where("category_id IN ?", ids).
		Group("category_id").
		Scan(&rows).Error
	if err != nil {
		return err
	}

	counts := make(map[uint]int64, len(rows))
	for _, row := range rows {
		counts[row.CategoryID] = row.N
	}
	for _, c := range cats {
		c.PostCount = counts[c.ID]
	}
	return nil
}
