package repository

import (
	"context"
	"strings"

	"inkwell/models"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// UserFilter enumerates the predicates of the user list.
type UserFilter struct {
	Search string
}

func (f UserFilter) apply(q *gorm.DB) *gorm.DB {
	if f.Search != "" {
		pat := "%" + strings.ToLower(f.Search) + "%"
		q = q.Where(
			"LOWER(email) LIKE ? OR LOWER(username) LIKE ? OR LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ?",
			pat, pat, pat, pat,
		)
	}
	return q
}

// UserRepository defines the interface for user data operations
type UserRepository interface {
	List(ctx context.Context, filter UserFilter, limit, offset int) ([]*models.User, int64, error)
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uint) error
	// UpsertByEmail creates the user unless one with the same email exists.
	// Re-applying is idempotent; the existing record is returned untouched.
	UpsertByEmail(ctx context.Context, user *models.User) error
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) List(ctx context.Context, filter UserFilter, limit, offset int) ([]*models.User, int64, error) {
	var (
		users []*models.User
		total int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return filter.apply(r.db.WithContext(gctx).Model(&models.User{})).
			Order("created_at DESC").
			Limit(limit).
			Offset(offset).
			Find(&users).Error
	})
	g.Go(func() error {
		return filter.apply(r.db.WithContext(gctx).Model(&models.User{})).Count(&total).Error
	})
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *userRepository) Delete(ctx context.Context, id uint) error {
	tx := r.db.WithContext(ctx).Delete(&models.User{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *userRepository) UpsertByEmail(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Where("email = ?", user.Email).FirstOrCreate(user).Error
}
