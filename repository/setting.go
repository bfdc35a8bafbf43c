package repository

import (
	"context"

	"inkwell/models"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SettingRepository defines the interface for the key-value settings store.
type SettingRepository interface {
	// List returns all settings ordered by key.
	List(ctx context.Context) ([]*models.Setting, error)
	GetByKey(ctx context.Context, key string) (*models.Setting, error)
	// Set creates the key or overwrites its value. Idempotent: re-applying
	// the same pair leaves exactly one row with the final value.
	Set(ctx context.Context, key, value string) (*models.Setting, error)
	// SetMany upserts each pair; the upserts are issued concurrently and a
	// failure of any one fails the call.
	SetMany(ctx context.Context, pairs map[string]string) ([]*models.Setting, error)
	Delete(ctx context.Context, key string) error
}

type settingRepository struct {
	db *gorm.DB
}

// NewSettingRepository creates a new setting repository
func NewSettingRepository(db *gorm.DB) SettingRepository {
	return &settingRepository{db: db}
}

func (r *settingRepository) List(ctx context.Context) ([]*models.Setting, error) {
	var settings []*models.Setting
	if err := r.db.WithContext(ctx).Order("key ASC").Find(&settings).Error; err != nil {
		return nil, err
	}
	return settings, nil
}

func (r *settingRepository) GetByKey(ctx context.Context, key string) (*models.Setting, error) {
	var setting models.Setting
	if err := r.db.WithContext(ctx).Where("key = ?", key).First(&setting).Error; err != nil {
		return nil, err
	}
	return &setting, nil
}

func (r *settingRepository) Set(ctx context.Context, key, value string) (*models.Setting, error) {
	setting := models.Setting{Key: key, Value: value}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&setting).Error
	if err != nil {
		return nil, err
	}
	return r.GetByKey(ctx, key)
}

func (r *settingRepository) SetMany(ctx context.Context, pairs map[string]string) ([]*models.Setting, error) {
	results := make([]*models.Setting, 0, len(pairs))

	g, gctx := errgroup.WithContext(ctx)
	out := make(chan *models.Setting, len(pairs))
	for key, value := range pairs {
		key, value := key, value
		g.Go(func() error {
			setting, err := r.Set(gctx, key, value)
			if err != nil {
				return err
			}
			out <- setting
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	close(out)
	for setting := range out {
		results = append(results, setting)
	}
	return results, nil
}

func (r *settingRepository) Delete(ctx context.Context, key string) error {
	tx := r.db.WithContext(ctx).Where("key = ?", key).Delete(&models.Setting{})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
