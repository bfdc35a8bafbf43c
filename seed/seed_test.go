package seed

import (
	"context"
	"testing"

	"inkwell/database"
	"inkwell/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

func TestSeedCreatesBaseline(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, NewSeeder(db).Run(context.Background()))

	var admin models.User
	require.NoError(t, db.Where("email = ?", AdminEmail).First(&admin).Error)
	assert.Equal(t, models.RoleAdmin, admin.Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(AdminPassword)))

	var categories, tags, posts, settings int64
	require.NoError(t, db.Model(&models.Category{}).Count(&categories).Error)
	require.NoError(t, db.Model(&models.Tag{}).Count(&tags).Error)
	require.NoError(t, db.Model(&models.Post{}).Count(&posts).Error)
	require.NoError(t, db.Model(&models.Setting{}).Count(&settings).Error)
	assert.Equal(t, int64(3), categories)
	assert.Equal(t, int64(3), tags)
	assert.Equal(t, int64(2), posts)
	assert.Equal(t, int64(7), settings)

	var welcome models.Post
	require.NoError(t, db.Preload("Categories").Preload("Tags").
		Where("slug = ?", "welcome-to-inkwell").First(&welcome).Error)
	assert.Equal(t, models.PostPublished, welcome.Status)
	require.Len(t, welcome.Categories, 1)
	require.Len(t, welcome.Tags, 1)
}

func TestSeedIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	seeder := NewSeeder(db)
	ctx := context.Background()

	require.NoError(t, seeder.Run(ctx))

	type counts struct{ users, categories, tags, posts, comments, settings int64 }
	snapshot := func() counts {
		var c counts
		require.NoError(t, db.Model(&models.User{}).Count(&c.users).Error)
		require.NoError(t, db.Model(&models.Category{}).Count(&c.categories).Error)
		require.NoError(t, db.Model(&models.Tag{}).Count(&c.tags).Error)
		require.NoError(t, db.Model(&models.Post{}).Count(&c.posts).Error)
		require.NoError(t, db.Model(&models.Comment{}).Count(&c.comments).Error)
		require.NoError(t, db.Model(&models.Setting{}).Count(&c.settings).Error)
		return c
	}

	first := snapshot()
	require.NoError(t, seeder.Run(ctx))
	assert.Equal(t, first, snapshot())
}

func TestSeedPreservesCustomizedSettings(t *testing.T) {
	db := setupTestDB(t)
	seeder := NewSeeder(db)
	ctx := context.Background()

	require.NoError(t, seeder.Run(ctx))
	require.NoError(t, db.Model(&models.Setting{}).
		Where("key = ?", "theme").Update("value", "dark").Error)

	require.NoError(t, seeder.Run(ctx))

	var theme models.Setting
	require.NoError(t, db.Where("key = ?", "theme").First(&theme).Error)
	assert.Equal(t, "dark", theme.Value)
}
