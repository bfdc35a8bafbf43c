package repository

import (
	"context"
	"testing"

	"inkwell/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryRepository_ListOrderAndCounts(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCategoryRepository(db)
	posts := NewPostRepository(db)
	ctx := context.Background()
	author := createTestUser(t, db, "author@example.com", "author")

	zeta := &models.Category{Name: "Zeta", Slug: "zeta", IsActive: true}
	alpha := &models.Category{Name: "Alpha", Slug: "alpha", IsActive: true}
	hidden := &models.Category{Name: "Hidden", Slug: "hidden", IsActive: false}
	for _, c := range []*models.Category{zeta, alpha, hidden} {
		require.NoError(t, repo.Create(ctx, c))
	}

	post := &models.Post{Title: "Hello", Slug: "hello", AuthorID: author.ID}
	require.NoError(t, posts.Create(ctx, post, []uint{alpha.ID}, nil))

	active, err := repo.List(ctx, true)
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, "Alpha", active[0].Name)
	assert.Equal(t, int64(1), active[0].PostCount)
	assert.Equal(t, int64(0), active[1].PostCount)

	all, err := repo.List(ctx, false)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestCategoryRepository_UpsertBySlug(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCategoryRepository(db)
	ctx := context.Background()

	cat := &models.Category{Name: "Tech", Slug: "tech", IsActive: true}
	require.NoError(t, repo.UpsertBySlug(ctx, cat))
	firstID := cat.ID

	again := &models.Category{Name: "Technology", Slug: "tech", IsActive: true}
	require.NoError(t, repo.UpsertBySlug(ctx, again))
	assert.Equal(t, firstID, again.ID)

	var count int64
	require.NoError(t, db.Model(&models.Category{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestTagRepository_ListLimit(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTagRepository(db)
	ctx := context.Background()

	for _, slug := range []string{"a", "b", "c"} {
		require.NoError(t, repo.Create(ctx, &models.Tag{Name: slug, Slug: slug, IsActive: true}))
	}

	tags, err := repo.List(ctx, true, 2)
	require.NoError(t, err)
	assert.Len(t, tags, 2)
}

func TestTagRepository_GetBySlug(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTagRepository(db)
	ctx := context.Background()

	tag := &models.Tag{Name: "Tutorial", Slug: "tutorial", IsActive: true}
	require.NoError(t, repo.Create(ctx, tag))

	found, err := repo.GetBySlug(ctx, "tutorial")
	require.NoError(t, err)
	assert.Equal(t, tag.ID, found.ID)

	_, err = repo.GetBySlug(ctx, "nope")
	assert.True(t, models.IsNotFound(err))
}
