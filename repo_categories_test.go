package storefront_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	storefront "github.com/goliatone/go-storefront"
)

func strptr(s string) *string { return &s }

func TestCategoryCreateRejectsCaseInsensitiveDuplicate(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	created, err := repo.Categories().CreateUnique(ctx, &storefront.Category{
		Name:        "Shoes",
		Description: "footwear",
	})
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, created.ID)

	_, err = repo.Categories().CreateUnique(ctx, &storefront.Category{Name: "shoes"})
	assert.ErrorIs(t, err, storefront.ErrDuplicateCategoryName)

	_, err = repo.Categories().CreateUnique(ctx, &storefront.Category{Name: "SHOES"})
	assert.ErrorIs(t, err, storefront.ErrDuplicateCategoryName)

	records, err := repo.Categories().List(ctx)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestCategoryUpdateKeepsOwnName(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	created, err := repo.Categories().CreateUnique(ctx, &storefront.Category{Name: "Books"})
	require.NoError(t, err)

	// re-casing your own name is not a collision
	updated, err := repo.Categories().UpdateFields(ctx, created.ID, storefront.CategoryPatch{
		Name: strptr("BOOKS"),
	})
	require.NoError(t, err)
	assert.Equal(t, "BOOKS", updated.Name)
}

func TestCategoryUpdateRejectsCollision(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	_, err := repo.Categories().CreateUnique(ctx, &storefront.Category{Name: "Books"})
	require.NoError(t, err)

	other, err := repo.Categories().CreateUnique(ctx, &storefront.Category{Name: "Games"})
	require.NoError(t, err)

	_, err = repo.Categories().UpdateFields(ctx, other.ID, storefront.CategoryPatch{
		Name: strptr("books"),
	})
	assert.ErrorIs(t, err, storefront.ErrDuplicateCategoryName)
}

func TestCategoryUpdatePartialFields(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	created, err := repo.Categories().CreateUnique(ctx, &storefront.Category{
		Name:        "Garden",
		Description: "old",
	})
	require.NoError(t, err)

	updated, err := repo.Categories().UpdateFields(ctx, created.ID, storefront.CategoryPatch{
		Description: strptr("new"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Garden", updated.Name)
	assert.Equal(t, "new", updated.Description)
}

func TestCategoryUpdateRejectsEmptyPatch(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	created, err := repo.Categories().CreateUnique(ctx, &storefront.Category{Name: "Toys"})
	require.NoError(t, err)

	_, err = repo.Categories().UpdateFields(ctx, created.ID, storefront.CategoryPatch{})
	assert.ErrorIs(t, err, storefront.ErrNoUpdateFields)
}

func TestCategoryUpdateMissing(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.Categories().UpdateFields(context.Background(), uuid.New(), storefront.CategoryPatch{
		Name: strptr("anything"),
	})
	assert.ErrorIs(t, err, storefront.ErrCategoryNotFound)
}

func TestCategoryDelete(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	created, err := repo.Categories().CreateUnique(ctx, &storefront.Category{Name: "Ephemeral"})
	require.NoError(t, err)

	require.NoError(t, repo.Categories().DeleteByID(ctx, created.ID))

	_, err = repo.Categories().GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, storefront.ErrCategoryNotFound)

	err = repo.Categories().DeleteByID(ctx, created.ID)
	assert.ErrorIs(t, err, storefront.ErrCategoryNotFound)
}

func TestCategoryGetMissing(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.Categories().GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, storefront.ErrCategoryNotFound)
}
