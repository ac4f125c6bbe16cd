package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogCRUD(t *testing.T) {
	db := openTestDB(t)
	catalog := NewCatalogService(db)
	ctx := context.Background()

	created, err := catalog.Create(ctx, ProductInput{Name: "Widget", Description: "A widget", Price: 9.99}, "https://img.example/widget.png")
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	fetched, err := catalog.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Widget", fetched.Name)
	assert.Equal(t, 9.99, fetched.Price)
	assert.Equal(t, "https://img.example/widget.png", fetched.ImageUrl)

	updated, err := catalog.Update(ctx, created.ID, ProductInput{Name: "Widget v2", Description: "Better", Price: 12.5}, "")
	require.NoError(t, err)
	assert.Equal(t, "Widget v2", updated.Name)
	assert.Equal(t, 12.5, updated.Price)
	// Full replace of mutable fields includes the image URL.
	assert.Empty(t, updated.ImageUrl)

	all, err := catalog.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, catalog.Delete(ctx, created.ID))

	_, err = catalog.Get(ctx, created.ID)
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestCatalogNotFound(t *testing.T) {
	db := openTestDB(t)
	catalog := NewCatalogService(db)
	ctx := context.Background()

	_, err := catalog.Get(ctx, 42)
	assert.Equal(t, KindNotFound, KindOf(err))

	_, err = catalog.Update(ctx, 42, ProductInput{Name: "X", Price: 1}, "")
	assert.Equal(t, KindNotFound, KindOf(err))

	assert.Equal(t, KindNotFound, KindOf(catalog.Delete(ctx, 42)))
}

func TestCatalogValidation(t *testing.T) {
	db := openTestDB(t)
	catalog := NewCatalogService(db)
	ctx := context.Background()

	_, err := catalog.Create(ctx, ProductInput{Name: "", Price: 5}, "")
	assert.Equal(t, KindInvalidRequest, KindOf(err))

	_, err = catalog.Create(ctx, ProductInput{Name: "Free", Price: 0}, "")
	assert.Equal(t, KindInvalidRequest, KindOf(err))

	_, err = catalog.Create(ctx, ProductInput{Name: "Cheap", Price: -2}, "")
	assert.Equal(t, KindInvalidRequest, KindOf(err))
}
