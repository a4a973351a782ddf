package service

import (
	"context"
	"testing"

	"rex-go/internal/model"
	"rex-go/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryService_PatchAndDelete(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	categories := NewCategoryService(f.categories)
	contents := NewContentService(f.contents, f.categories)

	cat, err := categories.Create(ctx, CategoryInput{Name: "Growth", Description: "d", Type: model.CategoryPersonalGrowth})
	require.NoError(t, err)

	name := "Personal Growth"
	updated, err := categories.Update(ctx, cat.ID, CategoryPatch{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Personal Growth", updated.Name)
	assert.Equal(t, "d", updated.Description)
	assert.Equal(t, model.CategoryPersonalGrowth, updated.Type)

	_, err = categories.Update(ctx, 999, CategoryPatch{Name: &name})
	assert.ErrorIs(t, err, repository.ErrNotFound)

	entry, err := contents.Create(ctx, ContentInput{Title: "t", Content: "c", CategoryID: cat.ID})
	require.NoError(t, err)
	assert.ErrorIs(t, categories.Delete(ctx, cat.ID), repository.ErrCategoryInUse)

	require.NoError(t, contents.Delete(ctx, entry.ID))
	require.NoError(t, categories.Delete(ctx, cat.ID))
	assert.ErrorIs(t, categories.Delete(ctx, cat.ID), repository.ErrNotFound)
}

func TestContentService(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	contents := NewContentService(f.contents, f.categories)
	a := f.addCategory(t, "A")
	b := f.addCategory(t, "B")

	_, err := contents.Create(ctx, ContentInput{Title: "t", Content: "c", CategoryID: 404})
	assert.ErrorIs(t, err, ErrUnknownCategory)

	entry, err := contents.Create(ctx, ContentInput{Title: "t", Content: "c", CategoryID: a.ID})
	require.NoError(t, err)
	assert.Equal(t, model.ContentDraft, entry.Status)
	require.NotNil(t, entry.Category)
	assert.Equal(t, "A", entry.Category.Name)

	status := model.ContentPublished
	updated, err := contents.Update(ctx, entry.ID, ContentPatch{Status: &status, CategoryID: &b.ID})
	require.NoError(t, err)
	assert.Equal(t, model.ContentPublished, updated.Status)
	assert.Equal(t, "t", updated.Title)
	assert.Equal(t, b.ID, updated.CategoryID)

	bad := uint(404)
	_, err = contents.Update(ctx, entry.ID, ContentPatch{CategoryID: &bad})
	assert.ErrorIs(t, err, ErrUnknownCategory)

	got, err := contents.Get(ctx, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, "B", got.Category.Name)

	byA, err := contents.ListByCategory(ctx, a.ID)
	require.NoError(t, err)
	assert.Empty(t, byA)
	byB, err := contents.ListByCategory(ctx, b.ID)
	require.NoError(t, err)
	assert.Len(t, byB, 1)
}

func TestGuidelineService(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	svc := NewGuidelineService(f.guidelines)

	g, err := svc.Create(ctx, GuidelineInput{Title: "Be warm", Content: "c", Priority: 1})
	require.NoError(t, err)
	assert.True(t, g.IsActive)

	inactive := false
	off, err := svc.Create(ctx, GuidelineInput{Title: "Off", Content: "c", Priority: 9, IsActive: &inactive})
	require.NoError(t, err)
	assert.False(t, off.IsActive)

	active, err := svc.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, g.ID, active[0].ID)

	priority := 5
	updated, err := svc.Update(ctx, g.ID, GuidelinePatch{Priority: &priority, IsActive: &inactive})
	require.NoError(t, err)
	assert.Equal(t, 5, updated.Priority)
	assert.False(t, updated.IsActive)
	assert.Equal(t, "Be warm", updated.Title)

	active, err = svc.ListActive(ctx)
	require.NoError(t, err)
	assert.Empty(t, active)

	all, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	require.NoError(t, svc.Delete(ctx, g.ID))
	_, err = svc.Get(ctx, g.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
