package repository_test

import (
	"context"
	"testing"
	"time"

	"rex-go/internal/model"
	"rex-go/internal/repository"
	"rex-go/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestGuidelineRepository_Ordering(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewGuidelineRepository(testutil.NewDB(t))

	for _, g := range []model.AiGuideline{
		{Title: "B", Content: "b", Priority: 3, IsActive: true},
		{Title: "Low", Content: "l", Priority: 1, IsActive: true},
		{Title: "A", Content: "a", Priority: 3, IsActive: true},
		{Title: "Hidden", Content: "h", Priority: 9, IsActive: false},
	} {
		g := g
		require.NoError(t, repo.Create(ctx, &g))
	}

	active, err := repo.ListActive(ctx)
	require.NoError(t, err)
	titles := make([]string, 0, len(active))
	for _, g := range active {
		assert.True(t, g.IsActive)
		titles = append(titles, g.Title)
	}
	assert.Equal(t, []string{"A", "B", "Low"}, titles)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, "Hidden", all[0].Title)
	assert.False(t, all[0].IsActive)
}

func TestSortGuidelines_MixedCaseTitles(t *testing.T) {
	guidelines := []model.AiGuideline{
		{Title: "Zebra", Priority: 3},
		{Title: "apple", Priority: 3},
		{Title: "Banana", Priority: 3},
		{Title: "zoo", Priority: 5},
	}
	repository.SortGuidelines(guidelines)

	titles := make([]string, 0, len(guidelines))
	for _, g := range guidelines {
		titles = append(titles, g.Title)
	}
	assert.Equal(t, []string{"zoo", "apple", "Banana", "Zebra"}, titles)
}

func TestGuidelineRepository_UpdateDelete(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewGuidelineRepository(testutil.NewDB(t))

	g := &model.AiGuideline{Title: "Tone", Content: "warm", Priority: 1, IsActive: true}
	require.NoError(t, repo.Create(ctx, g))

	g.IsActive = false
	require.NoError(t, repo.Update(ctx, g))
	got, err := repo.FindByID(ctx, g.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)

	require.NoError(t, repo.Delete(ctx, g.ID))
	assert.ErrorIs(t, repo.Delete(ctx, g.ID), repository.ErrNotFound)
	_, err = repo.FindByID(ctx, g.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestCategoryRepository_DeleteInUse(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	categories := repository.NewCategoryRepository(db)
	contents := repository.NewContentRepository(db)

	cat := &model.Category{Name: "Philosophy", Type: model.CategoryPhilosophy}
	require.NoError(t, categories.Create(ctx, cat))
	entry := &model.ContentEntry{Title: "On time", Content: "...", Status: model.ContentPublished, CategoryID: cat.ID}
	require.NoError(t, contents.Create(ctx, entry))

	err := categories.Delete(ctx, cat.ID)
	assert.ErrorIs(t, err, repository.ErrCategoryInUse)

	// 分类和内容都保持不变
	_, err = categories.FindByID(ctx, cat.ID)
	require.NoError(t, err)
	got, err := contents.FindByID(ctx, entry.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Category)
	assert.Equal(t, "Philosophy", got.Category.Name)

	require.NoError(t, contents.Delete(ctx, entry.ID))
	require.NoError(t, categories.Delete(ctx, cat.ID))
	assert.ErrorIs(t, categories.Delete(ctx, cat.ID), repository.ErrNotFound)
}

func TestContentRepository_ForeignKey(t *testing.T) {
	ctx := context.Background()
	contents := repository.NewContentRepository(testutil.NewDB(t))

	err := contents.Create(ctx, &model.ContentEntry{Title: "orphan", Content: "x", Status: model.ContentDraft, CategoryID: 999})
	assert.ErrorIs(t, err, repository.ErrConstraintViolation)
	assert.ErrorIs(t, contents.Delete(ctx, 12345), repository.ErrNotFound)
}

func TestContentRepository_Ordering(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	categories := repository.NewCategoryRepository(db)
	contents := repository.NewContentRepository(db)

	a := &model.Category{Name: "Zeta", Type: model.CategoryOther}
	b := &model.Category{Name: "Alpha", Type: model.CategoryCreative}
	require.NoError(t, categories.Create(ctx, a))
	require.NoError(t, categories.Create(ctx, b))

	list, err := categories.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Alpha", list[0].Name)

	for i, title := range []string{"first", "second", "third"} {
		catID := a.ID
		if i == 1 {
			catID = b.ID
		}
		require.NoError(t, contents.Create(ctx, &model.ContentEntry{Title: title, Content: title, Status: model.ContentPublished, CategoryID: catID}))
	}

	all, err := contents.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "third", all[0].Title)
	assert.Equal(t, "first", all[2].Title)

	latest, err := contents.Latest(ctx, 2)
	require.NoError(t, err)
	require.Len(t, latest, 2)
	assert.Equal(t, "third", latest[0].Title)

	byCat, err := contents.ListByCategory(ctx, b.ID)
	require.NoError(t, err)
	require.Len(t, byCat, 1)
	assert.Equal(t, "second", byCat[0].Title)

	none, err := contents.Latest(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestConversationRepository_FirstMatch(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewConversationRepository(testutil.NewDB(t))

	_, err := repo.FindBySessionID(ctx, "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	first := &model.Conversation{SessionID: "dup"}
	second := &model.Conversation{SessionID: "dup"}
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))

	got, err := repo.FindBySessionID(ctx, "dup")
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.ID)
	assert.Nil(t, got.UserID)
}

func TestConversationRepository_Messages(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewConversationRepository(testutil.NewDB(t))

	conv := &model.Conversation{SessionID: "s1"}
	require.NoError(t, repo.Create(ctx, conv))

	for i, content := range []string{"m1", "m2", "m3", "m4"} {
		role := model.RoleUser
		msg := &model.Message{ConversationID: conv.ID, Content: content, Role: role}
		if i%2 == 1 {
			msg.Role = model.RoleAssistant
			msg.EmotionalTone = strPtr("curious")
			msg.Intent = strPtr("question")
		}
		require.NoError(t, repo.AddMessage(ctx, msg))
	}

	all, err := repo.ListMessages(ctx, conv.ID)
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, "m1", all[0].Content)
	assert.Nil(t, all[0].EmotionalTone)
	assert.Equal(t, "curious", *all[1].EmotionalTone)

	recent, err := repo.RecentMessages(ctx, conv.ID, 3)
	require.NoError(t, err)
	require.Len(t, recent, 3)
	assert.Equal(t, []string{"m2", "m3", "m4"}, []string{recent[0].Content, recent[1].Content, recent[2].Content})

	other := &model.Conversation{SessionID: "s2"}
	require.NoError(t, repo.Create(ctx, other))
	counts, err := repo.CountMessages(ctx, []uint{conv.ID, other.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(4), counts[conv.ID])
	assert.Equal(t, int64(0), counts[other.ID])

	err = repo.AddMessage(ctx, &model.Message{ConversationID: 999, Content: "x", Role: model.RoleUser})
	assert.ErrorIs(t, err, repository.ErrConstraintViolation)
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewUserRepository(testutil.NewDB(t))

	u := &model.User{Username: "admin", Email: "admin@example.com", Password: "hash", IsAdmin: true}
	require.NoError(t, repo.Create(ctx, u))

	byName, err := repo.FindByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byName.ID)

	byEmail, err := repo.FindByEmail(ctx, "admin@example.com")
	require.NoError(t, err)
	assert.True(t, byEmail.IsAdmin)

	_, err = repo.FindByID(ctx, 404)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	dup := &model.User{Username: "admin", Email: "other@example.com", Password: "hash"}
	assert.ErrorIs(t, repo.Create(ctx, dup), repository.ErrConstraintViolation)
}

func TestSummaryCache(t *testing.T) {
	ctx := context.Background()
	mr, client := testutil.NewRedis(t)
	cache := repository.NewSummaryCache(client)

	got, err := cache.Get(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, got)

	require.NoError(t, cache.Set(ctx, 1, "talked about work"))
	got, err = cache.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "talked about work", got)
	assert.Equal(t, 7*24*time.Hour, mr.TTL("conversation:1:summary"))

	many, err := cache.GetMany(ctx, []uint{1, 2})
	require.NoError(t, err)
	assert.Equal(t, map[uint]string{1: "talked about work"}, many)

	mr.FastForward(8 * 24 * time.Hour)
	got, err = cache.Get(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestTokenBlacklist(t *testing.T) {
	ctx := context.Background()
	mr, client := testutil.NewRedis(t)
	bl := repository.NewTokenBlacklist(client)

	ok, err := bl.Contains(ctx, "tok")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, bl.Add(ctx, "tok", time.Minute))
	ok, err = bl.Contains(ctx, "tok")
	require.NoError(t, err)
	assert.True(t, ok)

	// 已过期的 token 不需要写入
	require.NoError(t, bl.Add(ctx, "expired", 0))
	assert.False(t, mr.Exists("blacklist:expired"))
}
