package blog

import (
	"context"
	"testing"
	"time"

	"hotel/internal/database"
	"hotel/internal/domain"
	"hotel/internal/pkg/access"
	"hotel/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	admin   = access.Caller{UserID: 1, Role: domain.RoleAdmin}
	manager = access.Caller{UserID: 2, Role: domain.RoleManager}
	editor  = access.Caller{UserID: 5, Role: domain.RoleManager}
	guest   = access.Caller{UserID: 9, Role: domain.RoleClient}
)

func setup(t *testing.T) *Service {
	t.Helper()
	db, err := database.Connect(":memory:")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	svc := NewService(repository.NewBlogPostRepository(db), nil)
	svc.now = func() time.Time { return time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC) }
	return svc
}

func create(t *testing.T, svc *Service, by access.Caller, title string, published bool, tags ...string) *domain.BlogPost {
	t.Helper()
	p, err := svc.Create(context.Background(), by, CreatePostRequest{
		Title:     title,
		Content:   "All about " + title,
		Tags:      tags,
		Published: published,
	})
	require.NoError(t, err)
	return p
}

func TestCreate(t *testing.T) {
	svc := setup(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, guest, CreatePostRequest{Title: "x", Content: "y"})
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.Create(ctx, manager, CreatePostRequest{Title: "  ", Content: "y"})
	assert.ErrorIs(t, err, ErrValidation)

	draft := create(t, svc, manager, "Draft", false)
	assert.Nil(t, draft.PublishedAt)

	live := create(t, svc, manager, "Spa week", true, " Spa ", "spa", "offers")
	require.NotNil(t, live.PublishedAt)
	assert.Equal(t, []string{"Spa", "offers"}, []string(live.Tags))
}

func TestGetPublished_HidesDrafts(t *testing.T) {
	svc := setup(t)
	ctx := context.Background()
	draft := create(t, svc, manager, "Draft", false)

	_, err := svc.GetPublished(ctx, draft.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	got, err := svc.GetAny(ctx, admin, draft.ID)
	require.NoError(t, err)
	assert.Equal(t, "Draft", got.Title)

	_, err = svc.GetAny(ctx, guest, draft.ID)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestListings(t *testing.T) {
	svc := setup(t)
	ctx := context.Background()
	create(t, svc, manager, "Rooftop bar opens", true, "Food")
	create(t, svc, manager, "Spa week", true, "spa")
	create(t, svc, editor, "Secret menu", false, "food")

	list, total, err := svc.ListPublished(ctx, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, list, 1)

	found, err := svc.Search(ctx, "ROOFTOP")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Rooftop bar opens", found[0].Title)

	_, err = svc.Search(ctx, " ")
	assert.ErrorIs(t, err, ErrValidation)

	tagged, err := svc.ListByTag(ctx, "food")
	require.NoError(t, err)
	require.Len(t, tagged, 1)
	assert.Equal(t, "Rooftop bar opens", tagged[0].Title)

	mine, err := svc.ListMine(ctx, editor)
	require.NoError(t, err)
	assert.Len(t, mine, 1)
}

func TestUpdate_PublishOnce(t *testing.T) {
	svc := setup(t)
	ctx := context.Background()
	p := create(t, svc, editor, "Draft", false)

	_, err := svc.Update(ctx, manager, p.ID, UpdatePostRequest{Title: strPtr("Mine now")})
	assert.ErrorIs(t, err, ErrForbidden)

	published := true
	updated, err := svc.Update(ctx, editor, p.ID, UpdatePostRequest{Published: &published})
	require.NoError(t, err)
	require.NotNil(t, updated.PublishedAt)
	first := *updated.PublishedAt

	svc.now = func() time.Time { return time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC) }
	updated, err = svc.Update(ctx, admin, p.ID, UpdatePostRequest{Title: strPtr("Renamed"), Tags: &[]string{"news"}})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)
	assert.Equal(t, "All about Draft", updated.Content)
	assert.True(t, first.Equal(*updated.PublishedAt))

	got, err := svc.GetPublished(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, got.HasTag("NEWS"))
}

func TestDelete(t *testing.T) {
	svc := setup(t)
	ctx := context.Background()
	p := create(t, svc, editor, "Old news", true)

	assert.ErrorIs(t, svc.Delete(ctx, manager, p.ID), ErrForbidden)
	require.NoError(t, svc.Delete(ctx, editor, p.ID))
	assert.ErrorIs(t, svc.Delete(ctx, admin, p.ID), ErrNotFound)
}

func strPtr(s string) *string { return &s }
