package storage

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCachedTestStorage(t *testing.T) (*CachedStorage, *MemStorage, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	inner := NewMemStorage()
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewCachedStorage(inner, client, time.Minute, nil), inner, mr
}

func TestCachedStorageServesListsFromRedis(t *testing.T) {
	ctx := context.Background()
	cached, inner, mr := newCachedTestStorage(t)

	_, err := cached.CreateProject(ctx, ProjectInput{Title: "Atlas"})
	require.NoError(t, err)

	first, err := cached.ListProjects(ctx, Filter{})
	require.NoError(t, err)
	require.Len(t, first, 1)

	// Writing behind the cache's back is invisible until the entry is invalidated.
	_, err = inner.CreateProject(ctx, ProjectInput{Title: "Hidden"})
	require.NoError(t, err)

	second, err := cached.ListProjects(ctx, Filter{})
	require.NoError(t, err)
	assert.Len(t, second, 1)

	keys := mr.Keys()
	assert.Contains(t, keys, "portfolio:ver:projects")
	assert.Contains(t, keys, "portfolio:list:projects:v1:category=")
}

func TestCachedStorageInvalidatesOnWrite(t *testing.T) {
	ctx := context.Background()
	cached, _, mr := newCachedTestStorage(t)

	item, err := cached.CreateWriting(ctx, WritingInput{Title: "Salt"})
	require.NoError(t, err)

	list, err := cached.ListWritings(ctx, Filter{})
	require.NoError(t, err)
	require.Len(t, list, 1)

	_, err = cached.UpdateWriting(ctx, item.ID, WritingPatch{Title: strPtr("Salt and Iron")})
	require.NoError(t, err)

	list, err = cached.ListWritings(ctx, Filter{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Salt and Iron", list[0].Title)

	version, err := mr.Get("portfolio:ver:writings")
	require.NoError(t, err)
	assert.Equal(t, "2", version)

	ok, err := cached.DeleteWriting(ctx, item.ID)
	require.NoError(t, err)
	require.True(t, ok)

	list, err = cached.ListWritings(ctx, Filter{})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestCachedStorageSeparatesCategories(t *testing.T) {
	ctx := context.Background()
	cached, _, _ := newCachedTestStorage(t)

	_, err := cached.CreateGalleryItem(ctx, GalleryItemInput{Title: "Harbour", Category: "photography", ImageURL: "/a.jpg"})
	require.NoError(t, err)
	_, err = cached.CreateGalleryItem(ctx, GalleryItemInput{Title: "Birds", Category: "digital-art", ImageURL: "/b.png"})
	require.NoError(t, err)

	photos, err := cached.ListGalleryItems(ctx, Filter{Category: "photography"})
	require.NoError(t, err)
	require.Len(t, photos, 1)
	art, err := cached.ListGalleryItems(ctx, Filter{Category: "digital-art"})
	require.NoError(t, err)
	require.Len(t, art, 1)
	assert.Equal(t, "Birds", art[0].Title)
}

func TestCachedStorageFallsBackWhenRedisIsDown(t *testing.T) {
	ctx := context.Background()
	cached, _, mr := newCachedTestStorage(t)

	_, err := cached.CreateTag(ctx, TagInput{Name: "sea"})
	require.NoError(t, err)

	mr.Close()

	tags, err := cached.ListTags(ctx, Filter{})
	require.NoError(t, err)
	assert.Len(t, tags, 1)
	assert.Error(t, cached.Ping(ctx))
}
