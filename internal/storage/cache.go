package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/portfolio/internal/db"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	cacheKeyPrefix  = "portfolio:"
	defaultCacheTTL = time.Minute

	collectionProjects  = "projects"
	collectionGallery   = "gallery"
	collectionWritings  = "writings"
	collectionAlbums    = "albums"
	collectionTags      = "tags"
	collectionLocations = "photo-locations"
	collectionDevices   = "photo-devices"
)

// CachedStorage wraps a Storage and keeps list results in redis.
//
// Every list key embeds the collection's version number; writes bump the
// version so that stale keys are never read again and age out through the TTL.
// Redis failures degrade to the wrapped storage.
type CachedStorage struct {
	Storage
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger
}

// NewCachedStorage decorates inner with a redis read-through cache.
func NewCachedStorage(inner Storage, client *redis.Client, ttl time.Duration, logger *zap.Logger) *CachedStorage {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedStorage{Storage: inner, client: client, ttl: ttl, log: logger.Named("cache")}
}

func (c *CachedStorage) versionKey(collection string) string {
	return cacheKeyPrefix + "ver:" + collection
}

func (c *CachedStorage) listKey(ctx context.Context, collection string, filter Filter) (string, error) {
	version, err := c.client.Get(ctx, c.versionKey(collection)).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return "", err
	}
	return fmt.Sprintf("%slist:%s:v%d:category=%s", cacheKeyPrefix, collection, version, strings.TrimSpace(filter.Category)), nil
}

func (c *CachedStorage) invalidate(ctx context.Context, collection string) {
	if err := c.client.Incr(ctx, c.versionKey(collection)).Err(); err != nil {
		c.log.Warn("cache invalidation failed", zap.String("collection", collection), zap.Error(err))
	}
}

func cachedList[T any](ctx context.Context, c *CachedStorage, collection string, filter Filter, load func() ([]T, error)) ([]T, error) {
	key, err := c.listKey(ctx, collection, filter)
	if err != nil {
		c.log.Warn("cache unavailable", zap.String("collection", collection), zap.Error(err))
		return load()
	}

	data, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var items []T
		if jsonErr := json.Unmarshal(data, &items); jsonErr == nil {
			return items, nil
		}
		c.log.Warn("discarding corrupt cache entry", zap.String("key", key))
	case !errors.Is(err, redis.Nil):
		c.log.Warn("cache read failed", zap.String("key", key), zap.Error(err))
	}

	items, err := load()
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(items)
	if err == nil {
		err = c.client.Set(ctx, key, payload, c.ttl).Err()
	}
	if err != nil {
		c.log.Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}
	return items, nil
}

// written invalidates collection when a mutation went through.
func written[T any](ctx context.Context, c *CachedStorage, collection string, item T, err error) (T, error) {
	if err == nil {
		c.invalidate(ctx, collection)
	}
	return item, err
}

func (c *CachedStorage) ListProjects(ctx context.Context, filter Filter) ([]db.Project, error) {
	return cachedList(ctx, c, collectionProjects, filter, func() ([]db.Project, error) {
		return c.Storage.ListProjects(ctx, filter)
	})
}

func (c *CachedStorage) CreateProject(ctx context.Context, input ProjectInput) (*db.Project, error) {
	item, err := c.Storage.CreateProject(ctx, input)
	return written(ctx, c, collectionProjects, item, err)
}

func (c *CachedStorage) UpdateProject(ctx context.Context, id uint, patch ProjectPatch) (*db.Project, error) {
	item, err := c.Storage.UpdateProject(ctx, id, patch)
	return written(ctx, c, collectionProjects, item, err)
}

func (c *CachedStorage) DeleteProject(ctx context.Context, id uint) (bool, error) {
	ok, err := c.Storage.DeleteProject(ctx, id)
	return written(ctx, c, collectionProjects, ok, err)
}

func (c *CachedStorage) ListGalleryItems(ctx context.Context, filter Filter) ([]db.GalleryItem, error) {
	return cachedList(ctx, c, collectionGallery, filter, func() ([]db.GalleryItem, error) {
		return c.Storage.ListGalleryItems(ctx, filter)
	})
}

func (c *CachedStorage) CreateGalleryItem(ctx context.Context, input GalleryItemInput) (*db.GalleryItem, error) {
	item, err := c.Storage.CreateGalleryItem(ctx, input)
	return written(ctx, c, collectionGallery, item, err)
}

func (c *CachedStorage) UpdateGalleryItem(ctx context.Context, id uint, patch GalleryItemPatch) (*db.GalleryItem, error) {
	item, err := c.Storage.UpdateGalleryItem(ctx, id, patch)
	return written(ctx, c, collectionGallery, item, err)
}

func (c *CachedStorage) DeleteGalleryItem(ctx context.Context, id uint) (bool, error) {
	ok, err := c.Storage.DeleteGalleryItem(ctx, id)
	return written(ctx, c, collectionGallery, ok, err)
}

func (c *CachedStorage) ListWritings(ctx context.Context, filter Filter) ([]db.Writing, error) {
	return cachedList(ctx, c, collectionWritings, filter, func() ([]db.Writing, error) {
		return c.Storage.ListWritings(ctx, filter)
	})
}

func (c *CachedStorage) CreateWriting(ctx context.Context, input WritingInput) (*db.Writing, error) {
	item, err := c.Storage.CreateWriting(ctx, input)
	return written(ctx, c, collectionWritings, item, err)
}

func (c *CachedStorage) UpdateWriting(ctx context.Context, id uint, patch WritingPatch) (*db.Writing, error) {
	item, err := c.Storage.UpdateWriting(ctx, id, patch)
	return written(ctx, c, collectionWritings, item, err)
}

func (c *CachedStorage) DeleteWriting(ctx context.Context, id uint) (bool, error) {
	ok, err := c.Storage.DeleteWriting(ctx, id)
	return written(ctx, c, collectionWritings, ok, err)
}

func (c *CachedStorage) ListAlbums(ctx context.Context) ([]db.Album, error) {
	return cachedList(ctx, c, collectionAlbums, Filter{}, func() ([]db.Album, error) {
		return c.Storage.ListAlbums(ctx)
	})
}

func (c *CachedStorage) CreateAlbum(ctx context.Context, input AlbumInput) (*db.Album, error) {
	item, err := c.Storage.CreateAlbum(ctx, input)
	return written(ctx, c, collectionAlbums, item, err)
}

func (c *CachedStorage) UpdateAlbum(ctx context.Context, id uint, patch AlbumPatch) (*db.Album, error) {
	item, err := c.Storage.UpdateAlbum(ctx, id, patch)
	return written(ctx, c, collectionAlbums, item, err)
}

func (c *CachedStorage) DeleteAlbum(ctx context.Context, id uint) (bool, error) {
	ok, err := c.Storage.DeleteAlbum(ctx, id)
	return written(ctx, c, collectionAlbums, ok, err)
}

func (c *CachedStorage) ListTags(ctx context.Context, filter Filter) ([]db.Tag, error) {
	return cachedList(ctx, c, collectionTags, filter, func() ([]db.Tag, error) {
		return c.Storage.ListTags(ctx, filter)
	})
}

func (c *CachedStorage) CreateTag(ctx context.Context, input TagInput) (*db.Tag, error) {
	item, err := c.Storage.CreateTag(ctx, input)
	return written(ctx, c, collectionTags, item, err)
}

func (c *CachedStorage) UpdateTag(ctx context.Context, id uint, patch TagPatch) (*db.Tag, error) {
	item, err := c.Storage.UpdateTag(ctx, id, patch)
	return written(ctx, c, collectionTags, item, err)
}

func (c *CachedStorage) DeleteTag(ctx context.Context, id uint) (bool, error) {
	ok, err := c.Storage.DeleteTag(ctx, id)
	return written(ctx, c, collectionTags, ok, err)
}

func (c *CachedStorage) ListPhotoLocations(ctx context.Context) ([]db.PhotoLocation, error) {
	return cachedList(ctx, c, collectionLocations, Filter{}, func() ([]db.PhotoLocation, error) {
		return c.Storage.ListPhotoLocations(ctx)
	})
}

func (c *CachedStorage) CreatePhotoLocation(ctx context.Context, input NameInput) (*db.PhotoLocation, error) {
	item, err := c.Storage.CreatePhotoLocation(ctx, input)
	return written(ctx, c, collectionLocations, item, err)
}

func (c *CachedStorage) UpdatePhotoLocation(ctx context.Context, id uint, patch NamePatch) (*db.PhotoLocation, error) {
	item, err := c.Storage.UpdatePhotoLocation(ctx, id, patch)
	return written(ctx, c, collectionLocations, item, err)
}

func (c *CachedStorage) DeletePhotoLocation(ctx context.Context, id uint) (bool, error) {
	ok, err := c.Storage.DeletePhotoLocation(ctx, id)
	return written(ctx, c, collectionLocations, ok, err)
}

func (c *CachedStorage) ListPhotoDevices(ctx context.Context) ([]db.PhotoDevice, error) {
	return cachedList(ctx, c, collectionDevices, Filter{}, func() ([]db.PhotoDevice, error) {
		return c.Storage.ListPhotoDevices(ctx)
	})
}

func (c *CachedStorage) CreatePhotoDevice(ctx context.Context, input NameInput) (*db.PhotoDevice, error) {
	item, err := c.Storage.CreatePhotoDevice(ctx, input)
	return written(ctx, c, collectionDevices, item, err)
}

func (c *CachedStorage) UpdatePhotoDevice(ctx context.Context, id uint, patch NamePatch) (*db.PhotoDevice, error) {
	item, err := c.Storage.UpdatePhotoDevice(ctx, id, patch)
	return written(ctx, c, collectionDevices, item, err)
}

func (c *CachedStorage) DeletePhotoDevice(ctx context.Context, id uint) (bool, error) {
	ok, err := c.Storage.DeletePhotoDevice(ctx, id)
	return written(ctx, c, collectionDevices, ok, err)
}

// Ping checks both redis and the wrapped storage.
func (c *CachedStorage) Ping(ctx context.Context) error {
	if err := c.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	return c.Storage.Ping(ctx)
}

// Close closes the redis client and the wrapped storage.
func (c *CachedStorage) Close() error {
	return errors.Join(c.client.Close(), c.Storage.Close())
}
