package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/portfolio/internal/db"
	"github.com/portfolio/internal/storage"
	"go.uber.org/zap"
)

var (
	ErrWritingNotFound = errors.New("writing not found")
	ErrAlbumNotFound   = errors.New("album not found")
	ErrWritingOrder    = errors.New("invalid writing order")
	ErrWritingStatus   = errors.New("invalid writing status")
)

// DefaultTrashRetention 回收站中的作品保留 30 天后被彻底删除
const DefaultTrashRetention = 30 * 24 * time.Hour

// WritingStatus selects which writings a listing returns.
type WritingStatus string

const (
	WritingStatusActive  WritingStatus = "active"
	WritingStatusTrashed WritingStatus = "trashed"
	WritingStatusAll     WritingStatus = "all"
)

// ParseWritingStatus maps a query value to a status; empty means active.
func ParseWritingStatus(value string) (WritingStatus, error) {
	switch status := WritingStatus(strings.ToLower(strings.TrimSpace(value))); status {
	case "":
		return WritingStatusActive, nil
	case WritingStatusActive, WritingStatusTrashed, WritingStatusAll:
		return status, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrWritingStatus, value)
	}
}

// PurgeResult lists the writings removed by PurgeTrash.
type PurgeResult struct {
	IDs []uint `json:"ids"`
}

// WritingService implements the pin, trash, ordering and album conventions
// layered on top of the writing records.
type WritingService struct {
	store     storage.Storage
	retention time.Duration
	now       func() time.Time
	log       *zap.Logger
}

// WritingOption customizes a WritingService.
type WritingOption func(*WritingService)

// WithRetention sets how long trashed writings are kept.
func WithRetention(d time.Duration) WritingOption {
	return func(s *WritingService) {
		if d > 0 {
			s.retention = d
		}
	}
}

// WithNow overrides the clock.
func WithNow(now func() time.Time) WritingOption {
	return func(s *WritingService) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger attaches a logger used by the trash janitor.
func WithLogger(logger *zap.Logger) WritingOption {
	return func(s *WritingService) {
		if logger != nil {
			s.log = logger
		}
	}
}

// NewWritingService creates a WritingService instance.
func NewWritingService(store storage.Storage, opts ...WritingOption) *WritingService {
	s := &WritingService{
		store:     store,
		retention: DefaultTrashRetention,
		now:       time.Now,
		log:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Retention returns the configured trash retention.
func (s *WritingService) Retention() time.Duration {
	return s.retention
}

// List returns the writings with the given status in display order.
func (s *WritingService) List(ctx context.Context, filter storage.Filter, status WritingStatus) ([]db.Writing, error) {
	items, err := s.store.ListWritings(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list writings: %w", err)
	}

	kept := items[:0]
	for _, item := range items {
		switch status {
		case WritingStatusAll:
		case WritingStatusTrashed:
			if !item.Trashed() {
				continue
			}
		default:
			if item.Trashed() {
				continue
			}
		}
		kept = append(kept, item)
	}

	Arrange(kept)
	return kept, nil
}

// Arrange sorts writings in place: pinned first, then by sort order, then newest first.
func Arrange(items []db.Writing) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.Pinned() != b.Pinned() {
			return a.Pinned()
		}
		if a.SortOrder != b.SortOrder {
			return a.SortOrder < b.SortOrder
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID > b.ID
	})
}

// ListTrash returns trashed writings, most recently trashed first.
func (s *WritingService) ListTrash(ctx context.Context, filter storage.Filter) ([]db.Writing, error) {
	items, err := s.List(ctx, filter, WritingStatusTrashed)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].TrashedAt.After(*items[j].TrashedAt)
	})
	return items, nil
}

// Create stores a writing. A pin tag in the input is applied through Pin so
// that at most one writing stays pinned.
func (s *WritingService) Create(ctx context.Context, input storage.WritingInput) (*db.Writing, error) {
	pin := slices.Contains(input.Tags, db.PinnedTag)
	input.Tags = withoutPin(input.Tags)

	item, err := s.store.CreateWriting(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("create writing: %w", err)
	}
	if !pin {
		return item, nil
	}
	return s.Pin(ctx, item.ID)
}

// Update merges patch into a writing. When patch replaces the tags, the pin
// tag is honoured through Pin and dropped otherwise.
func (s *WritingService) Update(ctx context.Context, id uint, patch storage.WritingPatch) (*db.Writing, error) {
	if patch.Tags == nil {
		return s.update(ctx, id, patch)
	}

	pin := slices.Contains(*patch.Tags, db.PinnedTag)
	tags := withoutPin(*patch.Tags)
	patch.Tags = &tags

	item, err := s.update(ctx, id, patch)
	if err != nil || !pin {
		return item, err
	}
	return s.Pin(ctx, id)
}

// Pin marks a writing as the single pinned writing, unpinning any other.
func (s *WritingService) Pin(ctx context.Context, id uint) (*db.Writing, error) {
	target, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	items, err := s.store.ListWritings(ctx, storage.Filter{})
	if err != nil {
		return nil, fmt.Errorf("list writings: %w", err)
	}
	for _, item := range items {
		if item.ID == id || !item.Pinned() {
			continue
		}
		if _, err := s.setTags(ctx, item.ID, withoutPin(item.Tags)); err != nil {
			return nil, err
		}
	}

	if target.Pinned() {
		return target, nil
	}
	return s.setTags(ctx, id, append(slices.Clone(target.Tags), db.PinnedTag))
}

// Unpin removes the pin tag from a writing.
func (s *WritingService) Unpin(ctx context.Context, id uint) (*db.Writing, error) {
	target, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !target.Pinned() {
		return target, nil
	}
	return s.setTags(ctx, id, withoutPin(target.Tags))
}

// Trash moves a writing to the trash.
func (s *WritingService) Trash(ctx context.Context, id uint) (*db.Writing, error) {
	return s.update(ctx, id, storage.WritingPatch{DeletedAt: storage.SetTo(s.now().UTC())})
}

// Restore takes a writing out of the trash.
func (s *WritingService) Restore(ctx context.Context, id uint) (*db.Writing, error) {
	return s.update(ctx, id, storage.WritingPatch{DeletedAt: storage.SetNull[time.Time]()})
}

// Delete removes a writing permanently and drops it from every album.
func (s *WritingService) Delete(ctx context.Context, id uint) (bool, error) {
	ok, err := s.store.DeleteWriting(ctx, id)
	if err != nil {
		return false, fmt.Errorf("delete writing %d: %w", id, err)
	}
	if !ok {
		return false, nil
	}
	if err := s.detachFromAlbums(ctx, id); err != nil {
		return true, err
	}
	return true, nil
}

// PurgeTrash deletes writings that have been in the trash longer than the retention.
func (s *WritingService) PurgeTrash(ctx context.Context, now time.Time) (PurgeResult, error) {
	result := PurgeResult{IDs: []uint{}}
	cutoff := now.Add(-s.retention)

	items, err := s.store.ListWritings(ctx, storage.Filter{})
	if err != nil {
		return result, fmt.Errorf("list writings: %w", err)
	}

	for _, item := range items {
		if !item.Trashed() || item.TrashedAt.After(cutoff) {
			continue
		}
		ok, err := s.Delete(ctx, item.ID)
		if err != nil {
			return result, err
		}
		if ok {
			result.IDs = append(result.IDs, item.ID)
		}
	}
	return result, nil
}

// PurgeExpired runs PurgeTrash at the service clock's current time.
func (s *WritingService) PurgeExpired(ctx context.Context) (PurgeResult, error) {
	return s.PurgeTrash(ctx, s.now())
}

// Reorder assigns sortOrder 0,1,2... to the given writings in order.
// Writings not listed keep their current order.
func (s *WritingService) Reorder(ctx context.Context, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}

	seen := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		if id == 0 {
			return fmt.Errorf("%w: id must be positive", ErrWritingOrder)
		}
		if _, dup := seen[id]; dup {
			return fmt.Errorf("%w: duplicate id %d", ErrWritingOrder, id)
		}
		seen[id] = struct{}{}
		if _, err := s.get(ctx, id); err != nil {
			return err
		}
	}

	for index, id := range ids {
		order := index
		if _, err := s.update(ctx, id, storage.WritingPatch{SortOrder: &order}); err != nil {
			return fmt.Errorf("reorder writings: %w", err)
		}
	}
	return nil
}

// AddToAlbum appends a writing to an album unless it is already there.
func (s *WritingService) AddToAlbum(ctx context.Context, albumID, writingID uint) (*db.Album, error) {
	album, err := s.getAlbum(ctx, albumID)
	if err != nil {
		return nil, err
	}
	if _, err := s.get(ctx, writingID); err != nil {
		return nil, err
	}
	if album.Contains(writingID) {
		return album, nil
	}

	ids := append(slices.Clone(album.WritingIDs), writingID)
	return s.setAlbumWritings(ctx, albumID, ids)
}

// RemoveFromAlbum drops a writing from an album.
func (s *WritingService) RemoveFromAlbum(ctx context.Context, albumID, writingID uint) (*db.Album, error) {
	album, err := s.getAlbum(ctx, albumID)
	if err != nil {
		return nil, err
	}
	if !album.Contains(writingID) {
		return album, nil
	}

	ids := slices.DeleteFunc(slices.Clone(album.WritingIDs), func(id uint) bool { return id == writingID })
	return s.setAlbumWritings(ctx, albumID, ids)
}

// RunJanitor purges expired trash once immediately and then every interval
// until ctx is cancelled.
func (s *WritingService) RunJanitor(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		interval = time.Hour
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if ctx.Err() != nil {
			return nil
		}
		result, err := s.PurgeExpired(ctx)
		switch {
		case err != nil && ctx.Err() == nil:
			s.log.Warn("trash purge failed", zap.Error(err))
		case len(result.IDs) > 0:
			s.log.Info("trash purged", zap.Uints("ids", result.IDs))
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func (s *WritingService) detachFromAlbums(ctx context.Context, writingID uint) error {
	albums, err := s.store.ListAlbums(ctx)
	if err != nil {
		return fmt.Errorf("list albums: %w", err)
	}
	for _, album := range albums {
		if !album.Contains(writingID) {
			continue
		}
		ids := slices.DeleteFunc(slices.Clone(album.WritingIDs), func(id uint) bool { return id == writingID })
		if _, err := s.setAlbumWritings(ctx, album.ID, ids); err != nil && !errors.Is(err, ErrAlbumNotFound) {
			return err
		}
	}
	return nil
}

func (s *WritingService) get(ctx context.Context, id uint) (*db.Writing, error) {
	item, err := s.store.GetWriting(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get writing %d: %w", id, err)
	}
	if item == nil {
		return nil, ErrWritingNotFound
	}
	return item, nil
}

func (s *WritingService) update(ctx context.Context, id uint, patch storage.WritingPatch) (*db.Writing, error) {
	item, err := s.store.UpdateWriting(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("update writing %d: %w", id, err)
	}
	if item == nil {
		return nil, ErrWritingNotFound
	}
	return item, nil
}

func (s *WritingService) setTags(ctx context.Context, id uint, tags []string) (*db.Writing, error) {
	return s.update(ctx, id, storage.WritingPatch{Tags: &tags})
}

func (s *WritingService) getAlbum(ctx context.Context, id uint) (*db.Album, error) {
	album, err := s.store.GetAlbum(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get album %d: %w", id, err)
	}
	if album == nil {
		return nil, ErrAlbumNotFound
	}
	return album, nil
}

func (s *WritingService) setAlbumWritings(ctx context.Context, albumID uint, ids []uint) (*db.Album, error) {
	album, err := s.store.UpdateAlbum(ctx, albumID, storage.AlbumPatch{WritingIDs: &ids})
	if err != nil {
		return nil, fmt.Errorf("update album %d: %w", albumID, err)
	}
	if album == nil {
		return nil, ErrAlbumNotFound
	}
	return album, nil
}

func withoutPin(tags []string) []string {
	return slices.DeleteFunc(slices.Clone(tags), func(tag string) bool { return tag == db.PinnedTag })
}
