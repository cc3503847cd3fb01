package storage

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/portfolio/internal/db"
	"gorm.io/datatypes"
)

// collection is one id-keyed table of the memory store.
type collection[T any] struct {
	items map[uint]T
	seq   uint
}

func newCollection[T any]() collection[T] {
	return collection[T]{items: make(map[uint]T)}
}

func (c *collection[T]) nextID() uint {
	c.seq++
	return c.seq
}

// list returns the items accepted by keep in ascending id order.
func (c *collection[T]) list(keep func(T) bool, clone func(T) T) []T {
	ids := slices.Sorted(maps.Keys(c.items))
	out := make([]T, 0, len(ids))
	for _, id := range ids {
		item := c.items[id]
		if keep != nil && !keep(item) {
			continue
		}
		out = append(out, clone(item))
	}
	return out
}

func (c *collection[T]) get(id uint, clone func(T) T) *T {
	item, ok := c.items[id]
	if !ok {
		return nil
	}
	out := clone(item)
	return &out
}

func (c *collection[T]) remove(id uint) bool {
	if _, ok := c.items[id]; !ok {
		return false
	}
	delete(c.items, id)
	return true
}

// MemStorage keeps every collection in process memory. It backs the demo
// mode and the tests; all data is lost on restart.
type MemStorage struct {
	mu        sync.RWMutex
	now       func() time.Time
	projects  collection[db.Project]
	gallery   collection[db.GalleryItem]
	cv        collection[db.CVData]
	writings  collection[db.Writing]
	albums    collection[db.Album]
	tags      collection[db.Tag]
	locations collection[db.PhotoLocation]
	devices   collection[db.PhotoDevice]
}

// MemOption customizes a MemStorage.
type MemOption func(*MemStorage)

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) MemOption {
	return func(s *MemStorage) {
		s.now = now
	}
}

// NewMemStorage creates an empty in-memory store.
func NewMemStorage(opts ...MemOption) *MemStorage {
	s := &MemStorage{
		now:       time.Now,
		projects:  newCollection[db.Project](),
		gallery:   newCollection[db.GalleryItem](),
		cv:        newCollection[db.CVData](),
		writings:  newCollection[db.Writing](),
		albums:    newCollection[db.Album](),
		tags:      newCollection[db.Tag](),
		locations: newCollection[db.PhotoLocation](),
		devices:   newCollection[db.PhotoDevice](),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *MemStorage) stamp() time.Time {
	return s.now().UTC()
}

func inCategory(filter Filter, category string) bool {
	want := strings.TrimSpace(filter.Category)
	return want == "" || category == want
}

// Projects

func (s *MemStorage) ListProjects(_ context.Context, filter Filter) ([]db.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.projects.list(func(p db.Project) bool { return inCategory(filter, p.Category) }, cloneProject), nil
}

func (s *MemStorage) GetProject(_ context.Context, id uint) (*db.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.projects.get(id, cloneProject), nil
}

func (s *MemStorage) CreateProject(_ context.Context, input ProjectInput) (*db.Project, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	item := input.record()
	item.ID = s.projects.nextID()
	item.CreatedAt = s.stamp()
	item.UpdatedAt = item.CreatedAt
	s.projects.items[item.ID] = item
	return s.projects.get(item.ID, cloneProject), nil
}

func (s *MemStorage) UpdateProject(_ context.Context, id uint, patch ProjectPatch) (*db.Project, error) {
	if err := patch.validate(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.projects.items[id]
	if !ok {
		return nil, nil
	}
	item = cloneProject(item)
	patch.apply(&item)
	item.UpdatedAt = s.stamp()
	s.projects.items[id] = item
	return s.projects.get(id, cloneProject), nil
}

func (s *MemStorage) DeleteProject(_ context.Context, id uint) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.projects.remove(id), nil
}

// Gallery items

func (s *MemStorage) ListGalleryItems(_ context.Context, filter Filter) ([]db.GalleryItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.gallery.list(func(g db.GalleryItem) bool { return inCategory(filter, g.Category) }, cloneGalleryItem), nil
}

func (s *MemStorage) GetGalleryItem(_ context.Context, id uint) (*db.GalleryItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.gallery.get(id, cloneGalleryItem), nil
}

func (s *MemStorage) CreateGalleryItem(_ context.Context, input GalleryItemInput) (*db.GalleryItem, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	item := input.record()
	item.ID = s.gallery.nextID()
	item.CreatedAt = s.stamp()
	item.UpdatedAt = item.CreatedAt
	s.gallery.items[item.ID] = item
	return s.gallery.get(item.ID, cloneGalleryItem), nil
}

func (s *MemStorage) UpdateGalleryItem(_ context.Context, id uint, patch GalleryItemPatch) (*db.GalleryItem, error) {
	if err := patch.validate(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.gallery.items[id]
	if !ok {
		return nil, nil
	}
	item = cloneGalleryItem(item)
	patch.apply(&item)
	item.UpdatedAt = s.stamp()
	s.gallery.items[id] = item
	return s.gallery.get(id, cloneGalleryItem), nil
}

func (s *MemStorage) DeleteGalleryItem(_ context.Context, id uint) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gallery.remove(id), nil
}

// CV data

func (s *MemStorage) GetCVData(_ context.Context) (*db.CVData, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := s.cv.list(nil, cloneCV)
	if len(items) == 0 {
		return nil, nil
	}
	latest := items[len(items)-1]
	return &latest, nil
}

// CreateCVData replaces any existing CV so that at most one record exists.
func (s *MemStorage) CreateCVData(_ context.Context, input CVInput) (*db.CVData, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	clear(s.cv.items)
	item := input.record()
	item.ID = s.cv.nextID()
	item.CreatedAt = s.stamp()
	item.UpdatedAt = item.CreatedAt
	s.cv.items[item.ID] = item
	return s.cv.get(item.ID, cloneCV), nil
}

func (s *MemStorage) UpdateCVData(_ context.Context, id uint, patch CVPatch) (*db.CVData, error) {
	if err := patch.validate(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.cv.items[id]
	if !ok {
		return nil, nil
	}
	item = cloneCV(item)
	patch.apply(&item)
	item.UpdatedAt = s.stamp()
	s.cv.items[id] = item
	return s.cv.get(id, cloneCV), nil
}

func (s *MemStorage) DeleteCVData(_ context.Context, id uint) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cv.remove(id), nil
}

// Writings

func (s *MemStorage) ListWritings(_ context.Context, filter Filter) ([]db.Writing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.writings.list(func(w db.Writing) bool { return inCategory(filter, w.Category) }, cloneWriting), nil
}

func (s *MemStorage) GetWriting(_ context.Context, id uint) (*db.Writing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.writings.get(id, cloneWriting), nil
}

func (s *MemStorage) CreateWriting(_ context.Context, input WritingInput) (*db.Writing, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	item := input.record()
	item.ID = s.writings.nextID()
	item.CreatedAt = s.stamp()
	item.UpdatedAt = item.CreatedAt
	s.writings.items[item.ID] = item
	return s.writings.get(item.ID, cloneWriting), nil
}

func (s *MemStorage) UpdateWriting(_ context.Context, id uint, patch WritingPatch) (*db.Writing, error) {
	if err := patch.validate(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.writings.items[id]
	if !ok {
		return nil, nil
	}
	item = cloneWriting(item)
	patch.apply(&item)
	item.UpdatedAt = s.stamp()
	s.writings.items[id] = item
	return s.writings.get(id, cloneWriting), nil
}

func (s *MemStorage) DeleteWriting(_ context.Context, id uint) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writings.remove(id), nil
}

// Albums

func (s *MemStorage) ListAlbums(_ context.Context) ([]db.Album, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.albums.list(nil, cloneAlbum), nil
}

func (s *MemStorage) GetAlbum(_ context.Context, id uint) (*db.Album, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.albums.get(id, cloneAlbum), nil
}

func (s *MemStorage) CreateAlbum(_ context.Context, input AlbumInput) (*db.Album, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	item := input.record()
	item.ID = s.albums.nextID()
	item.CreatedAt = s.stamp()
	item.UpdatedAt = item.CreatedAt
	s.albums.items[item.ID] = item
	return s.albums.get(item.ID, cloneAlbum), nil
}

func (s *MemStorage) UpdateAlbum(_ context.Context, id uint, patch AlbumPatch) (*db.Album, error) {
	if err := patch.validate(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.albums.items[id]
	if !ok {
		return nil, nil
	}
	item = cloneAlbum(item)
	patch.apply(&item)
	item.UpdatedAt = s.stamp()
	s.albums.items[id] = item
	return s.albums.get(id, cloneAlbum), nil
}

func (s *MemStorage) DeleteAlbum(_ context.Context, id uint) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.albums.remove(id), nil
}

// Tags

func (s *MemStorage) ListTags(_ context.Context, filter Filter) ([]db.Tag, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tags.list(func(t db.Tag) bool { return inCategory(filter, t.Category) }, identity[db.Tag]), nil
}

func (s *MemStorage) GetTag(_ context.Context, id uint) (*db.Tag, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tags.get(id, identity[db.Tag]), nil
}

func (s *MemStorage) CreateTag(_ context.Context, input TagInput) (*db.Tag, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	item := input.record()
	if s.tagTaken(item.Name, item.Category, 0) {
		return nil, fmt.Errorf("%w: tag %q", ErrDuplicate, item.Name)
	}
	item.ID = s.tags.nextID()
	item.CreatedAt = s.stamp()
	item.UpdatedAt = item.CreatedAt
	s.tags.items[item.ID] = item
	return s.tags.get(item.ID, identity[db.Tag]), nil
}

func (s *MemStorage) UpdateTag(_ context.Context, id uint, patch TagPatch) (*db.Tag, error) {
	if err := patch.validate(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.tags.items[id]
	if !ok {
		return nil, nil
	}
	patch.apply(&item)
	if s.tagTaken(item.Name, item.Category, id) {
		return nil, fmt.Errorf("%w: tag %q", ErrDuplicate, item.Name)
	}
	item.UpdatedAt = s.stamp()
	s.tags.items[id] = item
	return s.tags.get(id, identity[db.Tag]), nil
}

func (s *MemStorage) DeleteTag(_ context.Context, id uint) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tags.remove(id), nil
}

func (s *MemStorage) tagTaken(name, category string, except uint) bool {
	for id, tag := range s.tags.items {
		if id != except && tag.Name == name && tag.Category == category {
			return true
		}
	}
	return false
}

// Photo locations

func (s *MemStorage) ListPhotoLocations(_ context.Context) ([]db.PhotoLocation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.locations.list(nil, identity[db.PhotoLocation]), nil
}

func (s *MemStorage) GetPhotoLocation(_ context.Context, id uint) (*db.PhotoLocation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.locations.get(id, identity[db.PhotoLocation]), nil
}

func (s *MemStorage) CreatePhotoLocation(_ context.Context, input NameInput) (*db.PhotoLocation, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	name := strings.TrimSpace(input.Name)
	if nameTaken(s.locations.items, name, 0, func(l db.PhotoLocation) string { return l.Name }) {
		return nil, fmt.Errorf("%w: location %q", ErrDuplicate, name)
	}
	now := s.stamp()
	item := db.PhotoLocation{ID: s.locations.nextID(), Name: name, CreatedAt: now, UpdatedAt: now}
	s.locations.items[item.ID] = item
	return s.locations.get(item.ID, identity[db.PhotoLocation]), nil
}

func (s *MemStorage) UpdatePhotoLocation(_ context.Context, id uint, patch NamePatch) (*db.PhotoLocation, error) {
	if err := patch.validate(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.locations.items[id]
	if !ok {
		return nil, nil
	}
	setTrimmed(&item.Name, patch.Name)
	if nameTaken(s.locations.items, item.Name, id, func(l db.PhotoLocation) string { return l.Name }) {
		return nil, fmt.Errorf("%w: location %q", ErrDuplicate, item.Name)
	}
	item.UpdatedAt = s.stamp()
	s.locations.items[id] = item
	return s.locations.get(id, identity[db.PhotoLocation]), nil
}

func (s *MemStorage) DeletePhotoLocation(_ context.Context, id uint) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.locations.remove(id), nil
}

// Photo devices

func (s *MemStorage) ListPhotoDevices(_ context.Context) ([]db.PhotoDevice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.devices.list(nil, identity[db.PhotoDevice]), nil
}

func (s *MemStorage) GetPhotoDevice(_ context.Context, id uint) (*db.PhotoDevice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.devices.get(id, identity[db.PhotoDevice]), nil
}

func (s *MemStorage) CreatePhotoDevice(_ context.Context, input NameInput) (*db.PhotoDevice, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	name := strings.TrimSpace(input.Name)
	if nameTaken(s.devices.items, name, 0, func(d db.PhotoDevice) string { return d.Name }) {
		return nil, fmt.Errorf("%w: device %q", ErrDuplicate, name)
	}
	now := s.stamp()
	item := db.PhotoDevice{ID: s.devices.nextID(), Name: name, CreatedAt: now, UpdatedAt: now}
	s.devices.items[item.ID] = item
	return s.devices.get(item.ID, identity[db.PhotoDevice]), nil
}

func (s *MemStorage) UpdatePhotoDevice(_ context.Context, id uint, patch NamePatch) (*db.PhotoDevice, error) {
	if err := patch.validate(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.devices.items[id]
	if !ok {
		return nil, nil
	}
	setTrimmed(&item.Name, patch.Name)
	if nameTaken(s.devices.items, item.Name, id, func(d db.PhotoDevice) string { return d.Name }) {
		return nil, fmt.Errorf("%w: device %q", ErrDuplicate, item.Name)
	}
	item.UpdatedAt = s.stamp()
	s.devices.items[id] = item
	return s.devices.get(id, identity[db.PhotoDevice]), nil
}

func (s *MemStorage) DeletePhotoDevice(_ context.Context, id uint) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.devices.remove(id), nil
}

// Ping always succeeds for the memory store.
func (s *MemStorage) Ping(context.Context) error { return nil }

// Close is a no-op for the memory store.
func (s *MemStorage) Close() error { return nil }

func nameTaken[T any](items map[uint]T, name string, except uint, nameOf func(T) string) bool {
	for id, item := range items {
		if id != except && nameOf(item) == name {
			return true
		}
	}
	return false
}

func identity[T any](v T) T { return v }

func cloneProject(p db.Project) db.Project {
	p.Technologies = slices.Clone(p.Technologies)
	return p
}

func cloneGalleryItem(g db.GalleryItem) db.GalleryItem {
	g.Tags = slices.Clone(g.Tags)
	g.TakenAt = cloneTime(g.TakenAt)
	return g
}

func cloneCV(c db.CVData) db.CVData {
	c.Skills = slices.Clone(c.Skills)
	c.Experience = datatypes.JSON(slices.Clone([]byte(c.Experience)))
	c.Education = datatypes.JSON(slices.Clone([]byte(c.Education)))
	return c
}

func cloneWriting(w db.Writing) db.Writing {
	w.Tags = slices.Clone(w.Tags)
	w.TrashedAt = cloneTime(w.TrashedAt)
	return w
}

func cloneAlbum(a db.Album) db.Album {
	a.WritingIDs = slices.Clone(a.WritingIDs)
	return a
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
