package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/portfolio/internal/db"
	"gorm.io/gorm"
)

// DBStorage implements Storage on top of gorm (sqlite or postgres).
type DBStorage struct {
	db *gorm.DB
}

// NewDBStorage wraps an opened and migrated gorm connection.
func NewDBStorage(gdb *gorm.DB) *DBStorage {
	return &DBStorage{db: gdb}
}

// DB exposes the underlying gorm instance for the seed command and tests.
func (s *DBStorage) DB() *gorm.DB {
	return s.db
}

func listRecords[T any](ctx context.Context, gdb *gorm.DB, what, category string) ([]T, error) {
	query := gdb.WithContext(ctx).Model(new(T))
	if category = strings.TrimSpace(category); category != "" {
		query = query.Where("category = ?", category)
	}

	items := make([]T, 0)
	if err := query.Order("id asc").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list %s: %w", what, err)
	}
	return items, nil
}

func findRecord[T any](ctx context.Context, gdb *gorm.DB, what string, id uint) (*T, error) {
	var item T
	if err := gdb.WithContext(ctx).First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get %s: %w", what, err)
	}
	return &item, nil
}

func createRecord[T any](ctx context.Context, gdb *gorm.DB, what string, item *T) (*T, error) {
	if err := gdb.WithContext(ctx).Create(item).Error; err != nil {
		return nil, fmt.Errorf("create %s: %w", what, err)
	}
	return item, nil
}

// updateRecord loads the row, lets mutate merge the patch and saves it back.
func updateRecord[T any](ctx context.Context, gdb *gorm.DB, what string, id uint, mutate func(*T) error) (*T, error) {
	item, err := findRecord[T](ctx, gdb, what, id)
	if err != nil || item == nil {
		return nil, err
	}
	if err := mutate(item); err != nil {
		return nil, err
	}
	if err := gdb.WithContext(ctx).Save(item).Error; err != nil {
		return nil, fmt.Errorf("update %s: %w", what, err)
	}
	return item, nil
}

func deleteRecord[T any](ctx context.Context, gdb *gorm.DB, what string, id uint) (bool, error) {
	result := gdb.WithContext(ctx).Delete(new(T), id)
	if result.Error != nil {
		return false, fmt.Errorf("delete %s: %w", what, result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (s *DBStorage) ListProjects(ctx context.Context, filter Filter) ([]db.Project, error) {
	return listRecords[db.Project](ctx, s.db, "projects", filter.Category)
}

func (s *DBStorage) GetProject(ctx context.Context, id uint) (*db.Project, error) {
	return findRecord[db.Project](ctx, s.db, "project", id)
}

func (s *DBStorage) CreateProject(ctx context.Context, input ProjectInput) (*db.Project, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	item := input.record()
	return createRecord(ctx, s.db, "project", &item)
}

func (s *DBStorage) UpdateProject(ctx context.Context, id uint, patch ProjectPatch) (*db.Project, error) {
	if err := patch.validate(); err != nil {
		return nil, err
	}
	return updateRecord(ctx, s.db, "project", id, func(item *db.Project) error {
		patch.apply(item)
		item.UpdatedAt = time.Now()
		return nil
	})
}

func (s *DBStorage) DeleteProject(ctx context.Context, id uint) (bool, error) {
	return deleteRecord[db.Project](ctx, s.db, "project", id)
}

func (s *DBStorage) ListGalleryItems(ctx context.Context, filter Filter) ([]db.GalleryItem, error) {
	return listRecords[db.GalleryItem](ctx, s.db, "gallery items", filter.Category)
}

func (s *DBStorage) GetGalleryItem(ctx context.Context, id uint) (*db.GalleryItem, error) {
	return findRecord[db.GalleryItem](ctx, s.db, "gallery item", id)
}

func (s *DBStorage) CreateGalleryItem(ctx context.Context, input GalleryItemInput) (*db.GalleryItem, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	item := input.record()
	return createRecord(ctx, s.db, "gallery item", &item)
}

func (s *DBStorage) UpdateGalleryItem(ctx context.Context, id uint, patch GalleryItemPatch) (*db.GalleryItem, error) {
	if err := patch.validate(); err != nil {
		return nil, err
	}
	return updateRecord(ctx, s.db, "gallery item", id, func(item *db.GalleryItem) error {
		patch.apply(item)
		item.UpdatedAt = time.Now()
		return nil
	})
}

func (s *DBStorage) DeleteGalleryItem(ctx context.Context, id uint) (bool, error) {
	return deleteRecord[db.GalleryItem](ctx, s.db, "gallery item", id)
}

func (s *DBStorage) GetCVData(ctx context.Context) (*db.CVData, error) {
	var item db.CVData
	if err := s.db.WithContext(ctx).Order("id desc").First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cv data: %w", err)
	}
	return &item, nil
}

// CreateCVData replaces any existing CV inside one transaction so that at
// most one record exists.
func (s *DBStorage) CreateCVData(ctx context.Context, input CVInput) (*db.CVData, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	item := input.record()
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id > ?", 0).Delete(&db.CVData{}).Error; err != nil {
			return fmt.Errorf("replace cv data: %w", err)
		}
		if err := tx.Create(&item).Error; err != nil {
			return fmt.Errorf("create cv data: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *DBStorage) UpdateCVData(ctx context.Context, id uint, patch CVPatch) (*db.CVData, error) {
	if err := patch.validate(); err != nil {
		return nil, err
	}
	return updateRecord(ctx, s.db, "cv data", id, func(item *db.CVData) error {
		patch.apply(item)
		item.UpdatedAt = time.Now()
		return nil
	})
}

func (s *DBStorage) DeleteCVData(ctx context.Context, id uint) (bool, error) {
	return deleteRecord[db.CVData](ctx, s.db, "cv data", id)
}

func (s *DBStorage) ListWritings(ctx context.Context, filter Filter) ([]db.Writing, error) {
	return listRecords[db.Writing](ctx, s.db, "writings", filter.Category)
}

func (s *DBStorage) GetWriting(ctx context.Context, id uint) (*db.Writing, error) {
	return findRecord[db.Writing](ctx, s.db, "writing", id)
}

func (s *DBStorage) CreateWriting(ctx context.Context, input WritingInput) (*db.Writing, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	item := input.record()
	return createRecord(ctx, s.db, "writing", &item)
}

func (s *DBStorage) UpdateWriting(ctx context.Context, id uint, patch WritingPatch) (*db.Writing, error) {
	if err := patch.validate(); err != nil {
		return nil, err
	}
	return updateRecord(ctx, s.db, "writing", id, func(item *db.Writing) error {
		patch.apply(item)
		item.UpdatedAt = time.Now()
		return nil
	})
}

func (s *DBStorage) DeleteWriting(ctx context.Context, id uint) (bool, error) {
	return deleteRecord[db.Writing](ctx, s.db, "writing", id)
}

func (s *DBStorage) ListAlbums(ctx context.Context) ([]db.Album, error) {
	return listRecords[db.Album](ctx, s.db, "albums", "")
}

func (s *DBStorage) GetAlbum(ctx context.Context, id uint) (*db.Album, error) {
	return findRecord[db.Album](ctx, s.db, "album", id)
}

func (s *DBStorage) CreateAlbum(ctx context.Context, input AlbumInput) (*db.Album, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	item := input.record()
	return createRecord(ctx, s.db, "album", &item)
}

func (s *DBStorage) UpdateAlbum(ctx context.Context, id uint, patch AlbumPatch) (*db.Album, error) {
	if err := patch.validate(); err != nil {
		return nil, err
	}
	return updateRecord(ctx, s.db, "album", id, func(item *db.Album) error {
		patch.apply(item)
		item.UpdatedAt = time.Now()
		return nil
	})
}

func (s *DBStorage) DeleteAlbum(ctx context.Context, id uint) (bool, error) {
	return deleteRecord[db.Album](ctx, s.db, "album", id)
}

func (s *DBStorage) ListTags(ctx context.Context, filter Filter) ([]db.Tag, error) {
	return listRecords[db.Tag](ctx, s.db, "tags", filter.Category)
}

func (s *DBStorage) GetTag(ctx context.Context, id uint) (*db.Tag, error) {
	return findRecord[db.Tag](ctx, s.db, "tag", id)
}

func (s *DBStorage) CreateTag(ctx context.Context, input TagInput) (*db.Tag, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	item := input.record()
	if err := s.ensureUnique(ctx, &db.Tag{}, 0, "name = ? AND category = ?", item.Name, item.Category); err != nil {
		return nil, err
	}
	return createRecord(ctx, s.db, "tag", &item)
}

func (s *DBStorage) UpdateTag(ctx context.Context, id uint, patch TagPatch) (*db.Tag, error) {
	if err := patch.validate(); err != nil {
		return nil, err
	}
	return updateRecord(ctx, s.db, "tag", id, func(item *db.Tag) error {
		patch.apply(item)
		if err := s.ensureUnique(ctx, &db.Tag{}, id, "name = ? AND category = ?", item.Name, item.Category); err != nil {
			return err
		}
		item.UpdatedAt = time.Now()
		return nil
	})
}

func (s *DBStorage) DeleteTag(ctx context.Context, id uint) (bool, error) {
	return deleteRecord[db.Tag](ctx, s.db, "tag", id)
}

func (s *DBStorage) ListPhotoLocations(ctx context.Context) ([]db.PhotoLocation, error) {
	return listRecords[db.PhotoLocation](ctx, s.db, "photo locations", "")
}

func (s *DBStorage) GetPhotoLocation(ctx context.Context, id uint) (*db.PhotoLocation, error) {
	return findRecord[db.PhotoLocation](ctx, s.db, "photo location", id)
}

func (s *DBStorage) CreatePhotoLocation(ctx context.Context, input NameInput) (*db.PhotoLocation, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	item := db.PhotoLocation{Name: strings.TrimSpace(input.Name)}
	if err := s.ensureUnique(ctx, &db.PhotoLocation{}, 0, "name = ?", item.Name); err != nil {
		return nil, err
	}
	return createRecord(ctx, s.db, "photo location", &item)
}

func (s *DBStorage) UpdatePhotoLocation(ctx context.Context, id uint, patch NamePatch) (*db.PhotoLocation, error) {
	if err := patch.validate(); err != nil {
		return nil, err
	}
	return updateRecord(ctx, s.db, "photo location", id, func(item *db.PhotoLocation) error {
		setTrimmed(&item.Name, patch.Name)
		if err := s.ensureUnique(ctx, &db.PhotoLocation{}, id, "name = ?", item.Name); err != nil {
			return err
		}
		item.UpdatedAt = time.Now()
		return nil
	})
}

func (s *DBStorage) DeletePhotoLocation(ctx context.Context, id uint) (bool, error) {
	return deleteRecord[db.PhotoLocation](ctx, s.db, "photo location", id)
}

func (s *DBStorage) ListPhotoDevices(ctx context.Context) ([]db.PhotoDevice, error) {
	return listRecords[db.PhotoDevice](ctx, s.db, "photo devices", "")
}

func (s *DBStorage) GetPhotoDevice(ctx context.Context, id uint) (*db.PhotoDevice, error) {
	return findRecord[db.PhotoDevice](ctx, s.db, "photo device", id)
}

func (s *DBStorage) CreatePhotoDevice(ctx context.Context, input NameInput) (*db.PhotoDevice, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	item := db.PhotoDevice{Name: strings.TrimSpace(input.Name)}
	if err := s.ensureUnique(ctx, &db.PhotoDevice{}, 0, "name = ?", item.Name); err != nil {
		return nil, err
	}
	return createRecord(ctx, s.db, "photo device", &item)
}

func (s *DBStorage) UpdatePhotoDevice(ctx context.Context, id uint, patch NamePatch) (*db.PhotoDevice, error) {
	if err := patch.validate(); err != nil {
		return nil, err
	}
	return updateRecord(ctx, s.db, "photo device", id, func(item *db.PhotoDevice) error {
		setTrimmed(&item.Name, patch.Name)
		if err := s.ensureUnique(ctx, &db.PhotoDevice{}, id, "name = ?", item.Name); err != nil {
			return err
		}
		item.UpdatedAt = time.Now()
		return nil
	})
}

func (s *DBStorage) DeletePhotoDevice(ctx context.Context, id uint) (bool, error) {
	return deleteRecord[db.PhotoDevice](ctx, s.db, "photo device", id)
}

// Ping checks the database connection.
func (s *DBStorage) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close closes the database connection.
func (s *DBStorage) Close() error {
	return db.Close(s.db)
}

// ensureUnique returns ErrDuplicate when another row (id != except) matches the condition.
func (s *DBStorage) ensureUnique(ctx context.Context, model any, except uint, cond string, args ...any) error {
	var count int64
	query := s.db.WithContext(ctx).Model(model).Where(cond, args...)
	if except != 0 {
		query = query.Where("id <> ?", except)
	}
	if err := query.Count(&count).Error; err != nil {
		return fmt.Errorf("check uniqueness: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("%w: %v", ErrDuplicate, args[0])
	}
	return nil
}
