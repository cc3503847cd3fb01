// Package storage defines the repository used by every route handler and the
// interchangeable backends behind it.
package storage

import (
	"context"
	"errors"

	"github.com/portfolio/internal/db"
)

var (
	// ErrInvalidInput is returned when a required field is missing or blank.
	ErrInvalidInput = errors.New("invalid input")
	// ErrDuplicate is returned when a unique name is already taken.
	ErrDuplicate = errors.New("duplicate record")
)

// Filter narrows list results. Empty fields do not filter.
type Filter struct {
	Category string
}

// Storage is the CRUD repository shared by the memory and database backends.
//
// Get and Update return a nil record without error when the id is absent;
// Delete reports whether a record was removed.
type Storage interface {
	ListProjects(ctx context.Context, filter Filter) ([]db.Project, error)
	GetProject(ctx context.Context, id uint) (*db.Project, error)
	CreateProject(ctx context.Context, input ProjectInput) (*db.Project, error)
	UpdateProject(ctx context.Context, id uint, patch ProjectPatch) (*db.Project, error)
	DeleteProject(ctx context.Context, id uint) (bool, error)

	ListGalleryItems(ctx context.Context, filter Filter) ([]db.GalleryItem, error)
	GetGalleryItem(ctx context.Context, id uint) (*db.GalleryItem, error)
	CreateGalleryItem(ctx context.Context, input GalleryItemInput) (*db.GalleryItem, error)
	UpdateGalleryItem(ctx context.Context, id uint, patch GalleryItemPatch) (*db.GalleryItem, error)
	DeleteGalleryItem(ctx context.Context, id uint) (bool, error)

	GetCVData(ctx context.Context) (*db.CVData, error)
	CreateCVData(ctx context.Context, input CVInput) (*db.CVData, error)
	UpdateCVData(ctx context.Context, id uint, patch CVPatch) (*db.CVData, error)
	DeleteCVData(ctx context.Context, id uint) (bool, error)

	ListWritings(ctx context.Context, filter Filter) ([]db.Writing, error)
	GetWriting(ctx context.Context, id uint) (*db.Writing, error)
	CreateWriting(ctx context.Context, input WritingInput) (*db.Writing, error)
	UpdateWriting(ctx context.Context, id uint, patch WritingPatch) (*db.Writing, error)
	DeleteWriting(ctx context.Context, id uint) (bool, error)

	ListAlbums(ctx context.Context) ([]db.Album, error)
	GetAlbum(ctx context.Context, id uint) (*db.Album, error)
	CreateAlbum(ctx context.Context, input AlbumInput) (*db.Album, error)
	UpdateAlbum(ctx context.Context, id uint, patch AlbumPatch) (*db.Album, error)
	DeleteAlbum(ctx context.Context, id uint) (bool, error)

	ListTags(ctx context.Context, filter Filter) ([]db.Tag, error)
	GetTag(ctx context.Context, id uint) (*db.Tag, error)
	CreateTag(ctx context.Context, input TagInput) (*db.Tag, error)
	UpdateTag(ctx context.Context, id uint, patch TagPatch) (*db.Tag, error)
	DeleteTag(ctx context.Context, id uint) (bool, error)

	ListPhotoLocations(ctx context.Context) ([]db.PhotoLocation, error)
	GetPhotoLocation(ctx context.Context, id uint) (*db.PhotoLocation, error)
	CreatePhotoLocation(ctx context.Context, input NameInput) (*db.PhotoLocation, error)
	UpdatePhotoLocation(ctx context.Context, id uint, patch NamePatch) (*db.PhotoLocation, error)
	DeletePhotoLocation(ctx context.Context, id uint) (bool, error)

	ListPhotoDevices(ctx context.Context) ([]db.PhotoDevice, error)
	GetPhotoDevice(ctx context.Context, id uint) (*db.PhotoDevice, error)
	CreatePhotoDevice(ctx context.Context, input NameInput) (*db.PhotoDevice, error)
	UpdatePhotoDevice(ctx context.Context, id uint, patch NamePatch) (*db.PhotoDevice, error)
	DeletePhotoDevice(ctx context.Context, id uint) (bool, error)

	Ping(ctx context.Context) error
	Close() error
}
