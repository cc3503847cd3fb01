package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "golang.org/x/image/webp"
)

var (
	ErrInvalidImage  = errors.New("file is not a supported image")
	ErrImageTooLarge = errors.New("image exceeds the upload limit")
)

// DefaultMaxUploadBytes 单个上传文件的大小上限
const DefaultMaxUploadBytes int64 = 20 << 20

var imageExtensions = map[string]string{
	"jpeg": ".jpg",
	"png":  ".png",
	"gif":  ".gif",
	"webp": ".webp",
}

// MediaFile describes a stored upload.
type MediaFile struct {
	URL    string `json:"url"`
	Name   string `json:"name"`
	Format string `json:"format"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Size   int64  `json:"size"`
}

// MediaService stores uploaded images on local disk.
type MediaService struct {
	dir      string
	urlPath  string
	maxBytes int64
	now      func() time.Time
}

// NewMediaService creates a MediaService writing into dir and serving under urlPath.
func NewMediaService(dir, urlPath string, maxBytes int64) *MediaService {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxUploadBytes
	}
	urlPath = "/" + strings.Trim(strings.TrimSpace(urlPath), "/")
	return &MediaService{dir: dir, urlPath: urlPath, maxBytes: maxBytes, now: time.Now}
}

// Dir returns the upload directory.
func (s *MediaService) Dir() string {
	return s.dir
}

// URLPath returns the public path prefix of stored files.
func (s *MediaService) URLPath() string {
	return s.urlPath
}

// MaxBytes returns the upload size limit.
func (s *MediaService) MaxBytes() int64 {
	return s.maxBytes
}

// Save validates r as an image and writes it under a generated name.
// The extension is derived from the decoded format, not the client file name.
func (s *MediaService) Save(ctx context.Context, r io.Reader) (*MediaFile, error) {
	data, err := io.ReadAll(io.LimitReader(r, s.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > s.maxBytes {
		return nil, ErrImageTooLarge
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, ErrInvalidImage
	}
	ext, ok := imageExtensions[format]
	if !ok || cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, ErrInvalidImage
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}

	name := fmt.Sprintf("%s-%s%s", s.now().Format("20060102"), uuid.NewString(), ext)
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return nil, fmt.Errorf("save upload: %w", err)
	}

	return &MediaFile{
		URL:    path.Join(s.urlPath, name),
		Name:   name,
		Format: format,
		Width:  cfg.Width,
		Height: cfg.Height,
		Size:   int64(len(data)),
	}, nil
}
