package handler

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/portfolio/internal/service"
	"github.com/portfolio/internal/storage"
)

func multipartBody(t *testing.T, field string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile(field, "upload.bin")
	if err != nil {
		t.Fatalf("failed to create form file: %v", err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatalf("failed to write form file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close writer: %v", err)
	}
	return body, writer.FormDataContentType()
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 3, 2))
	img.Set(1, 1, color.RGBA{R: 200, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode png: %v", err)
	}
	return buf.Bytes()
}

func performUpload(api *API, body *bytes.Buffer, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/uploads", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req
	api.UploadImage(c)
	return w
}

func TestUploadImage(t *testing.T) {
	api, cleanup := setupTestDB(t)
	defer cleanup()

	body, contentType := multipartBody(t, "file", pngBytes(t))
	w := performUpload(api, body, contentType)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", w.Code, w.Body.String())
	}

	stored := decode[service.MediaFile](t, w)
	if stored.Format != "png" || stored.Width != 3 || stored.Height != 2 {
		t.Fatalf("unexpected upload metadata %+v", stored)
	}
	if !strings.HasPrefix(stored.URL, "/static/uploads/") || !strings.HasSuffix(stored.Name, ".png") {
		t.Fatalf("unexpected upload url %q name %q", stored.URL, stored.Name)
	}
	if _, err := os.Stat(filepath.Join(api.media.Dir(), stored.Name)); err != nil {
		t.Fatalf("expected file on disk: %v", err)
	}
}

func TestUploadImageLegacyField(t *testing.T) {
	api, cleanup := setupTestDB(t)
	defer cleanup()

	body, contentType := multipartBody(t, "image", pngBytes(t))
	if w := performUpload(api, body, contentType); w.Code != http.StatusCreated {
		t.Fatalf("expected status 201 for image field, got %d", w.Code)
	}
}

func TestUploadImageRejectsInvalidFiles(t *testing.T) {
	api, cleanup := setupTestDB(t)
	defer cleanup()

	body, contentType := multipartBody(t, "file", []byte("plain text, not an image"))
	if w := performUpload(api, body, contentType); w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for non-image, got %d", w.Code)
	}

	body, contentType = multipartBody(t, "other", pngBytes(t))
	if w := performUpload(api, body, contentType); w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for missing file field, got %d", w.Code)
	}
}

func TestUploadImageTooLarge(t *testing.T) {
	gin.SetMode(gin.TestMode)
	api := NewAPI(Options{
		Store: storage.NewMemStorage(),
		Media: service.NewMediaService(t.TempDir(), "/static/uploads", 1<<10),
	})

	sizes := map[string]int{
		"just over the limit": 4 << 10,
		"past the body slack": 3 << 20,
	}
	for name, padding := range sizes {
		t.Run(name, func(t *testing.T) {
			data := append(pngBytes(t), bytes.Repeat([]byte{0}, padding)...)
			body, contentType := multipartBody(t, "file", data)
			w := performUpload(api, body, contentType)
			if w.Code != http.StatusRequestEntityTooLarge {
				t.Fatalf("expected status 413, got %d: %s", w.Code, w.Body.String())
			}
			if !strings.Contains(w.Body.String(), service.ErrImageTooLarge.Error()) {
				t.Fatalf("unexpected error body %s", w.Body.String())
			}
		})
	}
}
