package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/portfolio/internal/handler"
	"github.com/portfolio/internal/service"
	"github.com/portfolio/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRouter(t *testing.T, enforce bool) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	uploadDir := t.TempDir()
	admin, err := service.NewAdminService("", "s3cret")
	require.NoError(t, err)

	api := handler.NewAPI(handler.Options{
		Store:        storage.NewMemStorage(),
		Media:        service.NewMediaService(uploadDir, "/static/uploads", 0),
		Admin:        admin,
		AdminEnforce: enforce,
	})
	r := SetupRouter(api, Options{
		SessionSecret: "test-secret",
		CORSOrigins:   []string{"http://localhost:5173"},
		UploadDir:     uploadDir,
		UploadURLPath: "/static/uploads",
	})
	return r, uploadDir
}

func request(r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSetupRouterServesUploads(t *testing.T) {
	r, uploadDir := setupTestRouter(t, false)

	content := []byte("hello uploads")
	require.NoError(t, os.WriteFile(filepath.Join(uploadDir, "example.txt"), content, 0o644))

	w := request(r, http.MethodGet, "/static/uploads/example.txt", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, string(content), w.Body.String())
}

func TestWritingLifecycleThroughRouter(t *testing.T) {
	r, _ := setupTestRouter(t, false)

	w := request(r, http.MethodPost, "/api/writings", map[string]any{"title": "Tide", "content": "low water"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created struct {
		ID uint `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = request(r, http.MethodPost, "/api/albums", map[string]any{"title": "Sea", "writingIds": []uint{created.ID}})
	require.Equal(t, http.StatusCreated, w.Code)

	w = request(r, http.MethodPost, "/api/writings/1/pin", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = request(r, http.MethodPut, "/api/writings/order", map[string]any{"ids": []uint{created.ID}})
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = request(r, http.MethodPost, "/api/writings/1/trash", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = request(r, http.MethodGet, "/api/writings?status=trashed", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"title":"Tide"`)

	w = request(r, http.MethodGet, "/api/writings/1/html", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "<p>low water</p>")

	w = request(r, http.MethodDelete, "/api/writings/1", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = request(r, http.MethodGet, "/api/albums/1", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"writingIds":[]`)
}

func TestRouterNotFoundAndHealth(t *testing.T) {
	r, _ := setupTestRouter(t, false)

	w := request(r, http.MethodGet, "/api/nope", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"not found"}`, w.Body.String())

	w = request(r, http.MethodGet, "/api/projects/7", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = request(r, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-Id"))
}

func TestRouterEnforcesAdminOnWrites(t *testing.T) {
	r, _ := setupTestRouter(t, true)

	w := request(r, http.MethodPost, "/api/projects", map[string]any{"title": "Locked"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = request(r, http.MethodGet, "/api/projects", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", w.Body.String())

	w = request(r, http.MethodPost, "/api/admin/login", map[string]any{"password": "s3cret"})
	require.Equal(t, http.StatusOK, w.Code)

	req := httptest.NewRequest(http.MethodPost, "/api/projects", bytes.NewBufferString(`{"title":"Open"}`))
	req.Header.Set("Content-Type", "application/json")
	for _, ck := range w.Result().Cookies() {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestRouterCORS(t *testing.T) {
	r, _ := setupTestRouter(t, false)

	req := httptest.NewRequest(http.MethodOptions, "/api/projects", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
}
