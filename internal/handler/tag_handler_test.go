package handler

import (
	"net/http"
	"testing"

	"github.com/portfolio/internal/db"
)

func TestCreateTagDuplicateName(t *testing.T) {
	api, cleanup := setupTestDB(t)
	defer cleanup()

	payload := map[string]any{"name": "Go", "category": "writing"}
	if w := perform(api.CreateTag, http.MethodPost, "/api/tags", payload); w.Code != http.StatusCreated {
		t.Fatalf("failed to seed tag: %d", w.Code)
	}

	w := perform(api.CreateTag, http.MethodPost, "/api/tags", payload)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}

	w = perform(api.CreateTag, http.MethodPost, "/api/tags", map[string]any{"name": "Go", "category": "photography"})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected same name in another category to be accepted, got %d", w.Code)
	}
}

func TestUpdateTagDuplicateName(t *testing.T) {
	api, cleanup := setupTestDB(t)
	defer cleanup()

	tagA := decode[db.Tag](t, perform(api.CreateTag, http.MethodPost, "/api/tags", map[string]any{"name": "Go"}))
	tagB := decode[db.Tag](t, perform(api.CreateTag, http.MethodPost, "/api/tags", map[string]any{"name": "Gin"}))

	w := perform(api.UpdateTag, http.MethodPut, "/api/tags", map[string]any{"name": tagA.Name}, idParamOf(tagB.ID))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}

	w = perform(api.UpdateTag, http.MethodPut, "/api/tags", map[string]any{"name": "Gin Web"}, idParamOf(tagB.ID))
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	if updated := decode[db.Tag](t, w); updated.Name != "Gin Web" {
		t.Fatalf("expected renamed tag, got %q", updated.Name)
	}
}

func TestListTagsByCategory(t *testing.T) {
	api, cleanup := setupTestDB(t)
	defer cleanup()

	perform(api.CreateTag, http.MethodPost, "/api/tags", map[string]any{"name": "street", "category": "photography"})
	perform(api.CreateTag, http.MethodPost, "/api/tags", map[string]any{"name": "poem", "category": "writing"})

	w := perform(api.ListTags, http.MethodGet, "/api/tags?category=writing", nil)
	tags := decode[[]db.Tag](t, w)
	if len(tags) != 1 || tags[0].Name != "poem" {
		t.Fatalf("unexpected tags %+v", tags)
	}
}
