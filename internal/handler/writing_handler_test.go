package handler

import (
	"net/http"
	"slices"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/portfolio/internal/db"
)

func createTestWriting(t *testing.T, api *API, body map[string]any) db.Writing {
	t.Helper()
	w := perform(api.CreateWriting, http.MethodPost, "/api/writings", body)
	if w.Code != http.StatusCreated {
		t.Fatalf("failed to create writing: %d %s", w.Code, w.Body.String())
	}
	return decode[db.Writing](t, w)
}

func TestWritingPinTrashAndStatusListing(t *testing.T) {
	api, cleanup := setupTestDB(t)
	defer cleanup()

	first := createTestWriting(t, api, map[string]any{"title": "First", "content": "# First\nbody"})
	second := createTestWriting(t, api, map[string]any{"title": "Second"})
	if first.Excerpt != "First" {
		t.Fatalf("expected derived excerpt, got %q", first.Excerpt)
	}

	w := perform(api.PinWriting, http.MethodPost, "/", nil, idParamOf(second.ID))
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	if pinned := decode[db.Writing](t, w); !slices.Contains(pinned.Tags, db.PinnedTag) {
		t.Fatalf("expected pin tag, got %v", pinned.Tags)
	}

	w = perform(api.ListWritings, http.MethodGet, "/api/writings?status=active", nil)
	listed := decode[[]db.Writing](t, w)
	if len(listed) != 2 || listed[0].ID != second.ID {
		t.Fatalf("expected pinned writing first, got %+v", listed)
	}

	w = perform(api.TrashWriting, http.MethodPost, "/", nil, idParamOf(first.ID))
	if trashed := decode[db.Writing](t, w); trashed.TrashedAt == nil {
		t.Fatalf("expected deletedAt to be set")
	}
	if !strings.Contains(w.Body.String(), `"deletedAt":"`) {
		t.Fatalf("expected deletedAt in JSON, got %s", w.Body.String())
	}

	w = perform(api.ListWritings, http.MethodGet, "/api/writings?status=trashed", nil)
	if trash := decode[[]db.Writing](t, w); len(trash) != 1 || trash[0].ID != first.ID {
		t.Fatalf("unexpected trash listing %+v", trash)
	}

	w = perform(api.ListWritings, http.MethodGet, "/api/writings", nil)
	if all := decode[[]db.Writing](t, w); len(all) != 2 {
		t.Fatalf("plain listing must include trashed writings, got %d", len(all))
	}

	w = perform(api.RestoreWriting, http.MethodPost, "/", nil, idParamOf(first.ID))
	if restored := decode[db.Writing](t, w); restored.TrashedAt != nil {
		t.Fatalf("expected deletedAt to be cleared")
	}

	w = perform(api.UnpinWriting, http.MethodDelete, "/", nil, idParamOf(99))
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", w.Code)
	}
}

func TestWritingSoftDeleteThroughUpdate(t *testing.T) {
	api, cleanup := setupTestDB(t)
	defer cleanup()

	item := createTestWriting(t, api, map[string]any{"title": "Draft"})

	w := perform(api.UpdateWriting, http.MethodPut, "/", `{"deletedAt":"2024-01-02T03:04:05Z"}`, idParamOf(item.ID))
	if updated := decode[db.Writing](t, w); updated.TrashedAt == nil || updated.Title != "Draft" {
		t.Fatalf("expected deletedAt to be set and title kept, got %+v", updated)
	}

	w = perform(api.UpdateWriting, http.MethodPut, "/", `{"deletedAt":null}`, idParamOf(item.ID))
	if updated := decode[db.Writing](t, w); updated.TrashedAt != nil {
		t.Fatalf("expected null deletedAt to restore the writing")
	}
}

func TestWritingHTMLAndReorder(t *testing.T) {
	api, cleanup := setupTestDB(t)
	defer cleanup()

	a := createTestWriting(t, api, map[string]any{"title": "A", "content": "**bold** <script>x</script>"})
	b := createTestWriting(t, api, map[string]any{"title": "B"})

	w := perform(api.GetWritingHTML, http.MethodGet, "/", nil, idParamOf(a.ID))
	body := decode[map[string]any](t, w)
	html, _ := body["html"].(string)
	if !strings.Contains(html, "<strong>bold</strong>") || strings.Contains(html, "<script>") {
		t.Fatalf("unexpected rendered html %q", html)
	}

	w = perform(api.ReorderWritings, http.MethodPut, "/api/writings/order", map[string]any{"ids": []uint{b.ID, a.ID}})
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", w.Code)
	}
	w = perform(api.ListWritings, http.MethodGet, "/api/writings?status=active", nil)
	listed := decode[[]db.Writing](t, w)
	if listed[0].ID != b.ID || listed[1].SortOrder != 1 {
		t.Fatalf("unexpected order after reorder %+v", listed)
	}

	w = perform(api.ReorderWritings, http.MethodPut, "/api/writings/order", map[string]any{"ids": []uint{a.ID, a.ID}})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for duplicate ids, got %d", w.Code)
	}
}

func TestAlbumWritingMembership(t *testing.T) {
	api, cleanup := setupTestDB(t)
	defer cleanup()

	poem := createTestWriting(t, api, map[string]any{"title": "Poem"})
	w := perform(api.CreateAlbum, http.MethodPost, "/api/albums", map[string]any{"title": "Coastlines"})
	album := decode[db.Album](t, w)

	w = perform(api.AddAlbumWriting, http.MethodPost, "/", map[string]any{"writingId": poem.ID}, idParamOf(album.ID))
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	if updated := decode[db.Album](t, w); !slices.Equal(updated.WritingIDs, []uint{poem.ID}) {
		t.Fatalf("unexpected writing ids %v", updated.WritingIDs)
	}

	w = perform(api.AddAlbumWriting, http.MethodPost, "/", map[string]any{"writingId": 999}, idParamOf(album.ID))
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status 404 for unknown writing, got %d", w.Code)
	}

	w = perform(api.DeleteWriting, http.MethodDelete, "/", nil, idParamOf(poem.ID))
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", w.Code)
	}
	w = perform(api.GetAlbum, http.MethodGet, "/", nil, idParamOf(album.ID))
	if reloaded := decode[db.Album](t, w); len(reloaded.WritingIDs) != 0 {
		t.Fatalf("expected deleted writing to leave the album, got %v", reloaded.WritingIDs)
	}

	w = perform(api.RemoveAlbumWriting, http.MethodDelete, "/", nil, idParamOf(album.ID), gin.Param{Key: "writingId", Value: "x"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for malformed writing id, got %d", w.Code)
	}
}

func TestPurgeTrashEndpoint(t *testing.T) {
	api, cleanup := setupTestDB(t)
	defer cleanup()

	old := createTestWriting(t, api, map[string]any{"title": "Old", "deletedAt": "2000-01-01T00:00:00Z"})
	fresh := createTestWriting(t, api, map[string]any{"title": "Fresh"})
	perform(api.TrashWriting, http.MethodPost, "/", nil, idParamOf(fresh.ID))

	w := perform(api.PurgeTrash, http.MethodPost, "/api/writings/trash/purge", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	body := decode[struct {
		Purged []uint `json:"purged"`
	}](t, w)
	if !slices.Equal(body.Purged, []uint{old.ID}) {
		t.Fatalf("expected only the old writing to be purged, got %v", body.Purged)
	}
}

func TestWritingTagsCannotPinSeveral(t *testing.T) {
	api, cleanup := setupTestDB(t)
	defer cleanup()

	first := createTestWriting(t, api, map[string]any{"title": "First", "tags": []string{db.PinnedTag}})
	second := createTestWriting(t, api, map[string]any{"title": "Second"})
	third := createTestWriting(t, api, map[string]any{"title": "Third"})

	for _, id := range []uint{second.ID, third.ID} {
		w := perform(api.UpdateWriting, http.MethodPut, "/", map[string]any{"tags": []string{"poem", db.PinnedTag}}, idParamOf(id))
		if w.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
		}
	}

	w := perform(api.ListWritings, http.MethodGet, "/api/writings?status=active", nil)
	listed := decode[[]db.Writing](t, w)
	var pinned []uint
	for _, item := range listed {
		if item.Pinned() {
			pinned = append(pinned, item.ID)
		}
	}
	if !slices.Equal(pinned, []uint{third.ID}) {
		t.Fatalf("expected only the last writing to be pinned, got %v (first was %d)", pinned, first.ID)
	}
	if !slices.Contains(listed[0].Tags, "poem") {
		t.Fatalf("expected other tags to be kept, got %v", listed[0].Tags)
	}

	w = perform(api.UpdateWriting, http.MethodPut, "/", map[string]any{"title": "Missing"}, idParamOf(99))
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", w.Code)
	}
}
