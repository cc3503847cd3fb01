package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/portfolio/internal/db"
	"github.com/portfolio/internal/service"
	"github.com/portfolio/internal/storage"
)

type reorderPayload struct {
	IDs []uint `json:"ids"`
}

// ListWritings returns writings. Without ?status= every writing is returned in
// id order; with a status the list is filtered and arranged for display.
func (a *API) ListWritings(c *gin.Context) {
	ctx := c.Request.Context()
	filter := categoryFilter(c)

	raw, hasStatus := c.GetQuery("status")
	if !hasStatus {
		items, err := a.store.ListWritings(ctx, filter)
		a.respondList(c, listOrEmpty(items), err, "writings")
		return
	}

	status, err := service.ParseWritingStatus(raw)
	if err != nil {
		a.fail(c, err, "list writings")
		return
	}
	var items []db.Writing
	if status == service.WritingStatusTrashed {
		items, err = a.writings.ListTrash(ctx, filter)
	} else {
		items, err = a.writings.List(ctx, filter, status)
	}
	a.respondList(c, listOrEmpty(items), err, "writings")
}

// GetWriting returns one writing.
func (a *API) GetWriting(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	item, err := a.store.GetWriting(c.Request.Context(), id)
	respondRecord(a, c, item, err, "writing")
}

// GetWritingHTML returns the writing's content rendered to sanitized HTML.
func (a *API) GetWritingHTML(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	item, err := a.store.GetWriting(c.Request.Context(), id)
	if err != nil || item == nil {
		respondRecord(a, c, item, err, "writing")
		return
	}

	html, err := service.RenderMarkdown(item.Content)
	if err != nil {
		a.fail(c, err, "render writing")
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": item.ID, "title": item.Title, "html": html})
}

// CreateWriting creates a writing.
func (a *API) CreateWriting(c *gin.Context) {
	var input storage.WritingInput
	if !bindJSON(c, &input, "invalid writing payload") {
		return
	}
	item, err := a.writings.Create(c.Request.Context(), input)
	respondCreated(a, c, item, err, "writing")
}

// UpdateWriting merges partial writing fields; "deletedAt": null restores it.
func (a *API) UpdateWriting(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var patch storage.WritingPatch
	if !bindJSON(c, &patch, "invalid writing payload") {
		return
	}
	item, err := a.writings.Update(c.Request.Context(), id, patch)
	respondRecord(a, c, item, err, "writing")
}

// DeleteWriting hard-deletes a writing and drops it from albums.
func (a *API) DeleteWriting(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	removed, err := a.writings.Delete(c.Request.Context(), id)
	a.respondDeleted(c, removed, err, "writing")
}

// PinWriting makes the writing the single pinned one.
func (a *API) PinWriting(c *gin.Context) {
	a.writingAction(c, "pin writing", a.writings.Pin)
}

// UnpinWriting removes the pin.
func (a *API) UnpinWriting(c *gin.Context) {
	a.writingAction(c, "unpin writing", a.writings.Unpin)
}

// TrashWriting moves the writing to the trash.
func (a *API) TrashWriting(c *gin.Context) {
	a.writingAction(c, "trash writing", a.writings.Trash)
}

// RestoreWriting takes the writing out of the trash.
func (a *API) RestoreWriting(c *gin.Context) {
	a.writingAction(c, "restore writing", a.writings.Restore)
}

// PurgeTrash permanently removes writings past the trash retention.
func (a *API) PurgeTrash(c *gin.Context) {
	result, err := a.writings.PurgeExpired(c.Request.Context())
	if err != nil {
		a.fail(c, err, "purge trash")
		return
	}
	c.JSON(http.StatusOK, gin.H{"purged": result.IDs, "retention": a.writings.Retention().String()})
}

// ReorderWritings assigns sort order from the position in the id list.
func (a *API) ReorderWritings(c *gin.Context) {
	var payload reorderPayload
	if !bindJSON(c, &payload, "invalid order payload") {
		return
	}
	if err := a.writings.Reorder(c.Request.Context(), payload.IDs); err != nil {
		a.fail(c, err, "reorder writings")
		return
	}
	noContent(c)
}

func (a *API) writingAction(c *gin.Context, action string, fn func(context.Context, uint) (*db.Writing, error)) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	item, err := fn(c.Request.Context(), id)
	if err != nil {
		a.fail(c, err, action)
		return
	}
	c.JSON(http.StatusOK, item)
}
