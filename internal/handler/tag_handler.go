package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/portfolio/internal/storage"
)

// ListTags returns tags, optionally filtered by ?category=.
func (a *API) ListTags(c *gin.Context) {
	items, err := a.store.ListTags(c.Request.Context(), categoryFilter(c))
	a.respondList(c, listOrEmpty(items), err, "tags")
}

// GetTag returns one tag.
func (a *API) GetTag(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	item, err := a.store.GetTag(c.Request.Context(), id)
	respondRecord(a, c, item, err, "tag")
}

// CreateTag creates a new tag. A name already used in the same category is rejected.
func (a *API) CreateTag(c *gin.Context) {
	var input storage.TagInput
	if !bindJSON(c, &input, "invalid tag payload") {
		return
	}
	item, err := a.store.CreateTag(c.Request.Context(), input)
	respondCreated(a, c, item, err, "tag")
}

// UpdateTag renames or recategorizes a tag.
func (a *API) UpdateTag(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var patch storage.TagPatch
	if !bindJSON(c, &patch, "invalid tag payload") {
		return
	}
	item, err := a.store.UpdateTag(c.Request.Context(), id, patch)
	respondRecord(a, c, item, err, "tag")
}

// DeleteTag removes a tag.
func (a *API) DeleteTag(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	removed, err := a.store.DeleteTag(c.Request.Context(), id)
	a.respondDeleted(c, removed, err, "tag")
}
