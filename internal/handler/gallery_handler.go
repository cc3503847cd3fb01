package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/portfolio/internal/storage"
)

// ListGalleryItems returns gallery items, optionally filtered by ?category=.
func (a *API) ListGalleryItems(c *gin.Context) {
	items, err := a.store.ListGalleryItems(c.Request.Context(), categoryFilter(c))
	a.respondList(c, listOrEmpty(items), err, "gallery items")
}

// GetGalleryItem returns one gallery item.
func (a *API) GetGalleryItem(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	item, err := a.store.GetGalleryItem(c.Request.Context(), id)
	respondRecord(a, c, item, err, "gallery item")
}

// CreateGalleryItem creates a new gallery item.
func (a *API) CreateGalleryItem(c *gin.Context) {
	var input storage.GalleryItemInput
	if !bindJSON(c, &input, "invalid gallery item payload") {
		return
	}
	item, err := a.store.CreateGalleryItem(c.Request.Context(), input)
	respondCreated(a, c, item, err, "gallery item")
}

// UpdateGalleryItem updates a gallery item. "takenAt": null clears the date.
func (a *API) UpdateGalleryItem(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var patch storage.GalleryItemPatch
	if !bindJSON(c, &patch, "invalid gallery item payload") {
		return
	}
	item, err := a.store.UpdateGalleryItem(c.Request.Context(), id, patch)
	respondRecord(a, c, item, err, "gallery item")
}

// DeleteGalleryItem removes a gallery item.
func (a *API) DeleteGalleryItem(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	removed, err := a.store.DeleteGalleryItem(c.Request.Context(), id)
	a.respondDeleted(c, removed, err, "gallery item")
}
