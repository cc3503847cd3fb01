package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/portfolio/internal/storage"
)

type albumWritingPayload struct {
	WritingID uint `json:"writingId"`
}

// ListAlbums returns all albums.
func (a *API) ListAlbums(c *gin.Context) {
	items, err := a.store.ListAlbums(c.Request.Context())
	a.respondList(c, listOrEmpty(items), err, "albums")
}

// GetAlbum returns one album.
func (a *API) GetAlbum(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	item, err := a.store.GetAlbum(c.Request.Context(), id)
	respondRecord(a, c, item, err, "album")
}

// CreateAlbum creates an album.
func (a *API) CreateAlbum(c *gin.Context) {
	var input storage.AlbumInput
	if !bindJSON(c, &input, "invalid album payload") {
		return
	}
	item, err := a.store.CreateAlbum(c.Request.Context(), input)
	respondCreated(a, c, item, err, "album")
}

// UpdateAlbum merges partial album fields.
func (a *API) UpdateAlbum(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var patch storage.AlbumPatch
	if !bindJSON(c, &patch, "invalid album payload") {
		return
	}
	item, err := a.store.UpdateAlbum(c.Request.Context(), id, patch)
	respondRecord(a, c, item, err, "album")
}

// DeleteAlbum removes an album; its writings are kept.
func (a *API) DeleteAlbum(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	removed, err := a.store.DeleteAlbum(c.Request.Context(), id)
	a.respondDeleted(c, removed, err, "album")
}

// AddAlbumWriting appends a writing to an album.
func (a *API) AddAlbumWriting(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var payload albumWritingPayload
	if !bindJSON(c, &payload, "invalid album writing payload") {
		return
	}
	if payload.WritingID == 0 {
		respondError(c, http.StatusBadRequest, "writingId is required")
		return
	}

	album, err := a.writings.AddToAlbum(c.Request.Context(), id, payload.WritingID)
	if err != nil {
		a.fail(c, err, "add album writing")
		return
	}
	c.JSON(http.StatusOK, album)
}

// RemoveAlbumWriting drops a writing from an album.
func (a *API) RemoveAlbumWriting(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	writingID, ok := idParam(c, "writingId")
	if !ok {
		return
	}

	album, err := a.writings.RemoveFromAlbum(c.Request.Context(), id, writingID)
	if err != nil {
		a.fail(c, err, "remove album writing")
		return
	}
	c.JSON(http.StatusOK, album)
}
