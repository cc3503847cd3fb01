package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/portfolio/internal/storage"
)

// GetCV returns the CV record, or 404 when none exists yet.
func (a *API) GetCV(c *gin.Context) {
	item, err := a.store.GetCVData(c.Request.Context())
	respondRecord(a, c, item, err, "cv")
}

// CreateCV stores a CV, replacing any existing one.
func (a *API) CreateCV(c *gin.Context) {
	var input storage.CVInput
	if !bindJSON(c, &input, "invalid cv payload") {
		return
	}
	item, err := a.store.CreateCVData(c.Request.Context(), input)
	respondCreated(a, c, item, err, "cv")
}

// UpdateCV merges partial CV fields.
func (a *API) UpdateCV(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var patch storage.CVPatch
	if !bindJSON(c, &patch, "invalid cv payload") {
		return
	}
	item, err := a.store.UpdateCVData(c.Request.Context(), id, patch)
	respondRecord(a, c, item, err, "cv")
}

// DeleteCV removes the CV.
func (a *API) DeleteCV(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	removed, err := a.store.DeleteCVData(c.Request.Context(), id)
	a.respondDeleted(c, removed, err, "cv")
}
