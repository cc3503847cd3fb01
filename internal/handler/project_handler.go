package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/portfolio/internal/storage"
)

// ListProjects returns projects, optionally filtered by ?category=.
func (a *API) ListProjects(c *gin.Context) {
	items, err := a.store.ListProjects(c.Request.Context(), categoryFilter(c))
	a.respondList(c, listOrEmpty(items), err, "projects")
}

// GetProject returns one project.
func (a *API) GetProject(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	item, err := a.store.GetProject(c.Request.Context(), id)
	respondRecord(a, c, item, err, "project")
}

// CreateProject creates a project.
func (a *API) CreateProject(c *gin.Context) {
	var input storage.ProjectInput
	if !bindJSON(c, &input, "invalid project payload") {
		return
	}
	item, err := a.store.CreateProject(c.Request.Context(), input)
	respondCreated(a, c, item, err, "project")
}

// UpdateProject merges the fields present in the body into a project.
func (a *API) UpdateProject(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var patch storage.ProjectPatch
	if !bindJSON(c, &patch, "invalid project payload") {
		return
	}
	item, err := a.store.UpdateProject(c.Request.Context(), id, patch)
	respondRecord(a, c, item, err, "project")
}

// DeleteProject removes a project.
func (a *API) DeleteProject(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	removed, err := a.store.DeleteProject(c.Request.Context(), id)
	a.respondDeleted(c, removed, err, "project")
}
