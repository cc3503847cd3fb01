package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/portfolio/internal/storage"
)

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

func bindJSON(c *gin.Context, dst interface{}, message string) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, http.StatusBadRequest, message)
		return false
	}
	return true
}

func parseUintParam(c *gin.Context, key string) (uint, error) {
	raw := c.Param(key)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return uint(id), nil
}

// idParam parses a path id and answers 400 when it is malformed.
func idParam(c *gin.Context, key string) (uint, bool) {
	id, err := parseUintParam(c, key)
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return 0, false
	}
	return id, true
}

func categoryFilter(c *gin.Context) storage.Filter {
	return storage.Filter{Category: strings.TrimSpace(c.Query("category"))}
}

func (a *API) respondList(c *gin.Context, items any, err error, what string) {
	if err != nil {
		a.fail(c, err, "list "+what)
		return
	}
	c.JSON(http.StatusOK, items)
}

// listOrEmpty keeps empty collections encoded as [] instead of null.
func listOrEmpty[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}

func respondRecord[T any](a *API, c *gin.Context, item *T, err error, what string) {
	if err != nil {
		a.fail(c, err, what)
		return
	}
	if item == nil {
		respondError(c, http.StatusNotFound, what+" not found")
		return
	}
	c.JSON(http.StatusOK, item)
}

func respondCreated[T any](a *API, c *gin.Context, item *T, err error, what string) {
	if err != nil {
		a.fail(c, err, "create "+what)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (a *API) respondDeleted(c *gin.Context, ok bool, err error, what string) {
	if err != nil {
		a.fail(c, err, "delete "+what)
		return
	}
	if !ok {
		respondError(c, http.StatusNotFound, what+" not found")
		return
	}
	noContent(c)
}

func noContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
	c.Writer.WriteHeaderNow()
}
