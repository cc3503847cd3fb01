package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/portfolio/internal/storage"
)

// 拍摄地点与设备是照片表单的下拉选项

func (a *API) ListPhotoLocations(c *gin.Context) {
	items, err := a.store.ListPhotoLocations(c.Request.Context())
	a.respondList(c, listOrEmpty(items), err, "photo locations")
}

func (a *API) GetPhotoLocation(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	item, err := a.store.GetPhotoLocation(c.Request.Context(), id)
	respondRecord(a, c, item, err, "photo location")
}

func (a *API) CreatePhotoLocation(c *gin.Context) {
	var input storage.NameInput
	if !bindJSON(c, &input, "invalid photo location payload") {
		return
	}
	item, err := a.store.CreatePhotoLocation(c.Request.Context(), input)
	respondCreated(a, c, item, err, "photo location")
}

func (a *API) UpdatePhotoLocation(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var patch storage.NamePatch
	if !bindJSON(c, &patch, "invalid photo location payload") {
		return
	}
	item, err := a.store.UpdatePhotoLocation(c.Request.Context(), id, patch)
	respondRecord(a, c, item, err, "photo location")
}

func (a *API) DeletePhotoLocation(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	removed, err := a.store.DeletePhotoLocation(c.Request.Context(), id)
	a.respondDeleted(c, removed, err, "photo location")
}

func (a *API) ListPhotoDevices(c *gin.Context) {
	items, err := a.store.ListPhotoDevices(c.Request.Context())
	a.respondList(c, listOrEmpty(items), err, "photo devices")
}

func (a *API) GetPhotoDevice(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	item, err := a.store.GetPhotoDevice(c.Request.Context(), id)
	respondRecord(a, c, item, err, "photo device")
}

func (a *API) CreatePhotoDevice(c *gin.Context) {
	var input storage.NameInput
	if !bindJSON(c, &input, "invalid photo device payload") {
		return
	}
	item, err := a.store.CreatePhotoDevice(c.Request.Context(), input)
	respondCreated(a, c, item, err, "photo device")
}

func (a *API) UpdatePhotoDevice(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var patch storage.NamePatch
	if !bindJSON(c, &patch, "invalid photo device payload") {
		return
	}
	item, err := a.store.UpdatePhotoDevice(c.Request.Context(), id, patch)
	respondRecord(a, c, item, err, "photo device")
}

func (a *API) DeletePhotoDevice(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	removed, err := a.store.DeletePhotoDevice(c.Request.Context(), id)
	a.respondDeleted(c, removed, err, "photo device")
}
