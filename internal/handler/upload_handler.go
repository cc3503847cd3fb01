package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/portfolio/internal/service"
)

// UploadImage 处理图片上传请求，表单字段为 file（兼容 image）
func (a *API) UploadImage(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, a.media.MaxBytes()+1<<20)

	file, err := c.FormFile("file")
	if err != nil && !isBodyTooLarge(err) {
		file, err = c.FormFile("image")
	}
	if err != nil {
		if isBodyTooLarge(err) {
			respondError(c, http.StatusRequestEntityTooLarge, service.ErrImageTooLarge.Error())
			return
		}
		respondError(c, http.StatusBadRequest, "file is required")
		return
	}

	src, err := file.Open()
	if err != nil {
		respondError(c, http.StatusBadRequest, "cannot read upload")
		return
	}
	defer src.Close()

	stored, err := a.media.Save(c.Request.Context(), src)
	if err != nil {
		a.fail(c, err, "upload image")
		return
	}
	c.JSON(http.StatusCreated, stored)
}

// isBodyTooLarge reports whether parsing stopped at the MaxBytesReader limit.
func isBodyTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}
