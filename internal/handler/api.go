package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/portfolio/internal/logging"
	"github.com/portfolio/internal/service"
	"github.com/portfolio/internal/storage"
	"go.uber.org/zap"
)

// API bundles shared dependencies for HTTP handlers.
type API struct {
	store        storage.Storage
	writings     *service.WritingService
	media        *service.MediaService
	admin        *service.AdminService
	log          *zap.Logger
	adminEnforce bool
}

// Options configures NewAPI. Store is required; missing services get defaults.
type Options struct {
	Store        storage.Storage
	Writings     *service.WritingService
	Media        *service.MediaService
	Admin        *service.AdminService
	Logger       *zap.Logger
	AdminEnforce bool
}

// NewAPI constructs a handler set with shared services.
func NewAPI(opt Options) *API {
	logger := opt.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	writings := opt.Writings
	if writings == nil {
		writings = service.NewWritingService(opt.Store, service.WithLogger(logger))
	}
	media := opt.Media
	if media == nil {
		media = service.NewMediaService("data/uploads", "/static/uploads", 0)
	}
	admin := opt.Admin
	if admin == nil {
		admin = &service.AdminService{}
	}

	return &API{
		store:        opt.Store,
		writings:     writings,
		media:        media,
		admin:        admin,
		log:          logger,
		adminEnforce: opt.AdminEnforce,
	}
}

// Store exposes the underlying storage.
func (a *API) Store() storage.Storage {
	return a.store
}

// fail maps domain errors to status codes; anything unknown is logged and hidden.
func (a *API) fail(c *gin.Context, err error, action string) {
	switch {
	case errors.Is(err, storage.ErrInvalidInput),
		errors.Is(err, storage.ErrDuplicate),
		errors.Is(err, service.ErrWritingOrder),
		errors.Is(err, service.ErrWritingStatus),
		errors.Is(err, service.ErrInvalidImage):
		respondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrWritingNotFound),
		errors.Is(err, service.ErrAlbumNotFound):
		respondError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrImageTooLarge):
		respondError(c, http.StatusRequestEntityTooLarge, err.Error())
	case errors.Is(err, service.ErrInvalidPassword):
		respondError(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrAdminDisabled):
		respondError(c, http.StatusForbidden, err.Error())
	default:
		_ = c.Error(err)
		logging.FromContext(c.Request.Context(), a.log).Error(action+" failed", zap.Error(err))
		respondError(c, http.StatusInternalServerError, action+" failed")
	}
}
