package router

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/portfolio/internal/handler"
	"github.com/portfolio/internal/logging"
	"go.uber.org/zap"
)

const sessionName = "portfolio_session"

// Options carries the settings SetupRouter needs beyond the handlers.
type Options struct {
	SessionSecret string
	CORSOrigins   []string
	UploadDir     string
	UploadURLPath string
	SecureCookie  bool
	Logger        *zap.Logger
}

// SetupRouter 配置 Gin 引擎、中间件和全部 REST 路由
func SetupRouter(api *handler.API, opt Options) *gin.Engine {
	r := gin.New()
	r.Use(logging.Middleware(opt.Logger), logging.Recovery(opt.Logger))

	if len(opt.CORSOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     opt.CORSOrigins,
			AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", logging.RequestIDHeader},
			ExposeHeaders:    []string{logging.RequestIDHeader},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	// 配置会话中间件
	store := cookie.NewStore([]byte(opt.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   7 * 24 * 60 * 60,
		HttpOnly: true,
		Secure:   opt.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(sessionName, store))

	// 静态文件服务
	if opt.UploadDir != "" {
		urlPath := "/" + strings.Trim(opt.UploadURLPath, "/")
		if urlPath == "/" {
			urlPath = "/static/uploads"
		}
		r.Static(urlPath, opt.UploadDir)
	}

	r.GET("/health", api.Health)

	apiGroup := r.Group("/api")
	{
		admin := apiGroup.Group("/admin")
		admin.GET("/session", api.AdminSession)
		admin.POST("/login", api.AdminLogin)
		admin.POST("/logout", api.AdminLogout)

		apiGroup.GET("/projects", api.ListProjects)
		apiGroup.GET("/projects/:id", api.GetProject)
		apiGroup.GET("/gallery", api.ListGalleryItems)
		apiGroup.GET("/gallery/:id", api.GetGalleryItem)
		apiGroup.GET("/cv", api.GetCV)
		apiGroup.GET("/writings", api.ListWritings)
		apiGroup.GET("/writings/:id", api.GetWriting)
		apiGroup.GET("/writings/:id/html", api.GetWritingHTML)
		apiGroup.GET("/albums", api.ListAlbums)
		apiGroup.GET("/albums/:id", api.GetAlbum)
		apiGroup.GET("/tags", api.ListTags)
		apiGroup.GET("/tags/:id", api.GetTag)
		apiGroup.GET("/photo-locations", api.ListPhotoLocations)
		apiGroup.GET("/photo-locations/:id", api.GetPhotoLocation)
		apiGroup.GET("/photo-devices", api.ListPhotoDevices)
		apiGroup.GET("/photo-devices/:id", api.GetPhotoDevice)

		// 写操作，ADMIN_ENFORCE 开启时需要管理员会话
		write := apiGroup.Group("")
		write.Use(api.AdminRequired())
		{
			write.POST("/projects", api.CreateProject)
			write.PUT("/projects/:id", api.UpdateProject)
			write.DELETE("/projects/:id", api.DeleteProject)

			write.POST("/gallery", api.CreateGalleryItem)
			write.PUT("/gallery/:id", api.UpdateGalleryItem)
			write.DELETE("/gallery/:id", api.DeleteGalleryItem)

			write.POST("/cv", api.CreateCV)
			write.PUT("/cv/:id", api.UpdateCV)
			write.DELETE("/cv/:id", api.DeleteCV)

			write.POST("/writings", api.CreateWriting)
			write.PUT("/writings/order", api.ReorderWritings)
			write.POST("/writings/trash/purge", api.PurgeTrash)
			write.PUT("/writings/:id", api.UpdateWriting)
			write.DELETE("/writings/:id", api.DeleteWriting)
			write.POST("/writings/:id/pin", api.PinWriting)
			write.DELETE("/writings/:id/pin", api.UnpinWriting)
			write.POST("/writings/:id/trash", api.TrashWriting)
			write.POST("/writings/:id/restore", api.RestoreWriting)

			write.POST("/albums", api.CreateAlbum)
			write.PUT("/albums/:id", api.UpdateAlbum)
			write.DELETE("/albums/:id", api.DeleteAlbum)
			write.POST("/albums/:id/writings", api.AddAlbumWriting)
			write.DELETE("/albums/:id/writings/:writingId", api.RemoveAlbumWriting)

			write.POST("/tags", api.CreateTag)
			write.PUT("/tags/:id", api.UpdateTag)
			write.DELETE("/tags/:id", api.DeleteTag)

			write.POST("/photo-locations", api.CreatePhotoLocation)
			write.PUT("/photo-locations/:id", api.UpdatePhotoLocation)
			write.DELETE("/photo-locations/:id", api.DeletePhotoLocation)

			write.POST("/photo-devices", api.CreatePhotoDevice)
			write.PUT("/photo-devices/:id", api.UpdatePhotoDevice)
			write.DELETE("/photo-devices/:id", api.DeletePhotoDevice)

			write.POST("/uploads", api.UploadImage)
		}
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})

	return r
}
