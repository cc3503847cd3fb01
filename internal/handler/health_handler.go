package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type healthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Storage   string    `json:"storage"`
}

// Health pings the storage and reports 503 when it is unreachable.
func (a *API) Health(c *gin.Context) {
	pingCtx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	resp := healthResponse{Status: "healthy", Timestamp: time.Now().UTC(), Storage: "up"}
	status := http.StatusOK
	if err := a.store.Ping(pingCtx); err != nil {
		a.log.Warn("health check failed", zap.Error(err))
		resp.Status = "unhealthy"
		resp.Storage = "down"
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, resp)
}
