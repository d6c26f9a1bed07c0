package handler

import (
	"context"
	"net/http"
	"time"

	"vortex-go/internal/api/response"

	"github.com/gin-gonic/gin"
)

// Pinger 存活检查依赖
type Pinger interface {
	PingContext(ctx context.Context) error
}

type HealthcheckHandler struct {
	db Pinger
}

func NewHealthcheckHandler(db Pinger) *HealthcheckHandler {
	return &HealthcheckHandler{db: db}
}

// Healthcheck GET /api/v1/healthcheck
func (h *HealthcheckHandler) Healthcheck(c *gin.Context) {
	response.OK(c, "Everything is OK.", gin.H{})
}

// Healthz GET /healthz，检查数据库连接
func (h *HealthcheckHandler) Healthz(c *gin.Context) {
	if h.db != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := h.db.PingContext(ctx); err != nil {
			response.Fail(c, http.StatusServiceUnavailable, "database unavailable", err.Error())
			return
		}
	}
	response.OK(c, "ok", gin.H{"status": "ok"})
}
