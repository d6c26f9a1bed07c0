package handler

import (
	"vortex-go/internal/api/response"
	"vortex-go/internal/service"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	dashboardService *service.DashboardService
}

func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Stats GET /api/v1/dashboard/stats
func (h *DashboardHandler) Stats(c *gin.Context) {
	stats, err := h.dashboardService.Stats(c.Request.Context(), currentUserID(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.OK(c, "channel stats fetched successfully", stats)
}

// Videos GET /api/v1/dashboard/videos
func (h *DashboardHandler) Videos(c *gin.Context) {
	data, err := h.dashboardService.Videos(c.Request.Context(), currentUserID(c), parsePagination(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.OK(c, "channel videos fetched successfully", data)
}
