package handler

import (
	"net/http"

	"github.com/Arslan-Alizahi/smarttales-backend/internal/service"
	"github.com/Arslan-Alizahi/smarttales-backend/pkg/response"
	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	dashboardService service.DashboardService
}

func NewDashboardHandler(dashboardService service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

func (h *DashboardHandler) GetParentDashboard(c *gin.Context) {
	parentID, ok := parseUintParam(c, "parentId")
	if !ok {
		return
	}

	dashboard, err := h.dashboardService.GetParentDashboard(c.Request.Context(), parentID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": dashboard})
}

func (h *DashboardHandler) GetMonthlyProgress(c *gin.Context) {
	childID, ok := parseUintParam(c, "childId")
	if !ok {
		return
	}

	progress, err := h.dashboardService.GetMonthlyProgress(c.Request.Context(), childID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": progress})
}

func (h *DashboardHandler) RefreshKidMetrics(c *gin.Context) {
	kidID, ok := parseUintParam(c, "kidId")
	if !ok {
		return
	}

	if err := h.dashboardService.RefreshKidMetrics(c.Request.Context(), kidID); err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "metrics refreshed"})
}
