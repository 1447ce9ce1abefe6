package handlers

import (
	"net/http"

	"github.com/AEP-2025/lms-service/internal/auth"
	"github.com/AEP-2025/lms-service/internal/models"
	"github.com/AEP-2025/lms-service/internal/services"
	"github.com/AEP-2025/lms-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	BaseHandler
	dashboardService services.DashboardService
}

func NewDashboardHandler(dashboardService services.DashboardService, logger utils.Logger) *DashboardHandler {
	return &DashboardHandler{
		BaseHandler:      NewBaseHandler(logger),
		dashboardService: dashboardService,
	}
}

// Dashboard dispatches to the caller's role-specific dashboard.
func (h *DashboardHandler) Dashboard(c *gin.Context) {
	userID := auth.CurrentUserID(c)

	var (
		data interface{}
		err  error
	)
	switch auth.CurrentRole(c) {
	case models.RoleAdmin:
		data, err = h.dashboardService.AdminDashboard(c.Request.Context())
	case models.RoleTeacher:
		data, err = h.dashboardService.TeacherDashboard(c.Request.Context(), userID)
	case models.RoleStudent:
		data, err = h.dashboardService.StudentDashboard(c.Request.Context(), userID)
	case models.RoleParent:
		data, err = h.dashboardService.ParentDashboard(c.Request.Context(), userID)
	default:
		c.JSON(http.StatusForbidden, ErrorResponse{Message: "Unknown role"})
		return
	}
	if err != nil {
		h.respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "Dashboard retrieved", Data: data})
}
