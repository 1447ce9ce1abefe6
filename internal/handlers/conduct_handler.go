package handlers

import (
	"net/http"

	"github.com/AEP-2025/lms-service/internal/auth"
	"github.com/AEP-2025/lms-service/internal/services"
	"github.com/AEP-2025/lms-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type ConductHandler struct {
	BaseHandler
	conductService services.ConductService
}

func NewConductHandler(conductService services.ConductService, logger utils.Logger) *ConductHandler {
	return &ConductHandler{
		BaseHandler:    NewBaseHandler(logger),
		conductService: conductService,
	}
}

func (h *ConductHandler) CreateReport(c *gin.Context) {
	var req services.ConductReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	report, err := h.conductService.Report(c.Request.Context(), auth.CurrentUserID(c), auth.CurrentRole(c), &req)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, SuccessResponse{Message: "Conduct report created", Data: report})
}

func (h *ConductHandler) ListStudentReports(c *gin.Context) {
	studentID := h.parseIDParam(c, "id")
	if studentID == 0 {
		return
	}

	reports, err := h.conductService.ListForStudent(c.Request.Context(), auth.CurrentUserID(c), auth.CurrentRole(c), studentID)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Conduct reports retrieved", Data: reports})
}

func (h *ConductHandler) ListCourseReports(c *gin.Context) {
	courseID := h.parseIDParam(c, "id")
	if courseID == 0 {
		return
	}

	reports, err := h.conductService.ListForCourse(c.Request.Context(), auth.CurrentUserID(c), auth.CurrentRole(c), courseID)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Conduct reports retrieved", Data: reports})
}
