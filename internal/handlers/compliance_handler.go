package handlers

import (
	"net/http"

	"github.com/AEP-2025/lms-service/internal/auth"
	"github.com/AEP-2025/lms-service/internal/services"
	"github.com/AEP-2025/lms-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type ComplianceHandler struct {
	BaseHandler
	complianceService services.ComplianceService
}

func NewComplianceHandler(complianceService services.ComplianceService, logger utils.Logger) *ComplianceHandler {
	return &ComplianceHandler{
		BaseHandler:       NewBaseHandler(logger),
		complianceService: complianceService,
	}
}

func (h *ComplianceHandler) CreateReport(c *gin.Context) {
	var req services.CreateComplianceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	report, err := h.complianceService.Create(c.Request.Context(), auth.CurrentUserID(c), auth.CurrentRole(c), &req)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, SuccessResponse{Message: "Compliance report created", Data: report})
}

func (h *ComplianceHandler) GetReport(c *gin.Context) {
	reportID := h.parseIDParam(c, "id")
	if reportID == 0 {
		return
	}

	report, err := h.complianceService.Get(c.Request.Context(), auth.CurrentRole(c), reportID)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Compliance report retrieved", Data: report})
}

func (h *ComplianceHandler) ListReports(c *gin.Context) {
	reports, err := h.complianceService.List(c.Request.Context(), auth.CurrentRole(c))
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Compliance reports retrieved", Data: reports})
}

type bulkStatusRequest struct {
	ReportIDs []uint `json:"report_ids"`
	Status    string `json:"status"`
}

// BulkUpdateStatus flips the accessibility status on many reports at once.
func (h *ComplianceHandler) BulkUpdateStatus(c *gin.Context) {
	var req bulkStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	affected, err := h.complianceService.BulkUpdateStatus(c.Request.Context(), auth.CurrentRole(c), req.ReportIDs, req.Status)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{
		Message: "Compliance statuses updated",
		Data:    gin.H{"updated": affected},
	})
}
