package handlers

import (
	"net/http"

	"github.com/AEP-2025/lms-service/internal/auth"
	"github.com/AEP-2025/lms-service/internal/services"
	"github.com/AEP-2025/lms-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type AnnouncementHandler struct {
	BaseHandler
	announcementService services.AnnouncementService
}

func NewAnnouncementHandler(announcementService services.AnnouncementService, logger utils.Logger) *AnnouncementHandler {
	return &AnnouncementHandler{
		BaseHandler:         NewBaseHandler(logger),
		announcementService: announcementService,
	}
}

func (h *AnnouncementHandler) CreateAnnouncement(c *gin.Context) {
	var req services.CreateAnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	announcement, err := h.announcementService.Create(c.Request.Context(), auth.CurrentUserID(c), auth.CurrentRole(c), &req)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, SuccessResponse{Message: "Announcement published", Data: announcement})
}

// ListAnnouncements returns what the caller's role is allowed to see.
func (h *AnnouncementHandler) ListAnnouncements(c *gin.Context) {
	announcements, err := h.announcementService.ListVisible(c.Request.Context(), auth.CurrentRole(c))
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Announcements retrieved", Data: announcements})
}

func (h *AnnouncementHandler) UpdateAnnouncement(c *gin.Context) {
	announcementID := h.parseIDParam(c, "id")
	if announcementID == 0 {
		return
	}

	var req services.UpdateAnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	announcement, err := h.announcementService.Update(c.Request.Context(), auth.CurrentUserID(c), auth.CurrentRole(c), announcementID, &req)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Announcement updated", Data: announcement})
}

func (h *AnnouncementHandler) DeleteAnnouncement(c *gin.Context) {
	announcementID := h.parseIDParam(c, "id")
	if announcementID == 0 {
		return
	}

	if err := h.announcementService.Delete(c.Request.Context(), auth.CurrentUserID(c), auth.CurrentRole(c), announcementID); err != nil {
		h.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Announcement deleted"})
}
