package handlers

import (
	"net/http"

	"github.com/AEP-2025/lms-service/internal/auth"
	"github.com/AEP-2025/lms-service/internal/models"
	"github.com/AEP-2025/lms-service/internal/repositories"
	"github.com/AEP-2025/lms-service/internal/services"
	"github.com/AEP-2025/lms-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type FeedbackHandler struct {
	BaseHandler
	feedbackService services.FeedbackService
}

func NewFeedbackHandler(feedbackService services.FeedbackService, logger utils.Logger) *FeedbackHandler {
	return &FeedbackHandler{
		BaseHandler:     NewBaseHandler(logger),
		feedbackService: feedbackService,
	}
}

func (h *FeedbackHandler) SubmitFeedback(c *gin.Context) {
	var req services.SubmitFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	feedback, err := h.feedbackService.Submit(c.Request.Context(), auth.CurrentUserID(c), auth.CurrentRole(c), &req)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, SuccessResponse{Message: "Feedback submitted", Data: feedback})
}

func (h *FeedbackHandler) GetFeedback(c *gin.Context) {
	feedbackID := h.parseIDParam(c, "id")
	if feedbackID == 0 {
		return
	}

	feedback, err := h.feedbackService.Get(c.Request.Context(), auth.CurrentUserID(c), auth.CurrentRole(c), feedbackID)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Feedback retrieved", Data: feedback})
}

// ListFeedback returns the caller's own entries, or everything for admins.
func (h *FeedbackHandler) ListFeedback(c *gin.Context) {
	filters := repositories.FeedbackFilters{}
	if category := c.Query("category"); category != "" {
		cat := models.FeedbackCategory(category)
		filters.Category = &cat
	}
	if status := c.Query("status"); status != "" {
		st := models.FeedbackStatus(status)
		filters.Status = &st
	}

	entries, err := h.feedbackService.List(c.Request.Context(), auth.CurrentUserID(c), auth.CurrentRole(c), filters)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Feedback retrieved", Data: entries})
}

// RespondToFeedback records the admin's answer and marks the entry
// addressed.
func (h *FeedbackHandler) RespondToFeedback(c *gin.Context) {
	feedbackID := h.parseIDParam(c, "id")
	if feedbackID == 0 {
		return
	}

	var req services.RespondFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	feedback, err := h.feedbackService.Respond(c.Request.Context(), auth.CurrentUserID(c), auth.CurrentRole(c), feedbackID, &req)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Feedback responded", Data: feedback})
}
