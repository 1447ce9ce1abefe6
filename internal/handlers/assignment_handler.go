package handlers

import (
	"net/http"

	"github.com/AEP-2025/lms-service/internal/auth"
	"github.com/AEP-2025/lms-service/internal/services"
	"github.com/AEP-2025/lms-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type AssignmentHandler struct {
	BaseHandler
	assignmentService services.AssignmentService
}

func NewAssignmentHandler(assignmentService services.AssignmentService, logger utils.Logger) *AssignmentHandler {
	return &AssignmentHandler{
		BaseHandler:       NewBaseHandler(logger),
		assignmentService: assignmentService,
	}
}

func (h *AssignmentHandler) CreateAssignment(c *gin.Context) {
	var req services.CreateAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	assignment, err := h.assignmentService.Create(c.Request.Context(), auth.CurrentUserID(c), auth.CurrentRole(c), &req)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, SuccessResponse{Message: "Assignment created", Data: assignment})
}

// GetAssignment returns the assignment, with the caller's own submission
// attached for students.
func (h *AssignmentHandler) GetAssignment(c *gin.Context) {
	assignmentID := h.parseIDParam(c, "id")
	if assignmentID == 0 {
		return
	}

	detail, err := h.assignmentService.Get(c.Request.Context(), auth.CurrentUserID(c), auth.CurrentRole(c), assignmentID)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Assignment retrieved", Data: detail})
}

func (h *AssignmentHandler) UpdateAssignment(c *gin.Context) {
	assignmentID := h.parseIDParam(c, "id")
	if assignmentID == 0 {
		return
	}

	var req services.UpdateAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	assignment, err := h.assignmentService.Update(c.Request.Context(), auth.CurrentUserID(c), auth.CurrentRole(c), assignmentID, &req)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Assignment updated", Data: assignment})
}

func (h *AssignmentHandler) DeleteAssignment(c *gin.Context) {
	assignmentID := h.parseIDParam(c, "id")
	if assignmentID == 0 {
		return
	}

	if err := h.assignmentService.Delete(c.Request.Context(), auth.CurrentUserID(c), auth.CurrentRole(c), assignmentID); err != nil {
		h.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Assignment deleted"})
}

func (h *AssignmentHandler) ListCourseAssignments(c *gin.Context) {
	courseID := h.parseIDParam(c, "id")
	if courseID == 0 {
		return
	}

	assignments, err := h.assignmentService.ListByCourse(c.Request.Context(), auth.CurrentUserID(c), auth.CurrentRole(c), courseID)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Assignments retrieved", Data: assignments})
}

// ===== SUBMISSIONS =====

// SubmitAssignment records the student's single attempt.
func (h *AssignmentHandler) SubmitAssignment(c *gin.Context) {
	assignmentID := h.parseIDParam(c, "id")
	if assignmentID == 0 {
		return
	}

	var req services.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	submission, err := h.assignmentService.Submit(c.Request.Context(), auth.CurrentUserID(c), auth.CurrentRole(c), assignmentID, &req)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, SuccessResponse{Message: "Submission received", Data: submission})
}

// GradeSubmission sets marks and feedback on one submission.
func (h *AssignmentHandler) GradeSubmission(c *gin.Context) {
	submissionID := h.parseIDParam(c, "id")
	if submissionID == 0 {
		return
	}

	var req services.GradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	submission, err := h.assignmentService.Grade(c.Request.Context(), auth.CurrentUserID(c), auth.CurrentRole(c), submissionID, &req)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Submission graded", Data: submission})
}

type bulkGradeRequest struct {
	SubmissionIDs []uint `json:"submission_ids"`
}

// BulkMarkGraded flips the status of many submissions without setting marks.
func (h *AssignmentHandler) BulkMarkGraded(c *gin.Context) {
	var req bulkGradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	affected, err := h.assignmentService.BulkMarkGraded(c.Request.Context(), auth.CurrentUserID(c), auth.CurrentRole(c), req.SubmissionIDs)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{
		Message: "Submissions marked graded",
		Data:    gin.H{"updated": affected},
	})
}

func (h *AssignmentHandler) ListSubmissions(c *gin.Context) {
	assignmentID := h.parseIDParam(c, "id")
	if assignmentID == 0 {
		return
	}

	submissions, err := h.assignmentService.ListSubmissions(c.Request.Context(), auth.CurrentUserID(c), auth.CurrentRole(c), assignmentID)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Submissions retrieved", Data: submissions})
}

func (h *AssignmentHandler) ListMySubmissions(c *gin.Context) {
	submissions, err := h.assignmentService.ListMySubmissions(c.Request.Context(), auth.CurrentUserID(c))
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Submissions retrieved", Data: submissions})
}
