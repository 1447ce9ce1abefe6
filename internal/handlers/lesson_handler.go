package handlers

import (
	"net/http"

	"github.com/AEP-2025/lms-service/internal/auth"
	"github.com/AEP-2025/lms-service/internal/services"
	"github.com/AEP-2025/lms-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type LessonHandler struct {
	BaseHandler
	lessonService services.LessonService
}

func NewLessonHandler(lessonService services.LessonService, logger utils.Logger) *LessonHandler {
	return &LessonHandler{
		BaseHandler:   NewBaseHandler(logger),
		lessonService: lessonService,
	}
}

// ===== LESSONS =====

func (h *LessonHandler) CreateLesson(c *gin.Context) {
	var req services.CreateLessonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	lesson, err := h.lessonService.CreateLesson(c.Request.Context(), auth.CurrentUserID(c), auth.CurrentRole(c), &req)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, SuccessResponse{Message: "Lesson created", Data: lesson})
}

func (h *LessonHandler) GetLesson(c *gin.Context) {
	lessonID := h.parseIDParam(c, "id")
	if lessonID == 0 {
		return
	}

	lesson, err := h.lessonService.GetLesson(c.Request.Context(), auth.CurrentUserID(c), auth.CurrentRole(c), lessonID)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Lesson retrieved", Data: lesson})
}

func (h *LessonHandler) UpdateLesson(c *gin.Context) {
	lessonID := h.parseIDParam(c, "id")
	if lessonID == 0 {
		return
	}

	var req services.UpdateLessonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	lesson, err := h.lessonService.UpdateLesson(c.Request.Context(), auth.CurrentUserID(c), auth.CurrentRole(c), lessonID, &req)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Lesson updated", Data: lesson})
}

func (h *LessonHandler) DeleteLesson(c *gin.Context) {
	lessonID := h.parseIDParam(c, "id")
	if lessonID == 0 {
		return
	}

	if err := h.lessonService.DeleteLesson(c.Request.Context(), auth.CurrentUserID(c), auth.CurrentRole(c), lessonID); err != nil {
		h.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Lesson deleted"})
}

// ListCourseLessons lists a course's lessons in display order.
func (h *LessonHandler) ListCourseLessons(c *gin.Context) {
	courseID := h.parseIDParam(c, "id")
	if courseID == 0 {
		return
	}

	lessons, err := h.lessonService.ListLessons(c.Request.Context(), auth.CurrentUserID(c), auth.CurrentRole(c), courseID)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Lessons retrieved", Data: lessons})
}

// ===== MATERIALS =====

func (h *LessonHandler) CreateMaterial(c *gin.Context) {
	var req services.CreateMaterialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	material, err := h.lessonService.CreateMaterial(c.Request.Context(), auth.CurrentUserID(c), auth.CurrentRole(c), &req)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, SuccessResponse{Message: "Material created", Data: material})
}

func (h *LessonHandler) UpdateMaterial(c *gin.Context) {
	materialID := h.parseIDParam(c, "id")
	if materialID == 0 {
		return
	}

	var req services.UpdateMaterialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	material, err := h.lessonService.UpdateMaterial(c.Request.Context(), auth.CurrentUserID(c), auth.CurrentRole(c), materialID, &req)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Material updated", Data: material})
}

func (h *LessonHandler) DeleteMaterial(c *gin.Context) {
	materialID := h.parseIDParam(c, "id")
	if materialID == 0 {
		return
	}

	if err := h.lessonService.DeleteMaterial(c.Request.Context(), auth.CurrentUserID(c), auth.CurrentRole(c), materialID); err != nil {
		h.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Material deleted"})
}

func (h *LessonHandler) ListCourseMaterials(c *gin.Context) {
	courseID := h.parseIDParam(c, "id")
	if courseID == 0 {
		return
	}

	materials, err := h.lessonService.ListMaterials(c.Request.Context(), auth.CurrentUserID(c), auth.CurrentRole(c), courseID)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Materials retrieved", Data: materials})
}
