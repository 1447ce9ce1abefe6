package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/AEP-2025/lms-service/internal/auth"
	"github.com/AEP-2025/lms-service/internal/services"
	"github.com/AEP-2025/lms-service/internal/utils"
	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type AttendanceHandler struct {
	BaseHandler
	attendanceService services.AttendanceService
}

func NewAttendanceHandler(attendanceService services.AttendanceService, logger utils.Logger) *AttendanceHandler {
	return &AttendanceHandler{
		BaseHandler:       NewBaseHandler(logger),
		attendanceService: attendanceService,
	}
}

// MarkAttendance upserts the day's register for a course.
func (h *AttendanceHandler) MarkAttendance(c *gin.Context) {
	var req services.MarkAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	result, err := h.attendanceService.Mark(c.Request.Context(), auth.CurrentUserID(c), auth.CurrentRole(c), &req)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: result.Message, Data: result})
}

// CheckAttendance reports whether the register for the course and date
// already has entries, so the client can warn before overwriting.
func (h *AttendanceHandler) CheckAttendance(c *gin.Context) {
	courseID := h.parseIDParam(c, "id")
	if courseID == 0 {
		return
	}
	date := c.DefaultQuery("date", time.Now().UTC().Format("2006-01-02"))

	exists, count, err := h.attendanceService.Check(c.Request.Context(), auth.CurrentUserID(c), auth.CurrentRole(c), courseID, date)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{
		Message: "Attendance checked",
		Data:    gin.H{"exists": exists, "count": count, "date": date},
	})
}

// ListAttendance returns records scoped to the caller's role.
func (h *AttendanceHandler) ListAttendance(c *gin.Context) {
	req := services.ListAttendanceRequest{}

	if courseID := queryUint(c, "course_id"); courseID != 0 {
		req.CourseID = &courseID
	}
	if studentID := queryUint(c, "student_id"); studentID != 0 {
		req.StudentID = &studentID
	}
	if date := c.Query("date"); date != "" {
		req.Date = &date
	}
	if status := c.Query("status"); status != "" {
		req.Status = &status
	}

	records, err := h.attendanceService.List(c.Request.Context(), auth.CurrentUserID(c), auth.CurrentRole(c), &req)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Attendance retrieved", Data: records})
}

// ExportAttendance streams the course register as an XLSX download.
func (h *AttendanceHandler) ExportAttendance(c *gin.Context) {
	courseID := h.parseIDParam(c, "id")
	if courseID == 0 {
		return
	}

	now := time.Now().UTC()
	from := c.DefaultQuery("from", now.AddDate(0, -1, 0).Format("2006-01-02"))
	to := c.DefaultQuery("to", now.Format("2006-01-02"))

	data, filename, err := h.attendanceService.ExportRegister(c.Request.Context(), auth.CurrentUserID(c), auth.CurrentRole(c), courseID, from, to)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, data)
}

func queryUint(c *gin.Context, key string) uint {
	var v uint
	if _, err := fmt.Sscanf(c.Query(key), "%d", &v); err != nil {
		return 0
	}
	return v
}
