package repositories

import (
	"time"

	"github.com/AEP-2025/lms-service/internal/models"
)

// ===== SHARED FILTER STRUCTS =====

type UserFilters struct {
	Role   *models.Role `json:"role"`
	Limit  int          `json:"limit"`
	Offset int          `json:"offset"`
}

type CourseFilters struct {
	TeacherID *uint  `json:"teacher_id"`
	IsActive  *bool  `json:"is_active"`
	Limit     int    `json:"limit"`
	Offset    int    `json:"offset"`
	SortBy    string `json:"sort_by"`    // "created_at", "title", "course_code"
	SortOrder string `json:"sort_order"` // "asc", "desc"
}

type AttendanceFilters struct {
	CourseID  *uint                    `json:"course_id"`
	TeacherID *uint                    `json:"teacher_id"` // scope to courses taught by this teacher
	StudentID *uint                    `json:"student_id"`
	Date      *time.Time               `json:"date"`
	Status    *models.AttendanceStatus `json:"status"`
	Limit     int                      `json:"limit"`
	Offset    int                      `json:"offset"`
}

type FeedbackFilters struct {
	SubmittedBy *uint                    `json:"submitted_by"`
	Category    *models.FeedbackCategory `json:"category"`
	Status      *models.FeedbackStatus   `json:"status"`
	Limit       int                      `json:"limit"`
	Offset      int                      `json:"offset"`
}

// ===== SHARED STATISTICS STRUCTS =====

// AttendanceCounts breaks attendance records down by status.
type AttendanceCounts struct {
	Total   int64 `json:"total"`
	Present int64 `json:"present"`
	Absent  int64 `json:"absent"`
	Late    int64 `json:"late"`
}
