package repositories

import (
	"context"
	"time"

	"github.com/AEP-2025/lms-service/internal/models"
)

type AttendanceRepository interface {
	// Upsert creates the record for its (student, course, date) key or, when
	// a row already exists, updates status, remarks and marked_by in place.
	// The insert-then-fallback runs atomically so two concurrent markers
	// cannot produce a second row. Returns true when a new row was created.
	Upsert(ctx context.Context, record *models.Attendance) (created bool, err error)

	List(ctx context.Context, filters AttendanceFilters) ([]*models.Attendance, error)

	// Advisory existence check for the pre-submission warning.
	CountByCourseAndDate(ctx context.Context, courseID uint, date time.Time) (int64, error)

	// Teacher dashboard statistics.
	CountsByTeacher(ctx context.Context, teacherID uint) (*AttendanceCounts, error)
	ListRecentByTeacher(ctx context.Context, teacherID uint, since time.Time, limit int) ([]*models.Attendance, error)

	// ListForExport returns fully-preloaded records for the XLSX register.
	ListForExport(ctx context.Context, courseID uint, from, to time.Time) ([]*models.Attendance, error)
}
