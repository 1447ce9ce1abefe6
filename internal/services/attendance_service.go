package services

import (
	"context"
	"fmt"
	"time"

	"github.com/AEP-2025/lms-service/internal/cache"
	apperrors "github.com/AEP-2025/lms-service/internal/errors"
	"github.com/AEP-2025/lms-service/internal/models"
	"github.com/AEP-2025/lms-service/internal/repositories"
	"github.com/AEP-2025/lms-service/internal/utils"
	"github.com/AEP-2025/lms-service/internal/validator"
	"github.com/xuri/excelize/v2"
)

const dateLayout = "2006-01-02"

// AttendanceService marks, lists and exports attendance. Marking is an
// upsert keyed on (student, course, date), so re-marking a day replaces the
// earlier statuses instead of duplicating rows.
type AttendanceService interface {
	Mark(ctx context.Context, actorID uint, actorRole models.Role, req *MarkAttendanceRequest) (*MarkAttendanceResult, error)

	// Check reports whether attendance already exists for the course and
	// date, and how many rows there are. Used as an advisory warning
	// before submission.
	Check(ctx context.Context, actorID uint, actorRole models.Role, courseID uint, date string) (bool, int64, error)

	List(ctx context.Context, actorID uint, actorRole models.Role, req *ListAttendanceRequest) ([]*models.Attendance, error)

	// ExportRegister builds an XLSX register for the course between two
	// dates and returns the serialized workbook.
	ExportRegister(ctx context.Context, actorID uint, actorRole models.Role, courseID uint, from, to string) ([]byte, string, error)
}

type attendanceService struct {
	repo      repositories.Repository
	cache     cache.CacheService
	validator *validator.Validator
	logger    utils.Logger
}

func NewAttendanceService(repo repositories.Repository, cacheSvc cache.CacheService, v *validator.Validator, logger utils.Logger) AttendanceService {
	return &attendanceService{repo: repo, cache: cacheSvc, validator: v, logger: logger}
}

type AttendanceEntry struct {
	StudentID uint    `json:"student_id" validate:"required"`
	Status    string  `json:"status" validate:"required,attendance_status"`
	Remarks   *string `json:"remarks"`
}

type MarkAttendanceRequest struct {
	CourseID uint              `json:"course_id" validate:"required"`
	Date     string            `json:"date" validate:"required,date_string"`
	Entries  []AttendanceEntry `json:"entries" validate:"required,min=1,dive"`
}

// MarkAttendanceResult reports how many rows were created versus replaced,
// so the caller can tell a fresh marking from a correction.
type MarkAttendanceResult struct {
	Created int    `json:"created"`
	Updated int    `json:"updated"`
	Message string `json:"message"`
}

type ListAttendanceRequest struct {
	CourseID  *uint   `json:"course_id"`
	StudentID *uint   `json:"student_id"`
	Date      *string `json:"date" validate:"omitempty,date_string"`
	Status    *string `json:"status" validate:"omitempty,attendance_status"`
}

func (s *attendanceService) requireCourseAccess(ctx context.Context, actorID uint, actorRole models.Role, courseID uint) (*models.Course, error) {
	course, err := s.repo.Course().GetByID(ctx, courseID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("failed to load course: %w", err)
	}
	if actorRole == models.RoleAdmin {
		return course, nil
	}
	if actorRole == models.RoleTeacher && course.TeacherID == actorID {
		return course, nil
	}
	return nil, ErrCourseAccessDenied
}

// ===== MARKING =====

func (s *attendanceService) Mark(ctx context.Context, actorID uint, actorRole models.Role, req *MarkAttendanceRequest) (*MarkAttendanceResult, error) {
	if !Can(actorRole, ActionMarkAttendance) {
		return nil, ErrForbidden
	}
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, apperrors.ToValidationErrors(err)
	}
	course, err := s.requireCourseAccess(ctx, actorID, actorRole, req.CourseID)
	if err != nil {
		return nil, err
	}

	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return nil, ValidationErrors{*NewValidationError("date", "must be a date in YYYY-MM-DD format", req.Date)}
	}

	for _, entry := range req.Entries {
		enrolled, err := s.repo.Course().IsEnrolled(ctx, req.CourseID, entry.StudentID)
		if err != nil {
			return nil, fmt.Errorf("failed to check enrollment: %w", err)
		}
		if !enrolled {
			return nil, ErrNotEnrolled
		}
	}

	result := &MarkAttendanceResult{}
	for _, entry := range req.Entries {
		record := &models.Attendance{
			StudentID:  entry.StudentID,
			CourseID:   req.CourseID,
			Date:       date,
			Status:     models.AttendanceStatus(entry.Status),
			Remarks:    entry.Remarks,
			MarkedByID: actorID,
		}
		created, err := s.repo.Attendance().Upsert(ctx, record)
		if err != nil {
			return nil, fmt.Errorf("failed to record attendance for student %d: %w", entry.StudentID, err)
		}
		if created {
			result.Created++
		} else {
			result.Updated++
		}
	}

	if result.Updated > 0 {
		result.Message = fmt.Sprintf("Attendance saved: %d updated, %d created", result.Updated, result.Created)
	} else {
		result.Message = fmt.Sprintf("Attendance saved: %d created", result.Created)
	}

	// Keyed on the course owner, not the actor, so an admin marking on a
	// teacher's behalf still drops the teacher's cached dashboard.
	s.invalidateTeacherDashboard(ctx, course.TeacherID)
	s.logger.InfoContext(ctx, "attendance marked",
		"course_id", req.CourseID, "date", req.Date,
		"created", result.Created, "updated", result.Updated)
	return result, nil
}

func (s *attendanceService) Check(ctx context.Context, actorID uint, actorRole models.Role, courseID uint, date string) (bool, int64, error) {
	if !Can(actorRole, ActionMarkAttendance) {
		return false, 0, ErrForbidden
	}
	if _, err := s.requireCourseAccess(ctx, actorID, actorRole, courseID); err != nil {
		return false, 0, err
	}

	day, err := time.Parse(dateLayout, date)
	if err != nil {
		return false, 0, ValidationErrors{*NewValidationError("date", "must be a date in YYYY-MM-DD format", date)}
	}

	count, err := s.repo.Attendance().CountByCourseAndDate(ctx, courseID, day)
	if err != nil {
		return false, 0, fmt.Errorf("failed to check attendance: %w", err)
	}
	return count > 0, count, nil
}

// ===== LISTING =====

func (s *attendanceService) List(ctx context.Context, actorID uint, actorRole models.Role, req *ListAttendanceRequest) ([]*models.Attendance, error) {
	if !Can(actorRole, ActionViewAttendance) {
		return nil, ErrForbidden
	}
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, apperrors.ToValidationErrors(err)
	}

	filters := repositories.AttendanceFilters{CourseID: req.CourseID}

	if req.Date != nil {
		day, err := time.Parse(dateLayout, *req.Date)
		if err != nil {
			return nil, ValidationErrors{*NewValidationError("date", "must be a date in YYYY-MM-DD format", *req.Date)}
		}
		filters.Date = &day
	}
	if req.Status != nil {
		status := models.AttendanceStatus(*req.Status)
		filters.Status = &status
	}

	switch actorRole {
	case models.RoleAdmin:
		filters.StudentID = req.StudentID
	case models.RoleTeacher:
		// Scope to own courses; the date defaults to today when the
		// teacher opens the register without a filter.
		filters.TeacherID = &actorID
		filters.StudentID = req.StudentID
		if filters.Date == nil && filters.CourseID == nil {
			today := time.Now().UTC().Truncate(24 * time.Hour)
			filters.Date = &today
		}
	case models.RoleStudent:
		filters.StudentID = &actorID
	case models.RoleParent:
		studentID, err := s.linkedStudentID(ctx, actorID)
		if err != nil {
			return nil, err
		}
		filters.StudentID = &studentID
	default:
		return nil, ErrForbidden
	}

	return s.repo.Attendance().List(ctx, filters)
}

// ===== EXPORT =====

// ExportRegister renders the course register as an XLSX workbook with one
// row per (date, student) record.
func (s *attendanceService) ExportRegister(ctx context.Context, actorID uint, actorRole models.Role, courseID uint, from, to string) ([]byte, string, error) {
	if !Can(actorRole, ActionExportAttendance) {
		return nil, "", ErrForbidden
	}
	course, err := s.requireCourseAccess(ctx, actorID, actorRole, courseID)
	if err != nil {
		return nil, "", err
	}

	fromDate, err := time.Parse(dateLayout, from)
	if err != nil {
		return nil, "", ValidationErrors{*NewValidationError("from", "must be a date in YYYY-MM-DD format", from)}
	}
	toDate, err := time.Parse(dateLayout, to)
	if err != nil {
		return nil, "", ValidationErrors{*NewValidationError("to", "must be a date in YYYY-MM-DD format", to)}
	}
	if toDate.Before(fromDate) {
		return nil, "", ValidationErrors{*NewValidationError("to", "must not be before from", to)}
	}

	records, err := s.repo.Attendance().ListForExport(ctx, courseID, fromDate, toDate)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load attendance records: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Attendance"
	f.SetSheetName(f.GetSheetName(0), sheet)

	headers := []string{"Date", "Student", "Username", "Status", "Remarks", "Marked By"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for row, record := range records {
		values := []interface{}{
			record.Date.Format(dateLayout),
			studentName(record.Student),
			studentUsername(record.Student),
			string(record.Status),
			derefString(record.Remarks),
			studentName(record.MarkedBy),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", fmt.Errorf("failed to serialize attendance register: %w", err)
	}

	filename := fmt.Sprintf("attendance_%s_%s_%s.xlsx", course.Code, from, to)
	s.logger.InfoContext(ctx, "attendance register exported",
		"course_id", courseID, "rows", len(records))
	return buf.Bytes(), filename, nil
}

func (s *attendanceService) linkedStudentID(ctx context.Context, parentID uint) (uint, error) {
	profile, err := s.repo.Profile().GetByUserID(ctx, parentID)
	if err != nil {
		return 0, fmt.Errorf("failed to load parent profile: %w", err)
	}
	if profile.LinkedStudentID == nil {
		return 0, ErrParentNotLinked
	}
	return *profile.LinkedStudentID, nil
}

func (s *attendanceService) invalidateTeacherDashboard(ctx context.Context, teacherID uint) {
	key := fmt.Sprintf("dashboard:teacher:%d", teacherID)
	if err := s.cache.Delete(ctx, key); err != nil {
		s.logger.Warn("failed to invalidate dashboard cache", "key", key, "error", err)
	}
}

func studentName(u *models.User) string {
	if u == nil {
		return ""
	}
	return u.FullName()
}

func studentUsername(u *models.User) string {
	if u == nil {
		return ""
	}
	return u.Username
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
