package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/AEP-2025/lms-service/internal/cache"
	"github.com/AEP-2025/lms-service/internal/models"
	"github.com/AEP-2025/lms-service/internal/repositories"
	"github.com/AEP-2025/lms-service/internal/utils"
)

const (
	teacherDashboardTTL    = 5 * time.Minute
	recentAttendanceWindow = 7 * 24 * time.Hour
	recentListLimit        = 5
)

// DashboardService aggregates per-role landing page data.
type DashboardService interface {
	TeacherDashboard(ctx context.Context, teacherID uint) (*TeacherDashboard, error)
	StudentDashboard(ctx context.Context, studentID uint) (*StudentDashboard, error)
	ParentDashboard(ctx context.Context, parentID uint) (*ParentDashboard, error)
	AdminDashboard(ctx context.Context) (*AdminDashboard, error)
}

type dashboardService struct {
	repo   repositories.Repository
	cache  cache.CacheService
	logger utils.Logger
}

func NewDashboardService(repo repositories.Repository, cacheSvc cache.CacheService, logger utils.Logger) DashboardService {
	return &dashboardService{repo: repo, cache: cacheSvc, logger: logger}
}

type TeacherDashboard struct {
	CourseCount        int64 `json:"course_count"`
	StudentCount       int64 `json:"student_count"`
	LessonCount        int64 `json:"lesson_count"`
	AssignmentCount    int64 `json:"assignment_count"`
	PendingSubmissions int64 `json:"pending_submissions"`

	AttendanceCounts     repositories.AttendanceCounts `json:"attendance_counts"`
	AttendancePercentage float64                       `json:"attendance_percentage"`

	RecentAttendance    []*models.Attendance   `json:"recent_attendance"`
	RecentAnnouncements []*models.Announcement `json:"recent_announcements"`
}

type StudentDashboard struct {
	Courses            []*models.Course        `json:"courses"`
	PendingAssignments []*models.Assignment    `json:"pending_assignments"`
	Submissions        []*models.Submission    `json:"submissions"`
	ConductReports     []*models.ConductReport `json:"conduct_reports"`
	Announcements      []*models.Announcement  `json:"announcements"`
}

type ParentDashboard struct {
	Student        *models.User            `json:"student"`
	Courses        []*models.Course        `json:"courses"`
	Attendance     []*models.Attendance    `json:"attendance"`
	ConductReports []*models.ConductReport `json:"conduct_reports"`
	Announcements  []*models.Announcement  `json:"announcements"`
}

type AdminDashboard struct {
	UserCounts        map[string]int64 `json:"user_counts"`
	CourseCount       int64            `json:"course_count"`
	ComplianceReports int              `json:"compliance_reports"`
	PendingFeedback   int              `json:"pending_feedback"`
}

// teacherDashboardKey is the cache key for a teacher's aggregates.
func teacherDashboardKey(teacherID uint) string {
	return fmt.Sprintf("dashboard:teacher:%d", teacherID)
}

// ===== TEACHER =====

// TeacherDashboard serves the cached aggregate when fresh and rebuilds it on
// a miss. Writers on the attendance, course and enrollment paths invalidate
// the key.
func (s *dashboardService) TeacherDashboard(ctx context.Context, teacherID uint) (*TeacherDashboard, error) {
	key := teacherDashboardKey(teacherID)

	var cached TeacherDashboard
	err := s.cache.Get(ctx, key, &cached)
	if err == nil {
		return &cached, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		s.logger.Warn("dashboard cache read failed", "key", key, "error", err)
	}

	dashboard, err := s.buildTeacherDashboard(ctx, teacherID)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, key, dashboard, teacherDashboardTTL); err != nil {
		s.logger.Warn("dashboard cache write failed", "key", key, "error", err)
	}
	return dashboard, nil
}

func (s *dashboardService) buildTeacherDashboard(ctx context.Context, teacherID uint) (*TeacherDashboard, error) {
	courses, err := s.repo.Course().GetByTeacher(ctx, teacherID)
	if err != nil {
		return nil, fmt.Errorf("failed to load courses: %w", err)
	}

	studentCount, err := s.repo.Course().CountDistinctStudents(ctx, teacherID)
	if err != nil {
		return nil, fmt.Errorf("failed to count students: %w", err)
	}
	lessonCount, err := s.repo.Lesson().CountByTeacher(ctx, teacherID)
	if err != nil {
		return nil, fmt.Errorf("failed to count lessons: %w", err)
	}
	assignmentCount, err := s.repo.Assignment().CountByCreator(ctx, teacherID)
	if err != nil {
		return nil, fmt.Errorf("failed to count assignments: %w", err)
	}
	pendingSubmissions, err := s.repo.Submission().CountByTeacherAndStatus(ctx, teacherID, models.SubmissionPending)
	if err != nil {
		return nil, fmt.Errorf("failed to count pending submissions: %w", err)
	}

	counts, err := s.repo.Attendance().CountsByTeacher(ctx, teacherID)
	if err != nil {
		return nil, fmt.Errorf("failed to count attendance: %w", err)
	}

	since := time.Now().UTC().Add(-recentAttendanceWindow)
	recentAttendance, err := s.repo.Attendance().ListRecentByTeacher(ctx, teacherID, since, recentListLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent attendance: %w", err)
	}

	announcements, err := s.repo.Announcement().ListActiveByCreator(ctx, teacherID, recentListLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load announcements: %w", err)
	}

	return &TeacherDashboard{
		CourseCount:          int64(len(courses)),
		StudentCount:         studentCount,
		LessonCount:          lessonCount,
		AssignmentCount:      assignmentCount,
		PendingSubmissions:   pendingSubmissions,
		AttendanceCounts:     *counts,
		AttendancePercentage: attendancePercentage(counts.Present, counts.Total),
		RecentAttendance:     recentAttendance,
		RecentAnnouncements:  announcements,
	}, nil
}

// attendancePercentage is present/total as a percentage rounded to one
// decimal place. Zero records means 0.0, not a division error.
func attendancePercentage(present, total int64) float64 {
	if total == 0 {
		return 0.0
	}
	return math.Round(float64(present)/float64(total)*1000) / 10
}

// ===== STUDENT =====

func (s *dashboardService) StudentDashboard(ctx context.Context, studentID uint) (*StudentDashboard, error) {
	courses, err := s.repo.Course().GetEnrolledCourses(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load courses: %w", err)
	}
	pending, err := s.repo.Assignment().ListPendingForStudent(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load pending assignments: %w", err)
	}
	submissions, err := s.repo.Submission().ListByStudent(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load submissions: %w", err)
	}
	conduct, err := s.repo.Conduct().ListByStudent(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load conduct reports: %w", err)
	}
	announcements, err := s.visibleAnnouncements(ctx, models.RoleStudent)
	if err != nil {
		return nil, err
	}

	return &StudentDashboard{
		Courses:            courses,
		PendingAssignments: pending,
		Submissions:        submissions,
		ConductReports:     conduct,
		Announcements:      announcements,
	}, nil
}

// ===== PARENT =====

func (s *dashboardService) ParentDashboard(ctx context.Context, parentID uint) (*ParentDashboard, error) {
	profile, err := s.repo.Profile().GetByUserID(ctx, parentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load parent profile: %w", err)
	}

	// A parent without a linked student still gets a dashboard, just an
	// empty one with the role-wide announcements.
	if profile.LinkedStudentID == nil {
		announcements, err := s.visibleAnnouncements(ctx, models.RoleParent)
		if err != nil {
			return nil, err
		}
		return &ParentDashboard{Announcements: announcements}, nil
	}
	studentID := *profile.LinkedStudentID

	student, err := s.repo.User().GetByID(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load linked student: %w", err)
	}
	courses, err := s.repo.Course().GetEnrolledCourses(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load courses: %w", err)
	}
	attendance, err := s.repo.Attendance().List(ctx, repositories.AttendanceFilters{
		StudentID: &studentID,
		Limit:     20,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load attendance: %w", err)
	}
	conduct, err := s.repo.Conduct().ListByStudent(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load conduct reports: %w", err)
	}
	announcements, err := s.visibleAnnouncements(ctx, models.RoleParent)
	if err != nil {
		return nil, err
	}

	return &ParentDashboard{
		Student:        student,
		Courses:        courses,
		Attendance:     attendance,
		ConductReports: conduct,
		Announcements:  announcements,
	}, nil
}

// ===== ADMIN =====

func (s *dashboardService) AdminDashboard(ctx context.Context) (*AdminDashboard, error) {
	userCounts := make(map[string]int64, len(models.AllRoles))
	for _, role := range models.AllRoles {
		r := role
		_, total, err := s.repo.User().List(ctx, repositories.UserFilters{Role: &r, Limit: 1})
		if err != nil {
			return nil, fmt.Errorf("failed to count %s accounts: %w", role, err)
		}
		userCounts[string(role)] = total
	}

	_, courseCount, err := s.repo.Course().List(ctx, repositories.CourseFilters{Limit: 1})
	if err != nil {
		return nil, fmt.Errorf("failed to count courses: %w", err)
	}

	complianceReports, err := s.repo.Compliance().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load compliance reports: %w", err)
	}

	pendingStatus := models.FeedbackPending
	pendingFeedback, err := s.repo.Feedback().List(ctx, repositories.FeedbackFilters{Status: &pendingStatus})
	if err != nil {
		return nil, fmt.Errorf("failed to load pending feedback: %w", err)
	}

	return &AdminDashboard{
		UserCounts:        userCounts,
		CourseCount:       courseCount,
		ComplianceReports: len(complianceReports),
		PendingFeedback:   len(pendingFeedback),
	}, nil
}

func (s *dashboardService) visibleAnnouncements(ctx context.Context, role models.Role) ([]*models.Announcement, error) {
	active, err := s.repo.Announcement().ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load announcements: %w", err)
	}
	visible := make([]*models.Announcement, 0, len(active))
	for _, a := range active {
		if a.VisibleTo(role) {
			visible = append(visible, a)
		}
	}
	if len(visible) > recentListLimit {
		visible = visible[:recentListLimit]
	}
	return visible, nil
}
