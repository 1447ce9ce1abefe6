package services

import (
	"context"
	"fmt"

	"github.com/AEP-2025/lms-service/internal/cache"
	apperrors "github.com/AEP-2025/lms-service/internal/errors"
	"github.com/AEP-2025/lms-service/internal/models"
	"github.com/AEP-2025/lms-service/internal/repositories"
	"github.com/AEP-2025/lms-service/internal/utils"
	"github.com/AEP-2025/lms-service/internal/validator"
)

// CourseService manages courses and enrollment. Teachers operate only on
// courses they own; admins are unrestricted.
type CourseService interface {
	Create(ctx context.Context, actorID uint, actorRole models.Role, req *CreateCourseRequest) (*models.Course, error)
	Get(ctx context.Context, actorID uint, actorRole models.Role, courseID uint) (*models.Course, error)
	Update(ctx context.Context, actorID uint, actorRole models.Role, courseID uint, req *UpdateCourseRequest) (*models.Course, error)
	Delete(ctx context.Context, actorID uint, actorRole models.Role, courseID uint) error

	// List returns the courses visible to the actor: admins see all,
	// teachers their own, students their enrollments, parents their linked
	// student's enrollments.
	List(ctx context.Context, actorID uint, actorRole models.Role) ([]*models.Course, error)

	// Enroll replaces the course's student set.
	Enroll(ctx context.Context, actorID uint, actorRole models.Role, courseID uint, studentIDs []uint) error

	// GetStudents returns the roster: the enrolled students plus the
	// course they belong to.
	GetStudents(ctx context.Context, actorID uint, actorRole models.Role, courseID uint) (*CourseRoster, error)
}

// CourseSummary is the course identity carried alongside a roster.
type CourseSummary struct {
	ID    uint   `json:"id"`
	Title string `json:"title"`
	Code  string `json:"code"`
}

// CourseRoster is the enrolled student list together with the course it
// belongs to, shaped for the attendance marking page.
type CourseRoster struct {
	Students []models.User `json:"students"`
	Count    int           `json:"count"`
	Course   CourseSummary `json:"course"`
}

type courseService struct {
	repo      repositories.Repository
	cache     cache.CacheService
	validator *validator.Validator
	logger    utils.Logger
}

func NewCourseService(repo repositories.Repository, cacheSvc cache.CacheService, v *validator.Validator, logger utils.Logger) CourseService {
	return &courseService{repo: repo, cache: cacheSvc, validator: v, logger: logger}
}

type CreateCourseRequest struct {
	Title       string `json:"title" validate:"required,min=1,max=200"`
	Description string `json:"description" validate:"omitempty,max=2000"`
	Code        string `json:"code" validate:"required,min=1,max=20"`

	// Admins may create a course on behalf of a teacher.
	TeacherID *uint `json:"teacher_id"`
}

type UpdateCourseRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	Code        *string `json:"code" validate:"omitempty,min=1,max=20"`
	IsActive    *bool   `json:"is_active"`
}

// canManageCourse resolves ownership: admins always, teachers only for their
// own courses.
func (s *courseService) canManageCourse(actorID uint, actorRole models.Role, course *models.Course) bool {
	if actorRole == models.RoleAdmin {
		return true
	}
	return actorRole == models.RoleTeacher && course.TeacherID == actorID
}

func (s *courseService) Create(ctx context.Context, actorID uint, actorRole models.Role, req *CreateCourseRequest) (*models.Course, error) {
	if !Can(actorRole, ActionManageCourses) {
		return nil, ErrForbidden
	}
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, apperrors.ToValidationErrors(err)
	}

	teacherID := actorID
	if actorRole == models.RoleAdmin && req.TeacherID != nil {
		isTeacher, err := s.repo.User().HasRole(ctx, *req.TeacherID, models.RoleTeacher)
		if err != nil {
			return nil, fmt.Errorf("failed to check teacher: %w", err)
		}
		if !isTeacher {
			return nil, ValidationErrors{*NewValidationError("teacher_id", "must reference a teacher account", *req.TeacherID)}
		}
		teacherID = *req.TeacherID
	}

	exists, err := s.repo.Course().ExistsByCode(ctx, req.Code, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to check course code: %w", err)
	}
	if exists {
		return nil, ErrCourseDuplicateCode
	}

	course := &models.Course{
		Title:       req.Title,
		Description: req.Description,
		Code:        req.Code,
		TeacherID:   teacherID,
		IsActive:    true,
	}
	if err := s.repo.Course().Create(ctx, course); err != nil {
		if repositories.IsDuplicateError(err) {
			return nil, ErrCourseDuplicateCode
		}
		return nil, fmt.Errorf("failed to create course: %w", err)
	}

	s.invalidateTeacherDashboard(ctx, teacherID)
	s.logger.InfoContext(ctx, "course created",
		"course_id", course.ID, "code", course.Code, "teacher_id", teacherID)
	return course, nil
}

func (s *courseService) Get(ctx context.Context, actorID uint, actorRole models.Role, courseID uint) (*models.Course, error) {
	course, err := s.repo.Course().GetByIDWithDetails(ctx, courseID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("failed to load course: %w", err)
	}

	switch actorRole {
	case models.RoleAdmin:
	case models.RoleTeacher:
		if course.TeacherID != actorID {
			return nil, ErrCourseAccessDenied
		}
	case models.RoleStudent:
		enrolled, err := s.repo.Course().IsEnrolled(ctx, courseID, actorID)
		if err != nil {
			return nil, fmt.Errorf("failed to check enrollment: %w", err)
		}
		if !enrolled {
			return nil, ErrCourseAccessDenied
		}
	case models.RoleParent:
		studentID, err := s.linkedStudentID(ctx, actorID)
		if err != nil {
			return nil, err
		}
		enrolled, err := s.repo.Course().IsEnrolled(ctx, courseID, studentID)
		if err != nil {
			return nil, fmt.Errorf("failed to check enrollment: %w", err)
		}
		if !enrolled {
			return nil, ErrCourseAccessDenied
		}
	default:
		return nil, ErrForbidden
	}

	return course, nil
}

func (s *courseService) Update(ctx context.Context, actorID uint, actorRole models.Role, courseID uint, req *UpdateCourseRequest) (*models.Course, error) {
	if !Can(actorRole, ActionManageCourses) {
		return nil, ErrForbidden
	}
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, apperrors.ToValidationErrors(err)
	}

	course, err := s.repo.Course().GetByID(ctx, courseID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("failed to load course: %w", err)
	}
	if !s.canManageCourse(actorID, actorRole, course) {
		return nil, ErrCourseAccessDenied
	}

	if req.Code != nil && *req.Code != course.Code {
		exists, err := s.repo.Course().ExistsByCode(ctx, *req.Code, &courseID)
		if err != nil {
			return nil, fmt.Errorf("failed to check course code: %w", err)
		}
		if exists {
			return nil, ErrCourseDuplicateCode
		}
		course.Code = *req.Code
	}
	if req.Title != nil {
		course.Title = *req.Title
	}
	if req.Description != nil {
		course.Description = *req.Description
	}
	if req.IsActive != nil {
		course.IsActive = *req.IsActive
	}

	if err := s.repo.Course().Update(ctx, course); err != nil {
		return nil, fmt.Errorf("failed to update course: %w", err)
	}
	return course, nil
}

func (s *courseService) Delete(ctx context.Context, actorID uint, actorRole models.Role, courseID uint) error {
	course, err := s.repo.Course().GetByID(ctx, courseID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrCourseNotFound
		}
		return fmt.Errorf("failed to load course: %w", err)
	}
	if !s.canManageCourse(actorID, actorRole, course) {
		return ErrCourseAccessDenied
	}
	if err := s.repo.Course().Delete(ctx, courseID); err != nil {
		return fmt.Errorf("failed to delete course: %w", err)
	}

	s.invalidateTeacherDashboard(ctx, course.TeacherID)
	s.logger.InfoContext(ctx, "course deleted", "course_id", courseID)
	return nil
}

func (s *courseService) List(ctx context.Context, actorID uint, actorRole models.Role) ([]*models.Course, error) {
	switch actorRole {
	case models.RoleAdmin:
		courses, _, err := s.repo.Course().List(ctx, repositories.CourseFilters{})
		return courses, err
	case models.RoleTeacher:
		return s.repo.Course().GetByTeacher(ctx, actorID)
	case models.RoleStudent:
		return s.repo.Course().GetEnrolledCourses(ctx, actorID)
	case models.RoleParent:
		studentID, err := s.linkedStudentID(ctx, actorID)
		if err != nil {
			return nil, err
		}
		return s.repo.Course().GetEnrolledCourses(ctx, studentID)
	default:
		return nil, ErrForbidden
	}
}

// Enroll replaces the full student set of the course. Every submitted ID must
// belong to a student account.
func (s *courseService) Enroll(ctx context.Context, actorID uint, actorRole models.Role, courseID uint, studentIDs []uint) error {
	course, err := s.repo.Course().GetByID(ctx, courseID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrCourseNotFound
		}
		return fmt.Errorf("failed to load course: %w", err)
	}
	if !s.canManageCourse(actorID, actorRole, course) {
		return ErrCourseAccessDenied
	}

	if len(studentIDs) > 0 {
		count, err := s.repo.User().CountStudents(ctx, studentIDs)
		if err != nil {
			return fmt.Errorf("failed to verify students: %w", err)
		}
		if count != int64(len(studentIDs)) {
			return ErrEnrollNonStudent
		}
	}

	if err := s.repo.Course().SetStudents(ctx, courseID, studentIDs); err != nil {
		return fmt.Errorf("failed to update enrollment: %w", err)
	}

	s.invalidateTeacherDashboard(ctx, course.TeacherID)
	s.logger.InfoContext(ctx, "enrollment updated",
		"course_id", courseID, "student_count", len(studentIDs))
	return nil
}

func (s *courseService) GetStudents(ctx context.Context, actorID uint, actorRole models.Role, courseID uint) (*CourseRoster, error) {
	course, err := s.repo.Course().GetByID(ctx, courseID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("failed to load course: %w", err)
	}
	if !s.canManageCourse(actorID, actorRole, course) {
		return nil, ErrCourseAccessDenied
	}

	students, err := s.repo.Course().GetStudents(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to load students: %w", err)
	}
	return &CourseRoster{
		Students: students,
		Count:    len(students),
		Course: CourseSummary{
			ID:    course.ID,
			Title: course.Title,
			Code:  course.Code,
		},
	}, nil
}

// linkedStudentID resolves a parent's linked student.
func (s *courseService) linkedStudentID(ctx context.Context, parentID uint) (uint, error) {
	profile, err := s.repo.Profile().GetByUserID(ctx, parentID)
	if err != nil {
		return 0, fmt.Errorf("failed to load parent profile: %w", err)
	}
	if profile.LinkedStudentID == nil {
		return 0, ErrParentNotLinked
	}
	return *profile.LinkedStudentID, nil
}

func (s *courseService) invalidateTeacherDashboard(ctx context.Context, teacherID uint) {
	key := fmt.Sprintf("dashboard:teacher:%d", teacherID)
	if err := s.cache.Delete(ctx, key); err != nil {
		s.logger.Warn("failed to invalidate dashboard cache", "key", key, "error", err)
	}
}
