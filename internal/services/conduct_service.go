package services

import (
	"context"
	"fmt"

	apperrors "github.com/AEP-2025/lms-service/internal/errors"
	"github.com/AEP-2025/lms-service/internal/models"
	"github.com/AEP-2025/lms-service/internal/repositories"
	"github.com/AEP-2025/lms-service/internal/utils"
	"github.com/AEP-2025/lms-service/internal/validator"
)

// ConductService records and lists behavior reports. Teachers report on
// students in their own courses; parents read their linked student's
// reports.
type ConductService interface {
	Report(ctx context.Context, actorID uint, actorRole models.Role, req *ConductReportRequest) (*models.ConductReport, error)
	ListForStudent(ctx context.Context, actorID uint, actorRole models.Role, studentID uint) ([]*models.ConductReport, error)
	ListForCourse(ctx context.Context, actorID uint, actorRole models.Role, courseID uint) ([]*models.ConductReport, error)
}

type conductService struct {
	repo      repositories.Repository
	validator *validator.Validator
	logger    utils.Logger
}

func NewConductService(repo repositories.Repository, v *validator.Validator, logger utils.Logger) ConductService {
	return &conductService{repo: repo, validator: v, logger: logger}
}

type ConductReportRequest struct {
	StudentID           uint   `json:"student_id" validate:"required"`
	CourseID            uint   `json:"course_id" validate:"required"`
	BehaviorRating      int    `json:"behavior_rating" validate:"required,min=1,max=5"`
	ParticipationRating int    `json:"participation_rating" validate:"required,min=1,max=5"`
	Comments            string `json:"comments" validate:"required"`
}

func (s *conductService) Report(ctx context.Context, actorID uint, actorRole models.Role, req *ConductReportRequest) (*models.ConductReport, error) {
	if !Can(actorRole, ActionReportConduct) {
		return nil, ErrForbidden
	}
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, apperrors.ToValidationErrors(err)
	}

	course, err := s.repo.Course().GetByID(ctx, req.CourseID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("failed to load course: %w", err)
	}
	if actorRole != models.RoleAdmin && course.TeacherID != actorID {
		return nil, ErrCourseAccessDenied
	}

	enrolled, err := s.repo.Course().IsEnrolled(ctx, req.CourseID, req.StudentID)
	if err != nil {
		return nil, fmt.Errorf("failed to check enrollment: %w", err)
	}
	if !enrolled {
		return nil, ErrNotEnrolled
	}

	report := &models.ConductReport{
		StudentID:           req.StudentID,
		CourseID:            req.CourseID,
		BehaviorRating:      req.BehaviorRating,
		ParticipationRating: req.ParticipationRating,
		Comments:            req.Comments,
		ReportedByID:        actorID,
	}
	if err := s.repo.Conduct().Create(ctx, report); err != nil {
		return nil, fmt.Errorf("failed to create conduct report: %w", err)
	}

	s.logger.InfoContext(ctx, "conduct report created",
		"report_id", report.ID, "student_id", report.StudentID, "course_id", report.CourseID)
	return report, nil
}

func (s *conductService) ListForStudent(ctx context.Context, actorID uint, actorRole models.Role, studentID uint) ([]*models.ConductReport, error) {
	switch actorRole {
	case models.RoleAdmin, models.RoleTeacher:
	case models.RoleParent:
		profile, err := s.repo.Profile().GetByUserID(ctx, actorID)
		if err != nil {
			return nil, fmt.Errorf("failed to load parent profile: %w", err)
		}
		if profile.LinkedStudentID == nil || *profile.LinkedStudentID != studentID {
			return nil, NewPermissionError(actorID, studentID, "conduct_report", "list", "not the linked student")
		}
	default:
		return nil, ErrForbidden
	}
	return s.repo.Conduct().ListByStudent(ctx, studentID)
}

func (s *conductService) ListForCourse(ctx context.Context, actorID uint, actorRole models.Role, courseID uint) ([]*models.ConductReport, error) {
	course, err := s.repo.Course().GetByID(ctx, courseID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("failed to load course: %w", err)
	}
	if actorRole != models.RoleAdmin && course.TeacherID != actorID {
		return nil, ErrCourseAccessDenied
	}
	return s.repo.Conduct().ListByCourse(ctx, courseID)
}
