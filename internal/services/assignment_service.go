package services

import (
	"context"
	"fmt"
	"time"

	"github.com/AEP-2025/lms-service/internal/cache"
	apperrors "github.com/AEP-2025/lms-service/internal/errors"
	"github.com/AEP-2025/lms-service/internal/events"
	"github.com/AEP-2025/lms-service/internal/models"
	"github.com/AEP-2025/lms-service/internal/repositories"
	"github.com/AEP-2025/lms-service/internal/utils"
	"github.com/AEP-2025/lms-service/internal/validator"
)

// AssignmentService covers the assignment lifecycle: create, submit, grade.
// A student submits at most once per assignment, and grading is terminal.
type AssignmentService interface {
	Create(ctx context.Context, actorID uint, actorRole models.Role, req *CreateAssignmentRequest) (*models.Assignment, error)
	Get(ctx context.Context, actorID uint, actorRole models.Role, assignmentID uint) (*AssignmentDetail, error)
	Update(ctx context.Context, actorID uint, actorRole models.Role, assignmentID uint, req *UpdateAssignmentRequest) (*models.Assignment, error)
	Delete(ctx context.Context, actorID uint, actorRole models.Role, assignmentID uint) error
	ListByCourse(ctx context.Context, actorID uint, actorRole models.Role, courseID uint) ([]*models.Assignment, error)

	// Submit records the student's single attempt.
	Submit(ctx context.Context, studentID uint, actorRole models.Role, assignmentID uint, req *SubmitRequest) (*models.Submission, error)

	// Grade sets marks and feedback on one submission and stamps the grader.
	Grade(ctx context.Context, actorID uint, actorRole models.Role, submissionID uint, req *GradeRequest) (*models.Submission, error)

	// BulkMarkGraded flips the status of many submissions without touching
	// marks or feedback.
	BulkMarkGraded(ctx context.Context, actorID uint, actorRole models.Role, submissionIDs []uint) (int64, error)

	ListSubmissions(ctx context.Context, actorID uint, actorRole models.Role, assignmentID uint) ([]*models.Submission, error)
	ListMySubmissions(ctx context.Context, studentID uint) ([]*models.Submission, error)
}

// AssignmentDetail pairs an assignment with the viewer's own submission when
// the viewer is a student.
type AssignmentDetail struct {
	Assignment   *models.Assignment `json:"assignment"`
	MySubmission *models.Submission `json:"my_submission,omitempty"`
}

type assignmentService struct {
	repo      repositories.Repository
	courses   CourseService
	cache     cache.CacheService
	publisher events.EventPublisher
	validator *validator.Validator
	logger    utils.Logger
}

func NewAssignmentService(
	repo repositories.Repository,
	courses CourseService,
	cacheSvc cache.CacheService,
	publisher events.EventPublisher,
	v *validator.Validator,
	logger utils.Logger,
) AssignmentService {
	return &assignmentService{
		repo:      repo,
		courses:   courses,
		cache:     cacheSvc,
		publisher: publisher,
		validator: v,
		logger:    logger,
	}
}

type CreateAssignmentRequest struct {
	CourseID    uint      `json:"course_id" validate:"required"`
	Title       string    `json:"title" validate:"required,min=1,max=200"`
	Description string    `json:"description" validate:"omitempty,max=5000"`
	DueDate     time.Time `json:"due_date" validate:"required"`
	MaxMarks    int       `json:"max_marks" validate:"omitempty,min=1,max=1000"`

	AttachmentPath *string `json:"attachment_path"`
}

type UpdateAssignmentRequest struct {
	Title       *string    `json:"title" validate:"omitempty,min=1,max=200"`
	Description *string    `json:"description" validate:"omitempty,max=5000"`
	DueDate     *time.Time `json:"due_date"`
	MaxMarks    *int       `json:"max_marks" validate:"omitempty,min=1,max=1000"`

	AttachmentPath *string `json:"attachment_path"`
}

type SubmitRequest struct {
	FilePath string `json:"file_path" validate:"required,max=500"`
}

type GradeRequest struct {
	MarksObtained int     `json:"marks_obtained" validate:"min=0"`
	Feedback      *string `json:"feedback"`
}

func (s *assignmentService) requireAssignmentOwnership(ctx context.Context, actorID uint, actorRole models.Role, assignment *models.Assignment) error {
	if actorRole == models.RoleAdmin {
		return nil
	}
	if actorRole == models.RoleTeacher && assignment.Course != nil && assignment.Course.TeacherID == actorID {
		return nil
	}
	return ErrCourseAccessDenied
}

// ===== ASSIGNMENT CRUD =====

func (s *assignmentService) Create(ctx context.Context, actorID uint, actorRole models.Role, req *CreateAssignmentRequest) (*models.Assignment, error) {
	if !Can(actorRole, ActionManageAssignments) {
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

	maxMarks := req.MaxMarks
	if maxMarks == 0 {
		maxMarks = 100
	}

	assignment := &models.Assignment{
		CourseID:       req.CourseID,
		Title:          req.Title,
		Description:    req.Description,
		DueDate:        req.DueDate,
		MaxMarks:       maxMarks,
		AttachmentPath: req.AttachmentPath,
		CreatedByID:    actorID,
	}
	if err := s.repo.Assignment().Create(ctx, assignment); err != nil {
		return nil, fmt.Errorf("failed to create assignment: %w", err)
	}

	s.logger.InfoContext(ctx, "assignment created",
		"assignment_id", assignment.ID, "course_id", assignment.CourseID)
	return assignment, nil
}

func (s *assignmentService) Get(ctx context.Context, actorID uint, actorRole models.Role, assignmentID uint) (*AssignmentDetail, error) {
	assignment, err := s.repo.Assignment().GetByID(ctx, assignmentID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrAssignmentNotFound
		}
		return nil, fmt.Errorf("failed to load assignment: %w", err)
	}
	if _, err := s.courses.Get(ctx, actorID, actorRole, assignment.CourseID); err != nil {
		return nil, err
	}

	detail := &AssignmentDetail{Assignment: assignment}
	if actorRole == models.RoleStudent {
		sub, err := s.repo.Submission().GetByAssignmentAndStudent(ctx, assignmentID, actorID)
		if err != nil && !repositories.IsNotFoundError(err) {
			return nil, fmt.Errorf("failed to load submission: %w", err)
		}
		detail.MySubmission = sub
	}
	return detail, nil
}

func (s *assignmentService) Update(ctx context.Context, actorID uint, actorRole models.Role, assignmentID uint, req *UpdateAssignmentRequest) (*models.Assignment, error) {
	if !Can(actorRole, ActionManageAssignments) {
		return nil, ErrForbidden
	}
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, apperrors.ToValidationErrors(err)
	}

	assignment, err := s.repo.Assignment().GetByID(ctx, assignmentID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrAssignmentNotFound
		}
		return nil, fmt.Errorf("failed to load assignment: %w", err)
	}
	if err := s.requireAssignmentOwnership(ctx, actorID, actorRole, assignment); err != nil {
		return nil, err
	}

	if req.Title != nil {
		assignment.Title = *req.Title
	}
	if req.Description != nil {
		assignment.Description = *req.Description
	}
	if req.DueDate != nil {
		assignment.DueDate = *req.DueDate
	}
	if req.MaxMarks != nil {
		assignment.MaxMarks = *req.MaxMarks
	}
	if req.AttachmentPath != nil {
		assignment.AttachmentPath = req.AttachmentPath
	}

	if err := s.repo.Assignment().Update(ctx, assignment); err != nil {
		return nil, fmt.Errorf("failed to update assignment: %w", err)
	}
	return assignment, nil
}

func (s *assignmentService) Delete(ctx context.Context, actorID uint, actorRole models.Role, assignmentID uint) error {
	assignment, err := s.repo.Assignment().GetByID(ctx, assignmentID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrAssignmentNotFound
		}
		return fmt.Errorf("failed to load assignment: %w", err)
	}
	if err := s.requireAssignmentOwnership(ctx, actorID, actorRole, assignment); err != nil {
		return err
	}
	if err := s.repo.Assignment().Delete(ctx, assignmentID); err != nil {
		return fmt.Errorf("failed to delete assignment: %w", err)
	}
	return nil
}

func (s *assignmentService) ListByCourse(ctx context.Context, actorID uint, actorRole models.Role, courseID uint) ([]*models.Assignment, error) {
	if _, err := s.courses.Get(ctx, actorID, actorRole, courseID); err != nil {
		return nil, err
	}
	return s.repo.Assignment().ListByCourse(ctx, courseID)
}

// ===== SUBMISSIONS =====

// Submit records the student's attempt. The duplicate check runs up front
// for a friendly error, and the unique constraint catches the race where two
// submissions arrive together.
func (s *assignmentService) Submit(ctx context.Context, studentID uint, actorRole models.Role, assignmentID uint, req *SubmitRequest) (*models.Submission, error) {
	if !Can(actorRole, ActionSubmitAssignment) {
		return nil, ErrForbidden
	}
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, apperrors.ToValidationErrors(err)
	}

	assignment, err := s.repo.Assignment().GetByID(ctx, assignmentID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrAssignmentNotFound
		}
		return nil, fmt.Errorf("failed to load assignment: %w", err)
	}

	enrolled, err := s.repo.Course().IsEnrolled(ctx, assignment.CourseID, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to check enrollment: %w", err)
	}
	if !enrolled {
		return nil, ErrNotEnrolled
	}

	if _, err := s.repo.Submission().GetByAssignmentAndStudent(ctx, assignmentID, studentID); err == nil {
		return nil, ErrAlreadySubmitted
	} else if !repositories.IsNotFoundError(err) {
		return nil, fmt.Errorf("failed to check existing submission: %w", err)
	}

	submission := &models.Submission{
		AssignmentID: assignmentID,
		StudentID:    studentID,
		FilePath:     req.FilePath,
		Status:       models.SubmissionPending,
	}
	if err := s.repo.Submission().Create(ctx, submission); err != nil {
		if repositories.IsDuplicateError(err) {
			return nil, ErrAlreadySubmitted
		}
		return nil, fmt.Errorf("failed to create submission: %w", err)
	}

	if err := s.publisher.PublishNotificationEvent(ctx,
		events.NewSubmissionReceivedEvent(submission, assignment)); err != nil {
		s.logger.Warn("failed to publish submission event",
			"submission_id", submission.ID, "error", err)
	}

	// The pending-submissions count on the teacher dashboard just changed.
	if assignment.Course != nil {
		s.invalidateTeacherDashboard(ctx, assignment.Course.TeacherID)
	}

	s.logger.InfoContext(ctx, "submission received",
		"submission_id", submission.ID, "assignment_id", assignmentID, "student_id", studentID)
	return submission, nil
}

// Grade sets marks, feedback, grader and graded time in one update.
func (s *assignmentService) Grade(ctx context.Context, actorID uint, actorRole models.Role, submissionID uint, req *GradeRequest) (*models.Submission, error) {
	if !Can(actorRole, ActionGradeSubmissions) {
		return nil, ErrForbidden
	}
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, apperrors.ToValidationErrors(err)
	}

	submission, err := s.repo.Submission().GetByID(ctx, submissionID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrSubmissionNotFound
		}
		return nil, fmt.Errorf("failed to load submission: %w", err)
	}

	assignment := submission.Assignment
	if assignment == nil {
		assignment, err = s.repo.Assignment().GetByID(ctx, submission.AssignmentID)
		if err != nil {
			return nil, fmt.Errorf("failed to load assignment: %w", err)
		}
	}
	if err := s.requireAssignmentOwnership(ctx, actorID, actorRole, assignment); err != nil {
		return nil, err
	}

	if req.MarksObtained < 0 || req.MarksObtained > assignment.MaxMarks {
		return nil, ErrInvalidMarks
	}

	now := time.Now().UTC()
	marks := req.MarksObtained
	submission.MarksObtained = &marks
	submission.Feedback = req.Feedback
	submission.Status = models.SubmissionGraded
	submission.GradedByID = &actorID
	submission.GradedAt = &now

	if err := s.repo.Submission().Update(ctx, submission); err != nil {
		return nil, fmt.Errorf("failed to grade submission: %w", err)
	}

	if err := s.publisher.PublishNotificationEvent(ctx,
		events.NewSubmissionGradedEvent(submission, assignment)); err != nil {
		s.logger.Warn("failed to publish grading event",
			"submission_id", submission.ID, "error", err)
	}

	if assignment.Course != nil {
		s.invalidateTeacherDashboard(ctx, assignment.Course.TeacherID)
	}

	s.logger.InfoContext(ctx, "submission graded",
		"submission_id", submission.ID, "marks", marks, "graded_by", actorID)
	return submission, nil
}

// BulkMarkGraded is the fast path for clearing a grading backlog. Only the
// status flips; marks and feedback stay empty.
func (s *assignmentService) BulkMarkGraded(ctx context.Context, actorID uint, actorRole models.Role, submissionIDs []uint) (int64, error) {
	if !Can(actorRole, ActionGradeSubmissions) {
		return 0, ErrForbidden
	}
	if len(submissionIDs) == 0 {
		return 0, nil
	}

	// Teachers may only clear submissions on their own assignments.
	if actorRole != models.RoleAdmin {
		for _, id := range submissionIDs {
			submission, err := s.repo.Submission().GetByID(ctx, id)
			if err != nil {
				if repositories.IsNotFoundError(err) {
					return 0, ErrSubmissionNotFound
				}
				return 0, fmt.Errorf("failed to load submission: %w", err)
			}
			if submission.Assignment == nil || submission.Assignment.Course == nil ||
				submission.Assignment.Course.TeacherID != actorID {
				return 0, ErrCourseAccessDenied
			}
		}
	}

	affected, err := s.repo.Submission().BulkMarkGraded(ctx, submissionIDs)
	if err != nil {
		return 0, fmt.Errorf("failed to bulk mark graded: %w", err)
	}

	// Teachers clear their own backlog; admins may touch any teacher's
	// submissions, so their writes drop every cached teacher dashboard.
	if actorRole == models.RoleAdmin {
		if err := s.cache.DeletePattern(ctx, "dashboard:teacher:*"); err != nil {
			s.logger.Warn("failed to invalidate dashboard caches", "error", err)
		}
	} else {
		s.invalidateTeacherDashboard(ctx, actorID)
	}

	s.logger.InfoContext(ctx, "submissions bulk marked graded",
		"count", affected, "cleared_by", actorID)
	return affected, nil
}

func (s *assignmentService) invalidateTeacherDashboard(ctx context.Context, teacherID uint) {
	key := fmt.Sprintf("dashboard:teacher:%d", teacherID)
	if err := s.cache.Delete(ctx, key); err != nil {
		s.logger.Warn("failed to invalidate dashboard cache", "key", key, "error", err)
	}
}

func (s *assignmentService) ListSubmissions(ctx context.Context, actorID uint, actorRole models.Role, assignmentID uint) ([]*models.Submission, error) {
	if !Can(actorRole, ActionGradeSubmissions) {
		return nil, ErrForbidden
	}
	assignment, err := s.repo.Assignment().GetByID(ctx, assignmentID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrAssignmentNotFound
		}
		return nil, fmt.Errorf("failed to load assignment: %w", err)
	}
	if err := s.requireAssignmentOwnership(ctx, actorID, actorRole, assignment); err != nil {
		return nil, err
	}
	return s.repo.Submission().ListByAssignment(ctx, assignmentID)
}

func (s *assignmentService) ListMySubmissions(ctx context.Context, studentID uint) ([]*models.Submission, error) {
	return s.repo.Submission().ListByStudent(ctx, studentID)
}
