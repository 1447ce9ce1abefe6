package repositories

import (
	"context"

	"github.com/AEP-2025/lms-service/internal/models"
)

type AssignmentRepository interface {
	Create(ctx context.Context, assignment *models.Assignment) error
	GetByID(ctx context.Context, id uint) (*models.Assignment, error) // preloads Course
	Update(ctx context.Context, assignment *models.Assignment) error
	Delete(ctx context.Context, id uint) error

	// ListByCourse returns assignments ordered by due date.
	ListByCourse(ctx context.Context, courseID uint) ([]*models.Assignment, error)

	// ListPendingForStudent returns assignments in the student's enrolled
	// courses that the student has not submitted yet.
	ListPendingForStudent(ctx context.Context, studentID uint) ([]*models.Assignment, error)

	CountByCreator(ctx context.Context, creatorID uint) (int64, error)
}

type SubmissionRepository interface {
	// Create inserts a submission; the storage layer's unique constraint on
	// (assignment, student) is the last line of defense against duplicates.
	Create(ctx context.Context, submission *models.Submission) error
	GetByID(ctx context.Context, id uint) (*models.Submission, error) // preloads Assignment.Course, Student
	GetByAssignmentAndStudent(ctx context.Context, assignmentID, studentID uint) (*models.Submission, error)
	Update(ctx context.Context, submission *models.Submission) error

	ListByAssignment(ctx context.Context, assignmentID uint) ([]*models.Submission, error)
	ListByStudent(ctx context.Context, studentID uint) ([]*models.Submission, error)
	ListPendingByTeacher(ctx context.Context, teacherID uint, limit int) ([]*models.Submission, error)

	// BulkMarkGraded flips status to graded on the given rows and nothing
	// else; marks, feedback and grader stay untouched. Returns the rows
	// affected.
	BulkMarkGraded(ctx context.Context, ids []uint) (int64, error)

	// Statistics for the teacher dashboard: counts of submissions against
	// assignments created by the teacher, by status.
	CountByTeacherAndStatus(ctx context.Context, teacherID uint, status models.SubmissionStatus) (int64, error)
}
