package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// Repository aggregates the per-entity repositories. InTx runs fn with a
// Repository bound to a single database transaction; one handler maps to one
// transaction wherever it performs more than one write.
type Repository interface {
	User() UserRepository
	Profile() ProfileRepository
	Course() CourseRepository
	Lesson() LessonRepository
	Material() MaterialRepository
	Assignment() AssignmentRepository
	Submission() SubmissionRepository
	Attendance() AttendanceRepository
	Announcement() AnnouncementRepository
	Feedback() FeedbackRepository
	Compliance() ComplianceRepository
	Conduct() ConductRepository

	InTx(ctx context.Context, fn func(Repository) error) error
}

// IsNotFoundError reports whether err represents a missing record.
func IsNotFoundError(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// IsDuplicateError reports whether err represents a unique-constraint
// violation. Requires the gorm connection to be opened with TranslateError.
func IsDuplicateError(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
