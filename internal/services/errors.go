package services

import (
	"errors"
	"fmt"

	apperrors "github.com/AEP-2025/lms-service/internal/errors"
)

// ===== COMMON SERVICE ERRORS =====

var (
	// Generic errors
	ErrNotFound         = errors.New("resource not found")
	ErrUnauthorized     = errors.New("unauthorized access")
	ErrForbidden        = errors.New("forbidden - insufficient permissions")
	ErrValidationFailed = errors.New("validation failed")
	ErrInternalError    = errors.New("internal server error")
	ErrConflict         = errors.New("resource conflict")

	// Account specific errors
	ErrUserNotFound       = errors.New("user not found")
	ErrDuplicateUsername  = errors.New("username already taken")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrAccountDisabled    = errors.New("account is disabled")
	ErrInvalidRole        = errors.New("invalid user role")

	// Course specific errors
	ErrCourseNotFound      = errors.New("course not found")
	ErrCourseAccessDenied  = errors.New("access denied to course")
	ErrCourseDuplicateCode = errors.New("course code already exists")
	ErrNotEnrolled         = errors.New("student is not enrolled in this course")
	ErrEnrollNonStudent    = errors.New("only student accounts can be enrolled")

	// Lesson / material errors
	ErrLessonNotFound   = errors.New("lesson not found")
	ErrMaterialNotFound = errors.New("course material not found")

	// Assignment / submission errors
	ErrAssignmentNotFound = errors.New("assignment not found")
	ErrSubmissionNotFound = errors.New("submission not found")
	ErrAlreadySubmitted   = errors.New("assignment already submitted")
	ErrInvalidMarks       = errors.New("marks must be between 0 and the assignment maximum")

	// Attendance errors
	ErrAttendanceCourseRequired = errors.New("attendance requires a course selection")

	// Announcement errors
	ErrAnnouncementNotFound = errors.New("announcement not found")

	// Feedback / compliance / conduct errors
	ErrFeedbackNotFound   = errors.New("feedback not found")
	ErrComplianceNotFound = errors.New("compliance report not found")
	ErrParentNotLinked    = errors.New("parent account has no linked student")
)

// ===== CUSTOM ERROR TYPES =====

// Use shared validation errors from errors package
type ValidationError = apperrors.ValidationError
type ValidationErrors = apperrors.ValidationErrors

type PermissionError struct {
	UserID     uint   `json:"user_id"`
	ResourceID uint   `json:"resource_id"`
	Resource   string `json:"resource"`
	Action     string `json:"action"`
	Reason     string `json:"reason"`
}

func (pe *PermissionError) Error() string {
	return fmt.Sprintf("permission denied: user %d cannot %s %s %d - %s",
		pe.UserID, pe.Action, pe.Resource, pe.ResourceID, pe.Reason)
}

// ===== ERROR HELPERS =====

func NewValidationError(field, message string, value interface{}) *ValidationError {
	return apperrors.NewValidationError(field, message, value)
}

func NewPermissionError(userID, resourceID uint, resource, action, reason string) *PermissionError {
	return &PermissionError{
		UserID:     userID,
		ResourceID: resourceID,
		Resource:   resource,
		Action:     action,
		Reason:     reason,
	}
}

// IsNotFound checks if error represents a "not found" condition
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrCourseNotFound) ||
		errors.Is(err, ErrLessonNotFound) ||
		errors.Is(err, ErrMaterialNotFound) ||
		errors.Is(err, ErrAssignmentNotFound) ||
		errors.Is(err, ErrSubmissionNotFound) ||
		errors.Is(err, ErrAnnouncementNotFound) ||
		errors.Is(err, ErrFeedbackNotFound) ||
		errors.Is(err, ErrComplianceNotFound)
}

// IsAccessDenied checks if error represents a permission failure
func IsAccessDenied(err error) bool {
	if errors.Is(err, ErrUnauthorized) ||
		errors.Is(err, ErrForbidden) ||
		errors.Is(err, ErrCourseAccessDenied) ||
		errors.Is(err, ErrParentNotLinked) {
		return true
	}
	var pe *PermissionError
	return errors.As(err, &pe)
}

// IsValidation checks if error represents a validation failure
func IsValidation(err error) bool {
	if errors.Is(err, ErrValidationFailed) ||
		errors.Is(err, ErrInvalidRole) ||
		errors.Is(err, ErrInvalidMarks) ||
		errors.Is(err, ErrEnrollNonStudent) ||
		errors.Is(err, ErrNotEnrolled) ||
		errors.Is(err, ErrAttendanceCourseRequired) {
		return true
	}
	var ve ValidationErrors
	return errors.As(err, &ve)
}

// IsConflict checks if error represents a resource conflict
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict) ||
		errors.Is(err, ErrDuplicateUsername) ||
		errors.Is(err, ErrDuplicateEmail) ||
		errors.Is(err, ErrCourseDuplicateCode) ||
		errors.Is(err, ErrAlreadySubmitted)
}
