package models

import (
	"time"
)

type SubmissionStatus string

const (
	SubmissionPending SubmissionStatus = "pending"
	SubmissionGraded  SubmissionStatus = "graded"
)

// Submission is a student's single attempt for an assignment. The
// (assignment, student) pair is unique; graded_at is set only when the
// status flips to graded, and grading is terminal.
type Submission struct {
	ID           uint `json:"id" gorm:"primaryKey"`
	AssignmentID uint `json:"assignment_id" gorm:"not null;uniqueIndex:idx_submission_assignment_student" validate:"required"`
	StudentID    uint `json:"student_id" gorm:"not null;uniqueIndex:idx_submission_assignment_student;index" validate:"required"`

	FilePath    string    `json:"file_path" gorm:"not null;size:500" validate:"required"`
	SubmittedAt time.Time `json:"submitted_at" gorm:"autoCreateTime"`

	MarksObtained *int             `json:"marks_obtained"`
	Feedback      *string          `json:"feedback" gorm:"type:text"`
	Status        SubmissionStatus `json:"status" gorm:"default:pending;size:10;index" validate:"omitempty,oneof=pending graded"`
	GradedByID    *uint            `json:"graded_by_id"`
	GradedAt      *time.Time       `json:"graded_at"`

	// Relations
	Assignment *Assignment `json:"assignment,omitempty" gorm:"foreignKey:AssignmentID;constraint:OnDelete:CASCADE"`
	Student    *User       `json:"student,omitempty" gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE"`
	GradedBy   *User       `json:"graded_by,omitempty" gorm:"foreignKey:GradedByID;constraint:OnDelete:SET NULL"`
}

func (Submission) TableName() string {
	return "submissions"
}
