package models

import (
	"time"
)

// Assignment belongs to a course and collects at most one submission per
// student. Listings are ordered by due date.
type Assignment struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	CourseID    uint      `json:"course_id" gorm:"not null;index" validate:"required"`
	Title       string    `json:"title" gorm:"not null;size:200" validate:"required,min=1,max=200"`
	Description string    `json:"description" gorm:"type:text" validate:"omitempty,max=5000"`
	DueDate     time.Time `json:"due_date" gorm:"not null" validate:"required"`
	MaxMarks    int       `json:"max_marks" gorm:"default:100" validate:"min=1,max=1000"`

	AttachmentPath *string `json:"attachment_path" gorm:"size:500"`
	CreatedByID    uint    `json:"created_by_id" gorm:"not null;index"`

	CreatedAt time.Time `json:"created_at"`

	// Relations
	Course      *Course      `json:"course,omitempty" gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE"`
	CreatedBy   *User        `json:"created_by,omitempty" gorm:"foreignKey:CreatedByID;constraint:OnDelete:CASCADE"`
	Submissions []Submission `json:"submissions,omitempty" gorm:"foreignKey:AssignmentID"`
}

func (Assignment) TableName() string {
	return "assignments"
}
