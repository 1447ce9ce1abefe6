package models

import (
	"time"
)

// ConductReport rates a student's behavior and participation in a course,
// both on a 1..5 scale. The report date is set at creation and never edited.
type ConductReport struct {
	ID        uint `json:"id" gorm:"primaryKey"`
	StudentID uint `json:"student_id" gorm:"not null;index" validate:"required"`
	CourseID  uint `json:"course_id" gorm:"not null;index" validate:"required"`

	BehaviorRating      int    `json:"behavior_rating" gorm:"not null" validate:"required,min=1,max=5"`
	ParticipationRating int    `json:"participation_rating" gorm:"not null" validate:"required,min=1,max=5"`
	Comments            string `json:"comments" gorm:"type:text" validate:"required"`

	ReportedByID uint      `json:"reported_by_id" gorm:"not null"`
	Date         time.Time `json:"date" gorm:"type:date;autoCreateTime"`

	// Relations
	Student    *User   `json:"student,omitempty" gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE"`
	Course     *Course `json:"course,omitempty" gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE"`
	ReportedBy *User   `json:"reported_by,omitempty" gorm:"foreignKey:ReportedByID;constraint:OnDelete:CASCADE"`
}

func (ConductReport) TableName() string {
	return "conduct_reports"
}
