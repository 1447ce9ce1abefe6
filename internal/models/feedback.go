package models

import (
	"time"
)

type FeedbackStatus string

const (
	FeedbackPending   FeedbackStatus = "pending"
	FeedbackAddressed FeedbackStatus = "addressed"
)

type FeedbackCategory string

const (
	FeedbackAccessibility FeedbackCategory = "accessibility"
	FeedbackCourse        FeedbackCategory = "course"
	FeedbackTechnical     FeedbackCategory = "technical"
	FeedbackSuggestion    FeedbackCategory = "suggestion"
	FeedbackOther         FeedbackCategory = "other"
)

// Feedback is user-submitted and optionally answered by staff.
// responded_at is set exactly once, when the feedback is addressed.
type Feedback struct {
	ID            uint             `json:"id" gorm:"primaryKey"`
	SubmittedByID uint             `json:"submitted_by_id" gorm:"not null;index"`
	Subject       string           `json:"subject" gorm:"not null;size:200" validate:"required,min=1,max=200"`
	Message       string           `json:"message" gorm:"type:text;not null" validate:"required"`
	Category      FeedbackCategory `json:"category" gorm:"default:other;size:50" validate:"omitempty,oneof=accessibility course technical suggestion other"`

	Status        FeedbackStatus `json:"status" gorm:"default:pending;size:10;index" validate:"omitempty,oneof=pending addressed"`
	Response      *string        `json:"response" gorm:"type:text"`
	RespondedByID *uint          `json:"responded_by_id"`
	RespondedAt   *time.Time     `json:"responded_at"`

	CreatedAt time.Time `json:"created_at"`

	// Relations
	SubmittedBy *User `json:"submitted_by,omitempty" gorm:"foreignKey:SubmittedByID;constraint:OnDelete:CASCADE"`
	RespondedBy *User `json:"responded_by,omitempty" gorm:"foreignKey:RespondedByID;constraint:OnDelete:SET NULL"`
}

func (Feedback) TableName() string {
	return "feedback_entries"
}
