package events

import (
	"time"

	"github.com/AEP-2025/lms-service/internal/models"
	"github.com/google/uuid"
)

// EventType represents the kinds of notification events the service emits.
type EventType string

const (
	// Announcement events
	EventAnnouncementPublished EventType = "announcement.published"

	// Submission events
	EventSubmissionReceived EventType = "submission.received"
	EventSubmissionGraded   EventType = "submission.graded"

	// Feedback events
	EventFeedbackResponded EventType = "feedback.responded"
)

// NotificationEvent is the envelope for every notification event.
type NotificationEvent struct {
	ID        string                 `json:"id"`
	Type      EventType              `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Source    string                 `json:"source"`
	Version   string                 `json:"version"`
	Data      interface{}            `json:"data"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

const (
	eventSource  = "lms-service"
	eventVersion = "1.0"
)

func newEvent(eventType EventType, data interface{}) *NotificationEvent {
	return &NotificationEvent{
		ID:        uuid.New().String(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Source:    eventSource,
		Version:   eventVersion,
		Data:      data,
	}
}

// ===== EVENT PAYLOADS =====

type AnnouncementPublishedEvent struct {
	AnnouncementID uint   `json:"announcement_id"`
	Title          string `json:"title"`
	TargetRoles    string `json:"target_roles"`
	CreatedBy      uint   `json:"created_by"`
}

type SubmissionReceivedEvent struct {
	SubmissionID    uint      `json:"submission_id"`
	AssignmentID    uint      `json:"assignment_id"`
	AssignmentTitle string    `json:"assignment_title"`
	StudentID       uint      `json:"student_id"`
	SubmittedAt     time.Time `json:"submitted_at"`
}

type SubmissionGradedEvent struct {
	SubmissionID    uint      `json:"submission_id"`
	AssignmentID    uint      `json:"assignment_id"`
	AssignmentTitle string    `json:"assignment_title"`
	StudentID       uint      `json:"student_id"`
	MarksObtained   *int      `json:"marks_obtained,omitempty"`
	MaxMarks        int       `json:"max_marks"`
	GradedBy        uint      `json:"graded_by"`
	GradedAt        time.Time `json:"graded_at"`
}

type FeedbackRespondedEvent struct {
	FeedbackID  uint      `json:"feedback_id"`
	Subject     string    `json:"subject"`
	SubmittedBy uint      `json:"submitted_by"`
	RespondedBy uint      `json:"responded_by"`
	RespondedAt time.Time `json:"responded_at"`
}

// ===== EVENT CONSTRUCTORS =====

func NewAnnouncementPublishedEvent(a *models.Announcement) *NotificationEvent {
	return newEvent(EventAnnouncementPublished, AnnouncementPublishedEvent{
		AnnouncementID: a.ID,
		Title:          a.Title,
		TargetRoles:    a.TargetRoles,
		CreatedBy:      a.CreatedByID,
	})
}

func NewSubmissionReceivedEvent(sub *models.Submission, assignment *models.Assignment) *NotificationEvent {
	return newEvent(EventSubmissionReceived, SubmissionReceivedEvent{
		SubmissionID:    sub.ID,
		AssignmentID:    assignment.ID,
		AssignmentTitle: assignment.Title,
		StudentID:       sub.StudentID,
		SubmittedAt:     sub.SubmittedAt,
	})
}

func NewSubmissionGradedEvent(sub *models.Submission, assignment *models.Assignment) *NotificationEvent {
	var gradedBy uint
	if sub.GradedByID != nil {
		gradedBy = *sub.GradedByID
	}
	var gradedAt time.Time
	if sub.GradedAt != nil {
		gradedAt = *sub.GradedAt
	}
	return newEvent(EventSubmissionGraded, SubmissionGradedEvent{
		SubmissionID:    sub.ID,
		AssignmentID:    assignment.ID,
		AssignmentTitle: assignment.Title,
		StudentID:       sub.StudentID,
		MarksObtained:   sub.MarksObtained,
		MaxMarks:        assignment.MaxMarks,
		GradedBy:        gradedBy,
		GradedAt:        gradedAt,
	})
}

func NewFeedbackRespondedEvent(fb *models.Feedback) *NotificationEvent {
	var respondedBy uint
	if fb.RespondedByID != nil {
		respondedBy = *fb.RespondedByID
	}
	var respondedAt time.Time
	if fb.RespondedAt != nil {
		respondedAt = *fb.RespondedAt
	}
	return newEvent(EventFeedbackResponded, FeedbackRespondedEvent{
		FeedbackID:  fb.ID,
		Subject:     fb.Subject,
		SubmittedBy: fb.SubmittedByID,
		RespondedBy: respondedBy,
		RespondedAt: respondedAt,
	})
}
