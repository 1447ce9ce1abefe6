package services

import (
	"context"
	"fmt"
	"time"

	apperrors "github.com/AEP-2025/lms-service/internal/errors"
	"github.com/AEP-2025/lms-service/internal/events"
	"github.com/AEP-2025/lms-service/internal/models"
	"github.com/AEP-2025/lms-service/internal/repositories"
	"github.com/AEP-2025/lms-service/internal/utils"
	"github.com/AEP-2025/lms-service/internal/validator"
)

// FeedbackService handles user feedback and its responses. Any authenticated
// user may submit; admins and teachers respond, and responding is a one-time
// transition to addressed.
type FeedbackService interface {
	Submit(ctx context.Context, actorID uint, actorRole models.Role, req *SubmitFeedbackRequest) (*models.Feedback, error)
	Get(ctx context.Context, actorID uint, actorRole models.Role, feedbackID uint) (*models.Feedback, error)

	// List returns the actor's own feedback, or everything for admins.
	List(ctx context.Context, actorID uint, actorRole models.Role, filters repositories.FeedbackFilters) ([]*models.Feedback, error)

	Respond(ctx context.Context, actorID uint, actorRole models.Role, feedbackID uint, req *RespondFeedbackRequest) (*models.Feedback, error)
}

type feedbackService struct {
	repo      repositories.Repository
	publisher events.EventPublisher
	validator *validator.Validator
	logger    utils.Logger
}

func NewFeedbackService(repo repositories.Repository, publisher events.EventPublisher, v *validator.Validator, logger utils.Logger) FeedbackService {
	return &feedbackService{repo: repo, publisher: publisher, validator: v, logger: logger}
}

type SubmitFeedbackRequest struct {
	Subject  string `json:"subject" validate:"required,min=1,max=200"`
	Message  string `json:"message" validate:"required"`
	Category string `json:"category" validate:"omitempty,oneof=accessibility course technical suggestion other"`
}

type RespondFeedbackRequest struct {
	Response string `json:"response" validate:"required"`
}

func (s *feedbackService) Submit(ctx context.Context, actorID uint, actorRole models.Role, req *SubmitFeedbackRequest) (*models.Feedback, error) {
	if !Can(actorRole, ActionSubmitFeedback) {
		return nil, ErrForbidden
	}
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, apperrors.ToValidationErrors(err)
	}

	category := models.FeedbackCategory(req.Category)
	if req.Category == "" {
		category = models.FeedbackOther
	}

	feedback := &models.Feedback{
		SubmittedByID: actorID,
		Subject:       req.Subject,
		Message:       req.Message,
		Category:      category,
		Status:        models.FeedbackPending,
	}
	if err := s.repo.Feedback().Create(ctx, feedback); err != nil {
		return nil, fmt.Errorf("failed to create feedback: %w", err)
	}

	s.logger.InfoContext(ctx, "feedback submitted",
		"feedback_id", feedback.ID, "category", feedback.Category)
	return feedback, nil
}

func (s *feedbackService) Get(ctx context.Context, actorID uint, actorRole models.Role, feedbackID uint) (*models.Feedback, error) {
	feedback, err := s.repo.Feedback().GetByID(ctx, feedbackID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrFeedbackNotFound
		}
		return nil, fmt.Errorf("failed to load feedback: %w", err)
	}
	if actorRole != models.RoleAdmin && feedback.SubmittedByID != actorID {
		return nil, NewPermissionError(actorID, feedbackID, "feedback", "view", "not the submitter")
	}
	return feedback, nil
}

func (s *feedbackService) List(ctx context.Context, actorID uint, actorRole models.Role, filters repositories.FeedbackFilters) ([]*models.Feedback, error) {
	if actorRole != models.RoleAdmin {
		filters.SubmittedBy = &actorID
	}
	return s.repo.Feedback().List(ctx, filters)
}

// Respond records the answer and flips the status. The responded_at stamp is
// set here and never changed afterwards.
func (s *feedbackService) Respond(ctx context.Context, actorID uint, actorRole models.Role, feedbackID uint, req *RespondFeedbackRequest) (*models.Feedback, error) {
	if !Can(actorRole, ActionRespondFeedback) {
		return nil, ErrForbidden
	}
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, apperrors.ToValidationErrors(err)
	}

	feedback, err := s.repo.Feedback().GetByID(ctx, feedbackID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrFeedbackNotFound
		}
		return nil, fmt.Errorf("failed to load feedback: %w", err)
	}

	now := time.Now().UTC()
	response := req.Response
	feedback.Response = &response
	feedback.Status = models.FeedbackAddressed
	feedback.RespondedByID = &actorID
	if feedback.RespondedAt == nil {
		feedback.RespondedAt = &now
	}

	if err := s.repo.Feedback().Update(ctx, feedback); err != nil {
		return nil, fmt.Errorf("failed to respond to feedback: %w", err)
	}

	if err := s.publisher.PublishNotificationEvent(ctx,
		events.NewFeedbackRespondedEvent(feedback)); err != nil {
		s.logger.Warn("failed to publish feedback event",
			"feedback_id", feedback.ID, "error", err)
	}

	s.logger.InfoContext(ctx, "feedback responded",
		"feedback_id", feedback.ID, "responded_by", actorID)
	return feedback, nil
}
