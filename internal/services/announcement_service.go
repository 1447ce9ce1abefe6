package services

import (
	"context"
	"fmt"

	apperrors "github.com/AEP-2025/lms-service/internal/errors"
	"github.com/AEP-2025/lms-service/internal/events"
	"github.com/AEP-2025/lms-service/internal/models"
	"github.com/AEP-2025/lms-service/internal/repositories"
	"github.com/AEP-2025/lms-service/internal/utils"
	"github.com/AEP-2025/lms-service/internal/validator"
)

// AnnouncementService manages role-targeted announcements. A viewer sees an
// active announcement only when their role is a member of its audience set;
// admins see everything.
type AnnouncementService interface {
	Create(ctx context.Context, actorID uint, actorRole models.Role, req *CreateAnnouncementRequest) (*models.Announcement, error)
	Update(ctx context.Context, actorID uint, actorRole models.Role, announcementID uint, req *UpdateAnnouncementRequest) (*models.Announcement, error)
	Delete(ctx context.Context, actorID uint, actorRole models.Role, announcementID uint) error

	// ListVisible returns the announcements the viewer's role may see.
	ListVisible(ctx context.Context, actorRole models.Role) ([]*models.Announcement, error)
}

type announcementService struct {
	repo      repositories.Repository
	publisher events.EventPublisher
	validator *validator.Validator
	logger    utils.Logger
}

func NewAnnouncementService(repo repositories.Repository, publisher events.EventPublisher, v *validator.Validator, logger utils.Logger) AnnouncementService {
	return &announcementService{repo: repo, publisher: publisher, validator: v, logger: logger}
}

type CreateAnnouncementRequest struct {
	Title       string `json:"title" validate:"required,min=1,max=200"`
	Content     string `json:"content" validate:"required"`
	TargetRoles string `json:"target_roles" validate:"omitempty,target_roles"`
}

type UpdateAnnouncementRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=1,max=200"`
	Content     *string `json:"content" validate:"omitempty"`
	TargetRoles *string `json:"target_roles" validate:"omitempty,target_roles"`
	IsActive    *bool   `json:"is_active"`
}

// canEdit allows the creator or an admin to modify an announcement.
func canEdit(actorID uint, actorRole models.Role, a *models.Announcement) bool {
	return actorRole == models.RoleAdmin || a.CreatedByID == actorID
}

func (s *announcementService) Create(ctx context.Context, actorID uint, actorRole models.Role, req *CreateAnnouncementRequest) (*models.Announcement, error) {
	if !Can(actorRole, ActionManageAnnouncement) {
		return nil, ErrForbidden
	}
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, apperrors.ToValidationErrors(err)
	}

	targetRoles := req.TargetRoles
	if targetRoles == "" {
		targetRoles = models.TargetAll
	}

	announcement := &models.Announcement{
		Title:       req.Title,
		Content:     req.Content,
		CreatedByID: actorID,
		TargetRoles: targetRoles,
		IsActive:    true,
	}
	if err := s.repo.Announcement().Create(ctx, announcement); err != nil {
		return nil, fmt.Errorf("failed to create announcement: %w", err)
	}

	if err := s.publisher.PublishNotificationEvent(ctx,
		events.NewAnnouncementPublishedEvent(announcement)); err != nil {
		s.logger.Warn("failed to publish announcement event",
			"announcement_id", announcement.ID, "error", err)
	}

	s.logger.InfoContext(ctx, "announcement published",
		"announcement_id", announcement.ID, "target_roles", announcement.TargetRoles)
	return announcement, nil
}

func (s *announcementService) Update(ctx context.Context, actorID uint, actorRole models.Role, announcementID uint, req *UpdateAnnouncementRequest) (*models.Announcement, error) {
	if !Can(actorRole, ActionManageAnnouncement) {
		return nil, ErrForbidden
	}
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, apperrors.ToValidationErrors(err)
	}

	announcement, err := s.repo.Announcement().GetByID(ctx, announcementID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrAnnouncementNotFound
		}
		return nil, fmt.Errorf("failed to load announcement: %w", err)
	}
	if !canEdit(actorID, actorRole, announcement) {
		return nil, NewPermissionError(actorID, announcementID, "announcement", "update", "not the creator")
	}

	if req.Title != nil {
		announcement.Title = *req.Title
	}
	if req.Content != nil {
		announcement.Content = *req.Content
	}
	if req.TargetRoles != nil {
		announcement.TargetRoles = *req.TargetRoles
	}
	if req.IsActive != nil {
		announcement.IsActive = *req.IsActive
	}

	if err := s.repo.Announcement().Update(ctx, announcement); err != nil {
		return nil, fmt.Errorf("failed to update announcement: %w", err)
	}
	return announcement, nil
}

func (s *announcementService) Delete(ctx context.Context, actorID uint, actorRole models.Role, announcementID uint) error {
	if !Can(actorRole, ActionManageAnnouncement) {
		return ErrForbidden
	}
	announcement, err := s.repo.Announcement().GetByID(ctx, announcementID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrAnnouncementNotFound
		}
		return fmt.Errorf("failed to load announcement: %w", err)
	}
	if !canEdit(actorID, actorRole, announcement) {
		return NewPermissionError(actorID, announcementID, "announcement", "delete", "not the creator")
	}
	if err := s.repo.Announcement().Delete(ctx, announcementID); err != nil {
		return fmt.Errorf("failed to delete announcement: %w", err)
	}
	return nil
}

func (s *announcementService) ListVisible(ctx context.Context, actorRole models.Role) ([]*models.Announcement, error) {
	// Admins see the full list, inactive announcements included.
	if actorRole == models.RoleAdmin {
		return s.repo.Announcement().ListAll(ctx)
	}

	active, err := s.repo.Announcement().ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load announcements: %w", err)
	}
	visible := make([]*models.Announcement, 0, len(active))
	for _, a := range active {
		if a.VisibleTo(actorRole) {
			visible = append(visible, a)
		}
	}
	return visible, nil
}
