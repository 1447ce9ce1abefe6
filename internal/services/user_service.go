package services

import (
	"context"
	"fmt"

	"github.com/AEP-2025/lms-service/internal/auth"
	apperrors "github.com/AEP-2025/lms-service/internal/errors"
	"github.com/AEP-2025/lms-service/internal/models"
	"github.com/AEP-2025/lms-service/internal/repositories"
	"github.com/AEP-2025/lms-service/internal/utils"
	"github.com/AEP-2025/lms-service/internal/validator"
)

// UserService covers admin user management and per-user profile settings.
type UserService interface {
	// Admin user management
	Create(ctx context.Context, actorRole models.Role, req *CreateUserRequest) (*models.User, error)
	List(ctx context.Context, actorRole models.Role, filters repositories.UserFilters) ([]*models.User, int64, error)
	Get(ctx context.Context, actorID uint, actorRole models.Role, userID uint) (*models.User, error)
	Update(ctx context.Context, actorRole models.Role, userID uint, req *UpdateUserRequest) (*models.User, error)
	Delete(ctx context.Context, actorRole models.Role, userID uint) error

	// Profile settings (self-service)
	GetProfile(ctx context.Context, userID uint) (*models.Profile, error)
	UpdateProfile(ctx context.Context, userID uint, req *UpdateProfileRequest) (*models.Profile, error)

	// Accessibility quick toggles
	SetFontSize(ctx context.Context, userID uint, size models.FontSize) error
	SetHighContrast(ctx context.Context, userID uint, enabled bool) error
}

type userService struct {
	repo      repositories.Repository
	validator *validator.Validator
	logger    utils.Logger
}

func NewUserService(repo repositories.Repository, v *validator.Validator, logger utils.Logger) UserService {
	return &userService{repo: repo, validator: v, logger: logger}
}

type CreateUserRequest struct {
	Username  string `json:"username" validate:"required,min=1,max=150,alphanum"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	FirstName string `json:"first_name" validate:"omitempty,max=100"`
	LastName  string `json:"last_name" validate:"omitempty,max=100"`
	Role      string `json:"role" validate:"required,user_role"`

	LinkedStudentID *uint `json:"linked_student_id"`
}

type UpdateUserRequest struct {
	Email     *string `json:"email" validate:"omitempty,email"`
	FirstName *string `json:"first_name" validate:"omitempty,max=100"`
	LastName  *string `json:"last_name" validate:"omitempty,max=100"`
	IsActive  *bool   `json:"is_active"`
}

type UpdateProfileRequest struct {
	Phone                  *string `json:"phone" validate:"omitempty,max=15"`
	Address                *string `json:"address" validate:"omitempty,max=1000"`
	DisabilityType         *string `json:"disability_type" validate:"omitempty,oneof=none visual hearing mobility learning multiple"`
	AssistanceRequired     *string `json:"assistance_required"`
	PreferredContentFormat *string `json:"preferred_content_format" validate:"omitempty,oneof=text audio video mixed"`
	HighContrastMode       *bool   `json:"high_contrast_mode"`
	FontSize               *string `json:"font_size" validate:"omitempty,font_size"`
	NotificationPrefs      []byte  `json:"notification_prefs"`
}

// ===== ADMIN USER MANAGEMENT =====

// Create provisions an account with any role, including admin. Unlike
// self-registration this path is restricted to user managers.
func (s *userService) Create(ctx context.Context, actorRole models.Role, req *CreateUserRequest) (*models.User, error) {
	if !Can(actorRole, ActionManageUsers) {
		return nil, ErrForbidden
	}
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, apperrors.ToValidationErrors(err)
	}

	role, err := models.ParseRole(req.Role)
	if err != nil {
		return nil, ErrInvalidRole
	}

	if taken, err := s.repo.User().ExistsByUsername(ctx, req.Username); err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	} else if taken {
		return nil, ErrDuplicateUsername
	}
	if taken, err := s.repo.User().ExistsByEmail(ctx, req.Email); err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	} else if taken {
		return nil, ErrDuplicateEmail
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, ValidationErrors{*NewValidationError("password", err.Error(), nil)}
	}

	user := &models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		IsActive:     true,
	}

	err = s.repo.InTx(ctx, func(tx repositories.Repository) error {
		if err := tx.User().Create(ctx, user); err != nil {
			if repositories.IsDuplicateError(err) {
				return ErrDuplicateUsername
			}
			return fmt.Errorf("failed to create user: %w", err)
		}
		profile := &models.Profile{
			UserID:          user.ID,
			Role:            role,
			LinkedStudentID: req.LinkedStudentID,
		}
		if err := tx.Profile().Create(ctx, profile); err != nil {
			return fmt.Errorf("failed to create profile: %w", err)
		}
		user.Profile = profile
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "user created",
		"user_id", user.ID, "username", user.Username, "role", role)
	return user, nil
}

func (s *userService) List(ctx context.Context, actorRole models.Role, filters repositories.UserFilters) ([]*models.User, int64, error) {
	if !Can(actorRole, ActionManageUsers) {
		return nil, 0, ErrForbidden
	}
	return s.repo.User().List(ctx, filters)
}

func (s *userService) Get(ctx context.Context, actorID uint, actorRole models.Role, userID uint) (*models.User, error) {
	// Admins can inspect anyone, everyone else only themselves.
	if actorID != userID && !Can(actorRole, ActionManageUsers) {
		return nil, ErrForbidden
	}
	user, err := s.repo.User().GetByID(ctx, userID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return user, nil
}

func (s *userService) Update(ctx context.Context, actorRole models.Role, userID uint, req *UpdateUserRequest) (*models.User, error) {
	if !Can(actorRole, ActionManageUsers) {
		return nil, ErrForbidden
	}
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, apperrors.ToValidationErrors(err)
	}

	user, err := s.repo.User().GetByID(ctx, userID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if req.Email != nil && *req.Email != user.Email {
		taken, err := s.repo.User().ExistsByEmail(ctx, *req.Email)
		if err != nil {
			return nil, fmt.Errorf("failed to check email: %w", err)
		}
		if taken {
			return nil, ErrDuplicateEmail
		}
		user.Email = *req.Email
	}
	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}

	if err := s.repo.User().Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

func (s *userService) Delete(ctx context.Context, actorRole models.Role, userID uint) error {
	if !Can(actorRole, ActionManageUsers) {
		return ErrForbidden
	}
	if _, err := s.repo.User().GetByID(ctx, userID); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to load user: %w", err)
	}
	if err := s.repo.User().Delete(ctx, userID); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	s.logger.InfoContext(ctx, "user deleted", "user_id", userID)
	return nil
}

// ===== PROFILE SETTINGS =====

func (s *userService) GetProfile(ctx context.Context, userID uint) (*models.Profile, error) {
	profile, err := s.repo.Profile().GetByUserID(ctx, userID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	return profile, nil
}

// UpdateProfile applies self-service settings. The role field is deliberately
// not editable here.
func (s *userService) UpdateProfile(ctx context.Context, userID uint, req *UpdateProfileRequest) (*models.Profile, error) {
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, apperrors.ToValidationErrors(err)
	}

	profile, err := s.repo.Profile().GetByUserID(ctx, userID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	if req.Phone != nil {
		profile.Phone = req.Phone
	}
	if req.Address != nil {
		profile.Address = req.Address
	}
	if req.DisabilityType != nil {
		profile.DisabilityType = models.DisabilityType(*req.DisabilityType)
	}
	if req.AssistanceRequired != nil {
		profile.AssistanceRequired = req.AssistanceRequired
	}
	if req.PreferredContentFormat != nil {
		profile.PreferredContentFormat = models.ContentFormat(*req.PreferredContentFormat)
	}
	if req.HighContrastMode != nil {
		profile.HighContrastMode = *req.HighContrastMode
	}
	if req.FontSize != nil {
		profile.FontSize = models.FontSize(*req.FontSize)
	}
	if req.NotificationPrefs != nil {
		profile.NotificationPrefs = req.NotificationPrefs
	}

	if err := s.repo.Profile().Update(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return profile, nil
}

func (s *userService) SetFontSize(ctx context.Context, userID uint, size models.FontSize) error {
	switch size {
	case models.FontSizeSmall, models.FontSizeMedium, models.FontSizeLarge:
	default:
		return ValidationErrors{*NewValidationError("font_size", "must be small, medium, or large", string(size))}
	}
	return s.repo.Profile().UpdateFontSize(ctx, userID, size)
}

func (s *userService) SetHighContrast(ctx context.Context, userID uint, enabled bool) error {
	return s.repo.Profile().UpdateHighContrast(ctx, userID, enabled)
}
