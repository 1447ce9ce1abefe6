package services

import (
	"context"
	"fmt"
	"time"

	"github.com/AEP-2025/lms-service/internal/auth"
	"github.com/AEP-2025/lms-service/internal/cache"
	apperrors "github.com/AEP-2025/lms-service/internal/errors"
	"github.com/AEP-2025/lms-service/internal/models"
	"github.com/AEP-2025/lms-service/internal/repositories"
	"github.com/AEP-2025/lms-service/internal/utils"
	"github.com/AEP-2025/lms-service/internal/validator"
)

// AuthService handles registration, login and session lifecycle.
type AuthService interface {
	Register(ctx context.Context, req *RegisterRequest) (*models.User, error)
	Login(ctx context.Context, req *LoginRequest) (*LoginResult, error)
	Logout(ctx context.Context, tokenID string) error

	// EnsureProfile guarantees the user has a profile row, creating one
	// when missing: admin for superusers, student otherwise. Idempotent.
	EnsureProfile(ctx context.Context, userID uint) (*models.Profile, error)
}

type authService struct {
	repo      repositories.Repository
	tokens    *auth.TokenService
	cache     cache.CacheService
	validator *validator.Validator
	logger    utils.Logger
}

func NewAuthService(
	repo repositories.Repository,
	tokens *auth.TokenService,
	cacheSvc cache.CacheService,
	v *validator.Validator,
	logger utils.Logger,
) AuthService {
	return &authService{
		repo:      repo,
		tokens:    tokens,
		cache:     cacheSvc,
		validator: v,
		logger:    logger,
	}
}

type RegisterRequest struct {
	Username  string `json:"username" validate:"required,min=1,max=150,alphanum"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	FirstName string `json:"first_name" validate:"omitempty,max=100"`
	LastName  string `json:"last_name" validate:"omitempty,max=100"`
	Role      string `json:"role" validate:"required,user_role"`

	// Parent registrations may link the account to a student.
	LinkedStudentID *uint `json:"linked_student_id"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResult struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      *models.User `json:"user"`
	Role      models.Role  `json:"role"`
}

// ===== REGISTRATION =====

// Register creates the user and its role profile in one transaction, so a
// user row can never exist without its profile.
func (s *authService) Register(ctx context.Context, req *RegisterRequest) (*models.User, error) {
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, apperrors.ToValidationErrors(err)
	}

	role, err := models.ParseRole(req.Role)
	if err != nil {
		return nil, ErrInvalidRole
	}
	// Admin accounts are provisioned through user management, never
	// self-registered.
	if role == models.RoleAdmin {
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

	s.logger.InfoContext(ctx, "user registered",
		"user_id", user.ID, "username", user.Username, "role", role)
	return user, nil
}

// ===== SESSIONS =====

func (s *authService) Login(ctx context.Context, req *LoginRequest) (*LoginResult, error) {
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, apperrors.ToValidationErrors(err)
	}

	user, err := s.repo.User().GetByUsername(ctx, req.Username)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if !user.IsActive {
		return nil, ErrAccountDisabled
	}
	if err := auth.CheckPassword(req.Password, user.PasswordHash); err != nil {
		return nil, ErrInvalidCredentials
	}

	// Accounts created outside the registration flow may lack a profile.
	if user.Profile == nil {
		profile, err := s.EnsureProfile(ctx, user.ID)
		if err != nil {
			return nil, err
		}
		user.Profile = profile
	}

	token, _, expiresAt, err := s.tokens.IssueToken(user.ID, user.Profile.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to issue session token: %w", err)
	}

	s.logger.InfoContext(ctx, "user logged in",
		"user_id", user.ID, "role", user.Profile.Role)

	return &LoginResult{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      user,
		Role:      user.Profile.Role,
	}, nil
}

// Logout revokes the session token by recording its ID until the token would
// have expired anyway.
func (s *authService) Logout(ctx context.Context, tokenID string) error {
	if tokenID == "" {
		return nil
	}
	key := auth.RevokedSessionKey(tokenID)
	if err := s.cache.Set(ctx, key, true, 24*time.Hour); err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	return nil
}

func (s *authService) EnsureProfile(ctx context.Context, userID uint) (*models.Profile, error) {
	profile, err := s.repo.Profile().GetByUserID(ctx, userID)
	if err == nil {
		return profile, nil
	}
	if !repositories.IsNotFoundError(err) {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	user, err := s.repo.User().GetByID(ctx, userID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	role := models.RoleStudent
	if user.IsSuperuser {
		role = models.RoleAdmin
	}

	profile = &models.Profile{
		UserID: userID,
		Role:   role,
	}
	if err := s.repo.Profile().Create(ctx, profile); err != nil {
		// Lost a race with a concurrent creator; the existing row wins.
		if repositories.IsDuplicateError(err) {
			return s.repo.Profile().GetByUserID(ctx, userID)
		}
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	s.logger.InfoContext(ctx, "created missing profile", "user_id", userID, "role", role)
	return profile, nil
}
