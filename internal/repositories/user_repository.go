package repositories

import (
	"context"

	"github.com/AEP-2025/lms-service/internal/models"
)

// UserRepository covers account records. Password hashing lives in the auth
// package; only the finished hash passes through here.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error) // preloads Profile
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uint) error

	List(ctx context.Context, filters UserFilters) ([]*models.User, int64, error)

	// Validation helpers
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	HasRole(ctx context.Context, id uint, role models.Role) (bool, error)

	// CountStudents reports how many of the given user IDs belong to users
	// whose profile role is student. Used to validate enrollment sets.
	CountStudents(ctx context.Context, ids []uint) (int64, error)
}

// ProfileRepository covers the per-user role and accessibility preferences.
type ProfileRepository interface {
	Create(ctx context.Context, profile *models.Profile) error
	GetByUserID(ctx context.Context, userID uint) (*models.Profile, error)
	Update(ctx context.Context, profile *models.Profile) error

	// Accessibility preference shortcuts used by the JSON endpoints.
	UpdateFontSize(ctx context.Context, userID uint, size models.FontSize) error
	UpdateHighContrast(ctx context.Context, userID uint, enabled bool) error
}
