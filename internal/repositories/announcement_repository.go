package repositories

import (
	"context"

	"github.com/AEP-2025/lms-service/internal/models"
)

type AnnouncementRepository interface {
	Create(ctx context.Context, announcement *models.Announcement) error
	GetByID(ctx context.Context, id uint) (*models.Announcement, error)
	Update(ctx context.Context, announcement *models.Announcement) error
	Delete(ctx context.Context, id uint) error

	// ListAll returns every announcement, newest first (admin listing).
	ListAll(ctx context.Context) ([]*models.Announcement, error)

	// ListActive returns active announcements, newest first; role visibility
	// is applied by the service since the audience selector is a parsed set.
	ListActive(ctx context.Context) ([]*models.Announcement, error)

	ListActiveByCreator(ctx context.Context, creatorID uint, limit int) ([]*models.Announcement, error)
}
