package repositories

import (
	"context"

	"github.com/AEP-2025/lms-service/internal/models"
)

type FeedbackRepository interface {
	Create(ctx context.Context, feedback *models.Feedback) error
	GetByID(ctx context.Context, id uint) (*models.Feedback, error)
	Update(ctx context.Context, feedback *models.Feedback) error

	List(ctx context.Context, filters FeedbackFilters) ([]*models.Feedback, error)
}

type ComplianceRepository interface {
	Create(ctx context.Context, report *models.ComplianceReport) error
	GetByID(ctx context.Context, id uint) (*models.ComplianceReport, error)
	List(ctx context.Context) ([]*models.ComplianceReport, error)

	// BulkUpdateStatus is the admin shortcut that only flips the
	// accessibility status. Returns the rows affected.
	BulkUpdateStatus(ctx context.Context, ids []uint, status models.ComplianceStatus) (int64, error)
}

type ConductRepository interface {
	Create(ctx context.Context, report *models.ConductReport) error
	ListByStudent(ctx context.Context, studentID uint) ([]*models.ConductReport, error)
	ListByCourse(ctx context.Context, courseID uint) ([]*models.ConductReport, error)
}
