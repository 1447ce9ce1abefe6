package postgres

import (
	"context"

	"github.com/AEP-2025/lms-service/internal/models"
	"gorm.io/gorm"
)

type CompliancePostgreSQL struct {
	db *gorm.DB
}

func (c *CompliancePostgreSQL) Create(ctx context.Context, report *models.ComplianceReport) error {
	return c.db.WithContext(ctx).Create(report).Error
}

func (c *CompliancePostgreSQL) GetByID(ctx context.Context, id uint) (*models.ComplianceReport, error) {
	var report models.ComplianceReport
	err := c.db.WithContext(ctx).
		Preload("ReportedBy").
		First(&report, id).Error
	if err != nil {
		return nil, err
	}
	return &report, nil
}

func (c *CompliancePostgreSQL) List(ctx context.Context) ([]*models.ComplianceReport, error) {
	var reports []*models.ComplianceReport
	err := c.db.WithContext(ctx).
		Preload("ReportedBy").
		Order("created_at DESC").
		Find(&reports).Error
	return reports, err
}

func (c *CompliancePostgreSQL) BulkUpdateStatus(ctx context.Context, ids []uint, status models.ComplianceStatus) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := c.db.WithContext(ctx).Model(&models.ComplianceReport{}).
		Where("id IN ?", ids).
		Update("accessibility_status", status)
	return result.RowsAffected, result.Error
}
