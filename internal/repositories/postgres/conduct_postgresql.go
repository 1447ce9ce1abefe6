package postgres

import (
	"context"

	"github.com/AEP-2025/lms-service/internal/models"
	"gorm.io/gorm"
)

type ConductPostgreSQL struct {
	db *gorm.DB
}

func (c *ConductPostgreSQL) Create(ctx context.Context, report *models.ConductReport) error {
	return c.db.WithContext(ctx).Create(report).Error
}

func (c *ConductPostgreSQL) ListByStudent(ctx context.Context, studentID uint) ([]*models.ConductReport, error) {
	var reports []*models.ConductReport
	err := c.db.WithContext(ctx).
		Preload("Course").
		Preload("ReportedBy").
		Where("student_id = ?", studentID).
		Order("date DESC").
		Find(&reports).Error
	return reports, err
}

func (c *ConductPostgreSQL) ListByCourse(ctx context.Context, courseID uint) ([]*models.ConductReport, error) {
	var reports []*models.ConductReport
	err := c.db.WithContext(ctx).
		Preload("Student").
		Preload("ReportedBy").
		Where("course_id = ?", courseID).
		Order("date DESC").
		Find(&reports).Error
	return reports, err
}
