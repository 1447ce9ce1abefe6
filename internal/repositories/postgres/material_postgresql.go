package postgres

import (
	"context"

	"github.com/AEP-2025/lms-service/internal/models"
	"gorm.io/gorm"
)

type MaterialPostgreSQL struct {
	db *gorm.DB
}

func (m *MaterialPostgreSQL) Create(ctx context.Context, material *models.CourseMaterial) error {
	return m.db.WithContext(ctx).Create(material).Error
}

func (m *MaterialPostgreSQL) GetByID(ctx context.Context, id uint) (*models.CourseMaterial, error) {
	var material models.CourseMaterial
	err := m.db.WithContext(ctx).
		Preload("Course").
		First(&material, id).Error
	if err != nil {
		return nil, err
	}
	return &material, nil
}

func (m *MaterialPostgreSQL) Update(ctx context.Context, material *models.CourseMaterial) error {
	return m.db.WithContext(ctx).Save(material).Error
}

func (m *MaterialPostgreSQL) Delete(ctx context.Context, id uint) error {
	return m.db.WithContext(ctx).Delete(&models.CourseMaterial{}, id).Error
}

func (m *MaterialPostgreSQL) ListByCourse(ctx context.Context, courseID uint) ([]*models.CourseMaterial, error) {
	var materials []*models.CourseMaterial
	err := m.db.WithContext(ctx).
		Where("course_id = ?", courseID).
		Order("material_order ASC, created_at DESC").
		Find(&materials).Error
	return materials, err
}
