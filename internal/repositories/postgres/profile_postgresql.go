package postgres

import (
	"context"

	"github.com/AEP-2025/lms-service/internal/models"
	"gorm.io/gorm"
)

type ProfilePostgreSQL struct {
	db *gorm.DB
}

func (p *ProfilePostgreSQL) Create(ctx context.Context, profile *models.Profile) error {
	return p.db.WithContext(ctx).Create(profile).Error
}

func (p *ProfilePostgreSQL) GetByUserID(ctx context.Context, userID uint) (*models.Profile, error) {
	var profile models.Profile
	err := p.db.WithContext(ctx).
		Preload("LinkedStudent").
		Where("user_id = ?", userID).
		First(&profile).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (p *ProfilePostgreSQL) Update(ctx context.Context, profile *models.Profile) error {
	return p.db.WithContext(ctx).Save(profile).Error
}

func (p *ProfilePostgreSQL) UpdateFontSize(ctx context.Context, userID uint, size models.FontSize) error {
	return p.db.WithContext(ctx).Model(&models.Profile{}).
		Where("user_id = ?", userID).
		Update("font_size", size).Error
}

func (p *ProfilePostgreSQL) UpdateHighContrast(ctx context.Context, userID uint, enabled bool) error {
	return p.db.WithContext(ctx).Model(&models.Profile{}).
		Where("user_id = ?", userID).
		Update("high_contrast_mode", enabled).Error
}
