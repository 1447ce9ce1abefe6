package postgres

import (
	"context"

	"github.com/AEP-2025/lms-service/internal/models"
	"gorm.io/gorm"
)

type AnnouncementPostgreSQL struct {
	db *gorm.DB
}

func (a *AnnouncementPostgreSQL) Create(ctx context.Context, announcement *models.Announcement) error {
	return a.db.WithContext(ctx).Create(announcement).Error
}

func (a *AnnouncementPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Announcement, error) {
	var announcement models.Announcement
	err := a.db.WithContext(ctx).
		Preload("CreatedBy").
		First(&announcement, id).Error
	if err != nil {
		return nil, err
	}
	return &announcement, nil
}

func (a *AnnouncementPostgreSQL) Update(ctx context.Context, announcement *models.Announcement) error {
	return a.db.WithContext(ctx).Save(announcement).Error
}

func (a *AnnouncementPostgreSQL) Delete(ctx context.Context, id uint) error {
	return a.db.WithContext(ctx).Delete(&models.Announcement{}, id).Error
}

func (a *AnnouncementPostgreSQL) ListAll(ctx context.Context) ([]*models.Announcement, error) {
	var announcements []*models.Announcement
	err := a.db.WithContext(ctx).
		Preload("CreatedBy").
		Order("created_at DESC").
		Find(&announcements).Error
	return announcements, err
}

func (a *AnnouncementPostgreSQL) ListActive(ctx context.Context) ([]*models.Announcement, error) {
	var announcements []*models.Announcement
	err := a.db.WithContext(ctx).
		Preload("CreatedBy").
		Where("is_active = ?", true).
		Order("created_at DESC").
		Find(&announcements).Error
	return announcements, err
}

func (a *AnnouncementPostgreSQL) ListActiveByCreator(ctx context.Context, creatorID uint, limit int) ([]*models.Announcement, error) {
	query := a.db.WithContext(ctx).
		Where("created_by_id = ? AND is_active = ?", creatorID, true).
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	var announcements []*models.Announcement
	err := query.Find(&announcements).Error
	return announcements, err
}
