package postgres

import (
	"context"

	"github.com/AEP-2025/lms-service/internal/models"
	"github.com/AEP-2025/lms-service/internal/repositories"
	"gorm.io/gorm"
)

type FeedbackPostgreSQL struct {
	db *gorm.DB
}

func (f *FeedbackPostgreSQL) Create(ctx context.Context, feedback *models.Feedback) error {
	return f.db.WithContext(ctx).Create(feedback).Error
}

func (f *FeedbackPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Feedback, error) {
	var feedback models.Feedback
	err := f.db.WithContext(ctx).
		Preload("SubmittedBy").
		Preload("RespondedBy").
		First(&feedback, id).Error
	if err != nil {
		return nil, err
	}
	return &feedback, nil
}

func (f *FeedbackPostgreSQL) Update(ctx context.Context, feedback *models.Feedback) error {
	return f.db.WithContext(ctx).Save(feedback).Error
}

func (f *FeedbackPostgreSQL) List(ctx context.Context, filters repositories.FeedbackFilters) ([]*models.Feedback, error) {
	query := f.db.WithContext(ctx).Model(&models.Feedback{}).
		Preload("SubmittedBy").
		Preload("RespondedBy")

	if filters.SubmittedBy != nil {
		query = query.Where("submitted_by_id = ?", *filters.SubmittedBy)
	}
	if filters.Category != nil {
		query = query.Where("category = ?", *filters.Category)
	}
	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}
	if filters.Limit > 0 {
		query = query.Limit(filters.Limit).Offset(filters.Offset)
	}

	var entries []*models.Feedback
	err := query.Order("created_at DESC").Find(&entries).Error
	return entries, err
}
