package postgres

import (
	"context"

	"github.com/AEP-2025/lms-service/internal/models"
	"gorm.io/gorm"
)

type LessonPostgreSQL struct {
	db *gorm.DB
}

func (l *LessonPostgreSQL) Create(ctx context.Context, lesson *models.Lesson) error {
	return l.db.WithContext(ctx).Create(lesson).Error
}

func (l *LessonPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Lesson, error) {
	var lesson models.Lesson
	err := l.db.WithContext(ctx).
		Preload("Course").
		First(&lesson, id).Error
	if err != nil {
		return nil, err
	}
	return &lesson, nil
}

func (l *LessonPostgreSQL) Update(ctx context.Context, lesson *models.Lesson) error {
	return l.db.WithContext(ctx).Save(lesson).Error
}

func (l *LessonPostgreSQL) Delete(ctx context.Context, id uint) error {
	return l.db.WithContext(ctx).Delete(&models.Lesson{}, id).Error
}

func (l *LessonPostgreSQL) ListByCourse(ctx context.Context, courseID uint) ([]*models.Lesson, error) {
	var lessons []*models.Lesson
	err := l.db.WithContext(ctx).
		Where("course_id = ?", courseID).
		Order("lesson_order ASC, created_at ASC").
		Find(&lessons).Error
	return lessons, err
}

func (l *LessonPostgreSQL) CountByTeacher(ctx context.Context, teacherID uint) (int64, error) {
	var count int64
	err := l.db.WithContext(ctx).Model(&models.Lesson{}).
		Joins("JOIN courses ON courses.id = lessons.course_id").
		Where("courses.teacher_id = ?", teacherID).
		Count(&count).Error
	return count, err
}
