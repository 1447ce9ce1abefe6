package postgres

import (
	"context"

	"github.com/AEP-2025/lms-service/internal/models"
	"gorm.io/gorm"
)

type AssignmentPostgreSQL struct {
	db *gorm.DB
}

func (a *AssignmentPostgreSQL) Create(ctx context.Context, assignment *models.Assignment) error {
	return a.db.WithContext(ctx).Create(assignment).Error
}

func (a *AssignmentPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Assignment, error) {
	var assignment models.Assignment
	err := a.db.WithContext(ctx).
		Preload("Course").
		First(&assignment, id).Error
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

func (a *AssignmentPostgreSQL) Update(ctx context.Context, assignment *models.Assignment) error {
	return a.db.WithContext(ctx).Save(assignment).Error
}

func (a *AssignmentPostgreSQL) Delete(ctx context.Context, id uint) error {
	return a.db.WithContext(ctx).Delete(&models.Assignment{}, id).Error
}

func (a *AssignmentPostgreSQL) ListByCourse(ctx context.Context, courseID uint) ([]*models.Assignment, error) {
	var assignments []*models.Assignment
	err := a.db.WithContext(ctx).
		Where("course_id = ?", courseID).
		Order("due_date ASC").
		Find(&assignments).Error
	return assignments, err
}

func (a *AssignmentPostgreSQL) ListPendingForStudent(ctx context.Context, studentID uint) ([]*models.Assignment, error) {
	var assignments []*models.Assignment
	err := a.db.WithContext(ctx).
		Preload("Course").
		Joins("JOIN course_students ON course_students.course_id = assignments.course_id").
		Where("course_students.user_id = ?", studentID).
		Where("assignments.id NOT IN (?)",
			a.db.Model(&models.Submission{}).
				Select("assignment_id").
				Where("student_id = ?", studentID)).
		Order("assignments.due_date ASC").
		Find(&assignments).Error
	return assignments, err
}

func (a *AssignmentPostgreSQL) CountByCreator(ctx context.Context, creatorID uint) (int64, error) {
	var count int64
	err := a.db.WithContext(ctx).Model(&models.Assignment{}).
		Where("created_by_id = ?", creatorID).
		Count(&count).Error
	return count, err
}
