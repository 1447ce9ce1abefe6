package postgres

import (
	"context"

	"github.com/AEP-2025/lms-service/internal/models"
	"gorm.io/gorm"
)

type SubmissionPostgreSQL struct {
	db *gorm.DB
}

func (s *SubmissionPostgreSQL) Create(ctx context.Context, submission *models.Submission) error {
	return s.db.WithContext(ctx).Create(submission).Error
}

func (s *SubmissionPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Submission, error) {
	var submission models.Submission
	err := s.db.WithContext(ctx).
		Preload("Assignment").
		Preload("Assignment.Course").
		Preload("Student").
		First(&submission, id).Error
	if err != nil {
		return nil, err
	}
	return &submission, nil
}

func (s *SubmissionPostgreSQL) GetByAssignmentAndStudent(ctx context.Context, assignmentID, studentID uint) (*models.Submission, error) {
	var submission models.Submission
	err := s.db.WithContext(ctx).
		Where("assignment_id = ? AND student_id = ?", assignmentID, studentID).
		First(&submission).Error
	if err != nil {
		return nil, err
	}
	return &submission, nil
}

func (s *SubmissionPostgreSQL) Update(ctx context.Context, submission *models.Submission) error {
	return s.db.WithContext(ctx).Save(submission).Error
}

func (s *SubmissionPostgreSQL) ListByAssignment(ctx context.Context, assignmentID uint) ([]*models.Submission, error) {
	var submissions []*models.Submission
	err := s.db.WithContext(ctx).
		Preload("Student").
		Where("assignment_id = ?", assignmentID).
		Order("submitted_at DESC").
		Find(&submissions).Error
	return submissions, err
}

func (s *SubmissionPostgreSQL) ListByStudent(ctx context.Context, studentID uint) ([]*models.Submission, error) {
	var submissions []*models.Submission
	err := s.db.WithContext(ctx).
		Preload("Assignment").
		Preload("Assignment.Course").
		Where("student_id = ?", studentID).
		Order("submitted_at DESC").
		Find(&submissions).Error
	return submissions, err
}

func (s *SubmissionPostgreSQL) ListPendingByTeacher(ctx context.Context, teacherID uint, limit int) ([]*models.Submission, error) {
	query := s.db.WithContext(ctx).
		Preload("Assignment").
		Preload("Student").
		Joins("JOIN assignments ON assignments.id = submissions.assignment_id").
		Where("assignments.created_by_id = ? AND submissions.status = ?", teacherID, models.SubmissionPending).
		Order("submissions.submitted_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	var submissions []*models.Submission
	err := query.Find(&submissions).Error
	return submissions, err
}

func (s *SubmissionPostgreSQL) BulkMarkGraded(ctx context.Context, ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := s.db.WithContext(ctx).Model(&models.Submission{}).
		Where("id IN ?", ids).
		Update("status", models.SubmissionGraded)
	return result.RowsAffected, result.Error
}

func (s *SubmissionPostgreSQL) CountByTeacherAndStatus(ctx context.Context, teacherID uint, status models.SubmissionStatus) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Submission{}).
		Joins("JOIN assignments ON assignments.id = submissions.assignment_id").
		Where("assignments.created_by_id = ? AND submissions.status = ?", teacherID, status).
		Count(&count).Error
	return count, err
}
