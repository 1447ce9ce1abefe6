package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/AEP-2025/lms-service/internal/models"
	"github.com/AEP-2025/lms-service/internal/repositories"
	"gorm.io/gorm"
)

type AttendancePostgreSQL struct {
	db *gorm.DB
}

// Upsert inserts the record and, when the unique (student, course, date)
// constraint fires, falls back to updating the existing row in the same
// transaction. Concurrent markers for the same key serialize on the
// constraint, so exactly one row survives with last-writer-wins fields.
func (a *AttendancePostgreSQL) Upsert(ctx context.Context, record *models.Attendance) (bool, error) {
	created := false
	err := a.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		insertErr := tx.Create(record).Error
		if insertErr == nil {
			created = true
			return nil
		}
		if !errors.Is(insertErr, gorm.ErrDuplicatedKey) {
			return insertErr
		}

		var existing models.Attendance
		if err := tx.
			Where("student_id = ? AND course_id = ? AND date = ?",
				record.StudentID, record.CourseID, record.Date).
			First(&existing).Error; err != nil {
			return err
		}

		existing.Status = record.Status
		existing.Remarks = record.Remarks
		existing.MarkedByID = record.MarkedByID
		if err := tx.Save(&existing).Error; err != nil {
			return err
		}
		*record = existing
		return nil
	})
	return created, err
}

func (a *AttendancePostgreSQL) List(ctx context.Context, filters repositories.AttendanceFilters) ([]*models.Attendance, error) {
	query := a.db.WithContext(ctx).Model(&models.Attendance{}).
		Preload("Student").
		Preload("Course")

	if filters.CourseID != nil {
		query = query.Where("attendance_records.course_id = ?", *filters.CourseID)
	}
	if filters.TeacherID != nil {
		query = query.Joins("JOIN courses ON courses.id = attendance_records.course_id").
			Where("courses.teacher_id = ?", *filters.TeacherID)
	}
	if filters.StudentID != nil {
		query = query.Where("attendance_records.student_id = ?", *filters.StudentID)
	}
	if filters.Date != nil {
		query = query.Where("attendance_records.date = ?", filters.Date.Format("2006-01-02"))
	}
	if filters.Status != nil {
		query = query.Where("attendance_records.status = ?", *filters.Status)
	}
	if filters.Limit > 0 {
		query = query.Limit(filters.Limit).Offset(filters.Offset)
	}

	var records []*models.Attendance
	err := query.Order("attendance_records.date DESC, attendance_records.id ASC").
		Find(&records).Error
	return records, err
}

func (a *AttendancePostgreSQL) CountByCourseAndDate(ctx context.Context, courseID uint, date time.Time) (int64, error) {
	var count int64
	err := a.db.WithContext(ctx).Model(&models.Attendance{}).
		Where("course_id = ? AND date = ?", courseID, date.Format("2006-01-02")).
		Count(&count).Error
	return count, err
}

func (a *AttendancePostgreSQL) CountsByTeacher(ctx context.Context, teacherID uint) (*repositories.AttendanceCounts, error) {
	rows := []struct {
		Status models.AttendanceStatus
		Count  int64
	}{}
	err := a.db.WithContext(ctx).Model(&models.Attendance{}).
		Select("attendance_records.status AS status, COUNT(*) AS count").
		Joins("JOIN courses ON courses.id = attendance_records.course_id").
		Where("courses.teacher_id = ?", teacherID).
		Group("attendance_records.status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := &repositories.AttendanceCounts{}
	for _, row := range rows {
		counts.Total += row.Count
		switch row.Status {
		case models.AttendancePresent:
			counts.Present = row.Count
		case models.AttendanceAbsent:
			counts.Absent = row.Count
		case models.AttendanceLate:
			counts.Late = row.Count
		}
	}
	return counts, nil
}

func (a *AttendancePostgreSQL) ListRecentByTeacher(ctx context.Context, teacherID uint, since time.Time, limit int) ([]*models.Attendance, error) {
	query := a.db.WithContext(ctx).Model(&models.Attendance{}).
		Preload("Student").
		Preload("Course").
		Joins("JOIN courses ON courses.id = attendance_records.course_id").
		Where("courses.teacher_id = ? AND attendance_records.date >= ?", teacherID, since.Format("2006-01-02")).
		Order("attendance_records.date DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	var records []*models.Attendance
	err := query.Find(&records).Error
	return records, err
}

func (a *AttendancePostgreSQL) ListForExport(ctx context.Context, courseID uint, from, to time.Time) ([]*models.Attendance, error) {
	var records []*models.Attendance
	err := a.db.WithContext(ctx).Model(&models.Attendance{}).
		Preload("Student").
		Preload("Course").
		Preload("MarkedBy").
		Where("course_id = ? AND date >= ? AND date <= ?",
			courseID, from.Format("2006-01-02"), to.Format("2006-01-02")).
		Order("date ASC, student_id ASC").
		Find(&records).Error
	return records, err
}
