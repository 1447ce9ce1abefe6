package postgres

import (
	"context"

	"github.com/AEP-2025/lms-service/internal/models"
	"github.com/AEP-2025/lms-service/internal/repositories"
	"gorm.io/gorm"
)

type CoursePostgreSQL struct {
	db *gorm.DB
}

func (c *CoursePostgreSQL) Create(ctx context.Context, course *models.Course) error {
	return c.db.WithContext(ctx).Create(course).Error
}

func (c *CoursePostgreSQL) GetByID(ctx context.Context, id uint) (*models.Course, error) {
	var course models.Course
	err := c.db.WithContext(ctx).
		Preload("Teacher").
		First(&course, id).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (c *CoursePostgreSQL) GetByIDWithDetails(ctx context.Context, id uint) (*models.Course, error) {
	var course models.Course
	err := c.db.WithContext(ctx).
		Preload("Teacher").
		Preload("Students").
		Preload("Students.Profile").
		First(&course, id).Error
	if err != nil {
		return nil, err
	}
	course.StudentCount = len(course.Students)
	return &course, nil
}

func (c *CoursePostgreSQL) Update(ctx context.Context, course *models.Course) error {
	return c.db.WithContext(ctx).Save(course).Error
}

func (c *CoursePostgreSQL) Delete(ctx context.Context, id uint) error {
	// Hard delete; lessons, materials, assignments and attendance cascade.
	return c.db.WithContext(ctx).Delete(&models.Course{}, id).Error
}

func (c *CoursePostgreSQL) List(ctx context.Context, filters repositories.CourseFilters) ([]*models.Course, int64, error) {
	query := c.db.WithContext(ctx).Model(&models.Course{}).Preload("Teacher")

	if filters.TeacherID != nil {
		query = query.Where("teacher_id = ?", *filters.TeacherID)
	}
	if filters.IsActive != nil {
		query = query.Where("is_active = ?", *filters.IsActive)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortBy := filters.SortBy
	switch sortBy {
	case "title", "course_code":
	default:
		sortBy = "created_at"
	}
	order := sortBy + " DESC"
	if filters.SortOrder == "asc" {
		order = sortBy + " ASC"
	}

	if filters.Limit > 0 {
		query = query.Limit(filters.Limit).Offset(filters.Offset)
	}

	var courses []*models.Course
	if err := query.Order(order).Find(&courses).Error; err != nil {
		return nil, 0, err
	}
	return courses, total, nil
}

func (c *CoursePostgreSQL) GetByTeacher(ctx context.Context, teacherID uint) ([]*models.Course, error) {
	var courses []*models.Course
	err := c.db.WithContext(ctx).
		Where("teacher_id = ?", teacherID).
		Order("created_at DESC").
		Find(&courses).Error
	return courses, err
}

func (c *CoursePostgreSQL) SetStudents(ctx context.Context, courseID uint, studentIDs []uint) error {
	students := make([]models.User, len(studentIDs))
	for i, id := range studentIDs {
		students[i] = models.User{ID: id}
	}
	course := models.Course{ID: courseID}
	return c.db.WithContext(ctx).Model(&course).Association("Students").Replace(students)
}

func (c *CoursePostgreSQL) GetStudents(ctx context.Context, courseID uint) ([]models.User, error) {
	course := models.Course{ID: courseID}
	var students []models.User
	err := c.db.WithContext(ctx).Model(&course).Association("Students").Find(&students)
	return students, err
}

func (c *CoursePostgreSQL) IsEnrolled(ctx context.Context, courseID, studentID uint) (bool, error) {
	var count int64
	err := c.db.WithContext(ctx).Table("course_students").
		Where("course_id = ? AND user_id = ?", courseID, studentID).
		Count(&count).Error
	return count > 0, err
}

func (c *CoursePostgreSQL) GetEnrolledCourses(ctx context.Context, studentID uint) ([]*models.Course, error) {
	var courses []*models.Course
	err := c.db.WithContext(ctx).
		Preload("Teacher").
		Joins("JOIN course_students ON course_students.course_id = courses.id").
		Where("course_students.user_id = ?", studentID).
		Order("courses.created_at DESC").
		Find(&courses).Error
	return courses, err
}

func (c *CoursePostgreSQL) ExistsByCode(ctx context.Context, code string, excludeID *uint) (bool, error) {
	query := c.db.WithContext(ctx).Model(&models.Course{}).Where("course_code = ?", code)
	if excludeID != nil {
		query = query.Where("id != ?", *excludeID)
	}
	var count int64
	err := query.Count(&count).Error
	return count > 0, err
}

func (c *CoursePostgreSQL) CountDistinctStudents(ctx context.Context, teacherID uint) (int64, error) {
	var count int64
	err := c.db.WithContext(ctx).Table("course_students").
		Joins("JOIN courses ON courses.id = course_students.course_id").
		Where("courses.teacher_id = ?", teacherID).
		Distinct("course_students.user_id").
		Count(&count).Error
	return count, err
}
