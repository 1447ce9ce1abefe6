package repositories

import (
	"context"

	"github.com/AEP-2025/lms-service/internal/models"
)

type CourseRepository interface {
	Create(ctx context.Context, course *models.Course) error
	GetByID(ctx context.Context, id uint) (*models.Course, error)            // preloads Teacher
	GetByIDWithDetails(ctx context.Context, id uint) (*models.Course, error) // + Students
	Update(ctx context.Context, course *models.Course) error
	Delete(ctx context.Context, id uint) error

	List(ctx context.Context, filters CourseFilters) ([]*models.Course, int64, error)
	GetByTeacher(ctx context.Context, teacherID uint) ([]*models.Course, error)

	// Enrollment management
	SetStudents(ctx context.Context, courseID uint, studentIDs []uint) error
	GetStudents(ctx context.Context, courseID uint) ([]models.User, error)
	IsEnrolled(ctx context.Context, courseID, studentID uint) (bool, error)
	GetEnrolledCourses(ctx context.Context, studentID uint) ([]*models.Course, error)

	// Validation helpers
	ExistsByCode(ctx context.Context, code string, excludeID *uint) (bool, error)

	// Statistics
	CountDistinctStudents(ctx context.Context, teacherID uint) (int64, error)
}

type LessonRepository interface {
	Create(ctx context.Context, lesson *models.Lesson) error
	GetByID(ctx context.Context, id uint) (*models.Lesson, error) // preloads Course
	Update(ctx context.Context, lesson *models.Lesson) error
	Delete(ctx context.Context, id uint) error

	// ListByCourse returns lessons ordered by (order, created_at).
	ListByCourse(ctx context.Context, courseID uint) ([]*models.Lesson, error)

	// CountByTeacher counts lessons across all of a teacher's courses.
	CountByTeacher(ctx context.Context, teacherID uint) (int64, error)
}

type MaterialRepository interface {
	Create(ctx context.Context, material *models.CourseMaterial) error
	GetByID(ctx context.Context, id uint) (*models.CourseMaterial, error) // preloads Course
	Update(ctx context.Context, material *models.CourseMaterial) error
	Delete(ctx context.Context, id uint) error

	// ListByCourse returns materials ordered by (order, created_at desc).
	ListByCourse(ctx context.Context, courseID uint) ([]*models.CourseMaterial, error)
}
