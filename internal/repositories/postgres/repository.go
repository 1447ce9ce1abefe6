package postgres

import (
	"context"

	"github.com/AEP-2025/lms-service/internal/models"
	"github.com/AEP-2025/lms-service/internal/repositories"
	"gorm.io/gorm"
)

// Repository is the gorm-backed aggregate of all entity repositories.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) repositories.Repository {
	return &Repository{db: db}
}

func (r *Repository) User() repositories.UserRepository     { return &UserPostgreSQL{db: r.db} }
func (r *Repository) Profile() repositories.ProfileRepository {
	return &ProfilePostgreSQL{db: r.db}
}
func (r *Repository) Course() repositories.CourseRepository { return &CoursePostgreSQL{db: r.db} }
func (r *Repository) Lesson() repositories.LessonRepository { return &LessonPostgreSQL{db: r.db} }
func (r *Repository) Material() repositories.MaterialRepository {
	return &MaterialPostgreSQL{db: r.db}
}
func (r *Repository) Assignment() repositories.AssignmentRepository {
	return &AssignmentPostgreSQL{db: r.db}
}
func (r *Repository) Submission() repositories.SubmissionRepository {
	return &SubmissionPostgreSQL{db: r.db}
}
func (r *Repository) Attendance() repositories.AttendanceRepository {
	return &AttendancePostgreSQL{db: r.db}
}
func (r *Repository) Announcement() repositories.AnnouncementRepository {
	return &AnnouncementPostgreSQL{db: r.db}
}
func (r *Repository) Feedback() repositories.FeedbackRepository {
	return &FeedbackPostgreSQL{db: r.db}
}
func (r *Repository) Compliance() repositories.ComplianceRepository {
	return &CompliancePostgreSQL{db: r.db}
}
func (r *Repository) Conduct() repositories.ConductRepository {
	return &ConductPostgreSQL{db: r.db}
}

// InTx runs fn with a Repository bound to a single transaction.
func (r *Repository) InTx(ctx context.Context, fn func(repositories.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Repository{db: tx})
	})
}

// AutoMigrate creates or updates the schema for every entity.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Course{},
		&models.Lesson{},
		&models.CourseMaterial{},
		&models.Assignment{},
		&models.Submission{},
		&models.Attendance{},
		&models.Announcement{},
		&models.ComplianceReport{},
		&models.Feedback{},
		&models.ConductReport{},
	)
}
