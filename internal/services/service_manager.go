package services

import (
	"github.com/AEP-2025/lms-service/internal/auth"
	"github.com/AEP-2025/lms-service/internal/cache"
	"github.com/AEP-2025/lms-service/internal/events"
	"github.com/AEP-2025/lms-service/internal/repositories"
	"github.com/AEP-2025/lms-service/internal/utils"
	"github.com/AEP-2025/lms-service/internal/validator"
)

// ServiceManager wires every service over a shared repository, cache and
// event publisher.
type ServiceManager struct {
	Auth         AuthService
	User         UserService
	Course       CourseService
	Lesson       LessonService
	Assignment   AssignmentService
	Attendance   AttendanceService
	Dashboard    DashboardService
	Announcement AnnouncementService
	Feedback     FeedbackService
	Compliance   ComplianceService
	Conduct      ConductService
}

func NewServiceManager(
	repo repositories.Repository,
	tokens *auth.TokenService,
	cacheSvc cache.CacheService,
	publisher events.EventPublisher,
	v *validator.Validator,
	logger utils.Logger,
) *ServiceManager {
	courseService := NewCourseService(repo, cacheSvc, v, logger)

	return &ServiceManager{
		Auth:         NewAuthService(repo, tokens, cacheSvc, v, logger),
		User:         NewUserService(repo, v, logger),
		Course:       courseService,
		Lesson:       NewLessonService(repo, courseService, v, logger),
		Assignment:   NewAssignmentService(repo, courseService, cacheSvc, publisher, v, logger),
		Attendance:   NewAttendanceService(repo, cacheSvc, v, logger),
		Dashboard:    NewDashboardService(repo, cacheSvc, logger),
		Announcement: NewAnnouncementService(repo, publisher, v, logger),
		Feedback:     NewFeedbackService(repo, publisher, v, logger),
		Compliance:   NewComplianceService(repo, v, logger),
		Conduct:      NewConductService(repo, v, logger),
	}
}
