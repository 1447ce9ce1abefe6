package handlers

import (
	"github.com/AEP-2025/lms-service/internal/auth"
	"github.com/AEP-2025/lms-service/internal/cache"
	"github.com/AEP-2025/lms-service/internal/services"
	"github.com/AEP-2025/lms-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type HandlerManager struct {
	authHandler         *AuthHandler
	userHandler         *UserHandler
	courseHandler       *CourseHandler
	lessonHandler       *LessonHandler
	assignmentHandler   *AssignmentHandler
	attendanceHandler   *AttendanceHandler
	dashboardHandler    *DashboardHandler
	announcementHandler *AnnouncementHandler
	feedbackHandler     *FeedbackHandler
	complianceHandler   *ComplianceHandler
	conductHandler      *ConductHandler

	tokens   *auth.TokenService
	cacheSvc cache.CacheService
}

func NewHandlerManager(
	serviceManager *services.ServiceManager,
	tokens *auth.TokenService,
	cacheSvc cache.CacheService,
	logger utils.Logger,
) *HandlerManager {
	return &HandlerManager{
		authHandler:         NewAuthHandler(serviceManager.Auth, logger),
		userHandler:         NewUserHandler(serviceManager.User, logger),
		courseHandler:       NewCourseHandler(serviceManager.Course, logger),
		lessonHandler:       NewLessonHandler(serviceManager.Lesson, logger),
		assignmentHandler:   NewAssignmentHandler(serviceManager.Assignment, logger),
		attendanceHandler:   NewAttendanceHandler(serviceManager.Attendance, logger),
		dashboardHandler:    NewDashboardHandler(serviceManager.Dashboard, logger),
		announcementHandler: NewAnnouncementHandler(serviceManager.Announcement, logger),
		feedbackHandler:     NewFeedbackHandler(serviceManager.Feedback, logger),
		complianceHandler:   NewComplianceHandler(serviceManager.Compliance, logger),
		conductHandler:      NewConductHandler(serviceManager.Conduct, logger),
		tokens:              tokens,
		cacheSvc:            cacheSvc,
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	// Health check endpoint
	router.GET("/health", HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")

	// Public auth routes
	authRoutes := v1.Group("/auth")
	{
		authRoutes.POST("/register", hm.authHandler.Register)
		authRoutes.POST("/login", hm.authHandler.Login)
	}

	// Everything else requires a valid session
	protected := v1.Group("")
	protected.Use(auth.SessionMiddleware(hm.tokens, hm.cacheSvc))
	{
		protected.POST("/auth/logout", hm.authHandler.Logout)

		// Role-dispatched dashboard
		protected.GET("/dashboard", hm.dashboardHandler.Dashboard)

		// User management (admin) and self-service profile
		users := protected.Group("/users")
		{
			users.POST("", hm.userHandler.CreateUser)
			users.GET("", hm.userHandler.ListUsers)
			users.GET("/:id", hm.userHandler.GetUser)
			users.PUT("/:id", hm.userHandler.UpdateUser)
			users.DELETE("/:id", hm.userHandler.DeleteUser)
		}

		profile := protected.Group("/profile")
		{
			profile.GET("/settings", hm.userHandler.GetProfileSettings)
			profile.PUT("/settings", hm.userHandler.UpdateProfileSettings)
			profile.POST("/font-size", hm.userHandler.UpdateFontSize)
			profile.POST("/high-contrast", hm.userHandler.UpdateHighContrast)
		}

		// Courses, enrollment and course-scoped content
		courses := protected.Group("/courses")
		{
			courses.POST("", hm.courseHandler.CreateCourse)
			courses.GET("", hm.courseHandler.ListCourses)
			courses.GET("/:id", hm.courseHandler.GetCourse)
			courses.PUT("/:id", hm.courseHandler.UpdateCourse)
			courses.DELETE("/:id", hm.courseHandler.DeleteCourse)

			courses.POST("/:id/enroll", hm.courseHandler.EnrollStudents)
			courses.GET("/:id/students", hm.courseHandler.GetCourseStudents)

			courses.GET("/:id/lessons", hm.lessonHandler.ListCourseLessons)
			courses.GET("/:id/materials", hm.lessonHandler.ListCourseMaterials)
			courses.GET("/:id/assignments", hm.assignmentHandler.ListCourseAssignments)
			courses.GET("/:id/conduct", hm.conductHandler.ListCourseReports)

			courses.GET("/:id/attendance/check", hm.attendanceHandler.CheckAttendance)
			courses.GET("/:id/attendance/export", hm.attendanceHandler.ExportAttendance)
		}

		lessons := protected.Group("/lessons")
		{
			lessons.POST("", hm.lessonHandler.CreateLesson)
			lessons.GET("/:id", hm.lessonHandler.GetLesson)
			lessons.PUT("/:id", hm.lessonHandler.UpdateLesson)
			lessons.DELETE("/:id", hm.lessonHandler.DeleteLesson)
		}

		materials := protected.Group("/materials")
		{
			materials.POST("", hm.lessonHandler.CreateMaterial)
			materials.PUT("/:id", hm.lessonHandler.UpdateMaterial)
			materials.DELETE("/:id", hm.lessonHandler.DeleteMaterial)
		}

		// Assignments and submissions
		assignments := protected.Group("/assignments")
		{
			assignments.POST("", hm.assignmentHandler.CreateAssignment)
			assignments.GET("/:id", hm.assignmentHandler.GetAssignment)
			assignments.PUT("/:id", hm.assignmentHandler.UpdateAssignment)
			assignments.DELETE("/:id", hm.assignmentHandler.DeleteAssignment)

			assignments.POST("/:id/submit", hm.assignmentHandler.SubmitAssignment)
			assignments.GET("/:id/submissions", hm.assignmentHandler.ListSubmissions)
		}

		submissions := protected.Group("/submissions")
		{
			submissions.GET("/mine", hm.assignmentHandler.ListMySubmissions)
			submissions.POST("/:id/grade", hm.assignmentHandler.GradeSubmission)
			submissions.POST("/bulk-grade", hm.assignmentHandler.BulkMarkGraded)
		}

		// Attendance
		attendance := protected.Group("/attendance")
		{
			attendance.GET("", hm.attendanceHandler.ListAttendance)
			attendance.POST("/mark", hm.attendanceHandler.MarkAttendance)
		}

		// Announcements
		announcements := protected.Group("/announcements")
		{
			announcements.POST("", hm.announcementHandler.CreateAnnouncement)
			announcements.GET("", hm.announcementHandler.ListAnnouncements)
			announcements.PUT("/:id", hm.announcementHandler.UpdateAnnouncement)
			announcements.DELETE("/:id", hm.announcementHandler.DeleteAnnouncement)
		}

		// Compliance (admin only)
		compliance := protected.Group("/compliance")
		{
			compliance.POST("", hm.complianceHandler.CreateReport)
			compliance.GET("", hm.complianceHandler.ListReports)
			compliance.GET("/:id", hm.complianceHandler.GetReport)
			compliance.POST("/bulk-status", hm.complianceHandler.BulkUpdateStatus)
		}

		// Feedback
		feedback := protected.Group("/feedback")
		{
			feedback.POST("", hm.feedbackHandler.SubmitFeedback)
			feedback.GET("", hm.feedbackHandler.ListFeedback)
			feedback.GET("/:id", hm.feedbackHandler.GetFeedback)
			feedback.POST("/:id/respond", hm.feedbackHandler.RespondToFeedback)
		}

		// Conduct reports
		conduct := protected.Group("/conduct")
		{
			conduct.POST("", hm.conductHandler.CreateReport)
			conduct.GET("/students/:id", hm.conductHandler.ListStudentReports)
		}
	}
}
