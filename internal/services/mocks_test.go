package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/AEP-2025/lms-service/internal/cache"
	"github.com/AEP-2025/lms-service/internal/models"
	"github.com/AEP-2025/lms-service/internal/repositories"
	"github.com/stretchr/testify/mock"
)

// ===== REPOSITORY MOCKS =====

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) List(ctx context.Context, filters repositories.UserFilters) ([]*models.User, int64, error) {
	args := m.Called(ctx, filters)
	return args.Get(0).([]*models.User), args.Get(1).(int64), args.Error(2)
}

func (m *MockUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) HasRole(ctx context.Context, id uint, role models.Role) (bool, error) {
	args := m.Called(ctx, id, role)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) CountStudents(ctx context.Context, ids []uint) (int64, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).(int64), args.Error(1)
}

type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) Create(ctx context.Context, profile *models.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockProfileRepository) GetByUserID(ctx context.Context, userID uint) (*models.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func (m *MockProfileRepository) Update(ctx context.Context, profile *models.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockProfileRepository) UpdateFontSize(ctx context.Context, userID uint, size models.FontSize) error {
	args := m.Called(ctx, userID, size)
	return args.Error(0)
}

func (m *MockProfileRepository) UpdateHighContrast(ctx context.Context, userID uint, enabled bool) error {
	args := m.Called(ctx, userID, enabled)
	return args.Error(0)
}

type MockCourseRepository struct {
	mock.Mock
}

func (m *MockCourseRepository) Create(ctx context.Context, course *models.Course) error {
	args := m.Called(ctx, course)
	return args.Error(0)
}

func (m *MockCourseRepository) GetByID(ctx context.Context, id uint) (*models.Course, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Course), args.Error(1)
}

func (m *MockCourseRepository) GetByIDWithDetails(ctx context.Context, id uint) (*models.Course, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Course), args.Error(1)
}

func (m *MockCourseRepository) Update(ctx context.Context, course *models.Course) error {
	args := m.Called(ctx, course)
	return args.Error(0)
}

func (m *MockCourseRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCourseRepository) List(ctx context.Context, filters repositories.CourseFilters) ([]*models.Course, int64, error) {
	args := m.Called(ctx, filters)
	return args.Get(0).([]*models.Course), args.Get(1).(int64), args.Error(2)
}

func (m *MockCourseRepository) GetByTeacher(ctx context.Context, teacherID uint) ([]*models.Course, error) {
	args := m.Called(ctx, teacherID)
	return args.Get(0).([]*models.Course), args.Error(1)
}

func (m *MockCourseRepository) SetStudents(ctx context.Context, courseID uint, studentIDs []uint) error {
	args := m.Called(ctx, courseID, studentIDs)
	return args.Error(0)
}

func (m *MockCourseRepository) GetStudents(ctx context.Context, courseID uint) ([]models.User, error) {
	args := m.Called(ctx, courseID)
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockCourseRepository) IsEnrolled(ctx context.Context, courseID, studentID uint) (bool, error) {
	args := m.Called(ctx, courseID, studentID)
	return args.Bool(0), args.Error(1)
}

func (m *MockCourseRepository) GetEnrolledCourses(ctx context.Context, studentID uint) ([]*models.Course, error) {
	args := m.Called(ctx, studentID)
	return args.Get(0).([]*models.Course), args.Error(1)
}

func (m *MockCourseRepository) ExistsByCode(ctx context.Context, code string, excludeID *uint) (bool, error) {
	args := m.Called(ctx, code, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockCourseRepository) CountDistinctStudents(ctx context.Context, teacherID uint) (int64, error) {
	args := m.Called(ctx, teacherID)
	return args.Get(0).(int64), args.Error(1)
}

type MockLessonRepository struct {
	mock.Mock
}

func (m *MockLessonRepository) Create(ctx context.Context, lesson *models.Lesson) error {
	args := m.Called(ctx, lesson)
	return args.Error(0)
}

func (m *MockLessonRepository) GetByID(ctx context.Context, id uint) (*models.Lesson, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Lesson), args.Error(1)
}

func (m *MockLessonRepository) Update(ctx context.Context, lesson *models.Lesson) error {
	args := m.Called(ctx, lesson)
	return args.Error(0)
}

func (m *MockLessonRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockLessonRepository) ListByCourse(ctx context.Context, courseID uint) ([]*models.Lesson, error) {
	args := m.Called(ctx, courseID)
	return args.Get(0).([]*models.Lesson), args.Error(1)
}

func (m *MockLessonRepository) CountByTeacher(ctx context.Context, teacherID uint) (int64, error) {
	args := m.Called(ctx, teacherID)
	return args.Get(0).(int64), args.Error(1)
}

type MockMaterialRepository struct {
	mock.Mock
}

func (m *MockMaterialRepository) Create(ctx context.Context, material *models.CourseMaterial) error {
	args := m.Called(ctx, material)
	return args.Error(0)
}

func (m *MockMaterialRepository) GetByID(ctx context.Context, id uint) (*models.CourseMaterial, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CourseMaterial), args.Error(1)
}

func (m *MockMaterialRepository) Update(ctx context.Context, material *models.CourseMaterial) error {
	args := m.Called(ctx, material)
	return args.Error(0)
}

func (m *MockMaterialRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockMaterialRepository) ListByCourse(ctx context.Context, courseID uint) ([]*models.CourseMaterial, error) {
	args := m.Called(ctx, courseID)
	return args.Get(0).([]*models.CourseMaterial), args.Error(1)
}

type MockAssignmentRepository struct {
	mock.Mock
}

func (m *MockAssignmentRepository) Create(ctx context.Context, assignment *models.Assignment) error {
	args := m.Called(ctx, assignment)
	return args.Error(0)
}

func (m *MockAssignmentRepository) GetByID(ctx context.Context, id uint) (*models.Assignment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Assignment), args.Error(1)
}

func (m *MockAssignmentRepository) Update(ctx context.Context, assignment *models.Assignment) error {
	args := m.Called(ctx, assignment)
	return args.Error(0)
}

func (m *MockAssignmentRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAssignmentRepository) ListByCourse(ctx context.Context, courseID uint) ([]*models.Assignment, error) {
	args := m.Called(ctx, courseID)
	return args.Get(0).([]*models.Assignment), args.Error(1)
}

func (m *MockAssignmentRepository) ListPendingForStudent(ctx context.Context, studentID uint) ([]*models.Assignment, error) {
	args := m.Called(ctx, studentID)
	return args.Get(0).([]*models.Assignment), args.Error(1)
}

func (m *MockAssignmentRepository) CountByCreator(ctx context.Context, creatorID uint) (int64, error) {
	args := m.Called(ctx, creatorID)
	return args.Get(0).(int64), args.Error(1)
}

type MockSubmissionRepository struct {
	mock.Mock
}

func (m *MockSubmissionRepository) Create(ctx context.Context, submission *models.Submission) error {
	args := m.Called(ctx, submission)
	return args.Error(0)
}

func (m *MockSubmissionRepository) GetByID(ctx context.Context, id uint) (*models.Submission, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Submission), args.Error(1)
}

func (m *MockSubmissionRepository) GetByAssignmentAndStudent(ctx context.Context, assignmentID, studentID uint) (*models.Submission, error) {
	args := m.Called(ctx, assignmentID, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Submission), args.Error(1)
}

func (m *MockSubmissionRepository) Update(ctx context.Context, submission *models.Submission) error {
	args := m.Called(ctx, submission)
	return args.Error(0)
}

func (m *MockSubmissionRepository) ListByAssignment(ctx context.Context, assignmentID uint) ([]*models.Submission, error) {
	args := m.Called(ctx, assignmentID)
	return args.Get(0).([]*models.Submission), args.Error(1)
}

func (m *MockSubmissionRepository) ListByStudent(ctx context.Context, studentID uint) ([]*models.Submission, error) {
	args := m.Called(ctx, studentID)
	return args.Get(0).([]*models.Submission), args.Error(1)
}

func (m *MockSubmissionRepository) ListPendingByTeacher(ctx context.Context, teacherID uint, limit int) ([]*models.Submission, error) {
	args := m.Called(ctx, teacherID, limit)
	return args.Get(0).([]*models.Submission), args.Error(1)
}

func (m *MockSubmissionRepository) BulkMarkGraded(ctx context.Context, ids []uint) (int64, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSubmissionRepository) CountByTeacherAndStatus(ctx context.Context, teacherID uint, status models.SubmissionStatus) (int64, error) {
	args := m.Called(ctx, teacherID, status)
	return args.Get(0).(int64), args.Error(1)
}

type MockAttendanceRepository struct {
	mock.Mock
}

func (m *MockAttendanceRepository) Upsert(ctx context.Context, record *models.Attendance) (bool, error) {
	args := m.Called(ctx, record)
	return args.Bool(0), args.Error(1)
}

func (m *MockAttendanceRepository) List(ctx context.Context, filters repositories.AttendanceFilters) ([]*models.Attendance, error) {
	args := m.Called(ctx, filters)
	return args.Get(0).([]*models.Attendance), args.Error(1)
}

func (m *MockAttendanceRepository) CountByCourseAndDate(ctx context.Context, courseID uint, date time.Time) (int64, error) {
	args := m.Called(ctx, courseID, date)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAttendanceRepository) CountsByTeacher(ctx context.Context, teacherID uint) (*repositories.AttendanceCounts, error) {
	args := m.Called(ctx, teacherID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repositories.AttendanceCounts), args.Error(1)
}

func (m *MockAttendanceRepository) ListRecentByTeacher(ctx context.Context, teacherID uint, since time.Time, limit int) ([]*models.Attendance, error) {
	args := m.Called(ctx, teacherID, since, limit)
	return args.Get(0).([]*models.Attendance), args.Error(1)
}

func (m *MockAttendanceRepository) ListForExport(ctx context.Context, courseID uint, from, to time.Time) ([]*models.Attendance, error) {
	args := m.Called(ctx, courseID, from, to)
	return args.Get(0).([]*models.Attendance), args.Error(1)
}

type MockAnnouncementRepository struct {
	mock.Mock
}

func (m *MockAnnouncementRepository) Create(ctx context.Context, announcement *models.Announcement) error {
	args := m.Called(ctx, announcement)
	return args.Error(0)
}

func (m *MockAnnouncementRepository) GetByID(ctx context.Context, id uint) (*models.Announcement, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Announcement), args.Error(1)
}

func (m *MockAnnouncementRepository) Update(ctx context.Context, announcement *models.Announcement) error {
	args := m.Called(ctx, announcement)
	return args.Error(0)
}

func (m *MockAnnouncementRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAnnouncementRepository) ListAll(ctx context.Context) ([]*models.Announcement, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*models.Announcement), args.Error(1)
}

func (m *MockAnnouncementRepository) ListActive(ctx context.Context) ([]*models.Announcement, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*models.Announcement), args.Error(1)
}

func (m *MockAnnouncementRepository) ListActiveByCreator(ctx context.Context, creatorID uint, limit int) ([]*models.Announcement, error) {
	args := m.Called(ctx, creatorID, limit)
	return args.Get(0).([]*models.Announcement), args.Error(1)
}

type MockFeedbackRepository struct {
	mock.Mock
}

func (m *MockFeedbackRepository) Create(ctx context.Context, feedback *models.Feedback) error {
	args := m.Called(ctx, feedback)
	return args.Error(0)
}

func (m *MockFeedbackRepository) GetByID(ctx context.Context, id uint) (*models.Feedback, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Feedback), args.Error(1)
}

func (m *MockFeedbackRepository) Update(ctx context.Context, feedback *models.Feedback) error {
	args := m.Called(ctx, feedback)
	return args.Error(0)
}

func (m *MockFeedbackRepository) List(ctx context.Context, filters repositories.FeedbackFilters) ([]*models.Feedback, error) {
	args := m.Called(ctx, filters)
	return args.Get(0).([]*models.Feedback), args.Error(1)
}

type MockComplianceRepository struct {
	mock.Mock
}

func (m *MockComplianceRepository) Create(ctx context.Context, report *models.ComplianceReport) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}

func (m *MockComplianceRepository) GetByID(ctx context.Context, id uint) (*models.ComplianceReport, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ComplianceReport), args.Error(1)
}

func (m *MockComplianceRepository) List(ctx context.Context) ([]*models.ComplianceReport, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*models.ComplianceReport), args.Error(1)
}

func (m *MockComplianceRepository) BulkUpdateStatus(ctx context.Context, ids []uint, status models.ComplianceStatus) (int64, error) {
	args := m.Called(ctx, ids, status)
	return args.Get(0).(int64), args.Error(1)
}

type MockConductRepository struct {
	mock.Mock
}

func (m *MockConductRepository) Create(ctx context.Context, report *models.ConductReport) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}

func (m *MockConductRepository) ListByStudent(ctx context.Context, studentID uint) ([]*models.ConductReport, error) {
	args := m.Called(ctx, studentID)
	return args.Get(0).([]*models.ConductReport), args.Error(1)
}

func (m *MockConductRepository) ListByCourse(ctx context.Context, courseID uint) ([]*models.ConductReport, error) {
	args := m.Called(ctx, courseID)
	return args.Get(0).([]*models.ConductReport), args.Error(1)
}

// ===== AGGREGATE =====

// mockRepository wires the per-entity mocks into the Repository interface.
// InTx runs the function against the same mocks, which is enough to exercise
// the transactional code paths.
type mockRepository struct {
	users         *MockUserRepository
	profiles      *MockProfileRepository
	courses       *MockCourseRepository
	lessons       *MockLessonRepository
	materials     *MockMaterialRepository
	assignments   *MockAssignmentRepository
	submissions   *MockSubmissionRepository
	attendance    *MockAttendanceRepository
	announcements *MockAnnouncementRepository
	feedback      *MockFeedbackRepository
	compliance    *MockComplianceRepository
	conduct       *MockConductRepository
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		users:         new(MockUserRepository),
		profiles:      new(MockProfileRepository),
		courses:       new(MockCourseRepository),
		lessons:       new(MockLessonRepository),
		materials:     new(MockMaterialRepository),
		assignments:   new(MockAssignmentRepository),
		submissions:   new(MockSubmissionRepository),
		attendance:    new(MockAttendanceRepository),
		announcements: new(MockAnnouncementRepository),
		feedback:      new(MockFeedbackRepository),
		compliance:    new(MockComplianceRepository),
		conduct:       new(MockConductRepository),
	}
}

func (m *mockRepository) User() repositories.UserRepository             { return m.users }
func (m *mockRepository) Profile() repositories.ProfileRepository       { return m.profiles }
func (m *mockRepository) Course() repositories.CourseRepository         { return m.courses }
func (m *mockRepository) Lesson() repositories.LessonRepository         { return m.lessons }
func (m *mockRepository) Material() repositories.MaterialRepository     { return m.materials }
func (m *mockRepository) Assignment() repositories.AssignmentRepository { return m.assignments }
func (m *mockRepository) Submission() repositories.SubmissionRepository { return m.submissions }
func (m *mockRepository) Attendance() repositories.AttendanceRepository { return m.attendance }
func (m *mockRepository) Announcement() repositories.AnnouncementRepository {
	return m.announcements
}
func (m *mockRepository) Feedback() repositories.FeedbackRepository     { return m.feedback }
func (m *mockRepository) Compliance() repositories.ComplianceRepository { return m.compliance }
func (m *mockRepository) Conduct() repositories.ConductRepository       { return m.conduct }

func (m *mockRepository) InTx(ctx context.Context, fn func(repositories.Repository) error) error {
	return fn(m)
}

// ===== CACHE =====

// recordingCache remembers writes and deletes so tests can assert on cache
// interaction without redis.
type recordingCache struct {
	mu      sync.Mutex
	entries map[string]interface{}
	deleted []string
}

func newRecordingCache() *recordingCache {
	return &recordingCache{entries: make(map[string]interface{})}
}

func (c *recordingCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = value
	return nil
}

func (c *recordingCache) Get(ctx context.Context, key string, dest interface{}) error {
	return cache.ErrCacheMiss
}

func (c *recordingCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
	c.deleted = append(c.deleted, key)
	return nil
}

func (c *recordingCache) DeletePattern(ctx context.Context, pattern string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	prefix := strings.TrimSuffix(pattern, "*")
	for key := range c.entries {
		if strings.HasPrefix(key, prefix) {
			delete(c.entries, key)
			c.deleted = append(c.deleted, key)
		}
	}
	return nil
}

func (c *recordingCache) Exists(ctx context.Context, key string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[key]
	return ok, nil
}

func (c *recordingCache) has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[key]
	return ok
}
