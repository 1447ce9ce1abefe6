package services

import (
	"context"
	"testing"

	"github.com/AEP-2025/lms-service/internal/models"
	"github.com/AEP-2025/lms-service/internal/utils"
	"github.com/AEP-2025/lms-service/internal/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newCourseServiceForTest(t *testing.T) (CourseService, *mockRepository, *recordingCache) {
	t.Helper()
	repo := newMockRepository()
	cacheSvc := newRecordingCache()
	svc := NewCourseService(repo, cacheSvc, validator.New(), utils.NewDevelopmentLogger())
	return svc, repo, cacheSvc
}

func TestCourseService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("teacher owns the new course", func(t *testing.T) {
		svc, repo, _ := newCourseServiceForTest(t)
		repo.courses.On("ExistsByCode", ctx, "MATH1", (*uint)(nil)).Return(false, nil)
		repo.courses.On("Create", ctx, mock.AnythingOfType("*models.Course")).Return(nil)

		course, err := svc.Create(ctx, 2, models.RoleTeacher, &CreateCourseRequest{
			Title: "Algebra",
			Code:  "MATH1",
		})
		require.NoError(t, err)
		assert.Equal(t, uint(2), course.TeacherID)
		assert.True(t, course.IsActive)
	})

	t.Run("admin may assign another teacher", func(t *testing.T) {
		svc, repo, _ := newCourseServiceForTest(t)
		repo.users.On("HasRole", ctx, uint(4), models.RoleTeacher).Return(true, nil)
		repo.courses.On("ExistsByCode", ctx, "MATH1", (*uint)(nil)).Return(false, nil)
		repo.courses.On("Create", ctx, mock.AnythingOfType("*models.Course")).Return(nil)

		teacherID := uint(4)
		course, err := svc.Create(ctx, 1, models.RoleAdmin, &CreateCourseRequest{
			Title:     "Algebra",
			Code:      "MATH1",
			TeacherID: &teacherID,
		})
		require.NoError(t, err)
		assert.Equal(t, uint(4), course.TeacherID)
	})

	t.Run("rejects a non-teacher assignee", func(t *testing.T) {
		svc, repo, _ := newCourseServiceForTest(t)
		repo.users.On("HasRole", ctx, uint(30), models.RoleTeacher).Return(false, nil)

		studentID := uint(30)
		_, err := svc.Create(ctx, 1, models.RoleAdmin, &CreateCourseRequest{
			Title:     "Algebra",
			Code:      "MATH1",
			TeacherID: &studentID,
		})
		assert.True(t, IsValidation(err))
	})

	t.Run("rejects a duplicate code", func(t *testing.T) {
		svc, repo, _ := newCourseServiceForTest(t)
		repo.courses.On("ExistsByCode", ctx, "MATH1", (*uint)(nil)).Return(true, nil)

		_, err := svc.Create(ctx, 2, models.RoleTeacher, &CreateCourseRequest{
			Title: "Algebra",
			Code:  "MATH1",
		})
		assert.ErrorIs(t, err, ErrCourseDuplicateCode)
	})

	t.Run("students may not create courses", func(t *testing.T) {
		svc, _, _ := newCourseServiceForTest(t)
		_, err := svc.Create(ctx, 30, models.RoleStudent, &CreateCourseRequest{Title: "x", Code: "C1"})
		assert.ErrorIs(t, err, ErrForbidden)
	})
}

func TestCourseService_Get(t *testing.T) {
	ctx := context.Background()
	course := &models.Course{ID: 5, Code: "MATH1", TeacherID: 2}

	t.Run("enrolled student sees the course", func(t *testing.T) {
		svc, repo, _ := newCourseServiceForTest(t)
		repo.courses.On("GetByIDWithDetails", ctx, uint(5)).Return(course, nil)
		repo.courses.On("IsEnrolled", ctx, uint(5), uint(30)).Return(true, nil)

		got, err := svc.Get(ctx, 30, models.RoleStudent, 5)
		require.NoError(t, err)
		assert.Equal(t, "MATH1", got.Code)
	})

	t.Run("unenrolled student is denied", func(t *testing.T) {
		svc, repo, _ := newCourseServiceForTest(t)
		repo.courses.On("GetByIDWithDetails", ctx, uint(5)).Return(course, nil)
		repo.courses.On("IsEnrolled", ctx, uint(5), uint(31)).Return(false, nil)

		_, err := svc.Get(ctx, 31, models.RoleStudent, 5)
		assert.ErrorIs(t, err, ErrCourseAccessDenied)
	})

	t.Run("foreign teacher is denied", func(t *testing.T) {
		svc, repo, _ := newCourseServiceForTest(t)
		repo.courses.On("GetByIDWithDetails", ctx, uint(5)).Return(course, nil)

		_, err := svc.Get(ctx, 99, models.RoleTeacher, 5)
		assert.ErrorIs(t, err, ErrCourseAccessDenied)
	})

	t.Run("parent sees via the linked student", func(t *testing.T) {
		svc, repo, _ := newCourseServiceForTest(t)
		studentID := uint(30)
		repo.courses.On("GetByIDWithDetails", ctx, uint(5)).Return(course, nil)
		repo.profiles.On("GetByUserID", ctx, uint(8)).
			Return(&models.Profile{UserID: 8, Role: models.RoleParent, LinkedStudentID: &studentID}, nil)
		repo.courses.On("IsEnrolled", ctx, uint(5), uint(30)).Return(true, nil)

		_, err := svc.Get(ctx, 8, models.RoleParent, 5)
		require.NoError(t, err)
	})

	t.Run("missing course", func(t *testing.T) {
		svc, repo, _ := newCourseServiceForTest(t)
		repo.courses.On("GetByIDWithDetails", ctx, uint(404)).Return(nil, gorm.ErrRecordNotFound)

		_, err := svc.Get(ctx, 1, models.RoleAdmin, 404)
		assert.ErrorIs(t, err, ErrCourseNotFound)
	})
}

func TestCourseService_Enroll(t *testing.T) {
	ctx := context.Background()
	course := &models.Course{ID: 5, Code: "MATH1", TeacherID: 2}

	t.Run("replaces the student set", func(t *testing.T) {
		svc, repo, cacheSvc := newCourseServiceForTest(t)
		require.NoError(t, cacheSvc.Set(ctx, "dashboard:teacher:2", "stale", 0))

		repo.courses.On("GetByID", ctx, uint(5)).Return(course, nil)
		repo.users.On("CountStudents", ctx, []uint{30, 31}).Return(int64(2), nil)
		repo.courses.On("SetStudents", ctx, uint(5), []uint{30, 31}).Return(nil)

		require.NoError(t, svc.Enroll(ctx, 2, models.RoleTeacher, 5, []uint{30, 31}))
		assert.False(t, cacheSvc.has("dashboard:teacher:2"))
	})

	t.Run("rejects sets containing non-students", func(t *testing.T) {
		svc, repo, _ := newCourseServiceForTest(t)
		repo.courses.On("GetByID", ctx, uint(5)).Return(course, nil)
		repo.users.On("CountStudents", ctx, []uint{30, 8}).Return(int64(1), nil)

		err := svc.Enroll(ctx, 2, models.RoleTeacher, 5, []uint{30, 8})
		assert.ErrorIs(t, err, ErrEnrollNonStudent)
		repo.courses.AssertNotCalled(t, "SetStudents", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("an empty set clears enrollment", func(t *testing.T) {
		svc, repo, _ := newCourseServiceForTest(t)
		repo.courses.On("GetByID", ctx, uint(5)).Return(course, nil)
		repo.courses.On("SetStudents", ctx, uint(5), []uint(nil)).Return(nil)

		require.NoError(t, svc.Enroll(ctx, 2, models.RoleTeacher, 5, nil))
	})
}

func TestCourseService_GetStudents(t *testing.T) {
	ctx := context.Background()
	course := &models.Course{ID: 5, Title: "Algebra", Code: "MATH1", TeacherID: 2}

	t.Run("returns the roster with course identity and count", func(t *testing.T) {
		svc, repo, _ := newCourseServiceForTest(t)
		repo.courses.On("GetByID", ctx, uint(5)).Return(course, nil)
		repo.courses.On("GetStudents", ctx, uint(5)).
			Return([]models.User{{ID: 30}, {ID: 31}}, nil)

		roster, err := svc.GetStudents(ctx, 2, models.RoleTeacher, 5)
		require.NoError(t, err)
		assert.Len(t, roster.Students, 2)
		assert.Equal(t, 2, roster.Count)
		assert.Equal(t, CourseSummary{ID: 5, Title: "Algebra", Code: "MATH1"}, roster.Course)
	})

	t.Run("foreign teacher is denied", func(t *testing.T) {
		svc, repo, _ := newCourseServiceForTest(t)
		repo.courses.On("GetByID", ctx, uint(5)).Return(course, nil)

		_, err := svc.GetStudents(ctx, 99, models.RoleTeacher, 5)
		assert.ErrorIs(t, err, ErrCourseAccessDenied)
	})
}

func TestCourseService_List(t *testing.T) {
	ctx := context.Background()

	t.Run("teacher gets own courses", func(t *testing.T) {
		svc, repo, _ := newCourseServiceForTest(t)
		repo.courses.On("GetByTeacher", ctx, uint(2)).Return([]*models.Course{{ID: 5}}, nil)

		courses, err := svc.List(ctx, 2, models.RoleTeacher)
		require.NoError(t, err)
		assert.Len(t, courses, 1)
	})

	t.Run("parent without a link is rejected", func(t *testing.T) {
		svc, repo, _ := newCourseServiceForTest(t)
		repo.profiles.On("GetByUserID", ctx, uint(8)).
			Return(&models.Profile{UserID: 8, Role: models.RoleParent}, nil)

		_, err := svc.List(ctx, 8, models.RoleParent)
		assert.ErrorIs(t, err, ErrParentNotLinked)
	})
}
