package services

import (
	"context"
	"testing"
	"time"

	"github.com/AEP-2025/lms-service/internal/events"
	"github.com/AEP-2025/lms-service/internal/models"
	"github.com/AEP-2025/lms-service/internal/utils"
	"github.com/AEP-2025/lms-service/internal/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newAssignmentServiceForTest(t *testing.T) (AssignmentService, *mockRepository, *events.MockEventPublisher, *recordingCache) {
	t.Helper()
	repo := newMockRepository()
	publisher := events.NewMockEventPublisher()
	cacheSvc := newRecordingCache()
	courses := NewCourseService(repo, newRecordingCache(), validator.New(), utils.NewDevelopmentLogger())
	svc := NewAssignmentService(repo, courses, cacheSvc, publisher, validator.New(), utils.NewDevelopmentLogger())
	return svc, repo, publisher, cacheSvc
}

func testAssignment(courseID, teacherID uint) *models.Assignment {
	return &models.Assignment{
		ID:       10,
		CourseID: courseID,
		Title:    "Essay",
		MaxMarks: 100,
		DueDate:  time.Now().Add(48 * time.Hour),
		Course:   &models.Course{ID: courseID, TeacherID: teacherID},
	}
}

func TestAssignmentService_Submit(t *testing.T) {
	ctx := context.Background()

	t.Run("records a submission and publishes an event", func(t *testing.T) {
		svc, repo, publisher, cacheSvc := newAssignmentServiceForTest(t)
		require.NoError(t, cacheSvc.Set(ctx, "dashboard:teacher:2", "stale", time.Minute))
		repo.assignments.On("GetByID", ctx, uint(10)).Return(testAssignment(5, 2), nil)
		repo.courses.On("IsEnrolled", ctx, uint(5), uint(30)).Return(true, nil)
		repo.submissions.On("GetByAssignmentAndStudent", ctx, uint(10), uint(30)).
			Return(nil, gorm.ErrRecordNotFound)
		repo.submissions.On("Create", ctx, mock.AnythingOfType("*models.Submission")).
			Run(func(args mock.Arguments) {
				args.Get(1).(*models.Submission).ID = 77
			}).Return(nil)

		submission, err := svc.Submit(ctx, 30, models.RoleStudent, 10, &SubmitRequest{FilePath: "uploads/essay.pdf"})
		require.NoError(t, err)
		assert.Equal(t, models.SubmissionPending, submission.Status)
		assert.Equal(t, uint(30), submission.StudentID)

		require.Len(t, publisher.PublishedEvents(), 1)
		assert.Equal(t, events.EventSubmissionReceived, publisher.PublishedEvents()[0].Type)

		// The course teacher's cached dashboard is stale now.
		assert.False(t, cacheSvc.has("dashboard:teacher:2"))
	})

	t.Run("only students may submit", func(t *testing.T) {
		svc, _, _, _ := newAssignmentServiceForTest(t)
		_, err := svc.Submit(ctx, 2, models.RoleTeacher, 10, &SubmitRequest{FilePath: "x.pdf"})
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("rejects students outside the course", func(t *testing.T) {
		svc, repo, _, _ := newAssignmentServiceForTest(t)
		repo.assignments.On("GetByID", ctx, uint(10)).Return(testAssignment(5, 2), nil)
		repo.courses.On("IsEnrolled", ctx, uint(5), uint(31)).Return(false, nil)

		_, err := svc.Submit(ctx, 31, models.RoleStudent, 10, &SubmitRequest{FilePath: "x.pdf"})
		assert.ErrorIs(t, err, ErrNotEnrolled)
	})

	t.Run("rejects a second submission", func(t *testing.T) {
		svc, repo, _, _ := newAssignmentServiceForTest(t)
		repo.assignments.On("GetByID", ctx, uint(10)).Return(testAssignment(5, 2), nil)
		repo.courses.On("IsEnrolled", ctx, uint(5), uint(30)).Return(true, nil)
		repo.submissions.On("GetByAssignmentAndStudent", ctx, uint(10), uint(30)).
			Return(&models.Submission{ID: 77}, nil)

		_, err := svc.Submit(ctx, 30, models.RoleStudent, 10, &SubmitRequest{FilePath: "x.pdf"})
		assert.ErrorIs(t, err, ErrAlreadySubmitted)
	})

	t.Run("maps the unique constraint race to already submitted", func(t *testing.T) {
		svc, repo, _, _ := newAssignmentServiceForTest(t)
		repo.assignments.On("GetByID", ctx, uint(10)).Return(testAssignment(5, 2), nil)
		repo.courses.On("IsEnrolled", ctx, uint(5), uint(30)).Return(true, nil)
		repo.submissions.On("GetByAssignmentAndStudent", ctx, uint(10), uint(30)).
			Return(nil, gorm.ErrRecordNotFound)
		repo.submissions.On("Create", ctx, mock.AnythingOfType("*models.Submission")).
			Return(gorm.ErrDuplicatedKey)

		_, err := svc.Submit(ctx, 30, models.RoleStudent, 10, &SubmitRequest{FilePath: "x.pdf"})
		assert.ErrorIs(t, err, ErrAlreadySubmitted)
	})
}

func TestAssignmentService_Grade(t *testing.T) {
	ctx := context.Background()

	pendingSubmission := func() *models.Submission {
		return &models.Submission{
			ID:           77,
			AssignmentID: 10,
			StudentID:    30,
			Status:       models.SubmissionPending,
			Assignment:   testAssignment(5, 2),
		}
	}

	t.Run("sets marks, feedback and grader", func(t *testing.T) {
		svc, repo, publisher, cacheSvc := newAssignmentServiceForTest(t)
		require.NoError(t, cacheSvc.Set(ctx, "dashboard:teacher:2", "stale", time.Minute))
		repo.submissions.On("GetByID", ctx, uint(77)).Return(pendingSubmission(), nil)
		repo.submissions.On("Update", ctx, mock.AnythingOfType("*models.Submission")).Return(nil)

		feedback := "Well argued"
		graded, err := svc.Grade(ctx, 2, models.RoleTeacher, 77, &GradeRequest{
			MarksObtained: 85,
			Feedback:      &feedback,
		})
		require.NoError(t, err)
		assert.Equal(t, models.SubmissionGraded, graded.Status)
		require.NotNil(t, graded.MarksObtained)
		assert.Equal(t, 85, *graded.MarksObtained)
		require.NotNil(t, graded.GradedByID)
		assert.Equal(t, uint(2), *graded.GradedByID)
		assert.NotNil(t, graded.GradedAt)

		require.Len(t, publisher.PublishedEvents(), 1)
		assert.Equal(t, events.EventSubmissionGraded, publisher.PublishedEvents()[0].Type)
		assert.False(t, cacheSvc.has("dashboard:teacher:2"))
	})

	t.Run("rejects marks above the maximum", func(t *testing.T) {
		svc, repo, _, _ := newAssignmentServiceForTest(t)
		repo.submissions.On("GetByID", ctx, uint(77)).Return(pendingSubmission(), nil)

		_, err := svc.Grade(ctx, 2, models.RoleTeacher, 77, &GradeRequest{MarksObtained: 101})
		assert.ErrorIs(t, err, ErrInvalidMarks)
	})

	t.Run("only the owning teacher may grade", func(t *testing.T) {
		svc, repo, _, _ := newAssignmentServiceForTest(t)
		repo.submissions.On("GetByID", ctx, uint(77)).Return(pendingSubmission(), nil)

		_, err := svc.Grade(ctx, 99, models.RoleTeacher, 77, &GradeRequest{MarksObtained: 50})
		assert.ErrorIs(t, err, ErrCourseAccessDenied)
	})
}

func TestAssignmentService_BulkMarkGraded(t *testing.T) {
	ctx := context.Background()

	t.Run("admin flips status without ownership checks", func(t *testing.T) {
		svc, repo, _, cacheSvc := newAssignmentServiceForTest(t)
		require.NoError(t, cacheSvc.Set(ctx, "dashboard:teacher:2", "stale", time.Minute))
		require.NoError(t, cacheSvc.Set(ctx, "dashboard:teacher:5", "stale", time.Minute))
		repo.submissions.On("BulkMarkGraded", ctx, []uint{1, 2, 3}).Return(int64(3), nil)

		affected, err := svc.BulkMarkGraded(ctx, 9, models.RoleAdmin, []uint{1, 2, 3})
		require.NoError(t, err)
		assert.Equal(t, int64(3), affected)

		// The admin path cannot tell whose backlog was cleared, so every
		// cached teacher dashboard goes.
		assert.False(t, cacheSvc.has("dashboard:teacher:2"))
		assert.False(t, cacheSvc.has("dashboard:teacher:5"))
	})

	t.Run("teacher clears own backlog and own dashboard", func(t *testing.T) {
		svc, repo, _, cacheSvc := newAssignmentServiceForTest(t)
		require.NoError(t, cacheSvc.Set(ctx, "dashboard:teacher:2", "stale", time.Minute))
		require.NoError(t, cacheSvc.Set(ctx, "dashboard:teacher:5", "stale", time.Minute))
		own := &models.Submission{
			ID:         1,
			Assignment: testAssignment(5, 2),
		}
		repo.submissions.On("GetByID", ctx, uint(1)).Return(own, nil)
		repo.submissions.On("BulkMarkGraded", ctx, []uint{1}).Return(int64(1), nil)

		affected, err := svc.BulkMarkGraded(ctx, 2, models.RoleTeacher, []uint{1})
		require.NoError(t, err)
		assert.Equal(t, int64(1), affected)
		assert.False(t, cacheSvc.has("dashboard:teacher:2"))
		assert.True(t, cacheSvc.has("dashboard:teacher:5"))
	})

	t.Run("teacher is limited to own assignments", func(t *testing.T) {
		svc, repo, _, _ := newAssignmentServiceForTest(t)
		foreign := &models.Submission{
			ID:         1,
			Assignment: testAssignment(5, 99),
		}
		repo.submissions.On("GetByID", ctx, uint(1)).Return(foreign, nil)

		_, err := svc.BulkMarkGraded(ctx, 2, models.RoleTeacher, []uint{1})
		assert.ErrorIs(t, err, ErrCourseAccessDenied)
	})

	t.Run("empty input is a no-op", func(t *testing.T) {
		svc, _, _, _ := newAssignmentServiceForTest(t)
		affected, err := svc.BulkMarkGraded(ctx, 2, models.RoleTeacher, nil)
		require.NoError(t, err)
		assert.Zero(t, affected)
	})
}
