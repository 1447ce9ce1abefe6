package services

import (
	"context"
	"testing"
	"time"

	"github.com/AEP-2025/lms-service/internal/events"
	"github.com/AEP-2025/lms-service/internal/models"
	"github.com/AEP-2025/lms-service/internal/repositories"
	"github.com/AEP-2025/lms-service/internal/utils"
	"github.com/AEP-2025/lms-service/internal/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newFeedbackServiceForTest(t *testing.T) (FeedbackService, *mockRepository, *events.MockEventPublisher) {
	t.Helper()
	repo := newMockRepository()
	publisher := events.NewMockEventPublisher()
	svc := NewFeedbackService(repo, publisher, validator.New(), utils.NewDevelopmentLogger())
	return svc, repo, publisher
}

func TestFeedbackService_Submit(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults the category", func(t *testing.T) {
		svc, repo, _ := newFeedbackServiceForTest(t)
		repo.feedback.On("Create", ctx, mock.AnythingOfType("*models.Feedback")).Return(nil)

		feedback, err := svc.Submit(ctx, 30, models.RoleStudent, &SubmitFeedbackRequest{
			Subject: "Captions missing",
			Message: "Lesson 3 video has no captions.",
		})
		require.NoError(t, err)
		assert.Equal(t, models.FeedbackOther, feedback.Category)
		assert.Equal(t, models.FeedbackPending, feedback.Status)
		assert.Equal(t, uint(30), feedback.SubmittedByID)
	})

	t.Run("rejects unknown categories", func(t *testing.T) {
		svc, _, _ := newFeedbackServiceForTest(t)
		_, err := svc.Submit(ctx, 30, models.RoleStudent, &SubmitFeedbackRequest{
			Subject:  "x",
			Message:  "y",
			Category: "complaint",
		})
		assert.True(t, IsValidation(err))
	})
}

func TestFeedbackService_Get(t *testing.T) {
	ctx := context.Background()
	entry := &models.Feedback{ID: 1, SubmittedByID: 30}

	t.Run("submitter reads own entry", func(t *testing.T) {
		svc, repo, _ := newFeedbackServiceForTest(t)
		repo.feedback.On("GetByID", ctx, uint(1)).Return(entry, nil)

		_, err := svc.Get(ctx, 30, models.RoleStudent, 1)
		require.NoError(t, err)
	})

	t.Run("other users are denied", func(t *testing.T) {
		svc, repo, _ := newFeedbackServiceForTest(t)
		repo.feedback.On("GetByID", ctx, uint(1)).Return(entry, nil)

		_, err := svc.Get(ctx, 31, models.RoleStudent, 1)
		assert.True(t, IsAccessDenied(err))
	})

	t.Run("admin reads anything", func(t *testing.T) {
		svc, repo, _ := newFeedbackServiceForTest(t)
		repo.feedback.On("GetByID", ctx, uint(1)).Return(entry, nil)

		_, err := svc.Get(ctx, 1, models.RoleAdmin, 1)
		require.NoError(t, err)
	})
}

func TestFeedbackService_List(t *testing.T) {
	ctx := context.Background()

	t.Run("non-admins are scoped to their own entries", func(t *testing.T) {
		svc, repo, _ := newFeedbackServiceForTest(t)
		repo.feedback.On("List", ctx, mock.MatchedBy(func(f repositories.FeedbackFilters) bool {
			return f.SubmittedBy != nil && *f.SubmittedBy == 30
		})).Return([]*models.Feedback{}, nil)

		_, err := svc.List(ctx, 30, models.RoleStudent, repositories.FeedbackFilters{})
		require.NoError(t, err)
		repo.feedback.AssertExpectations(t)
	})

	t.Run("admin filters pass through unscoped", func(t *testing.T) {
		svc, repo, _ := newFeedbackServiceForTest(t)
		repo.feedback.On("List", ctx, mock.MatchedBy(func(f repositories.FeedbackFilters) bool {
			return f.SubmittedBy == nil
		})).Return([]*models.Feedback{}, nil)

		_, err := svc.List(ctx, 1, models.RoleAdmin, repositories.FeedbackFilters{})
		require.NoError(t, err)
	})
}

func TestFeedbackService_Respond(t *testing.T) {
	ctx := context.Background()

	t.Run("records the answer and publishes", func(t *testing.T) {
		svc, repo, publisher := newFeedbackServiceForTest(t)
		repo.feedback.On("GetByID", ctx, uint(1)).
			Return(&models.Feedback{ID: 1, SubmittedByID: 30, Status: models.FeedbackPending}, nil)
		repo.feedback.On("Update", ctx, mock.AnythingOfType("*models.Feedback")).Return(nil)

		feedback, err := svc.Respond(ctx, 1, models.RoleAdmin, 1, &RespondFeedbackRequest{
			Response: "Captions added.",
		})
		require.NoError(t, err)
		assert.Equal(t, models.FeedbackAddressed, feedback.Status)
		require.NotNil(t, feedback.Response)
		assert.Equal(t, "Captions added.", *feedback.Response)
		require.NotNil(t, feedback.RespondedByID)
		assert.Equal(t, uint(1), *feedback.RespondedByID)
		assert.NotNil(t, feedback.RespondedAt)

		require.Len(t, publisher.PublishedEvents(), 1)
		assert.Equal(t, events.EventFeedbackResponded, publisher.PublishedEvents()[0].Type)
	})

	t.Run("keeps the original responded_at", func(t *testing.T) {
		svc, repo, _ := newFeedbackServiceForTest(t)
		first := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
		repo.feedback.On("GetByID", ctx, uint(1)).
			Return(&models.Feedback{ID: 1, Status: models.FeedbackAddressed, RespondedAt: &first}, nil)
		repo.feedback.On("Update", ctx, mock.AnythingOfType("*models.Feedback")).Return(nil)

		feedback, err := svc.Respond(ctx, 1, models.RoleAdmin, 1, &RespondFeedbackRequest{
			Response: "Updated answer.",
		})
		require.NoError(t, err)
		assert.Equal(t, first, *feedback.RespondedAt)
	})

	t.Run("teacher responds", func(t *testing.T) {
		svc, repo, _ := newFeedbackServiceForTest(t)
		repo.feedback.On("GetByID", ctx, uint(1)).
			Return(&models.Feedback{ID: 1, SubmittedByID: 30, Status: models.FeedbackPending}, nil)
		repo.feedback.On("Update", ctx, mock.AnythingOfType("*models.Feedback")).Return(nil)

		feedback, err := svc.Respond(ctx, 2, models.RoleTeacher, 1, &RespondFeedbackRequest{
			Response: "Thanks, forwarded to the coordinator.",
		})
		require.NoError(t, err)
		require.NotNil(t, feedback.RespondedByID)
		assert.Equal(t, uint(2), *feedback.RespondedByID)
	})

	t.Run("students cannot respond", func(t *testing.T) {
		svc, _, _ := newFeedbackServiceForTest(t)
		_, err := svc.Respond(ctx, 30, models.RoleStudent, 1, &RespondFeedbackRequest{Response: "x"})
		assert.ErrorIs(t, err, ErrForbidden)
	})
}
