package services

import (
	"context"
	"testing"

	"github.com/AEP-2025/lms-service/internal/events"
	"github.com/AEP-2025/lms-service/internal/models"
	"github.com/AEP-2025/lms-service/internal/utils"
	"github.com/AEP-2025/lms-service/internal/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newAnnouncementServiceForTest(t *testing.T) (AnnouncementService, *mockRepository, *events.MockEventPublisher) {
	t.Helper()
	repo := newMockRepository()
	publisher := events.NewMockEventPublisher()
	svc := NewAnnouncementService(repo, publisher, validator.New(), utils.NewDevelopmentLogger())
	return svc, repo, publisher
}

func TestAnnouncementService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults the audience to all and publishes", func(t *testing.T) {
		svc, repo, publisher := newAnnouncementServiceForTest(t)
		repo.announcements.On("Create", ctx, mock.AnythingOfType("*models.Announcement")).Return(nil)

		announcement, err := svc.Create(ctx, 2, models.RoleTeacher, &CreateAnnouncementRequest{
			Title:   "Exam schedule",
			Content: "Finals start Monday.",
		})
		require.NoError(t, err)
		assert.Equal(t, models.TargetAll, announcement.TargetRoles)
		assert.True(t, announcement.IsActive)

		require.Len(t, publisher.PublishedEvents(), 1)
		assert.Equal(t, events.EventAnnouncementPublished, publisher.PublishedEvents()[0].Type)
	})

	t.Run("rejects bad audience selectors", func(t *testing.T) {
		svc, _, _ := newAnnouncementServiceForTest(t)
		_, err := svc.Create(ctx, 2, models.RoleTeacher, &CreateAnnouncementRequest{
			Title:       "Exam schedule",
			Content:     "Finals start Monday.",
			TargetRoles: "teacher,wizard",
		})
		assert.True(t, IsValidation(err))
	})

	t.Run("students may not create", func(t *testing.T) {
		svc, _, _ := newAnnouncementServiceForTest(t)
		_, err := svc.Create(ctx, 30, models.RoleStudent, &CreateAnnouncementRequest{
			Title:   "x",
			Content: "y",
		})
		assert.ErrorIs(t, err, ErrForbidden)
	})
}

func TestAnnouncementService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("a teacher may only edit own announcements", func(t *testing.T) {
		svc, repo, _ := newAnnouncementServiceForTest(t)
		repo.announcements.On("GetByID", ctx, uint(1)).
			Return(&models.Announcement{ID: 1, CreatedByID: 99}, nil)

		title := "edited"
		_, err := svc.Update(ctx, 2, models.RoleTeacher, 1, &UpdateAnnouncementRequest{Title: &title})
		assert.True(t, IsAccessDenied(err))
	})

	t.Run("admin may edit anything", func(t *testing.T) {
		svc, repo, _ := newAnnouncementServiceForTest(t)
		repo.announcements.On("GetByID", ctx, uint(1)).
			Return(&models.Announcement{ID: 1, CreatedByID: 99, Title: "old"}, nil)
		repo.announcements.On("Update", ctx, mock.AnythingOfType("*models.Announcement")).Return(nil)

		title := "edited"
		updated, err := svc.Update(ctx, 5, models.RoleAdmin, 1, &UpdateAnnouncementRequest{Title: &title})
		require.NoError(t, err)
		assert.Equal(t, "edited", updated.Title)
	})
}

func TestAnnouncementService_ListVisible(t *testing.T) {
	ctx := context.Background()

	active := []*models.Announcement{
		{ID: 1, TargetRoles: "all"},
		{ID: 2, TargetRoles: "teacher,student"},
		{ID: 3, TargetRoles: "parent"},
	}

	t.Run("filters by audience for non-admins", func(t *testing.T) {
		svc, repo, _ := newAnnouncementServiceForTest(t)
		repo.announcements.On("ListActive", ctx).Return(active, nil)

		visible, err := svc.ListVisible(ctx, models.RoleStudent)
		require.NoError(t, err)
		require.Len(t, visible, 2)
		assert.Equal(t, uint(1), visible[0].ID)
		assert.Equal(t, uint(2), visible[1].ID)
	})

	t.Run("parents see their slice", func(t *testing.T) {
		svc, repo, _ := newAnnouncementServiceForTest(t)
		repo.announcements.On("ListActive", ctx).Return(active, nil)

		visible, err := svc.ListVisible(ctx, models.RoleParent)
		require.NoError(t, err)
		require.Len(t, visible, 2)
		assert.Equal(t, uint(1), visible[0].ID)
		assert.Equal(t, uint(3), visible[1].ID)
	})

	t.Run("admins get the unfiltered list", func(t *testing.T) {
		svc, repo, _ := newAnnouncementServiceForTest(t)
		all := append(active, &models.Announcement{ID: 4, TargetRoles: "all", IsActive: false})
		repo.announcements.On("ListAll", ctx).Return(all, nil)

		visible, err := svc.ListVisible(ctx, models.RoleAdmin)
		require.NoError(t, err)
		assert.Len(t, visible, 4)
	})
}
