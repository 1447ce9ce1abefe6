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
)

func newUserServiceForTest(t *testing.T) (UserService, *mockRepository) {
	t.Helper()
	repo := newMockRepository()
	svc := NewUserService(repo, validator.New(), utils.NewDevelopmentLogger())
	return svc, repo
}

func TestUserService_Create(t *testing.T) {
	ctx := context.Background()

	validRequest := func() *CreateUserRequest {
		return &CreateUserRequest{
			Username: "principal",
			Email:    "principal@example.com",
			Password: "supersecret",
			Role:     "admin",
		}
	}

	t.Run("admin provisions an admin account", func(t *testing.T) {
		svc, repo := newUserServiceForTest(t)
		repo.users.On("ExistsByUsername", ctx, "principal").Return(false, nil)
		repo.users.On("ExistsByEmail", ctx, "principal@example.com").Return(false, nil)
		repo.users.On("Create", ctx, mock.AnythingOfType("*models.User")).
			Run(func(args mock.Arguments) {
				args.Get(1).(*models.User).ID = 7
			}).Return(nil)
		repo.profiles.On("Create", ctx, mock.AnythingOfType("*models.Profile")).Return(nil)

		user, err := svc.Create(ctx, models.RoleAdmin, validRequest())
		require.NoError(t, err)
		assert.Equal(t, uint(7), user.ID)
		require.NotNil(t, user.Profile)
		assert.Equal(t, models.RoleAdmin, user.Profile.Role)
	})

	t.Run("non-admin is forbidden", func(t *testing.T) {
		svc, repo := newUserServiceForTest(t)

		_, err := svc.Create(ctx, models.RoleTeacher, validRequest())
		assert.ErrorIs(t, err, ErrForbidden)
		repo.users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("rejects taken email", func(t *testing.T) {
		svc, repo := newUserServiceForTest(t)
		repo.users.On("ExistsByUsername", ctx, "principal").Return(false, nil)
		repo.users.On("ExistsByEmail", ctx, "principal@example.com").Return(true, nil)

		_, err := svc.Create(ctx, models.RoleAdmin, validRequest())
		assert.ErrorIs(t, err, ErrDuplicateEmail)
	})
}

func TestUserService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("admin edits names and active flag", func(t *testing.T) {
		svc, repo := newUserServiceForTest(t)
		repo.users.On("GetByID", ctx, uint(7)).
			Return(&models.User{ID: 7, Email: "old@example.com", IsActive: true}, nil)
		repo.users.On("Update", ctx, mock.AnythingOfType("*models.User")).Return(nil)

		first := "Grace"
		inactive := false
		user, err := svc.Update(ctx, models.RoleAdmin, 7, &UpdateUserRequest{
			FirstName: &first,
			IsActive:  &inactive,
		})
		require.NoError(t, err)
		assert.Equal(t, "Grace", user.FirstName)
		assert.False(t, user.IsActive)
	})

	t.Run("email change checks uniqueness", func(t *testing.T) {
		svc, repo := newUserServiceForTest(t)
		repo.users.On("GetByID", ctx, uint(7)).
			Return(&models.User{ID: 7, Email: "old@example.com"}, nil)
		repo.users.On("ExistsByEmail", ctx, "new@example.com").Return(true, nil)

		email := "new@example.com"
		_, err := svc.Update(ctx, models.RoleAdmin, 7, &UpdateUserRequest{Email: &email})
		assert.ErrorIs(t, err, ErrDuplicateEmail)
	})

	t.Run("teacher is forbidden", func(t *testing.T) {
		svc, _ := newUserServiceForTest(t)
		_, err := svc.Update(ctx, models.RoleTeacher, 7, &UpdateUserRequest{})
		assert.ErrorIs(t, err, ErrForbidden)
	})
}

func TestUserService_SetFontSize(t *testing.T) {
	ctx := context.Background()

	t.Run("persists a known size", func(t *testing.T) {
		svc, repo := newUserServiceForTest(t)
		repo.profiles.On("UpdateFontSize", ctx, uint(30), models.FontSizeLarge).Return(nil)

		assert.NoError(t, svc.SetFontSize(ctx, 30, models.FontSizeLarge))
	})

	t.Run("rejects unknown sizes", func(t *testing.T) {
		svc, repo := newUserServiceForTest(t)

		err := svc.SetFontSize(ctx, 30, models.FontSize("huge"))
		assert.True(t, IsValidation(err))
		repo.profiles.AssertNotCalled(t, "UpdateFontSize", mock.Anything, mock.Anything, mock.Anything)
	})
}
