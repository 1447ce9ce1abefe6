package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/AEP-2025/lms-service/internal/auth"
	"github.com/AEP-2025/lms-service/internal/models"
	"github.com/AEP-2025/lms-service/internal/services"
	"github.com/AEP-2025/lms-service/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubUserService overrides only what the test exercises; any other call
// panics through the embedded nil interface.
type stubUserService struct {
	services.UserService
	highContrastUser    uint
	highContrastEnabled bool
}

func (s *stubUserService) SetHighContrast(ctx context.Context, userID uint, enabled bool) error {
	s.highContrastUser = userID
	s.highContrastEnabled = enabled
	return nil
}

func TestUserHandler_UpdateHighContrast(t *testing.T) {
	gin.SetMode(gin.TestMode)

	stub := &stubUserService{}
	handler := NewUserHandler(stub, utils.NewDevelopmentLogger())

	router := gin.New()
	router.PUT("/settings/high-contrast", func(c *gin.Context) {
		c.Set(auth.ContextUserIDKey, uint(30))
		c.Set(auth.ContextRoleKey, models.RoleStudent)
		handler.UpdateHighContrast(c)
	})

	t.Run("binds the high_contrast key", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPut, "/settings/high-contrast",
			strings.NewReader(`{"high_contrast": true}`))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, uint(30), stub.highContrastUser)
		assert.True(t, stub.highContrastEnabled)
		assert.Contains(t, rec.Body.String(), `"high_contrast":true`)
	})

	t.Run("disables the mode", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPut, "/settings/high-contrast",
			strings.NewReader(`{"high_contrast": false}`))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.False(t, stub.highContrastEnabled)
		assert.Contains(t, rec.Body.String(), `"high_contrast":false`)
	})
}
