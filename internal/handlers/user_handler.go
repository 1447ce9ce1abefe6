package handlers

import (
	"net/http"
	"strconv"

	"github.com/AEP-2025/lms-service/internal/auth"
	"github.com/AEP-2025/lms-service/internal/models"
	"github.com/AEP-2025/lms-service/internal/repositories"
	"github.com/AEP-2025/lms-service/internal/services"
	"github.com/AEP-2025/lms-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	BaseHandler
	userService services.UserService
}

func NewUserHandler(userService services.UserService, logger utils.Logger) *UserHandler {
	return &UserHandler{
		BaseHandler: NewBaseHandler(logger),
		userService: userService,
	}
}

// CreateUser provisions an account with any role. Admin only.
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req services.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	user, err := h.userService.Create(c.Request.Context(), auth.CurrentRole(c), &req)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, SuccessResponse{Message: "User created", Data: user})
}

// ListUsers returns accounts, optionally filtered by role. Admin only.
func (h *UserHandler) ListUsers(c *gin.Context) {
	filters := repositories.UserFilters{}
	if roleStr := c.Query("role"); roleStr != "" {
		role, err := models.ParseRole(roleStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Message: "Invalid role filter",
				Details: err.Error(),
			})
			return
		}
		filters.Role = &role
	}
	if limit, err := strconv.Atoi(c.DefaultQuery("limit", "0")); err == nil {
		filters.Limit = limit
	}
	if offset, err := strconv.Atoi(c.DefaultQuery("offset", "0")); err == nil {
		filters.Offset = offset
	}

	users, total, err := h.userService.List(c.Request.Context(), auth.CurrentRole(c), filters)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Message: "Users retrieved",
		Data:    gin.H{"users": users, "total": total},
	})
}

func (h *UserHandler) GetUser(c *gin.Context) {
	userID := h.parseIDParam(c, "id")
	if userID == 0 {
		return
	}

	user, err := h.userService.Get(c.Request.Context(), auth.CurrentUserID(c), auth.CurrentRole(c), userID)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "User retrieved", Data: user})
}

func (h *UserHandler) UpdateUser(c *gin.Context) {
	userID := h.parseIDParam(c, "id")
	if userID == 0 {
		return
	}

	var req services.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	user, err := h.userService.Update(c.Request.Context(), auth.CurrentRole(c), userID, &req)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "User updated", Data: user})
}

func (h *UserHandler) DeleteUser(c *gin.Context) {
	userID := h.parseIDParam(c, "id")
	if userID == 0 {
		return
	}

	if err := h.userService.Delete(c.Request.Context(), auth.CurrentRole(c), userID); err != nil {
		h.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "User deleted"})
}

// ===== PROFILE SETTINGS =====

func (h *UserHandler) GetProfileSettings(c *gin.Context) {
	profile, err := h.userService.GetProfile(c.Request.Context(), auth.CurrentUserID(c))
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Profile retrieved", Data: profile})
}

func (h *UserHandler) UpdateProfileSettings(c *gin.Context) {
	var req services.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	profile, err := h.userService.UpdateProfile(c.Request.Context(), auth.CurrentUserID(c), &req)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Profile updated", Data: profile})
}

type fontSizeRequest struct {
	FontSize string `json:"font_size"`
}

// UpdateFontSize is the accessibility quick toggle used by the font size
// switcher.
func (h *UserHandler) UpdateFontSize(c *gin.Context) {
	var req fontSizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	if err := h.userService.SetFontSize(c.Request.Context(), auth.CurrentUserID(c), models.FontSize(req.FontSize)); err != nil {
		h.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{
		Message: "Font size updated",
		Data:    gin.H{"font_size": req.FontSize},
	})
}

type highContrastRequest struct {
	HighContrast bool `json:"high_contrast"`
}

func (h *UserHandler) UpdateHighContrast(c *gin.Context) {
	var req highContrastRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	if err := h.userService.SetHighContrast(c.Request.Context(), auth.CurrentUserID(c), req.HighContrast); err != nil {
		h.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{
		Message: "High contrast mode updated",
		Data:    gin.H{"high_contrast": req.HighContrast},
	})
}
