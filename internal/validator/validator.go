package validator

import (
	"strings"
	"time"

	"github.com/AEP-2025/lms-service/internal/models"
	"github.com/go-playground/validator/v10"
)

// Validator wraps the struct-tag validator with the service's custom rules.
type Validator struct {
	structValidator *validator.Validate
}

// New creates a new validator instance with all custom rules registered.
func New() *Validator {
	structValidator := validator.New()
	registerCustomValidators(structValidator)

	return &Validator{
		structValidator: structValidator,
	}
}

// ValidateStruct validates struct tags and returns the raw validator error.
func (v *Validator) ValidateStruct(s interface{}) error {
	return v.structValidator.Struct(s)
}

// registerCustomValidators registers all custom validation functions.
func registerCustomValidators(validate *validator.Validate) {
	validate.RegisterValidation("user_role", validateUserRole)
	validate.RegisterValidation("attendance_status", validateAttendanceStatus)
	validate.RegisterValidation("font_size", validateFontSize)
	validate.RegisterValidation("target_roles", validateTargetRoles)
	validate.RegisterValidation("date_string", validateDateString)
}

func validateUserRole(fl validator.FieldLevel) bool {
	_, err := models.ParseRole(fl.Field().String())
	return err == nil
}

func validateAttendanceStatus(fl validator.FieldLevel) bool {
	switch models.AttendanceStatus(fl.Field().String()) {
	case models.AttendancePresent, models.AttendanceAbsent, models.AttendanceLate:
		return true
	default:
		return false
	}
}

func validateFontSize(fl validator.FieldLevel) bool {
	switch models.FontSize(fl.Field().String()) {
	case models.FontSizeSmall, models.FontSizeMedium, models.FontSizeLarge:
		return true
	default:
		return false
	}
}

// validateTargetRoles accepts the literal "all" or a comma-joined list of
// known role tags.
func validateTargetRoles(fl validator.FieldLevel) bool {
	raw := strings.TrimSpace(fl.Field().String())
	if raw == models.TargetAll {
		return true
	}
	for _, tag := range strings.Split(raw, ",") {
		if _, err := models.ParseRole(strings.TrimSpace(tag)); err != nil {
			return false
		}
	}
	return true
}

func validateDateString(fl validator.FieldLevel) bool {
	_, err := time.Parse("2006-01-02", fl.Field().String())
	return err == nil
}
