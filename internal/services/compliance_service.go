package services

import (
	"context"
	"fmt"

	apperrors "github.com/AEP-2025/lms-service/internal/errors"
	"github.com/AEP-2025/lms-service/internal/models"
	"github.com/AEP-2025/lms-service/internal/repositories"
	"github.com/AEP-2025/lms-service/internal/utils"
	"github.com/AEP-2025/lms-service/internal/validator"
)

// ComplianceService is admin-only on both the read and write side.
type ComplianceService interface {
	Create(ctx context.Context, actorID uint, actorRole models.Role, req *CreateComplianceRequest) (*models.ComplianceReport, error)
	Get(ctx context.Context, actorRole models.Role, reportID uint) (*models.ComplianceReport, error)
	List(ctx context.Context, actorRole models.Role) ([]*models.ComplianceReport, error)

	// BulkUpdateStatus flips the accessibility status on many reports at
	// once and returns how many rows changed.
	BulkUpdateStatus(ctx context.Context, actorRole models.Role, ids []uint, status string) (int64, error)
}

type complianceService struct {
	repo      repositories.Repository
	validator *validator.Validator
	logger    utils.Logger
}

func NewComplianceService(repo repositories.Repository, v *validator.Validator, logger utils.Logger) ComplianceService {
	return &complianceService{repo: repo, validator: v, logger: logger}
}

type CreateComplianceRequest struct {
	InstituteName          string  `json:"institute_name" validate:"required,min=1,max=200"`
	Department             *string `json:"department" validate:"omitempty,max=100"`
	AccessibilityStatus    string  `json:"accessibility_status" validate:"required,oneof=compliant partial non_compliant"`
	CompliancePercentage   int     `json:"compliance_percentage" validate:"min=0,max=100"`
	Comments               string  `json:"comments" validate:"required"`
	ImprovementSuggestions *string `json:"improvement_suggestions"`
}

func (s *complianceService) Create(ctx context.Context, actorID uint, actorRole models.Role, req *CreateComplianceRequest) (*models.ComplianceReport, error) {
	if !Can(actorRole, ActionManageCompliance) {
		return nil, ErrForbidden
	}
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, apperrors.ToValidationErrors(err)
	}

	report := &models.ComplianceReport{
		InstituteName:          req.InstituteName,
		Department:             req.Department,
		AccessibilityStatus:    models.ComplianceStatus(req.AccessibilityStatus),
		CompliancePercentage:   req.CompliancePercentage,
		Comments:               req.Comments,
		ImprovementSuggestions: req.ImprovementSuggestions,
		ReportedByID:           actorID,
	}
	if err := s.repo.Compliance().Create(ctx, report); err != nil {
		return nil, fmt.Errorf("failed to create compliance report: %w", err)
	}

	s.logger.InfoContext(ctx, "compliance report created",
		"report_id", report.ID, "institute", report.InstituteName)
	return report, nil
}

func (s *complianceService) Get(ctx context.Context, actorRole models.Role, reportID uint) (*models.ComplianceReport, error) {
	if !Can(actorRole, ActionManageCompliance) {
		return nil, ErrForbidden
	}
	report, err := s.repo.Compliance().GetByID(ctx, reportID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrComplianceNotFound
		}
		return nil, fmt.Errorf("failed to load compliance report: %w", err)
	}
	return report, nil
}

func (s *complianceService) List(ctx context.Context, actorRole models.Role) ([]*models.ComplianceReport, error) {
	if !Can(actorRole, ActionManageCompliance) {
		return nil, ErrForbidden
	}
	return s.repo.Compliance().List(ctx)
}

func (s *complianceService) BulkUpdateStatus(ctx context.Context, actorRole models.Role, ids []uint, status string) (int64, error) {
	if !Can(actorRole, ActionManageCompliance) {
		return 0, ErrForbidden
	}
	parsed := models.ComplianceStatus(status)
	switch parsed {
	case models.ComplianceCompliant, models.CompliancePartial, models.ComplianceNonCompliant:
	default:
		return 0, ValidationErrors{*NewValidationError("status", "must be compliant, partial, or non_compliant", status)}
	}

	affected, err := s.repo.Compliance().BulkUpdateStatus(ctx, ids, parsed)
	if err != nil {
		return 0, fmt.Errorf("failed to bulk update compliance status: %w", err)
	}

	s.logger.InfoContext(ctx, "compliance statuses updated",
		"count", affected, "status", parsed)
	return affected, nil
}
