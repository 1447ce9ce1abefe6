package models

import (
	"time"
)

type ComplianceStatus string

const (
	ComplianceCompliant    ComplianceStatus = "compliant"
	CompliancePartial      ComplianceStatus = "partial"
	ComplianceNonCompliant ComplianceStatus = "non_compliant"
)

// ComplianceReport tracks an institute's accessibility compliance. Admin
// only, on both the read and write side.
type ComplianceReport struct {
	ID            uint    `json:"id" gorm:"primaryKey"`
	InstituteName string  `json:"institute_name" gorm:"not null;size:200" validate:"required,min=1,max=200"`
	Department    *string `json:"department" gorm:"size:100"`

	AccessibilityStatus    ComplianceStatus `json:"accessibility_status" gorm:"not null;size:20" validate:"required,oneof=compliant partial non_compliant"`
	CompliancePercentage   int              `json:"compliance_percentage" gorm:"default:0" validate:"min=0,max=100"`
	Comments               string           `json:"comments" gorm:"type:text" validate:"required"`
	ImprovementSuggestions *string          `json:"improvement_suggestions" gorm:"type:text"`

	ReportedByID uint `json:"reported_by_id" gorm:"not null;index"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	ReportedBy *User `json:"reported_by,omitempty" gorm:"foreignKey:ReportedByID;constraint:OnDelete:CASCADE"`
}

func (ComplianceReport) TableName() string {
	return "compliance_reports"
}
