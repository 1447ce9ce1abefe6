package models

import (
	"time"
)

type MaterialType string

const (
	MaterialVideo        MaterialType = "video"
	MaterialPDF          MaterialType = "pdf"
	MaterialNotes        MaterialType = "notes"
	MaterialPresentation MaterialType = "presentation"
	MaterialOther        MaterialType = "other"
)

// CourseMaterial is a downloadable or streamable resource attached to a
// course. File storage itself is external; only the path is kept.
type CourseMaterial struct {
	ID           uint         `json:"id" gorm:"primaryKey"`
	CourseID     uint         `json:"course_id" gorm:"not null;index" validate:"required"`
	Title        string       `json:"title" gorm:"not null;size:200" validate:"required,min=1,max=200"`
	Description  *string      `json:"description" gorm:"type:text"`
	MaterialType MaterialType `json:"material_type" gorm:"not null;size:20" validate:"required,oneof=video pdf notes presentation other"`

	FilePath *string `json:"file_path" gorm:"size:500"`
	VideoURL *string `json:"video_url" gorm:"size:500" validate:"omitempty,url"`
	Duration *string `json:"duration" gorm:"size:20"`

	// Sign language support
	SignLanguageVideoURL *string `json:"sign_language_video_url" gorm:"size:500" validate:"omitempty,url"`
	HasSignLanguage      bool    `json:"has_sign_language" gorm:"default:false"`

	// Accessibility
	Transcript     *string `json:"transcript" gorm:"type:text"`
	AltDescription *string `json:"alt_description" gorm:"type:text"`

	UploadedByID   uint    `json:"uploaded_by_id" gorm:"not null;index"`
	FileSize       *string `json:"file_size" gorm:"size:50"`
	IsDownloadable bool    `json:"is_downloadable" gorm:"default:true"`
	Order          int     `json:"order" gorm:"column:material_order;default:0"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Course     *Course `json:"course,omitempty" gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE"`
	UploadedBy *User   `json:"uploaded_by,omitempty" gorm:"foreignKey:UploadedByID;constraint:OnDelete:CASCADE"`
}

func (CourseMaterial) TableName() string {
	return "course_materials"
}
