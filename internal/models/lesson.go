package models

import (
	"time"
)

type ContentType string

const (
	ContentTypeText  ContentType = "text"
	ContentTypeAudio ContentType = "audio"
	ContentTypeVideo ContentType = "video"
)

// Lesson is a unit of course content. Listing order is
// (course, order, created_at).
type Lesson struct {
	ID          uint        `json:"id" gorm:"primaryKey"`
	CourseID    uint        `json:"course_id" gorm:"not null;index" validate:"required"`
	Title       string      `json:"title" gorm:"not null;size:200" validate:"required,min=1,max=200"`
	Description string      `json:"description" gorm:"type:text" validate:"omitempty,max=2000"`
	ContentType ContentType `json:"content_type" gorm:"not null;size:10" validate:"required,oneof=text audio video"`

	TextContent *string `json:"text_content" gorm:"type:text"`
	FilePath    *string `json:"file_path" gorm:"size:500"`
	VideoURL    *string `json:"video_url" gorm:"size:500" validate:"omitempty,url"`

	// Sign language support
	SignLanguageVideoURL *string `json:"sign_language_video_url" gorm:"size:500" validate:"omitempty,url"`
	HasSignLanguage      bool    `json:"has_sign_language" gorm:"default:false"`

	// Accessibility
	AltText    *string `json:"alt_text" gorm:"type:text"`
	Transcript *string `json:"transcript" gorm:"type:text"`

	Order     int       `json:"order" gorm:"column:lesson_order;default:0"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	Course *Course `json:"course,omitempty" gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE"`
}

func (Lesson) TableName() string {
	return "lessons"
}
