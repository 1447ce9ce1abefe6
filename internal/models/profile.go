package models

import (
	"time"

	"gorm.io/datatypes"
)

type DisabilityType string

const (
	DisabilityNone     DisabilityType = "none"
	DisabilityVisual   DisabilityType = "visual"
	DisabilityHearing  DisabilityType = "hearing"
	DisabilityMobility DisabilityType = "mobility"
	DisabilityLearning DisabilityType = "learning"
	DisabilityMultiple DisabilityType = "multiple"
)

type ContentFormat string

const (
	ContentFormatText  ContentFormat = "text"
	ContentFormatAudio ContentFormat = "audio"
	ContentFormatVideo ContentFormat = "video"
	ContentFormatMixed ContentFormat = "mixed"
)

type FontSize string

const (
	FontSizeSmall  FontSize = "small"
	FontSizeMedium FontSize = "medium"
	FontSizeLarge  FontSize = "large"
)

// Profile extends a User with its role and accessibility preferences.
// The role is set once at creation; the normal edit path never changes it.
type Profile struct {
	ID     uint `json:"id" gorm:"primaryKey"`
	UserID uint `json:"user_id" gorm:"uniqueIndex;not null"`
	Role   Role `json:"role" gorm:"not null;default:student;size:20;index" validate:"omitempty,user_role"`

	Phone          *string `json:"phone" gorm:"size:15"`
	Address        *string `json:"address" gorm:"type:text"`
	ProfilePicture *string `json:"profile_picture" gorm:"size:500"`

	// Accessibility preferences
	DisabilityType         DisabilityType `json:"disability_type" gorm:"default:none;size:20" validate:"omitempty,oneof=none visual hearing mobility learning multiple"`
	AssistanceRequired     *string        `json:"assistance_required" gorm:"type:text"`
	PreferredContentFormat ContentFormat  `json:"preferred_content_format" gorm:"default:mixed;size:10" validate:"omitempty,oneof=text audio video mixed"`
	HighContrastMode       bool           `json:"high_contrast_mode" gorm:"default:false"`
	FontSize               FontSize       `json:"font_size" gorm:"default:medium;size:10" validate:"omitempty,font_size"`

	// Parent accounts follow exactly one student.
	LinkedStudentID *uint `json:"linked_student_id" gorm:"index"`

	NotificationPrefs datatypes.JSON `json:"notification_prefs" gorm:"type:jsonb"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	User          *User `json:"-" gorm:"foreignKey:UserID"`
	LinkedStudent *User `json:"linked_student,omitempty" gorm:"foreignKey:LinkedStudentID;constraint:OnDelete:SET NULL"`
}

func (Profile) TableName() string {
	return "profiles"
}
