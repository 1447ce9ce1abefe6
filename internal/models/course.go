package models

import (
	"time"
)

type Course struct {
	ID          uint    `json:"id" gorm:"primaryKey"`
	Title       string  `json:"title" gorm:"not null;size:200;index" validate:"required,min=1,max=200"`
	Description string  `json:"description" gorm:"type:text" validate:"omitempty,max=2000"`
	Code        string  `json:"code" gorm:"column:course_code;uniqueIndex;not null;size:20" validate:"required,min=1,max=20"`
	TeacherID   uint    `json:"teacher_id" gorm:"not null;index" validate:"required"`
	IsActive    bool    `json:"is_active" gorm:"default:true"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Teacher  *User  `json:"teacher,omitempty" gorm:"foreignKey:TeacherID;constraint:OnDelete:CASCADE"`
	Students []User `json:"students,omitempty" gorm:"many2many:course_students;constraint:OnDelete:CASCADE"`

	// Computed fields (not stored)
	StudentCount int `json:"student_count,omitempty" gorm:"-"`
	LessonCount  int `json:"lesson_count,omitempty" gorm:"-"`
}

func (Course) TableName() string {
	return "courses"
}
