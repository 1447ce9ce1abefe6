package models

import (
	"time"
)

type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceAbsent  AttendanceStatus = "absent"
	AttendanceLate    AttendanceStatus = "late"
)

// Attendance records one student's status in one course on one date.
// The (student, course, date) triple is unique; marking is an upsert.
type Attendance struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	StudentID uint      `json:"student_id" gorm:"not null;uniqueIndex:idx_attendance_student_course_date" validate:"required"`
	CourseID  uint      `json:"course_id" gorm:"not null;uniqueIndex:idx_attendance_student_course_date;index" validate:"required"`
	Date      time.Time `json:"date" gorm:"type:date;not null;uniqueIndex:idx_attendance_student_course_date;index" validate:"required"`

	Status     AttendanceStatus `json:"status" gorm:"not null;size:10" validate:"required,attendance_status"`
	Remarks    *string          `json:"remarks" gorm:"type:text"`
	MarkedByID uint             `json:"marked_by_id" gorm:"not null"`

	// Relations
	Student  *User   `json:"student,omitempty" gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE"`
	Course   *Course `json:"course,omitempty" gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE"`
	MarkedBy *User   `json:"marked_by,omitempty" gorm:"foreignKey:MarkedByID;constraint:OnDelete:CASCADE"`
}

func (Attendance) TableName() string {
	return "attendance_records"
}
