package models

import (
	"time"
)

type User struct {
	ID           uint   `json:"id" gorm:"primaryKey"`
	Username     string `json:"username" gorm:"uniqueIndex;not null;size:150" validate:"required,min=1,max=150,alphanum"`
	Email        string `json:"email" gorm:"uniqueIndex;not null;size:255" validate:"required,email"`
	PasswordHash string `json:"-" gorm:"not null;size:255"`
	FirstName    string `json:"first_name" gorm:"size:100"`
	LastName     string `json:"last_name" gorm:"size:100"`

	IsSuperuser bool `json:"is_superuser" gorm:"default:false"`
	IsActive    bool `json:"is_active" gorm:"default:true"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Profile *Profile `json:"profile,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

func (User) TableName() string {
	return "users"
}

// FullName joins first and last name for display.
func (u *User) FullName() string {
	if u.FirstName == "" && u.LastName == "" {
		return u.Username
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
