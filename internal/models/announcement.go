package models

import (
	"strings"
	"time"
)

// TargetAll is the audience selector meaning every role sees the
// announcement.
const TargetAll = "all"

// Announcement is broadcast to one or more roles. The audience is stored as
// the literal "all" or a comma-joined set of role tags.
type Announcement struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	Title       string `json:"title" gorm:"not null;size:200" validate:"required,min=1,max=200"`
	Content     string `json:"content" gorm:"type:text;not null" validate:"required"`
	CreatedByID uint   `json:"created_by_id" gorm:"not null;index"`

	TargetRoles string `json:"target_roles" gorm:"default:all;size:100" validate:"omitempty,target_roles"`
	IsActive    bool   `json:"is_active" gorm:"default:true;index"`

	CreatedAt time.Time `json:"created_at"`

	// Relations
	CreatedBy *User `json:"created_by,omitempty" gorm:"foreignKey:CreatedByID;constraint:OnDelete:CASCADE"`
}

func (Announcement) TableName() string {
	return "announcements"
}

// TargetRoleSet parses the stored audience selector into the set of roles it
// names. Unknown tags are dropped. An exact-membership parse is used rather
// than a substring test so that a tag can never match part of another role
// name.
func (a *Announcement) TargetRoleSet() map[Role]bool {
	set := make(map[Role]bool)
	for _, tag := range strings.Split(a.TargetRoles, ",") {
		role, err := ParseRole(strings.TrimSpace(tag))
		if err != nil {
			continue
		}
		set[role] = true
	}
	return set
}

// VisibleTo reports whether a viewer with the given role is in the
// announcement's audience. Admin listings bypass this check entirely.
func (a *Announcement) VisibleTo(role Role) bool {
	if strings.TrimSpace(a.TargetRoles) == TargetAll {
		return true
	}
	return a.TargetRoleSet()[role]
}

// JoinTargetRoles builds the stored selector from a role list, falling back
// to "all" when the list is empty.
func JoinTargetRoles(roles []Role) string {
	if len(roles) == 0 {
		return TargetAll
	}
	tags := make([]string, len(roles))
	for i, r := range roles {
		tags[i] = string(r)
	}
	return strings.Join(tags, ",")
}
