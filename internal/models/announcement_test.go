package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnnouncement_VisibleTo(t *testing.T) {
	tests := []struct {
		name        string
		targetRoles string
		role        Role
		visible     bool
	}{
		{"all includes teacher", "all", RoleTeacher, true},
		{"all includes parent", "all", RoleParent, true},
		{"listed role matches", "teacher,student", RoleStudent, true},
		{"unlisted role does not", "teacher,student", RoleParent, false},
		{"single role selector", "parent", RoleParent, true},
		{"single role excludes others", "parent", RoleStudent, false},
		{"whitespace is tolerated", " teacher , student ", RoleTeacher, true},
		{"tag must match a whole role", "teachers", RoleTeacher, false},
		{"unknown tags are dropped", "wizard,student", RoleStudent, true},
		{"empty selector hides from everyone", "", RoleAdmin, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := &Announcement{TargetRoles: tt.targetRoles}
			assert.Equal(t, tt.visible, a.VisibleTo(tt.role))
		})
	}
}

func TestAnnouncement_TargetRoleSet(t *testing.T) {
	a := &Announcement{TargetRoles: "teacher, student,wizard"}
	set := a.TargetRoleSet()
	assert.True(t, set[RoleTeacher])
	assert.True(t, set[RoleStudent])
	assert.False(t, set[RoleParent])
	assert.Len(t, set, 2)
}

func TestJoinTargetRoles(t *testing.T) {
	assert.Equal(t, "all", JoinTargetRoles(nil))
	assert.Equal(t, "teacher", JoinTargetRoles([]Role{RoleTeacher}))
	assert.Equal(t, "teacher,parent", JoinTargetRoles([]Role{RoleTeacher, RoleParent}))
}
