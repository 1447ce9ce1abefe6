package services

import "github.com/AEP-2025/lms-service/internal/models"

// Action is a feature gate checked against the capability matrix. Handlers
// and services ask Can(role, action) instead of comparing role strings.
type Action string

const (
	ActionManageUsers        Action = "manage_users"
	ActionManageCourses      Action = "manage_courses"
	ActionViewCourses        Action = "view_courses"
	ActionManageLessons      Action = "manage_lessons"
	ActionManageMaterials    Action = "manage_materials"
	ActionManageAssignments  Action = "manage_assignments"
	ActionSubmitAssignment   Action = "submit_assignment"
	ActionGradeSubmissions   Action = "grade_submissions"
	ActionMarkAttendance     Action = "mark_attendance"
	ActionViewAttendance     Action = "view_attendance"
	ActionExportAttendance   Action = "export_attendance"
	ActionManageAnnouncement Action = "manage_announcements"
	ActionManageCompliance   Action = "manage_compliance"
	ActionSubmitFeedback     Action = "submit_feedback"
	ActionRespondFeedback    Action = "respond_feedback"
	ActionReportConduct      Action = "report_conduct"
	ActionViewConduct        Action = "view_conduct"
)

// capabilities is the single authority on which role may perform which
// action. Scoping (own course, own submission, linked student) is enforced
// by the owning service on top of this gate.
var capabilities = map[Action][]models.Role{
	ActionManageUsers:        {models.RoleAdmin},
	ActionManageCourses:      {models.RoleAdmin, models.RoleTeacher},
	ActionViewCourses:        {models.RoleAdmin, models.RoleTeacher, models.RoleStudent, models.RoleParent},
	ActionManageLessons:      {models.RoleAdmin, models.RoleTeacher},
	ActionManageMaterials:    {models.RoleAdmin, models.RoleTeacher},
	ActionManageAssignments:  {models.RoleAdmin, models.RoleTeacher},
	ActionSubmitAssignment:   {models.RoleStudent},
	ActionGradeSubmissions:   {models.RoleAdmin, models.RoleTeacher},
	ActionMarkAttendance:     {models.RoleAdmin, models.RoleTeacher},
	ActionViewAttendance:     {models.RoleAdmin, models.RoleTeacher, models.RoleStudent, models.RoleParent},
	ActionExportAttendance:   {models.RoleAdmin, models.RoleTeacher},
	ActionManageAnnouncement: {models.RoleAdmin, models.RoleTeacher},
	ActionManageCompliance:   {models.RoleAdmin},
	ActionSubmitFeedback:     {models.RoleAdmin, models.RoleTeacher, models.RoleStudent, models.RoleParent},
	ActionRespondFeedback:    {models.RoleAdmin, models.RoleTeacher},
	ActionReportConduct:      {models.RoleAdmin, models.RoleTeacher},
	ActionViewConduct:        {models.RoleAdmin, models.RoleTeacher, models.RoleParent},
}

// Can reports whether the role is allowed to perform the action.
func Can(role models.Role, action Action) bool {
	for _, allowed := range capabilities[action] {
		if role == allowed {
			return true
		}
	}
	return false
}
