package dto

// ChildSummary is one card on the parent dashboard.
type ChildSummary struct {
	ChildID              uint     `json:"child_id"`
	Name                 string   `json:"name"`
	GradeLevel           string   `json:"grade_level"`
	ProgressPercentage   int      `json:"progress_percentage"`
	CompletedAssignments int      `json:"completed_assignments"`
	PendingAssignments   int      `json:"pending_assignments"`
	TotalPoints          int      `json:"total_points"`
	AverageGrade         *float64 `json:"average_grade"`
	AverageBadge         string   `json:"average_badge"`
}

type ParentDashboard struct {
	ParentID uint           `json:"parent_id"`
	Children []ChildSummary `json:"children"`
}

// MonthlyProgress is one point on the six-month progress chart.
type MonthlyProgress struct {
	Month     string   `json:"month"` // "2026-01"
	Label     string   `json:"label"` // "Jan"
	Average   *float64 `json:"average_percentage"`
	Completed int      `json:"completed_assignments"`
}

type AdminStats struct {
	TotalUsers         int64          `json:"total_users"`
	UsersByRole        map[string]int `json:"users_by_role"`
	TotalAssignments   int64          `json:"total_assignments"`
	PendingResets      int64          `json:"pending_password_resets"`
	AuditLogCount      int64          `json:"audit_log_count"`
	RegistrationsByDay map[string]int `json:"registrations_by_day,omitempty"`
}
