package model

import (
	"time"
)

// Role is the closed set of account roles. The storage column is plain text,
// but services only ever write one of these values.
type Role string

const (
	RoleAdmin   Role = "Admin"
	RoleParent  Role = "Parent"
	RoleKid     Role = "Kid"
	RoleTeacher Role = "Teacher"
)

// Valid reports whether r is one of the known roles. Rows written by older
// builds may carry arbitrary strings; those pass through queries verbatim.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleParent, RoleKid, RoleTeacher:
		return true
	}
	return false
}

type User struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	FirstName    string `gorm:"size:100;not null" json:"first_name"`
	LastName     string `gorm:"size:100;not null" json:"last_name"`
	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PhoneNumber  string `gorm:"size:30" json:"phone_number"`
	PasswordHash string `gorm:"size:255" json:"-"`
	Role         Role   `gorm:"size:20;index;not null" json:"role"`
	IsActive     bool   `gorm:"default:true" json:"is_active"`

	// Kid-specific fields.
	GradeLevel           string `gorm:"size:20" json:"grade_level,omitempty"`
	ProgressPercentage   *int   `json:"progress_percentage,omitempty"`
	CompletedAssignments *int   `json:"completed_assignments,omitempty"`
	PendingAssignments   *int   `json:"pending_assignments,omitempty"`
	TotalPoints          *int   `json:"total_points,omitempty"`

	// Parent-specific fields.
	Address string `gorm:"type:text" json:"address,omitempty"`

	// Teacher-specific fields.
	Specialization    string `gorm:"size:100" json:"specialization,omitempty"`
	YearsOfExperience *int   `json:"years_of_experience,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// KidMetrics carries dashboard counter updates. Nil fields are left untouched.
type KidMetrics struct {
	ProgressPercentage   *int
	CompletedAssignments *int
	PendingAssignments   *int
	TotalPoints          *int
}
