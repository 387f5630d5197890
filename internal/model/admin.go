package model

import (
	"strings"
	"time"
)

// AdminRole is separate from Role: admin accounts live in their own table and
// never appear in the regular user listing.
type AdminRole string

const (
	AdminRoleAdmin      AdminRole = "Admin"
	AdminRoleSuperAdmin AdminRole = "SuperAdmin"
)

type AdminUser struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Username     string     `gorm:"size:50;uniqueIndex;not null" json:"username"`
	Email        string     `gorm:"size:100;uniqueIndex;not null" json:"email"`
	FirstName    string     `gorm:"size:100" json:"first_name"`
	LastName     string     `gorm:"size:100" json:"last_name"`
	PasswordHash string     `gorm:"size:255;not null" json:"-"`
	Role         AdminRole  `gorm:"size:20;not null;default:Admin" json:"role"`
	IsActive     bool       `gorm:"not null;default:true" json:"is_active"`
	CreatedAt    time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
	CreatedBy    *uint      `json:"created_by,omitempty"`
	UpdatedBy    *uint      `json:"updated_by,omitempty"`
}

func (a *AdminUser) FullName() string {
	return strings.TrimSpace(a.FirstName + " " + a.LastName)
}
