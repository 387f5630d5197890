package model

import (
	"time"
)

// AuditAction is the fixed vocabulary of admin-attributable actions.
type AuditAction string

const (
	ActionLogin  AuditAction = "LOGIN"
	ActionLogout AuditAction = "LOGOUT"

	ActionCreateUser     AuditAction = "CREATE_USER"
	ActionUpdateUser     AuditAction = "UPDATE_USER"
	ActionDeleteUser     AuditAction = "DELETE_USER"
	ActionResetPassword  AuditAction = "RESET_PASSWORD"
	ActionActivateUser   AuditAction = "ACTIVATE_USER"
	ActionDeactivateUser AuditAction = "DEACTIVATE_USER"
	ActionViewUsers      AuditAction = "VIEW_USERS"
	ActionViewUser       AuditAction = "VIEW_USER"
	ActionSearchUsers    AuditAction = "SEARCH_USERS"

	ActionBulkDelete AuditAction = "BULK_DELETE"
	ActionBulkUpdate AuditAction = "BULK_UPDATE"

	ActionCreateRelationship     AuditAction = "CREATE_RELATIONSHIP"
	ActionRemoveRelationship     AuditAction = "REMOVE_RELATIONSHIP"
	ActionActivateRelationship   AuditAction = "ACTIVATE_RELATIONSHIP"
	ActionDeactivateRelationship AuditAction = "DEACTIVATE_RELATIONSHIP"
	ActionViewRelationships      AuditAction = "VIEW_RELATIONSHIPS"

	ActionCreateAdmin AuditAction = "CREATE_ADMIN"
	ActionViewAdmins  AuditAction = "VIEW_ADMINS"

	ActionViewStats             AuditAction = "VIEW_STATS"
	ActionViewRegistrationStats AuditAction = "VIEW_REGISTRATION_STATS"
	ActionViewRecentUsers       AuditAction = "VIEW_RECENT_USERS"
	ActionViewAuditLogs         AuditAction = "VIEW_AUDIT_LOGS"
	ActionExportData            AuditAction = "EXPORT_DATA"

	ActionPasswordResetRequest   AuditAction = "PASSWORD_RESET_REQUEST"
	ActionPasswordResetProcessed AuditAction = "PASSWORD_RESET_PROCESSED"
	ActionPasswordResetCancelled AuditAction = "PASSWORD_RESET_CANCELLED"
)

// EntityType names the table an audit row refers to.
type EntityType string

const (
	EntityUser                 EntityType = "User"
	EntityAdminUser            EntityType = "AdminUser"
	EntityAssignment           EntityType = "Assignment"
	EntityGrade                EntityType = "Grade"
	EntityParentChild          EntityType = "ParentChild"
	EntityPasswordResetRequest EntityType = "PasswordResetRequest"
	EntityAuditLog             EntityType = "AdminAuditLog"
)

// AdminAuditLog is an append-only trail of admin actions. Rows are never
// updated or deleted after creation.
type AdminAuditLog struct {
	ID             uint        `gorm:"primaryKey" json:"id"`
	AdminUserID    uint        `gorm:"index;not null" json:"admin_user_id"`
	Action         AuditAction `gorm:"size:50;index;not null" json:"action"`
	EntityType     EntityType  `gorm:"size:50;index;not null" json:"entity_type"`
	EntityID       *uint       `json:"entity_id,omitempty"`
	OldValues      string      `gorm:"type:text" json:"old_values"`
	NewValues      string      `gorm:"type:text" json:"new_values"`
	IPAddress      string      `gorm:"size:45" json:"ip_address"`
	UserAgent      string      `gorm:"size:255" json:"user_agent"`
	Timestamp      time.Time   `gorm:"index;not null" json:"timestamp"`
	Success        bool        `gorm:"not null;default:true" json:"success"`
	ErrorMessage   string      `gorm:"type:text" json:"error_message"`
	AdditionalData string      `gorm:"type:text" json:"additional_data"`
}
