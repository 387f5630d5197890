package model

import (
	"time"
)

// ParentChild links a parent account to a kid account. Rows are soft-deleted
// by flipping IsActive so that re-linking the same pair reuses the row.
type ParentChild struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ParentID  uint      `gorm:"index:idx_parent_child,priority:1;not null" json:"parent_id"`
	ChildID   uint      `gorm:"index:idx_parent_child,priority:2;not null" json:"child_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	IsActive  bool      `gorm:"not null;default:true" json:"is_active"`
}
