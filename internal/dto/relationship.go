package dto

import "time"

type CreateRelationshipInput struct {
	ParentID uint `json:"parent_id" binding:"required"`
	ChildID  uint `json:"child_id" binding:"required"`
}

type CreateRelationshipByEmailInput struct {
	ParentEmail string `json:"parent_email" binding:"required,email"`
	ChildEmail  string `json:"child_email" binding:"required,email"`
}

// RelationshipView joins a link row with the display names of both ends.
type RelationshipView struct {
	ID          uint      `json:"id"`
	ParentID    uint      `json:"parent_id"`
	ParentName  string    `json:"parent_name"`
	ParentEmail string    `json:"parent_email"`
	ChildID     uint      `json:"child_id"`
	ChildName   string    `json:"child_name"`
	ChildEmail  string    `json:"child_email"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}
