package model

import (
	"time"
)

// RequestStatus is the password-reset lifecycle. Pending transitions to
// Completed or Cancelled; both are terminal.
type RequestStatus string

const (
	RequestPending   RequestStatus = "Pending"
	RequestCompleted RequestStatus = "Completed"
	RequestCancelled RequestStatus = "Cancelled"
)

// SMSDeliveryStatus records the outcome of the single SMS attempt made while
// processing a request.
type SMSDeliveryStatus string

const (
	SMSNotSent   SMSDeliveryStatus = "Not Sent"
	SMSSent      SMSDeliveryStatus = "Sent"
	SMSDelivered SMSDeliveryStatus = "Delivered"
	SMSFailed    SMSDeliveryStatus = "Failed"
)

// PasswordResetRequest snapshots the user's display fields at request time so
// the admin queue stays readable even if the account is later edited.
type PasswordResetRequest struct {
	ID              uint          `gorm:"primaryKey" json:"id"`
	UserID          uint          `gorm:"index;not null" json:"user_id"`
	UserName        string        `gorm:"size:200" json:"user_name"`
	UserEmail       string        `gorm:"size:100" json:"user_email"`
	UserPhoneNumber string        `gorm:"size:30" json:"user_phone_number"`
	UserRole        Role          `gorm:"size:20" json:"user_role"`
	RequestDateTime time.Time     `gorm:"index" json:"request_date_time"`
	Status          RequestStatus `gorm:"size:20;index;not null;default:Pending" json:"status"`

	AdminID           *uint             `json:"admin_id,omitempty"`
	ProcessedDateTime *time.Time        `json:"processed_date_time,omitempty"`
	NewPasswordSent   bool              `gorm:"not null;default:false" json:"new_password_sent"`
	SMSDeliveryStatus SMSDeliveryStatus `gorm:"size:20;not null;default:'Not Sent'" json:"sms_delivery_status"`
	MessageID         string            `gorm:"size:100" json:"message_id"`
	Notes             string            `gorm:"type:text" json:"notes"`
}

// Terminal reports whether the request can no longer change state.
func (r *PasswordResetRequest) Terminal() bool {
	return r.Status == RequestCompleted || r.Status == RequestCancelled
}
