package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Arslan-Alizahi/smarttales-backend/internal/model"
	"github.com/Arslan-Alizahi/smarttales-backend/internal/repository"
	"github.com/Arslan-Alizahi/smarttales-backend/pkg/sms"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// PasswordResetResult separates the admin action's outcome from SMS
// delivery. Success=true with SMSDelivered=false is a valid partial result:
// the password was changed but the user was not notified.
type PasswordResetResult struct {
	Success      bool   `json:"success"`
	SMSDelivered bool   `json:"sms_delivered"`
	Message      string `json:"message"`
	SMSError     string `json:"sms_error,omitempty"`
}

type PasswordResetService interface {
	CreateRequest(ctx context.Context, userID uint) (bool, error)
	ProcessRequest(ctx context.Context, requestID, adminID uint, newPassword string) (*PasswordResetResult, error)
	CancelRequest(ctx context.Context, requestID, adminID uint, reason string) (bool, error)
	GetRequest(ctx context.Context, requestID uint) (*model.PasswordResetRequest, error)
	GetAllRequests(ctx context.Context) ([]*model.PasswordResetRequest, error)
	GetPendingRequests(ctx context.Context) ([]*model.PasswordResetRequest, error)
	GetRequestsByUser(ctx context.Context, userID uint) ([]*model.PasswordResetRequest, error)
	CountPendingRequests(ctx context.Context) (int64, error)
}

type passwordResetService struct {
	resetRepo repository.PasswordResetRepository
	userRepo  repository.UserRepository
	auditRepo repository.AuditRepository
	gateway   sms.Gateway
}

func NewPasswordResetService(
	resetRepo repository.PasswordResetRepository,
	userRepo repository.UserRepository,
	auditRepo repository.AuditRepository,
	gateway sms.Gateway,
) PasswordResetService {
	return &passwordResetService{
		resetRepo: resetRepo,
		userRepo:  userRepo,
		auditRepo: auditRepo,
		gateway:   gateway,
	}
}

// CreateRequest opens a reset request for the user. At most one Pending
// request exists per user: an existing one is reused with a refreshed
// timestamp instead of inserting a second.
func (s *passwordResetService) CreateRequest(ctx context.Context, userID uint) (bool, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}

	existing, err := s.resetRepo.FindPendingByUserID(ctx, userID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	if existing != nil {
		existing.RequestDateTime = time.Now()
		if err := s.resetRepo.Update(ctx, existing); err != nil {
			return false, err
		}
		return true, nil
	}

	req := &model.PasswordResetRequest{
		UserID:          user.ID,
		UserName:        user.FullName(),
		UserEmail:       user.Email,
		UserPhoneNumber: user.PhoneNumber,
		UserRole:        user.Role,
		RequestDateTime: time.Now(),
		Status:          model.RequestPending,
	}
	if err := s.resetRepo.Create(ctx, req); err != nil {
		return false, err
	}
	return true, nil
}

// ProcessRequest changes the user's password and attempts SMS delivery of
// the new one. The password change is never rolled back when SMS fails; the
// request still completes and the result reports the delivery failure.
func (s *passwordResetService) ProcessRequest(ctx context.Context, requestID, adminID uint, newPassword string) (*PasswordResetResult, error) {
	req, err := s.resetRepo.FindByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &PasswordResetResult{Message: "Request not found"}, nil
		}
		return nil, err
	}
	if req.Status != model.RequestPending {
		return &PasswordResetResult{Message: "Request already processed"}, nil
	}

	if newPassword == "" {
		newPassword, err = GeneratePassword()
		if err != nil {
			return nil, err
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	// Password is persisted before the SMS attempt so a delivery failure
	// cannot leave the admin action half-done.
	updated, err := s.userRepo.UpdatePasswordHash(ctx, req.UserID, string(hash))
	if err != nil {
		s.auditProcess(ctx, adminID, req, false, err.Error())
		return nil, err
	}
	if !updated {
		s.auditProcess(ctx, adminID, req, false, "user not found")
		return &PasswordResetResult{Message: "User not found"}, nil
	}

	body := fmt.Sprintf("SmartTales: your password was reset by an administrator. New password: %s", newPassword)
	delivery := s.gateway.Send(ctx, sms.NormalizePhone(req.UserPhoneNumber), body)

	now := time.Now()
	req.Status = model.RequestCompleted
	req.AdminID = &adminID
	req.ProcessedDateTime = &now
	req.NewPasswordSent = delivery.Success
	req.MessageID = delivery.MessageID
	if delivery.Success {
		req.SMSDeliveryStatus = model.SMSSent
		if delivery.Status != "" {
			req.SMSDeliveryStatus = model.SMSDeliveryStatus(normalizeDeliveryStatus(delivery.Status))
		}
		req.Notes = delivery.Message
	} else {
		req.SMSDeliveryStatus = model.SMSFailed
		req.Notes = delivery.ErrorDetails
	}

	if err := s.resetRepo.Update(ctx, req); err != nil {
		s.auditProcess(ctx, adminID, req, false, err.Error())
		return nil, err
	}

	s.auditProcess(ctx, adminID, req, true, "")

	result := &PasswordResetResult{
		Success:      true,
		SMSDelivered: delivery.Success,
		Message:      "Password reset completed",
	}
	if !delivery.Success {
		result.Message = "Password reset completed, but SMS delivery failed"
		result.SMSError = delivery.ErrorDetails
	}
	return result, nil
}

func (s *passwordResetService) CancelRequest(ctx context.Context, requestID, adminID uint, reason string) (bool, error) {
	req, err := s.resetRepo.FindByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	if req.Status != model.RequestPending {
		return false, nil
	}

	now := time.Now()
	req.Status = model.RequestCancelled
	req.AdminID = &adminID
	req.ProcessedDateTime = &now
	req.Notes = reason
	if err := s.resetRepo.Update(ctx, req); err != nil {
		return false, err
	}

	s.auditWrite(ctx, adminID, model.ActionPasswordResetCancelled, req.ID, true,
		"", fmt.Sprintf(`{"user_id":%d,"reason":%q}`, req.UserID, reason))
	return true, nil
}

func (s *passwordResetService) GetRequest(ctx context.Context, requestID uint) (*model.PasswordResetRequest, error) {
	req, err := s.resetRepo.FindByID(ctx, requestID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return req, err
}

func (s *passwordResetService) GetAllRequests(ctx context.Context) ([]*model.PasswordResetRequest, error) {
	return s.resetRepo.FindAll(ctx)
}

func (s *passwordResetService) GetPendingRequests(ctx context.Context) ([]*model.PasswordResetRequest, error) {
	return s.resetRepo.FindByStatus(ctx, model.RequestPending)
}

func (s *passwordResetService) GetRequestsByUser(ctx context.Context, userID uint) ([]*model.PasswordResetRequest, error) {
	return s.resetRepo.FindByUserID(ctx, userID)
}

func (s *passwordResetService) CountPendingRequests(ctx context.Context) (int64, error) {
	return s.resetRepo.CountPending(ctx)
}

// auditProcess writes the single audit row for a process attempt.
func (s *passwordResetService) auditProcess(ctx context.Context, adminID uint, req *model.PasswordResetRequest, success bool, errorMessage string) {
	newValues := fmt.Sprintf(`{"user_id":%d,"sms_status":%q,"password_sent":%t}`,
		req.UserID, req.SMSDeliveryStatus, req.NewPasswordSent)
	s.auditWrite(ctx, adminID, model.ActionPasswordResetProcessed, req.ID, success, errorMessage, newValues)
}

func (s *passwordResetService) auditWrite(ctx context.Context, adminID uint, action model.AuditAction, requestID uint, success bool, errorMessage, newValues string) {
	ip, ua := clientInfo(ctx)
	entry := &model.AdminAuditLog{
		AdminUserID:  adminID,
		Action:       action,
		EntityType:   model.EntityPasswordResetRequest,
		EntityID:     &requestID,
		NewValues:    newValues,
		Success:      success,
		ErrorMessage: errorMessage,
		IPAddress:    ip,
		UserAgent:    ua,
	}
	_ = s.auditRepo.Create(ctx, entry)
}

// normalizeDeliveryStatus maps provider status strings onto the stored
// vocabulary.
func normalizeDeliveryStatus(status string) string {
	switch status {
	case "delivered":
		return string(model.SMSDelivered)
	case "failed", "undelivered":
		return string(model.SMSFailed)
	default:
		return string(model.SMSSent)
	}
}
