package repository

import (
	"context"

	"github.com/Arslan-Alizahi/smarttales-backend/internal/model"
	"gorm.io/gorm"
)

type PasswordResetRepository interface {
	Create(ctx context.Context, req *model.PasswordResetRequest) error
	FindByID(ctx context.Context, id uint) (*model.PasswordResetRequest, error)
	FindAll(ctx context.Context) ([]*model.PasswordResetRequest, error)
	FindByStatus(ctx context.Context, status model.RequestStatus) ([]*model.PasswordResetRequest, error)
	FindPendingByUserID(ctx context.Context, userID uint) (*model.PasswordResetRequest, error)
	FindByUserID(ctx context.Context, userID uint) ([]*model.PasswordResetRequest, error)
	FindRecent(ctx context.Context, count int) ([]*model.PasswordResetRequest, error)
	CountPending(ctx context.Context) (int64, error)
	Update(ctx context.Context, req *model.PasswordResetRequest) error
}

type passwordResetRepository struct {
	db *gorm.DB
}

func NewPasswordResetRepository(db *gorm.DB) PasswordResetRepository {
	return &passwordResetRepository{db: db}
}

func (r *passwordResetRepository) Create(ctx context.Context, req *model.PasswordResetRequest) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *passwordResetRepository) FindByID(ctx context.Context, id uint) (*model.PasswordResetRequest, error) {
	var req model.PasswordResetRequest
	if err := r.db.WithContext(ctx).First(&req, id).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *passwordResetRepository) FindAll(ctx context.Context) ([]*model.PasswordResetRequest, error) {
	var reqs []*model.PasswordResetRequest
	if err := r.db.WithContext(ctx).Order("request_date_time DESC").Find(&reqs).Error; err != nil {
		return nil, err
	}
	return reqs, nil
}

func (r *passwordResetRepository) FindByStatus(ctx context.Context, status model.RequestStatus) ([]*model.PasswordResetRequest, error) {
	var reqs []*model.PasswordResetRequest
	if err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("request_date_time DESC").
		Find(&reqs).Error; err != nil {
		return nil, err
	}
	return reqs, nil
}

func (r *passwordResetRepository) FindPendingByUserID(ctx context.Context, userID uint) (*model.PasswordResetRequest, error) {
	var req model.PasswordResetRequest
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, model.RequestPending).
		First(&req).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *passwordResetRepository) FindByUserID(ctx context.Context, userID uint) ([]*model.PasswordResetRequest, error) {
	var reqs []*model.PasswordResetRequest
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("request_date_time DESC").
		Find(&reqs).Error; err != nil {
		return nil, err
	}
	return reqs, nil
}

func (r *passwordResetRepository) FindRecent(ctx context.Context, count int) ([]*model.PasswordResetRequest, error) {
	var reqs []*model.PasswordResetRequest
	if err := r.db.WithContext(ctx).
		Order("request_date_time DESC").
		Limit(count).
		Find(&reqs).Error; err != nil {
		return nil, err
	}
	return reqs, nil
}

func (r *passwordResetRepository) CountPending(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.PasswordResetRequest{}).
		Where("status = ?", model.RequestPending).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *passwordResetRepository) Update(ctx context.Context, req *model.PasswordResetRequest) error {
	return r.db.WithContext(ctx).Save(req).Error
}
