package repository

import (
	"context"
	"time"

	"github.com/Arslan-Alizahi/smarttales-backend/internal/model"
	"gorm.io/gorm"
)

type AdminRepository interface {
	Create(ctx context.Context, admin *model.AdminUser) error
	FindByID(ctx context.Context, id uint) (*model.AdminUser, error)
	FindByUsernameOrEmail(ctx context.Context, username string) (*model.AdminUser, error)
	FindAll(ctx context.Context) ([]*model.AdminUser, error)
	Update(ctx context.Context, admin *model.AdminUser) error
	UpdateLastLogin(ctx context.Context, id uint) (bool, error)
	SetActive(ctx context.Context, id uint, active bool, updatedBy uint) (bool, error)
	UpdatePasswordHash(ctx context.Context, id uint, hash string, updatedBy uint) (bool, error)
	Delete(ctx context.Context, id uint) (bool, error)
}

type adminRepository struct {
	db *gorm.DB
}

func NewAdminRepository(db *gorm.DB) AdminRepository {
	return &adminRepository{db: db}
}

func (r *adminRepository) Create(ctx context.Context, admin *model.AdminUser) error {
	return r.db.WithContext(ctx).Create(admin).Error
}

func (r *adminRepository) FindByID(ctx context.Context, id uint) (*model.AdminUser, error) {
	var admin model.AdminUser
	if err := r.db.WithContext(ctx).First(&admin, id).Error; err != nil {
		return nil, err
	}
	return &admin, nil
}

// FindByUsernameOrEmail matches active admins only; login is the sole caller.
func (r *adminRepository) FindByUsernameOrEmail(ctx context.Context, username string) (*model.AdminUser, error) {
	var admin model.AdminUser
	if err := r.db.WithContext(ctx).
		Where("(username = ? OR email = ?) AND is_active = ?", username, username, true).
		First(&admin).Error; err != nil {
		return nil, err
	}
	return &admin, nil
}

func (r *adminRepository) FindAll(ctx context.Context) ([]*model.AdminUser, error) {
	var admins []*model.AdminUser
	if err := r.db.WithContext(ctx).Find(&admins).Error; err != nil {
		return nil, err
	}
	return admins, nil
}

func (r *adminRepository) Update(ctx context.Context, admin *model.AdminUser) error {
	return r.db.WithContext(ctx).Save(admin).Error
}

func (r *adminRepository) UpdateLastLogin(ctx context.Context, id uint) (bool, error) {
	now := time.Now()
	res := r.db.WithContext(ctx).Model(&model.AdminUser{}).Where("id = ?", id).Update("last_login_at", now)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *adminRepository) SetActive(ctx context.Context, id uint, active bool, updatedBy uint) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.AdminUser{}).Where("id = ?", id).
		Updates(map[string]interface{}{"is_active": active, "updated_by": updatedBy})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *adminRepository) UpdatePasswordHash(ctx context.Context, id uint, hash string, updatedBy uint) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.AdminUser{}).Where("id = ?", id).
		Updates(map[string]interface{}{"password_hash": hash, "updated_by": updatedBy})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *adminRepository) Delete(ctx context.Context, id uint) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&model.AdminUser{}, id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
