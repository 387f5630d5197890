package repository

import (
	"context"
	"time"

	"github.com/Arslan-Alizahi/smarttales-backend/internal/model"
	"gorm.io/gorm"
)

// AuditRepository is append-then-read-only: rows are never updated or deleted.
type AuditRepository interface {
	Create(ctx context.Context, entry *model.AdminAuditLog) error
	FindPage(ctx context.Context, page, pageSize int) ([]*model.AdminAuditLog, error)
	FindByAdmin(ctx context.Context, adminID uint, page, pageSize int) ([]*model.AdminAuditLog, error)
	FindByEntity(ctx context.Context, entityType model.EntityType, entityID uint) ([]*model.AdminAuditLog, error)
	FindByAction(ctx context.Context, action model.AuditAction) ([]*model.AdminAuditLog, error)
	FindByDateRange(ctx context.Context, start, end time.Time) ([]*model.AdminAuditLog, error)
	FindRecent(ctx context.Context, count int) ([]*model.AdminAuditLog, error)
	Count(ctx context.Context) (int64, error)
}

type auditRepository struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) AuditRepository {
	return &auditRepository{db: db}
}

// Create stamps the timestamp at write time; caller-supplied values are
// overwritten.
func (r *auditRepository) Create(ctx context.Context, entry *model.AdminAuditLog) error {
	entry.Timestamp = time.Now()
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *auditRepository) FindPage(ctx context.Context, page, pageSize int) ([]*model.AdminAuditLog, error) {
	var logs []*model.AdminAuditLog
	offset := (page - 1) * pageSize
	if err := r.db.WithContext(ctx).
		Order("timestamp DESC").
		Offset(offset).Limit(pageSize).
		Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

func (r *auditRepository) FindByAdmin(ctx context.Context, adminID uint, page, pageSize int) ([]*model.AdminAuditLog, error) {
	var logs []*model.AdminAuditLog
	offset := (page - 1) * pageSize
	if err := r.db.WithContext(ctx).
		Where("admin_user_id = ?", adminID).
		Order("timestamp DESC").
		Offset(offset).Limit(pageSize).
		Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

func (r *auditRepository) FindByEntity(ctx context.Context, entityType model.EntityType, entityID uint) ([]*model.AdminAuditLog, error) {
	var logs []*model.AdminAuditLog
	if err := r.db.WithContext(ctx).
		Where("entity_type = ? AND entity_id = ?", entityType, entityID).
		Order("timestamp DESC").
		Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

func (r *auditRepository) FindByAction(ctx context.Context, action model.AuditAction) ([]*model.AdminAuditLog, error) {
	var logs []*model.AdminAuditLog
	if err := r.db.WithContext(ctx).
		Where("action = ?", action).
		Order("timestamp DESC").
		Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

func (r *auditRepository) FindByDateRange(ctx context.Context, start, end time.Time) ([]*model.AdminAuditLog, error) {
	var logs []*model.AdminAuditLog
	if err := r.db.WithContext(ctx).
		Where("timestamp >= ? AND timestamp <= ?", start, end).
		Order("timestamp DESC").
		Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

func (r *auditRepository) FindRecent(ctx context.Context, count int) ([]*model.AdminAuditLog, error) {
	var logs []*model.AdminAuditLog
	if err := r.db.WithContext(ctx).
		Order("timestamp DESC").
		Limit(count).
		Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

func (r *auditRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.AdminAuditLog{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
