package repository

import (
	"context"

	"github.com/Arslan-Alizahi/smarttales-backend/internal/model"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id uint) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindAll(ctx context.Context) ([]*model.User, error)
	FindByRole(ctx context.Context, role model.Role) ([]*model.User, error)
	FindPage(ctx context.Context, page, pageSize int) ([]*model.User, error)
	FindRecent(ctx context.Context, count int) ([]*model.User, error)
	Search(ctx context.Context, term string) ([]*model.User, error)
	Update(ctx context.Context, user *model.User) error
	Delete(ctx context.Context, id uint) (bool, error)
	Count(ctx context.Context) (int64, error)
	CountByRole(ctx context.Context, role model.Role) (int64, error)
	CountAllByRole(ctx context.Context) (map[string]int, error)
	SetActive(ctx context.Context, id uint, active bool) (bool, error)
	UpdatePasswordHash(ctx context.Context, id uint, hash string) (bool, error)
	UpdateKidMetrics(ctx context.Context, id uint, metrics model.KidMetrics) (bool, error)
	FindChildrenByParentID(ctx context.Context, parentID uint) ([]*model.User, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindAll(ctx context.Context) ([]*model.User, error) {
	var users []*model.User
	if err := r.db.WithContext(ctx).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) FindByRole(ctx context.Context, role model.Role) ([]*model.User, error) {
	var users []*model.User
	if err := r.db.WithContext(ctx).Where("role = ?", role).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// FindPage returns one page of users. Pages are 1-indexed.
func (r *userRepository) FindPage(ctx context.Context, page, pageSize int) ([]*model.User, error) {
	var users []*model.User
	offset := (page - 1) * pageSize
	if err := r.db.WithContext(ctx).Offset(offset).Limit(pageSize).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) FindRecent(ctx context.Context, count int) ([]*model.User, error) {
	var users []*model.User
	if err := r.db.WithContext(ctx).Order("id DESC").Limit(count).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) Search(ctx context.Context, term string) ([]*model.User, error) {
	if term == "" {
		return r.FindAll(ctx)
	}

	var users []*model.User
	pattern := "%" + term + "%"
	if err := r.db.WithContext(ctx).
		Where("first_name LIKE ? COLLATE NOCASE OR last_name LIKE ? COLLATE NOCASE OR email LIKE ? COLLATE NOCASE",
			pattern, pattern, pattern).
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) Update(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

// Delete removes a user row. Missing rows are not an error; the bool reports
// whether anything was deleted.
func (r *userRepository) Delete(ctx context.Context, id uint) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&model.User{}, id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *userRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.User{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *userRepository) CountByRole(ctx context.Context, role model.Role) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.User{}).Where("role = ?", role).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountAllByRole groups users by their stored role string. Unknown role
// strings pass through verbatim.
func (r *userRepository) CountAllByRole(ctx context.Context) (map[string]int, error) {
	var rows []struct {
		Role  string
		Count int
	}
	if err := r.db.WithContext(ctx).Model(&model.User{}).
		Select("role, COUNT(*) as count").
		Group("role").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	stats := make(map[string]int, len(rows))
	for _, row := range rows {
		stats[row.Role] = row.Count
	}
	return stats, nil
}

func (r *userRepository) SetActive(ctx context.Context, id uint, active bool) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Update("is_active", active)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *userRepository) UpdatePasswordHash(ctx context.Context, id uint, hash string) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Update("password_hash", hash)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *userRepository) UpdateKidMetrics(ctx context.Context, id uint, metrics model.KidMetrics) (bool, error) {
	updates := map[string]interface{}{}
	if metrics.ProgressPercentage != nil {
		updates["progress_percentage"] = *metrics.ProgressPercentage
	}
	if metrics.CompletedAssignments != nil {
		updates["completed_assignments"] = *metrics.CompletedAssignments
	}
	if metrics.PendingAssignments != nil {
		updates["pending_assignments"] = *metrics.PendingAssignments
	}
	if metrics.TotalPoints != nil {
		updates["total_points"] = *metrics.TotalPoints
	}
	if len(updates) == 0 {
		return false, nil
	}

	res := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *userRepository) FindChildrenByParentID(ctx context.Context, parentID uint) ([]*model.User, error) {
	var users []*model.User
	if err := r.db.WithContext(ctx).
		Joins("JOIN parent_children ON parent_children.child_id = users.id").
		Where("parent_children.parent_id = ? AND parent_children.is_active = ?", parentID, true).
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
