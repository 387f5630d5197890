package repository

import (
	"context"
	"errors"

	"github.com/Arslan-Alizahi/smarttales-backend/internal/model"
	"gorm.io/gorm"
)

type ParentChildRepository interface {
	FindAll(ctx context.Context) ([]*model.ParentChild, error)
	FindActiveByParent(ctx context.Context, parentID uint) ([]*model.ParentChild, error)
	FindByChild(ctx context.Context, childID uint) ([]*model.ParentChild, error)
	FindByPair(ctx context.Context, parentID, childID uint) (*model.ParentChild, error)
	// Link creates the relationship, reactivating an inactive row for the
	// same pair instead of inserting a duplicate. Returns false if an
	// active relationship already exists.
	Link(ctx context.Context, parentID, childID uint) (bool, error)
	// Unlink soft-deletes the active relationship for the pair. Returns
	// false if no active row was found.
	Unlink(ctx context.Context, parentID, childID uint) (bool, error)
	SetActive(ctx context.Context, parentID, childID uint, active bool) (bool, error)
	Update(ctx context.Context, rel *model.ParentChild) error
}

type parentChildRepository struct {
	db *gorm.DB
}

func NewParentChildRepository(db *gorm.DB) ParentChildRepository {
	return &parentChildRepository{db: db}
}

func (r *parentChildRepository) FindAll(ctx context.Context) ([]*model.ParentChild, error) {
	var rels []*model.ParentChild
	if err := r.db.WithContext(ctx).Find(&rels).Error; err != nil {
		return nil, err
	}
	return rels, nil
}

func (r *parentChildRepository) FindActiveByParent(ctx context.Context, parentID uint) ([]*model.ParentChild, error) {
	var rels []*model.ParentChild
	if err := r.db.WithContext(ctx).
		Where("parent_id = ? AND is_active = ?", parentID, true).
		Find(&rels).Error; err != nil {
		return nil, err
	}
	return rels, nil
}

func (r *parentChildRepository) FindByChild(ctx context.Context, childID uint) ([]*model.ParentChild, error) {
	var rels []*model.ParentChild
	if err := r.db.WithContext(ctx).Where("child_id = ?", childID).Find(&rels).Error; err != nil {
		return nil, err
	}
	return rels, nil
}

func (r *parentChildRepository) FindByPair(ctx context.Context, parentID, childID uint) (*model.ParentChild, error) {
	var rel model.ParentChild
	if err := r.db.WithContext(ctx).
		Where("parent_id = ? AND child_id = ?", parentID, childID).
		First(&rel).Error; err != nil {
		return nil, err
	}
	return &rel, nil
}

func (r *parentChildRepository) Link(ctx context.Context, parentID, childID uint) (bool, error) {
	existing, err := r.FindByPair(ctx, parentID, childID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	if existing != nil {
		if existing.IsActive {
			return false, nil // already linked
		}
		existing.IsActive = true
		if err := r.db.WithContext(ctx).Save(existing).Error; err != nil {
			return false, err
		}
		return true, nil
	}

	rel := &model.ParentChild{
		ParentID: parentID,
		ChildID:  childID,
		IsActive: true,
	}
	if err := r.db.WithContext(ctx).Create(rel).Error; err != nil {
		return false, err
	}
	return true, nil
}

func (r *parentChildRepository) Unlink(ctx context.Context, parentID, childID uint) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.ParentChild{}).
		Where("parent_id = ? AND child_id = ? AND is_active = ?", parentID, childID, true).
		Update("is_active", false)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *parentChildRepository) SetActive(ctx context.Context, parentID, childID uint, active bool) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.ParentChild{}).
		Where("parent_id = ? AND child_id = ? AND is_active = ?", parentID, childID, !active).
		Update("is_active", active)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *parentChildRepository) Update(ctx context.Context, rel *model.ParentChild) error {
	return r.db.WithContext(ctx).Save(rel).Error
}
