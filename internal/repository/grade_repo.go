package repository

import (
	"context"

	"github.com/Arslan-Alizahi/smarttales-backend/internal/model"
	"gorm.io/gorm"
)

type GradeRepository interface {
	Create(ctx context.Context, grade *model.Grade) error
	FindByID(ctx context.Context, id uint) (*model.Grade, error)
	FindAll(ctx context.Context) ([]*model.Grade, error)
	FindByStudent(ctx context.Context, studentID uint) ([]*model.Grade, error)
	FindByAssignment(ctx context.Context, assignmentID uint) ([]*model.Grade, error)
	FindByTeacher(ctx context.Context, teacherID uint) ([]*model.Grade, error)
	FindByStudentAndAssignment(ctx context.Context, studentID, assignmentID uint) (*model.Grade, error)
	FindRecentByStudent(ctx context.Context, studentID uint, count int) ([]*model.Grade, error)
	AverageForStudent(ctx context.Context, studentID uint) (*float64, error)
	CountByStudent(ctx context.Context, studentID uint) (int64, error)
	Update(ctx context.Context, grade *model.Grade) error
	Delete(ctx context.Context, id uint) (bool, error)
	DeleteByStudent(ctx context.Context, studentID uint) (int64, error)
	DeleteByAssignment(ctx context.Context, assignmentID uint) (int64, error)
}

type gradeRepository struct {
	db *gorm.DB
}

func NewGradeRepository(db *gorm.DB) GradeRepository {
	return &gradeRepository{db: db}
}

func (r *gradeRepository) Create(ctx context.Context, grade *model.Grade) error {
	return r.db.WithContext(ctx).Create(grade).Error
}

func (r *gradeRepository) FindByID(ctx context.Context, id uint) (*model.Grade, error) {
	var grade model.Grade
	if err := r.db.WithContext(ctx).First(&grade, id).Error; err != nil {
		return nil, err
	}
	return &grade, nil
}

func (r *gradeRepository) FindAll(ctx context.Context) ([]*model.Grade, error) {
	var grades []*model.Grade
	if err := r.db.WithContext(ctx).Order("graded_date DESC").Find(&grades).Error; err != nil {
		return nil, err
	}
	return grades, nil
}

func (r *gradeRepository) FindByStudent(ctx context.Context, studentID uint) ([]*model.Grade, error) {
	var grades []*model.Grade
	if err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("graded_date DESC").
		Find(&grades).Error; err != nil {
		return nil, err
	}
	return grades, nil
}

func (r *gradeRepository) FindByAssignment(ctx context.Context, assignmentID uint) ([]*model.Grade, error) {
	var grades []*model.Grade
	if err := r.db.WithContext(ctx).
		Where("assignment_id = ?", assignmentID).
		Order("graded_date DESC").
		Find(&grades).Error; err != nil {
		return nil, err
	}
	return grades, nil
}

func (r *gradeRepository) FindByTeacher(ctx context.Context, teacherID uint) ([]*model.Grade, error) {
	var grades []*model.Grade
	if err := r.db.WithContext(ctx).
		Where("teacher_id = ?", teacherID).
		Order("graded_date DESC").
		Find(&grades).Error; err != nil {
		return nil, err
	}
	return grades, nil
}

func (r *gradeRepository) FindByStudentAndAssignment(ctx context.Context, studentID, assignmentID uint) (*model.Grade, error) {
	var grade model.Grade
	if err := r.db.WithContext(ctx).
		Where("student_id = ? AND assignment_id = ?", studentID, assignmentID).
		First(&grade).Error; err != nil {
		return nil, err
	}
	return &grade, nil
}

func (r *gradeRepository) FindRecentByStudent(ctx context.Context, studentID uint, count int) ([]*model.Grade, error) {
	var grades []*model.Grade
	if err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("graded_date DESC").
		Limit(count).
		Find(&grades).Error; err != nil {
		return nil, err
	}
	return grades, nil
}

// AverageForStudent averages the percentage of every numeric grade the
// student holds. Returns nil when no numeric grades exist.
func (r *gradeRepository) AverageForStudent(ctx context.Context, studentID uint) (*float64, error) {
	var grades []*model.Grade
	if err := r.db.WithContext(ctx).
		Where("student_id = ? AND numerical_grade IS NOT NULL", studentID).
		Find(&grades).Error; err != nil {
		return nil, err
	}

	var sum float64
	var n int
	for _, g := range grades {
		if pct := g.Percentage(); pct != nil {
			sum += *pct
			n++
		}
	}
	if n == 0 {
		return nil, nil
	}
	avg := sum / float64(n)
	return &avg, nil
}

func (r *gradeRepository) CountByStudent(ctx context.Context, studentID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Grade{}).
		Where("student_id = ?", studentID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *gradeRepository) Update(ctx context.Context, grade *model.Grade) error {
	return r.db.WithContext(ctx).Save(grade).Error
}

func (r *gradeRepository) Delete(ctx context.Context, id uint) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&model.Grade{}, id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *gradeRepository) DeleteByStudent(ctx context.Context, studentID uint) (int64, error) {
	res := r.db.WithContext(ctx).Where("student_id = ?", studentID).Delete(&model.Grade{})
	return res.RowsAffected, res.Error
}

func (r *gradeRepository) DeleteByAssignment(ctx context.Context, assignmentID uint) (int64, error) {
	res := r.db.WithContext(ctx).Where("assignment_id = ?", assignmentID).Delete(&model.Grade{})
	return res.RowsAffected, res.Error
}
