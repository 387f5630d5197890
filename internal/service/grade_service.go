package service

import (
	"context"
	"errors"
	"time"

	"github.com/Arslan-Alizahi/smarttales-backend/internal/dto"
	"github.com/Arslan-Alizahi/smarttales-backend/internal/model"
	"github.com/Arslan-Alizahi/smarttales-backend/internal/repository"
	"gorm.io/gorm"
)

type GradeService interface {
	// Save upserts: one grade row per (student, assignment) pair.
	Save(ctx context.Context, input dto.SaveGradeInput) (*model.Grade, error)
	Get(ctx context.Context, id uint) (*model.Grade, error)
	GetByStudent(ctx context.Context, studentID uint) ([]*model.Grade, error)
	GetByAssignment(ctx context.Context, assignmentID uint) ([]*model.Grade, error)
	GetDetailsByStudent(ctx context.Context, studentID uint) ([]dto.GradeDetail, error)
	GetStudentStats(ctx context.Context, studentID uint) (*dto.StudentGradeStats, error)
	Delete(ctx context.Context, id uint) (bool, error)
}

type gradeService struct {
	gradeRepo      repository.GradeRepository
	assignmentRepo repository.AssignmentRepository
	userRepo       repository.UserRepository
	notifier       *Notifier
}

func NewGradeService(
	gradeRepo repository.GradeRepository,
	assignmentRepo repository.AssignmentRepository,
	userRepo repository.UserRepository,
	notifier *Notifier,
) GradeService {
	return &gradeService{
		gradeRepo:      gradeRepo,
		assignmentRepo: assignmentRepo,
		userRepo:       userRepo,
		notifier:       notifier,
	}
}

func (s *gradeService) Save(ctx context.Context, input dto.SaveGradeInput) (*model.Grade, error) {
	grade, err := s.gradeRepo.FindByStudentAndAssignment(ctx, input.StudentID, input.AssignmentID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	maxPoints := input.MaxPoints
	if maxPoints == 0 {
		maxPoints = 100
	}

	letter := input.LetterGrade
	if letter == "" && input.NumericalGrade != nil {
		letter = dto.LetterForPercentage(*input.NumericalGrade / maxPoints * 100)
	}

	if grade == nil {
		grade = &model.Grade{
			StudentID:    input.StudentID,
			AssignmentID: input.AssignmentID,
		}
	}
	grade.TeacherID = input.TeacherID
	grade.NumericalGrade = input.NumericalGrade
	grade.MaxPoints = maxPoints
	grade.LetterGrade = letter
	grade.Feedback = input.Feedback
	grade.GradedDate = time.Now()

	if grade.ID == 0 {
		err = s.gradeRepo.Create(ctx, grade)
	} else {
		err = s.gradeRepo.Update(ctx, grade)
	}
	if err != nil {
		return nil, err
	}

	s.notifier.NotifyGradesChanged(grade.ID, grade.StudentID)
	return grade, nil
}

func (s *gradeService) Get(ctx context.Context, id uint) (*model.Grade, error) {
	grade, err := s.gradeRepo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return grade, err
}

func (s *gradeService) GetByStudent(ctx context.Context, studentID uint) ([]*model.Grade, error) {
	return s.gradeRepo.FindByStudent(ctx, studentID)
}

func (s *gradeService) GetByAssignment(ctx context.Context, assignmentID uint) ([]*model.Grade, error) {
	return s.gradeRepo.FindByAssignment(ctx, assignmentID)
}

// GetDetailsByStudent joins grades with their assignments and student name
// and attaches the derived display fields.
func (s *gradeService) GetDetailsByStudent(ctx context.Context, studentID uint) ([]dto.GradeDetail, error) {
	grades, err := s.gradeRepo.FindByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	studentName := ""
	if student, err := s.userRepo.FindByID(ctx, studentID); err == nil {
		studentName = student.FullName()
	}

	now := time.Now()
	details := make([]dto.GradeDetail, 0, len(grades))
	for _, g := range grades {
		detail := dto.GradeDetail{
			ID:             g.ID,
			StudentID:      g.StudentID,
			StudentName:    studentName,
			AssignmentID:   g.AssignmentID,
			NumericalGrade: g.NumericalGrade,
			MaxPoints:      g.MaxPoints,
			Percentage:     g.Percentage(),
			LetterGrade:    g.LetterGrade,
			Feedback:       g.Feedback,
			GradedDate:     g.GradedDate,
			GradedAgo:      dto.TimeAgo(g.GradedDate, now),
		}
		if pct := g.Percentage(); pct != nil {
			detail.GradeColor = dto.ColorForPercentage(*pct)
		}
		if assignment, err := s.assignmentRepo.FindByID(ctx, g.AssignmentID); err == nil {
			detail.AssignmentTitle = assignment.Title
			detail.Class = assignment.Class
			due := assignment.DueDate
			detail.DueDate = &due
		}
		details = append(details, detail)
	}
	return details, nil
}

func (s *gradeService) GetStudentStats(ctx context.Context, studentID uint) (*dto.StudentGradeStats, error) {
	count, err := s.gradeRepo.CountByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	avg, err := s.gradeRepo.AverageForStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	return &dto.StudentGradeStats{
		StudentID:    studentID,
		GradeCount:   count,
		Average:      avg,
		AverageBadge: dto.BadgeForAverage(avg),
	}, nil
}

func (s *gradeService) Delete(ctx context.Context, id uint) (bool, error) {
	grade, err := s.gradeRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}

	deleted, err := s.gradeRepo.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	if deleted {
		s.notifier.NotifyGradesChanged(id, grade.StudentID)
	}
	return deleted, nil
}
