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

type AssignmentService interface {
	Create(ctx context.Context, input dto.CreateAssignmentInput) (*model.Assignment, error)
	Get(ctx context.Context, id uint) (*model.Assignment, error)
	GetAll(ctx context.Context) ([]*model.Assignment, error)
	GetByClass(ctx context.Context, class string) ([]*model.Assignment, error)
	GetByTeacher(ctx context.Context, teacherName string) ([]*model.Assignment, error)
	GetByType(ctx context.Context, assignmentType string) ([]*model.Assignment, error)
	GetPublished(ctx context.Context) ([]*model.Assignment, error)
	GetDueSoon(ctx context.Context, within time.Duration) ([]*model.Assignment, error)
	Update(ctx context.Context, id uint, input dto.UpdateAssignmentInput) (*model.Assignment, error)
	Delete(ctx context.Context, id uint) (bool, error)
	Submit(ctx context.Context, id uint, input dto.SubmitAssignmentInput) (*model.Assignment, error)
	GetSubmissions(ctx context.Context, class string) ([]dto.SubmissionView, error)
}

type assignmentService struct {
	assignmentRepo repository.AssignmentRepository
	gradeRepo      repository.GradeRepository
	userRepo       repository.UserRepository
	notifier       *Notifier
}

func NewAssignmentService(
	assignmentRepo repository.AssignmentRepository,
	gradeRepo repository.GradeRepository,
	userRepo repository.UserRepository,
	notifier *Notifier,
) AssignmentService {
	return &assignmentService{
		assignmentRepo: assignmentRepo,
		gradeRepo:      gradeRepo,
		userRepo:       userRepo,
		notifier:       notifier,
	}
}

func (s *assignmentService) Create(ctx context.Context, input dto.CreateAssignmentInput) (*model.Assignment, error) {
	assignment := &model.Assignment{
		Title:          input.Title,
		Description:    input.Description,
		Class:          input.Class,
		DueDate:        input.DueDate,
		AssignmentType: input.AssignmentType,
		Points:         input.Points,
		TeacherName:    input.TeacherName,
		IsPublished:    true,
	}
	if input.IsPublished != nil {
		assignment.IsPublished = *input.IsPublished
	}
	assignment.SetAttachments(input.Attachments)

	if err := s.assignmentRepo.Create(ctx, assignment); err != nil {
		return nil, err
	}

	s.notifier.NotifyAssignmentsChanged(assignment.ID, 0)
	return assignment, nil
}

func (s *assignmentService) Get(ctx context.Context, id uint) (*model.Assignment, error) {
	assignment, err := s.assignmentRepo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return assignment, err
}

func (s *assignmentService) GetAll(ctx context.Context) ([]*model.Assignment, error) {
	return s.assignmentRepo.FindAll(ctx)
}

func (s *assignmentService) GetByClass(ctx context.Context, class string) ([]*model.Assignment, error) {
	return s.assignmentRepo.FindByClass(ctx, class)
}

func (s *assignmentService) GetByTeacher(ctx context.Context, teacherName string) ([]*model.Assignment, error) {
	return s.assignmentRepo.FindByTeacher(ctx, teacherName)
}

func (s *assignmentService) GetByType(ctx context.Context, assignmentType string) ([]*model.Assignment, error) {
	return s.assignmentRepo.FindByType(ctx, assignmentType)
}

func (s *assignmentService) GetPublished(ctx context.Context) ([]*model.Assignment, error) {
	return s.assignmentRepo.FindPublished(ctx)
}

func (s *assignmentService) GetDueSoon(ctx context.Context, within time.Duration) ([]*model.Assignment, error) {
	return s.assignmentRepo.FindDueBefore(ctx, time.Now().Add(within))
}

func (s *assignmentService) Update(ctx context.Context, id uint, input dto.UpdateAssignmentInput) (*model.Assignment, error) {
	assignment, err := s.assignmentRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	if input.Title != nil {
		assignment.Title = *input.Title
	}
	if input.Description != nil {
		assignment.Description = *input.Description
	}
	if input.Class != nil {
		assignment.Class = *input.Class
	}
	if input.DueDate != nil {
		assignment.DueDate = *input.DueDate
	}
	if input.AssignmentType != nil {
		assignment.AssignmentType = *input.AssignmentType
	}
	if input.Points != nil {
		assignment.Points = *input.Points
	}
	if input.TeacherName != nil {
		assignment.TeacherName = *input.TeacherName
	}
	if input.IsPublished != nil {
		assignment.IsPublished = *input.IsPublished
	}
	if input.Attachments != nil {
		assignment.SetAttachments(input.Attachments)
	}

	if err := s.assignmentRepo.Update(ctx, assignment); err != nil {
		return nil, err
	}

	s.notifier.NotifyAssignmentsChanged(assignment.ID, 0)
	return assignment, nil
}

func (s *assignmentService) Delete(ctx context.Context, id uint) (bool, error) {
	deleted, err := s.assignmentRepo.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	if deleted {
		// Orphaned grades would otherwise point at a missing assignment.
		if _, err := s.gradeRepo.DeleteByAssignment(ctx, id); err != nil {
			return true, err
		}
		s.notifier.NotifyAssignmentsChanged(id, 0)
	}
	return deleted, nil
}

// Submit records a student's submission inline on the assignment row.
func (s *assignmentService) Submit(ctx context.Context, id uint, input dto.SubmitAssignmentInput) (*model.Assignment, error) {
	assignment, err := s.assignmentRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	now := time.Now()
	assignment.IsSubmitted = true
	assignment.SubmissionDate = &now
	assignment.StudentID = &input.StudentID
	assignment.SubmissionNotes = input.Notes
	assignment.SetSubmittedFiles(input.SubmittedFiles)

	if err := s.assignmentRepo.Update(ctx, assignment); err != nil {
		return nil, err
	}

	s.notifier.NotifyAssignmentsChanged(assignment.ID, input.StudentID)
	return assignment, nil
}

// GetSubmissions lists submitted assignments joined with student names,
// optionally filtered by class.
func (s *assignmentService) GetSubmissions(ctx context.Context, class string) ([]dto.SubmissionView, error) {
	var assignments []*model.Assignment
	var err error
	if class != "" {
		assignments, err = s.assignmentRepo.FindByClass(ctx, class)
	} else {
		assignments, err = s.assignmentRepo.FindAll(ctx)
	}
	if err != nil {
		return nil, err
	}

	views := make([]dto.SubmissionView, 0)
	for _, a := range assignments {
		if !a.Submitted() || a.StudentID == nil {
			continue
		}
		view := dto.SubmissionView{
			AssignmentID:    a.ID,
			AssignmentTitle: a.Title,
			Class:           a.Class,
			StudentID:       *a.StudentID,
			SubmissionDate:  a.SubmissionDate,
			Notes:           a.SubmissionNotes,
		}
		view.SubmittedFiles = a.SubmittedFiles()
		if student, err := s.userRepo.FindByID(ctx, *a.StudentID); err == nil {
			view.StudentName = student.FullName()
		}
		if _, err := s.gradeRepo.FindByStudentAndAssignment(ctx, *a.StudentID, a.ID); err == nil {
			view.Graded = true
		}
		views = append(views, view)
	}
	return views, nil
}
