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

type DashboardService interface {
	GetParentDashboard(ctx context.Context, parentID uint) (*dto.ParentDashboard, error)
	GetMonthlyProgress(ctx context.Context, childID uint) ([]dto.MonthlyProgress, error)
	RefreshKidMetrics(ctx context.Context, kidID uint) error
}

type dashboardService struct {
	userRepo       repository.UserRepository
	gradeRepo      repository.GradeRepository
	assignmentRepo repository.AssignmentRepository
}

func NewDashboardService(
	userRepo repository.UserRepository,
	gradeRepo repository.GradeRepository,
	assignmentRepo repository.AssignmentRepository,
) DashboardService {
	return &dashboardService{
		userRepo:       userRepo,
		gradeRepo:      gradeRepo,
		assignmentRepo: assignmentRepo,
	}
}

// GetParentDashboard builds one card per linked child with their stored
// counters and grade average.
func (s *dashboardService) GetParentDashboard(ctx context.Context, parentID uint) (*dto.ParentDashboard, error) {
	children, err := s.userRepo.FindChildrenByParentID(ctx, parentID)
	if err != nil {
		return nil, err
	}

	dashboard := &dto.ParentDashboard{
		ParentID: parentID,
		Children: make([]dto.ChildSummary, 0, len(children)),
	}
	for _, child := range children {
		summary := dto.ChildSummary{
			ChildID:    child.ID,
			Name:       child.FullName(),
			GradeLevel: child.GradeLevel,
		}
		if child.ProgressPercentage != nil {
			summary.ProgressPercentage = *child.ProgressPercentage
		}
		if child.CompletedAssignments != nil {
			summary.CompletedAssignments = *child.CompletedAssignments
		}
		if child.PendingAssignments != nil {
			summary.PendingAssignments = *child.PendingAssignments
		}
		if child.TotalPoints != nil {
			summary.TotalPoints = *child.TotalPoints
		}

		avg, err := s.gradeRepo.AverageForStudent(ctx, child.ID)
		if err != nil {
			return nil, err
		}
		summary.AverageGrade = avg
		summary.AverageBadge = dto.BadgeForAverage(avg)

		dashboard.Children = append(dashboard.Children, summary)
	}
	return dashboard, nil
}

// GetMonthlyProgress charts the last six calendar months, oldest first.
func (s *dashboardService) GetMonthlyProgress(ctx context.Context, childID uint) ([]dto.MonthlyProgress, error) {
	grades, err := s.gradeRepo.FindByStudent(ctx, childID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	points := make([]dto.MonthlyProgress, 0, 6)
	for i := 5; i >= 0; i-- {
		monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -i, 0)
		monthEnd := monthStart.AddDate(0, 1, 0)

		var sum float64
		var n, completed int
		for _, g := range grades {
			if g.GradedDate.Before(monthStart) || !g.GradedDate.Before(monthEnd) {
				continue
			}
			completed++
			if pct := g.Percentage(); pct != nil {
				sum += *pct
				n++
			}
		}

		point := dto.MonthlyProgress{
			Month:     monthStart.Format("2006-01"),
			Label:     monthStart.Format("Jan"),
			Completed: completed,
		}
		if n > 0 {
			avg := sum / float64(n)
			point.Average = &avg
		}
		points = append(points, point)
	}
	return points, nil
}

// RefreshKidMetrics recomputes the denormalized dashboard counters stored on
// the kid's user row from current assignment and grade data.
func (s *dashboardService) RefreshKidMetrics(ctx context.Context, kidID uint) error {
	kid, err := s.userRepo.FindByID(ctx, kidID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	if kid.Role != model.RoleKid {
		return nil
	}

	published, err := s.assignmentRepo.FindPublished(ctx)
	if err != nil {
		return err
	}

	completed, pending, points := 0, 0, 0
	for _, a := range published {
		if a.Submitted() && a.StudentID != nil && *a.StudentID == kidID {
			completed++
			points += a.Points
		} else if !a.IsSubmitted {
			pending++
		}
	}

	progress := 0
	if completed+pending > 0 {
		progress = completed * 100 / (completed + pending)
	}

	_, err = s.userRepo.UpdateKidMetrics(ctx, kidID, model.KidMetrics{
		ProgressPercentage:   &progress,
		CompletedAssignments: &completed,
		PendingAssignments:   &pending,
		TotalPoints:          &points,
	})
	return err
}
