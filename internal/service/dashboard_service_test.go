package service

import (
	"context"
	"testing"
	"time"

	"github.com/Arslan-Alizahi/smarttales-backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDashboardFixture(t *testing.T) (DashboardService, testRepos) {
	db := newTestDB(t)
	repos := newTestRepos(db)
	svc := NewDashboardService(repos.user, repos.grade, repos.assignment)
	return svc, repos
}

func TestGetParentDashboard(t *testing.T) {
	svc, repos := newDashboardFixture(t)
	ctx := context.Background()

	parent := seedUser(t, repos.user, model.RoleParent, "parent@example.com")
	kid := seedUser(t, repos.user, model.RoleKid, "kid@example.com")
	seedUser(t, repos.user, model.RoleKid, "other@example.com")

	linked, err := repos.rel.Link(ctx, parent.ID, kid.ID)
	require.NoError(t, err)
	require.True(t, linked)

	a := seedAssignment(t, repos, "Math homework", "Grade 3")
	score := 88.0
	require.NoError(t, repos.grade.Create(ctx, &model.Grade{
		StudentID:      kid.ID,
		AssignmentID:   a.ID,
		NumericalGrade: &score,
		MaxPoints:      100,
		GradedDate:     time.Now(),
	}))

	dashboard, err := svc.GetParentDashboard(ctx, parent.ID)
	require.NoError(t, err)
	require.Len(t, dashboard.Children, 1, "only linked children appear")

	child := dashboard.Children[0]
	assert.Equal(t, kid.ID, child.ChildID)
	assert.Equal(t, kid.FullName(), child.Name)
	require.NotNil(t, child.AverageGrade)
	assert.InDelta(t, 88, *child.AverageGrade, 0.001)
	assert.Equal(t, "Good", child.AverageBadge)
}

func TestGetParentDashboardIgnoresInactiveLinks(t *testing.T) {
	svc, repos := newDashboardFixture(t)
	ctx := context.Background()

	parent := seedUser(t, repos.user, model.RoleParent, "parent@example.com")
	kid := seedUser(t, repos.user, model.RoleKid, "kid@example.com")

	_, err := repos.rel.Link(ctx, parent.ID, kid.ID)
	require.NoError(t, err)
	_, err = repos.rel.Unlink(ctx, parent.ID, kid.ID)
	require.NoError(t, err)

	dashboard, err := svc.GetParentDashboard(ctx, parent.ID)
	require.NoError(t, err)
	assert.Empty(t, dashboard.Children)
}

func TestGetMonthlyProgress(t *testing.T) {
	svc, repos := newDashboardFixture(t)
	ctx := context.Background()

	kid := seedUser(t, repos.user, model.RoleKid, "kid@example.com")
	a := seedAssignment(t, repos, "Math homework", "Grade 3")
	score := 90.0
	require.NoError(t, repos.grade.Create(ctx, &model.Grade{
		StudentID:      kid.ID,
		AssignmentID:   a.ID,
		NumericalGrade: &score,
		MaxPoints:      100,
		GradedDate:     time.Now(),
	}))

	points, err := svc.GetMonthlyProgress(ctx, kid.ID)
	require.NoError(t, err)
	require.Len(t, points, 6)

	// Oldest first; the current month carries the grade.
	current := points[5]
	assert.Equal(t, time.Now().Format("2006-01"), current.Month)
	assert.Equal(t, 1, current.Completed)
	require.NotNil(t, current.Average)
	assert.InDelta(t, 90, *current.Average, 0.001)

	for _, p := range points[:5] {
		assert.Equal(t, 0, p.Completed)
		assert.Nil(t, p.Average)
	}
}

func TestRefreshKidMetrics(t *testing.T) {
	svc, repos := newDashboardFixture(t)
	ctx := context.Background()

	kid := seedUser(t, repos.user, model.RoleKid, "kid@example.com")

	done := seedAssignment(t, repos, "Submitted one", "Grade 3")
	now := time.Now()
	done.IsSubmitted = true
	done.SubmissionDate = &now
	done.StudentID = &kid.ID
	require.NoError(t, repos.assignment.Update(ctx, done))

	seedAssignment(t, repos, "Open one", "Grade 3")

	require.NoError(t, svc.RefreshKidMetrics(ctx, kid.ID))

	stored, err := repos.user.FindByID(ctx, kid.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.CompletedAssignments)
	assert.Equal(t, 1, *stored.CompletedAssignments)
	require.NotNil(t, stored.PendingAssignments)
	assert.Equal(t, 1, *stored.PendingAssignments)
	require.NotNil(t, stored.ProgressPercentage)
	assert.Equal(t, 50, *stored.ProgressPercentage)
	require.NotNil(t, stored.TotalPoints)
	assert.Equal(t, 100, *stored.TotalPoints)
}

func TestRefreshKidMetricsNonKid(t *testing.T) {
	svc, repos := newDashboardFixture(t)
	ctx := context.Background()

	parent := seedUser(t, repos.user, model.RoleParent, "parent@example.com")
	require.NoError(t, svc.RefreshKidMetrics(ctx, parent.ID))

	stored, err := repos.user.FindByID(ctx, parent.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.CompletedAssignments)
}
