package service

import (
	"context"
	"testing"
	"time"

	"github.com/Arslan-Alizahi/smarttales-backend/internal/dto"
	"github.com/Arslan-Alizahi/smarttales-backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGradeFixture(t *testing.T) (GradeService, testRepos, *Notifier) {
	db := newTestDB(t)
	repos := newTestRepos(db)
	notifier := NewNotifier()
	svc := NewGradeService(repos.grade, repos.assignment, repos.user, notifier)
	return svc, repos, notifier
}

func seedAssignment(t *testing.T, repos testRepos, title, class string) *model.Assignment {
	t.Helper()
	a := &model.Assignment{
		Title:       title,
		Class:       class,
		DueDate:     time.Now().Add(72 * time.Hour),
		Points:      100,
		TeacherName: "Ms. Ahmed",
		IsPublished: true,
	}
	require.NoError(t, repos.assignment.Create(context.Background(), a))
	return a
}

func float64p(v float64) *float64 { return &v }

func TestSaveGradeDefaults(t *testing.T) {
	svc, repos, _ := newGradeFixture(t)
	ctx := context.Background()

	kid := seedUser(t, repos.user, model.RoleKid, "kid@example.com")
	a := seedAssignment(t, repos, "Math homework", "Grade 3")

	grade, err := svc.Save(ctx, dto.SaveGradeInput{
		StudentID:      kid.ID,
		AssignmentID:   a.ID,
		NumericalGrade: float64p(85),
	})
	require.NoError(t, err)
	assert.Equal(t, float64(100), grade.MaxPoints)
	assert.Equal(t, "B", grade.LetterGrade)
	require.NotNil(t, grade.Percentage())
	assert.InDelta(t, 85, *grade.Percentage(), 0.001)
}

func TestSaveGradeUpserts(t *testing.T) {
	svc, repos, _ := newGradeFixture(t)
	ctx := context.Background()

	kid := seedUser(t, repos.user, model.RoleKid, "kid@example.com")
	a := seedAssignment(t, repos, "Math homework", "Grade 3")

	first, err := svc.Save(ctx, dto.SaveGradeInput{
		StudentID:      kid.ID,
		AssignmentID:   a.ID,
		NumericalGrade: float64p(60),
	})
	require.NoError(t, err)

	second, err := svc.Save(ctx, dto.SaveGradeInput{
		StudentID:      kid.ID,
		AssignmentID:   a.ID,
		NumericalGrade: float64p(92),
		Feedback:       "Much better",
	})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID, "same pair must reuse the row")

	all, err := repos.grade.FindByStudent(ctx, kid.ID)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "A", all[0].LetterGrade)
	assert.Equal(t, "Much better", all[0].Feedback)
}

func TestSaveGradeExplicitLetterWins(t *testing.T) {
	svc, repos, _ := newGradeFixture(t)
	ctx := context.Background()

	kid := seedUser(t, repos.user, model.RoleKid, "kid@example.com")
	a := seedAssignment(t, repos, "Art project", "Grade 3")

	grade, err := svc.Save(ctx, dto.SaveGradeInput{
		StudentID:      kid.ID,
		AssignmentID:   a.ID,
		NumericalGrade: float64p(85),
		LetterGrade:    "B+",
	})
	require.NoError(t, err)
	assert.Equal(t, "B+", grade.LetterGrade)
}

func TestSaveGradePublishesEvent(t *testing.T) {
	svc, repos, notifier := newGradeFixture(t)
	ctx := context.Background()

	kid := seedUser(t, repos.user, model.RoleKid, "kid@example.com")
	a := seedAssignment(t, repos, "Math homework", "Grade 3")

	id, events := notifier.Subscribe()
	defer notifier.Unsubscribe(id)

	grade, err := svc.Save(ctx, dto.SaveGradeInput{
		StudentID:      kid.ID,
		AssignmentID:   a.ID,
		NumericalGrade: float64p(70),
	})
	require.NoError(t, err)

	select {
	case event := <-events:
		assert.Equal(t, "grades", event.Kind)
		assert.Equal(t, grade.ID, event.EntityID)
		assert.Equal(t, kid.ID, event.StudentID)
	case <-time.After(time.Second):
		t.Fatal("no change event received")
	}
}

func TestGetDetailsByStudent(t *testing.T) {
	svc, repos, _ := newGradeFixture(t)
	ctx := context.Background()

	kid := seedUser(t, repos.user, model.RoleKid, "kid@example.com")
	a := seedAssignment(t, repos, "Math homework", "Grade 3")

	_, err := svc.Save(ctx, dto.SaveGradeInput{
		StudentID:      kid.ID,
		AssignmentID:   a.ID,
		NumericalGrade: float64p(95),
	})
	require.NoError(t, err)

	details, err := svc.GetDetailsByStudent(ctx, kid.ID)
	require.NoError(t, err)
	require.Len(t, details, 1)

	detail := details[0]
	assert.Equal(t, kid.FullName(), detail.StudentName)
	assert.Equal(t, "Math homework", detail.AssignmentTitle)
	assert.Equal(t, "Grade 3", detail.Class)
	assert.Equal(t, "A", detail.LetterGrade)
	assert.Equal(t, "#28a745", detail.GradeColor)
	assert.NotEmpty(t, detail.GradedAgo)
	require.NotNil(t, detail.DueDate)
}

func TestGetStudentStats(t *testing.T) {
	svc, repos, _ := newGradeFixture(t)
	ctx := context.Background()

	kid := seedUser(t, repos.user, model.RoleKid, "kid@example.com")
	a1 := seedAssignment(t, repos, "Math homework", "Grade 3")
	a2 := seedAssignment(t, repos, "Reading log", "Grade 3")

	_, err := svc.Save(ctx, dto.SaveGradeInput{StudentID: kid.ID, AssignmentID: a1.ID, NumericalGrade: float64p(80)})
	require.NoError(t, err)
	_, err = svc.Save(ctx, dto.SaveGradeInput{StudentID: kid.ID, AssignmentID: a2.ID, NumericalGrade: float64p(90)})
	require.NoError(t, err)

	stats, err := svc.GetStudentStats(ctx, kid.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.GradeCount)
	require.NotNil(t, stats.Average)
	assert.InDelta(t, 85, *stats.Average, 0.001)
	assert.NotEmpty(t, stats.AverageBadge)
}

func TestGetStudentStatsNoGrades(t *testing.T) {
	svc, repos, _ := newGradeFixture(t)
	kid := seedUser(t, repos.user, model.RoleKid, "kid@example.com")

	stats, err := svc.GetStudentStats(context.Background(), kid.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), stats.GradeCount)
	assert.Nil(t, stats.Average)
}

func TestDeleteGrade(t *testing.T) {
	svc, repos, _ := newGradeFixture(t)
	ctx := context.Background()

	kid := seedUser(t, repos.user, model.RoleKid, "kid@example.com")
	a := seedAssignment(t, repos, "Math homework", "Grade 3")
	grade, err := svc.Save(ctx, dto.SaveGradeInput{StudentID: kid.ID, AssignmentID: a.ID, NumericalGrade: float64p(50)})
	require.NoError(t, err)

	deleted, err := svc.Delete(ctx, grade.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = svc.Delete(ctx, grade.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}
