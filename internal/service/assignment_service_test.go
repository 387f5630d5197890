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

func newAssignmentFixture(t *testing.T) (AssignmentService, testRepos, *Notifier) {
	db := newTestDB(t)
	repos := newTestRepos(db)
	notifier := NewNotifier()
	svc := NewAssignmentService(repos.assignment, repos.grade, repos.user, notifier)
	return svc, repos, notifier
}

func TestCreateAssignmentPublishedByDefault(t *testing.T) {
	svc, _, _ := newAssignmentFixture(t)

	a, err := svc.Create(context.Background(), dto.CreateAssignmentInput{
		Title:       "Math homework",
		Class:       "Grade 3",
		DueDate:     time.Now().Add(72 * time.Hour),
		Attachments: []string{"worksheet.pdf"},
	})
	require.NoError(t, err)
	assert.True(t, a.IsPublished)
	assert.Equal(t, []string{"worksheet.pdf"}, []string(a.Attachments()))
}

func TestCreateAssignmentUnpublished(t *testing.T) {
	svc, _, _ := newAssignmentFixture(t)

	published := false
	a, err := svc.Create(context.Background(), dto.CreateAssignmentInput{
		Title:       "Draft quiz",
		Class:       "Grade 3",
		DueDate:     time.Now().Add(72 * time.Hour),
		IsPublished: &published,
	})
	require.NoError(t, err)
	assert.False(t, a.IsPublished)

	listed, err := svc.GetPublished(context.Background())
	require.NoError(t, err)
	assert.Empty(t, listed)
}

func TestGetDueSoon(t *testing.T) {
	svc, _, _ := newAssignmentFixture(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, dto.CreateAssignmentInput{
		Title: "Due tomorrow", Class: "Grade 3", DueDate: time.Now().Add(24 * time.Hour),
	})
	require.NoError(t, err)
	_, err = svc.Create(ctx, dto.CreateAssignmentInput{
		Title: "Due next month", Class: "Grade 3", DueDate: time.Now().Add(30 * 24 * time.Hour),
	})
	require.NoError(t, err)

	soon, err := svc.GetDueSoon(ctx, 48*time.Hour)
	require.NoError(t, err)
	require.Len(t, soon, 1)
	assert.Equal(t, "Due tomorrow", soon[0].Title)
}

func TestSubmitAssignment(t *testing.T) {
	svc, repos, notifier := newAssignmentFixture(t)
	ctx := context.Background()

	kid := seedUser(t, repos.user, model.RoleKid, "kid@example.com")
	a, err := svc.Create(ctx, dto.CreateAssignmentInput{
		Title: "Math homework", Class: "Grade 3", DueDate: time.Now().Add(72 * time.Hour),
	})
	require.NoError(t, err)

	id, events := notifier.Subscribe()
	defer notifier.Unsubscribe(id)

	submitted, err := svc.Submit(ctx, a.ID, dto.SubmitAssignmentInput{
		StudentID:      kid.ID,
		SubmittedFiles: []string{"answers.jpg"},
		Notes:          "Done",
	})
	require.NoError(t, err)
	assert.True(t, submitted.Submitted())
	require.NotNil(t, submitted.StudentID)
	assert.Equal(t, kid.ID, *submitted.StudentID)

	select {
	case event := <-events:
		assert.Equal(t, "assignments", event.Kind)
		assert.Equal(t, kid.ID, event.StudentID)
	case <-time.After(time.Second):
		t.Fatal("no change event received")
	}
}

func TestSubmitMissingAssignment(t *testing.T) {
	svc, _, _ := newAssignmentFixture(t)

	submitted, err := svc.Submit(context.Background(), 999, dto.SubmitAssignmentInput{StudentID: 1})
	require.NoError(t, err)
	assert.Nil(t, submitted)
}

func TestGetSubmissions(t *testing.T) {
	svc, repos, _ := newAssignmentFixture(t)
	ctx := context.Background()

	kid := seedUser(t, repos.user, model.RoleKid, "kid@example.com")
	a, err := svc.Create(ctx, dto.CreateAssignmentInput{
		Title: "Math homework", Class: "Grade 3", DueDate: time.Now().Add(72 * time.Hour),
	})
	require.NoError(t, err)
	_, err = svc.Create(ctx, dto.CreateAssignmentInput{
		Title: "Not submitted", Class: "Grade 3", DueDate: time.Now().Add(72 * time.Hour),
	})
	require.NoError(t, err)

	_, err = svc.Submit(ctx, a.ID, dto.SubmitAssignmentInput{
		StudentID:      kid.ID,
		SubmittedFiles: []string{"answers.jpg"},
		Notes:          "Done",
	})
	require.NoError(t, err)

	views, err := svc.GetSubmissions(ctx, "Grade 3")
	require.NoError(t, err)
	require.Len(t, views, 1)

	view := views[0]
	assert.Equal(t, a.ID, view.AssignmentID)
	assert.Equal(t, kid.FullName(), view.StudentName)
	assert.Equal(t, []string{"answers.jpg"}, view.SubmittedFiles)
	assert.False(t, view.Graded)

	// Grading the submission flips the flag.
	require.NoError(t, repos.grade.Create(ctx, &model.Grade{
		StudentID:    kid.ID,
		AssignmentID: a.ID,
		MaxPoints:    100,
		GradedDate:   time.Now(),
	}))
	views, err = svc.GetSubmissions(ctx, "")
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.True(t, views[0].Graded)
}

func TestDeleteAssignmentCascadesGrades(t *testing.T) {
	svc, repos, _ := newAssignmentFixture(t)
	ctx := context.Background()

	kid := seedUser(t, repos.user, model.RoleKid, "kid@example.com")
	a, err := svc.Create(ctx, dto.CreateAssignmentInput{
		Title: "Math homework", Class: "Grade 3", DueDate: time.Now().Add(72 * time.Hour),
	})
	require.NoError(t, err)
	require.NoError(t, repos.grade.Create(ctx, &model.Grade{
		StudentID:    kid.ID,
		AssignmentID: a.ID,
		MaxPoints:    100,
		GradedDate:   time.Now(),
	}))

	deleted, err := svc.Delete(ctx, a.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	grades, err := repos.grade.FindByStudent(ctx, kid.ID)
	require.NoError(t, err)
	assert.Empty(t, grades)
}

func TestUpdateAssignment(t *testing.T) {
	svc, _, _ := newAssignmentFixture(t)
	ctx := context.Background()

	a, err := svc.Create(ctx, dto.CreateAssignmentInput{
		Title: "Math homework", Class: "Grade 3", DueDate: time.Now().Add(72 * time.Hour),
	})
	require.NoError(t, err)

	newTitle := "Math homework (revised)"
	updated, err := svc.Update(ctx, a.ID, dto.UpdateAssignmentInput{Title: &newTitle})
	require.NoError(t, err)
	assert.Equal(t, newTitle, updated.Title)
	assert.Equal(t, "Grade 3", updated.Class)
}
