package service

import (
	"context"
	"strings"
	"testing"

	"github.com/Arslan-Alizahi/smarttales-backend/internal/dto"
	"github.com/Arslan-Alizahi/smarttales-backend/internal/model"
	"github.com/Arslan-Alizahi/smarttales-backend/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAdminFixture(t *testing.T) (AdminService, testRepos) {
	db := newTestDB(t)
	repos := newTestRepos(db)
	svc := NewAdminService(repos.user, repos.admin, repos.audit, repos.rel, repos.assignment, repos.reset, nil)
	return svc, repos
}

func auditCount(t *testing.T, repos testRepos) int64 {
	t.Helper()
	count, err := repos.audit.Count(context.Background())
	require.NoError(t, err)
	return count
}

func lastAudit(t *testing.T, repos testRepos) *model.AdminAuditLog {
	t.Helper()
	logs, err := repos.audit.FindRecent(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	return logs[0]
}

// ---- Authentication ----

func TestLogin(t *testing.T) {
	svc, repos := newAdminFixture(t)
	ctx := context.Background()
	seedAdmin(t, repos.admin, "alice")

	admin, err := svc.Login(ctx, "alice", "admin-password")
	require.NoError(t, err)
	require.NotNil(t, admin)
	assert.Equal(t, "alice", admin.Username)
	assert.NotNil(t, admin.LastLoginAt)

	entry := lastAudit(t, repos)
	assert.Equal(t, model.ActionLogin, entry.Action)
	assert.True(t, entry.Success)
	assert.Equal(t, admin.ID, entry.AdminUserID)
}

func TestLoginByEmail(t *testing.T) {
	svc, repos := newAdminFixture(t)
	seedAdmin(t, repos.admin, "alice")

	admin, err := svc.Login(context.Background(), "alice@smarttales.app", "admin-password")
	require.NoError(t, err)
	assert.Equal(t, "alice", admin.Username)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, repos := newAdminFixture(t)
	seedAdmin(t, repos.admin, "alice")

	_, err := svc.Login(context.Background(), "alice", "wrong")
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)
	assert.Equal(t, int64(0), auditCount(t, repos))
}

func TestLoginUnknownAdmin(t *testing.T) {
	svc, _ := newAdminFixture(t)

	_, err := svc.Login(context.Background(), "nobody", "admin-password")
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)
}

// ---- User management ----

func TestCreateUserAuditsOnce(t *testing.T) {
	svc, repos := newAdminFixture(t)
	ctx := context.Background()
	admin := seedAdmin(t, repos.admin, "alice")

	user, err := svc.CreateUser(ctx, dto.CreateUserInput{
		FirstName: "Sara",
		LastName:  "Khan",
		Email:     "sara@example.com",
		Password:  "secret123",
		Role:      "Kid",
	}, admin.ID)
	require.NoError(t, err)
	require.NotZero(t, user.ID)
	assert.True(t, user.IsActive)

	assert.Equal(t, int64(1), auditCount(t, repos))
	entry := lastAudit(t, repos)
	assert.Equal(t, model.ActionCreateUser, entry.Action)
	assert.Equal(t, model.EntityUser, entry.EntityType)
	require.NotNil(t, entry.EntityID)
	assert.Equal(t, user.ID, *entry.EntityID)
	assert.True(t, entry.Success)
	assert.Contains(t, entry.NewValues, "sara@example.com")
	// Defaults used when no client info is on the context.
	assert.Equal(t, "127.0.0.1", entry.IPAddress)
	assert.Equal(t, "SmartTales Admin", entry.UserAgent)
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	svc, repos := newAdminFixture(t)
	ctx := context.Background()
	admin := seedAdmin(t, repos.admin, "alice")
	seedUser(t, repos.user, model.RoleKid, "sara@example.com")

	_, err := svc.CreateUser(ctx, dto.CreateUserInput{
		FirstName: "Sara",
		LastName:  "Khan",
		Email:     "sara@example.com",
		Password:  "secret123",
		Role:      "Kid",
	}, admin.ID)
	require.Error(t, err)

	// The failed attempt is still audited, exactly once.
	assert.Equal(t, int64(1), auditCount(t, repos))
	entry := lastAudit(t, repos)
	assert.Equal(t, model.ActionCreateUser, entry.Action)
	assert.False(t, entry.Success)
	assert.Contains(t, entry.ErrorMessage, "already registered")
}

func TestUpdateUserSnapshotsOldValues(t *testing.T) {
	svc, repos := newAdminFixture(t)
	ctx := context.Background()
	admin := seedAdmin(t, repos.admin, "alice")
	user := seedUser(t, repos.user, model.RoleKid, "sara@example.com")

	newName := "Sarah"
	updated, err := svc.UpdateUser(ctx, user.ID, dto.UpdateUserInput{FirstName: &newName}, admin.ID)
	require.NoError(t, err)
	assert.Equal(t, "Sarah", updated.FirstName)

	entry := lastAudit(t, repos)
	assert.Equal(t, model.ActionUpdateUser, entry.Action)
	assert.Contains(t, entry.OldValues, `"Test"`)
	assert.Contains(t, entry.NewValues, `"Sarah"`)
}

func TestUpdateUserMissing(t *testing.T) {
	svc, repos := newAdminFixture(t)
	admin := seedAdmin(t, repos.admin, "alice")

	updated, err := svc.UpdateUser(context.Background(), 999, dto.UpdateUserInput{}, admin.ID)
	require.NoError(t, err)
	assert.Nil(t, updated)
}

func TestDeleteUser(t *testing.T) {
	svc, repos := newAdminFixture(t)
	ctx := context.Background()
	admin := seedAdmin(t, repos.admin, "alice")
	user := seedUser(t, repos.user, model.RoleKid, "sara@example.com")

	deleted, err := svc.DeleteUser(ctx, user.ID, admin.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	entry := lastAudit(t, repos)
	assert.Equal(t, model.ActionDeleteUser, entry.Action)
	assert.True(t, entry.Success)

	// Deleting again reports no change but still audits.
	before := auditCount(t, repos)
	deleted, err = svc.DeleteUser(ctx, user.ID, admin.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
	assert.Equal(t, before+1, auditCount(t, repos))
	assert.False(t, lastAudit(t, repos).Success)
}

func TestResetUserPassword(t *testing.T) {
	svc, repos := newAdminFixture(t)
	ctx := context.Background()
	admin := seedAdmin(t, repos.admin, "alice")
	user := seedUser(t, repos.user, model.RoleKid, "sara@example.com")
	oldHash := user.PasswordHash

	ok, err := svc.ResetUserPassword(ctx, user.ID, "NewPass1!", admin.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	stored, err := repos.user.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.NotEqual(t, oldHash, stored.PasswordHash)

	entry := lastAudit(t, repos)
	assert.Equal(t, model.ActionResetPassword, entry.Action)
	// New passwords never land in the audit trail.
	assert.NotContains(t, entry.NewValues, "NewPass1!")
	assert.NotContains(t, entry.OldValues, "NewPass1!")
}

func TestActivateDeactivateUser(t *testing.T) {
	svc, repos := newAdminFixture(t)
	ctx := context.Background()
	admin := seedAdmin(t, repos.admin, "alice")
	user := seedUser(t, repos.user, model.RoleKid, "sara@example.com")

	ok, err := svc.DeactivateUser(ctx, user.ID, admin.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	stored, err := repos.user.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsActive)
	assert.Equal(t, model.ActionDeactivateUser, lastAudit(t, repos).Action)

	ok, err = svc.ActivateUser(ctx, user.ID, admin.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	stored, err = repos.user.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsActive)
}

// ---- Bulk operations ----

func TestBulkDeleteUsersPartial(t *testing.T) {
	svc, repos := newAdminFixture(t)
	ctx := context.Background()
	admin := seedAdmin(t, repos.admin, "alice")
	u1 := seedUser(t, repos.user, model.RoleKid, "a@example.com")
	u2 := seedUser(t, repos.user, model.RoleKid, "b@example.com")

	// One missing ID in the batch; it is skipped, not an error.
	deleted, err := svc.BulkDeleteUsers(ctx, []uint{u1.ID, 999, u2.ID}, admin.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, deleted)

	remaining, err := repos.user.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), remaining)

	// One batch, one audit row.
	assert.Equal(t, int64(1), auditCount(t, repos))
	entry := lastAudit(t, repos)
	assert.Equal(t, model.ActionBulkDelete, entry.Action)
	assert.True(t, entry.Success)
	assert.Contains(t, entry.NewValues, `"count":3`)
	assert.Contains(t, entry.NewValues, `"deleted":2`)
}

func TestBulkUpdateUserRole(t *testing.T) {
	svc, repos := newAdminFixture(t)
	ctx := context.Background()
	admin := seedAdmin(t, repos.admin, "alice")
	u1 := seedUser(t, repos.user, model.RoleKid, "a@example.com")
	u2 := seedUser(t, repos.user, model.RoleKid, "b@example.com")

	updated, err := svc.BulkUpdateUserRole(ctx, []uint{u1.ID, 999, u2.ID}, model.RoleTeacher, admin.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, updated)

	stored, err := repos.user.FindByID(ctx, u1.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RoleTeacher, stored.Role)

	assert.Equal(t, int64(1), auditCount(t, repos))
	entry := lastAudit(t, repos)
	assert.Equal(t, model.ActionBulkUpdate, entry.Action)
	assert.Contains(t, entry.NewValues, `"new_role":"Teacher"`)
	assert.Contains(t, entry.NewValues, `"updated":2`)
}

func TestBulkUpdateUserRoleInvalidRole(t *testing.T) {
	svc, repos := newAdminFixture(t)
	admin := seedAdmin(t, repos.admin, "alice")
	u1 := seedUser(t, repos.user, model.RoleKid, "a@example.com")

	updated, err := svc.BulkUpdateUserRole(context.Background(), []uint{u1.ID}, model.Role("Wizard"), admin.ID)
	require.Error(t, err)
	assert.Equal(t, 0, updated)
	assert.False(t, lastAudit(t, repos).Success)
}

// ---- Relationships ----

func TestCreateRelationshipIdempotent(t *testing.T) {
	svc, repos := newAdminFixture(t)
	ctx := context.Background()
	admin := seedAdmin(t, repos.admin, "alice")
	parent := seedUser(t, repos.user, model.RoleParent, "parent@example.com")
	kid := seedUser(t, repos.user, model.RoleKid, "kid@example.com")

	created, err := svc.CreateRelationship(ctx, parent.ID, kid.ID, admin.ID)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = svc.CreateRelationship(ctx, parent.ID, kid.ID, admin.ID)
	require.NoError(t, err)
	assert.False(t, created, "second link to the same pair must be a no-op")

	rels, err := repos.rel.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, rels, 1)
}

func TestRemoveThenRecreateRelationshipReusesRow(t *testing.T) {
	svc, repos := newAdminFixture(t)
	ctx := context.Background()
	admin := seedAdmin(t, repos.admin, "alice")
	parent := seedUser(t, repos.user, model.RoleParent, "parent@example.com")
	kid := seedUser(t, repos.user, model.RoleKid, "kid@example.com")

	_, err := svc.CreateRelationship(ctx, parent.ID, kid.ID, admin.ID)
	require.NoError(t, err)
	original, err := repos.rel.FindByPair(ctx, parent.ID, kid.ID)
	require.NoError(t, err)

	removed, err := svc.RemoveRelationship(ctx, parent.ID, kid.ID, admin.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	created, err := svc.CreateRelationship(ctx, parent.ID, kid.ID, admin.ID)
	require.NoError(t, err)
	assert.True(t, created)

	rels, err := repos.rel.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, rels, 1, "recreate must reactivate the soft-deleted row")
	assert.Equal(t, original.ID, rels[0].ID)
	assert.True(t, rels[0].IsActive)
}

func TestCreateRelationshipByEmail(t *testing.T) {
	svc, repos := newAdminFixture(t)
	ctx := context.Background()
	admin := seedAdmin(t, repos.admin, "alice")
	parent := seedUser(t, repos.user, model.RoleParent, "parent@example.com")
	kid := seedUser(t, repos.user, model.RoleKid, "kid@example.com")

	created, err := svc.CreateRelationshipByEmail(ctx, "parent@example.com", "kid@example.com", admin.ID)
	require.NoError(t, err)
	assert.True(t, created)

	rel, err := repos.rel.FindByPair(ctx, parent.ID, kid.ID)
	require.NoError(t, err)
	assert.True(t, rel.IsActive)
}

func TestCreateRelationshipByEmailRoleValidation(t *testing.T) {
	svc, repos := newAdminFixture(t)
	ctx := context.Background()
	admin := seedAdmin(t, repos.admin, "alice")
	seedUser(t, repos.user, model.RoleTeacher, "teacher@example.com")
	seedUser(t, repos.user, model.RoleKid, "kid@example.com")

	// A Teacher cannot be the parent side of a link.
	created, err := svc.CreateRelationshipByEmail(ctx, "teacher@example.com", "kid@example.com", admin.ID)
	require.NoError(t, err)
	assert.False(t, created)

	entry := lastAudit(t, repos)
	assert.False(t, entry.Success)
	assert.Equal(t, "invalid user roles", entry.ErrorMessage)

	rels, err := repos.rel.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, rels)
}

func TestCreateRelationshipByEmailUnknownUser(t *testing.T) {
	svc, repos := newAdminFixture(t)
	admin := seedAdmin(t, repos.admin, "alice")
	seedUser(t, repos.user, model.RoleParent, "parent@example.com")

	created, err := svc.CreateRelationshipByEmail(context.Background(), "parent@example.com", "ghost@example.com", admin.ID)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, "parent or child not found", lastAudit(t, repos).ErrorMessage)
}

// ---- Admin accounts ----

func TestCreateAdminDefaultsRole(t *testing.T) {
	svc, repos := newAdminFixture(t)
	ctx := context.Background()
	creator := seedAdmin(t, repos.admin, "alice")

	admin, err := svc.CreateAdmin(ctx, dto.CreateAdminInput{
		Username:  "bob",
		Email:     "bob@smarttales.app",
		FirstName: "Bob",
		LastName:  "Ali",
		Password:  "long-enough-password",
	}, creator.ID)
	require.NoError(t, err)
	assert.Equal(t, model.AdminRoleAdmin, admin.Role)
	require.NotNil(t, admin.CreatedBy)
	assert.Equal(t, creator.ID, *admin.CreatedBy)

	entry := lastAudit(t, repos)
	assert.Equal(t, model.ActionCreateAdmin, entry.Action)
	assert.NotContains(t, entry.NewValues, "long-enough-password")
}

// ---- Statistics ----

func TestGetUserStatsByRole(t *testing.T) {
	svc, repos := newAdminFixture(t)
	ctx := context.Background()
	admin := seedAdmin(t, repos.admin, "alice")
	seedUser(t, repos.user, model.RoleKid, "a@example.com")
	seedUser(t, repos.user, model.RoleKid, "b@example.com")
	seedUser(t, repos.user, model.RoleParent, "c@example.com")
	seedUser(t, repos.user, model.RoleTeacher, "d@example.com")

	stats, err := svc.GetUserStatsByRole(ctx, admin.ID)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"Kid": 2, "Parent": 1, "Teacher": 1}, stats)
}

func TestGetStats(t *testing.T) {
	svc, repos := newAdminFixture(t)
	ctx := context.Background()
	admin := seedAdmin(t, repos.admin, "alice")
	seedUser(t, repos.user, model.RoleKid, "a@example.com")
	seedUser(t, repos.user, model.RoleParent, "b@example.com")

	stats, err := svc.GetStats(ctx, admin.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalUsers)
	assert.Equal(t, int64(0), stats.TotalAssignments)
	assert.Equal(t, int64(0), stats.PendingResets)
}

// ---- Export ----

func TestExportUsersCSV(t *testing.T) {
	svc, repos := newAdminFixture(t)
	ctx := context.Background()
	admin := seedAdmin(t, repos.admin, "alice")
	u1 := seedUser(t, repos.user, model.RoleKid, "a@example.com")
	u2 := seedUser(t, repos.user, model.RoleParent, "b@example.com")

	out, err := svc.ExportUsersData(ctx, "csv", admin.ID)
	require.NoError(t, err)

	require.True(t, strings.HasSuffix(out, "\n"))
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Id,FirstName,LastName,Email,Role,PhoneNumber", lines[0])
	assert.Len(t, strings.Split(lines[1], ","), 6)
	assert.Contains(t, out, u1.Email)
	assert.Contains(t, out, u2.Email)
}

func TestExportUsersJSONIncludesHashes(t *testing.T) {
	svc, repos := newAdminFixture(t)
	ctx := context.Background()
	admin := seedAdmin(t, repos.admin, "alice")
	user := seedUser(t, repos.user, model.RoleKid, "a@example.com")

	out, err := svc.ExportUsersData(ctx, "json", admin.ID)
	require.NoError(t, err)
	assert.Contains(t, out, `"password_hash"`)
	assert.Contains(t, out, user.PasswordHash)
	assert.Contains(t, out, "  ", "export is indented")
}

func TestExportUsersUnknownFormat(t *testing.T) {
	svc, repos := newAdminFixture(t)
	admin := seedAdmin(t, repos.admin, "alice")

	_, err := svc.ExportUsersData(context.Background(), "xml", admin.ID)
	require.Error(t, err)
	assert.False(t, lastAudit(t, repos).Success)
}
