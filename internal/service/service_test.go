package service

import (
	"context"
	"testing"

	"github.com/Arslan-Alizahi/smarttales-backend/internal/bootstrap"
	"github.com/Arslan-Alizahi/smarttales-backend/internal/model"
	"github.com/Arslan-Alizahi/smarttales-backend/internal/repository"
	"github.com/Arslan-Alizahi/smarttales-backend/pkg/sms"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a fresh in-memory database per test. A single connection
// keeps every query on the same in-memory instance.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, bootstrap.Migrate(db))
	return db
}

type testRepos struct {
	user       repository.UserRepository
	admin      repository.AdminRepository
	audit      repository.AuditRepository
	rel        repository.ParentChildRepository
	assignment repository.AssignmentRepository
	grade      repository.GradeRepository
	reset      repository.PasswordResetRepository
}

func newTestRepos(db *gorm.DB) testRepos {
	return testRepos{
		user:       repository.NewUserRepository(db),
		admin:      repository.NewAdminRepository(db),
		audit:      repository.NewAuditRepository(db),
		rel:        repository.NewParentChildRepository(db),
		assignment: repository.NewAssignmentRepository(db),
		grade:      repository.NewGradeRepository(db),
		reset:      repository.NewPasswordResetRepository(db),
	}
}

func seedUser(t *testing.T, repo repository.UserRepository, role model.Role, email string) *model.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("initial-password"), bcrypt.MinCost)
	require.NoError(t, err)

	user := &model.User{
		FirstName:    "Test",
		LastName:     string(role),
		Email:        email,
		PhoneNumber:  "03001234567",
		PasswordHash: string(hash),
		Role:         role,
		IsActive:     true,
	}
	require.NoError(t, repo.Create(context.Background(), user))
	return user
}

func seedAdmin(t *testing.T, repo repository.AdminRepository, username string) *model.AdminUser {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("admin-password"), bcrypt.MinCost)
	require.NoError(t, err)

	admin := &model.AdminUser{
		Username:     username,
		Email:        username + "@smarttales.app",
		FirstName:    "Admin",
		LastName:     "User",
		PasswordHash: string(hash),
		Role:         model.AdminRoleAdmin,
		IsActive:     true,
	}
	require.NoError(t, repo.Create(context.Background(), admin))
	return admin
}

// fakeGateway is a scriptable sms.Gateway.
type fakeGateway struct {
	result sms.Result
	sent   []string // bodies, in order
	to     []string
}

func (g *fakeGateway) Send(ctx context.Context, toPhoneNumber, body string) sms.Result {
	g.sent = append(g.sent, body)
	g.to = append(g.to, toPhoneNumber)
	return g.result
}

func successGateway() *fakeGateway {
	return &fakeGateway{result: sms.Result{Success: true, MessageID: "SM_OK", Status: "sent"}}
}

func failingGateway() *fakeGateway {
	return &fakeGateway{result: sms.Result{Success: false, ErrorDetails: "carrier rejected"}}
}
