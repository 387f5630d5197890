package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/Arslan-Alizahi/smarttales-backend/internal/dto"
	"github.com/Arslan-Alizahi/smarttales-backend/internal/model"
	"github.com/Arslan-Alizahi/smarttales-backend/internal/repository"
	"github.com/Arslan-Alizahi/smarttales-backend/pkg/apperror"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AdminService interface {
	Login(ctx context.Context, username, password string) (*model.AdminUser, error)
	Logout(ctx context.Context, adminID uint) error
	LogAction(ctx context.Context, adminID uint, action model.AuditAction, entityType model.EntityType, entityID *uint, oldValues, newValues string, success bool, errorMessage string) (*model.AdminAuditLog, error)

	GetAllUsers(ctx context.Context, adminID uint) ([]*model.User, error)
	SearchUsers(ctx context.Context, term string, adminID uint) ([]*model.User, error)
	GetUser(ctx context.Context, userID, adminID uint) (*model.User, error)
	CreateUser(ctx context.Context, input dto.CreateUserInput, adminID uint) (*model.User, error)
	UpdateUser(ctx context.Context, userID uint, input dto.UpdateUserInput, adminID uint) (*model.User, error)
	DeleteUser(ctx context.Context, userID, adminID uint) (bool, error)
	ResetUserPassword(ctx context.Context, userID uint, newPassword string, adminID uint) (bool, error)
	ActivateUser(ctx context.Context, userID, adminID uint) (bool, error)
	DeactivateUser(ctx context.Context, userID, adminID uint) (bool, error)

	BulkDeleteUsers(ctx context.Context, userIDs []uint, adminID uint) (int, error)
	BulkUpdateUserRole(ctx context.Context, userIDs []uint, role model.Role, adminID uint) (int, error)

	GetAllRelationships(ctx context.Context, adminID uint) ([]dto.RelationshipView, error)
	CreateRelationship(ctx context.Context, parentID, childID, adminID uint) (bool, error)
	CreateRelationshipByEmail(ctx context.Context, parentEmail, childEmail string, adminID uint) (bool, error)
	RemoveRelationship(ctx context.Context, parentID, childID, adminID uint) (bool, error)
	ActivateRelationship(ctx context.Context, parentID, childID, adminID uint) (bool, error)
	DeactivateRelationship(ctx context.Context, parentID, childID, adminID uint) (bool, error)

	CreateAdmin(ctx context.Context, input dto.CreateAdminInput, createdBy uint) (*model.AdminUser, error)
	GetAllAdmins(ctx context.Context, adminID uint) ([]*model.AdminUser, error)

	GetUserStatsByRole(ctx context.Context, adminID uint) (map[string]int, error)
	GetRegistrationStats(ctx context.Context, days int, adminID uint) (map[string]int, error)
	GetRecentUsers(ctx context.Context, count int, adminID uint) ([]*model.User, error)
	GetStats(ctx context.Context, adminID uint) (*dto.AdminStats, error)

	GetAuditLogs(ctx context.Context, page, pageSize int, adminID uint) ([]*model.AdminAuditLog, error)
	GetAuditLogsByAdmin(ctx context.Context, targetAdminID uint, page, pageSize int, adminID uint) ([]*model.AdminAuditLog, error)
	GetAuditLogsByEntity(ctx context.Context, entityType model.EntityType, entityID uint, adminID uint) ([]*model.AdminAuditLog, error)
	GetAuditLogsByAction(ctx context.Context, action model.AuditAction, adminID uint) ([]*model.AdminAuditLog, error)
	GetAuditLogsByDateRange(ctx context.Context, start, end time.Time, adminID uint) ([]*model.AdminAuditLog, error)
	GetRecentAdminActions(ctx context.Context, count int, adminID uint) ([]*model.AdminAuditLog, error)

	ExportUsersData(ctx context.Context, format string, adminID uint) (string, error)
}

type adminService struct {
	userRepo       repository.UserRepository
	adminRepo      repository.AdminRepository
	auditRepo      repository.AuditRepository
	relRepo        repository.ParentChildRepository
	assignmentRepo repository.AssignmentRepository
	resetRepo      repository.PasswordResetRepository
	search         UserSearch
}

func NewAdminService(
	userRepo repository.UserRepository,
	adminRepo repository.AdminRepository,
	auditRepo repository.AuditRepository,
	relRepo repository.ParentChildRepository,
	assignmentRepo repository.AssignmentRepository,
	resetRepo repository.PasswordResetRepository,
	search UserSearch,
) AdminService {
	return &adminService{
		userRepo:       userRepo,
		adminRepo:      adminRepo,
		auditRepo:      auditRepo,
		relRepo:        relRepo,
		assignmentRepo: assignmentRepo,
		resetRepo:      resetRepo,
		search:         search,
	}
}

// LogAction writes one audit row. Logging failure is reported to the caller
// but must never mask the audited operation's own error, so mutating methods
// log best-effort and ignore the returned error.
func (s *adminService) LogAction(ctx context.Context, adminID uint, action model.AuditAction, entityType model.EntityType, entityID *uint, oldValues, newValues string, success bool, errorMessage string) (*model.AdminAuditLog, error) {
	ip, ua := clientInfo(ctx)
	entry := &model.AdminAuditLog{
		AdminUserID:  adminID,
		Action:       action,
		EntityType:   entityType,
		EntityID:     entityID,
		OldValues:    oldValues,
		NewValues:    newValues,
		Success:      success,
		ErrorMessage: errorMessage,
		IPAddress:    ip,
		UserAgent:    ua,
	}
	if err := s.auditRepo.Create(ctx, entry); err != nil {
		log.Printf("audit write failed for %s by admin %d: %v", action, adminID, err)
		return nil, err
	}
	return entry, nil
}

func (s *adminService) audit(ctx context.Context, adminID uint, action model.AuditAction, entityType model.EntityType, entityID *uint, oldValues, newValues string, success bool, errorMessage string) {
	_, _ = s.LogAction(ctx, adminID, action, entityType, entityID, oldValues, newValues, success, errorMessage)
}

func errMsg(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

func toJSON(v interface{}) string {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

// ---- Authentication ----

func (s *adminService) Login(ctx context.Context, username, password string) (*model.AdminUser, error) {
	admin, err := s.adminRepo.FindByUsernameOrEmail(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrUnauthorized
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return nil, apperror.ErrUnauthorized
	}

	if _, err := s.adminRepo.UpdateLastLogin(ctx, admin.ID); err != nil {
		return nil, err
	}
	now := time.Now()
	admin.LastLoginAt = &now

	s.audit(ctx, admin.ID, model.ActionLogin, model.EntityAdminUser, &admin.ID, "", "", true, "")
	return admin, nil
}

func (s *adminService) Logout(ctx context.Context, adminID uint) error {
	s.audit(ctx, adminID, model.ActionLogout, model.EntityAdminUser, &adminID, "", "", true, "")
	return nil
}

// ---- User management ----

func (s *adminService) GetAllUsers(ctx context.Context, adminID uint) ([]*model.User, error) {
	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	s.audit(ctx, adminID, model.ActionViewUsers, model.EntityUser, nil, "", toJSON(map[string]int{"count": len(users)}), true, "")
	return users, nil
}

func (s *adminService) SearchUsers(ctx context.Context, term string, adminID uint) ([]*model.User, error) {
	var users []*model.User
	var err error
	if s.search != nil {
		users, err = s.search.SearchUsers(ctx, term)
	} else {
		users, err = s.userRepo.Search(ctx, term)
	}
	if err != nil {
		return nil, err
	}
	s.audit(ctx, adminID, model.ActionSearchUsers, model.EntityUser, nil, "", toJSON(map[string]interface{}{"term": term, "results": len(users)}), true, "")
	return users, nil
}

func (s *adminService) GetUser(ctx context.Context, userID, adminID uint) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	s.audit(ctx, adminID, model.ActionViewUser, model.EntityUser, &userID, "", "", true, "")
	return user, nil
}

func (s *adminService) CreateUser(ctx context.Context, input dto.CreateUserInput, adminID uint) (*model.User, error) {
	if _, err := s.userRepo.FindByEmail(ctx, input.Email); err == nil {
		failErr := fmt.Errorf("email %s already registered: %w", input.Email, apperror.ErrInvalidInput)
		s.audit(ctx, adminID, model.ActionCreateUser, model.EntityUser, nil, "", "", false, failErr.Error())
		return nil, failErr
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		FirstName:         input.FirstName,
		LastName:          input.LastName,
		Email:             input.Email,
		PhoneNumber:       input.PhoneNumber,
		PasswordHash:      string(hash),
		Role:              model.Role(input.Role),
		IsActive:          true,
		GradeLevel:        input.GradeLevel,
		Address:           input.Address,
		Specialization:    input.Specialization,
		YearsOfExperience: input.YearsOfExperience,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		s.audit(ctx, adminID, model.ActionCreateUser, model.EntityUser, nil, "", "", false, err.Error())
		return nil, err
	}

	if s.search != nil {
		s.search.IndexUser(user)
	}

	s.audit(ctx, adminID, model.ActionCreateUser, model.EntityUser, &user.ID, "", toJSON(user), true, "")
	return user, nil
}

func (s *adminService) UpdateUser(ctx context.Context, userID uint, input dto.UpdateUserInput, adminID uint) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	oldJSON := toJSON(user)

	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}
	if input.Email != nil {
		user.Email = *input.Email
	}
	if input.PhoneNumber != nil {
		user.PhoneNumber = *input.PhoneNumber
	}
	if input.GradeLevel != nil {
		user.GradeLevel = *input.GradeLevel
	}
	if input.Address != nil {
		user.Address = *input.Address
	}
	if input.Specialization != nil {
		user.Specialization = *input.Specialization
	}
	if input.YearsOfExperience != nil {
		user.YearsOfExperience = input.YearsOfExperience
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		s.audit(ctx, adminID, model.ActionUpdateUser, model.EntityUser, &userID, oldJSON, "", false, err.Error())
		return nil, err
	}

	if s.search != nil {
		s.search.IndexUser(user)
	}

	s.audit(ctx, adminID, model.ActionUpdateUser, model.EntityUser, &userID, oldJSON, toJSON(user), true, "")
	return user, nil
}

func (s *adminService) DeleteUser(ctx context.Context, userID, adminID uint) (bool, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}
	oldJSON := ""
	if user != nil {
		oldJSON = toJSON(user)
	}

	deleted, err := s.userRepo.Delete(ctx, userID)
	if err != nil {
		s.audit(ctx, adminID, model.ActionDeleteUser, model.EntityUser, &userID, oldJSON, "", false, err.Error())
		return false, err
	}

	if deleted && s.search != nil {
		s.search.RemoveUser(userID)
	}

	s.audit(ctx, adminID, model.ActionDeleteUser, model.EntityUser, &userID, oldJSON, "", deleted, "")
	return deleted, nil
}

func (s *adminService) ResetUserPassword(ctx context.Context, userID uint, newPassword string, adminID uint) (bool, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return false, fmt.Errorf("failed to hash password: %w", err)
	}

	updated, err := s.userRepo.UpdatePasswordHash(ctx, userID, string(hash))
	if err != nil {
		s.audit(ctx, adminID, model.ActionResetPassword, model.EntityUser, &userID, "", "", false, err.Error())
		return false, err
	}

	s.audit(ctx, adminID, model.ActionResetPassword, model.EntityUser, &userID, "", "", updated, "")
	return updated, nil
}

func (s *adminService) ActivateUser(ctx context.Context, userID, adminID uint) (bool, error) {
	ok, err := s.userRepo.SetActive(ctx, userID, true)
	s.audit(ctx, adminID, model.ActionActivateUser, model.EntityUser, &userID, "", "", ok && err == nil, errMsg(err))
	return ok, err
}

func (s *adminService) DeactivateUser(ctx context.Context, userID, adminID uint) (bool, error) {
	ok, err := s.userRepo.SetActive(ctx, userID, false)
	s.audit(ctx, adminID, model.ActionDeactivateUser, model.EntityUser, &userID, "", "", ok && err == nil, errMsg(err))
	return ok, err
}

// ---- Bulk operations ----

// BulkDeleteUsers deletes sequentially. A failure part-way leaves earlier
// deletes applied; the whole batch gets one audit row either way.
func (s *adminService) BulkDeleteUsers(ctx context.Context, userIDs []uint, adminID uint) (int, error) {
	deleted := 0
	for _, id := range userIDs {
		ok, err := s.userRepo.Delete(ctx, id)
		if err != nil {
			s.audit(ctx, adminID, model.ActionBulkDelete, model.EntityUser, nil,
				"", toJSON(map[string]interface{}{"user_ids": userIDs, "deleted": deleted}), false, err.Error())
			return deleted, err
		}
		if ok {
			deleted++
			if s.search != nil {
				s.search.RemoveUser(id)
			}
		}
	}

	s.audit(ctx, adminID, model.ActionBulkDelete, model.EntityUser, nil,
		"", toJSON(map[string]interface{}{"user_ids": userIDs, "count": len(userIDs), "deleted": deleted}), true, "")
	return deleted, nil
}

func (s *adminService) BulkUpdateUserRole(ctx context.Context, userIDs []uint, role model.Role, adminID uint) (int, error) {
	if !role.Valid() {
		failErr := fmt.Errorf("unknown role %q: %w", role, apperror.ErrInvalidInput)
		s.audit(ctx, adminID, model.ActionBulkUpdate, model.EntityUser, nil, "", "", false, failErr.Error())
		return 0, failErr
	}

	updatedCount := 0
	for _, id := range userIDs {
		user, err := s.userRepo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue // missing rows silently no-op
			}
			s.audit(ctx, adminID, model.ActionBulkUpdate, model.EntityUser, nil,
				"", toJSON(map[string]interface{}{"user_ids": userIDs, "updated": updatedCount}), false, err.Error())
			return updatedCount, err
		}

		user.Role = role
		if err := s.userRepo.Update(ctx, user); err != nil {
			s.audit(ctx, adminID, model.ActionBulkUpdate, model.EntityUser, nil,
				"", toJSON(map[string]interface{}{"user_ids": userIDs, "updated": updatedCount}), false, err.Error())
			return updatedCount, err
		}
		updatedCount++
	}

	s.audit(ctx, adminID, model.ActionBulkUpdate, model.EntityUser, nil,
		"", toJSON(map[string]interface{}{"user_ids": userIDs, "new_role": role, "count": len(userIDs), "updated": updatedCount}), true, "")
	return updatedCount, nil
}

// ---- Parent-child relationships ----

func (s *adminService) GetAllRelationships(ctx context.Context, adminID uint) ([]dto.RelationshipView, error) {
	rels, err := s.relRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]dto.RelationshipView, 0, len(rels))
	for _, rel := range rels {
		view := dto.RelationshipView{
			ID:        rel.ID,
			ParentID:  rel.ParentID,
			ChildID:   rel.ChildID,
			IsActive:  rel.IsActive,
			CreatedAt: rel.CreatedAt,
		}
		if parent, err := s.userRepo.FindByID(ctx, rel.ParentID); err == nil {
			view.ParentName = parent.FullName()
			view.ParentEmail = parent.Email
		}
		if child, err := s.userRepo.FindByID(ctx, rel.ChildID); err == nil {
			view.ChildName = child.FullName()
			view.ChildEmail = child.Email
		}
		views = append(views, view)
	}

	s.audit(ctx, adminID, model.ActionViewRelationships, model.EntityParentChild, nil, "", "", true, "")
	return views, nil
}

func (s *adminService) CreateRelationship(ctx context.Context, parentID, childID, adminID uint) (bool, error) {
	created, err := s.relRepo.Link(ctx, parentID, childID)
	if err != nil {
		s.audit(ctx, adminID, model.ActionCreateRelationship, model.EntityParentChild, nil, "", "", false, err.Error())
		return false, err
	}

	// An already-active link is "no change", not a failure.
	s.audit(ctx, adminID, model.ActionCreateRelationship, model.EntityParentChild, nil,
		"", toJSON(map[string]uint{"parent_id": parentID, "child_id": childID}), created, "")
	return created, nil
}

func (s *adminService) CreateRelationshipByEmail(ctx context.Context, parentEmail, childEmail string, adminID uint) (bool, error) {
	parent, perr := s.userRepo.FindByEmail(ctx, parentEmail)
	child, cerr := s.userRepo.FindByEmail(ctx, childEmail)
	if errors.Is(perr, gorm.ErrRecordNotFound) || errors.Is(cerr, gorm.ErrRecordNotFound) {
		s.audit(ctx, adminID, model.ActionCreateRelationship, model.EntityParentChild, nil, "", "", false, "parent or child not found")
		return false, nil
	}
	if perr != nil {
		return false, perr
	}
	if cerr != nil {
		return false, cerr
	}

	if parent.Role != model.RoleParent || child.Role != model.RoleKid {
		s.audit(ctx, adminID, model.ActionCreateRelationship, model.EntityParentChild, nil, "", "", false, "invalid user roles")
		return false, nil
	}

	created, err := s.relRepo.Link(ctx, parent.ID, child.ID)
	if err != nil {
		s.audit(ctx, adminID, model.ActionCreateRelationship, model.EntityParentChild, nil, "", "", false, err.Error())
		return false, err
	}

	s.audit(ctx, adminID, model.ActionCreateRelationship, model.EntityParentChild, nil,
		"", toJSON(map[string]string{"parent_email": parentEmail, "child_email": childEmail}), created, "")
	return created, nil
}

func (s *adminService) RemoveRelationship(ctx context.Context, parentID, childID, adminID uint) (bool, error) {
	removed, err := s.relRepo.Unlink(ctx, parentID, childID)
	if err != nil {
		s.audit(ctx, adminID, model.ActionRemoveRelationship, model.EntityParentChild, nil, "", "", false, err.Error())
		return false, err
	}

	s.audit(ctx, adminID, model.ActionRemoveRelationship, model.EntityParentChild, nil,
		"", toJSON(map[string]uint{"parent_id": parentID, "child_id": childID}), removed, "")
	return removed, nil
}

func (s *adminService) ActivateRelationship(ctx context.Context, parentID, childID, adminID uint) (bool, error) {
	ok, err := s.relRepo.SetActive(ctx, parentID, childID, true)
	s.audit(ctx, adminID, model.ActionActivateRelationship, model.EntityParentChild, nil, "", "", ok && err == nil, errMsg(err))
	return ok, err
}

func (s *adminService) DeactivateRelationship(ctx context.Context, parentID, childID, adminID uint) (bool, error) {
	ok, err := s.relRepo.SetActive(ctx, parentID, childID, false)
	s.audit(ctx, adminID, model.ActionDeactivateRelationship, model.EntityParentChild, nil, "", "", ok && err == nil, errMsg(err))
	return ok, err
}

// ---- Admin accounts ----

func (s *adminService) CreateAdmin(ctx context.Context, input dto.CreateAdminInput, createdBy uint) (*model.AdminUser, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	role := model.AdminRole(input.Role)
	if role == "" {
		role = model.AdminRoleAdmin
	}

	admin := &model.AdminUser{
		Username:     input.Username,
		Email:        input.Email,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		PasswordHash: string(hash),
		Role:         role,
		IsActive:     true,
		CreatedBy:    &createdBy,
	}

	if err := s.adminRepo.Create(ctx, admin); err != nil {
		s.audit(ctx, createdBy, model.ActionCreateAdmin, model.EntityAdminUser, nil, "", "", false, err.Error())
		return nil, err
	}

	s.audit(ctx, createdBy, model.ActionCreateAdmin, model.EntityAdminUser, &admin.ID,
		"", toJSON(map[string]string{"username": admin.Username, "role": string(admin.Role)}), true, "")
	return admin, nil
}

func (s *adminService) GetAllAdmins(ctx context.Context, adminID uint) ([]*model.AdminUser, error) {
	admins, err := s.adminRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	s.audit(ctx, adminID, model.ActionViewAdmins, model.EntityAdminUser, nil, "", "", true, "")
	return admins, nil
}

// ---- Statistics ----

func (s *adminService) GetUserStatsByRole(ctx context.Context, adminID uint) (map[string]int, error) {
	stats, err := s.userRepo.CountAllByRole(ctx)
	if err != nil {
		return nil, err
	}
	s.audit(ctx, adminID, model.ActionViewStats, model.EntityUser, nil, "", "", true, "")
	return stats, nil
}

// GetRegistrationStats buckets user signups per calendar day over the last
// `days` days, keyed "2006-01-02". Days with no signups are present with 0.
func (s *adminService) GetRegistrationStats(ctx context.Context, days int, adminID uint) (map[string]int, error) {
	if days <= 0 {
		days = 30
	}
	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	cutoff := time.Now().AddDate(0, 0, -days)
	stats := make(map[string]int, days)
	for d := 0; d < days; d++ {
		day := time.Now().AddDate(0, 0, -d).Format("2006-01-02")
		stats[day] = 0
	}
	for _, u := range users {
		if u.CreatedAt.Before(cutoff) {
			continue
		}
		stats[u.CreatedAt.Format("2006-01-02")]++
	}

	s.audit(ctx, adminID, model.ActionViewRegistrationStats, model.EntityUser, nil,
		"", toJSON(map[string]int{"days": days}), true, "")
	return stats, nil
}

func (s *adminService) GetRecentUsers(ctx context.Context, count int, adminID uint) ([]*model.User, error) {
	if count <= 0 {
		count = 10
	}
	users, err := s.userRepo.FindRecent(ctx, count)
	if err != nil {
		return nil, err
	}
	s.audit(ctx, adminID, model.ActionViewRecentUsers, model.EntityUser, nil, "", "", true, "")
	return users, nil
}

func (s *adminService) GetStats(ctx context.Context, adminID uint) (*dto.AdminStats, error) {
	totalUsers, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	byRole, err := s.userRepo.CountAllByRole(ctx)
	if err != nil {
		return nil, err
	}
	totalAssignments, err := s.assignmentRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	pendingResets, err := s.resetRepo.CountPending(ctx)
	if err != nil {
		return nil, err
	}
	auditCount, err := s.auditRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	s.audit(ctx, adminID, model.ActionViewStats, model.EntityUser, nil, "", "", true, "")
	return &dto.AdminStats{
		TotalUsers:       totalUsers,
		UsersByRole:      byRole,
		TotalAssignments: totalAssignments,
		PendingResets:    pendingResets,
		AuditLogCount:    auditCount,
	}, nil
}

// ---- Audit queries ----

func (s *adminService) GetAuditLogs(ctx context.Context, page, pageSize int, adminID uint) ([]*model.AdminAuditLog, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 50
	}
	s.audit(ctx, adminID, model.ActionViewAuditLogs, model.EntityAuditLog, nil,
		"", toJSON(map[string]int{"page": page, "page_size": pageSize}), true, "")
	return s.auditRepo.FindPage(ctx, page, pageSize)
}

func (s *adminService) GetAuditLogsByAdmin(ctx context.Context, targetAdminID uint, page, pageSize int, adminID uint) ([]*model.AdminAuditLog, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 50
	}
	return s.auditRepo.FindByAdmin(ctx, targetAdminID, page, pageSize)
}

func (s *adminService) GetAuditLogsByEntity(ctx context.Context, entityType model.EntityType, entityID uint, adminID uint) ([]*model.AdminAuditLog, error) {
	return s.auditRepo.FindByEntity(ctx, entityType, entityID)
}

func (s *adminService) GetAuditLogsByAction(ctx context.Context, action model.AuditAction, adminID uint) ([]*model.AdminAuditLog, error) {
	return s.auditRepo.FindByAction(ctx, action)
}

func (s *adminService) GetAuditLogsByDateRange(ctx context.Context, start, end time.Time, adminID uint) ([]*model.AdminAuditLog, error) {
	return s.auditRepo.FindByDateRange(ctx, start, end)
}

func (s *adminService) GetRecentAdminActions(ctx context.Context, count int, adminID uint) ([]*model.AdminAuditLog, error) {
	if count <= 0 {
		count = 20
	}
	return s.auditRepo.FindRecent(ctx, count)
}

// ---- Export ----

// exportedUser includes the stored password hash on purpose. The export is an
// admin backup surface and carries the row as persisted.
type exportedUser struct {
	model.User
	PasswordHash string `json:"password_hash"`
}

// ExportUsersData renders the full user table as "json" (indented, password
// hashes included) or "csv" (six fixed columns, no escaping of embedded
// commas). Both shapes are long-standing consumer contracts; do not tidy
// them without versioning the export.
func (s *adminService) ExportUsersData(ctx context.Context, format string, adminID uint) (string, error) {
	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		s.audit(ctx, adminID, model.ActionExportData, model.EntityUser, nil, "", "", false, err.Error())
		return "", err
	}

	var out string
	switch strings.ToLower(format) {
	case "json":
		exported := make([]exportedUser, 0, len(users))
		for _, u := range users {
			exported = append(exported, exportedUser{User: *u, PasswordHash: u.PasswordHash})
		}
		b, err := json.MarshalIndent(exported, "", "  ")
		if err != nil {
			s.audit(ctx, adminID, model.ActionExportData, model.EntityUser, nil, "", "", false, err.Error())
			return "", err
		}
		out = string(b)
	case "csv":
		var sb strings.Builder
		sb.WriteString("Id,FirstName,LastName,Email,Role,PhoneNumber\n")
		for _, u := range users {
			sb.WriteString(strings.Join([]string{
				strconv.FormatUint(uint64(u.ID), 10),
				u.FirstName,
				u.LastName,
				u.Email,
				string(u.Role),
				u.PhoneNumber,
			}, ","))
			sb.WriteString("\n")
		}
		out = sb.String()
	default:
		failErr := fmt.Errorf("unsupported export format %q: %w", format, apperror.ErrInvalidInput)
		s.audit(ctx, adminID, model.ActionExportData, model.EntityUser, nil, "", "", false, failErr.Error())
		return "", failErr
	}

	s.audit(ctx, adminID, model.ActionExportData, model.EntityUser, nil,
		"", toJSON(map[string]interface{}{"format": format, "count": len(users)}), true, "")
	return out, nil
}
