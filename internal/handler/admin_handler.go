package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Arslan-Alizahi/smarttales-backend/internal/dto"
	"github.com/Arslan-Alizahi/smarttales-backend/internal/model"
	"github.com/Arslan-Alizahi/smarttales-backend/internal/service"
	"github.com/Arslan-Alizahi/smarttales-backend/pkg/response"
	"github.com/Arslan-Alizahi/smarttales-backend/pkg/validator"
	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	adminService service.AdminService
}

func NewAdminHandler(adminService service.AdminService) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
	}
}

func parseUintParam(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return uint(v), true
}

func parseFormUint(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.PostForm(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return uint(v), true
}

func intQuery(c *gin.Context, name string, fallback int) int {
	v, err := strconv.Atoi(c.Query(name))
	if err != nil {
		return fallback
	}
	return v
}

// ---- Users ----

func (h *AdminHandler) GetUsers(c *gin.Context) {
	adminID, err := response.GetAdminID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	if term := c.Query("search"); term != "" {
		users, err := h.adminService.SearchUsers(c.Request.Context(), term, adminID)
		if err != nil {
			response.ResponseError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": users})
		return
	}

	users, err := h.adminService.GetAllUsers(c.Request.Context(), adminID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": users})
}

func (h *AdminHandler) GetUser(c *gin.Context) {
	adminID, err := response.GetAdminID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	userID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	user, err := h.adminService.GetUser(c.Request.Context(), userID, adminID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": user})
}

func (h *AdminHandler) CreateUser(c *gin.Context) {
	adminID, err := response.GetAdminID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var input dto.CreateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	user, err := h.adminService.CreateUser(c.Request.Context(), input, adminID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": user})
}

func (h *AdminHandler) UpdateUser(c *gin.Context) {
	adminID, err := response.GetAdminID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	userID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var input dto.UpdateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	user, err := h.adminService.UpdateUser(c.Request.Context(), userID, input, adminID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": user})
}

func (h *AdminHandler) DeleteUser(c *gin.Context) {
	adminID, err := response.GetAdminID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	userID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	deleted, err := h.adminService.DeleteUser(c.Request.Context(), userID, adminID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "user deleted"})
}

func (h *AdminHandler) ResetUserPassword(c *gin.Context) {
	adminID, err := response.GetAdminID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	userID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var input dto.ResetUserPasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	updated, err := h.adminService.ResetUserPassword(c.Request.Context(), userID, input.NewPassword, adminID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	if !updated {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "password reset"})
}

func (h *AdminHandler) ActivateUser(c *gin.Context) {
	h.setUserActive(c, true)
}

func (h *AdminHandler) DeactivateUser(c *gin.Context) {
	h.setUserActive(c, false)
}

func (h *AdminHandler) setUserActive(c *gin.Context, active bool) {
	adminID, err := response.GetAdminID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	userID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var done bool
	if active {
		done, err = h.adminService.ActivateUser(c.Request.Context(), userID, adminID)
	} else {
		done, err = h.adminService.DeactivateUser(c.Request.Context(), userID, adminID)
	}
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	if !done {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "user updated"})
}

// ---- Bulk ----

func (h *AdminHandler) BulkDeleteUsers(c *gin.Context) {
	adminID, err := response.GetAdminID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var input dto.BulkDeleteUsersInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	deleted, err := h.adminService.BulkDeleteUsers(c.Request.Context(), input.UserIDs, adminID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}

func (h *AdminHandler) BulkUpdateUserRole(c *gin.Context) {
	adminID, err := response.GetAdminID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var input dto.BulkUpdateRoleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	updated, err := h.adminService.BulkUpdateUserRole(c.Request.Context(), input.UserIDs, model.Role(input.Role), adminID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": updated})
}

// ---- Relationships ----

func (h *AdminHandler) GetRelationships(c *gin.Context) {
	adminID, err := response.GetAdminID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	views, err := h.adminService.GetAllRelationships(c.Request.Context(), adminID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": views})
}

func (h *AdminHandler) CreateRelationship(c *gin.Context) {
	adminID, err := response.GetAdminID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var input dto.CreateRelationshipInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	created, err := h.adminService.CreateRelationship(c.Request.Context(), input.ParentID, input.ChildID, adminID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	if !created {
		c.JSON(http.StatusConflict, gin.H{"error": "relationship already exists"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "relationship created"})
}

func (h *AdminHandler) CreateRelationshipByEmail(c *gin.Context) {
	adminID, err := response.GetAdminID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var input dto.CreateRelationshipByEmailInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	created, err := h.adminService.CreateRelationshipByEmail(c.Request.Context(), input.ParentEmail, input.ChildEmail, adminID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	if !created {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not create relationship"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "relationship created"})
}

func (h *AdminHandler) RemoveRelationship(c *gin.Context) {
	adminID, err := response.GetAdminID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	parentID, ok := parseUintParam(c, "parentId")
	if !ok {
		return
	}
	childID, ok := parseUintParam(c, "childId")
	if !ok {
		return
	}

	removed, err := h.adminService.RemoveRelationship(c.Request.Context(), parentID, childID, adminID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	if !removed {
		c.JSON(http.StatusNotFound, gin.H{"error": "active relationship not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "relationship removed"})
}

// ---- Admin accounts ----

func (h *AdminHandler) CreateAdmin(c *gin.Context) {
	adminID, err := response.GetAdminID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var input dto.CreateAdminInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	admin, err := h.adminService.CreateAdmin(c.Request.Context(), input, adminID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": admin})
}

func (h *AdminHandler) GetAdmins(c *gin.Context) {
	adminID, err := response.GetAdminID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	admins, err := h.adminService.GetAllAdmins(c.Request.Context(), adminID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": admins})
}

// ---- Statistics ----

func (h *AdminHandler) GetStats(c *gin.Context) {
	adminID, err := response.GetAdminID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	stats, err := h.adminService.GetStats(c.Request.Context(), adminID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": stats})
}

func (h *AdminHandler) GetUserStatsByRole(c *gin.Context) {
	adminID, err := response.GetAdminID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	stats, err := h.adminService.GetUserStatsByRole(c.Request.Context(), adminID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": stats})
}

func (h *AdminHandler) GetRegistrationStats(c *gin.Context) {
	adminID, err := response.GetAdminID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	stats, err := h.adminService.GetRegistrationStats(c.Request.Context(), intQuery(c, "days", 30), adminID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": stats})
}

func (h *AdminHandler) GetRecentUsers(c *gin.Context) {
	adminID, err := response.GetAdminID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	users, err := h.adminService.GetRecentUsers(c.Request.Context(), intQuery(c, "count", 10), adminID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": users})
}

// ---- Audit ----

func (h *AdminHandler) GetAuditLogs(c *gin.Context) {
	adminID, err := response.GetAdminID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	page := intQuery(c, "page", 1)
	pageSize := intQuery(c, "page_size", 50)

	if action := c.Query("action"); action != "" {
		logs, err := h.adminService.GetAuditLogsByAction(c.Request.Context(), model.AuditAction(action), adminID)
		if err != nil {
			response.ResponseError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": logs})
		return
	}

	if from, to := c.Query("from"), c.Query("to"); from != "" && to != "" {
		start, err1 := time.Parse(time.RFC3339, from)
		end, err2 := time.Parse(time.RFC3339, to)
		if err1 != nil || err2 != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date range"})
			return
		}
		logs, err := h.adminService.GetAuditLogsByDateRange(c.Request.Context(), start, end, adminID)
		if err != nil {
			response.ResponseError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": logs})
		return
	}

	logs, err := h.adminService.GetAuditLogs(c.Request.Context(), page, pageSize, adminID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": logs, "page": page, "page_size": pageSize})
}

func (h *AdminHandler) GetAuditLogsByAdmin(c *gin.Context) {
	adminID, err := response.GetAdminID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	targetID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	logs, err := h.adminService.GetAuditLogsByAdmin(c.Request.Context(), targetID,
		intQuery(c, "page", 1), intQuery(c, "page_size", 50), adminID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": logs})
}

func (h *AdminHandler) GetRecentAdminActions(c *gin.Context) {
	adminID, err := response.GetAdminID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	logs, err := h.adminService.GetRecentAdminActions(c.Request.Context(), intQuery(c, "count", 20), adminID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": logs})
}

// ---- Export ----

func (h *AdminHandler) ExportUsers(c *gin.Context) {
	adminID, err := response.GetAdminID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	format := c.DefaultQuery("format", "json")
	out, err := h.adminService.ExportUsersData(c.Request.Context(), format, adminID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	contentType := "application/json"
	if format == "csv" {
		contentType = "text/csv"
	}
	c.Data(http.StatusOK, contentType, []byte(out))
}
