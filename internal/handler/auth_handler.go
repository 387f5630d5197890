package handler

import (
	"net/http"
	"time"

	"github.com/Arslan-Alizahi/smarttales-backend/internal/dto"
	"github.com/Arslan-Alizahi/smarttales-backend/internal/middleware"
	"github.com/Arslan-Alizahi/smarttales-backend/internal/service"
	"github.com/Arslan-Alizahi/smarttales-backend/pkg/response"
	"github.com/Arslan-Alizahi/smarttales-backend/pkg/validator"
	"github.com/gin-gonic/gin"
)

const sessionTTL = 12 * time.Hour

type AuthHandler struct {
	adminService service.AdminService
	auth         *middleware.AuthMiddleware
}

func NewAuthHandler(adminService service.AdminService, auth *middleware.AuthMiddleware) *AuthHandler {
	return &AuthHandler{
		adminService: adminService,
		auth:         auth,
	}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var input dto.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	admin, err := h.adminService.Login(c.Request.Context(), input.Username, input.Password)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	token, err := h.auth.GenerateToken(admin.ID, sessionTTL)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{Token: token, Admin: admin})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	adminID, err := response.GetAdminID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	if err := h.adminService.Logout(c.Request.Context(), adminID); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}
