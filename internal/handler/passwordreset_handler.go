package handler

import (
	"net/http"
	"time"

	"github.com/Arslan-Alizahi/smarttales-backend/internal/dto"
	"github.com/Arslan-Alizahi/smarttales-backend/internal/service"
	"github.com/Arslan-Alizahi/smarttales-backend/pkg/response"
	"github.com/Arslan-Alizahi/smarttales-backend/pkg/validator"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// One reset request per user per window keeps SMS costs sane.
const resetRequestWindow = 5 * time.Minute

type PasswordResetHandler struct {
	resetService service.PasswordResetService
	redisClient  *redis.Client
}

func NewPasswordResetHandler(resetService service.PasswordResetService, redisClient *redis.Client) *PasswordResetHandler {
	return &PasswordResetHandler{
		resetService: resetService,
		redisClient:  redisClient,
	}
}

// CreateRequest is the one unauthenticated endpoint: users ask for a reset
// from the login screen.
func (h *PasswordResetHandler) CreateRequest(c *gin.Context) {
	var input dto.CreateResetRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	allowed, err := service.CheckAndSetRateLimit(c.Request.Context(), h.redisClient, input.UserID, "password_reset", resetRequestWindow)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	if !allowed {
		ttl, _ := service.GetRateLimitTTL(c.Request.Context(), h.redisClient, input.UserID, "password_reset")
		c.JSON(http.StatusTooManyRequests, gin.H{
			"error":       "too many reset requests",
			"retry_after": int(ttl.Seconds()),
		})
		return
	}

	created, err := h.resetService.CreateRequest(c.Request.Context(), input.UserID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	if !created {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "reset request submitted"})
}

func (h *PasswordResetHandler) GetRequests(c *gin.Context) {
	if _, err := response.GetAdminID(c); err != nil {
		response.ResponseError(c, err)
		return
	}

	if c.Query("status") == "pending" {
		reqs, err := h.resetService.GetPendingRequests(c.Request.Context())
		if err != nil {
			response.ResponseError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": reqs})
		return
	}

	reqs, err := h.resetService.GetAllRequests(c.Request.Context())
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": reqs})
}

func (h *PasswordResetHandler) GetRequest(c *gin.Context) {
	if _, err := response.GetAdminID(c); err != nil {
		response.ResponseError(c, err)
		return
	}
	requestID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	req, err := h.resetService.GetRequest(c.Request.Context(), requestID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	if req == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "request not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": req})
}

func (h *PasswordResetHandler) CountPending(c *gin.Context) {
	if _, err := response.GetAdminID(c); err != nil {
		response.ResponseError(c, err)
		return
	}

	count, err := h.resetService.CountPendingRequests(c.Request.Context())
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}

func (h *PasswordResetHandler) ProcessRequest(c *gin.Context) {
	adminID, err := response.GetAdminID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	requestID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	// Body is optional; an empty one means "generate a password".
	var input dto.ProcessResetInput
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
			return
		}
	}

	result, err := h.resetService.ProcessRequest(c.Request.Context(), requestID, adminID, input.NewPassword)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	if !result.Success {
		c.JSON(http.StatusConflict, result)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *PasswordResetHandler) CancelRequest(c *gin.Context) {
	adminID, err := response.GetAdminID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	requestID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var input dto.CancelResetInput
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
			return
		}
	}

	cancelled, err := h.resetService.CancelRequest(c.Request.Context(), requestID, adminID, input.Reason)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	if !cancelled {
		c.JSON(http.StatusNotFound, gin.H{"error": "pending request not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "request cancelled"})
}
