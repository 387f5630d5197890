package response

import (
	"log"
	"net/http"

	"github.com/Arslan-Alizahi/smarttales-backend/pkg/apperror"
	"github.com/gin-gonic/gin"
)

// GetAdminID retrieves the authenticated admin ID from the context
func GetAdminID(c *gin.Context) (uint, error) {
	v, exists := c.Get("admin_id")
	if !exists {
		return 0, apperror.ErrUnauthorized
	}

	adminID, ok := v.(uint)
	if !ok {
		return 0, apperror.ErrUnauthorized
	}

	return adminID, nil
}

// ResponseError standardized error response
func ResponseError(c *gin.Context, err error) {
	code := apperror.MapErrorToStatus(err)

	// Log internal errors
	if code == http.StatusInternalServerError {
		log.Printf("[Internal Error]: %v", err)
	}

	c.JSON(code, gin.H{"error": err.Error()})
}
