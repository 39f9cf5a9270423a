// Package request extracts the caller identity that the auth middleware
// stored on the gin context.
package request

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// MustUserID returns the authenticated user id or answers 401 and reports
// false.
func MustUserID(c *gin.Context) (uint, bool) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return 0, false
	}
	return userID, true
}

// Role returns the caller's role claim, empty for anonymous requests.
func Role(c *gin.Context) string {
	return c.GetString("role")
}

// IsAuthenticated reports whether the optional-auth middleware resolved a
// valid token.
func IsAuthenticated(c *gin.Context) bool {
	return c.GetBool("authenticated")
}
