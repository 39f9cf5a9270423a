package activity

import (
	"log"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	ActionLogin          = "LOGIN"
	ActionRegister       = "REGISTER"
	ActionPasswordChange = "PASSWORD_CHANGE"
	ActionRoleChange     = "ROLE_CHANGE"
	ActionHardDelete     = "HARD_DELETE"
)

// Log records an audit entry with request context. Failures are logged and
// swallowed so auditing can never break the triggering request.
func Log(db *gorm.DB, c *gin.Context, userID uint, action, description string, success bool, errMsg string) {
	entry := UserActivity{
		UserID:      userID,
		Action:      action,
		Description: description,
		IsSuccess:   success,
	}
	if errMsg != "" {
		entry.ErrorMessage = &errMsg
	}
	if c != nil {
		ip := c.ClientIP()
		ua := c.Request.UserAgent()
		path := c.Request.URL.Path
		method := c.Request.Method
		entry.IPAddress = &ip
		entry.UserAgent = &ua
		entry.RequestPath = &path
		entry.HTTPMethod = &method
		if email, ok := c.Get("email"); ok {
			if s, ok := email.(string); ok {
				entry.UserEmail = &s
			}
		}
	}

	if err := db.Create(&entry).Error; err != nil {
		log.Println("activity log write failed:", err)
	}
}
