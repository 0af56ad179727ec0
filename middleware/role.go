package middleware

import (
	"net/http"
	"strings"

	"campusporter/models"
	"campusporter/utils"

	"github.com/gin-gonic/gin"
)

// UserNameHeader carries the mock identity of the caller.
const UserNameHeader = "X-User-Name"

// ActorMiddleware stamps the request with a role and actor name. There is no real
// authentication: the name comes from X-User-Name, or defaultName when absent.
func ActorMiddleware(role models.UserRole, defaultName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		name := strings.TrimSpace(c.GetHeader(UserNameHeader))
		if name == "" {
			name = defaultName
		}
		if name == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error": "Missing '" + UserNameHeader + "' header.",
			})
			return
		}
		c.Set(utils.ActorRoleKey, role)
		c.Set(utils.ActorNameKey, name)
		c.Next()
	}
}

// ActorName returns the name set by ActorMiddleware.
func ActorName(c *gin.Context) string {
	return c.GetString(utils.ActorNameKey)
}
