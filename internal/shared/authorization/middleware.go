package authorization

import (
	"github.com/gin-gonic/gin"

	"helpdesk/internal/shared/constants"
)

// RequireStaff aborts the request unless the authenticated actor is an
// agent or admin.
func RequireStaff() gin.HandlerFunc {
	return func(c *gin.Context) {
		role := ParseUserRole(c.GetString(constants.ContextKeyUserRole))
		if !role.IsStaff() {
			c.JSON(403, gin.H{
				"error": "agent or admin access required",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireAdmin aborts the request unless the authenticated actor is an admin.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		role := ParseUserRole(c.GetString(constants.ContextKeyUserRole))
		if !role.IsAdmin() {
			c.JSON(403, gin.H{
				"error": "admin access required",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// ActorFromContext extracts the authenticated actor placed in the gin
// context by the auth middleware.
func ActorFromContext(c *gin.Context) Actor {
	userID, _ := c.Get(constants.ContextKeyUserID)
	id, _ := userID.(uint)
	return Actor{
		ID:   id,
		Role: ParseUserRole(c.GetString(constants.ContextKeyUserRole)),
	}
}
