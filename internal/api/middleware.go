package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/playamar/beach-admin-backend/internal/auth"
	"github.com/playamar/beach-admin-backend/internal/pkg/response"
	"github.com/playamar/beach-admin-backend/internal/user"
)

// RequireSuperAdmin rejects requests whose token does not carry the super
// admin role. Runs after AuthRequired, which puts the role into the context.
func RequireSuperAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, err := user.NormalizeRole(auth.GetUserRole(c))
		if err != nil || role != user.RoleSuperAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, response.ErrorResponse{Message: "super admin access required"})
			return
		}
		c.Next()
	}
}
