package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/icyxonyx/Basic-CRUD/internal/models"
	"github.com/icyxonyx/Basic-CRUD/internal/services"
)

// RequireAdmin loads the caller's record and rejects non-admins. Admin
// routes are gated on the stored isAdmin flag, not just on holding a valid
// token.
func RequireAdmin(users services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := SubjectID(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.Fail("User not authenticated"))
			return
		}

		user, err := users.GetUserByID(id)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.Fail("User not found"))
			return
		}

		if !user.IsAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, models.Fail("Admin privileges required"))
			return
		}

		c.Next()
	}
}
