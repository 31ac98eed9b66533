package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/icyxonyx/Basic-CRUD/internal/auth"
	"github.com/icyxonyx/Basic-CRUD/internal/models"
)

// ContextUserID is the gin context key holding the verified subject id.
const ContextUserID = "userID"

// JWTAuth gates protected routes. It extracts the Bearer token from the
// Authorization header, verifies it, and attaches the subject id to the
// request context. Any failure aborts the request before the handler runs.
func JWTAuth(tokens *auth.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "Missing Authorization header")
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			abortUnauthorized(c, "Authorization header must use Bearer scheme")
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == "" {
			abortUnauthorized(c, "Bearer token is empty")
			return
		}

		subjectID, err := tokens.Verify(tokenString)
		if err != nil {
			abortUnauthorized(c, "Invalid or expired token")
			return
		}

		c.Set(ContextUserID, subjectID)
		c.Next()
	}
}

// SubjectID returns the verified caller identity set by JWTAuth.
func SubjectID(c *gin.Context) (string, bool) {
	value, ok := c.Get(ContextUserID)
	if !ok {
		return "", false
	}
	id, ok := value.(string)
	return id, ok && id != ""
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, models.Fail(message))
}
