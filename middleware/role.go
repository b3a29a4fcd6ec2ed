package middleware

import (
	"net/http"

	"cleanly/models"

	"github.com/gin-gonic/gin"
)

// RequireRole rejects callers whose account role is not in the allowed set.
// It must run after JWTAuthMiddleware.
func RequireRole(allowed ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := models.UserRole(c.GetString(ContextRole))
		for _, want := range allowed {
			if role == want {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions for this action"})
	}
}
