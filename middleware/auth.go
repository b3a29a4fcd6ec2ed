package middleware

import (
	"net/http"
	"strings"

	userRepo "cleanly/database/repository/user"
	"cleanly/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
)

// Context keys set by the auth middleware.
const (
	ContextUserID = "userID"
	ContextRole   = "role"
)

// JWTAuthMiddleware validates the bearer token and loads the caller's
// account. The role stored on the user record is authoritative, not the
// token claim, so a role change takes effect without reissuing tokens.
func JWTAuthMiddleware(users userRepo.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		subject, _, err := utils.ExtractClaims(tokenString)
		if err != nil || subject == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		account, err := users.GetByIDWithProjection(subject, bson.M{
			"user_id": 1,
			"role":    1,
			"active":  1,
		})
		if err != nil || account == nil || !account.Active {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Account not found or deactivated"})
			return
		}

		c.Set(ContextUserID, account.ID)
		c.Set(ContextRole, string(account.Role))
		c.Next()
	}
}
