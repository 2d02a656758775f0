package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"galleria/internal/repositories"
)

// RequireVerified gates protected capabilities behind a confirmed contact
// address. The account state is the same for both caller types; only the
// presentation differs.
func RequireVerified(users repositories.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetInt("user_id")
		if userID == 0 {
			abortUnauthenticated(c)
			return
		}
		user, err := users.GetByID(userID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to load account"})
			return
		}
		if user == nil {
			abortUnauthenticated(c)
			return
		}
		if !user.IsVerified {
			if IsInteractive(c) {
				c.Redirect(http.StatusFound, "/verify-email")
				c.Abort()
				return
			}
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":   "verification required",
				"address": user.Email,
				"next":    "/register/verify",
			})
			return
		}
		c.Set("current_user", user)
		c.Next()
	}
}
