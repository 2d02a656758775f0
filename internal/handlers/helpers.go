package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"galleria/internal/models"
	"galleria/internal/services"
)

// tolerant of types (int / int64 / float64 / string)
func getIntFromCtx(c *gin.Context, key string) (int, bool) {
	v, ok := c.Get(key)
	if !ok {
		return 0, false
	}
	switch t := v.(type) {
	case int:
		return t, true
	case int64:
		return int(t), true
	case float64:
		return int(t), true
	case string:
		if n, err := strconv.Atoi(t); err == nil {
			return n, true
		}
	}
	return 0, false
}

func currentUserID(c *gin.Context) int {
	id, _ := getIntFromCtx(c, "user_id")
	return id
}

// currentUser is set by the RequireVerified middleware.
func currentUser(c *gin.Context) *models.User {
	v, ok := c.Get("current_user")
	if !ok {
		return nil
	}
	u, _ := v.(*models.User)
	return u
}

// respondVerificationError maps the code-lifecycle taxonomy onto HTTP without
// leaking anything beyond it. Returns false when err was not one of ours.
func respondVerificationError(c *gin.Context, err error) bool {
	var throttled *services.ThrottledError
	switch {
	case errors.As(err, &throttled):
		c.JSON(http.StatusTooManyRequests, gin.H{
			"error":       "too many requests, try later",
			"retry_after": int(throttled.RetryAfter.Round(time.Second).Seconds()),
		})
	case errors.Is(err, services.ErrAlreadyVerified):
		c.JSON(http.StatusOK, gin.H{"message": "already verified", "already_verified": true})
	case errors.Is(err, services.ErrCodeNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "no active code, request a new one"})
	case errors.Is(err, services.ErrCodeExpired):
		c.JSON(http.StatusBadRequest, gin.H{"error": "code expired, please resend"})
	case errors.Is(err, services.ErrTooManyAttempts):
		c.JSON(http.StatusBadRequest, gin.H{"error": "too many attempts, please resend"})
	case errors.Is(err, services.ErrCodeMismatch):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid code"})
	case errors.Is(err, services.ErrConfirmationRequired):
		c.JSON(http.StatusForbidden, gin.H{"error": "confirmation required", "next": "/account/confirm"})
	case errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
	default:
		return false
	}
	return true
}
