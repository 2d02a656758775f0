package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

type Claims struct {
	UserID int `json:"user_id"`
	jwt.RegisteredClaims
}

const (
	// resolved once per request by ResponseMode
	ModeKey         = "response_mode"
	ModeInteractive = "interactive"
	ModeJSON        = "json"
)

// ResponseMode decides once whether the caller is a browser-style interactive
// client or a programmatic one. Handlers read the mode instead of sniffing
// headers at every call site.
func ResponseMode() gin.HandlerFunc {
	return func(c *gin.Context) {
		mode := ModeJSON
		accept := c.GetHeader("Accept")
		if strings.Contains(accept, "text/html") && c.GetHeader("X-Requested-With") == "" {
			mode = ModeInteractive
		}
		c.Set(ModeKey, mode)
		c.Next()
	}
}

func IsInteractive(c *gin.Context) bool {
	return c.GetString(ModeKey) == ModeInteractive
}

// AuthRequired rejects or redirects callers without a valid access token and
// puts the authenticated user id into the context.
func AuthRequired(jwtSecret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		tokenStr := bearerToken(c)
		if tokenStr == "" {
			abortUnauthenticated(c)
			return
		}

		claims := &Claims{}
		token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
			// HMAC only
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrTokenSignatureInvalid
			}
			return jwtSecret, nil
		})
		if err != nil || !token.Valid {
			abortUnauthenticated(c)
			return
		}

		const leeway = 2 * time.Minute
		if claims.ExpiresAt == nil || claims.ExpiresAt.Time.Before(time.Now().Add(-leeway)) {
			abortUnauthenticated(c)
			return
		}

		c.Set("user_id", claims.UserID)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// abortUnauthenticated: interactive callers are sent to the login screen,
// programmatic callers get a plain 401.
func abortUnauthenticated(c *gin.Context) {
	if IsInteractive(c) {
		c.Redirect(http.StatusFound, "/login")
		c.Abort()
		return
	}
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
}
