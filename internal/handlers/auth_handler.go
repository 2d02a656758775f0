package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"galleria/internal/models"
	"galleria/internal/services"
)

type AuthHandler struct {
	auth services.AuthService
}

func NewAuthHandler(auth services.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// @Summary      Log in
// @Description  Authenticates by email and password. Accounts with 2FA enabled get a login token and a code by email instead of a session.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        login  body      models.LoginRequest  true  "Credentials"
// @Success      200    {object}  map[string]interface{}
// @Failure      401    {object}  map[string]string
// @Router       /login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if err == services.ErrInvalidCredentials {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
			return
		}
		log.Printf("[auth][login] error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}

	if res.TwoFactorRequired {
		c.JSON(http.StatusOK, gin.H{
			"message":     "verification code sent",
			"two_factor":  true,
			"login_token": res.LoginToken,
			"next":        "/login/2fa/verify",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "login successful",
		"user":    res.User,
		"tokens":  res.Tokens,
	})
}

// @Summary      Complete a 2FA login
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Router       /login/2fa/verify [post]
func (h *AuthHandler) TwoFactorVerify(c *gin.Context) {
	var req struct {
		LoginToken string `json:"login_token" binding:"required"`
		Code       string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, tokens, err := h.auth.CompleteTwoFactor(c.Request.Context(), req.LoginToken, req.Code)
	if err != nil {
		if respondVerificationError(c, err) {
			return
		}
		log.Printf("[auth][2fa] error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "verification failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "login successful",
		"user":    user,
		"tokens":  tokens,
	})
}

func (h *AuthHandler) TwoFactorResend(c *gin.Context) {
	var req struct {
		LoginToken string `json:"login_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.auth.ResendTwoFactor(c.Request.Context(), req.LoginToken); err != nil {
		if respondVerificationError(c, err) {
			return
		}
		log.Printf("[auth][2fa][resend] error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "resend failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "verification code sent"})
}

func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tokens, err := h.auth.Refresh(req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid refresh token"})
		return
	}
	c.JSON(http.StatusOK, tokens)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	userID := currentUserID(c)
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}
	if err := h.auth.Logout(userID); err != nil {
		log.Printf("[auth][logout] error user_id=%d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "logout failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}
