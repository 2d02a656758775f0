package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"galleria/internal/services"
)

type PasswordResetHandler struct {
	resets services.PasswordResetService
}

func NewPasswordResetHandler(resets services.PasswordResetService) *PasswordResetHandler {
	return &PasswordResetHandler{resets: resets}
}

// @Summary      Request a password reset code
// @Description  Always answers 202; whether the address exists is not disclosed.
// @Tags         PasswordReset
// @Accept       json
// @Produce      json
// @Success      202  {object}  map[string]string
// @Router       /password-reset/request [post]
func (h *PasswordResetHandler) Request(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.resets.Request(c.Request.Context(), req.Email); err != nil {
		log.Printf("[password-reset][request] error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "request failed"})
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"message": "if the address is registered, a code was sent"})
}

// @Summary      Verify a password reset code
// @Description  A correct code yields a single-use token for the password change itself.
// @Tags         PasswordReset
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Router       /password-reset/verify [post]
func (h *PasswordResetHandler) Verify(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
		Code  string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	grant, err := h.resets.Verify(c.Request.Context(), req.Email, req.Code)
	if err != nil {
		if respondVerificationError(c, err) {
			return
		}
		log.Printf("[password-reset][verify] error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "verification failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":     "code verified",
		"reset_token": grant,
		"next":        "/password-reset/complete",
	})
}

func (h *PasswordResetHandler) Resend(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.resets.Resend(c.Request.Context(), req.Email); err != nil {
		if respondVerificationError(c, err) {
			return
		}
		log.Printf("[password-reset][resend] error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "resend failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "if the address is registered, a code was sent"})
}

// @Summary      Complete a password reset
// @Tags         PasswordReset
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /password-reset/complete [post]
func (h *PasswordResetHandler) Complete(c *gin.Context) {
	var req struct {
		Email       string `json:"email" binding:"required,email"`
		ResetToken  string `json:"reset_token" binding:"required"`
		NewPassword string `json:"new_password" binding:"required,min=8"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.resets.Complete(c.Request.Context(), req.Email, req.ResetToken, req.NewPassword); err != nil {
		if err == services.ErrConfirmationRequired {
			c.JSON(http.StatusForbidden, gin.H{"error": "invalid or expired reset token"})
			return
		}
		log.Printf("[password-reset][complete] error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "reset failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "password changed"})
}
