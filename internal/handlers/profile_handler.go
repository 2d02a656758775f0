package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"galleria/internal/services"
)

type ProfileHandler struct {
	profile services.ProfileService
	stepUp  services.StepUpService
}

func NewProfileHandler(profile services.ProfileService, stepUp services.StepUpService) *ProfileHandler {
	return &ProfileHandler{profile: profile, stepUp: stepUp}
}

func (h *ProfileHandler) Get(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *ProfileHandler) UpdateName(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.profile.UpdateName(user.ID, req.Name); err != nil {
		log.Printf("[profile][name] error user_id=%d: %v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "profile updated"})
}

// sensitiveRequest is the shared envelope of the step-up gate: the current
// password always, the confirmation token only when 2FA is on.
type sensitiveRequest struct {
	CurrentPassword   string `json:"current_password" binding:"required"`
	ConfirmationToken string `json:"confirmation_token"`
}

// @Summary      Change password
// @Description  Requires the current password; with 2FA enabled also a step-up confirmation token.
// @Tags         Profile
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /profile/password [put]
func (h *ProfileHandler) ChangePassword(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	var req struct {
		sensitiveRequest
		NewPassword string `json:"new_password" binding:"required,min=8"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.profile.ChangePassword(c.Request.Context(), user, req.CurrentPassword, req.ConfirmationToken, req.NewPassword)
	if err != nil {
		if respondVerificationError(c, err) {
			return
		}
		log.Printf("[profile][password] error user_id=%d: %v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "password change failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "password changed"})
}

func (h *ProfileHandler) SetTwoFactor(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	var req struct {
		sensitiveRequest
		Enabled *bool `json:"enabled" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.profile.SetTwoFactor(c.Request.Context(), user, req.CurrentPassword, req.ConfirmationToken, *req.Enabled)
	if err != nil {
		if respondVerificationError(c, err) {
			return
		}
		log.Printf("[profile][2fa] error user_id=%d: %v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "two-factor setting updated"})
}

func (h *ProfileHandler) DeleteAccount(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	var req sensitiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.profile.DeleteAccount(c.Request.Context(), user, req.CurrentPassword, req.ConfirmationToken)
	if err != nil {
		if respondVerificationError(c, err) {
			return
		}
		log.Printf("[profile][delete] error user_id=%d: %v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "deletion failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "account deleted"})
}

// ===== step-up confirmation =====

// @Summary      Request a step-up confirmation code
// @Tags         Profile
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /account/confirm [post]
func (h *ProfileHandler) ConfirmBegin(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}
	if err := h.stepUp.Begin(c.Request.Context(), user); err != nil {
		log.Printf("[step-up][begin] error user_id=%d: %v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not send code"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "confirmation code sent", "next": "/account/confirm/verify"})
}

func (h *ProfileHandler) ConfirmVerify(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	var req struct {
		Code string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, err := h.stepUp.Confirm(c.Request.Context(), user, req.Code)
	if err != nil {
		if respondVerificationError(c, err) {
			return
		}
		log.Printf("[step-up][verify] error user_id=%d: %v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "confirmation failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":            "action confirmed",
		"confirmation_token": token,
	})
}

func (h *ProfileHandler) ConfirmResend(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}
	if err := h.stepUp.Resend(c.Request.Context(), user); err != nil {
		if respondVerificationError(c, err) {
			return
		}
		log.Printf("[step-up][resend] error user_id=%d: %v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "resend failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "confirmation code sent"})
}

func (h *ProfileHandler) ConfirmCancel(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}
	if err := h.stepUp.Cancel(c.Request.Context(), user); err != nil {
		log.Printf("[step-up][cancel] error user_id=%d: %v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cancel failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "confirmation cancelled"})
}
