package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"galleria/internal/services"
)

type RegisterHandler struct {
	registration services.RegistrationService
}

func NewRegisterHandler(registration services.RegistrationService) *RegisterHandler {
	return &RegisterHandler{registration: registration}
}

// @Summary      Start registration
// @Description  Accepts a sign-up and emails a verification code. No account row is created until the code is confirmed.
// @Tags         Registration
// @Accept       json
// @Produce      json
// @Success      202  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /register [post]
func (h *RegisterHandler) Register(c *gin.Context) {
	var req struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=8"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.registration.Start(c.Request.Context(), req.Name, req.Email, req.Password); err != nil {
		if err == services.ErrEmailTaken {
			c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
			return
		}
		log.Printf("[register][start] error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "registration failed"})
		return
	}
	c.JSON(http.StatusAccepted, gin.H{
		"message": "verification code sent",
		"address": req.Email,
		"next":    "/register/verify",
	})
}

// @Summary      Verify registration code
// @Tags         Registration
// @Accept       json
// @Produce      json
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Router       /register/verify [post]
func (h *RegisterHandler) VerifyEmail(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
		Code  string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, tokens, err := h.registration.VerifyEmail(c.Request.Context(), req.Email, req.Code)
	if err != nil {
		if respondVerificationError(c, err) {
			return
		}
		log.Printf("[register][verify] error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "verification failed"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "email verified",
		"user":    user,
		"tokens":  tokens,
	})
}

// @Summary      Resend registration code
// @Tags         Registration
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      429  {object}  map[string]string
// @Router       /register/resend [post]
func (h *RegisterHandler) Resend(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.registration.Resend(c.Request.Context(), req.Email); err != nil {
		if respondVerificationError(c, err) {
			return
		}
		log.Printf("[register][resend] error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "resend failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "verification code sent"})
}

// Cancel abandons a pending sign-up and clears its code.
func (h *RegisterHandler) Cancel(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.registration.Cancel(c.Request.Context(), req.Email); err != nil {
		log.Printf("[register][cancel] error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cancel failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "registration cancelled"})
}
