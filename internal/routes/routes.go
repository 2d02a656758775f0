package routes

import (
	"github.com/gin-gonic/gin"

	"galleria/internal/handlers"
	"galleria/internal/middleware"
	"galleria/internal/repositories"
)

func SetupRoutes(
	r *gin.Engine,
	jwtSecret []byte,
	users repositories.UserRepository,
	registerHandler *handlers.RegisterHandler,
	authHandler *handlers.AuthHandler,
	resetHandler *handlers.PasswordResetHandler,
	profileHandler *handlers.ProfileHandler,
	artworkHandler *handlers.ArtworkHandler,
	museumHandler *handlers.MuseumHandler,
) *gin.Engine {

	// ---- public
	r.POST("/register", registerHandler.Register)
	r.POST("/register/verify", registerHandler.VerifyEmail)
	r.POST("/register/resend", registerHandler.Resend)
	r.POST("/register/cancel", registerHandler.Cancel)

	r.POST("/login", authHandler.Login)
	r.POST("/login/2fa/verify", authHandler.TwoFactorVerify)
	r.POST("/login/2fa/resend", authHandler.TwoFactorResend)
	r.POST("/refresh", authHandler.RefreshToken)

	r.POST("/password-reset/request", resetHandler.Request)
	r.POST("/password-reset/verify", resetHandler.Verify)
	r.POST("/password-reset/resend", resetHandler.Resend)
	r.POST("/password-reset/complete", resetHandler.Complete)

	// ---- protected: valid token, then confirmed address
	auth := r.Group("/", middleware.AuthRequired(jwtSecret))
	auth.POST("/logout", authHandler.Logout)

	verified := auth.Group("/", middleware.RequireVerified(users))

	// step-up confirmation for sensitive actions
	verified.POST("/account/confirm", profileHandler.ConfirmBegin)
	verified.POST("/account/confirm/verify", profileHandler.ConfirmVerify)
	verified.POST("/account/confirm/resend", profileHandler.ConfirmResend)
	verified.DELETE("/account/confirm", profileHandler.ConfirmCancel)

	profile := verified.Group("/profile")
	{
		profile.GET("", profileHandler.Get)
		profile.PUT("", profileHandler.UpdateName)
		profile.PUT("/password", profileHandler.ChangePassword)
		profile.PUT("/two-factor", profileHandler.SetTwoFactor)
		profile.DELETE("", profileHandler.DeleteAccount)
	}

	artworks := verified.Group("/artworks")
	{
		artworks.GET("", artworkHandler.List)
		artworks.POST("", artworkHandler.Create)
		artworks.POST("/import", artworkHandler.Import)
		artworks.GET("/export.pdf", artworkHandler.ExportCatalog)
		artworks.GET("/:id", artworkHandler.GetByID)
		artworks.PUT("/:id", artworkHandler.Update)
		artworks.DELETE("/:id", artworkHandler.Delete)
	}

	museum := verified.Group("/museum")
	{
		museum.GET("/search", museumHandler.Search)
		museum.GET("/objects/:id", museumHandler.GetObject)
	}

	return r
}
