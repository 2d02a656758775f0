package app

import (
	"database/sql"
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"galleria/internal/config"
	"galleria/internal/handlers"
	"galleria/internal/middleware"
	"galleria/internal/migrations"
	"galleria/internal/museum"
	"galleria/internal/pdf"
	"galleria/internal/repositories"
	"galleria/internal/routes"
	"galleria/internal/services"
	"galleria/internal/stores"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "galleria/docs"
)

func Run(configPath string) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatal("failed to load config: ", err)
	}

	// === DB ===
	db, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		log.Fatal("failed to open database: ", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("failed to close database: %v", err)
		}
	}()
	if err := migrations.Up(db); err != nil {
		log.Fatal("failed to run migrations: ", err)
	}

	// === Redis ===
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer rdb.Close()

	// === Repos / stores ===
	userRepo := repositories.NewUserRepository(db)
	challengeRepo := repositories.NewChallengeRepository(db)
	artworkRepo := repositories.NewArtworkRepository(db)

	pendingStore := stores.NewPendingRegistrationStore(rdb)
	loginStore := stores.NewLoginChallengeStore(rdb)
	grantStore := stores.NewGrantStore(rdb)

	// === Services ===
	emailService := services.NewEmailService(
		cfg.Email.SMTPHost,
		cfg.Email.SMTPPort,
		cfg.Email.SMTPUser,
		cfg.Email.SMTPPassword,
		cfg.Email.FromEmail,
		cfg.Email.DryRun,
	)
	verificationService := services.NewVerificationService(challengeRepo, emailService, cfg.OTP)
	authService := services.NewAuthService(
		userRepo, loginStore, verificationService,
		cfg.Auth.JWTSecret, cfg.Auth.AccessTTL, cfg.Auth.RefreshTTL, cfg.OTP.TTL,
	)
	registrationService := services.NewRegistrationService(
		userRepo, pendingStore, verificationService, authService, emailService, cfg.OTP.TTL,
	)
	resetService := services.NewPasswordResetService(
		userRepo, grantStore, verificationService, authService, cfg.Auth.StepUpGrantTTL,
	)
	stepUpService := services.NewStepUpService(grantStore, verificationService, cfg.Auth.StepUpGrantTTL)
	profileService := services.NewProfileService(userRepo, authService, stepUpService)

	museumClient := museum.NewClient(cfg.Museum.BaseURL, cfg.Museum.DryRun)
	artworkService := services.NewArtworkService(artworkRepo, museumClient, pdf.NewCatalogGenerator())

	// === Handlers ===
	registerHandler := handlers.NewRegisterHandler(registrationService)
	authHandler := handlers.NewAuthHandler(authService)
	resetHandler := handlers.NewPasswordResetHandler(resetService)
	profileHandler := handlers.NewProfileHandler(profileService, stepUpService)
	artworkHandler := handlers.NewArtworkHandler(artworkService)
	museumHandler := handlers.NewMuseumHandler(museumClient)

	// === Gin ===
	router := gin.Default()
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())
	router.Use(middleware.ResponseMode())

	// Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	routes.SetupRoutes(
		router,
		[]byte(cfg.Auth.JWTSecret),
		userRepo,
		registerHandler,
		authHandler,
		resetHandler,
		profileHandler,
		artworkHandler,
		museumHandler,
	)

	// === Run ===
	listenAddr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("server listening on %s", listenAddr)
	if err := router.Run(listenAddr); err != nil {
		log.Fatal("server failed: ", err)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization, X-Requested-With")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
