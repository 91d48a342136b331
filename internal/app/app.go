package app

import (
	"database/sql"
	"fmt"
	"log"

	"github.com/BornToCode265/ADIS/internal/auth"
	"github.com/BornToCode265/ADIS/internal/config"
	"github.com/BornToCode265/ADIS/internal/handlers"
	"github.com/BornToCode265/ADIS/internal/notify"
	"github.com/BornToCode265/ADIS/internal/pdf"
	"github.com/BornToCode265/ADIS/internal/repositories"
	"github.com/BornToCode265/ADIS/internal/routes"
	"github.com/BornToCode265/ADIS/internal/services"
	"github.com/BornToCode265/ADIS/internal/utils"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/BornToCode265/ADIS/docs"
)

func Run() {
	cfg := config.LoadConfig()

	// === DB ===
	db, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Failed to close database: %v", err)
		}
	}()

	// === Repos ===
	userRepo := repositories.NewUserRepository(db)
	otpRepo := repositories.NewOTPRepository(db)
	productRepo := repositories.NewProductRepository(db)
	systemDataRepo := repositories.NewSystemDataRepository(db)
	cropRepo := repositories.NewCropRepository(db)
	ticketRepo := repositories.NewTicketRepository(db)
	documentRepo := repositories.NewDocumentRepository(db)

	// === Services ===
	codec := auth.NewCodec(cfg.Auth.Secret, cfg.Auth.TokenDuration())

	smsClient := utils.NewSMSClient(
		cfg.SMS.APIURL,
		cfg.SMS.APIKey,
		cfg.SMS.SenderID,
		cfg.SMS.DryRun,
	)
	otpService := services.NewOTPService(otpRepo, smsClient, cfg.Auth.OTPDuration())
	authService := services.NewAuthService(userRepo, otpService, codec)
	userService := services.NewUserService(userRepo, authService)

	emailService := services.NewEmailService(
		cfg.Email.SMTPHost,
		cfg.Email.SMTPPort,
		cfg.Email.SMTPUser,
		cfg.Email.SMTPPassword,
		cfg.Email.FromEmail,
		cfg.Email.SupportInbox,
	)

	// Telegram ops alerts stay off unless a bot token is configured.
	var notifier services.AlertNotifier
	if cfg.Telegram.BotToken != "" {
		tg, err := notify.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.OpsChatID)
		if err != nil {
			log.Printf("[app] telegram notifier disabled: %v", err)
		} else {
			notifier = tg
		}
	}

	productService := services.NewProductService(productRepo, systemDataRepo, notifier)
	cropService := services.NewCropService(cropRepo)
	ticketService := services.NewTicketService(ticketRepo, emailService)
	dashboardService := services.NewDashboardService(productRepo, cropRepo, ticketRepo, systemDataRepo)
	adminService := services.NewAdminService(userRepo, productRepo, ticketRepo, systemDataRepo)

	// === Handlers ===
	authHandler := handlers.NewAuthHandler(authService, otpService)
	userHandler := handlers.NewUserHandler(userService, authService)
	productHandler := handlers.NewProductHandler(productService)
	cropHandler := handlers.NewCropHandler(cropService)
	supportHandler := handlers.NewSupportHandler(ticketService, userService, documentRepo, cfg.Files.RootDir)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	adminHandler := handlers.NewAdminHandler(adminService, pdf.NewReportGenerator())

	// === Gin ===
	router := gin.Default()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())

	// Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	routes.SetupRoutes(
		router,
		codec,
		authHandler,
		userHandler,
		productHandler,
		cropHandler,
		supportHandler,
		dashboardHandler,
		adminHandler,
	)

	// === Run ===
	listenAddr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("ADIS backend listening on %s", listenAddr)
	if err := router.Run(listenAddr); err != nil {
		log.Fatal("Failed to start server: ", err)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
