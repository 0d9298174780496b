package app

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"ehandout_backend/database"
	"ehandout_backend/internal/auth"
	"ehandout_backend/internal/config"
	"ehandout_backend/internal/email"
	"ehandout_backend/internal/handlers"
	"ehandout_backend/internal/logger"
	"ehandout_backend/internal/middleware"
	"ehandout_backend/internal/repositories"
	"ehandout_backend/internal/routes"
	"ehandout_backend/internal/services"
	"ehandout_backend/internal/tokencache"
	"ehandout_backend/internal/validator"
	"ehandout_backend/internal/workers"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func Run() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", "error", err)
	}
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	gormDB, err := database.Connect(cfg.Database.DSN)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := database.AutoMigrate(gormDB); err != nil {
		logger.Fatal("Failed to run migrations", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ginRouter := SetupRouter(cfg, gormDB, ctx)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Server starting", "address", address)
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

// SetupRouter wires repositories, services, handlers and routes and
// starts the background workers on workerCtx.
func SetupRouter(cfg *config.Config, gormDB *gorm.DB, workerCtx context.Context) *gin.Engine {
	serviceContainer, ledger := initializeServices(cfg, gormDB)
	appHandlers := initializeHandlers(serviceContainer)

	tokenWorker := workers.NewTokenWorker(ledger, 1*time.Hour)
	tokenWorker.Start(workerCtx)

	if cfg.Server.Env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	ginRouter := gin.New()
	ginRouter.Use(gin.Recovery())
	ginRouter.Use(middleware.RequestIDMiddleware())
	ginRouter.Use(middleware.LoggingMiddleware())
	ginRouter.Use(middleware.CORSMiddleware())

	routes.RegisterRoutes(ginRouter, appHandlers, serviceContainer.TokenService)

	return ginRouter
}

func initializeServices(cfg *config.Config, gormDB *gorm.DB) (*services.ServiceContainer, repositories.InvalidatedTokenRepository) {
	vendorRepo := repositories.NewVendorRepository(gormDB)
	userRepo := repositories.NewUserRepository(gormDB)
	ledger := repositories.NewInvalidatedTokenRepository(gormDB)
	managerRepo := repositories.NewManagerRepository(gormDB)
	contactRepo := repositories.NewContactRepository(gormDB)

	var cache *tokencache.Cache
	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		cache = tokencache.New(client)
		logger.Info("Revoked-token cache enabled", "addr", cfg.Redis.Addr)
	}

	var sender email.Sender
	if cfg.Email.SMTPHost != "" {
		sender = email.NewSMTPSender(
			cfg.Email.SMTPHost,
			cfg.Email.SMTPPort,
			cfg.Email.SMTPUsername,
			cfg.Email.SMTPPassword,
			cfg.Email.FromEmail,
		)
	} else {
		logger.Warn("SMTP not configured, OTP mail delivery disabled")
		sender = email.NoopSender{}
	}

	tokenManager := auth.NewTokenManager(cfg.JWT.Secret, time.Duration(cfg.JWT.TTLDays)*24*time.Hour)
	tokenService := services.NewTokenService(tokenManager, ledger, cache)

	otpTTL := time.Duration(cfg.OTP.ExpiryMinutes) * time.Minute

	return &services.ServiceContainer{
		TokenService:      tokenService,
		VendorAuthService: services.NewVendorAuthService(vendorRepo, contactRepo, tokenService, sender, otpTTL),
		UserAuthService:   services.NewUserAuthService(userRepo, contactRepo, tokenService, sender, otpTTL),
		ManagerService:    services.NewManagerService(managerRepo),
	}, ledger
}

func initializeHandlers(sc *services.ServiceContainer) *handlers.AppHandlers {
	base := handlers.NewBaseHandler(validator.New())

	return &handlers.AppHandlers{
		VendorAuth: handlers.NewVendorAuthHandler(base, sc.VendorAuthService, sc.TokenService),
		UserAuth:   handlers.NewUserAuthHandler(base, sc.UserAuthService, sc.TokenService),
		Manager:    handlers.NewManagerHandler(base, sc.ManagerService),
	}
}
