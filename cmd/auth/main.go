package main

import (
	"log"
	"os"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/safeshareapp/safeshare/internal/pkg/config"
	"github.com/safeshareapp/safeshare/internal/pkg/database"
	"github.com/safeshareapp/safeshare/internal/pkg/health"
	"github.com/safeshareapp/safeshare/internal/pkg/logger"
	"github.com/safeshareapp/safeshare/internal/pkg/middleware"
	natspkg "github.com/safeshareapp/safeshare/internal/pkg/nats"
	"github.com/safeshareapp/safeshare/internal/pkg/server"
	"github.com/safeshareapp/safeshare/services/auth/gateway"
	"github.com/safeshareapp/safeshare/services/auth/handler"
	httpHandler "github.com/safeshareapp/safeshare/services/auth/handler/http"
	"github.com/safeshareapp/safeshare/services/auth/repository"
	"github.com/safeshareapp/safeshare/services/auth/usecase"
)

func main() {
	appName := "auth-service"
	configPath := os.Getenv("CONFIG_PATH")
	configs := config.InitConfig(configPath)

	zapLogger, err := logger.InitZapLoggerFromConfig(configs)
	if err != nil {
		log.Fatalf("Failed to create Zap logger: %v", err)
	}
	defer zapLogger.Close()
	logger.SetGlobalLogger(zapLogger)

	zapLogger.Info("Starting application",
		zap.String("app", appName),
		zap.String("version", configs.App.Version),
		zap.String("environment", configs.App.Environment),
	)

	// Initialize PostgreSQL database connection
	postgresClient, err := database.NewPostgresClient(configs.Database)
	if err != nil {
		zapLogger.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer postgresClient.Close()

	// Initialize Redis client
	redisClient, err := database.NewRedisClient(configs.Redis)
	if err != nil {
		zapLogger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()

	// Initialize NATS
	natsClient, err := natspkg.NewClient(configs.NATS.URL)
	if err != nil {
		zapLogger.Fatal("Failed to connect to NATS", zap.Error(err))
	}
	defer natsClient.Close()

	// Initialize repositories
	otpRepo := repository.NewOTPRepo(configs, redisClient)
	userRepo := repository.NewUserRepo(configs, postgresClient.GetDB())
	sessionRepo := repository.NewSessionRepo(configs, redisClient)

	// Initialize gateway
	authGW := gateway.NewAuthGW(natsClient)

	// Initialize usecase
	authUC := usecase.NewAuthUC(otpRepo, userRepo, sessionRepo, authGW, configs)

	// Initialize handlers
	authHandler := httpHandler.NewAuthHandler(authUC, configs)
	h := handler.NewHandler(authHandler, redisClient, configs)

	// Initialize Echo router
	e := echo.New()
	e.HideBanner = true

	// Add middlewares
	e.Use(middleware.RequestContextMiddleware(appName))
	e.Use(middleware.PanicRecoveryMiddleware(zapLogger))
	e.Use(logger.ZapEchoMiddleware(zapLogger))

	// Register health endpoints
	health.RegisterHealthEndpoints(e, appName)

	healthService := health.NewHealthService()
	healthService.AddChecker("postgres", health.NewPostgresHealthChecker(postgresClient))
	healthService.AddChecker("redis", health.NewRedisHealthChecker(redisClient))
	healthService.AddChecker("nats", health.NewNATSHealthChecker(natsClient))
	health.RegisterReadinessEndpoint(e, appName, healthService)

	// Register service routes
	h.RegisterRoutes(e)

	zapLogger.Info("Starting server",
		zap.String("app", appName),
		zap.Int("port", configs.Server.Port),
	)

	srv := server.NewGracefulServer(e, zapLogger, configs.Server.Port)
	if err := srv.Start(); err != nil {
		zapLogger.Fatal("Server stopped unexpectedly",
			zap.String("app", appName),
			zap.Error(err),
		)
	}
}
