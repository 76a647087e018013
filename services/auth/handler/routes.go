package handler

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/safeshareapp/safeshare/internal/pkg/database"
	"github.com/safeshareapp/safeshare/internal/pkg/middleware"
	"github.com/safeshareapp/safeshare/internal/pkg/models"
	authhttp "github.com/safeshareapp/safeshare/services/auth/handler/http"
)

// Handler coordinates the HTTP handlers for the auth service
type Handler struct {
	authHandler *authhttp.AuthHandler
	redisClient *database.RedisClient
	cfg         *models.Config
}

// NewHandler creates and initializes all handlers
func NewHandler(
	authHandler *authhttp.AuthHandler,
	redisClient *database.RedisClient,
	cfg *models.Config,
) *Handler {
	return &Handler{
		authHandler: authHandler,
		redisClient: redisClient,
		cfg:         cfg,
	}
}

// RegisterRoutes sets up the auth routes. The code endpoints sit behind a
// per-client rate limit.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	otpLimiter := middleware.RateLimiterMiddleware(middleware.RateLimiterConfig{
		RedisClient: h.redisClient.Client,
		Key:         "rate:limit:otp",
		Limit:       10,
		Period:      time.Minute,
	})

	authGroup := e.Group("/auth")
	authGroup.POST("/check-user", h.authHandler.CheckUser)
	authGroup.POST("/login", h.authHandler.Login)
	authGroup.POST("/signUp", h.authHandler.SignUp)
	authGroup.POST("/send-otp", h.authHandler.SendOTP, otpLimiter)
	authGroup.POST("/verify-otp", h.authHandler.VerifyOTP, otpLimiter)
	authGroup.POST("/refresh", h.authHandler.Refresh)
	authGroup.POST("/logout", h.authHandler.Logout)

	authGroup.GET("/me", h.authHandler.Me, middleware.JWTAuthMiddleware(h.cfg.JWT))
}
