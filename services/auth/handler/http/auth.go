package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/safeshareapp/safeshare/internal/pkg/logger"
	"github.com/safeshareapp/safeshare/internal/pkg/models"
	"github.com/safeshareapp/safeshare/internal/utils"
	"github.com/safeshareapp/safeshare/services/auth"
)

// refreshCookieName is the HttpOnly cookie carrying the refresh token
const refreshCookieName = "refreshToken"

// AuthHandler handles HTTP requests for auth operations
type AuthHandler struct {
	authUC auth.AuthUC
	cfg    *models.Config
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authUC auth.AuthUC, cfg *models.Config) *AuthHandler {
	return &AuthHandler{
		authUC: authUC,
		cfg:    cfg,
	}
}

// CheckUser handles account existence checks
func (h *AuthHandler) CheckUser(c echo.Context) error {
	var req models.CheckUserRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request payload")
	}
	if req.Email == "" {
		return utils.BadRequestResponse(c, "Email is required")
	}

	result, err := h.authUC.CheckUserExists(c.Request().Context(), req.Email)
	if err != nil {
		logger.Error("Failed to check user existence",
			logger.ErrorField(err))
		return utils.InternalServerErrorResponse(c, "Failed to check user")
	}

	return utils.SuccessResponse(c, http.StatusOK, result.Exists())
}

// Login handles credential login requests
func (h *AuthHandler) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request payload")
	}
	if req.Email == "" || req.Password == "" {
		return utils.BadRequestResponse(c, "Email and password are required")
	}

	resp, refreshToken, err := h.authUC.Login(c.Request().Context(), &req)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return utils.UnauthorizedResponse(c, "Invalid email or password")
		}
		logger.Error("Login failed", logger.ErrorField(err))
		return utils.InternalServerErrorResponse(c, "Failed to log in")
	}

	h.setRefreshCookie(c, refreshToken)
	return utils.SuccessResponse(c, http.StatusOK, resp)
}

// SignUp handles account creation requests
func (h *AuthHandler) SignUp(c echo.Context) error {
	var req models.SignUpRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request payload")
	}

	summary, err := h.authUC.SignUp(c.Request().Context(), &req)
	if err != nil {
		if errors.Is(err, auth.ErrEmailTaken) {
			return utils.ConflictResponse(c, "An account with this email already exists")
		}
		logger.Warn("Signup rejected", logger.ErrorField(err))
		return utils.BadRequestResponse(c, "Failed to create account", err.Error())
	}

	return utils.SuccessResponse(c, http.StatusCreated, summary)
}

// SendOTP handles verification code requests
func (h *AuthHandler) SendOTP(c echo.Context) error {
	var req models.SendOTPRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request payload")
	}
	if req.Email == "" {
		return utils.BadRequestResponse(c, "Email is required")
	}
	if req.Type == "" {
		req.Type = models.OTPPurposeSignup
	}

	if err := h.authUC.SendOTP(c.Request().Context(), req.Email, req.Type); err != nil {
		logger.Error("Failed to send verification code",
			logger.String("email", utils.MaskEmail(req.Email)),
			logger.ErrorField(err))
		return utils.InternalServerErrorResponse(c, "Failed to send verification code")
	}

	return utils.SuccessResponse(c, http.StatusOK, models.SendOTPResponse{
		Message: "Verification code sent",
	})
}

// VerifyOTP handles verification code checks. Wrong, expired and exhausted
// codes all produce the same response body.
func (h *AuthHandler) VerifyOTP(c echo.Context) error {
	var req models.VerifyOTPRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request payload")
	}
	if req.Email == "" || req.OTP == "" {
		return utils.BadRequestResponse(c, "Email and OTP are required")
	}

	verified, err := h.authUC.VerifyOTP(c.Request().Context(), req.Email, req.OTP)
	if err != nil {
		logger.Error("Failed to verify code", logger.ErrorField(err))
		return utils.InternalServerErrorResponse(c, "Failed to verify code")
	}

	if !verified {
		return utils.BadRequestResponse(c, "Invalid verification code")
	}

	return utils.SuccessResponse(c, http.StatusOK, models.VerifyOTPResponse{
		Message:  "Verification successful",
		Verified: true,
	})
}

// Refresh exchanges the refresh cookie for a fresh access token
func (h *AuthHandler) Refresh(c echo.Context) error {
	cookie, err := c.Cookie(refreshCookieName)
	if err != nil || cookie.Value == "" {
		return utils.UnauthorizedResponse(c, "Missing refresh token")
	}

	resp, refreshToken, err := h.authUC.Refresh(c.Request().Context(), cookie.Value)
	if err != nil {
		if errors.Is(err, auth.ErrSessionNotFound) {
			h.clearRefreshCookie(c)
			return utils.UnauthorizedResponse(c, "Session expired")
		}
		logger.Error("Failed to refresh session", logger.ErrorField(err))
		return utils.InternalServerErrorResponse(c, "Failed to refresh session")
	}

	h.setRefreshCookie(c, refreshToken)
	return utils.SuccessResponse(c, http.StatusOK, resp)
}

// Logout revokes the refresh session and clears the cookie
func (h *AuthHandler) Logout(c echo.Context) error {
	var token string
	if cookie, err := c.Cookie(refreshCookieName); err == nil {
		token = cookie.Value
	}

	if err := h.authUC.Logout(c.Request().Context(), token); err != nil {
		logger.Error("Failed to log out", logger.ErrorField(err))
		return utils.InternalServerErrorResponse(c, "Failed to log out")
	}

	h.clearRefreshCookie(c)
	return utils.SuccessResponse(c, http.StatusOK, map[string]string{
		"message": "Logged out",
	})
}

// Me returns the authenticated account's summary. Requires the access
// token middleware to have resolved user_id.
func (h *AuthHandler) Me(c echo.Context) error {
	userID, ok := c.Get("user_id").(uuid.UUID)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	summary, err := h.authUC.Profile(c.Request().Context(), userID)
	if err != nil {
		logger.Error("Failed to load profile",
			logger.String("user_id", userID.String()),
			logger.ErrorField(err))
		return utils.InternalServerErrorResponse(c, "Failed to load profile")
	}

	return utils.SuccessResponse(c, http.StatusOK, summary)
}

func (h *AuthHandler) setRefreshCookie(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     refreshCookieName,
		Value:    token,
		Path:     "/auth",
		MaxAge:   h.cfg.Session.RefreshTTLHours * int(time.Hour/time.Second),
		HttpOnly: true,
		Secure:   h.cfg.App.Environment == "production",
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandler) clearRefreshCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     refreshCookieName,
		Value:    "",
		Path:     "/auth",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cfg.App.Environment == "production",
		SameSite: http.SameSiteLaxMode,
	})
}
