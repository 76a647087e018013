// Package authflow drives the staged sign-in and registration sequence
// against the identity service. The flow owns only transition logic and
// error surfacing; every credential decision is delegated to the service.
package authflow

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/safeshareapp/safeshare/internal/pkg/circuitbreaker"
	httppkg "github.com/safeshareapp/safeshare/internal/pkg/http"
	"github.com/safeshareapp/safeshare/internal/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_client.go -package=mocks github.com/safeshareapp/safeshare/client/authflow IdentityClient

// IdentityClient is the identity-service boundary consumed by the flow
type IdentityClient interface {
	CheckUser(ctx context.Context, email string) (models.ExistenceResult, error)
	Login(ctx context.Context, email, password string) (string, error)
	SignUp(ctx context.Context, name, email, password string) (*models.UserSummary, error)
	SendOTP(ctx context.Context, email string, purpose models.OTPPurpose) error
	VerifyOTP(ctx context.Context, email, code string) (bool, error)
	Refresh(ctx context.Context) (string, error)

	// SetAuthToken mirrors the access token into the default
	// Authorization header of subsequent requests
	SetAuthToken(token string)
}

// RemoteError is a completed call that the service rejected. Message comes
// verbatim from the response envelope.
type RemoteError struct {
	HTTPStatus int
	Status     string
	Message    string
	SubErrors  []string
}

func (e *RemoteError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("identity service rejected the request (%d)", e.HTTPStatus)
}

// HTTPIdentityClient talks to the identity service over its JSON envelope
// protocol, behind a circuit breaker
type HTTPIdentityClient struct {
	http    *httppkg.Client
	breaker *circuitbreaker.CircuitBreaker
}

// NewHTTPIdentityClient creates an identity client for the given config
func NewHTTPIdentityClient(cfg *models.Config) *HTTPIdentityClient {
	timeout := time.Duration(cfg.Client.TimeoutSeconds) * time.Second
	return &HTTPIdentityClient{
		http:    httppkg.NewClient(cfg.Client.AuthServiceURL, timeout),
		breaker: circuitbreaker.New(identityBreakerConfig()),
	}
}

// identityBreakerConfig trips the breaker on transport failures and server
// faults only. A rejected login, a wrong code or a duplicate email is the
// service answering, not the service failing; counting those would lock the
// user out of retrying with corrected input.
func identityBreakerConfig() circuitbreaker.Config {
	config := circuitbreaker.DefaultConfig("identity-service")
	config.IsFailure = func(err error) bool {
		if err == nil {
			return false
		}
		var remote *RemoteError
		if errors.As(err, &remote) {
			return remote.HTTPStatus >= 500
		}
		return true
	}
	return config
}

// CheckUser asks whether an account exists for the email
func (c *HTTPIdentityClient) CheckUser(ctx context.Context, email string) (models.ExistenceResult, error) {
	var exists bool
	err := c.call(ctx, "/auth/check-user", models.CheckUserRequest{Email: email}, &exists)
	if err != nil {
		return models.UserNotFound, err
	}
	if exists {
		return models.UserExists, nil
	}
	return models.UserNotFound, nil
}

// Login exchanges credentials for an access token
func (c *HTTPIdentityClient) Login(ctx context.Context, email, password string) (string, error) {
	var resp models.LoginResponse
	err := c.call(ctx, "/auth/login", models.LoginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return "", err
	}
	return resp.AccessToken, nil
}

// SignUp creates an account and returns its summary
func (c *HTTPIdentityClient) SignUp(ctx context.Context, name, email, password string) (*models.UserSummary, error) {
	var summary models.UserSummary
	err := c.call(ctx, "/auth/signUp", models.SignUpRequest{Name: name, Email: email, Password: password}, &summary)
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

// SendOTP asks the service to issue and mail a verification code
func (c *HTTPIdentityClient) SendOTP(ctx context.Context, email string, purpose models.OTPPurpose) error {
	var resp models.SendOTPResponse
	return c.call(ctx, "/auth/send-otp", models.SendOTPRequest{Email: email, Type: purpose}, &resp)
}

// VerifyOTP submits a user-entered code
func (c *HTTPIdentityClient) VerifyOTP(ctx context.Context, email, code string) (bool, error) {
	var resp models.VerifyOTPResponse
	err := c.call(ctx, "/auth/verify-otp", models.VerifyOTPRequest{Email: email, OTP: code}, &resp)
	if err != nil {
		return false, err
	}
	return resp.Verified, nil
}

// Refresh asks for a fresh access token using the refresh cookie
func (c *HTTPIdentityClient) Refresh(ctx context.Context) (string, error) {
	var resp models.LoginResponse
	err := c.call(ctx, "/auth/refresh", nil, &resp)
	if err != nil {
		return "", err
	}
	return resp.AccessToken, nil
}

// SetAuthToken mirrors the token into the default Authorization header
func (c *HTTPIdentityClient) SetAuthToken(token string) {
	if token == "" {
		c.http.RemoveDefaultHeader("Authorization")
		return
	}
	c.http.SetDefaultHeader("Authorization", "Bearer "+token)
}

// call posts a request and decodes the response envelope into out. A call
// succeeds only when the HTTP status is 2xx AND data is non-null.
func (c *HTTPIdentityClient) call(ctx context.Context, endpoint string, body, out interface{}) error {
	return c.breaker.Execute(ctx, func(ctx context.Context) error {
		status, respBody, err := c.http.PostJSON(ctx, endpoint, body)
		if err != nil {
			return fmt.Errorf("identity service unreachable: %w", err)
		}

		var envelope models.APIResponse
		if err := json.Unmarshal(respBody, &envelope); err != nil {
			return fmt.Errorf("malformed identity service response: %w", err)
		}

		if status < 200 || status >= 300 || isNullData(envelope.Data) {
			remote := &RemoteError{HTTPStatus: status}
			if envelope.Error != nil {
				remote.Status = envelope.Error.Status
				remote.Message = envelope.Error.Message
				remote.SubErrors = envelope.Error.SubErrors
			}
			return remote
		}

		if out != nil {
			if err := json.Unmarshal(envelope.Data, out); err != nil {
				return fmt.Errorf("malformed identity service payload: %w", err)
			}
		}
		return nil
	})
}

func isNullData(data json.RawMessage) bool {
	return len(data) == 0 || string(data) == "null"
}

// AsRemoteError unwraps a RemoteError when the call completed but was
// rejected by the service
func AsRemoteError(err error) (*RemoteError, bool) {
	var remote *RemoteError
	if errors.As(err, &remote) {
		return remote, true
	}
	return nil, false
}
