package auth

import (
	"context"

	"github.com/safeshareapp/safeshare/internal/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_gateway.go -package=mocks github.com/safeshareapp/safeshare/services/auth AuthGW

// AuthGW defines the auth gateways interface
type AuthGW interface {
	// NATS Gateway
	PublishOTPEmail(ctx context.Context, event *models.OTPEmailEvent) error
}
