package gateway

import (
	"context"

	"github.com/safeshareapp/safeshare/internal/pkg/models"
)

// PublishOTPEmail forwards a verification code event to the mail dispatcher
func (g *AuthGW) PublishOTPEmail(ctx context.Context, event *models.OTPEmailEvent) error {
	return g.natsGateway.PublishOTPEmail(ctx, event)
}
