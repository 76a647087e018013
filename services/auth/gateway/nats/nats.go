package gateway_nats

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/safeshareapp/safeshare/internal/pkg/constants"
	"github.com/safeshareapp/safeshare/internal/pkg/logger"
	"github.com/safeshareapp/safeshare/internal/pkg/models"
	natspkg "github.com/safeshareapp/safeshare/internal/pkg/nats"
	"github.com/safeshareapp/safeshare/internal/pkg/retry"
	"github.com/safeshareapp/safeshare/internal/utils"
)

// publisher abstracts the NATS client so the gateway can be exercised
// without a broker
type publisher interface {
	Publish(subject string, data []byte) error
}

// NATSGateway implements the NATS gateway operations for the auth service
type NATSGateway struct {
	client  publisher
	retrier *retry.Retrier
}

// NewNATSGateway creates a new NATS gateway
func NewNATSGateway(client *natspkg.Client) *NATSGateway {
	return newNATSGateway(client)
}

func newNATSGateway(client publisher) *NATSGateway {
	return &NATSGateway{
		client: client,
		retrier: retry.New(retry.Config{
			MaxRetries: 3,
			BaseDelay:  100 * time.Millisecond,
			MaxDelay:   2 * time.Second,
			Multiplier: 2.0,
			Jitter:     true,
			RetryableFunc: func(err error) bool {
				return true
			},
		}),
	}
}

// PublishOTPEmail publishes a verification code event to the mail dispatcher
// subject with bounded retry
func (g *NATSGateway) PublishOTPEmail(ctx context.Context, event *models.OTPEmailEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal verification email event: %w", err)
	}

	err = g.retrier.Execute(ctx, func(ctx context.Context) error {
		return g.client.Publish(constants.SubjectOTPEmail, data)
	})
	if err != nil {
		logger.Error("Failed to publish verification email event",
			logger.String("email", utils.MaskEmail(event.Email)),
			logger.Err(err))
		return fmt.Errorf("failed to publish verification email event: %w", err)
	}

	logger.Info("Published verification email event",
		logger.String("email", utils.MaskEmail(event.Email)),
		logger.String("purpose", string(event.Purpose)))

	return nil
}
