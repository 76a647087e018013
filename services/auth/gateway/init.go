package gateway

import (
	natspkg "github.com/safeshareapp/safeshare/internal/pkg/nats"
	"github.com/safeshareapp/safeshare/services/auth"
	gateway_nats "github.com/safeshareapp/safeshare/services/auth/gateway/nats"
)

// AuthGW handles auth gateway operations
type AuthGW struct {
	natsGateway *gateway_nats.NATSGateway
}

// NewAuthGW creates a new gateway instance with a NATS client
func NewAuthGW(natsClient *natspkg.Client) auth.AuthGW {
	return &AuthGW{
		natsGateway: gateway_nats.NewNATSGateway(natsClient),
	}
}
