// Package bus provides event bus implementations for casa.
package bus

import (
	"fmt"

	"github.com/opensource-realty/casa/internal/domain"
)

// New creates a new event bus based on configuration.
// "channel" is the in-process bus for tests and dev; "nats" is the real one.
func New(cfg domain.EventBusConfig) (domain.EventBus, error) {
	switch cfg.Type {
	case "channel":
		return NewChannelBus(cfg.ChannelBufferSize), nil

	case "nats":
		return NewNATSBus(cfg), nil

	default:
		return nil, fmt.Errorf("unsupported event bus type: %s", cfg.Type)
	}
}
