package domain

import "context"

// EventBus is the message transport contract. Payloads are opaque bytes;
// both producers and consumers in this system exchange JSON-encoded create
// payloads on the entity topics below.
type EventBus interface {
	// Connect establishes the underlying connection. Implementations retry
	// with backoff until the context is cancelled; calling Connect on an
	// already connected bus is a no-op.
	Connect(ctx context.Context) error

	// Publish sends a payload to a topic.
	Publish(ctx context.Context, topic string, payload []byte) error

	// Subscribe registers a handler for a topic.
	// Returns a subscription that can be used to unsubscribe.
	Subscribe(ctx context.Context, topic string, handler MessageHandler) (Subscription, error)

	// Health check
	Ping(ctx context.Context) error

	// Lifecycle
	Close() error
}

// MessageHandler processes one incoming payload. A handler error is logged
// by the transport and never stops the subscription.
type MessageHandler func(ctx context.Context, payload []byte) error

// Subscription represents an active subscription.
type Subscription interface {
	// Unsubscribe stops receiving messages.
	Unsubscribe() error

	// Topic returns the subscribed topic.
	Topic() string
}

// EventBusConfig holds configuration for event bus initialization.
type EventBusConfig struct {
	// Type is the bus type: "channel" or "nats"
	Type string

	// Channel settings (in-process bus for tests and dev)
	ChannelBufferSize int

	// NATS settings
	NATSUrl         string
	NATSName        string
	ConnectTimeout  int // seconds, per attempt
	RetryBaseDelay  int // seconds
	RetryMaxDelay   int // seconds
	RetryMaxAttempt int // 0 = retry until cancelled
}

// Entity topics. Payload is the JSON-encoded create payload for the entity.
const (
	TopicCounterpartyCreated = "realestate.counterparty.created"
	TopicPropertyCreated     = "realestate.property.created"
	TopicRequestCreated      = "realestate.request.created"
)
