package bus

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/opensource-realty/casa/internal/domain"
)

// NATSBus implements domain.EventBus on NATS. The connection is established
// lazily by Connect under a double-checked lock, so concurrent producers
// never race on connection establishment, and the connect path retries with
// bounded exponential backoff until cancelled.
type NATSBus struct {
	mu     sync.Mutex
	conn   *nats.Conn
	config domain.EventBusConfig
	retry  RetryPolicy

	subMu         sync.Mutex
	subscriptions []*natsSubscription
}

type natsSubscription struct {
	topic string
	sub   *nats.Subscription
}

// NewNATSBus creates a NATS-backed event bus. No connection is made until
// Connect or the first Publish/Subscribe.
func NewNATSBus(cfg domain.EventBusConfig) *NATSBus {
	retry := DefaultRetryPolicy()
	if cfg.RetryBaseDelay > 0 {
		retry.BaseDelay = time.Duration(cfg.RetryBaseDelay) * time.Second
	}
	if cfg.RetryMaxDelay > 0 {
		retry.MaxDelay = time.Duration(cfg.RetryMaxDelay) * time.Second
	}
	retry.MaxAttempts = cfg.RetryMaxAttempt

	return &NATSBus{
		config: cfg,
		retry:  retry,
	}
}

// Connect establishes the NATS connection with retry. Safe for concurrent
// use; once connected it returns immediately.
func (b *NATSBus) Connect(ctx context.Context) error {
	if b.connected() {
		return nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	// Recheck under the lock: another caller may have connected meanwhile.
	if b.conn != nil && b.conn.IsConnected() {
		return nil
	}

	return b.retry.Execute(ctx, "nats connect", func(ctx context.Context) error {
		slog.Info("connecting to NATS", "url", b.config.NATSUrl)

		timeout := time.Duration(b.config.ConnectTimeout) * time.Second
		if timeout <= 0 {
			timeout = 10 * time.Second
		}

		conn, err := nats.Connect(b.config.NATSUrl,
			nats.Name(b.config.NATSName),
			nats.Timeout(timeout),
			nats.RetryOnFailedConnect(false),
			nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
				slog.Warn("NATS disconnected",
					"error", err,
					"will_reconnect", !nc.IsClosed(),
				)
			}),
			nats.ReconnectHandler(func(nc *nats.Conn) {
				slog.Info("NATS reconnected", "url", nc.ConnectedUrl())
			}),
			nats.ClosedHandler(func(nc *nats.Conn) {
				slog.Info("NATS connection closed")
			}),
		)
		if err != nil {
			return fmt.Errorf("failed to connect to NATS at %s: %w", b.config.NATSUrl, err)
		}

		b.conn = conn
		slog.Info("NATS connected",
			"url", conn.ConnectedUrl(),
			"server_id", conn.ConnectedServerId(),
		)
		return nil
	})
}

func (b *NATSBus) connected() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.conn != nil && b.conn.IsConnected()
}

// Publish sends a payload to a NATS subject, connecting first if needed.
func (b *NATSBus) Publish(ctx context.Context, topic string, payload []byte) error {
	if err := b.Connect(ctx); err != nil {
		return err
	}

	if err := b.conn.Publish(topic, payload); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", topic, err)
	}
	return nil
}

// Subscribe registers a handler for a NATS subject.
func (b *NATSBus) Subscribe(ctx context.Context, topic string, handler domain.MessageHandler) (domain.Subscription, error) {
	if err := b.Connect(ctx); err != nil {
		return nil, err
	}

	natsSub, err := b.conn.Subscribe(topic, func(m *nats.Msg) {
		if err := handler(ctx, m.Data); err != nil {
			slog.Error("message handler error",
				"topic", m.Subject,
				"error", err,
			)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("failed to subscribe to %s: %w", topic, err)
	}

	sub := &natsSubscription{topic: topic, sub: natsSub}

	b.subMu.Lock()
	b.subscriptions = append(b.subscriptions, sub)
	b.subMu.Unlock()

	return sub, nil
}

// Ping checks NATS connectivity.
func (b *NATSBus) Ping(ctx context.Context) error {
	b.mu.Lock()
	conn := b.conn
	b.mu.Unlock()

	if conn == nil || !conn.IsConnected() {
		return fmt.Errorf("NATS not connected")
	}
	return conn.FlushWithContext(ctx)
}

// Close unsubscribes everything and releases the connection.
func (b *NATSBus) Close() error {
	b.subMu.Lock()
	for _, sub := range b.subscriptions {
		_ = sub.sub.Unsubscribe()
	}
	b.subscriptions = nil
	b.subMu.Unlock()

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.conn != nil {
		b.conn.Close()
		b.conn = nil
	}
	return nil
}

// Unsubscribe removes the subscription.
func (s *natsSubscription) Unsubscribe() error {
	return s.sub.Unsubscribe()
}

// Topic returns the subscribed topic.
func (s *natsSubscription) Topic() string {
	return s.topic
}
