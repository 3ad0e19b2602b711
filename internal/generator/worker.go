package generator

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/opensource-realty/casa/internal/domain"
)

// Worker is the contract generator's control loop: it fabricates batches of
// (counterparty, property) pairs and publishes them to their topics, pacing
// itself with the configured delays. A failed batch is logged and retried
// after a fixed backoff; only cancellation stops the loop.
type Worker struct {
	bus      domain.EventBus
	contract *Contract
	config   domain.GeneratorConfig

	done chan struct{}
}

// NewWorker creates a generator worker.
func NewWorker(bus domain.EventBus, contract *Contract, cfg domain.GeneratorConfig) *Worker {
	return &Worker{
		bus:      bus,
		contract: contract,
		config:   cfg,
		done:     make(chan struct{}),
	}
}

// Run connects to the bus and streams batches until ctx is cancelled.
// Cancellation is reported as the context's error, not as a failure.
func (w *Worker) Run(ctx context.Context) error {
	defer close(w.done)

	if err := w.bus.Connect(ctx); err != nil {
		return fmt.Errorf("generator could not connect: %w", err)
	}

	slog.Info("contract generation started",
		"batch_size", w.config.BatchSize,
		"batch_delay_ms", w.config.BatchDelayMs,
	)

	totalGenerated := 0
	for {
		if err := ctx.Err(); err != nil {
			slog.Info("contract generation stopped", "total", totalGenerated)
			return err
		}

		if err := w.publishBatch(ctx); err != nil {
			if ctx.Err() != nil {
				slog.Info("contract generation stopped", "total", totalGenerated)
				return ctx.Err()
			}

			slog.Error("batch failed", "error", err)
			if !sleep(ctx, time.Duration(w.config.FailureBackoffMs)*time.Millisecond) {
				return ctx.Err()
			}
			continue
		}

		totalGenerated += w.config.BatchSize
		slog.Info("batch published",
			"batch_size", w.config.BatchSize,
			"total", totalGenerated,
		)

		if !sleep(ctx, time.Duration(w.config.BatchDelayMs)*time.Millisecond) {
			slog.Info("contract generation stopped", "total", totalGenerated)
			return ctx.Err()
		}
	}
}

// Done is closed once the loop has fully exited.
func (w *Worker) Done() <-chan struct{} {
	return w.done
}

// publishBatch fabricates one batch and publishes each pair: counterparty
// first, then property, with the inter-message delay after each.
func (w *Worker) publishBatch(ctx context.Context) error {
	messageDelay := time.Duration(w.config.MessageDelayMs) * time.Millisecond

	for i := 0; i < w.config.BatchSize; i++ {
		pkg := w.contract.NewPackage()

		if err := w.publish(ctx, w.config.CounterpartyTopic, pkg.Counterparty); err != nil {
			return err
		}
		slog.Debug("counterparty published", "full_name", pkg.Counterparty.FullName)

		if !sleep(ctx, messageDelay) {
			return ctx.Err()
		}

		if err := w.publish(ctx, w.config.PropertyTopic, pkg.Property); err != nil {
			return err
		}
		slog.Debug("property published", "address", pkg.Property.Address)

		if !sleep(ctx, messageDelay) {
			return ctx.Err()
		}
	}
	return nil
}

func (w *Worker) publish(ctx context.Context, topic string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode payload for %s: %w", topic, err)
	}
	if err := w.bus.Publish(ctx, topic, data); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", topic, err)
	}
	return nil
}

// sleep waits for d unless ctx is cancelled first; it reports whether the
// full delay elapsed.
func sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	select {
	case <-ctx.Done():
		return false
	case <-time.After(d):
		return true
	}
}
