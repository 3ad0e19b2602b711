// Package ingest consumes generated entity payloads from the event bus and
// stores them through the domain services.
package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/opensource-realty/casa/internal/domain"
	"github.com/opensource-realty/casa/internal/service"
)

// Worker subscribes to the entity-created topics and persists each payload.
// Field matching on decode is case-insensitive, so payloads from any
// producer dialect are accepted. A bad payload is logged and dropped, never
// retried: the bus is a stream, not a queue with redelivery.
type Worker struct {
	bus      domain.EventBus
	services *service.Services

	subscriptions []domain.Subscription
}

// NewWorker creates an ingest worker.
func NewWorker(bus domain.EventBus, services *service.Services) *Worker {
	return &Worker{
		bus:      bus,
		services: services,
	}
}

// Start subscribes to both topics. Handlers run until Stop or context
// cancellation.
func (w *Worker) Start(ctx context.Context) error {
	counterpartySub, err := w.bus.Subscribe(ctx, domain.TopicCounterpartyCreated, w.handleCounterparty)
	if err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", domain.TopicCounterpartyCreated, err)
	}
	w.subscriptions = append(w.subscriptions, counterpartySub)

	propertySub, err := w.bus.Subscribe(ctx, domain.TopicPropertyCreated, w.handleProperty)
	if err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", domain.TopicPropertyCreated, err)
	}
	w.subscriptions = append(w.subscriptions, propertySub)

	slog.Info("ingest worker started",
		"topics", []string{domain.TopicCounterpartyCreated, domain.TopicPropertyCreated},
	)
	return nil
}

// Stop unsubscribes from all topics.
func (w *Worker) Stop() {
	for _, sub := range w.subscriptions {
		if err := sub.Unsubscribe(); err != nil {
			slog.Warn("failed to unsubscribe", "topic", sub.Topic(), "error", err)
		}
	}
	w.subscriptions = nil
	slog.Info("ingest worker stopped")
}

func (w *Worker) handleCounterparty(ctx context.Context, payload []byte) error {
	var in domain.CreateCounterparty
	if err := json.Unmarshal(payload, &in); err != nil {
		slog.Error("failed to decode counterparty payload", "error", err)
		return err
	}

	created, err := w.services.Counterparties.Create(ctx, in)
	if err != nil {
		slog.Error("failed to store ingested counterparty",
			"full_name", in.FullName,
			"error", err,
		)
		return err
	}

	slog.Debug("counterparty ingested", "id", created.ID, "full_name", created.FullName)
	return nil
}

func (w *Worker) handleProperty(ctx context.Context, payload []byte) error {
	var in domain.CreateProperty
	if err := json.Unmarshal(payload, &in); err != nil {
		slog.Error("failed to decode property payload", "error", err)
		return err
	}

	created, err := w.services.Properties.Create(ctx, in)
	if err != nil {
		slog.Error("failed to store ingested property",
			"address", in.Address,
			"error", err,
		)
		return err
	}

	slog.Debug("property ingested", "id", created.ID, "address", created.Address)
	return nil
}
