package generator

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/opensource-realty/casa/internal/bus"
	"github.com/opensource-realty/casa/internal/domain"
)

func testGeneratorConfig() domain.GeneratorConfig {
	return domain.GeneratorConfig{
		BatchSize:         2,
		BatchDelayMs:      10,
		MessageDelayMs:    1,
		FailureBackoffMs:  10,
		CounterpartyTopic: domain.TopicCounterpartyCreated,
		PropertyTopic:     domain.TopicPropertyCreated,
	}
}

func TestWorkerPublishesBatches(t *testing.T) {
	eventBus := bus.NewChannelBus(100)
	defer eventBus.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var counterparties, properties atomic.Int32
	eventBus.Subscribe(ctx, domain.TopicCounterpartyCreated, func(ctx context.Context, payload []byte) error {
		counterparties.Add(1)
		return nil
	})
	eventBus.Subscribe(ctx, domain.TopicPropertyCreated, func(ctx context.Context, payload []byte) error {
		properties.Add(1)
		return nil
	})

	worker := NewWorker(eventBus, NewContractSeeded(7), testGeneratorConfig())

	errCh := make(chan error, 1)
	go func() {
		errCh <- worker.Run(ctx)
	}()

	// Wait until at least one full batch of pairs has arrived.
	deadline := time.After(5 * time.Second)
	for counterparties.Load() < 2 || properties.Load() < 2 {
		select {
		case <-deadline:
			t.Fatalf("timeout: %d counterparties, %d properties",
				counterparties.Load(), properties.Load())
		case <-time.After(5 * time.Millisecond):
		}
	}

	cancel()

	select {
	case err := <-errCh:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("worker did not stop after cancellation")
	}

	select {
	case <-worker.Done():
	default:
		t.Error("Done must be closed once the loop exits")
	}
}

func TestWorkerSurvivesPublishFailure(t *testing.T) {
	flaky := &flakyBus{failures: 3}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := testGeneratorConfig()
	cfg.BatchSize = 1
	worker := NewWorker(flaky, NewContractSeeded(9), cfg)

	errCh := make(chan error, 1)
	go func() {
		errCh <- worker.Run(ctx)
	}()

	// The worker must keep retrying through transient failures and publish
	// successfully once the bus recovers.
	deadline := time.After(5 * time.Second)
	for flaky.published.Load() == 0 {
		select {
		case <-deadline:
			t.Fatal("worker never published after transient failures")
		case <-time.After(5 * time.Millisecond):
		}
	}

	cancel()
	select {
	case err := <-errCh:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("worker did not stop after cancellation")
	}
}

// flakyBus fails the first N publishes, then succeeds.
type flakyBus struct {
	failures  int32
	attempted atomic.Int32
	published atomic.Int32
}

func (b *flakyBus) Connect(ctx context.Context) error { return nil }

func (b *flakyBus) Publish(ctx context.Context, topic string, payload []byte) error {
	if b.attempted.Add(1) <= b.failures {
		return errors.New("transient publish failure")
	}
	b.published.Add(1)
	return nil
}

func (b *flakyBus) Subscribe(ctx context.Context, topic string, handler domain.MessageHandler) (domain.Subscription, error) {
	return nil, errors.New("not supported")
}

func (b *flakyBus) Ping(ctx context.Context) error { return nil }
func (b *flakyBus) Close() error                   { return nil }
