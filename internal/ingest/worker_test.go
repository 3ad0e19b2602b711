package ingest

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/opensource-realty/casa/internal/bus"
	"github.com/opensource-realty/casa/internal/domain"
	"github.com/opensource-realty/casa/internal/repository"
	"github.com/opensource-realty/casa/internal/service"
)

func TestWorkerStoresPublishedEntities(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	repo := repository.NewMemory()
	eventBus := bus.NewChannelBus(100)
	defer eventBus.Close()

	worker := NewWorker(eventBus, service.New(repo, nil))
	if err := worker.Start(ctx); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	defer worker.Stop()

	counterparty, _ := json.Marshal(domain.CreateCounterparty{
		FullName:       "Иванов Иван Иванович",
		PassportNumber: "4501 123456",
		PhoneNumber:    "+7-999-111-22-33",
	})
	if err := eventBus.Publish(ctx, domain.TopicCounterpartyCreated, counterparty); err != nil {
		t.Fatalf("publish failed: %v", err)
	}

	property, _ := json.Marshal(domain.CreateProperty{
		Type:            domain.PropertyApartment,
		Purpose:         domain.PurposeResidential,
		CadastralNumber: "77:01:0001001:101",
		Address:         "ул. Тверская, 15, кв. 34",
		TotalArea:       75.5,
	})
	if err := eventBus.Publish(ctx, domain.TopicPropertyCreated, property); err != nil {
		t.Fatalf("publish failed: %v", err)
	}

	waitFor(t, func() bool {
		counterparties, _ := repo.Counterparties().List(ctx)
		properties, _ := repo.Properties().List(ctx)
		return len(counterparties) == 1 && len(properties) == 1
	})

	counterparties, _ := repo.Counterparties().List(ctx)
	if counterparties[0].FullName != "Иванов Иван Иванович" {
		t.Errorf("unexpected counterparty: %+v", counterparties[0])
	}
	if counterparties[0].ID == "" {
		t.Error("expected the store to assign an id")
	}

	properties, _ := repo.Properties().List(ctx)
	if properties[0].Type != domain.PropertyApartment {
		t.Errorf("unexpected property: %+v", properties[0])
	}
}

func TestWorkerAcceptsAnyFieldCase(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	repo := repository.NewMemory()
	eventBus := bus.NewChannelBus(100)
	defer eventBus.Close()

	worker := NewWorker(eventBus, service.New(repo, nil))
	if err := worker.Start(ctx); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	defer worker.Stop()

	// Producers in other dialects capitalize field names; decode matches
	// case-insensitively.
	payload := []byte(`{"FullName":"Петрова Анна Сергеевна","PassportNumber":"4501 123457","PhoneNumber":"+7-999-111-22-34"}`)
	if err := eventBus.Publish(ctx, domain.TopicCounterpartyCreated, payload); err != nil {
		t.Fatalf("publish failed: %v", err)
	}

	waitFor(t, func() bool {
		counterparties, _ := repo.Counterparties().List(ctx)
		return len(counterparties) == 1
	})

	counterparties, _ := repo.Counterparties().List(ctx)
	if counterparties[0].FullName != "Петрова Анна Сергеевна" {
		t.Errorf("unexpected counterparty: %+v", counterparties[0])
	}
}

func TestWorkerDropsInvalidPayloads(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	repo := repository.NewMemory()
	eventBus := bus.NewChannelBus(100)
	defer eventBus.Close()

	worker := NewWorker(eventBus, service.New(repo, nil))
	if err := worker.Start(ctx); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	defer worker.Stop()

	eventBus.Publish(ctx, domain.TopicCounterpartyCreated, []byte("not-json"))
	eventBus.Publish(ctx, domain.TopicCounterpartyCreated, []byte(`{"fullName":""}`))

	good, _ := json.Marshal(domain.CreateCounterparty{
		FullName:       "Сидоров Алексей Петрович",
		PassportNumber: "4501 123458",
		PhoneNumber:    "+7-999-111-22-35",
	})
	eventBus.Publish(ctx, domain.TopicCounterpartyCreated, good)

	waitFor(t, func() bool {
		counterparties, _ := repo.Counterparties().List(ctx)
		return len(counterparties) == 1
	})

	counterparties, _ := repo.Counterparties().List(ctx)
	if len(counterparties) != 1 {
		t.Fatalf("expected only the valid payload stored, got %d", len(counterparties))
	}
	if counterparties[0].FullName != "Сидоров Алексей Петрович" {
		t.Errorf("unexpected counterparty: %+v", counterparties[0])
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.After(5 * time.Second)
	for !cond() {
		select {
		case <-deadline:
			t.Fatal("condition not met before timeout")
		case <-time.After(5 * time.Millisecond):
		}
	}
}
