package seed

import (
	"context"
	"testing"

	"github.com/opensource-realty/casa/internal/domain"
	"github.com/opensource-realty/casa/internal/repository"
)

func TestApply(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemory()

	if err := Apply(ctx, repo); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	counterparties, _ := repo.Counterparties().List(ctx)
	if len(counterparties) != 12 {
		t.Errorf("expected 12 counterparties, got %d", len(counterparties))
	}
	properties, _ := repo.Properties().List(ctx)
	if len(properties) != 13 {
		t.Errorf("expected 13 properties, got %d", len(properties))
	}
	requests, _ := repo.Requests().List(ctx)
	if len(requests) != 15 {
		t.Errorf("expected 15 requests, got %d", len(requests))
	}
}

func TestApplySkipsNonEmptyStore(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemory()

	if _, err := repo.Counterparties().Create(ctx, &domain.Counterparty{
		FullName:       "Существующий Клиент Тестович",
		PassportNumber: "0000 000000",
		PhoneNumber:    "+7-000-000-00-00",
	}); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := Apply(ctx, repo); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	counterparties, _ := repo.Counterparties().List(ctx)
	if len(counterparties) != 1 {
		t.Errorf("expected the seed to be skipped, got %d counterparties", len(counterparties))
	}
	requests, _ := repo.Requests().List(ctx)
	if len(requests) != 0 {
		t.Errorf("expected no seeded requests, got %d", len(requests))
	}
}

func TestFixtureReferentialConsistency(t *testing.T) {
	counterparties := make(map[string]bool)
	for _, c := range Counterparties() {
		counterparties[c.ID] = true
	}
	properties := make(map[string]bool)
	for _, p := range Properties() {
		properties[p.ID] = true
	}

	for _, r := range Requests() {
		if !counterparties[r.CounterpartyID] {
			t.Errorf("request %s references unknown counterparty %s", r.ID, r.CounterpartyID)
		}
		if !properties[r.PropertyID] {
			t.Errorf("request %s references unknown property %s", r.ID, r.PropertyID)
		}
		if r.Counterparty == nil || r.Counterparty.ID != r.CounterpartyID {
			t.Errorf("request %s snapshot does not match its counterparty id", r.ID)
		}
		if r.Property == nil || r.Property.ID != r.PropertyID {
			t.Errorf("request %s snapshot does not match its property id", r.ID)
		}
		if !r.Amount.IsPositive() {
			t.Errorf("request %s has non-positive amount", r.ID)
		}
	}
}
