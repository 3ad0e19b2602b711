package service

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/opensource-realty/casa/internal/domain"
)

// RequestService manages requests and enforces referential integrity: on
// create and update, both referenced entities must exist, counterparty
// checked before property so the error names whichever reference failed
// first. Reads re-attach the referenced entities by live lookup, falling
// back to the snapshot stored at write time when a reference has since
// been deleted.
type RequestService struct {
	repo     domain.Repository
	eventBus domain.EventBus
}

// NewRequestService creates a request service. The event bus may be nil.
func NewRequestService(repo domain.Repository, eventBus domain.EventBus) *RequestService {
	return &RequestService{repo: repo, eventBus: eventBus}
}

// List returns every request with references re-attached.
func (s *RequestService) List(ctx context.Context) ([]*domain.Request, error) {
	requests, err := s.repo.Requests().List(ctx)
	if err != nil {
		return nil, err
	}
	for _, r := range requests {
		if err := s.attach(ctx, r); err != nil {
			return nil, err
		}
	}
	return requests, nil
}

// Get returns one request by id with references re-attached.
func (s *RequestService) Get(ctx context.Context, id string) (*domain.Request, error) {
	r, err := s.repo.Requests().Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.attach(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

// Create validates the payload, checks both references exist, and persists
// the request with fresh snapshots of the looked-up entities.
func (s *RequestService) Create(ctx context.Context, in domain.CreateRequest) (*domain.Request, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	counterparty, property, err := s.resolveReferences(ctx, in)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.Requests().Create(ctx, &domain.Request{
		CounterpartyID: in.CounterpartyID,
		PropertyID:     in.PropertyID,
		Counterparty:   counterparty,
		Property:       property,
		Type:           in.Type,
		Amount:         in.Amount,
		Date:           in.Date,
	})
	if err != nil {
		return nil, err
	}

	slog.Info("request created",
		"id", created.ID,
		"type", created.Type,
		"counterparty_id", created.CounterpartyID,
		"property_id", created.PropertyID,
	)

	s.publishCreated(ctx, in)
	return created, nil
}

// Update re-validates both references and replaces all mutable fields.
// The id is preserved.
func (s *RequestService) Update(ctx context.Context, id string, in domain.CreateRequest) (*domain.Request, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.repo.Requests().Get(ctx, id); err != nil {
		return nil, err
	}

	counterparty, property, err := s.resolveReferences(ctx, in)
	if err != nil {
		return nil, err
	}

	updated, err := s.repo.Requests().Update(ctx, id, &domain.Request{
		CounterpartyID: in.CounterpartyID,
		PropertyID:     in.PropertyID,
		Counterparty:   counterparty,
		Property:       property,
		Type:           in.Type,
		Amount:         in.Amount,
		Date:           in.Date,
	})
	if err != nil {
		return nil, err
	}

	slog.Info("request updated", "id", id)
	return updated, nil
}

// Delete removes the request. No referential cascade: requests referencing
// deleted entities are tolerated, and deleting a missing id reports false.
func (s *RequestService) Delete(ctx context.Context, id string) (bool, error) {
	deleted, err := s.repo.Requests().Delete(ctx, id)
	if err != nil {
		return false, err
	}
	if deleted {
		slog.Info("request deleted", "id", id)
	}
	return deleted, nil
}

// resolveReferences checks that both referenced entities exist, counterparty
// first. The returned entities become the stored snapshots.
func (s *RequestService) resolveReferences(ctx context.Context, in domain.CreateRequest) (*domain.Counterparty, *domain.Property, error) {
	counterparty, err := s.repo.Counterparties().Get(ctx, in.CounterpartyID)
	if err != nil {
		return nil, nil, err
	}

	property, err := s.repo.Properties().Get(ctx, in.PropertyID)
	if err != nil {
		return nil, nil, err
	}

	return counterparty, property, nil
}

// attach refreshes the denormalized references from live lookups. A deleted
// reference keeps whatever snapshot was stored; any other repository fault
// propagates.
func (s *RequestService) attach(ctx context.Context, r *domain.Request) error {
	counterparty, err := s.repo.Counterparties().Get(ctx, r.CounterpartyID)
	switch {
	case err == nil:
		r.Counterparty = counterparty
	case !domain.IsNotFound(err):
		return err
	}

	property, err := s.repo.Properties().Get(ctx, r.PropertyID)
	switch {
	case err == nil:
		r.Property = property
	case !domain.IsNotFound(err):
		return err
	}

	return nil
}

// publishCreated emits the create payload to the request topic, best
// effort: a publish failure is logged, never surfaced to the API caller.
func (s *RequestService) publishCreated(ctx context.Context, in domain.CreateRequest) {
	if s.eventBus == nil {
		return
	}

	payload, err := json.Marshal(in)
	if err != nil {
		slog.Error("failed to encode request event", "error", err)
		return
	}

	if err := s.eventBus.Publish(ctx, domain.TopicRequestCreated, payload); err != nil {
		slog.Error("failed to publish request event",
			"topic", domain.TopicRequestCreated,
			"error", err,
		)
	}
}
