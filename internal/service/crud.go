package service

import (
	"context"
	"log/slog"

	"github.com/opensource-realty/casa/internal/domain"
)

// EntityPayload is a create/update payload that can validate itself and
// produce the entity it describes.
type EntityPayload[T any] interface {
	Validate() error
	Entity() T
}

// CRUD is the generic service core shared by the counterparty and property
// services. Entity-specific behavior (the request service's referential
// checks) lives in an override layer, not here.
type CRUD[T any, In EntityPayload[T]] struct {
	entity string
	repo   domain.CRUDRepository[T]
}

// Entity returns the entity kind name used in errors and logs.
func (s *CRUD[T, In]) Entity() string {
	return s.entity
}

// List returns every stored entity.
func (s *CRUD[T, In]) List(ctx context.Context) ([]T, error) {
	return s.repo.List(ctx)
}

// Get returns one entity by id.
func (s *CRUD[T, In]) Get(ctx context.Context, id string) (T, error) {
	return s.repo.Get(ctx, id)
}

// Create validates the payload and persists a new entity.
func (s *CRUD[T, In]) Create(ctx context.Context, in In) (T, error) {
	var zero T
	if err := in.Validate(); err != nil {
		return zero, err
	}

	created, err := s.repo.Create(ctx, in.Entity())
	if err != nil {
		return zero, err
	}

	slog.Info("entity created", "entity", s.entity)
	return created, nil
}

// Update validates the payload and replaces the entity's mutable fields.
// A missing id is a not-found, never an upsert.
func (s *CRUD[T, In]) Update(ctx context.Context, id string, in In) (T, error) {
	var zero T
	if err := in.Validate(); err != nil {
		return zero, err
	}

	updated, err := s.repo.Update(ctx, id, in.Entity())
	if err != nil {
		return zero, err
	}

	slog.Info("entity updated", "entity", s.entity, "id", id)
	return updated, nil
}

// Delete removes the entity. Deleting a missing id reports false, not an
// error, so repeated deletes are idempotent.
func (s *CRUD[T, In]) Delete(ctx context.Context, id string) (bool, error) {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	if deleted {
		slog.Info("entity deleted", "entity", s.entity, "id", id)
	}
	return deleted, nil
}

// CounterpartyService manages counterparties. Pure CRUD pass-through.
type CounterpartyService struct {
	*CRUD[*domain.Counterparty, domain.CreateCounterparty]
}

// NewCounterpartyService creates a counterparty service.
func NewCounterpartyService(repo domain.Repository) *CounterpartyService {
	return &CounterpartyService{
		CRUD: &CRUD[*domain.Counterparty, domain.CreateCounterparty]{
			entity: domain.EntityCounterparty,
			repo:   repo.Counterparties(),
		},
	}
}

// PropertyService manages properties. Pure CRUD pass-through.
type PropertyService struct {
	*CRUD[*domain.Property, domain.CreateProperty]
}

// NewPropertyService creates a property service.
func NewPropertyService(repo domain.Repository) *PropertyService {
	return &PropertyService{
		CRUD: &CRUD[*domain.Property, domain.CreateProperty]{
			entity: domain.EntityProperty,
			repo:   repo.Properties(),
		},
	}
}
