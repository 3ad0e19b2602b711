package domain

import "context"

// CRUDRepository is the generic persistence contract shared by all three
// entity kinds. Get and Update return a NotFoundError for a missing id;
// Delete returns (false, nil) instead so delete stays idempotent.
type CRUDRepository[T any] interface {
	// List returns every entity in the collection.
	List(ctx context.Context) ([]T, error)

	// Get returns the entity with the given id.
	Get(ctx context.Context, id string) (T, error)

	// Create persists the entity under a freshly assigned id and returns it.
	Create(ctx context.Context, entity T) (T, error)

	// Update replaces the entity stored under id, preserving the id.
	Update(ctx context.Context, id string, entity T) (T, error)

	// Delete removes the entity. It reports whether anything was removed.
	Delete(ctx context.Context, id string) (bool, error)
}

// Repository bundles the three entity collections behind one handle.
type Repository interface {
	Counterparties() CRUDRepository[*Counterparty]
	Properties() CRUDRepository[*Property]
	Requests() CRUDRepository[*Request]

	// Health check
	Ping(ctx context.Context) error

	// Lifecycle
	Close(ctx context.Context) error
}

// RepositoryConfig holds configuration for repository initialization.
type RepositoryConfig struct {
	// Driver is the storage driver: "memory" or "mongo"
	Driver string

	// MongoDB specific
	MongoURI      string
	MongoDatabase string

	// ConnectTimeout bounds the initial connection attempt, in seconds.
	ConnectTimeout int
}
