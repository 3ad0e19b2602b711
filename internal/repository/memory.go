package repository

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/opensource-realty/casa/internal/domain"
)

// Memory implements domain.Repository with mutex-guarded in-process maps.
// It backs tests and the default dev configuration.
type Memory struct {
	counterparties *memoryCollection[*domain.Counterparty]
	properties     *memoryCollection[*domain.Property]
	requests       *memoryCollection[*domain.Request]
}

// NewMemory creates an empty in-memory repository.
func NewMemory() *Memory {
	return &Memory{
		counterparties: newMemoryCollection(
			domain.EntityCounterparty,
			(*domain.Counterparty).Clone,
			func(c *domain.Counterparty) string { return c.ID },
			func(c *domain.Counterparty, id string) { c.ID = id },
		),
		properties: newMemoryCollection(
			domain.EntityProperty,
			(*domain.Property).Clone,
			func(p *domain.Property) string { return p.ID },
			func(p *domain.Property, id string) { p.ID = id },
		),
		requests: newMemoryCollection(
			domain.EntityRequest,
			(*domain.Request).Clone,
			func(r *domain.Request) string { return r.ID },
			func(r *domain.Request, id string) { r.ID = id },
		),
	}
}

func (m *Memory) Counterparties() domain.CRUDRepository[*domain.Counterparty] {
	return m.counterparties
}

func (m *Memory) Properties() domain.CRUDRepository[*domain.Property] {
	return m.properties
}

func (m *Memory) Requests() domain.CRUDRepository[*domain.Request] {
	return m.requests
}

// Ping always succeeds for the in-memory driver.
func (m *Memory) Ping(ctx context.Context) error { return nil }

// Close is a no-op for the in-memory driver.
func (m *Memory) Close(ctx context.Context) error { return nil }

// memoryCollection is one mutex-guarded entity collection. Entities are
// cloned on the way in and out so callers never share storage memory.
// List returns entities in insertion order for deterministic reads.
type memoryCollection[T any] struct {
	mu     sync.RWMutex
	entity string
	items  map[string]T
	order  []string
	clone  func(T) T
	getID  func(T) string
	setID  func(T, string)
}

func newMemoryCollection[T any](entity string, clone func(T) T, getID func(T) string, setID func(T, string)) *memoryCollection[T] {
	return &memoryCollection[T]{
		entity: entity,
		items:  make(map[string]T),
		clone:  clone,
		getID:  getID,
		setID:  setID,
	}
}

func (c *memoryCollection[T]) List(ctx context.Context) ([]T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]T, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.clone(c.items[id]))
	}
	return out, nil
}

func (c *memoryCollection[T]) Get(ctx context.Context, id string) (T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	item, ok := c.items[id]
	if !ok {
		var zero T
		return zero, domain.NewNotFound(c.entity, id)
	}
	return c.clone(item), nil
}

func (c *memoryCollection[T]) Create(ctx context.Context, entity T) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	stored := c.clone(entity)
	id := c.getID(stored)
	if id == "" {
		id = uuid.New().String()
		c.setID(stored, id)
	}
	if _, exists := c.items[id]; !exists {
		c.order = append(c.order, id)
	}
	c.items[id] = stored
	return c.clone(stored), nil
}

func (c *memoryCollection[T]) Update(ctx context.Context, id string, entity T) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.items[id]; !ok {
		var zero T
		return zero, domain.NewNotFound(c.entity, id)
	}

	stored := c.clone(entity)
	c.setID(stored, id)
	c.items[id] = stored
	return c.clone(stored), nil
}

func (c *memoryCollection[T]) Delete(ctx context.Context, id string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.items[id]; !ok {
		return false, nil
	}
	delete(c.items, id)
	for i, stored := range c.order {
		if stored == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return true, nil
}
