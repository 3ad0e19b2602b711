// Package service holds the domain services: CRUD over the three entity
// kinds, the request validation workflow, and the analytics read model.
package service

import (
	"github.com/opensource-realty/casa/internal/domain"
)

// Services bundles the domain services for wiring into the API layer and
// the ingest worker.
type Services struct {
	Counterparties *CounterpartyService
	Properties     *PropertyService
	Requests       *RequestService
	Analytics      *AnalyticsService
}

// New wires all services over one repository. The event bus may be nil,
// in which case request-created events are not published.
func New(repo domain.Repository, eventBus domain.EventBus) *Services {
	return &Services{
		Counterparties: NewCounterpartyService(repo),
		Properties:     NewPropertyService(repo),
		Requests:       NewRequestService(repo, eventBus),
		Analytics:      NewAnalyticsService(repo),
	}
}
