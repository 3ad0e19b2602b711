package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/opensource-realty/casa/internal/domain"
)

// topClientsLimit caps each of the two rankings.
const topClientsLimit = 5

// AnalyticsService answers the five read-only queries. Every call reads the
// entire request collection freshly and joins it in memory against the
// counterparty and property collections; there is no caching or incremental
// maintenance. Each query works off one snapshot of the collections, so its
// own result set is internally consistent even when writes race it.
type AnalyticsService struct {
	repo domain.Repository
}

// NewAnalyticsService creates an analytics service.
func NewAnalyticsService(repo domain.Repository) *AnalyticsService {
	return &AnalyticsService{repo: repo}
}

// analyticsView is one consistent snapshot of the three collections.
type analyticsView struct {
	requests       []*domain.Request
	counterparties map[string]*domain.Counterparty
	properties     map[string]*domain.Property
}

func (s *AnalyticsService) snapshot(ctx context.Context) (*analyticsView, error) {
	requests, err := s.repo.Requests().List(ctx)
	if err != nil {
		return nil, err
	}

	counterparties, err := s.repo.Counterparties().List(ctx)
	if err != nil {
		return nil, err
	}

	properties, err := s.repo.Properties().List(ctx)
	if err != nil {
		return nil, err
	}

	view := &analyticsView{
		requests:       requests,
		counterparties: make(map[string]*domain.Counterparty, len(counterparties)),
		properties:     make(map[string]*domain.Property, len(properties)),
	}
	for _, c := range counterparties {
		view.counterparties[c.ID] = c
	}
	for _, p := range properties {
		view.properties[p.ID] = p
	}
	return view, nil
}

// clientName resolves the request's counterparty name: live lookup first,
// stored snapshot when the counterparty has been deleted.
func (v *analyticsView) clientName(r *domain.Request) (string, bool) {
	if c, ok := v.counterparties[r.CounterpartyID]; ok {
		return c.FullName, true
	}
	if r.Counterparty != nil {
		return r.Counterparty.FullName, true
	}
	return "", false
}

// propertyType resolves the request's property type the same way.
func (v *analyticsView) propertyType(r *domain.Request) (domain.PropertyType, bool) {
	if p, ok := v.properties[r.PropertyID]; ok {
		return p.Type, true
	}
	if r.Property != nil {
		return r.Property.Type, true
	}
	return "", false
}

// SellersInPeriod lists the distinct full names of counterparties holding a
// Sale request dated within [start, end], both bounds inclusive, sorted
// ascending. Grouping is by name: two counterparties sharing a full name
// collapse into one entry.
func (s *AnalyticsService) SellersInPeriod(ctx context.Context, start, end time.Time) ([]string, error) {
	view, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, r := range view.requests {
		if r.Type != domain.RequestSale {
			continue
		}
		if r.Date.Before(start) || r.Date.After(end) {
			continue
		}
		if name, ok := view.clientName(r); ok {
			names = append(names, name)
		}
	}
	return sortedUnique(names), nil
}

// TopClients returns the top-5 counterparties by request count, computed
// twice independently: once over Purchase requests, once over Sale requests.
// Groups are keyed by counterparty id; ties on count break ascending by full
// name so the order is a deterministic total order.
func (s *AnalyticsService) TopClients(ctx context.Context) (*domain.TopClientsResult, error) {
	view, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	return &domain.TopClientsResult{
		TopPurchaseClients: view.topClientsByType(domain.RequestPurchase),
		TopSaleClients:     view.topClientsByType(domain.RequestSale),
	}, nil
}

func (v *analyticsView) topClientsByType(t domain.RequestType) []domain.TopClient {
	counts := make(map[string]int)
	names := make(map[string]string)
	for _, r := range v.requests {
		if r.Type != t {
			continue
		}
		name, ok := v.clientName(r)
		if !ok {
			continue
		}
		counts[r.CounterpartyID]++
		names[r.CounterpartyID] = name
	}

	clients := make([]domain.TopClient, 0, len(counts))
	for id, count := range counts {
		clients = append(clients, domain.TopClient{
			FullName:     names[id],
			RequestCount: count,
		})
	}

	sort.Slice(clients, func(i, j int) bool {
		if clients[i].RequestCount != clients[j].RequestCount {
			return clients[i].RequestCount > clients[j].RequestCount
		}
		return clients[i].FullName < clients[j].FullName
	})

	if len(clients) > topClientsLimit {
		clients = clients[:topClientsLimit]
	}
	return clients
}

// PropertyTypeStatistics counts requests per referenced property type,
// ordered by the type's natural enumeration order. Types with zero requests
// are omitted.
func (s *AnalyticsService) PropertyTypeStatistics(ctx context.Context) ([]domain.PropertyTypeCount, error) {
	view, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	counts := make(map[domain.PropertyType]int)
	for _, r := range view.requests {
		if t, ok := view.propertyType(r); ok {
			counts[t]++
		}
	}

	stats := make([]domain.PropertyTypeCount, 0, len(counts))
	for _, t := range domain.PropertyTypes {
		if count, ok := counts[t]; ok {
			stats = append(stats, domain.PropertyTypeCount{
				PropertyType: t,
				RequestCount: count,
			})
		}
	}
	return stats, nil
}

// MinAmountClients finds the single minimum request amount and names every
// counterparty holding a request at exactly that amount: deduplicated by
// name, sorted ascending, comma-joined. An empty request collection has no
// minimum and reports domain.ErrNoRequests.
func (s *AnalyticsService) MinAmountClients(ctx context.Context) (*domain.MinAmountClients, error) {
	view, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	if len(view.requests) == 0 {
		return nil, domain.ErrNoRequests
	}

	minAmount := view.requests[0].Amount
	for _, r := range view.requests[1:] {
		if r.Amount.LessThan(minAmount) {
			minAmount = r.Amount
		}
	}

	var names []string
	for _, r := range view.requests {
		if !r.Amount.Equal(minAmount) {
			continue
		}
		if name, ok := view.clientName(r); ok {
			names = append(names, name)
		}
	}

	return &domain.MinAmountClients{
		FullName:  strings.Join(sortedUnique(names), ", "),
		MinAmount: minAmount,
	}, nil
}

// ClientsByPropertyType lists the distinct full names of counterparties with
// a Purchase request for a property of the target type, sorted ascending.
func (s *AnalyticsService) ClientsByPropertyType(ctx context.Context, target domain.PropertyType) ([]string, error) {
	view, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, r := range view.requests {
		if r.Type != domain.RequestPurchase {
			continue
		}
		if t, ok := view.propertyType(r); !ok || t != target {
			continue
		}
		if name, ok := view.clientName(r); ok {
			names = append(names, name)
		}
	}
	return sortedUnique(names), nil
}

// sortedUnique deduplicates and sorts names ascending. Always returns a
// non-nil slice so empty results serialize as [].
func sortedUnique(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
