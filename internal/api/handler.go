package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/opensource-realty/casa/internal/domain"
	"github.com/opensource-realty/casa/internal/service"
)

// Handler holds dependencies for API handlers.
type Handler struct {
	services *service.Services
	repo     domain.Repository
	bus      domain.EventBus
	version  string
}

// NewHandler creates a new API handler.
func NewHandler(services *service.Services, repo domain.Repository, bus domain.EventBus, version string) *Handler {
	return &Handler{
		services: services,
		repo:     repo,
		bus:      bus,
		version:  version,
	}
}

// mountCRUD wires the five standard CRUD routes for one entity kind onto a
// sub-router. Entity kinds with extra behavior (requests) get hand-written
// handlers instead.
func mountCRUD[T any, In service.EntityPayload[T]](r chi.Router, svc *service.CRUD[T, In]) {
	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		items, err := svc.List(req.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		if items == nil {
			items = []T{}
		}
		writeJSON(w, http.StatusOK, items)
	})

	r.Get("/{id}", func(w http.ResponseWriter, req *http.Request) {
		item, err := svc.Get(req.Context(), chi.URLParam(req, "id"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, item)
	})

	r.Post("/", func(w http.ResponseWriter, req *http.Request) {
		var in In
		if err := json.NewDecoder(req.Body).Decode(&in); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{
				"error": "invalid JSON request body",
			})
			return
		}
		created, err := svc.Create(req.Context(), in)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	})

	r.Put("/{id}", func(w http.ResponseWriter, req *http.Request) {
		var in In
		if err := json.NewDecoder(req.Body).Decode(&in); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{
				"error": "invalid JSON request body",
			})
			return
		}
		updated, err := svc.Update(req.Context(), chi.URLParam(req, "id"), in)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, updated)
	})

	r.Delete("/{id}", func(w http.ResponseWriter, req *http.Request) {
		id := chi.URLParam(req, "id")
		deleted, err := svc.Delete(req.Context(), id)
		if err != nil {
			writeError(w, err)
			return
		}
		if !deleted {
			writeError(w, domain.NewNotFound(svc.Entity(), id))
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})
}

// ============================================================================
// REQUEST HANDLERS
// ============================================================================

// ListRequests returns all requests with references attached.
func (h *Handler) ListRequests(w http.ResponseWriter, r *http.Request) {
	requests, err := h.services.Requests.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if requests == nil {
		requests = []*domain.Request{}
	}
	writeJSON(w, http.StatusOK, requests)
}

// GetRequest returns one request by id.
func (h *Handler) GetRequest(w http.ResponseWriter, r *http.Request) {
	request, err := h.services.Requests.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, request)
}

// CreateRequest creates a request. A missing referenced counterparty or
// property yields 404 with a message naming which reference failed.
func (h *Handler) CreateRequest(w http.ResponseWriter, r *http.Request) {
	var in domain.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": "invalid JSON request body",
		})
		return
	}

	created, err := h.services.Requests.Create(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// UpdateRequest replaces a request's mutable fields with the same
// referential checks as create.
func (h *Handler) UpdateRequest(w http.ResponseWriter, r *http.Request) {
	var in domain.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": "invalid JSON request body",
		})
		return
	}

	updated, err := h.services.Requests.Update(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// DeleteRequest deletes a request.
func (h *Handler) DeleteRequest(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	deleted, err := h.services.Requests.Delete(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	if !deleted {
		writeError(w, domain.NewNotFound(domain.EntityRequest, id))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ============================================================================
// ANALYTICS HANDLERS
// ============================================================================

// SellersInPeriod handles GET /analytics/sellers?startDate=&endDate=.
func (h *Handler) SellersInPeriod(w http.ResponseWriter, r *http.Request) {
	start, err := parseDate(r.URL.Query().Get("startDate"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": "startDate must be an RFC 3339 timestamp or YYYY-MM-DD date",
		})
		return
	}
	end, err := parseDate(r.URL.Query().Get("endDate"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": "endDate must be an RFC 3339 timestamp or YYYY-MM-DD date",
		})
		return
	}

	sellers, err := h.services.Analytics.SellersInPeriod(r.Context(), start, end)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sellers)
}

// TopClients handles GET /analytics/top-clients.
func (h *Handler) TopClients(w http.ResponseWriter, r *http.Request) {
	result, err := h.services.Analytics.TopClients(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// PropertyTypeStatistics handles GET /analytics/property-type-statistics.
func (h *Handler) PropertyTypeStatistics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.services.Analytics.PropertyTypeStatistics(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// MinAmountClients handles GET /analytics/min-amount-clients.
func (h *Handler) MinAmountClients(w http.ResponseWriter, r *http.Request) {
	result, err := h.services.Analytics.MinAmountClients(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// ClientsByPropertyType handles GET /analytics/clients-by-property-type?propertyType=.
func (h *Handler) ClientsByPropertyType(w http.ResponseWriter, r *http.Request) {
	target, err := domain.ParsePropertyType(r.URL.Query().Get("propertyType"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": err.Error(),
		})
		return
	}

	clients, err := h.services.Analytics.ClientsByPropertyType(r.Context(), target)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, clients)
}

// ============================================================================
// HEALTH HANDLERS
// ============================================================================

// Health returns overall service health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	status := "healthy"

	// Check repository health
	if h.repo != nil {
		if err := h.repo.Ping(r.Context()); err != nil {
			status = "degraded"
		}
	}

	// Check event bus health
	if h.bus != nil {
		if err := h.bus.Ping(r.Context()); err != nil {
			status = "degraded"
		}
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"status":  status,
		"version": h.version,
	})
}

// Ready returns whether the server is ready to accept traffic.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"ready": "true",
	})
}

// parseDate accepts an RFC 3339 timestamp or a date-only value.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError maps a service error onto the status-code contract: not-found
// and failed referential checks are 404, validation 400, an empty request
// collection on the min-amount query 409, anything else a logged 500.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case domain.IsNotFound(err):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	case domain.IsValidation(err):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, domain.ErrNoRequests):
		writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
	default:
		slog.Error("request failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error": "internal server error",
		})
	}
}
