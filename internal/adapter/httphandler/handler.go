package httphandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
	"github.com/niksmo/storefront/internal/core/service"
)

// GET  v1/storefront                          (200 OK)
// GET  v1/products?category=&search=&sort=    (200 OK, 400 Bad request)
// GET  v1/categories                          (200 OK)
// POST v1/commands JSON Command               (200 OK, 400 Bad request)
// GET  healthz                                (200 OK)

type StorefrontHandler struct {
	sf       port.Storefront
	currency string
}

// RegisterStorefront mounts the storefront routes on mux.
func RegisterStorefront(mux *http.ServeMux, sf port.Storefront, currency string) {
	h := StorefrontHandler{sf, currency}
	mux.HandleFunc("GET /v1/storefront", h.GetStorefront)
	mux.HandleFunc("GET /v1/products", h.GetProducts)
	mux.HandleFunc("GET /v1/categories", h.GetCategories)
	mux.HandleFunc("POST /v1/commands", h.PostCommand)
	mux.HandleFunc("GET /healthz", h.GetHealth)
}

func (h StorefrontHandler) GetStorefront(w http.ResponseWriter, r *http.Request) {
	const op = "StorefrontHandler.GetStorefront"
	writeJSON(w, http.StatusOK, viewFromDomain(h.sf.View(), h.currency), op)
}

func (h StorefrontHandler) GetProducts(w http.ResponseWriter, r *http.Request) {
	const op = "StorefrontHandler.GetProducts"

	q := r.URL.Query()
	c := domain.FilterCriteria{
		Category: domain.NormalizeCategory(q.Get("category")),
		Search:   q.Get("search"),
		Sort:     domain.SortFeatured,
	}
	if s := q.Get("sort"); s != "" {
		order, err := domain.ParseSortOrder(s)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, Error{err.Error()}, op)
			return
		}
		c.Sort = order
	}

	ps := h.sf.Browse(c)
	writeJSON(w, http.StatusOK, productsFromDomain(ps, h.currency), op)
}

func (h StorefrontHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	const op = "StorefrontHandler.GetCategories"
	writeJSON(w, http.StatusOK, categoriesFromDomain(h.sf.Categories()), op)
}

func (h StorefrontHandler) PostCommand(w http.ResponseWriter, r *http.Request) {
	const op = "StorefrontHandler.PostCommand"
	log := slog.With("op", op)

	var cmd Command
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		writeJSON(w, http.StatusBadRequest, Error{"invalid JSON data"}, op)
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	v, err := h.sf.Dispatch(r.Context(), cmd.toDomain())
	if err != nil {
		if isRejected(err) {
			writeJSON(w, http.StatusBadRequest, Error{err.Error()}, op)
			log.Warn("command rejected", "type", cmd.Type, "err", err)
			return
		}
		writeJSON(w, http.StatusServiceUnavailable, Error{"storefront unavailable"}, op)
		log.Error("failed to dispatch command", "type", cmd.Type, "err", err)
		return
	}

	writeJSON(w, http.StatusOK, viewFromDomain(v, h.currency), op)
	log.Debug("command applied", "type", cmd.Type)
}

func (h StorefrontHandler) GetHealth(w http.ResponseWriter, r *http.Request) {
	const op = "StorefrontHandler.GetHealth"
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"}, op)
}

func isRejected(err error) bool {
	return errors.Is(err, service.ErrUnknownCommand) ||
		errors.Is(err, service.ErrProductIDRequired) ||
		errors.Is(err, domain.ErrInvalidSort)
}

func writeJSON(w http.ResponseWriter, status int, v any, op string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.With("op", op).Error("failed to write response body", "err", err)
	}
}
