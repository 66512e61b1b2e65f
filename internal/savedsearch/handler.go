package savedsearch

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/propertymasters/propertymasters/internal/identity"
	"github.com/propertymasters/propertymasters/internal/platform/httpx"
)

// Handler wires HTTP endpoints for saved searches.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	gate      identity.Middleware
	validator *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service, gate identity.Middleware) *Handler {
	return &Handler{logger: logger, service: service, gate: gate, validator: validator.New()}
}

// MountRoutes registers saved-search routes. Any authenticated user may
// manage their own searches.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.gate.RequireAuth())
		r.Post("/saved-searches", h.create)
		r.Get("/saved-searches", h.listOwn)
		r.Delete("/saved-searches/{id}", h.delete)
	})
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req CreateSavedSearchRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	caller := identity.FromContext(r.Context())
	search, err := h.service.Create(r.Context(), req, caller.ID)
	if err != nil {
		h.logger.Error("create saved search", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, search)
}

func (h *Handler) listOwn(w http.ResponseWriter, r *http.Request) {
	caller := identity.FromContext(r.Context())
	result, err := h.service.ListOwn(r.Context(), caller.ID)
	if err != nil {
		h.logger.Error("list saved searches", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"saved_searches": result})
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	caller := identity.FromContext(r.Context())
	err := h.service.Delete(r.Context(), chi.URLParam(r, "id"), caller)
	if err != nil {
		if errors.Is(err, identity.ErrForbidden) {
			httpx.Problem(w, http.StatusForbidden, "Forbidden", identity.ErrForbidden.Error())
			return
		}
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
