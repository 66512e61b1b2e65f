package invoices

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/propertymasters/propertymasters/internal/identity"
	"github.com/propertymasters/propertymasters/internal/platform/httpx"
)

// Handler wires HTTP endpoints for invoices.
type Handler struct {
	logger  *slog.Logger
	service *Service
	gate    identity.Middleware
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service, gate identity.Middleware) *Handler {
	return &Handler{logger: logger, service: service, gate: gate}
}

// MountRoutes registers invoice routes for the billing-facing roles.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.gate.Require(identity.RoleLandlord, identity.RoleAgent, identity.RoleAdmin))
		r.Get("/invoices", h.list)
		r.Get("/invoices/{id}", h.show)
	})
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	caller := identity.FromContext(r.Context())
	result, err := h.service.List(r.Context(), caller)
	if err != nil {
		h.logger.Error("list invoices", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"invoices": result})
}

func (h *Handler) show(w http.ResponseWriter, r *http.Request) {
	caller := identity.FromContext(r.Context())
	inv, err := h.service.Get(r.Context(), chi.URLParam(r, "id"), caller)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, inv)
}
