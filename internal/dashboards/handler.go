package dashboards

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/propertymasters/propertymasters/internal/identity"
	"github.com/propertymasters/propertymasters/internal/platform/httpx"
)

// Handler wires HTTP endpoints for role-specific dashboards.
type Handler struct {
	logger  *slog.Logger
	service *Service
	gate    identity.Middleware
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service, gate identity.Middleware) *Handler {
	return &Handler{logger: logger, service: service, gate: gate}
}

// MountRoutes registers dashboard routes. Each dashboard names its allowed
// roles in full; none inherits access from another.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.gate.Require(identity.RoleSuperAdmin))
		r.Get("/dashboards/super-admin", h.platform)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.gate.Require(identity.RoleAdmin, identity.RoleSuperAdmin))
		r.Get("/dashboards/admin", h.platform)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.gate.Require(identity.RolePropertyManager))
		r.Get("/dashboards/property-manager", h.manager)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.gate.Require(identity.RoleContractor))
		r.Get("/dashboards/contractor", h.contractor)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.gate.Require(identity.RoleSeller, identity.RoleAdmin))
		r.Get("/dashboards/seller", h.seller)
	})
}

func (h *Handler) platform(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.Platform(r.Context())
	if err != nil {
		h.logger.Error("platform dashboard", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, summary)
}

func (h *Handler) manager(w http.ResponseWriter, r *http.Request) {
	caller := identity.FromContext(r.Context())
	summary, err := h.service.Manager(r.Context(), caller.ID)
	if err != nil {
		h.logger.Error("manager dashboard", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, summary)
}

func (h *Handler) contractor(w http.ResponseWriter, r *http.Request) {
	caller := identity.FromContext(r.Context())
	summary, err := h.service.Contractor(r.Context(), caller.ID)
	if err != nil {
		h.logger.Error("contractor dashboard", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, summary)
}

func (h *Handler) seller(w http.ResponseWriter, r *http.Request) {
	caller := identity.FromContext(r.Context())
	summary, err := h.service.Seller(r.Context(), caller.ID)
	if err != nil {
		h.logger.Error("seller dashboard", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, summary)
}
