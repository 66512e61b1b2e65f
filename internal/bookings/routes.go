package bookings

import (
	"github.com/go-chi/chi/v5"

	"github.com/propertymasters/propertymasters/internal/identity"
)

// MountRoutes registers booking routes. Creating a viewing is limited to
// the roles that attend viewings; confirmation stays with agents.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.gate.Require(identity.RoleBuyer, identity.RoleTenant, identity.RoleAgent))
		r.Post("/bookings", h.create)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.gate.RequireAuth())
		r.Get("/bookings", h.listOwn)
		r.Post("/bookings/{id}/cancel", h.cancel)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.gate.Require(identity.RoleAgent, identity.RoleAdmin))
		r.Post("/bookings/{id}/confirm", h.confirm)
	})
}
