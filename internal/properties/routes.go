package properties

import (
	"github.com/go-chi/chi/v5"

	"github.com/propertymasters/propertymasters/internal/identity"
)

// MountRoutes registers property routes. Reads are authenticated-only;
// writes require a listing role. super_admin is not implied by admin or
// vice versa: each operation lists its roles in full.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.gate.RequireAuth())
		r.Get("/properties", h.list)
		r.Get("/properties/{id}", h.show)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.gate.Require(identity.RoleAgent, identity.RoleLandlord, identity.RoleAdmin))
		r.Post("/properties", h.create)
		r.Patch("/properties/{id}", h.update)
	})
}
