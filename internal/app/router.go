package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/propertymasters/propertymasters/internal/auth"
	"github.com/propertymasters/propertymasters/internal/bookings"
	"github.com/propertymasters/propertymasters/internal/dashboards"
	"github.com/propertymasters/propertymasters/internal/identity"
	"github.com/propertymasters/propertymasters/internal/invoices"
	"github.com/propertymasters/propertymasters/internal/observability"
	"github.com/propertymasters/propertymasters/internal/properties"
	"github.com/propertymasters/propertymasters/internal/savedsearch"
	"github.com/propertymasters/propertymasters/internal/users"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger             *slog.Logger
	Config             *Config
	Identity           identity.Middleware
	AuthHandler        *auth.Handler
	UsersHandler       *users.Handler
	PropertiesHandler  *properties.Handler
	BookingsHandler    *bookings.Handler
	DashboardsHandler  *dashboards.Handler
	SavedSearchHandler *savedsearch.Handler
	InvoicesHandler    *invoices.Handler
	Metrics            *observability.Metrics
}

// NewRouter constructs the chi.Router with PropertyMasters defaults. Routes
// split into a public group (login, health, metrics) and a bearer-token
// protected group where each module declares its own role requirements.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:  params.Logger,
		Config:  params.Config,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	if params.Metrics != nil {
		r.Get("/metrics", params.Metrics.Handler().ServeHTTP)
	}

	r.Route("/api/v1", func(r chi.Router) {
		params.AuthHandler.MountPublicRoutes(r)

		r.Group(func(r chi.Router) {
			r.Use(params.Identity.Authenticate)

			params.AuthHandler.MountProtectedRoutes(r)
			params.UsersHandler.MountRoutes(r)
			params.PropertiesHandler.MountRoutes(r)
			params.BookingsHandler.MountRoutes(r)
			params.DashboardsHandler.MountRoutes(r)
			params.SavedSearchHandler.MountRoutes(r)
			params.InvoicesHandler.MountRoutes(r)
		})
	})

	return r
}
