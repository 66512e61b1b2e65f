package bookings

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/propertymasters/propertymasters/internal/identity"
	"github.com/propertymasters/propertymasters/internal/platform/httpx"
)

// Handler wires HTTP endpoints for viewing bookings.
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

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	caller := identity.FromContext(r.Context())
	booking, err := h.service.Create(r.Context(), req, caller.ID)
	if err != nil {
		h.logger.Error("create booking", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, booking)
}

func (h *Handler) listOwn(w http.ResponseWriter, r *http.Request) {
	caller := identity.FromContext(r.Context())
	result, err := h.service.ListOwn(r.Context(), caller.ID)
	if err != nil {
		h.logger.Error("list bookings", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"bookings": result})
}

func (h *Handler) cancel(w http.ResponseWriter, r *http.Request) {
	caller := identity.FromContext(r.Context())
	err := h.service.Cancel(r.Context(), chi.URLParam(r, "id"), caller)
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

func (h *Handler) confirm(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Confirm(r.Context(), chi.URLParam(r, "id")); err != nil {
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
