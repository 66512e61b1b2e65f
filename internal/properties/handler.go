package properties

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/propertymasters/propertymasters/internal/identity"
	"github.com/propertymasters/propertymasters/internal/platform/httpx"
	"github.com/propertymasters/propertymasters/internal/shared"
)

// Handler wires HTTP endpoints for property listings.
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

type listResponse struct {
	Properties []Property        `json:"properties"`
	Pagination shared.Pagination `json:"pagination"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := ListPropertiesRequest{
		City:   q.Get("city"),
		Status: q.Get("status"),
	}
	req.MinPriceGBP, _ = strconv.ParseInt(q.Get("min_price"), 10, 64)
	req.MaxPriceGBP, _ = strconv.ParseInt(q.Get("max_price"), 10, 64)
	req.MinBedrooms, _ = strconv.Atoi(q.Get("min_bedrooms"))
	req.Page, _ = strconv.Atoi(q.Get("page"))
	req.PerPage, _ = strconv.Atoi(q.Get("per_page"))

	result, pagination, err := h.service.List(r.Context(), req)
	if err != nil {
		h.logger.Error("list properties", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, listResponse{Properties: result, Pagination: pagination})
}

func (h *Handler) show(w http.ResponseWriter, r *http.Request) {
	property, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, property)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req CreatePropertyRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	caller := identity.FromContext(r.Context())
	property, err := h.service.Create(r.Context(), req, caller.ID)
	if err != nil {
		h.logger.Error("create property", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, property)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var req UpdatePropertyRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	caller := identity.FromContext(r.Context())
	property, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), req, caller)
	if err != nil {
		if errors.Is(err, identity.ErrForbidden) {
			httpx.Problem(w, http.StatusForbidden, "Forbidden", identity.ErrForbidden.Error())
			return
		}
		h.logger.Error("update property", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, property)
}
