package auth

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/propertymasters/propertymasters/internal/identity"
	"github.com/propertymasters/propertymasters/internal/platform/httpx"
	"github.com/propertymasters/propertymasters/internal/shared"
)

// Handler wires HTTP endpoints for authentication flows.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	verifier  *identity.TokenVerifier
	validator *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service, verifier *identity.TokenVerifier) *Handler {
	return &Handler{
		logger:    logger,
		service:   service,
		verifier:  verifier,
		validator: validator.New(),
	}
}

// MountPublicRoutes registers routes reachable without a bearer token.
func (h *Handler) MountPublicRoutes(r chi.Router) {
	r.Post("/auth/login", h.handleLogin)
}

// MountProtectedRoutes registers routes behind the identity resolver.
func (h *Handler) MountProtectedRoutes(r chi.Router) {
	r.Post("/auth/logout", h.handleLogout)
	r.Get("/auth/me", h.handleMe)
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type loginResponse struct {
	Token     string    `json:"token"`
	TokenType string    `json:"token_type"`
	ExpiresAt time.Time `json:"expires_at"`
	User      userInfo  `json:"user"`
}

type userInfo struct {
	ID   string `json:"id"`
	Role string `json:"role"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	user, token, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, shared.ErrInvalidCredentials) {
			httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "invalid credentials")
			return
		}
		h.logger.Error("login", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}

	httpx.JSON(w, http.StatusOK, loginResponse{
		Token:     token.Token,
		TokenType: "Bearer",
		ExpiresAt: token.ExpiresAt,
		User:      userInfo{ID: user.ID, Role: user.Role.String()},
	})
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	caller := identity.FromContext(r.Context())
	if caller == nil {
		httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", identity.ErrUnauthenticated.Error())
		return
	}

	// The resolver already verified this token; parse it again only to
	// recover the token ID and expiry for revocation.
	raw := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	claims, err := h.verifier.ParseClaims(raw)
	if err != nil {
		httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", identity.ErrUnauthenticated.Error())
		return
	}

	var expiresAt time.Time
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}
	if err := h.service.Logout(r.Context(), caller.ID, claims.ID, expiresAt); err != nil {
		h.logger.Error("logout", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	caller := identity.FromContext(r.Context())
	if caller == nil {
		httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", identity.ErrUnauthenticated.Error())
		return
	}
	httpx.JSON(w, http.StatusOK, userInfo{ID: caller.ID, Role: caller.Role.String()})
}
