package auth

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/propertymasters/propertymasters/internal/identity"
	"github.com/propertymasters/propertymasters/internal/shared"
)

// Auditor records authentication events.
type Auditor interface {
	Record(ctx context.Context, log shared.AuditLog) error
}

// Service wraps authentication business rules.
type Service struct {
	repo     Repository
	issuer   *identity.TokenIssuer
	denylist identity.Denylist
	audit    Auditor
	logger   *slog.Logger
}

// NewService constructs a new Service.
func NewService(repo Repository, issuer *identity.TokenIssuer, denylist identity.Denylist, audit Auditor, logger *slog.Logger) *Service {
	return &Service{repo: repo, issuer: issuer, denylist: denylist, audit: audit, logger: logger}
}

// Authenticate validates email/password credentials. All failure paths
// return shared.ErrInvalidCredentials so callers cannot probe accounts.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*User, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, shared.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, shared.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, shared.ErrInvalidCredentials
	}
	return user, nil
}

// Login authenticates the credentials and mints an access token.
func (s *Service) Login(ctx context.Context, email, password string) (*User, *identity.IssuedToken, error) {
	user, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return nil, nil, err
	}
	token, err := s.issuer.Issue(user.ID, user.Role)
	if err != nil {
		return nil, nil, err
	}
	s.recordAudit(ctx, shared.AuditLog{
		ActorID:  user.ID,
		Action:   shared.AuditActionLogin,
		Entity:   "user",
		EntityID: user.ID,
	})
	return user, token, nil
}

// Logout revokes the presented token until its natural expiry.
func (s *Service) Logout(ctx context.Context, actorID, tokenID string, expiresAt time.Time) error {
	if s.denylist == nil || tokenID == "" {
		return nil
	}
	if err := s.denylist.Revoke(ctx, tokenID, time.Until(expiresAt)); err != nil {
		return err
	}
	s.recordAudit(ctx, shared.AuditLog{
		ActorID:  actorID,
		Action:   shared.AuditActionLogout,
		Entity:   "user",
		EntityID: actorID,
	})
	return nil
}

func (s *Service) recordAudit(ctx context.Context, log shared.AuditLog) {
	if s.audit == nil {
		return
	}
	if err := s.audit.Record(ctx, log); err != nil && s.logger != nil {
		s.logger.Warn("audit record", slog.Any("error", err))
	}
}
