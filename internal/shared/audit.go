package shared

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Audit actions recorded by the platform.
const (
	AuditActionLogin       = "auth.login"
	AuditActionLogout      = "auth.logout"
	AuditActionAuthzDenied = "authz.denied"
)

// AuditLog represents a record stored in audit_logs.
type AuditLog struct {
	ActorID  string
	Action   string
	Entity   string
	EntityID string
	Meta     map[string]any
	At       time.Time
}

// AuditLogger writes records into audit_logs.
type AuditLogger struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// NewAuditLogger returns a new AuditLogger.
func NewAuditLogger(pool *pgxpool.Pool, logger *slog.Logger) *AuditLogger {
	return &AuditLogger{pool: pool, logger: logger}
}

// Record persists the log entry.
func (l *AuditLogger) Record(ctx context.Context, log AuditLog) error {
	if l == nil {
		return errors.New("audit logger not initialised")
	}
	if log.Action == "" || log.Entity == "" {
		return errors.New("audit log requires action/entity")
	}
	metaJSON, err := json.Marshal(log.Meta)
	if err != nil {
		return err
	}
	at := log.At
	if at.IsZero() {
		at = time.Now().UTC()
	}
	_, err = l.pool.Exec(ctx, `INSERT INTO audit_logs (actor_id, action, entity, entity_id, meta, occurred_at) VALUES ($1, $2, $3, $4, $5, $6)`, log.ActorID, log.Action, log.Entity, log.EntityID, metaJSON, at)
	return err
}

// AuthorizationDenied records a denied authorization decision. Only the
// actor and target operation are stored; failures are logged and swallowed
// so audit problems never change the request outcome.
func (l *AuditLogger) AuthorizationDenied(ctx context.Context, actorID, operation string) {
	if l == nil {
		return
	}
	err := l.Record(ctx, AuditLog{
		ActorID:  actorID,
		Action:   AuditActionAuthzDenied,
		Entity:   "operation",
		EntityID: operation,
	})
	if err != nil && l.logger != nil {
		l.logger.Warn("audit authz denial", slog.Any("error", err))
	}
}
