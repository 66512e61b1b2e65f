package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/propertymasters/propertymasters/internal/platform/db"
	"github.com/propertymasters/propertymasters/internal/platform/httpx"
)

// Repository defines persistence operations for viewing bookings.
type Repository interface {
	WithTx(ctx context.Context, fn func(context.Context, Repository) error) error
	Get(ctx context.Context, id string) (*Booking, error)
	ListByUser(ctx context.Context, userID string) ([]Booking, error)
	CountOverlapping(ctx context.Context, propertyID string, at time.Time) (int, error)
	Create(ctx context.Context, b Booking) error
	SetStatus(ctx context.Context, id, status string) error
}

type dbtx interface {
	Exec(context.Context, string, ...any) (pgconn.CommandTag, error)
	Query(context.Context, string, ...any) (pgx.Rows, error)
	QueryRow(context.Context, string, ...any) pgx.Row
}

type repository struct {
	db   dbtx
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{db: pool, pool: pool}
}

// WithTx runs fn against a transaction-scoped repository.
func (r *repository) WithTx(ctx context.Context, fn func(context.Context, Repository) error) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(ctx, &repository{db: tx, pool: r.pool})
	})
}

const bookingColumns = `id, property_id, user_id, scheduled_at, status, notes, created_at, updated_at`

func scanBooking(row pgx.Row) (*Booking, error) {
	var b Booking
	err := row.Scan(&b.ID, &b.PropertyID, &b.UserID, &b.ScheduledAt, &b.Status, &b.Notes, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, httpx.ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

// Get fetches a booking by ID.
func (r *repository) Get(ctx context.Context, id string) (*Booking, error) {
	return scanBooking(r.db.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = $1`, id))
}

// ListByUser returns all bookings made by a user, newest first.
func (r *repository) ListByUser(ctx context.Context, userID string) ([]Booking, error) {
	rows, err := r.db.Query(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE user_id = $1 ORDER BY scheduled_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("bookings: list by user: %w", err)
	}
	defer rows.Close()

	var result []Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("bookings: scan: %w", err)
		}
		result = append(result, *b)
	}
	return result, rows.Err()
}

// CountOverlapping counts live bookings for the same property and slot.
func (r *repository) CountOverlapping(ctx context.Context, propertyID string, at time.Time) (int, error) {
	const query = `SELECT COUNT(*) FROM bookings WHERE property_id = $1 AND scheduled_at = $2 AND status IN ('pending', 'confirmed')`
	var count int
	if err := r.db.QueryRow(ctx, query, propertyID, at).Scan(&count); err != nil {
		return 0, fmt.Errorf("bookings: count overlapping: %w", err)
	}
	return count, nil
}

// Create inserts a new booking.
func (r *repository) Create(ctx context.Context, b Booking) error {
	const query = `INSERT INTO bookings (id, property_id, user_id, scheduled_at, status, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.db.Exec(ctx, query, b.ID, b.PropertyID, b.UserID, b.ScheduledAt, b.Status, b.Notes, b.CreatedAt, b.UpdatedAt)
	if err != nil {
		return fmt.Errorf("bookings: create: %w", err)
	}
	return nil
}

// SetStatus updates a booking's status.
func (r *repository) SetStatus(ctx context.Context, id, status string) error {
	tag, err := r.db.Exec(ctx, `UPDATE bookings SET status = $2, updated_at = NOW() WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("bookings: set status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}
