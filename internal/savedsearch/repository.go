package savedsearch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/propertymasters/propertymasters/internal/platform/httpx"
)

// Repository defines persistence operations for saved searches.
type Repository interface {
	Create(ctx context.Context, s SavedSearch) error
	ListByUser(ctx context.Context, userID string) ([]SavedSearch, error)
	Get(ctx context.Context, id string) (*SavedSearch, error)
	Delete(ctx context.Context, id string) error
	ListDue(ctx context.Context, frequency string, now time.Time) ([]SavedSearch, error)
	MarkRan(ctx context.Context, id string, ranAt time.Time) error
	MatchingPropertiesSince(ctx context.Context, c Criteria, since time.Time) ([]MatchedProperty, error)
	UserEmail(ctx context.Context, userID string) (string, error)
}

// PGRepository implements Repository using PostgreSQL. Criteria are stored
// as jsonb.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

// Create inserts a saved search.
func (r *PGRepository) Create(ctx context.Context, s SavedSearch) error {
	criteria, err := json.Marshal(s.Criteria)
	if err != nil {
		return fmt.Errorf("savedsearch: marshal criteria: %w", err)
	}
	const query = `INSERT INTO saved_searches (id, user_id, name, criteria, frequency, last_run_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err = r.pool.Exec(ctx, query, s.ID, s.UserID, s.Name, criteria, s.Frequency, s.LastRunAt, s.CreatedAt)
	if err != nil {
		return fmt.Errorf("savedsearch: create: %w", err)
	}
	return nil
}

const searchColumns = `id, user_id, name, criteria, frequency, last_run_at, created_at`

func scanSearch(row pgx.Row) (*SavedSearch, error) {
	var (
		s   SavedSearch
		raw []byte
	)
	err := row.Scan(&s.ID, &s.UserID, &s.Name, &raw, &s.Frequency, &s.LastRunAt, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, httpx.ErrNotFound
		}
		return nil, err
	}
	if err := json.Unmarshal(raw, &s.Criteria); err != nil {
		return nil, fmt.Errorf("savedsearch: unmarshal criteria: %w", err)
	}
	return &s, nil
}

// Get fetches a saved search by ID.
func (r *PGRepository) Get(ctx context.Context, id string) (*SavedSearch, error) {
	return scanSearch(r.pool.QueryRow(ctx, `SELECT `+searchColumns+` FROM saved_searches WHERE id = $1`, id))
}

// ListByUser returns a user's saved searches.
func (r *PGRepository) ListByUser(ctx context.Context, userID string) ([]SavedSearch, error) {
	return r.list(ctx, `SELECT `+searchColumns+` FROM saved_searches WHERE user_id = $1 ORDER BY created_at DESC`, userID)
}

// ListDue returns searches of the given frequency whose alert window has
// elapsed since the last scan. Never-run searches are always due.
func (r *PGRepository) ListDue(ctx context.Context, frequency string, now time.Time) ([]SavedSearch, error) {
	interval := 24 * time.Hour
	if frequency == FrequencyWeekly {
		interval = 7 * 24 * time.Hour
	}
	const query = `SELECT ` + searchColumns + ` FROM saved_searches WHERE frequency = $1 AND (last_run_at IS NULL OR last_run_at <= $2)`
	return r.list(ctx, query, frequency, now.Add(-interval))
}

func (r *PGRepository) list(ctx context.Context, query string, args ...any) ([]SavedSearch, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("savedsearch: list: %w", err)
	}
	defer rows.Close()

	var result []SavedSearch
	for rows.Next() {
		s, err := scanSearch(rows)
		if err != nil {
			return nil, fmt.Errorf("savedsearch: scan: %w", err)
		}
		result = append(result, *s)
	}
	return result, rows.Err()
}

// Delete removes a saved search.
func (r *PGRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM saved_searches WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("savedsearch: delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

// MarkRan records a completed scan.
func (r *PGRepository) MarkRan(ctx context.Context, id string, ranAt time.Time) error {
	_, err := r.pool.Exec(ctx, `UPDATE saved_searches SET last_run_at = $2 WHERE id = $1`, id, ranAt)
	if err != nil {
		return fmt.Errorf("savedsearch: mark ran: %w", err)
	}
	return nil
}

// MatchingPropertiesSince finds published listings created after the cutoff
// that match the stored criteria.
func (r *PGRepository) MatchingPropertiesSince(ctx context.Context, c Criteria, since time.Time) ([]MatchedProperty, error) {
	const query = `SELECT id, title, city, price_gbp FROM properties
		WHERE status = 'published' AND created_at > $1
		AND ($2 = '' OR city ILIKE $2)
		AND ($3 = '' OR type = $3)
		AND ($4 = 0 OR price_gbp >= $4)
		AND ($5 = 0 OR price_gbp <= $5)
		AND ($6 = 0 OR bedrooms >= $6)
		ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query, since, c.City, c.Type, c.MinPriceGBP, c.MaxPriceGBP, c.MinBedrooms)
	if err != nil {
		return nil, fmt.Errorf("savedsearch: matching properties: %w", err)
	}
	defer rows.Close()

	var result []MatchedProperty
	for rows.Next() {
		var m MatchedProperty
		if err := rows.Scan(&m.ID, &m.Title, &m.City, &m.PriceGBP); err != nil {
			return nil, fmt.Errorf("savedsearch: scan match: %w", err)
		}
		result = append(result, m)
	}
	return result, rows.Err()
}

// UserEmail resolves the owner's notification address.
func (r *PGRepository) UserEmail(ctx context.Context, userID string) (string, error) {
	var email string
	err := r.pool.QueryRow(ctx, `SELECT email FROM users WHERE id = $1`, userID).Scan(&email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", httpx.ErrNotFound
		}
		return "", fmt.Errorf("savedsearch: user email: %w", err)
	}
	return email, nil
}

var _ Repository = (*PGRepository)(nil)
