package properties

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/propertymasters/propertymasters/internal/platform/httpx"
)

// Repository defines persistence operations for property listings.
type Repository interface {
	Get(ctx context.Context, id string) (*Property, error)
	List(ctx context.Context, req ListPropertiesRequest) ([]Property, int, error)
	Create(ctx context.Context, p Property) error
	Update(ctx context.Context, id string, updates map[string]any) error
}

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

const propertyColumns = `id, reference, title, description, type, status, price_gbp, bedrooms, bathrooms, address_line, city, postcode, owner_id, created_at, updated_at`

func scanProperty(row pgx.Row) (*Property, error) {
	var p Property
	err := row.Scan(&p.ID, &p.Reference, &p.Title, &p.Description, &p.Type, &p.Status, &p.PriceGBP, &p.Bedrooms, &p.Bathrooms, &p.AddressLine, &p.City, &p.Postcode, &p.OwnerID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, httpx.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// Get fetches a property by ID.
func (r *PGRepository) Get(ctx context.Context, id string) (*Property, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+propertyColumns+` FROM properties WHERE id = $1`, id)
	p, err := scanProperty(row)
	if err != nil && !errors.Is(err, httpx.ErrNotFound) {
		return nil, fmt.Errorf("properties: get: %w", err)
	}
	return p, err
}

// List returns properties matching the filters plus the unpaged total.
func (r *PGRepository) List(ctx context.Context, req ListPropertiesRequest) ([]Property, int, error) {
	where := []string{"1=1"}
	args := []any{}
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	if req.City != "" {
		where = append(where, "city ILIKE "+arg(req.City))
	}
	if req.Status != "" {
		where = append(where, "status = "+arg(req.Status))
	}
	if req.MinPriceGBP > 0 {
		where = append(where, "price_gbp >= "+arg(req.MinPriceGBP))
	}
	if req.MaxPriceGBP > 0 {
		where = append(where, "price_gbp <= "+arg(req.MaxPriceGBP))
	}
	if req.MinBedrooms > 0 {
		where = append(where, "bedrooms >= "+arg(req.MinBedrooms))
	}
	cond := strings.Join(where, " AND ")

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM properties WHERE `+cond, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("properties: count: %w", err)
	}

	perPage := req.PerPage
	if perPage <= 0 {
		perPage = 20
	}
	page := req.Page
	if page <= 0 {
		page = 1
	}
	query := `SELECT ` + propertyColumns + ` FROM properties WHERE ` + cond +
		` ORDER BY created_at DESC LIMIT ` + arg(perPage) + ` OFFSET ` + arg((page-1)*perPage)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("properties: list: %w", err)
	}
	defer rows.Close()

	var result []Property
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("properties: scan: %w", err)
		}
		result = append(result, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("properties: rows: %w", err)
	}
	return result, total, nil
}

// Create inserts a new property listing.
func (r *PGRepository) Create(ctx context.Context, p Property) error {
	const query = `INSERT INTO properties (id, reference, title, description, type, status, price_gbp, bedrooms, bathrooms, address_line, city, postcode, owner_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.pool.Exec(ctx, query, p.ID, p.Reference, p.Title, p.Description, p.Type, p.Status, p.PriceGBP, p.Bedrooms, p.Bathrooms, p.AddressLine, p.City, p.Postcode, p.OwnerID, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: reference %s", httpx.ErrDuplicate, p.Reference)
		}
		return fmt.Errorf("properties: create: %w", err)
	}
	return nil
}

// Update applies a partial update built from non-nil request fields.
func (r *PGRepository) Update(ctx context.Context, id string, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	set := make([]string, 0, len(updates)+1)
	args := []any{id}
	for col, val := range updates {
		args = append(args, val)
		set = append(set, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	set = append(set, "updated_at = NOW()")

	tag, err := r.pool.Exec(ctx, `UPDATE properties SET `+strings.Join(set, ", ")+` WHERE id = $1`, args...)
	if err != nil {
		return fmt.Errorf("properties: update: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

var _ Repository = (*PGRepository)(nil)
