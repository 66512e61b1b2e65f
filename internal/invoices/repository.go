package invoices

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/propertymasters/propertymasters/internal/platform/httpx"
)

// Repository defines persistence operations for invoices.
type Repository interface {
	Get(ctx context.Context, id string) (*Invoice, error)
	ListByIssuer(ctx context.Context, issuedTo string) ([]Invoice, error)
	ListAll(ctx context.Context) ([]Invoice, error)
}

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

const invoiceColumns = `id, reference, property_id, issued_to, amount_pence, status, due_date, created_at`

func scanInvoice(row pgx.Row) (*Invoice, error) {
	var inv Invoice
	err := row.Scan(&inv.ID, &inv.Reference, &inv.PropertyID, &inv.IssuedTo, &inv.AmountPence, &inv.Status, &inv.DueDate, &inv.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, httpx.ErrNotFound
		}
		return nil, err
	}
	return &inv, nil
}

// Get fetches an invoice by ID.
func (r *PGRepository) Get(ctx context.Context, id string) (*Invoice, error) {
	return scanInvoice(r.pool.QueryRow(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE id = $1`, id))
}

// ListByIssuer returns invoices addressed to one user.
func (r *PGRepository) ListByIssuer(ctx context.Context, issuedTo string) ([]Invoice, error) {
	return r.list(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE issued_to = $1 ORDER BY created_at DESC`, issuedTo)
}

// ListAll returns every invoice, newest first.
func (r *PGRepository) ListAll(ctx context.Context) ([]Invoice, error) {
	return r.list(ctx, `SELECT `+invoiceColumns+` FROM invoices ORDER BY created_at DESC`)
}

func (r *PGRepository) list(ctx context.Context, query string, args ...any) ([]Invoice, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("invoices: list: %w", err)
	}
	defer rows.Close()

	var result []Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("invoices: scan: %w", err)
		}
		result = append(result, *inv)
	}
	return result, rows.Err()
}

var _ Repository = (*PGRepository)(nil)
