package dashboards

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository aggregates dashboard figures from the primary store.
type Repository interface {
	PlatformSummary(ctx context.Context) (*PlatformSummary, error)
	ManagerSummary(ctx context.Context, managerID string) (*ManagerSummary, error)
	ContractorSummary(ctx context.Context, contractorID string) (*ContractorSummary, error)
	SellerSummary(ctx context.Context, sellerID string) (*SellerSummary, error)
}

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

// PlatformSummary computes platform-wide counts.
func (r *PGRepository) PlatformSummary(ctx context.Context) (*PlatformSummary, error) {
	const query = `SELECT
		(SELECT COUNT(*) FROM users),
		(SELECT COUNT(*) FROM users WHERE is_active),
		(SELECT COUNT(*) FROM properties),
		(SELECT COUNT(*) FROM properties WHERE status = 'published'),
		(SELECT COUNT(*) FROM bookings WHERE status = 'pending')`
	var s PlatformSummary
	if err := r.pool.QueryRow(ctx, query).Scan(&s.TotalUsers, &s.ActiveUsers, &s.TotalProperties, &s.PublishedListings, &s.PendingBookings); err != nil {
		return nil, fmt.Errorf("dashboards: platform summary: %w", err)
	}
	return &s, nil
}

// ManagerSummary computes figures for one property manager's portfolio.
func (r *PGRepository) ManagerSummary(ctx context.Context, managerID string) (*ManagerSummary, error) {
	const query = `SELECT
		(SELECT COUNT(*) FROM properties WHERE owner_id = $1),
		(SELECT COUNT(*) FROM bookings b JOIN properties p ON p.id = b.property_id WHERE p.owner_id = $1 AND b.status IN ('pending', 'confirmed') AND b.scheduled_at > NOW()),
		(SELECT COUNT(*) FROM bookings b JOIN properties p ON p.id = b.property_id WHERE p.owner_id = $1 AND b.status = 'cancelled')`
	var s ManagerSummary
	if err := r.pool.QueryRow(ctx, query, managerID).Scan(&s.ManagedListings, &s.UpcomingViewings, &s.CancelledViewings); err != nil {
		return nil, fmt.Errorf("dashboards: manager summary: %w", err)
	}
	return &s, nil
}

// ContractorSummary computes figures for one contractor.
func (r *PGRepository) ContractorSummary(ctx context.Context, contractorID string) (*ContractorSummary, error) {
	const query = `SELECT
		(SELECT COUNT(*) FROM bookings WHERE user_id = $1 AND status IN ('pending', 'confirmed')),
		(SELECT COUNT(*) FROM bookings WHERE user_id = $1 AND status = 'completed')`
	var s ContractorSummary
	if err := r.pool.QueryRow(ctx, query, contractorID).Scan(&s.AssignedViewings, &s.CompletedViewings); err != nil {
		return nil, fmt.Errorf("dashboards: contractor summary: %w", err)
	}
	return &s, nil
}

// SellerSummary computes figures for one seller's listings.
func (r *PGRepository) SellerSummary(ctx context.Context, sellerID string) (*SellerSummary, error) {
	const query = `SELECT
		(SELECT COUNT(*) FROM properties WHERE owner_id = $1),
		(SELECT COUNT(*) FROM properties WHERE owner_id = $1 AND status = 'under_offer'),
		(SELECT COUNT(*) FROM properties WHERE owner_id = $1 AND status = 'sold')`
	var s SellerSummary
	if err := r.pool.QueryRow(ctx, query, sellerID).Scan(&s.OwnListings, &s.UnderOffer, &s.SoldListings); err != nil {
		return nil, fmt.Errorf("dashboards: seller summary: %w", err)
	}
	return &s, nil
}

var _ Repository = (*PGRepository)(nil)
