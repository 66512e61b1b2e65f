package bookings

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/propertymasters/propertymasters/internal/identity"
	"github.com/propertymasters/propertymasters/internal/platform/httpx"
)

// Service handles viewing booking business logic.
type Service struct {
	repo  Repository
	clock func() time.Time
}

// NewService builds a Service instance.
func NewService(repo Repository) *Service {
	return &Service{repo: repo, clock: func() time.Time { return time.Now().UTC() }}
}

// Create books a viewing slot for the calling user. The overlap check and
// insert run in one transaction so two callers cannot take the same slot.
func (s *Service) Create(ctx context.Context, req CreateBookingRequest, userID string) (*Booking, error) {
	if !req.ScheduledAt.After(s.clock()) {
		return nil, fmt.Errorf("%w: scheduled_at must be in the future", httpx.ErrValidation)
	}

	now := s.clock()
	booking := Booking{
		ID:          uuid.NewString(),
		PropertyID:  req.PropertyID,
		UserID:      userID,
		ScheduledAt: req.ScheduledAt.UTC(),
		Status:      StatusPending,
		Notes:       req.Notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err := s.repo.WithTx(ctx, func(ctx context.Context, repo Repository) error {
		count, err := repo.CountOverlapping(ctx, booking.PropertyID, booking.ScheduledAt)
		if err != nil {
			return err
		}
		if count > 0 {
			return fmt.Errorf("%w: slot already booked", httpx.ErrDuplicate)
		}
		return repo.Create(ctx, booking)
	})
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// ListOwn returns the calling user's bookings.
func (s *Service) ListOwn(ctx context.Context, userID string) ([]Booking, error) {
	return s.repo.ListByUser(ctx, userID)
}

// Cancel cancels a booking. The booking owner may always cancel; agents and
// admins may cancel any booking.
func (s *Service) Cancel(ctx context.Context, id string, caller *identity.Identity) error {
	booking, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if booking.UserID != caller.ID && caller.Role != identity.RoleAgent && caller.Role != identity.RoleAdmin {
		return identity.ErrForbidden
	}
	if booking.Status == StatusCancelled {
		return nil
	}
	return s.repo.SetStatus(ctx, id, StatusCancelled)
}

// Confirm marks a pending booking as confirmed.
func (s *Service) Confirm(ctx context.Context, id string) error {
	booking, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if booking.Status != StatusPending {
		return fmt.Errorf("%w: booking is %s", httpx.ErrValidation, booking.Status)
	}
	return s.repo.SetStatus(ctx, id, StatusConfirmed)
}
