package invoices

import (
	"context"

	"github.com/propertymasters/propertymasters/internal/identity"
	"github.com/propertymasters/propertymasters/internal/platform/httpx"
)

// Service handles invoice read logic.
type Service struct {
	repo Repository
}

// NewService builds a Service instance.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns the invoices visible to the caller: admins see everything,
// other roles only invoices addressed to them.
func (s *Service) List(ctx context.Context, caller *identity.Identity) ([]Invoice, error) {
	var (
		result []Invoice
		err    error
	)
	if caller.Role == identity.RoleAdmin {
		result, err = s.repo.ListAll(ctx)
	} else {
		result, err = s.repo.ListByIssuer(ctx, caller.ID)
	}
	if err != nil {
		return nil, err
	}
	for i := range result {
		result[i].AmountFormatted = FormatPence(result[i].AmountPence)
	}
	return result, nil
}

// Get returns one invoice with the amount formatted for display. Visibility
// follows List: non-admins only see invoices addressed to them, and an
// invoice outside that scope is indistinguishable from a missing one.
func (s *Service) Get(ctx context.Context, id string, caller *identity.Identity) (*Invoice, error) {
	inv, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if caller.Role != identity.RoleAdmin && inv.IssuedTo != caller.ID {
		return nil, httpx.ErrNotFound
	}
	inv.AmountFormatted = FormatPence(inv.AmountPence)
	return inv, nil
}
