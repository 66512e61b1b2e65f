package properties

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/propertymasters/propertymasters/internal/identity"
	"github.com/propertymasters/propertymasters/internal/shared"
)

// Service handles property listing business logic.
type Service struct {
	repo  Repository
	clock func() time.Time
}

// NewService builds a Service instance.
func NewService(repo Repository) *Service {
	return &Service{repo: repo, clock: func() time.Time { return time.Now().UTC() }}
}

// Create registers a new listing owned by the calling user. New listings
// start as drafts.
func (s *Service) Create(ctx context.Context, req CreatePropertyRequest, ownerID string) (*Property, error) {
	now := s.clock()
	property := Property{
		ID:          uuid.NewString(),
		Reference:   req.Reference,
		Title:       req.Title,
		Description: req.Description,
		Type:        req.Type,
		Status:      StatusDraft,
		PriceGBP:    req.PriceGBP,
		Bedrooms:    req.Bedrooms,
		Bathrooms:   req.Bathrooms,
		AddressLine: req.AddressLine,
		City:        req.City,
		Postcode:    req.Postcode,
		OwnerID:     ownerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, property); err != nil {
		return nil, err
	}
	return &property, nil
}

// Get fetches one listing.
func (s *Service) Get(ctx context.Context, id string) (*Property, error) {
	return s.repo.Get(ctx, id)
}

// List returns listings matching the filters with pagination metadata.
func (s *Service) List(ctx context.Context, req ListPropertiesRequest) ([]Property, shared.Pagination, error) {
	result, total, err := s.repo.List(ctx, req)
	if err != nil {
		return nil, shared.Pagination{}, err
	}
	return result, shared.NewPagination(req.Page, req.PerPage, total), nil
}

// Update applies a partial update to an existing listing. Only the listing
// owner may change it; admins are exempt.
func (s *Service) Update(ctx context.Context, id string, req UpdatePropertyRequest, caller *identity.Identity) (*Property, error) {
	property, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if caller.Role != identity.RoleAdmin && property.OwnerID != caller.ID {
		return nil, identity.ErrForbidden
	}

	updates := make(map[string]any)
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}
	if req.PriceGBP != nil {
		updates["price_gbp"] = *req.PriceGBP
	}
	if req.Bedrooms != nil {
		updates["bedrooms"] = *req.Bedrooms
	}
	if req.Bathrooms != nil {
		updates["bathrooms"] = *req.Bathrooms
	}
	if err := s.repo.Update(ctx, id, updates); err != nil {
		return nil, fmt.Errorf("update property: %w", err)
	}
	return s.repo.Get(ctx, id)
}
