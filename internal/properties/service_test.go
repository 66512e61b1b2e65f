package properties

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/propertymasters/propertymasters/internal/identity"
	"github.com/propertymasters/propertymasters/internal/platform/httpx"
	"github.com/propertymasters/propertymasters/internal/shared"
)

type memoryPropertyRepo struct {
	properties map[string]*Property
}

func newMemoryPropertyRepo() *memoryPropertyRepo {
	return &memoryPropertyRepo{properties: make(map[string]*Property)}
}

func (r *memoryPropertyRepo) Get(_ context.Context, id string) (*Property, error) {
	p, ok := r.properties[id]
	if !ok {
		return nil, httpx.ErrNotFound
	}
	copied := *p
	return &copied, nil
}

func (r *memoryPropertyRepo) List(_ context.Context, req ListPropertiesRequest) ([]Property, int, error) {
	var result []Property
	for _, p := range r.properties {
		if req.City != "" && p.City != req.City {
			continue
		}
		if req.Status != "" && p.Status != req.Status {
			continue
		}
		if req.MinPriceGBP > 0 && p.PriceGBP < req.MinPriceGBP {
			continue
		}
		if req.MaxPriceGBP > 0 && p.PriceGBP > req.MaxPriceGBP {
			continue
		}
		result = append(result, *p)
	}
	return result, len(result), nil
}

func (r *memoryPropertyRepo) Create(_ context.Context, p Property) error {
	for _, existing := range r.properties {
		if existing.Reference == p.Reference {
			return httpx.ErrDuplicate
		}
	}
	r.properties[p.ID] = &p
	return nil
}

func (r *memoryPropertyRepo) Update(_ context.Context, id string, updates map[string]any) error {
	p, ok := r.properties[id]
	if !ok {
		return httpx.ErrNotFound
	}
	if v, ok := updates["title"].(string); ok {
		p.Title = v
	}
	if v, ok := updates["status"].(string); ok {
		p.Status = v
	}
	if v, ok := updates["price_gbp"].(int64); ok {
		p.PriceGBP = v
	}
	return nil
}

func sampleCreateRequest() CreatePropertyRequest {
	return CreatePropertyRequest{
		Reference:   "PM-00042",
		Title:       "Two-bed flat in Shoreditch",
		Type:        "flat",
		PriceGBP:    425000,
		Bedrooms:    2,
		Bathrooms:   1,
		AddressLine: "12 Rivington Street",
		City:        "London",
		Postcode:    "EC2A 3DU",
	}
}

func TestCreateListingStartsAsDraft(t *testing.T) {
	svc := NewService(newMemoryPropertyRepo())

	p, err := svc.Create(context.Background(), sampleCreateRequest(), "landlord-1")
	require.NoError(t, err)
	require.Equal(t, StatusDraft, p.Status)
	require.Equal(t, "landlord-1", p.OwnerID)
	require.NotEmpty(t, p.ID)
}

func TestCreateListingDuplicateReference(t *testing.T) {
	repo := newMemoryPropertyRepo()
	svc := NewService(repo)

	_, err := svc.Create(context.Background(), sampleCreateRequest(), "landlord-1")
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), sampleCreateRequest(), "landlord-2")
	require.ErrorIs(t, err, httpx.ErrDuplicate)
}

func TestUpdateListingPartial(t *testing.T) {
	repo := newMemoryPropertyRepo()
	svc := NewService(repo)

	created, err := svc.Create(context.Background(), sampleCreateRequest(), "landlord-1")
	require.NoError(t, err)
	owner := &identity.Identity{ID: "landlord-1", Role: identity.RoleLandlord}

	status := StatusPublished
	price := int64(399000)
	updated, err := svc.Update(context.Background(), created.ID, UpdatePropertyRequest{Status: &status, PriceGBP: &price}, owner)
	require.NoError(t, err)
	require.Equal(t, StatusPublished, updated.Status)
	require.Equal(t, int64(399000), updated.PriceGBP)
	// Untouched fields keep their values.
	require.Equal(t, created.Title, updated.Title)

	_, err = svc.Update(context.Background(), "missing", UpdatePropertyRequest{Status: &status}, owner)
	require.ErrorIs(t, err, httpx.ErrNotFound)
}

func TestUpdateListingOwnerOnly(t *testing.T) {
	repo := newMemoryPropertyRepo()
	svc := NewService(repo)

	created, err := svc.Create(context.Background(), sampleCreateRequest(), "landlord-1")
	require.NoError(t, err)

	title := "Rebranded listing"
	// Another landlord holds a listing role but does not own this one.
	_, err = svc.Update(context.Background(), created.ID, UpdatePropertyRequest{Title: &title}, &identity.Identity{ID: "landlord-2", Role: identity.RoleLandlord})
	require.ErrorIs(t, err, identity.ErrForbidden)
	unchanged, err := repo.Get(context.Background(), created.ID)
	require.NoError(t, err)
	require.Equal(t, created.Title, unchanged.Title)

	// Agents get the same treatment on listings they don't own.
	_, err = svc.Update(context.Background(), created.ID, UpdatePropertyRequest{Title: &title}, &identity.Identity{ID: "agent-1", Role: identity.RoleAgent})
	require.ErrorIs(t, err, identity.ErrForbidden)

	// Admins are exempt.
	updated, err := svc.Update(context.Background(), created.ID, UpdatePropertyRequest{Title: &title}, &identity.Identity{ID: "admin-1", Role: identity.RoleAdmin})
	require.NoError(t, err)
	require.Equal(t, title, updated.Title)
}

func TestListFiltersAndPagination(t *testing.T) {
	repo := newMemoryPropertyRepo()
	svc := NewService(repo)

	london := sampleCreateRequest()
	_, err := svc.Create(context.Background(), london, "landlord-1")
	require.NoError(t, err)

	leeds := sampleCreateRequest()
	leeds.Reference = "PM-00043"
	leeds.City = "Leeds"
	leeds.PriceGBP = 180000
	_, err = svc.Create(context.Background(), leeds, "landlord-1")
	require.NoError(t, err)

	result, page, err := svc.List(context.Background(), ListPropertiesRequest{City: "Leeds", Page: 1, PerPage: 20})
	require.NoError(t, err)
	require.Len(t, result, 1)
	require.Equal(t, "Leeds", result[0].City)
	require.Equal(t, shared.NewPagination(1, 20, 1), page)

	result, _, err = svc.List(context.Background(), ListPropertiesRequest{MaxPriceGBP: 200000, Page: 1, PerPage: 20})
	require.NoError(t, err)
	require.Len(t, result, 1)
}
