package dashboards

import "context"

// Service coordinates dashboard aggregation with the cache layer.
type Service struct {
	repo  Repository
	cache *Cache
}

// NewService wires a Repository with a Cache helper.
func NewService(repo Repository, cache *Cache) *Service {
	return &Service{repo: repo, cache: cache}
}

// Platform returns the platform-wide summary.
func (s *Service) Platform(ctx context.Context) (*PlatformSummary, error) {
	var summary PlatformSummary
	err := s.cache.FetchJSON(ctx, "dashboards:platform", &summary, func(ctx context.Context) (any, error) {
		return s.repo.PlatformSummary(ctx)
	})
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

// Manager returns one property manager's summary.
func (s *Service) Manager(ctx context.Context, managerID string) (*ManagerSummary, error) {
	var summary ManagerSummary
	err := s.cache.FetchJSON(ctx, "dashboards:manager:"+managerID, &summary, func(ctx context.Context) (any, error) {
		return s.repo.ManagerSummary(ctx, managerID)
	})
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

// Contractor returns one contractor's summary.
func (s *Service) Contractor(ctx context.Context, contractorID string) (*ContractorSummary, error) {
	var summary ContractorSummary
	err := s.cache.FetchJSON(ctx, "dashboards:contractor:"+contractorID, &summary, func(ctx context.Context) (any, error) {
		return s.repo.ContractorSummary(ctx, contractorID)
	})
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

// Seller returns one seller's summary.
func (s *Service) Seller(ctx context.Context, sellerID string) (*SellerSummary, error) {
	var summary SellerSummary
	err := s.cache.FetchJSON(ctx, "dashboards:seller:"+sellerID, &summary, func(ctx context.Context) (any, error) {
		return s.repo.SellerSummary(ctx, sellerID)
	})
	if err != nil {
		return nil, err
	}
	return &summary, nil
}
