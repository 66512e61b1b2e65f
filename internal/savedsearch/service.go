package savedsearch

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/propertymasters/propertymasters/internal/identity"
)

// Notifier dispatches match alerts to search owners.
type Notifier interface {
	NotifyMatches(ctx context.Context, email string, search SavedSearch, matches []MatchedProperty) error
}

// Service handles saved-search business logic and scheduled re-execution.
type Service struct {
	repo     Repository
	notifier Notifier
	logger   *slog.Logger
	clock    func() time.Time
}

// NewService builds a Service instance. The notifier may be nil in the API
// server, where scans never run.
func NewService(repo Repository, notifier Notifier, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		notifier: notifier,
		logger:   logger,
		clock:    func() time.Time { return time.Now().UTC() },
	}
}

// Create stores a new saved search for the calling user.
func (s *Service) Create(ctx context.Context, req CreateSavedSearchRequest, userID string) (*SavedSearch, error) {
	search := SavedSearch{
		ID:        uuid.NewString(),
		UserID:    userID,
		Name:      req.Name,
		Criteria:  req.Criteria,
		Frequency: req.Frequency,
		CreatedAt: s.clock(),
	}
	if err := s.repo.Create(ctx, search); err != nil {
		return nil, err
	}
	return &search, nil
}

// ListOwn returns the calling user's saved searches.
func (s *Service) ListOwn(ctx context.Context, userID string) ([]SavedSearch, error) {
	return s.repo.ListByUser(ctx, userID)
}

// Delete removes a saved search. Only the owner may delete it.
func (s *Service) Delete(ctx context.Context, id string, caller *identity.Identity) error {
	search, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if search.UserID != caller.ID {
		return identity.ErrForbidden
	}
	return s.repo.Delete(ctx, id)
}

// RunDue re-executes every due search of the given frequency and notifies
// owners of new matches. A failing search is logged and skipped so one bad
// record cannot stall the whole scan. Returns the number of alerts sent.
func (s *Service) RunDue(ctx context.Context, frequency string) (int, error) {
	now := s.clock()
	due, err := s.repo.ListDue(ctx, frequency, now)
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, search := range due {
		since := search.CreatedAt
		if search.LastRunAt != nil {
			since = *search.LastRunAt
		}
		matches, err := s.repo.MatchingPropertiesSince(ctx, search.Criteria, since)
		if err != nil {
			s.warn("saved search scan", search.ID, err)
			continue
		}
		if len(matches) > 0 && s.notifier != nil {
			email, err := s.repo.UserEmail(ctx, search.UserID)
			if err != nil {
				s.warn("resolve owner email", search.ID, err)
				continue
			}
			if err := s.notifier.NotifyMatches(ctx, email, search, matches); err != nil {
				s.warn("notify matches", search.ID, err)
				continue
			}
			sent++
		}
		if err := s.repo.MarkRan(ctx, search.ID, now); err != nil {
			s.warn("mark ran", search.ID, err)
		}
	}
	return sent, nil
}

func (s *Service) warn(msg, searchID string, err error) {
	if s.logger != nil {
		s.logger.Warn(msg, slog.String("search_id", searchID), slog.Any("error", err))
	}
}
