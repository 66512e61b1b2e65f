package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/hibiken/asynq"

	"github.com/propertymasters/propertymasters/internal/savedsearch"
)

// SavedSearchScanJob re-executes stored searches and alerts their owners.
type SavedSearchScanJob struct {
	Service *savedsearch.Service
	Logger  *slog.Logger
}

// NewSavedSearchScanJob wires dependencies for the scan handler.
func NewSavedSearchScanJob(service *savedsearch.Service, logger *slog.Logger) *SavedSearchScanJob {
	return &SavedSearchScanJob{Service: service, Logger: logger}
}

// Handle processes TaskTypeSavedSearchScan tasks.
func (j *SavedSearchScanJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Service == nil {
		return errors.New("saved search scan: handler not configured")
	}
	var payload SavedSearchScanPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	if payload.Frequency != savedsearch.FrequencyDaily && payload.Frequency != savedsearch.FrequencyWeekly {
		return asynq.SkipRetry
	}

	sent, err := j.Service.RunDue(ctx, payload.Frequency)
	if err != nil {
		return fmt.Errorf("saved search scan (%s): %w", payload.Frequency, err)
	}
	if j.Logger != nil {
		j.Logger.Info("saved search scan complete",
			slog.String("frequency", payload.Frequency),
			slog.Int("alerts_sent", sent))
	}
	return nil
}

// EmailNotifier dispatches saved-search alerts as send-email tasks.
type EmailNotifier struct {
	Client *Client
}

// NotifyMatches enqueues one alert email summarising new matches.
func (n *EmailNotifier) NotifyMatches(ctx context.Context, email string, search savedsearch.SavedSearch, matches []savedsearch.MatchedProperty) error {
	if n == nil || n.Client == nil {
		return errors.New("email notifier: not configured")
	}
	var body strings.Builder
	fmt.Fprintf(&body, "Your saved search %q has %d new matching properties:\n\n", search.Name, len(matches))
	for _, m := range matches {
		fmt.Fprintf(&body, "- %s, %s (£%d)\n", m.Title, m.City, m.PriceGBP)
	}
	_, err := n.Client.EnqueueSendEmail(ctx, SendEmailPayload{
		To:      email,
		Subject: fmt.Sprintf("New properties for %q", search.Name),
		Body:    body.String(),
	})
	return err
}

var _ savedsearch.Notifier = (*EmailNotifier)(nil)
