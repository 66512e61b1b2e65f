package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/require"

	"github.com/propertymasters/propertymasters/internal/savedsearch"
	_ "github.com/propertymasters/propertymasters/testing"
)

type noopSearchRepo struct {
	due []savedsearch.SavedSearch
}

func (r *noopSearchRepo) Create(context.Context, savedsearch.SavedSearch) error { return nil }
func (r *noopSearchRepo) ListByUser(context.Context, string) ([]savedsearch.SavedSearch, error) {
	return nil, nil
}
func (r *noopSearchRepo) Get(context.Context, string) (*savedsearch.SavedSearch, error) {
	return nil, errors.New("not found")
}
func (r *noopSearchRepo) Delete(context.Context, string) error { return nil }
func (r *noopSearchRepo) ListDue(context.Context, string, time.Time) ([]savedsearch.SavedSearch, error) {
	return r.due, nil
}
func (r *noopSearchRepo) MarkRan(context.Context, string, time.Time) error { return nil }
func (r *noopSearchRepo) MatchingPropertiesSince(context.Context, savedsearch.Criteria, time.Time) ([]savedsearch.MatchedProperty, error) {
	return nil, nil
}
func (r *noopSearchRepo) UserEmail(context.Context, string) (string, error) { return "", nil }

func TestSavedSearchScanTaskRoundTrip(t *testing.T) {
	task, err := NewSavedSearchScanTask(savedsearch.FrequencyDaily)
	require.NoError(t, err)
	require.Equal(t, TaskTypeSavedSearchScan, task.Type())

	service := savedsearch.NewService(&noopSearchRepo{}, nil, nil)
	job := NewSavedSearchScanJob(service, nil)
	require.NoError(t, job.Handle(context.Background(), task))
}

func TestSavedSearchScanRejectsBadPayload(t *testing.T) {
	service := savedsearch.NewService(&noopSearchRepo{}, nil, nil)
	job := NewSavedSearchScanJob(service, nil)

	bad := asynq.NewTask(TaskTypeSavedSearchScan, []byte("{"))
	require.ErrorIs(t, job.Handle(context.Background(), bad), asynq.SkipRetry)

	monthly, err := NewSavedSearchScanTask("monthly")
	require.NoError(t, err)
	require.ErrorIs(t, job.Handle(context.Background(), monthly), asynq.SkipRetry)
}

type stubMailer struct {
	sent []SendEmailPayload
	fail bool
}

func (m *stubMailer) Send(_ context.Context, payload SendEmailPayload) error {
	if m.fail {
		return errors.New("relay refused")
	}
	m.sent = append(m.sent, payload)
	return nil
}

func TestSendEmailJob(t *testing.T) {
	mailer := &stubMailer{}
	job := &SendEmailJob{Mailer: mailer}

	task, err := NewSendEmailTask(SendEmailPayload{To: "tenant@test.local", Subject: "hi", Body: "body"})
	require.NoError(t, err)
	require.NoError(t, job.Handle(context.Background(), task))
	require.Len(t, mailer.sent, 1)
	require.Equal(t, "tenant@test.local", mailer.sent[0].To)
}

func TestSendEmailJobSkipsBadPayload(t *testing.T) {
	job := &SendEmailJob{Mailer: &stubMailer{}}

	require.ErrorIs(t, job.Handle(context.Background(), asynq.NewTask(TaskTypeSendEmail, []byte("{"))), asynq.SkipRetry)

	task, err := NewSendEmailTask(SendEmailPayload{Subject: "no recipient"})
	require.NoError(t, err)
	require.ErrorIs(t, job.Handle(context.Background(), task), asynq.SkipRetry)
}

func TestSendEmailJobPropagatesRelayFailure(t *testing.T) {
	job := &SendEmailJob{Mailer: &stubMailer{fail: true}}
	task, err := NewSendEmailTask(SendEmailPayload{To: "tenant@test.local"})
	require.NoError(t, err)
	require.Error(t, job.Handle(context.Background(), task))
}
