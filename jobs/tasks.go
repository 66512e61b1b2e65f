package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskTypeSendEmail is the task type for sending transactional emails.
	TaskTypeSendEmail = "mail:send"
	// TaskTypeSavedSearchScan is the task type for re-executing saved
	// searches and dispatching alerts.
	TaskTypeSavedSearchScan = "savedsearch:scan"
)

// SendEmailPayload describes the information required to send an email.
type SendEmailPayload struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// NewSendEmailTask constructs an Asynq task.
func NewSendEmailTask(payload SendEmailPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeSendEmail, data), nil
}

// SavedSearchScanPayload selects which alert frequency a scan covers.
type SavedSearchScanPayload struct {
	Frequency string `json:"frequency"`
}

// NewSavedSearchScanTask constructs an Asynq task for an alert scan.
func NewSavedSearchScanTask(frequency string) (*asynq.Task, error) {
	data, err := json.Marshal(SavedSearchScanPayload{Frequency: frequency})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeSavedSearchScan, data), nil
}
