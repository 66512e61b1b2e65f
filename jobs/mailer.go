package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"

	"github.com/hibiken/asynq"
)

// Mailer delivers transactional email.
type Mailer interface {
	Send(ctx context.Context, payload SendEmailPayload) error
}

// SMTPMailer delivers mail through a plain SMTP relay.
type SMTPMailer struct {
	Addr string
	From string
}

// Send submits one message to the relay.
func (m *SMTPMailer) Send(_ context.Context, payload SendEmailPayload) error {
	if m == nil || m.Addr == "" {
		return errors.New("jobs: smtp relay not configured")
	}
	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", m.From)
	fmt.Fprintf(&msg, "To: %s\r\n", payload.To)
	fmt.Fprintf(&msg, "Subject: %s\r\n", payload.Subject)
	msg.WriteString("\r\n")
	msg.WriteString(payload.Body)
	return smtp.SendMail(m.Addr, nil, m.From, []string{payload.To}, []byte(msg.String()))
}

// SendEmailJob processes TaskTypeSendEmail tasks.
type SendEmailJob struct {
	Mailer Mailer
	Logger *slog.Logger
}

// Handle delivers one queued email.
func (j *SendEmailJob) Handle(ctx context.Context, t *asynq.Task) error {
	var payload SendEmailPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	if payload.To == "" {
		return asynq.SkipRetry
	}
	if err := j.Mailer.Send(ctx, payload); err != nil {
		return fmt.Errorf("jobs: send email to %s: %w", payload.To, err)
	}
	if j.Logger != nil {
		j.Logger.Info("email sent", slog.String("to", payload.To), slog.String("subject", payload.Subject))
	}
	return nil
}
