package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Sender delivers one rendered greeting to one recipient. A nil error means
// confirmed delivery; anything else leaves the message eligible for retry.
type Sender interface {
	Send(ctx context.Context, email, message string) error
}

// EmailSender posts greetings to the external email service as JSON.
type EmailSender struct {
	client   *http.Client
	endpoint string
}

// EmailSenderOptions configures EmailSender.
type EmailSenderOptions struct {
	Endpoint string
	Timeout  time.Duration
}

var _ Sender = (*EmailSender)(nil)

// NewEmailSender builds an EmailSender with a bounded request timeout.
func NewEmailSender(opts EmailSenderOptions) *EmailSender {
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &EmailSender{
		client:   &http.Client{Timeout: timeout},
		endpoint: opts.Endpoint,
	}
}

type emailPayload struct {
	Email   string `json:"email"`
	Message string `json:"message"`
}

// Send posts the greeting. Only HTTP 200 counts as confirmed delivery.
func (s *EmailSender) Send(ctx context.Context, email, message string) error {
	body, err := json.Marshal(emailPayload{Email: email, Message: message})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("email service returned status %d", resp.StatusCode)
	}
	return nil
}
