package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

type WebhookSender struct {
	HTTP *http.Client
	URL  string
	Now  func() time.Time
}

type WebhookPayload struct {
	Event   string    `json:"event"`
	Subject string    `json:"subject"`
	Message string    `json:"message"`
	SentAt  time.Time `json:"sentAt"`
}

func (s *WebhookSender) Name() string { return "webhook" }

func (s *WebhookSender) Send(ctx context.Context, msg Message) error {
	if s.URL == "" {
		return fmt.Errorf("missing url")
	}
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	b, err := json.Marshal(WebhookPayload{
		Event:   msg.Event,
		Subject: msg.Subject,
		Message: msg.Text,
		SentAt:  now().UTC(),
	})
	if err != nil {
		return err
	}
	client := s.HTTP
	if client == nil {
		client = &http.Client{Timeout: 5 * time.Second}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.URL, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &httpError{Channel: "webhook", StatusCode: resp.StatusCode}
	}
	return nil
}

type httpError struct {
	Channel    string
	StatusCode int
}

func (e *httpError) Error() string {
	return e.Channel + " http status " + http.StatusText(e.StatusCode)
}
