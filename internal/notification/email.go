package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// EmailSender posts to a transactional email HTTP API (Resend-compatible
// /emails endpoint, bearer key).
type EmailSender struct {
	HTTP    *http.Client
	APIBase string
	APIKey  string
	From    string
	To      string
}

type emailRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	Text    string   `json:"text"`
}

func (s *EmailSender) Name() string { return "email" }

func (s *EmailSender) Send(ctx context.Context, msg Message) error {
	if s.APIKey == "" || s.From == "" || s.To == "" {
		return fmt.Errorf("missing api_key/from/to")
	}
	var to []string
	for _, addr := range strings.Split(s.To, ",") {
		if addr = strings.TrimSpace(addr); addr != "" {
			to = append(to, addr)
		}
	}
	b, err := json.Marshal(emailRequest{From: s.From, To: to, Subject: msg.Subject, Text: msg.Text})
	if err != nil {
		return err
	}
	endpoint := strings.TrimRight(s.APIBase, "/") + "/emails"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.APIKey)
	resp, err := s.client().Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &httpError{Channel: "email", StatusCode: resp.StatusCode}
	}
	return nil
}

func (s *EmailSender) client() *http.Client {
	if s.HTTP != nil {
		return s.HTTP
	}
	return &http.Client{Timeout: 5 * time.Second}
}
