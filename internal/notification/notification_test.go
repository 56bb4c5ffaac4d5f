package notification

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"dinoverse/internal/config"
)

func TestWebhookSender(t *testing.T) {
	var got WebhookPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	s := &WebhookSender{URL: srv.URL, Now: func() time.Time { return at }}
	require.NoError(t, s.Send(context.Background(), Message{Event: "contact.created", Subject: "New", Text: "hello"}))
	assert.Equal(t, WebhookPayload{Event: "contact.created", Subject: "New", Message: "hello", SentAt: at}, got)
}

func TestWebhookSenderStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	err := (&WebhookSender{URL: srv.URL}).Send(context.Background(), Message{})
	var herr *httpError
	require.ErrorAs(t, err, &herr)
	assert.Equal(t, http.StatusBadGateway, herr.StatusCode)
}

func TestEmailSender(t *testing.T) {
	var body emailRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/emails", r.URL.Path)
		assert.Equal(t, "Bearer key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		_, _ = io.WriteString(w, `{"id":"1"}`)
	}))
	defer srv.Close()

	s := &EmailSender{APIBase: srv.URL + "/", APIKey: "key", From: "site@x.dev", To: "a@x.dev, b@x.dev"}
	require.NoError(t, s.Send(context.Background(), Message{Subject: "Hi", Text: "body"}))
	assert.Equal(t, []string{"a@x.dev", "b@x.dev"}, body.To)
	assert.Equal(t, "Hi", body.Subject)

	assert.Error(t, (&EmailSender{}).Send(context.Background(), Message{}))
}

func TestTelegramSender(t *testing.T) {
	var (
		mu   sync.Mutex
		sent url.Values
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case strings.HasSuffix(r.URL.Path, "/getMe"):
			_, _ = io.WriteString(w, `{"ok":true,"result":{"id":1,"is_bot":true,"first_name":"dino","username":"dino_bot"}}`)
		case strings.HasSuffix(r.URL.Path, "/sendMessage"):
			require.NoError(t, r.ParseForm())
			mu.Lock()
			sent = r.PostForm
			mu.Unlock()
			_, _ = io.WriteString(w, `{"ok":true,"result":{"message_id":7,"date":0,"chat":{"id":42,"type":"private"}}}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	s := &TelegramSender{BotToken: "TOKEN", ChatID: 42, APIEndpoint: srv.URL + "/bot%s/%s"}
	require.NoError(t, s.Send(context.Background(), Message{Subject: "New contact", Text: "hello"}))

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, "42", sent.Get("chat_id"))
	assert.Equal(t, "New contact\n\nhello", sent.Get("text"))
}

type stubChannel struct {
	name string
	err  error
	mu   sync.Mutex
	msgs []Message
}

func (s *stubChannel) Name() string { return s.name }

func (s *stubChannel) Send(_ context.Context, msg Message) error {
	s.mu.Lock()
	s.msgs = append(s.msgs, msg)
	s.mu.Unlock()
	return s.err
}

func TestNotifierJoinsErrors(t *testing.T) {
	boom := errors.New("boom")
	ok := &stubChannel{name: "ok"}
	bad := &stubChannel{name: "bad", err: boom}
	n := &Notifier{Channels: []Channel{bad, ok}}

	err := n.Send(context.Background(), Message{Text: "x"})
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "bad: boom")
	assert.Len(t, ok.msgs, 1)
}

func TestNotifyAsyncDelivers(t *testing.T) {
	ch := &stubChannel{name: "stub"}
	n := &Notifier{Channels: []Channel{ch}, Logger: zap.NewNop(), Timeout: time.Second}
	n.NotifyAsync(Message{Event: "e"})

	assert.Eventually(t, func() bool {
		ch.mu.Lock()
		defer ch.mu.Unlock()
		return len(ch.msgs) == 1
	}, time.Second, 10*time.Millisecond)
}

func TestNewFromConfig(t *testing.T) {
	n := New(config.NotifyConfig{}, nil)
	assert.False(t, n.Enabled())
	assert.NoError(t, n.Send(context.Background(), Message{}))

	n = New(config.NotifyConfig{
		Email:    config.EmailConfig{Enabled: true},
		Telegram: config.TelegramConfig{Enabled: true},
		Webhook:  config.WebhookConfig{Enabled: true, URL: "http://x"},
	}, nil)
	require.Len(t, n.Channels, 3)
	assert.Equal(t, "email", n.Channels[0].Name())
	assert.Equal(t, "telegram", n.Channels[1].Name())
	assert.Equal(t, "webhook", n.Channels[2].Name())
}
