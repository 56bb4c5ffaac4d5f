package notification

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"dinoverse/internal/config"
)

type Message struct {
	Event   string
	Subject string
	Text    string
}

type Channel interface {
	Name() string
	Send(ctx context.Context, msg Message) error
}

// Notifier fans a message out to every configured channel.
type Notifier struct {
	Channels []Channel
	Logger   *zap.Logger
	Timeout  time.Duration
}

func New(cfg config.NotifyConfig, logger *zap.Logger) *Notifier {
	n := &Notifier{Logger: logger, Timeout: cfg.Timeout}
	if cfg.Email.Enabled {
		n.Channels = append(n.Channels, &EmailSender{
			APIBase: cfg.Email.APIBase,
			APIKey:  cfg.Email.APIKey,
			From:    cfg.Email.From,
			To:      cfg.Email.To,
		})
	}
	if cfg.Telegram.Enabled {
		n.Channels = append(n.Channels, &TelegramSender{
			BotToken: cfg.Telegram.BotToken,
			ChatID:   cfg.Telegram.ChatID,
		})
	}
	if cfg.Webhook.Enabled {
		n.Channels = append(n.Channels, &WebhookSender{URL: cfg.Webhook.URL})
	}
	return n
}

func (n *Notifier) Enabled() bool {
	return n != nil && len(n.Channels) > 0
}

// Send delivers to every channel and joins the failures. One failing channel
// does not stop the others.
func (n *Notifier) Send(ctx context.Context, msg Message) error {
	if !n.Enabled() {
		return nil
	}
	var errs []error
	for _, ch := range n.Channels {
		if err := ch.Send(ctx, msg); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", ch.Name(), err))
		}
	}
	return errors.Join(errs...)
}

// NotifyAsync sends in the background with its own deadline. Failures are
// logged and otherwise dropped.
func (n *Notifier) NotifyAsync(msg Message) {
	if !n.Enabled() {
		return
	}
	timeout := n.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err := n.Send(ctx, msg); err != nil && n.Logger != nil {
			n.Logger.Warn("notification failed", zap.String("event", msg.Event), zap.Error(err))
		}
	}()
}
