package notification

import (
	"context"
	"fmt"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// TelegramSender posts to one chat through the Bot API. The client is built
// on first use because construction calls getMe.
type TelegramSender struct {
	BotToken string
	ChatID   int64
	// APIEndpoint overrides tgbotapi.APIEndpoint, mostly for tests.
	APIEndpoint string

	mu  sync.Mutex
	bot *tgbotapi.BotAPI
}

func (s *TelegramSender) Name() string { return "telegram" }

func (s *TelegramSender) Send(ctx context.Context, msg Message) error {
	if s.BotToken == "" || s.ChatID == 0 {
		return fmt.Errorf("missing bot_token/chat_id")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	bot, err := s.client()
	if err != nil {
		return err
	}
	text := msg.Text
	if msg.Subject != "" {
		text = msg.Subject + "\n\n" + msg.Text
	}
	_, err = bot.Send(tgbotapi.NewMessage(s.ChatID, text))
	return err
}

func (s *TelegramSender) client() (*tgbotapi.BotAPI, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.bot != nil {
		return s.bot, nil
	}
	endpoint := s.APIEndpoint
	if endpoint == "" {
		endpoint = tgbotapi.APIEndpoint
	}
	bot, err := tgbotapi.NewBotAPIWithAPIEndpoint(s.BotToken, endpoint)
	if err != nil {
		return nil, err
	}
	s.bot = bot
	return bot, nil
}
