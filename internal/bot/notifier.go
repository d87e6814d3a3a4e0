package bot

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"todo-app/internal/logger"
)

// Sender delivers a rendered digest somewhere.
type Sender interface {
	Send(ctx context.Context, text string) error
}

// Notifier pushes HTML messages to a single Telegram chat.
type Notifier struct {
	api    *tgbotapi.BotAPI
	chatID int64
	log    *logger.Logger
}

// NewNotifier authorizes token against the public Bot API.
func NewNotifier(token string, chatID int64, log *logger.Logger) (*Notifier, error) {
	return NewNotifierWithEndpoint(token, chatID, tgbotapi.APIEndpoint, &http.Client{}, log)
}

// NewNotifierWithEndpoint is NewNotifier against a custom API endpoint,
// formatted as in tgbotapi.APIEndpoint.
func NewNotifierWithEndpoint(token string, chatID int64, endpoint string, client tgbotapi.HTTPClient, log *logger.Logger) (*Notifier, error) {
	if strings.TrimSpace(token) == "" {
		return nil, errors.New("telegram token is empty")
	}
	if chatID == 0 {
		return nil, errors.New("telegram chat id is empty")
	}
	if log == nil {
		log = logger.Nop()
	}
	api, err := tgbotapi.NewBotAPIWithClient(token, endpoint, client)
	if err != nil {
		return nil, fmt.Errorf("create bot api: %w", err)
	}
	log = log.WithComponent("telegram")
	log.Infow("bot authorized", "account", api.Self.UserName)
	return &Notifier{api: api, chatID: chatID, log: log}, nil
}

// Send posts text to the configured chat. Text is HTML; empty text is skipped.
func (n *Notifier) Send(ctx context.Context, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := tgbotapi.NewMessage(n.chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = true
	if _, err := n.api.Send(msg); err != nil {
		return fmt.Errorf("send to %d: %w", n.chatID, err)
	}
	n.log.Debugw("digest sent", "chat", n.chatID, "bytes", len(text))
	return nil
}
