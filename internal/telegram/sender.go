package telegram

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/go-telegram/bot"
)

var ErrDisabled = errors.New("telegram delivery disabled: no bot token configured")

// Sender delivers activation keys through the Telegram Bot API. A Sender
// built without a token is disabled and fails every send; callers treat
// delivery as best-effort, so this degrades to "buyer retrieves the key
// another way" rather than breaking payment confirmation.
type Sender struct {
	bot         *bot.Bot
	adminChatID int64
}

func NewSender(token string, adminChatID int64) (*Sender, error) {
	if token == "" {
		return &Sender{}, nil
	}

	b, err := bot.New(token)
	if err != nil {
		return nil, fmt.Errorf("create bot: %w", err)
	}
	return &Sender{bot: b, adminChatID: adminChatID}, nil
}

func (s *Sender) Enabled() bool {
	return s.bot != nil
}

func (s *Sender) SendActivationKey(ctx context.Context, chatID, packageID, code string) error {
	if s.bot == nil {
		return ErrDisabled
	}

	id, err := strconv.ParseInt(chatID, 10, 64)
	if err != nil {
		return fmt.Errorf("parse chat id %q: %w", chatID, err)
	}

	text := fmt.Sprintf(
		"✅ Payment confirmed!\n\nPackage: %s\nActivation key:\n\n%s\n\nSend this key back to the bot to activate your package.",
		packageID, code,
	)

	_, err = s.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: id,
		Text:   text,
	})
	if err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	return nil
}

// NotifyAdmin posts an operational notice to the configured admin chat.
func (s *Sender) NotifyAdmin(ctx context.Context, text string) error {
	if s.bot == nil {
		return ErrDisabled
	}
	if s.adminChatID == 0 {
		return nil
	}

	_, err := s.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: s.adminChatID,
		Text:   text,
	})
	if err != nil {
		return fmt.Errorf("send admin message: %w", err)
	}
	return nil
}
