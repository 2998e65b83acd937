package bot

import (
	"context"
	"fmt"
	"log/slog"

	tgbotapi "github.com/PaulSonOfLars/gotgbot/v2"

	"timekeeper/entity"
	"timekeeper/internal/lib/sl"
)

// Notifier sends out-of-band service messages to a user's chat. Without a
// bound chat it does nothing, so callers can notify unconditionally.
type Notifier struct {
	api *tgbotapi.Bot
	log *slog.Logger
}

func NewNotifier(api *tgbotapi.Bot, log *slog.Logger) *Notifier {
	return &Notifier{
		api: api,
		log: log.With(sl.Module("notifier")),
	}
}

func (n *Notifier) Notify(ctx context.Context, message string, user *entity.User) error {
	if user == nil || !user.HasSession() {
		return nil
	}

	_, err := n.api.SendMessage(user.ChatID, message, nil)
	if err != nil {
		n.log.Warn("sending notification",
			slog.Int64("chat_id", user.ChatID),
			sl.Err(err),
		)
		return fmt.Errorf("sending notification: %w", err)
	}
	return nil
}
