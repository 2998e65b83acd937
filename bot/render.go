package bot

import (
	"fmt"
	"log/slog"
	"strings"

	tgbotapi "github.com/PaulSonOfLars/gotgbot/v2"
	"github.com/PaulSonOfLars/gotgbot/v2/ext"

	"timekeeper/bot/ui"
	"timekeeper/entity"
	"timekeeper/internal/lib/sl"
)

// renderResponse turns a response union into Telegram sends. The switch is
// exhaustive over the response types; a tag this transport does not know is
// a programming error, not an input error, hence the panic.
func (t *TgBot) renderResponse(b *tgbotapi.Bot, ctx *ext.Context, chatID int64, response entity.Response) error {
	switch response.Type {
	case entity.TypeTextMessages:
		return t.sendTexts(b, chatID, response.Text.Messages)

	case entity.TypeReplyKeyboard:
		payload := response.ReplyKeyboard
		if err := t.sendTexts(b, chatID, head(payload.Messages)); err != nil {
			return err
		}
		return t.send(b, chatID, last(payload.Messages), &tgbotapi.SendMessageOpts{
			ReplyMarkup: ui.ReplyKeyboard(payload),
		})

	case entity.TypeCalendar:
		payload := response.Calendar
		if err := t.sendTexts(b, chatID, head(payload.Messages)); err != nil {
			return err
		}
		return t.send(b, chatID, last(payload.Messages), &tgbotapi.SendMessageOpts{
			ReplyMarkup: ui.Calendar(payload.Year, payload.Month, payload.SkipCalendar),
		})

	case entity.TypeInlineKeyboard:
		return t.renderInline(b, ctx, chatID, response.InlineKeyboard)

	case entity.TypeFinal:
		// The conversation is over; the top-level menu applies again.
		menu, err := t.app.Menu(nil)
		if err != nil {
			return err
		}
		return t.renderResponse(b, ctx, chatID, menu)

	default:
		panic(fmt.Sprintf("unhandled response type %q", response.Type))
	}
}

// renderInline sends or edits an inline keyboard message. Editing replaces
// the text and markup of the message the callback arrived on, which keeps
// pagination in a single message instead of a growing thread.
func (t *TgBot) renderInline(b *tgbotapi.Bot, ctx *ext.Context, chatID int64, payload *entity.InlineKeyboardResponse) error {
	markup := ui.InlineKeyboard(payload.Inlines)

	if payload.EditReplyKeyboard && ctx != nil && ctx.EffectiveMessage != nil {
		_, _, err := ctx.EffectiveMessage.EditText(b, strings.Join(payload.Messages, "\n\n"), &tgbotapi.EditMessageTextOpts{
			ReplyMarkup: markup,
		})
		if err != nil {
			t.log.Warn("editing message",
				slog.Int64("chat_id", chatID),
				sl.Err(err),
			)
			return fmt.Errorf("editing message: %w", err)
		}
		return nil
	}

	messages := payload.Messages
	if payload.DeleteReplyKeyboard && len(messages) > 1 {
		if err := t.send(b, chatID, messages[0], &tgbotapi.SendMessageOpts{
			ReplyMarkup: ui.RemoveKeyboard(),
		}); err != nil {
			return err
		}
		messages = messages[1:]
	}

	if err := t.sendTexts(b, chatID, head(messages)); err != nil {
		return err
	}
	return t.send(b, chatID, last(messages), &tgbotapi.SendMessageOpts{
		ReplyMarkup: markup,
	})
}

func (t *TgBot) sendTexts(b *tgbotapi.Bot, chatID int64, messages []string) error {
	for _, text := range messages {
		if err := t.send(b, chatID, text, nil); err != nil {
			return err
		}
	}
	return nil
}

func (t *TgBot) send(b *tgbotapi.Bot, chatID int64, text string, opts *tgbotapi.SendMessageOpts) error {
	if text == "" {
		t.log.Debug("empty message", slog.Int64("chat_id", chatID))
		return nil
	}

	_, err := b.SendMessage(chatID, text, opts)
	if err != nil {
		t.log.Error("sending message",
			slog.Int64("chat_id", chatID),
			sl.Err(err),
		)
		return fmt.Errorf("sending message: %w", err)
	}
	return nil
}

func head(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}
	return messages[:len(messages)-1]
}

func last(messages []string) string {
	if len(messages) == 0 {
		return ""
	}
	return messages[len(messages)-1]
}
