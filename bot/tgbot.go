// Package bot is the Telegram transport: it polls for updates, gates them
// through the session lookup and feeds them to the application dispatcher.
package bot

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"time"

	tgbotapi "github.com/PaulSonOfLars/gotgbot/v2"
	"github.com/PaulSonOfLars/gotgbot/v2/ext"
	"github.com/PaulSonOfLars/gotgbot/v2/ext/handlers"
	"github.com/PaulSonOfLars/gotgbot/v2/ext/handlers/filters/message"

	"timekeeper/bot/scenario"
	"timekeeper/bot/ui"
	"timekeeper/entity"
	"timekeeper/internal/lib/sl"
	"timekeeper/internal/service/app"
)

const replySomethingWrong = "Что-то пошло не так, попробуйте еще раз"

// TgBot polls Telegram and routes every update into the application.
type TgBot struct {
	log         *slog.Logger
	api         *tgbotapi.Bot
	botUsername string
	app         *app.Application
}

func NewTgBot(botName, apiKey string, log *slog.Logger) (*TgBot, error) {
	tgBot := &TgBot{
		log:         log.With(sl.Module("tgbot")),
		botUsername: botName,
	}

	api, err := tgbotapi.NewBot(apiKey, nil)
	if err != nil {
		return nil, fmt.Errorf("creating api instance: %v", err)
	}
	tgBot.api = api

	return tgBot, nil
}

// SetApplication binds the dispatcher the bot routes updates into.
func (t *TgBot) SetApplication(a *app.Application) {
	t.app = a
}

// Notifier returns a notifier bound to this bot's api.
func (t *TgBot) Notifier() scenario.Notifier {
	return NewNotifier(t.api, t.log)
}

// Start begins polling for updates and blocks until the updater stops.
func (t *TgBot) Start() error {
	dispatcher := ext.NewDispatcher(&ext.DispatcherOpts{
		// If an error is returned by a handler, log it and continue going.
		Error: func(b *tgbotapi.Bot, ctx *ext.Context, err error) ext.DispatcherAction {
			log.Println("an error occurred while handling update:", err.Error())
			return ext.DispatcherActionNoop
		},
		MaxRoutines: ext.DefaultMaxRoutines,
	})
	updater := ext.NewUpdater(dispatcher, nil)

	dispatcher.AddHandler(handlers.NewCommand("start", t.handleStart))
	dispatcher.AddHandler(handlers.NewCommand("back", t.handleBack))
	dispatcher.AddHandler(handlers.NewCommand("reset", t.handleReset))
	dispatcher.AddHandler(handlers.NewCommand("logout", t.handleLogout))
	dispatcher.AddHandler(handlers.NewCallback(t.calendarCallbackFilter, t.handleCalendar))
	dispatcher.AddHandler(handlers.NewCallback(t.scenarioCallbackFilter, t.handleCallback))
	dispatcher.AddHandler(handlers.NewMessage(message.Text, t.handleMessage))

	err := updater.StartPolling(t.api, &ext.PollingOpts{
		DropPendingUpdates: true,
		GetUpdatesOpts: &tgbotapi.GetUpdatesOpts{
			Timeout: 9,
			RequestOpts: &tgbotapi.RequestOpts{
				Timeout: time.Second * 10,
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to start polling: %w", err)
	}

	t.log.Info("bot started", slog.String("username", t.botUsername))

	// Idle, to keep updates coming in.
	updater.Idle()

	return nil
}

func (t *TgBot) scenarioCallbackFilter(cq *tgbotapi.CallbackQuery) bool {
	return scenario.IsCallback(cq.Data)
}

func (t *TgBot) calendarCallbackFilter(cq *tgbotapi.CallbackQuery) bool {
	return ui.IsCalendarCallback(cq.Data)
}

// handleStart handles the /start command: tears down in-flight state and
// shows the menu, or asks to log in.
func (t *TgBot) handleStart(b *tgbotapi.Bot, ctx *ext.Context) error {
	cctx := context.Background()
	chatID := ctx.EffectiveChat.Id

	user, err := t.app.Auth(cctx, chatID)
	if err != nil {
		return t.reportError(b, ctx, chatID, err)
	}
	response, err := t.app.Start(cctx, user)
	if err != nil {
		return t.reportError(b, ctx, chatID, err)
	}
	return t.renderResponse(b, ctx, chatID, response)
}

func (t *TgBot) handleBack(b *tgbotapi.Bot, ctx *ext.Context) error {
	cctx := context.Background()
	chatID := ctx.EffectiveChat.Id

	user, err := t.app.Auth(cctx, chatID)
	if err != nil {
		return t.reportError(b, ctx, chatID, err)
	}
	response, err := t.app.Back(cctx, user)
	if err != nil {
		return t.reportError(b, ctx, chatID, err)
	}
	return t.renderResponse(b, ctx, chatID, response)
}

func (t *TgBot) handleReset(b *tgbotapi.Bot, ctx *ext.Context) error {
	cctx := context.Background()
	chatID := ctx.EffectiveChat.Id

	user, err := t.app.Auth(cctx, chatID)
	if err != nil {
		return t.reportError(b, ctx, chatID, err)
	}
	response, err := t.app.Reset(cctx, user)
	if err != nil {
		return t.reportError(b, ctx, chatID, err)
	}
	return t.renderResponse(b, ctx, chatID, response)
}

func (t *TgBot) handleLogout(b *tgbotapi.Bot, ctx *ext.Context) error {
	cctx := context.Background()
	chatID := ctx.EffectiveChat.Id

	user, err := t.app.Auth(cctx, chatID)
	if err != nil {
		return t.reportError(b, ctx, chatID, err)
	}
	response, err := t.app.Logout(cctx, user)
	if err != nil {
		return t.reportError(b, ctx, chatID, err)
	}
	return t.renderResponse(b, ctx, chatID, response)
}

// handleMessage routes plain text into the dispatcher.
func (t *TgBot) handleMessage(b *tgbotapi.Bot, ctx *ext.Context) error {
	text := ctx.EffectiveMessage.Text
	return t.dispatch(b, ctx, ctx.EffectiveChat.Id, &text)
}

// handleCallback routes scenario callback tokens as messages; the scenario
// layer parses them itself.
func (t *TgBot) handleCallback(b *tgbotapi.Bot, ctx *ext.Context) error {
	if _, err := ctx.CallbackQuery.Answer(b, nil); err != nil {
		t.log.Debug("answering callback", sl.Err(err))
	}
	data := ctx.CallbackQuery.Data
	return t.dispatch(b, ctx, ctx.EffectiveChat.Id, &data)
}

// handleCalendar resolves calendar widget callbacks: navigation edits the
// widget in place, a picked day turns into a dd.mm.yyyy text message.
func (t *TgBot) handleCalendar(b *tgbotapi.Bot, ctx *ext.Context) error {
	cq := ctx.CallbackQuery
	if _, err := cq.Answer(b, nil); err != nil {
		t.log.Debug("answering callback", sl.Err(err))
	}

	data := ui.ParseCalendarCallback(cq.Data)
	if data == nil {
		t.log.Warn("malformed calendar callback", slog.String("data", cq.Data))
		return nil
	}

	switch data.Action {
	case ui.CalendarIgnore:
		return nil

	case ui.CalendarMove:
		markup := ui.Calendar(data.Year, data.Month, data.WithSkip)
		_, _, err := ctx.EffectiveMessage.EditReplyMarkup(b, &tgbotapi.EditMessageReplyMarkupOpts{
			ReplyMarkup: markup,
		})
		if err != nil {
			t.log.Warn("editing calendar", sl.Err(err))
		}
		return nil

	case ui.CalendarDay:
		t.dropInlineKeyboard(b, ctx)
		date := data.Date
		return t.dispatch(b, ctx, ctx.EffectiveChat.Id, &date)

	case ui.CalendarSkip:
		t.dropInlineKeyboard(b, ctx)
		skip := scenario.Skip
		return t.dispatch(b, ctx, ctx.EffectiveChat.Id, &skip)
	}
	return nil
}

// dispatch runs one message through the session gate and the application,
// then renders whatever came back. Dispatcher errors reach the user as a
// generic failure text instead of silence.
func (t *TgBot) dispatch(b *tgbotapi.Bot, ctx *ext.Context, chatID int64, msg *string) error {
	cctx := context.Background()

	user, err := t.app.Auth(cctx, chatID)
	if err != nil {
		return t.reportError(b, ctx, chatID, err)
	}

	response, err := t.app.Execute(cctx, msg, user, chatID)
	if err != nil {
		return t.reportError(b, ctx, chatID, err)
	}
	return t.renderResponse(b, ctx, chatID, response)
}

func (t *TgBot) reportError(b *tgbotapi.Bot, ctx *ext.Context, chatID int64, err error) error {
	t.log.Error("handling update",
		slog.Int64("chat_id", chatID),
		sl.Err(err),
	)
	return t.renderResponse(b, ctx, chatID, entity.NewTextResponse(replySomethingWrong))
}

func (t *TgBot) dropInlineKeyboard(b *tgbotapi.Bot, ctx *ext.Context) {
	_, _, err := ctx.EffectiveMessage.EditReplyMarkup(b, &tgbotapi.EditMessageReplyMarkupOpts{
		ReplyMarkup: tgbotapi.InlineKeyboardMarkup{InlineKeyboard: [][]tgbotapi.InlineKeyboardButton{}},
	})
	if err != nil {
		t.log.Debug("removing inline keyboard", sl.Err(err))
	}
}
