package main

import (
	"context"
	"flag"
	"log/slog"

	"timekeeper/bot"
	"timekeeper/bot/scenario"
	"timekeeper/bot/scenario/clientreport"
	"timekeeper/bot/scenario/worktime"
	"timekeeper/entity"
	"timekeeper/internal/config"
	"timekeeper/internal/http-server/api"
	"timekeeper/internal/lib/logger"
	"timekeeper/internal/lib/sl"
	"timekeeper/internal/repository"
	"timekeeper/internal/service/app"
	"timekeeper/internal/sheets"
	"timekeeper/internal/storage"
)

// noopNotifier is used when the Telegram transport is disabled.
type noopNotifier struct{}

func (noopNotifier) Notify(context.Context, string, *entity.User) error { return nil }

func main() {

	configPath := flag.String("conf", "config.yml", "path to config file")
	flag.Parse()

	conf := config.MustLoad(*configPath)
	lg := logger.SetupLogger(conf.Env)

	lg.Info("starting timekeeper", slog.String("config", *configPath), slog.String("env", conf.Env))
	lg.Debug("debug messages enabled")

	cache, err := storage.New(conf, lg)
	if err != nil {
		lg.With(sl.Err(err)).Error("redis client")
		return
	}
	lg.With(slog.String("addr", conf.Redis.Addr)).Info("redis client initialized")

	sheetsService, err := sheets.NewService(context.Background(), conf.Google.CredsFile, lg)
	if err != nil {
		lg.With(sl.Err(err)).Error("sheets service")
		return
	}
	lg.With(
		sl.Secret("spreadsheet_id", conf.Google.SpreadsheetId),
	).Info("sheets service initialized")

	repo := repository.New(conf, cache, sheetsService, lg)

	var notifier scenario.Notifier
	var tgBot *bot.TgBot
	if conf.Telegram.Enabled {
		tgBot, err = bot.NewTgBot(conf.Telegram.BotName, conf.Telegram.ApiKey, lg)
		if err != nil {
			lg.With(sl.Err(err)).Error("failed to initialize telegram bot")
			return
		}
		notifier = tgBot.Notifier()
		lg.With(
			slog.String("bot_name", conf.Telegram.BotName),
		).Info("telegram bot initialized")
	} else {
		notifier = noopNotifier{}
	}

	application := app.New(repo, notifier, lg)
	application.Register(app.MenuTimeReport, worktime.New(repo, notifier, lg))
	application.Register(app.MenuClientReport, clientreport.New(repo, notifier, lg))

	if tgBot != nil {
		tgBot.SetApplication(application)
		go func() {
			if err := tgBot.Start(); err != nil {
				lg.With(sl.Err(err)).Error("telegram bot error")
			}
		}()
	}

	// *** blocking start with http server ***
	err = api.New(conf, lg, repo)
	if err != nil {
		lg.With(sl.Err(err)).Error("api server")
	}
}
