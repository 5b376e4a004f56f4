package main

import (
	"SchoolQL/bot"
	"SchoolQL/impl/core"
	"SchoolQL/internal/config"
	"SchoolQL/internal/database"
	"SchoolQL/internal/http-server/api"
	"SchoolQL/internal/lib/logger"
	"SchoolQL/internal/lib/metrics"
	"SchoolQL/internal/lib/sl"
	"SchoolQL/internal/ws"
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
)

func main() {

	configPath := flag.String("conf", "config.yml", "path to config file")
	logPath := flag.String("log", "/var/log/", "path to log file directory")
	flag.Parse()

	conf := config.MustLoad(*configPath)
	lg := logger.SetupLogger(conf.Env, *logPath)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize Telegram bot if enabled
	var tgBot *bot.TgBot
	if conf.Telegram.Enabled {
		var err error
		tgBot, err = bot.NewTgBot(conf.Telegram.BotName, conf.Telegram.ApiKey, conf.Telegram.AdminId, lg)
		if err != nil {
			lg.Error("failed to initialize telegram bot", sl.Err(err))
		} else {
			lg = logger.SetupTelegramHandler(lg, tgBot, slog.LevelError)
			lg.With(
				slog.String("bot_name", conf.Telegram.BotName),
			).Info("telegram bot initialized")

			go func() {
				if err := tgBot.Start(ctx); err != nil {
					lg.Error("telegram bot error", sl.Err(err))
				}
			}()
		}
	}

	lg.Info("starting schoolql", slog.String("config", *configPath), slog.String("env", conf.Env))
	lg.Debug("debug messages enabled")

	var m *metrics.Metrics
	if conf.Metrics.Enabled {
		m = metrics.New()
	}

	store, err := repository.New(ctx, conf, lg)
	if err != nil {
		lg.Error("store setup", slog.String("driver", conf.Store.Driver), sl.Err(err))
		return
	}
	defer func() {
		if err := store.Close(); err != nil {
			lg.Warn("store close", sl.Err(err))
		}
	}()

	repo := repository.NewInstrumented(store, m)
	// the collection document must exist before any operation runs
	if err = repo.Init(ctx); err != nil {
		lg.Error("store init", slog.String("driver", conf.Store.Driver), sl.Err(err))
		return
	}
	lg.With(
		slog.String("driver", conf.Store.Driver),
	).Info("store initialized")

	handler := core.New(lg)
	handler.SetRepository(repo)
	handler.SetMetrics(m)
	handler.SetAuthKey(conf.Listen.ApiKey)
	if conf.Listen.ApiKey != "" {
		lg.Info("api key authentication enabled", sl.Secret("key", conf.Listen.ApiKey))
	}

	hub := ws.NewHub(lg)
	go hub.Run(ctx)
	handler.SetEventPublisher(hub)

	if tgBot != nil {
		tgBot.SetCore(handler)
	}

	// *** blocking start with http server ***
	err = api.New(ctx, conf, lg, handler, hub, m)
	if err != nil {
		lg.Error("server start", sl.Err(err))
		return
	}
	lg.Info("service stopped")
}
