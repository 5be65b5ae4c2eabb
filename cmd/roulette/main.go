package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/PaulSonOfLars/gotgbot/v2"
	"github.com/PaulSonOfLars/gotgbot/v2/ext"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"cli-roulette/internal/config"
	"cli-roulette/internal/handlers"
	"cli-roulette/internal/logger"
	"cli-roulette/internal/repository"
	"cli-roulette/internal/roulette"
	"cli-roulette/internal/service"
	"cli-roulette/internal/telegram"
	"cli-roulette/internal/terminal"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	rules, err := config.LoadRules(cfg.RulesPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	log, err := logger.New(cfg.LogPath, cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer log.Sync()

	store, err := openStore(cfg, log)
	if err != nil {
		log.Error("opening store failed", zap.Error(err))
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer store.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	presenter, shutdown, err := openFrontend(cfg, log)
	if err != nil {
		log.Error("starting frontend failed", zap.Error(err))
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer shutdown()

	highscores := service.NewHighscoreService(repository.NewHighscoreRepo(store), log)
	sessions := service.NewSessionService(
		service.NewPlayerService(repository.NewPlayerRepo(store, rules.StartingBalance), highscores, rules, log),
		service.NewBankService(repository.NewBankRepo(store), log, time.Now),
		highscores,
		repository.NewResultsRepo(store),
		roulette.NewResolver(rules.Payouts),
		roulette.NewWheel(cfg.Seed),
		time.Now,
		log,
	)

	report, err := sessions.Run(ctx, presenter)
	if err != nil {
		if errors.Is(err, service.ErrAborted) || errors.Is(err, context.Canceled) {
			log.Info("session aborted before start")
			return 0
		}
		log.Error("session failed", zap.String("session", report.ID), zap.Error(err))
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	log.Info("bye",
		zap.String("session", report.ID),
		zap.String("player", report.Player),
		zap.String("exit", string(report.Exit)),
		zap.Int64("money", report.FinalMoney),
	)
	return 0
}

func openStore(cfg *config.Config, log *zap.Logger) (repository.DocumentStore, error) {
	if cfg.Store == config.StoreFile {
		return repository.NewFileStore(cfg.DataDir, log)
	}

	db, err := sql.Open("sqlite3", cfg.DBPath)
	if err != nil {
		return nil, err
	}
	if err := repository.Migrate(db, repository.Migrations(), log); err != nil {
		db.Close()
		return nil, fmt.Errorf("db migration failed: %w", err)
	}
	return repository.NewSQLiteStore(db, log), nil
}

func openFrontend(cfg *config.Config, log *zap.Logger) (service.Presenter, func(), error) {
	if cfg.Frontend == config.FrontendTerminal {
		return terminal.New(cfg.Pacing), func() {}, nil
	}

	b, err := gotgbot.NewBot(cfg.BotToken, nil)
	if err != nil {
		return nil, nil, err
	}
	prompter := telegram.NewPrompter(telegram.BotSender{Bot: b}, cfg.ChatID, cfg.Pacing, log)

	dispatcher := ext.NewDispatcher(&ext.DispatcherOpts{
		Error: func(b *gotgbot.Bot, ctx *ext.Context, err error) ext.DispatcherAction {
			log.Warn("an error occurred while handling update", zap.Error(err))
			return ext.DispatcherActionNoop
		},
		MaxRoutines: ext.DefaultMaxRoutines,
	})
	updater := ext.NewUpdater(dispatcher, &ext.UpdaterOpts{})
	dispatcher.AddHandler(handlers.GetReplyHandler(prompter))

	err = updater.StartPolling(b, &ext.PollingOpts{
		DropPendingUpdates:    true,
		EnableWebhookDeletion: true,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to start polling: %w", err)
	}
	log.Info("bot has been started", zap.String("bot_username", b.User.Username), zap.Int64("chat_id", cfg.ChatID))

	shutdown := func() {
		prompter.Close()
		if err := updater.Stop(); err != nil {
			log.Warn("stopping updater failed", zap.Error(err))
		}
	}
	return prompter, shutdown, nil
}
