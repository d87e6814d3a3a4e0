package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"todo-app/internal/bot"
	"todo-app/internal/cli"
	"todo-app/internal/config"
	"todo-app/internal/logger"
	"todo-app/internal/repository"
	"todo-app/internal/service"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "todo:", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer log.Close()

	db, err := repository.NewDB(cfg.DatabaseURL, log)
	if err != nil {
		return fmt.Errorf("db: %w", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	store := repository.NewTaskStore(repository.NewKVRepository(db), cfg.StorageKey, log)
	taskSvc := service.NewTaskService(store, func() time.Time { return time.Now().In(loc) }, log)
	taskSvc.Load(ctx)

	cli.SetVersionInfo(version, commit, date)
	cli.TaskSvc = taskSvc
	cli.DigestSvc = service.NewDigestService(taskSvc)
	cli.AppConfig = cfg
	cli.Log = log
	cli.Location = loc

	if cfg.Telegram.Enabled() {
		notifier, err := bot.NewNotifier(cfg.Telegram.Token, cfg.Telegram.ChatID, log)
		if err != nil {
			// Local commands keep working without the bot.
			log.WithError(err).Warnw("telegram notifier disabled")
		} else {
			cli.Notifier = notifier
		}
	}

	return cli.Execute(ctx)
}
