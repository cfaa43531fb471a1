package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/marikeiske/datekeeper-plus/internal/api"
	events_service "github.com/marikeiske/datekeeper-plus/internal/business/events"
	"github.com/marikeiske/datekeeper-plus/internal/config"
	"github.com/marikeiske/datekeeper-plus/internal/holidays"
	"github.com/marikeiske/datekeeper-plus/internal/notifications"
	"github.com/xlab/closer"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	once := flag.Bool("once", false, "run a single dispatch pass, print its summary and exit")
	flag.Parse()

	ctx := context.Background()

	logger, err := initLogger()
	if err != nil {
		log.Fatalf("unable to initializae logger: %v", err)
	}

	repos, err := initRepositories(ctx)
	if err != nil {
		logger.Fatalw("unable to initialize storage", "storage", config.Storage(), "err", err)
	}

	notifier, err := initNotifier(ctx, logger)
	if err != nil {
		logger.Fatalw("unable to initialize notifier", "notifier", config.Notifier(), "err", err)
	}

	sender := notifications.NewSender(repos.db, logger, repos.reminders, notifier, initLock(logger))

	if *once {
		runOnce(ctx, logger, sender)
		return
	}

	var holidayCalendar *holidays.Calendar
	if path := config.HolidaysPath(); path != "" {
		holidayCalendar, err = holidays.Load(path, config.Location(), config.HolidayColor())
		if err != nil {
			logger.Fatalw("unable to load holidays", "path", path, "err", err)
		}
	}

	eventsService := events_service.NewService(repos.db, repos.events, holidayCalendar)

	scheduler := notifications.NewScheduler(logger, sender)
	if err := scheduler.Start(ctx, config.DispatchSchedule()); err != nil {
		logger.Fatalw("unable to start scheduler", "err", err)
	}

	api, err := api.NewApi(
		logger,
		repos.db,
		repos.users,
		eventsService,
		sender,
	)
	if err != nil {
		logger.Fatalw("unable to initialize api", "err", err)
	}

	errLogger, err := zap.NewStdLogAt(logger.Desugar(), zap.ErrorLevel)
	if err != nil {
		logger.Fatalw("error initiating server logger", "err", err)
	}

	server := &http.Server{
		Addr:              ":" + config.Port(),
		Handler:           api,
		ErrorLog:          errLogger,
		ReadHeaderTimeout: 10 * time.Second,
	}

	closer.Bind(func() {
		shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	})

	go func() {
		logger.Infow("Started server", "port", config.Port())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Errorw("server error", "err", err)
			closer.Close()
		}
	}()

	closer.Hold()
}

func runOnce(ctx context.Context, logger *zap.SugaredLogger, sender *notifications.Sender) {
	report, err := sender.Dispatch(ctx, time.Now())
	if err != nil {
		logger.Errorw("dispatch pass failed", "err", err)
		closer.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		logger.Errorw("failed to print report", "err", err)
	}

	closer.Close()
}

func initLogger() (*zap.SugaredLogger, error) {
	var logger *zap.Logger
	var err error

	if config.Production() {
		logger, err = zap.NewProduction()
	} else {
		conf := zap.NewDevelopmentConfig()
		conf.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		logger, err = conf.Build()
	}

	if err != nil {
		return nil, err
	}

	closer.Bind(func() {
		_ = logger.Sync()
	})

	return logger.Sugar(), nil
}
