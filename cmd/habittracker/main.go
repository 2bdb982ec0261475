package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"habit-tracker/internal/bot"
	"habit-tracker/internal/config"
	"habit-tracker/internal/handler"
	"habit-tracker/internal/logger"
	"habit-tracker/internal/middleware"
	"habit-tracker/internal/repository"
	"habit-tracker/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "habit-tracker: %v\n", err)
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

	l, err := logger.New(logger.Config{Level: cfg.LogLevel, File: cfg.LogFile})
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}

	db, err := repository.NewDB(cfg.DatabaseURL, l)
	if err != nil {
		return fmt.Errorf("db: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("db: %w", err)
	}
	defer sqlDB.Close()
	l.Info("database ready", "dsn", cfg.DatabaseURL)

	clock := service.NewClock(cfg.Location)
	habitSvc := service.NewHabitService(repository.NewHabitRepository(db))
	logSvc := service.NewLogService(habitSvc, repository.NewLogRepository(db), clock)
	recSvc := service.NewRecommendationService(habitSvc, logSvc, clock)

	notifiers := []service.Notifier{service.LogNotifier{Logger: l}}
	if cfg.BotEnabled() {
		telegramBot, err := bot.New(cfg.TelegramToken, cfg.TelegramChatIDs, habitSvc, logSvc, recSvc, l)
		if err != nil {
			return fmt.Errorf("bot: %w", err)
		}
		notifiers = append(notifiers, telegramBot)
		go func() {
			if err := telegramBot.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				l.Error("bot stopped", "err", err)
			}
		}()
	}
	digest := service.NewDigestService(recSvc, notifiers...)

	if cfg.DigestTime != "" {
		scheduler := service.NewSchedulerService(cfg.Location, l)
		if _, err := scheduler.ScheduleDaily(cfg.DigestTime, func() {
			jobCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
			defer cancel()
			if err := digest.Run(jobCtx); err != nil && !errors.Is(err, context.Canceled) {
				l.Error("digest", "err", err)
			}
		}); err != nil {
			return fmt.Errorf("schedule digest: %w", err)
		}
		scheduler.Start()
		defer scheduler.Stop()
		l.Info("daily digest scheduled", "at", cfg.DigestTime, "zone", cfg.Location)
	}

	middleware.Register(prometheus.DefaultRegisterer)
	limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	go limiter.Cleanup(ctx)

	router := handler.NewRouter(handler.Routes{
		Habits:          handler.NewHabitHandler(habitSvc, l),
		Logs:            handler.NewLogHandler(logSvc, l),
		Recommendations: handler.NewRecommendationHandler(recSvc, l),
		Ping:            sqlDB.PingContext,
		Metrics:         middleware.BasicAuth(cfg.MetricsUser, cfg.MetricsPass, promhttp.Handler()),
		StaticDir:       cfg.StaticDir,
		Middleware: []mux.MiddlewareFunc{
			middleware.RequestLogger(l),
			limiter.Middleware,
			middleware.Monitor,
		},
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		l.Info("starting server", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server: %w", err)
	case <-ctx.Done():
	}

	l.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	l.Info("shutdown complete")
	return nil
}
