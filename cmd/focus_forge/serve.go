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

	"focus_forge/internal/ai"
	"focus_forge/internal/auth"
	"focus_forge/internal/config"
	"focus_forge/internal/handlers"
	"focus_forge/internal/logger"
	"focus_forge/internal/ratelimit"
	"focus_forge/internal/storage"
	"focus_forge/internal/usecases"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 15 * time.Second

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API (default)",
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.New()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	log, err := logger.New(logger.Options{Level: cfg.LogLevel, File: cfg.LogFile})
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	pool, err := storage.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Errorw("unable to connect to db", "error", err)
		return err
	}
	defer pool.Close()
	log.Info("connected to db successfully")

	if err := storage.Migrate(ctx, pool); err != nil {
		log.Errorw("migration failed", "error", err)
		return err
	}

	stores := storage.NewStores(pool)

	gen, err := ai.New(ctx, cfg)
	switch {
	case errors.Is(err, ai.ErrNotConfigured):
		log.Warnw("AI provider has no API key; check-ins use fallback advice", "provider", cfg.AIProvider)
		gen = nil
	case err != nil:
		return fmt.Errorf("ai client: %w", err)
	default:
		log.Infow("AI provider ready", "provider", cfg.AIProvider)
	}

	limiter, closeLimiter, err := newLimiter(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeLimiter()

	var calendar handlers.Calendar
	if cfg.GoogleCredentialsFile != "" {
		gc, err := storage.NewGoogleCalendar(cfg.GoogleCredentialsFile, cfg.GoogleRedirectURL, stores.CalendarTokens)
		if err != nil {
			return fmt.Errorf("google calendar: %w", err)
		}
		calendar = gc
		log.Info("google calendar integration enabled")
	}

	engine := &usecases.ContextEngine{
		Moods:    stores.Moods,
		Tasks:    stores.Tasks,
		Goals:    stores.Goals,
		Stats:    stores.Stats,
		Focus:    stores.Focus,
		Themes:   usecases.ThemeRules(cfg.Tuning.Themes),
		Location: cfg.Location,
	}

	router := handlers.NewRouter(handlers.Deps{
		Log:              log,
		Moods:            stores.Moods,
		Tasks:            stores.Tasks,
		Goals:            stores.Goals,
		Focus:            stores.Focus,
		Inbox:            stores.Inbox,
		Weekly:           stores.Weekly,
		Stats:            stores.Stats,
		DB:               pool,
		Engine:           engine,
		AI:               gen,
		Calendar:         calendar,
		Verifier:         auth.NewVerifier(cfg.JWTSecret),
		Limiter:          limiter,
		IPLimitPerMinute: cfg.IPLimitPerMinute,
		AILimitPerHour:   cfg.AILimitPerHour,
		Weights:          usecases.MergeWeights(cfg.Tuning.Weights),
		Location:         cfg.Location,
	})

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.AITimeout + 15*time.Second,
		IdleTimeout:       time.Minute,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infow("listening", "addr", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.Errorw("fail listen and serve", "error", err)
			return err
		}
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// newLimiter picks Redis when configured and the in-process limiter
// otherwise.
func newLimiter(ctx context.Context, cfg *config.Config, log *zap.SugaredLogger) (ratelimit.Limiter, func(), error) {
	if cfg.RedisAddr == "" {
		mem := ratelimit.NewMemoryLimiter(time.Minute)
		log.Info("using in-memory rate limiter")
		return mem, mem.Stop, nil
	}

	client, err := ratelimit.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		return nil, nil, fmt.Errorf("redis: %w", err)
	}
	log.Infow("using redis rate limiter", "addr", cfg.RedisAddr)
	return ratelimit.NewRedisLimiter(client), func() { _ = client.Close() }, nil
}
