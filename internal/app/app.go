package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/letsgomakkah/voucher/internal/config"
	"github.com/letsgomakkah/voucher/internal/mailer"
	"github.com/letsgomakkah/voucher/internal/siteconfig"
	"github.com/letsgomakkah/voucher/internal/voucher"
)

type App struct {
	config   *config.Config
	logger   *slog.Logger
	site     *siteconfig.Site
	vouchers *voucher.Service
}

func New(args []string) (*App, error) {
	cfg, err := config.Load(args)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	logger := newLogger(cfg)

	site, err := siteconfig.Load(cfg.SiteConfigPath)
	if err != nil {
		return nil, fmt.Errorf("loading site config: %w", err)
	}

	if !cfg.MailerConfigured() {
		logger.Warn("POSTMARK_SERVER_TOKEN is not set; voucher emails will fail until it is configured")
	}

	return newApp(cfg, logger, site, newSender(cfg, logger)), nil
}

func newApp(cfg *config.Config, logger *slog.Logger, site *siteconfig.Site, sender mailer.Sender) *App {
	vouchers := voucher.NewService(voucher.Config{
		ServerToken: cfg.PostmarkServerToken,
		FromEmail:   cfg.FromEmail,
		Timeout:     cfg.SendTimeout,
	}, sender, logger)

	return &App{
		config:   cfg,
		logger:   logger,
		site:     site,
		vouchers: vouchers,
	}
}

func newSender(cfg *config.Config, logger *slog.Logger) mailer.Sender {
	if cfg.MailerDriver == "log" {
		logger.Info("using log mailer; emails will not be delivered")
		return mailer.NewLog(logger)
	}
	return mailer.NewPostmark(cfg.PostmarkServerToken, cfg.PostmarkAccountToken)
}

func (app *App) Start(ctx context.Context) error {
	// Create an errgroup derived from the parent context
	g, gctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", app.config.Port),
		Handler:           app.routes(),
		IdleTimeout:       time.Minute,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		// Covers the provider call, which is bounded by SendTimeout.
		WriteTimeout: app.config.SendTimeout + 15*time.Second,
		ErrorLog:     slog.NewLogLogger(app.logger.Handler(), slog.LevelError),
	}

	g.Go(func() error {
		app.logger.Info("starting server", "addr", srv.Addr, "env", app.config.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done() // Wait for OS signal or the listener to fail

		app.logger.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	app.logger.Info("stopped server")
	return nil
}

func newLogger(cfg *config.Config) *slog.Logger {
	logLevel := slog.LevelInfo

	if cfg.IsDevelopment() {
		logLevel = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{Level: logLevel}

	var handler slog.Handler = slog.NewTextHandler(os.Stdout, opts)
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}
