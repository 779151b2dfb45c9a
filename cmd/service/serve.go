package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"motor-prediction-api/internal/api"
	"motor-prediction-api/internal/bus"
	"motor-prediction-api/internal/config"
	"motor-prediction-api/internal/logging"
)

const shutdownTimeout = 10 * time.Second

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the HTTP prediction service",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "host",
				Value:   config.DefaultHost,
				Usage:   "Interface to bind",
				EnvVars: []string{"HOST"},
			},
			&cli.StringFlag{
				Name:    "port",
				Value:   config.DefaultPort,
				Usage:   "Port to listen on",
				EnvVars: []string{"PORT"},
			},
			&cli.StringFlag{
				Name:    "nats-url",
				Usage:   "NATS server for anomaly events; publishing is off when empty",
				EnvVars: []string{"NATS_URL"},
			},
			&cli.StringFlag{
				Name:    "anomaly-subject",
				Value:   config.DefaultAnomalySubject,
				Usage:   "Subject anomaly events are published to",
				EnvVars: []string{"ANOMALY_SUBJECT"},
			},
			&cli.BoolFlag{
				Name:    "access-log",
				Usage:   "Write an access log line per request to stdout",
				EnvVars: []string{"ACCESS_LOG"},
			},
			&cli.DurationFlag{
				Name:    "request-timeout",
				Value:   config.DefaultRequestTimeout,
				Usage:   "Per request timeout, 0 disables it",
				EnvVars: []string{"REQUEST_TIMEOUT"},
			},
		},
		Action: runServe,
	}
}

func runServe(c *cli.Context) error {
	cfg := config.Config{
		Host:           c.String("host"),
		Port:           c.String("port"),
		RulesPath:      c.String("rules"),
		NATSURL:        c.String("nats-url"),
		AnomalySubject: c.String("anomaly-subject"),
		LogLevel:       c.String("log-level"),
		AccessLog:      c.Bool("access-log"),
		RequestTimeout: c.Duration("request-timeout"),
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	logger, err := logging.New(os.Stdout, cfg.LogLevel)
	if err != nil {
		return err
	}

	scorer, source, err := buildScorer(cfg.RulesPath)
	if err != nil {
		return err
	}
	handler := &api.Handler{
		Scorer:  scorer,
		Logger:  logger,
		Version: version,
	}
	if cfg.NATSURL != "" {
		publisher, err := bus.NewPublisher(cfg.NATSURL)
		if err != nil {
			return fmt.Errorf("connect to nats: %w", err)
		}
		defer publisher.Close()
		handler.Events = publisher
		handler.AnomalySubject = cfg.AnomalySubject
	}

	opts := api.RouterOptions{Timeout: cfg.RequestTimeout}
	if cfg.AccessLog {
		opts.AccessLog = c.App.Writer
	}
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           api.NewRouter(handler, opts),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("motor-prediction-api listening",
		slog.String("addr", cfg.Addr()),
		slog.String("rules", source),
		slog.Bool("events", handler.Events != nil))
	return serve(ctx, srv, logger)
}

// serve runs srv until it fails or ctx is done, then shuts it down gracefully.
func serve(ctx context.Context, srv *http.Server, logger *slog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
