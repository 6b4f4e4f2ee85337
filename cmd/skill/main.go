package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bitbucket.org/sotavant/alexa-aura-skill/internal/completion"
	"bitbucket.org/sotavant/alexa-aura-skill/internal/logger"
	"bitbucket.org/sotavant/alexa-aura-skill/internal/skill"
	"go.uber.org/zap"
)

const shutdownTimeout = 5 * time.Second

func main() {
	cfg, err := parseFlags(os.Args[1:])
	if err != nil {
		panic(err)
	}

	if err := run(cfg); err != nil {
		panic(err)
	}
}

func run(cfg config) error {
	if err := logger.Initialize(cfg.LogLevel); err != nil {
		return err
	}
	defer func() { _ = logger.Log.Sync() }()

	if cfg.Completion.APIKey == "" {
		logger.Log.Warn("OPENROUTER_API_KEY is not set, fallback turns will answer with an apology")
	}

	client := completion.NewClient(cfg.Completion)
	appInstance := newApp(skill.New(client, cfg.SlotName))

	srv := &http.Server{
		Addr:    cfg.RunAddr,
		Handler: appInstance.router(),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		logger.Log.Info("Running server",
			zap.String("address", cfg.RunAddr),
			zap.String("model", cfg.Completion.Model),
			zap.String("completion_url", cfg.Completion.BaseURL),
		)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Log.Info("shutting down server")

	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return srv.Shutdown(sctx)
}
