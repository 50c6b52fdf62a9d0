// File path: cmd/surveyforge/serve.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/surveyforge/surveyforge/internal/api"
	"github.com/surveyforge/surveyforge/internal/classify"
	"github.com/surveyforge/surveyforge/internal/common"
	"github.com/surveyforge/surveyforge/internal/config"
	"github.com/surveyforge/surveyforge/internal/knowledge"
	"github.com/surveyforge/surveyforge/internal/llm"
	"github.com/surveyforge/surveyforge/internal/session"
	"github.com/surveyforge/surveyforge/internal/workflow"
)

func serveCmd() *cobra.Command {
	var configPath string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg)
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "config.yaml", "path to the YAML config file")
	return cmd
}

func serve(ctx context.Context, cfg config.Config) error {
	logger := common.Logger()

	provider, err := llm.NewProvider(cfg.LLMOptions())
	if err != nil {
		return fmt.Errorf("serve: %w", err)
	}

	catalog, err := knowledge.Open(ctx, cfg.CatalogPath)
	if err != nil {
		// The workflow degrades to direct entry without the catalog.
		logger.Warn("serve: reference catalog unavailable", "path", cfg.CatalogPath, "error", err)
		catalog = nil
	} else {
		defer catalog.Close()
	}

	store, cleanup, err := newSessionStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	classifier := classify.NewGenerative(provider)
	engine := workflow.NewEngine(workflow.NewSteps(provider, classifier, catalog))
	server := api.NewServer(engine, store)

	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           server.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("serve: listening", "addr", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	logger.Info("serve: shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("serve: shutdown: %w", err)
	}
	return nil
}

func newSessionStore(ctx context.Context, cfg config.Config) (session.Store, func(), error) {
	if cfg.RedisAddr == "" {
		return session.NewMemoryStore(), func() {}, nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, nil, fmt.Errorf("serve: redis %s: %w", cfg.RedisAddr, err)
	}
	var opts []session.RedisOption
	if cfg.SessionTTLHours > 0 {
		opts = append(opts, session.WithTTL(time.Duration(cfg.SessionTTLHours)*time.Hour))
	}
	common.Logger().Info("serve: using redis session store", "addr", cfg.RedisAddr)
	return session.NewRedisStore(client, opts...), func() { client.Close() }, nil
}
