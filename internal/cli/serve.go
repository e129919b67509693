package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/chirper/chirper-api/internal/api"
	"github.com/chirper/chirper-api/internal/core/domain"
	"github.com/chirper/chirper-api/internal/core/service"
	"github.com/chirper/chirper-api/internal/infrastructure/store"
	"github.com/chirper/chirper-api/internal/pkg/config"
	"github.com/chirper/chirper-api/pkg/logger"
)

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the HTTP API until interrupted.

Missing collections are created on startup. SIGINT or SIGTERM triggers a
graceful shutdown bounded by the configured shutdown timeout.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, rootOpts)
		},
	}
}

func runServe(ctx context.Context, opts *RootOptions) error {
	cfg, err := config.Load(ctx, opts.ConfigPath)
	if err != nil {
		return err
	}
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.IsDevelopment()})

	b, err := openBackends(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := b.Close(context.Background()); err != nil {
			log.Warn().Err(err).Msg("failed to close backends")
		}
	}()

	if err := store.EnsureAll(ctx, b.store, store.UsersCollection, store.TweetsCollection); err != nil {
		return fmt.Errorf("init collections: %w", err)
	}

	storeLog := logger.Component(log, "store")
	users := store.NewCollection[domain.UserAccount](store.UsersCollection, b.store, b.locker, storeLog)
	tweets := store.NewCollection[domain.Tweet](store.TweetsCollection, b.store, b.locker, storeLog)

	e := api.NewRouter(api.Dependencies{
		Logger:    logger.Component(log, "http"),
		Users:     service.NewUserService(users, logger.Component(log, "users")),
		Tweets:    service.NewTweetService(tweets, logger.Component(log, "tweets")),
		Readiness: b.readiness(),
	})

	addr := net.JoinHostPort("", cfg.Port)
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Str("addr", addr).Msg("http server listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
