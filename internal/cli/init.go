package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chirper/chirper-api/internal/infrastructure/store"
	"github.com/chirper/chirper-api/internal/pkg/config"
	"github.com/chirper/chirper-api/pkg/logger"
)

// NewInitCommand creates the init command.
func NewInitCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create empty collections that do not exist yet",
		Long: `Create the users and tweets collections as empty arrays.

Existing collections are left untouched, so running init twice is safe.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd, rootOpts)
		},
	}
}

func runInit(cmd *cobra.Command, opts *RootOptions) error {
	ctx := cmd.Context()

	cfg, err := config.Load(ctx, opts.ConfigPath)
	if err != nil {
		return err
	}
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.IsDevelopment(),
		Output: cmd.ErrOrStderr(),
	})

	b, err := openBackends(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() { _ = b.Close(ctx) }()

	if err := store.EnsureAll(ctx, b.store, store.UsersCollection, store.TweetsCollection); err != nil {
		return fmt.Errorf("init collections: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "collections %s and %s are ready\n", store.UsersCollection, store.TweetsCollection)
	return nil
}
