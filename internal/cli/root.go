// Package cli implements the spotfinder terminal client.
package cli

import (
	"context"

	"spotfinder/internal/config"
	"spotfinder/internal/logging"
	"spotfinder/internal/repository"
	"spotfinder/internal/service"

	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigDir string
	DBPath    string
	Verbose   bool

	cfg config.Config
}

// NewRootCommand creates the root command for the spotfinder CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "spotfinder",
		Short: "Look up and manage saved map locations",
		Long: `spotfinder keeps a local database of named map locations.

Addresses are matched case-insensitively and ignore surrounding whitespace.
A new database starts with 100 Greater Toronto Area locations.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(opts.ConfigDir)
			if err != nil {
				return WrapExitError(ExitCommandError, "cannot load config", err)
			}
			if opts.DBPath != "" {
				cfg.DBPath = opts.DBPath
			}
			if opts.Verbose {
				cfg.LogLevel = "debug"
			}
			logging.Setup(cfg.LogLevel, true, cmd.ErrOrStderr())
			opts.cfg = cfg
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.ConfigDir, "config", "configs", "directory containing app.env")
	cmd.PersistentFlags().StringVar(&opts.DBPath, "db", "", "database file (overrides DB_PATH)")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")

	cmd.AddCommand(NewFindCommand(opts))
	cmd.AddCommand(NewAddCommand(opts))
	cmd.AddCommand(NewUpdateCommand(opts))
	cmd.AddCommand(NewDeleteCommand(opts))
	cmd.AddCommand(NewSuggestCommand(opts))

	return cmd
}

// withService opens the store for the duration of fn.
func (o *RootOptions) withService(ctx context.Context, fn func(*service.LocationService) error) error {
	repo, err := repository.Open(ctx, repository.Options{Path: o.cfg.DBPath})
	if err != nil {
		return WrapExitError(ExitCommandError, "cannot open location store", err)
	}
	defer repo.Close()

	return fn(service.NewLocationService(repo))
}
