// Package commands is the interactive shell around the ledger store. It
// only calls the store's public operations.
package commands

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/accountant-dev/accountant/internal/buildinfo"
	"github.com/accountant-dev/accountant/internal/config"
	"github.com/accountant-dev/accountant/internal/logging"
	"github.com/accountant-dev/accountant/internal/store"
)

// rootOptions holds the persistent flags shared by every subcommand.
type rootOptions struct {
	configFile string
	debug      bool
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:     "accountant",
		Short:   "Personal finance ledger on a flat CSV file",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.configFile, "config", "accountant.yaml", "config file")
	rootCmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(newInitCommand(opts))
	rootCmd.AddCommand(newAddCommand(opts))
	rootCmd.AddCommand(newListCommand(opts))
	rootCmd.AddCommand(newFindCommand(opts))
	rootCmd.AddCommand(newUpdateCommand(opts))
	rootCmd.AddCommand(newDeleteCommand(opts))
	rootCmd.AddCommand(newStatsCommand(opts))
	rootCmd.AddCommand(newImportCommand(opts))

	return rootCmd
}

// openStore loads the config and builds a Store with a file-backed
// leveled logger. The log file handle lives for the rest of the process.
func openStore(opts *rootOptions) (*store.Store, error) {
	cfg, err := config.Load(opts.configFile)
	if err != nil {
		return nil, err
	}

	level, err := logging.ParseLevel(cfg.Logs.Level)
	if err != nil {
		return nil, err
	}
	if opts.debug {
		level = slog.LevelDebug
	}

	logPath, err := logging.CreateLogFile(cfg.Logs.Dir)
	if err != nil {
		return nil, err
	}
	f, err := os.OpenFile(logPath, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}

	return store.New(cfg.Ledger.Path, store.WithLogger(logging.New(f, level))), nil
}
