// ABOUTME: Root Cobra command for the vetclinic CLI.
// ABOUTME: Loads config, opens the log file and the store, and runs the interactive menu.
package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/harperreed/vetclinic/internal/clinic"
	"github.com/harperreed/vetclinic/internal/config"
	"github.com/harperreed/vetclinic/internal/console"
	"github.com/harperreed/vetclinic/internal/logging"
	"github.com/harperreed/vetclinic/internal/storage"
	"github.com/spf13/cobra"
)

var version = "dev"

var (
	dbPath  string
	logPath string

	cfg  *config.Config
	db   *storage.DB
	logs *logging.Log
)

var rootCmd = &cobra.Command{
	Use:     "vetclinic",
	Short:   "Veterinary clinic records",
	Version: version,
	Long: `Vetclinic keeps the records of a small veterinary clinic: owners, their pets,
and each pet's clinical history.

Run without arguments to open the interactive menu.

QUICK START:

  $ vetclinic                      # Interactive menu
  $ vetclinic owners               # List owners
  $ vetclinic pets --owner 1       # List pets of owner 1
  $ vetclinic history 3            # Clinical history of pet 3

BACKUP:

  $ vetclinic export json -o backup.json
  $ vetclinic import backup.json

MCP INTEGRATION:

  Run 'vetclinic mcp' to start the Model Context Protocol server:

  {
    "mcpServers": {
      "vetclinic": { "command": "vetclinic", "args": ["mcp"] }
    }
  }

DATA STORAGE:

  Records live in a SQLite database at $XDG_DATA_HOME/vetclinic/clinic.db and
  errors are logged to vetclinic.log next to it. Both locations can be changed
  in $XDG_CONFIG_HOME/vetclinic/config.json or with --db and --log.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip store init for commands that don't need it
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		return openResources()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMenu(cmd)
	},
}

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Open the interactive menu",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMenu(cmd)
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func openResources() error {
	var err error
	cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	path := config.ExpandPath(logPath)
	if path == "" {
		path = cfg.LogPath()
	}
	logs, err = logging.New().FromPath(path).Level(cfg.GetLogLevel()).Make()
	if err != nil {
		return fmt.Errorf("failed to open log: %w", err)
	}

	db, err = cfg.OpenStorage(dbPath, logs.Logger)
	if err != nil {
		logging.Critical(logs.Logger).Err(err).Msg("failed to open database")
		return fmt.Errorf("failed to open database: %w", err)
	}

	logs.Logger.Info().Str("db", db.Path()).Str("version", version).Msg("session started")
	return nil
}

// closeResources releases the store and the log file. Safe to call more than once.
func closeResources() error {
	var errs []error
	if db != nil {
		errs = append(errs, db.Close())
		db = nil
	}
	if logs != nil {
		logs.Logger.Info().Msg("session ended")
		errs = append(errs, logs.Close())
		logs = nil
	}
	return errors.Join(errs...)
}

func runMenu(cmd *cobra.Command) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()
	p := console.NewPrompter(cmd.InOrStdin(), out, logs.Logger)
	svc := clinic.NewService(db, p, logs.Logger)
	return console.New(svc, p, out, logs.Logger, logs.Path).Run(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "database path (default: $XDG_DATA_HOME/vetclinic/clinic.db)")
	rootCmd.PersistentFlags().StringVar(&logPath, "log", "", "log file path (default: next to the database)")
	rootCmd.AddCommand(menuCmd)
}
