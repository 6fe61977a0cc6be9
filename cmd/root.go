package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/arcanaland/librarian/internal/config"
	"github.com/arcanaland/librarian/internal/log"
	"github.com/arcanaland/librarian/internal/lookup"
	"github.com/arcanaland/librarian/internal/store"
)

var (
	configPath string
	dbFlag     string
	tablesFlag string
	verbose    bool
	logFile    string

	cfg *config.Config
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "librarian",
	Short: "Tool for ingesting and browsing a trading card catalog",
	Long: `Librarian is a command-line tool that reads the legacy plain-text card catalog,
normalizes every card and stores the result in a relational card database.
It can also validate a catalog without storing it and browse the stored cards.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.LoadConfig(configPath)
		if err != nil {
			return err
		}
		if dbFlag != "" {
			cfg.Database = dbFlag
		}
		if tablesFlag != "" {
			cfg.TablesFile = tablesFlag
		}

		level := cfg.LogLevel
		if verbose {
			level = "debug"
		}
		log.Configure(os.Stderr, cfg.LogFormat, level)
		if logFile != "" {
			if err := log.SetFileOutput(logFile); err != nil {
				return err
			}
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		log.Close()
	},
}

func init() {
	RootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default is $XDG_CONFIG_HOME/librarian/config.toml)")
	RootCmd.PersistentFlags().StringVar(&dbFlag, "db", "", "card database path (overrides the config)")
	RootCmd.PersistentFlags().StringVar(&tablesFlag, "tables", "", "TOML file with extra lookup table entries")
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	RootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "write logs to a file instead of stderr")

	RootCmd.AddCommand(ingestCmd)
	RootCmd.AddCommand(validateCmd)
	RootCmd.AddCommand(showCmd)
	RootCmd.AddCommand(listCmd)
	RootCmd.AddCommand(configCmd)
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return RootCmd.Execute()
}

// loadTables returns the built-in lookup tables merged with the configured
// tables file, if any.
func loadTables() (*lookup.Tables, error) {
	if cfg == nil || cfg.TablesFile == "" {
		return lookup.Default(), nil
	}
	tables, err := lookup.Load(cfg.TablesFile)
	if err != nil {
		return nil, fmt.Errorf("error loading lookup tables: %w", err)
	}
	return tables, nil
}

// openDatabase opens the configured card database.
func openDatabase(ctx context.Context) (*store.DB, error) {
	if err := config.EnsureDatabaseDir(cfg.Database); err != nil {
		return nil, err
	}
	db, err := store.Open(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}
	return db, nil
}
