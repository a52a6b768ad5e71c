// Package cmd provides CLI commands for the ledger.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/shunichi-ikebuchi/finance-ledger/pkg/config"
	"github.com/shunichi-ikebuchi/finance-ledger/pkg/db"
	"github.com/shunichi-ikebuchi/finance-ledger/pkg/pathutil"
)

var (
	cfgFile string
	debug   bool
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "ledger",
	Short: "Personal finance ledger",
	Long: `ledger records income and expenses in a SQL database and exposes them
through an HTTP API, an interactive console and plain-text exports.

It supports:
- Serving the JSON API and the browser page
- Adding and listing transactions from an interactive menu
- Importing a legacy JSON or YAML export in one transaction
- Exporting the ledger to monthly Beancount files

Example:
  ledger serve --port 5000
  ledger import --file financas.json
  ledger balance`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogging(debug)
	},
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .env)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	// Add subcommands
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(consoleCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(balanceCmd)
	rootCmd.AddCommand(exportCmd)
}

// setupLogging installs the default text logger on stderr.
func setupLogging(enableDebug bool) {
	logLevel := slog.LevelInfo
	if enableDebug {
		logLevel = slog.LevelDebug
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)
}

// Helper function to get config file path.
func getConfigFile() string {
	if cfgFile != "" {
		return cfgFile
	}
	return "" // Will use default .env loading
}

// loadConfig loads and validates the configuration, then builds the path resolver.
func loadConfig() (*config.Config, *pathutil.PathResolver) {
	slog.Info("Loading configuration")

	cfg, err := config.Load(getConfigFile())
	exitOnError(err, "failed to load configuration")

	// DEBUG=true in the environment or .env raises the level set by --debug.
	if cfg.Debug && !debug {
		setupLogging(true)
	}

	if err := cfg.ValidateDatabase(); err != nil {
		exitOnError(err, "invalid configuration")
	}

	pathResolver := pathutil.New(pathutil.Config{
		DataDir:      cfg.Ledger.DataDir,
		DatabasePath: cfg.Database.Path,
		LegacyFile:   cfg.Ledger.LegacyFile,
		ExportDir:    cfg.Ledger.ExportDir,
	})

	return cfg, pathResolver
}

// openDatabase opens the configured database.
func openDatabase(cfg *config.Config, pathResolver *pathutil.PathResolver) *db.Connection {
	dsn := pathResolver.GetDatabasePath()
	if cfg.UsesPostgres() {
		dsn = cfg.Database.URL
		slog.Debug("Opening database", "driver", cfg.Database.Driver)
	} else {
		slog.Debug("Opening database", "driver", cfg.Database.Driver, "path", dsn)
	}

	conn, err := db.Open(cfg.Database.Driver, dsn)
	exitOnError(err, "failed to open database")
	return conn
}

// Helper function to handle errors and exit.
func exitOnError(err error, msg string) {
	if err != nil {
		slog.Error(msg, "error", err)
		fmt.Fprintf(os.Stderr, "Error: %s: %v\n", msg, err)
		os.Exit(1)
	}
}
