package main

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/amishk599/vacancydb/internal/config"
	"github.com/amishk599/vacancydb/internal/store"
)

var (
	cfgPath string
	debug   bool
)

// Logs go to stderr so stdout carries only the report.
var logOutput io.Writer = os.Stderr

var rootCmd = &cobra.Command{
	Use:   "vacancydb",
	Short: "Harvest hh.ru vacancies into a SQL database",
	Long:  "vacancydb collects open vacancies of selected employers from the hh.ru API, stores them and reports salary statistics.",
	// Bare invocation runs a full collect.
	RunE:         runCollect,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "path to config file (default: VACANCYDB_CONFIG env var or ./config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}

// loadConfig resolves the config path and parses it.
// Priority: explicit path arg > VACANCYDB_CONFIG env var > "./config.yaml".
// Only the implicit default may be absent.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path, false)
	}
	if env := os.Getenv("VACANCYDB_CONFIG"); env != "" {
		return config.Load(env, false)
	}
	return config.Load("config.yaml", true)
}

func setupLogger(dbg bool) *slog.Logger {
	return newLogger(logOutput, dbg)
}

func newLogger(w io.Writer, dbg bool) *slog.Logger {
	logLevel := slog.LevelInfo
	if dbg {
		logLevel = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: logLevel}))
}

// openRepository loads config and opens the repository with its tables in
// place. Failures are logged and exit the process.
func openRepository(ctx context.Context, logger *slog.Logger) (*config.Config, *store.Repository) {
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	repo, err := store.Open(ctx, cfg.Database)
	if err != nil {
		logger.Error("failed to open store", "error", err)
		os.Exit(1)
	}
	logger.Debug("connected to database", "driver", cfg.Database.Driver)

	if err := repo.CreateTables(ctx); err != nil {
		repo.Close()
		logger.Error("failed to create tables", "error", err)
		os.Exit(1)
	}
	return cfg, repo
}
