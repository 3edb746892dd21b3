package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/amishk599/vacancydb/internal/collector"
	"github.com/amishk599/vacancydb/internal/harvest"
	"github.com/amishk599/vacancydb/internal/report"
)

var keyword string

var collectCmd = &cobra.Command{
	Use:   "collect",
	Short: "Harvest the configured employers, then print the report",
	Long:  "Creates the tables, stores every configured employer and its open vacancies, then prints counts, average salary, above-average and keyword matches.",
	RunE:  runCollect,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&keyword, "keyword", "k", "", "title keyword for the report (default: config keyword or Python)")
	rootCmd.AddCommand(collectCmd)
}

func runCollect(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, repo := openRepository(ctx, logger)
	defer repo.Close()

	logger.Info("config loaded",
		"driver", cfg.Database.Driver,
		"employers", len(cfg.Employers),
		"api", cfg.API.BaseURL,
	)

	httpClient := &http.Client{Timeout: cfg.API.Timeout}
	hh := collector.NewHHCollector(cfg.API.BaseURL, cfg.API.UserAgent, cfg.API.PerPage, httpClient)

	h := harvest.NewHarvester(hh, repo, logger)
	if _, err := h.Run(ctx, cfg.EmployerIDs()); err != nil {
		logger.Error("harvest failed", "error", err)
		return fmt.Errorf("harvest: %w", err)
	}

	return report.NewPrinter(os.Stdout).Full(ctx, repo, reportKeyword(cfg.Keyword))
}

// reportKeyword prefers the --keyword flag over the configured keyword.
func reportKeyword(configured string) string {
	if keyword != "" {
		return keyword
	}
	return configured
}
