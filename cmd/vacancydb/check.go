package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/amishk599/vacancydb/internal/collector"
	"github.com/amishk599/vacancydb/internal/harvest"
	"github.com/amishk599/vacancydb/internal/store"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Fetch every configured employer without writing to the database",
	Long:  "Dry run: walks the same collect pipeline against the hh.ru API but discards the results. No database connection is made.",
	RunE:  runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger.Info("check mode: nothing will be stored")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	httpClient := &http.Client{Timeout: cfg.API.Timeout}
	hh := collector.NewHHCollector(cfg.API.BaseURL, cfg.API.UserAgent, cfg.API.PerPage, httpClient)

	sum, err := harvest.NewHarvester(hh, store.NewNopWriter(), logger).Run(ctx, cfg.EmployerIDs())
	if err != nil {
		logger.Error("check failed", "error", err)
		return err
	}

	logger.Info("check complete", "companies", sum.Companies, "vacancies", sum.Vacancies)
	return nil
}
