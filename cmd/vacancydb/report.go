package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/amishk599/vacancydb/internal/report"
	"github.com/amishk599/vacancydb/internal/store"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print the report from stored data",
	Long:  "Runs the count, average salary, above-average and keyword queries against the database without collecting.",
	RunE:  runReport,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List every stored vacancy",
	RunE:  runList,
}

var searchCmd = &cobra.Command{
	Use:   "search <keyword>",
	Short: "List stored vacancies whose title contains keyword",
	Args:  cobra.ExactArgs(1),
	RunE:  runSearch,
}

var lookupCmd = &cobra.Command{
	Use:   "lookup <company name>",
	Short: "Print the stored id of a company",
	Args:  cobra.ExactArgs(1),
	RunE:  runLookup,
}

func init() {
	rootCmd.AddCommand(reportCmd, listCmd, searchCmd, lookupCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)
	ctx := context.Background()

	cfg, repo := openRepository(ctx, logger)
	defer repo.Close()

	return report.NewPrinter(os.Stdout).Full(ctx, repo, reportKeyword(cfg.Keyword))
}

func runList(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)
	ctx := context.Background()

	_, repo := openRepository(ctx, logger)
	defer repo.Close()

	rows, err := repo.GetAllVacancies(ctx)
	if err != nil {
		return fmt.Errorf("listing vacancies: %w", err)
	}
	report.NewPrinter(os.Stdout).Vacancies("All vacancies", rows)
	return nil
}

func runSearch(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)
	ctx := context.Background()

	_, repo := openRepository(ctx, logger)
	defer repo.Close()

	rows, err := repo.GetVacanciesWithKeyword(ctx, args[0])
	if err != nil {
		return fmt.Errorf("searching vacancies: %w", err)
	}
	report.NewPrinter(os.Stdout).Vacancies(fmt.Sprintf("Vacancies containing %q", args[0]), rows)
	return nil
}

func runLookup(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)
	ctx := context.Background()

	_, repo := openRepository(ctx, logger)
	defer repo.Close()

	id, err := repo.GetCompanyID(ctx, args[0])
	if errors.Is(err, store.ErrNotFound) {
		fmt.Printf("%s: not found\n", args[0])
		return nil
	}
	if err != nil {
		return fmt.Errorf("looking up company: %w", err)
	}
	fmt.Printf("%s: %d\n", args[0], id)
	return nil
}
