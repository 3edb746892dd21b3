package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var companiesCmd = &cobra.Command{
	Use:   "companies",
	Short: "List all configured employers",
	Long:  "Reads the config and prints a table of the employers a collect run will harvest.",
	RunE:  runCompanies,
}

func init() {
	rootCmd.AddCommand(companiesCmd)
}

func runCompanies(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("%-12s %s\n", "Employer ID", "Note")
	fmt.Println(strings.Repeat("─", 40))

	for _, e := range cfg.Employers {
		fmt.Printf("%-12d %s\n", e.ID, e.Note)
	}

	fmt.Printf("\nTotal: %d employers\n", len(cfg.Employers))
	return nil
}
