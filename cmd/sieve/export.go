package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Veraticus/ledger-sieve/internal/service"
	"github.com/Veraticus/ledger-sieve/internal/sheets"
	"github.com/Veraticus/ledger-sieve/internal/storage"
)

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export stored transactions",
		Long: `Export previously parsed transactions from the local database to CSV,
JSON, or a Google Sheets spreadsheet.

Google Sheets export needs credentials in the environment: either
SIEVE_SHEETS_SERVICE_ACCOUNT_PATH, or SIEVE_SHEETS_CLIENT_ID,
SIEVE_SHEETS_CLIENT_SECRET and SIEVE_SHEETS_REFRESH_TOKEN.`,
		RunE: runExport,
	}

	cmd.Flags().StringP("output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringP("format", "f", "csv", "output format (csv, json, sheets)")
	cmd.Flags().String("institution", "", "only export this institution")
	cmd.Flags().String("category", "", "only export this category")
	cmd.Flags().String("from", "", "start date (YYYY-MM-DD)")
	cmd.Flags().String("to", "", "end date (YYYY-MM-DD)")

	return cmd
}

func runExport(cmd *cobra.Command, _ []string) error {
	outputPath, _ := cmd.Flags().GetString("output")
	format, _ := cmd.Flags().GetString("format")
	institution, _ := cmd.Flags().GetString("institution")
	category, _ := cmd.Flags().GetString("category")
	fromFlag, _ := cmd.Flags().GetString("from")
	toFlag, _ := cmd.Flags().GetString("to")

	filter := service.TransactionFilter{
		Institution: institution,
		Category:    category,
	}
	if fromFlag != "" {
		from, err := time.Parse("2006-01-02", fromFlag)
		if err != nil {
			return fmt.Errorf("invalid --from date: %w", err)
		}
		filter.StartDate = &from
	}
	if toFlag != "" {
		to, err := time.Parse("2006-01-02", toFlag)
		if err != nil {
			return fmt.Errorf("invalid --to date: %w", err)
		}
		filter.EndDate = &to
	}

	store, err := storage.NewSQLiteStorage(databasePath())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = store.Close() }()

	ctx := cmd.Context()
	if err := store.Migrate(ctx); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	transactions, err := store.GetTransactions(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to load transactions: %w", err)
	}
	if len(transactions) == 0 {
		return fmt.Errorf("no stored transactions match the filter")
	}

	switch format {
	case "csv", "json":
		return writeOutput(outputPath, format, transactions)
	case "sheets":
		config := sheets.DefaultConfig()
		if err := config.LoadFromEnv(); err != nil {
			return err
		}
		writer, err := sheets.NewWriter(ctx, config)
		if err != nil {
			return err
		}
		return writer.Write(ctx, transactions)
	default:
		return fmt.Errorf("unknown format %q (want csv, json, or sheets)", format)
	}
}
