package main

import (
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/Veraticus/ledger-sieve/internal/cli"
	"github.com/Veraticus/ledger-sieve/internal/engine"
	"github.com/Veraticus/ledger-sieve/internal/export"
	"github.com/Veraticus/ledger-sieve/internal/model"
	"github.com/Veraticus/ledger-sieve/internal/pdftext"
	"github.com/Veraticus/ledger-sieve/internal/storage"
)

func parseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse [files or globs...]",
		Short: "Parse statement files into transactions",
		Long: `Parse bank statement documents (PDF or plain text) into normalized
transaction records.

Examples:
  # Parse one statement to stdout
  sieve parse ~/statements/citibank_jan.pdf

  # Parse a directory of statements to CSV
  sieve parse ~/statements/*.pdf -o transactions.csv

  # Parse and persist into the local database
  sieve parse ~/statements/*.pdf --save`,
		Args: cobra.MinimumNArgs(1),
		RunE: runParse,
	}

	cmd.Flags().StringP("output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringP("format", "f", "csv", "output format (csv, json)")
	cmd.Flags().Bool("save", false, "persist transactions to the local database")
	cmd.Flags().IntP("workers", "w", 0, "concurrent documents (default: CPU count)")
	cmd.Flags().BoolP("dry-run", "d", false, "parse without writing any output")

	return cmd
}

func runParse(cmd *cobra.Command, args []string) error {
	outputPath, _ := cmd.Flags().GetString("output")
	format, _ := cmd.Flags().GetString("format")
	save, _ := cmd.Flags().GetBool("save")
	workers, _ := cmd.Flags().GetInt("workers")
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	if format != "csv" && format != "json" {
		return fmt.Errorf("unknown format %q (want csv or json)", format)
	}

	registry, err := loadRegistry()
	if err != nil {
		return err
	}
	categories, err := loadCategories()
	if err != nil {
		return err
	}

	files, err := expandGlobs(args)
	if err != nil {
		return err
	}

	eng := engine.New(registry, categories, pdftext.New())

	var bar *progressbar.ProgressBar
	if len(files) > 1 {
		bar = progressbar.NewOptions(len(files),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionShowCount(),
			progressbar.OptionSetWidth(40),
			progressbar.OptionSetDescription("Parsing statements..."),
		)
	}

	progress := func() {
		if bar != nil {
			_ = bar.Add(1)
		}
	}

	results, stats := eng.ProcessAll(cmd.Context(), files, workers, progress)
	if bar != nil {
		fmt.Fprintln(os.Stderr)
	}

	var transactions []model.Transaction
	for _, result := range results {
		transactions = append(transactions, result.Transactions...)
	}

	fmt.Fprint(os.Stderr, cli.FormatRunSummary(results, stats))

	if dryRun {
		return nil
	}

	if save {
		if err := saveTransactions(cmd, transactions); err != nil {
			return err
		}
	}

	return writeOutput(outputPath, format, transactions)
}

func saveTransactions(cmd *cobra.Command, transactions []model.Transaction) error {
	store, err := storage.NewSQLiteStorage(databasePath())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = store.Close() }()

	ctx := cmd.Context()
	if err := store.Migrate(ctx); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	if err := store.SaveTransactions(ctx, transactions); err != nil {
		return fmt.Errorf("failed to save transactions: %w", err)
	}

	fmt.Fprintln(os.Stderr, cli.FormatSuccess(fmt.Sprintf("saved %d transactions to %s", len(transactions), databasePath())))
	return nil
}

func writeOutput(path, format string, transactions []model.Transaction) error {
	out := os.Stdout
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer func() { _ = f.Close() }()
		out = f
	}

	switch format {
	case "json":
		return export.WriteJSON(out, transactions)
	default:
		return export.WriteCSV(out, transactions)
	}
}
