package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Veraticus/ledger-sieve/internal/categorize"
	"github.com/Veraticus/ledger-sieve/internal/cli"
	"github.com/Veraticus/ledger-sieve/internal/model"
	"github.com/Veraticus/ledger-sieve/internal/ofx"
)

func importOFXCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import-ofx [files...]",
		Short: "Import transactions from OFX/QFX files",
		Long: `Import financial transactions from OFX or QFX (Quicken) files exported
from your bank. OFX data already carries dates and signed amounts, so the
statement pattern engine is bypassed; transactions are still categorized and
exported the same way.

Examples:
  sieve import-ofx ~/Downloads/chase_jan_2024.qfx
  sieve import-ofx ~/Downloads/*.qfx -o transactions.csv`,
		Args: cobra.MinimumNArgs(1),
		RunE: runImportOFX,
	}

	cmd.Flags().StringP("output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringP("format", "f", "csv", "output format (csv, json)")
	cmd.Flags().Bool("save", false, "persist transactions to the local database")

	return cmd
}

func runImportOFX(cmd *cobra.Command, args []string) error {
	outputPath, _ := cmd.Flags().GetString("output")
	format, _ := cmd.Flags().GetString("format")
	save, _ := cmd.Flags().GetBool("save")

	categories, err := loadCategories()
	if err != nil {
		return err
	}

	files, err := expandGlobs(args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no files found to import")
	}

	parser := ofx.NewParser(categorize.New(categories))
	ctx := cmd.Context()

	var all []model.Transaction
	seen := make(map[string]bool)

	for _, path := range files {
		f, err := os.Open(path)
		if err != nil {
			fmt.Fprintln(os.Stderr, cli.FormatError(fmt.Sprintf("%s: %v", path, err)))
			continue
		}

		transactions, err := parser.ParseFile(ctx, f)
		_ = f.Close()
		if err != nil {
			fmt.Fprintln(os.Stderr, cli.FormatError(fmt.Sprintf("%s: %v", path, err)))
			continue
		}

		added := 0
		for i := range transactions {
			hash := transactions[i].GenerateHash()
			if seen[hash] {
				continue
			}
			seen[hash] = true
			all = append(all, transactions[i])
			added++
		}

		fmt.Fprintln(os.Stderr, cli.FormatSuccess(fmt.Sprintf(
			"%s: %d transactions (%d duplicates)", path, added, len(transactions)-added)))
	}

	if len(all) == 0 {
		fmt.Fprintln(os.Stderr, cli.FormatWarning("no transactions found in any file"))
		return nil
	}

	if save {
		if err := saveTransactions(cmd, all); err != nil {
			return err
		}
	}

	return writeOutput(outputPath, format, all)
}
