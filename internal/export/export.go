// Package export serializes transactions to tabular formats. Field order is
// fixed: institution, date, amount, description, category. Transactions
// failing model validation are flagged and skipped, never written.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/Veraticus/ledger-sieve/internal/model"
)

var header = []string{"Institution", "Date", "Amount", "Description", "Category"}

// row mirrors the fixed export field order for JSON output.
type row struct {
	Institution string  `json:"institution"`
	Date        string  `json:"date"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
}

// WriteCSV writes transactions as CSV with a header row.
func WriteCSV(w io.Writer, transactions []model.Transaction) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for i := range transactions {
		t := &transactions[i]
		if err := t.Validate(); err != nil {
			slog.Warn("skipping invalid transaction on export", "error", err)
			continue
		}
		record := []string{
			t.Institution,
			t.Date.Format("2006-01-02"),
			fmt.Sprintf("%.2f", t.Amount),
			t.Description,
			t.Category,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteJSON writes transactions as a JSON array.
func WriteJSON(w io.Writer, transactions []model.Transaction) error {
	rows := make([]row, 0, len(transactions))
	for i := range transactions {
		t := &transactions[i]
		if err := t.Validate(); err != nil {
			slog.Warn("skipping invalid transaction on export", "error", err)
			continue
		}
		rows = append(rows, row{
			Institution: t.Institution,
			Date:        t.Date.Format("2006-01-02"),
			Amount:      t.Amount,
			Description: t.Description,
			Category:    t.Category,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}
