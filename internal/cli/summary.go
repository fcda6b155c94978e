package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Veraticus/ledger-sieve/internal/engine"
)

// FormatRunSummary renders per-document outcomes and the run totals for the
// terminal.
func FormatRunSummary(results []engine.DocumentResult, stats engine.RunStats) string {
	var b strings.Builder

	b.WriteString(FormatTitle("Parse summary") + "\n")
	for _, result := range results {
		name := filepath.Base(result.Path)
		switch {
		case result.Err != nil:
			b.WriteString("  " + FormatError(fmt.Sprintf("%s: %v", name, result.Err)) + "\n")
		case len(result.Transactions) == 0:
			b.WriteString("  " + FormatWarning(fmt.Sprintf("%s (%s): no transactions", name, result.Institution)) + "\n")
		default:
			b.WriteString("  " + FormatSuccess(fmt.Sprintf("%s (%s): %d transactions", name, result.Institution, len(result.Transactions))) + "\n")
		}
	}

	b.WriteString(SubtleStyle.Render(fmt.Sprintf(
		"%d documents, %d recognized, %d failed, %d transactions",
		stats.Documents, stats.Recognized, stats.Failed, stats.Transactions)) + "\n")

	if diagnosis := stats.Diagnosis(); diagnosis != "" {
		b.WriteString(FormatWarning(diagnosis) + "\n")
	}

	return b.String()
}
