// Package detect identifies which institution's layout a statement uses.
// This is deliberately a heuristic, not a classifier: a case-insensitive
// substring search in registry order, with a small alias table as fallback.
package detect

import (
	"strings"

	"github.com/Veraticus/ledger-sieve/internal/rules"
)

// aliases maps institutions to alternate spellings and abbreviations that
// appear in statement text when the registered name does not.
var aliases = map[string][]string{
	"Standard Chartered": {"standard chartered bank", "stanchart", "scb"},
	"UOB":                {"united overseas bank", "united overseas"},
	"Citibank":           {"citibank", "citi"},
	"HSBC":               {"hsbc", "hongkong and shanghai banking"},
	"Trust":              {"trust bank"},
}

// Detect returns the name of the first registered institution found in the
// document text, or the empty string when no institution matches. Callers
// must treat an empty result as "skip this document", never as fatal.
func Detect(text string, registry *rules.Registry) string {
	lower := strings.ToLower(text)

	for _, name := range registry.Institutions() {
		if strings.Contains(lower, strings.ToLower(name)) {
			return name
		}
	}

	for _, name := range registry.Institutions() {
		for _, alias := range aliases[name] {
			if strings.Contains(lower, alias) {
				return name
			}
		}
	}

	return ""
}
