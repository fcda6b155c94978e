package extract

import (
	"log/slog"
	"regexp"
	"time"

	"github.com/Veraticus/ledger-sieve/internal/dates"
)

// anchorPatterns locate a labeled statement-level date. Labeled phrases come
// first, bare date shapes last; the first pattern whose capture parses with
// any anchor layout wins.
var anchorPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)Statement Date:?\s*(\d{1,2}\s?[A-Za-z]{3,9}\s?\d{4})`),
	regexp.MustCompile(`(?i)Statement Date:?\s*([A-Za-z]{3,9}\s*\d{1,2},?\s*\d{4})`),
	regexp.MustCompile(`(?i)Due Date:?\s*(\d{1,2}\s?[A-Za-z]{3,9}\s?\d{4})`),
	regexp.MustCompile(`(?i)Due Date:?\s*([A-Za-z]{3,9}\s*\d{1,2},?\s*\d{4})`),
	regexp.MustCompile(`(?i)Date:?\s*(\d{1,2}\s?[A-Za-z]{3,9}\s?\d{4})`),
	regexp.MustCompile(`(?i)Date:?\s*([A-Za-z]{3,9}\s*\d{1,2},?\s*\d{4})`),
	regexp.MustCompile(`(\d{1,2}\s[A-Za-z]{3}\s\d{4})`),
	regexp.MustCompile(`([A-Za-z]{3,9}\d{1,2},?\d{4})`),
	regexp.MustCompile(`(\d{1,2}\s[A-Za-z]{3}\s\d{2})\b`),
	regexp.MustCompile(`([A-Za-z]{3,9}\s*\d{1,2},?\s*\d{2})\b`),
}

// anchorLayouts are tried in order for each pattern capture.
var anchorLayouts = []string{
	"2 Jan 2006",
	"2 January 2006",
	"2Jan2006",
	"January 2, 2006",
	"January 2 2006",
	"Jan 2, 2006",
	"Jan 2 2006",
	"January2,2006",
	"2 Jan 06",
	"January 2, 06",
	"January 2 06",
}

// FindAnchor searches document text for the statement's cycle or due date.
// Returns nil when no pattern+layout combination parses; the caller falls
// back to the wall-clock year policy.
func FindAnchor(text string) *time.Time {
	for _, pattern := range anchorPatterns {
		match := pattern.FindStringSubmatch(text)
		if match == nil {
			continue
		}
		if anchor, ok := dates.ParseFull(match[1], anchorLayouts); ok {
			slog.Debug("found statement anchor date",
				"token", match[1],
				"anchor", anchor.Format("2006-01-02"))
			return &anchor
		}
	}

	slog.Debug("no statement anchor date found")
	return nil
}
