// Package dates resolves year-less statement dates into absolute calendar
// dates. Statements print transaction dates without a year because the year
// is implied by the statement period; the anchor date (statement or due
// date) disambiguates, with the current wall-clock year as the fallback
// policy when no anchor could be found.
package dates

import (
	"fmt"
	"strings"
	"time"
	"unicode"
)

// leapAidYear anchors parses of "29 Feb" style tokens, which some layouts
// reject when their implied default year is not a leap year.
const leapAidYear = "2000"

// ParseError reports a date token that could not be parsed with the
// configured layout.
type ParseError struct {
	Token  string
	Layout string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse date %q with layout %q", e.Token, e.Layout)
}

// Resolve parses a day+month token against the given layout and assigns a
// year. With an anchor, a (month, day) pair after the anchor's is placed in
// the prior calendar year: transactions are dated at or before the statement
// cycle close, possibly wrapping into the previous year. Without an anchor,
// the current wall-clock year is assumed.
func Resolve(token, layout string, anchor *time.Time) (time.Time, error) {
	return resolve(token, layout, anchor, time.Now)
}

func resolve(token, layout string, anchor *time.Time, now func() time.Time) (time.Time, error) {
	month, day, err := parsePartial(token, layout)
	if err != nil {
		return time.Time{}, err
	}

	if anchor == nil {
		year := now().Year()
		if month == time.February && day == 29 {
			for !isLeap(year) {
				year++
			}
		}
		return time.Date(year, month, day, 0, 0, 0, 0, time.UTC), nil
	}

	year := anchor.Year()
	if month > anchor.Month() || (month == anchor.Month() && day > anchor.Day()) {
		year--
	}
	if month == time.February && day == 29 {
		for !isLeap(year) {
			year--
		}
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC), nil
}

// parsePartial parses a day+month token, tolerating month tokens printed in
// the wrong case ("14NOV"). Layouts carry no year, so a failed parse is
// retried against a known leap year before giving up.
func parsePartial(token, layout string) (time.Month, int, error) {
	normalized := NormalizeCase(strings.TrimSpace(token))

	t, err := time.Parse(layout, normalized)
	if err == nil {
		return t.Month(), t.Day(), nil
	}

	t, err = time.Parse(layout+" 2006", normalized+" "+leapAidYear)
	if err == nil {
		return t.Month(), t.Day(), nil
	}

	return 0, 0, &ParseError{Token: token, Layout: layout}
}

// ParseFull parses a complete date token against a prioritized list of
// layouts, returning the first successful parse.
func ParseFull(token string, layouts []string) (time.Time, bool) {
	normalized := NormalizeCase(strings.TrimSpace(token))
	for _, layout := range layouts {
		if t, err := time.Parse(layout, normalized); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// NormalizeCase rewrites each alphabetic run to title case so that month
// tokens like "NOV" or "november" match Go's reference layouts.
func NormalizeCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	startOfRun := true
	for _, r := range s {
		if !unicode.IsLetter(r) {
			startOfRun = true
			b.WriteRune(r)
			continue
		}
		if startOfRun {
			b.WriteRune(unicode.ToUpper(r))
			startOfRun = false
		} else {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}

func isLeap(year int) bool {
	return (year%4 == 0 && year%100 != 0) || year%400 == 0
}
