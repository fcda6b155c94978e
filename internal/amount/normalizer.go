// Package amount normalizes raw statement amount tokens into signed values.
// Institutions disagree on how credits are marked: a trailing CR flag, an
// accounting-style parenthesized amount, or a leading plus sign. Each marker
// is an independent negation and multiple markers compound.
package amount

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// SignPolicy captures an institution's sign conventions.
type SignPolicy struct {
	InvertOnCredit    bool
	PlusMeansNegative bool
}

// ParseError reports an amount token that is not a valid decimal.
type ParseError struct {
	Token string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse amount %q", e.Token)
}

// currencyReplacer strips currency symbols and thousands separators.
// Longer symbols come first so "S$" is not left as a stray "S".
var currencyReplacer = strings.NewReplacer(
	"S$", "",
	"SGD", "",
	"US$", "",
	"$", "",
	"£", "",
	"€", "",
	",", "",
)

// validAmount accepts a signed decimal with at most two fraction digits.
var validAmount = regexp.MustCompile(`^[+-]?\d+(?:\.\d{1,2})?$`)

// Normalize converts a raw amount token into a signed value.
func Normalize(raw string, policy SignPolicy, creditFlag string) (float64, error) {
	token := strings.TrimSpace(raw)
	parenthesized := strings.Contains(token, "(") && strings.Contains(token, ")")

	cleaned := currencyReplacer.Replace(token)
	cleaned = strings.TrimSpace(strings.Trim(cleaned, "()"))
	if !validAmount.MatchString(cleaned) {
		return 0, &ParseError{Token: raw}
	}

	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, &ParseError{Token: raw}
	}

	if policy.InvertOnCredit && strings.TrimSpace(creditFlag) != "" {
		value = -value
	}
	if parenthesized {
		value = -value
	}
	if policy.PlusMeansNegative && strings.HasPrefix(cleaned, "+") {
		value = -value
	}

	return value, nil
}
