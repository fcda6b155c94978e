// Package extract applies an institution's extraction rule to statement text
// and produces transaction records. Extraction is two-phase per document:
// locate the anchor date, then walk the pattern matches in document order.
// No state survives across documents.
package extract

import (
	"log/slog"
	"strings"
	"time"

	"github.com/Veraticus/ledger-sieve/internal/amount"
	"github.com/Veraticus/ledger-sieve/internal/categorize"
	"github.com/Veraticus/ledger-sieve/internal/dates"
	"github.com/Veraticus/ledger-sieve/internal/model"
	"github.com/Veraticus/ledger-sieve/internal/rules"
)

// blacklist marks boilerplate statement lines that match transaction
// patterns but are not transactions. Matched case-insensitively against the
// description.
var blacklist = []string{
	"OUTSTANDING BALANCE",
	"PREVIOUS BALANCE",
	"CREDIT PAYMENT",
	"PAYMENT VIA",
	"PREVIOUS STATEMENT",
	"LATECHARGEFEE",
	"POSTING AMOUNT",
	"CASHBACK",
	"CASH BACK",
	"CASH REBATE",
	"LATE CHARGE",
}

// Extract applies rule to the document text and returns the surviving
// transactions in document order. A malformed match is skipped with a
// diagnostic and never aborts extraction of its siblings; an inert rule
// yields an empty result.
func Extract(text, institution string, rule rules.ExtractionRule, categorizer *categorize.Categorizer) []model.Transaction {
	re := rule.Regexp()
	if re == nil {
		slog.Warn("no pattern configured, skipping extraction", "institution", institution)
		return nil
	}

	anchor := FindAnchor(text)
	memo := categorizer.NewMemo()

	matches := re.FindAllStringSubmatch(text, -1)
	slog.Debug("pattern applied",
		"institution", institution,
		"matches", len(matches))

	var transactions []model.Transaction
	for _, match := range matches {
		description := strings.TrimSpace(group(match, rule.DescriptionGroup))
		if blacklisted(description) {
			slog.Debug("skipping boilerplate line", "description", description)
			continue
		}

		txn, err := buildTransaction(match, institution, rule, anchor, memo)
		if err != nil {
			slog.Warn("skipping malformed match",
				"institution", institution,
				"description", description,
				"error", err)
			continue
		}
		transactions = append(transactions, *txn)
	}

	return transactions
}

func buildTransaction(match []string, institution string, rule rules.ExtractionRule, anchor *time.Time, memo *categorize.Memo) (*model.Transaction, error) {
	dateToken := strings.TrimSpace(group(match, rule.DateGroup))
	description := strings.TrimSpace(group(match, rule.DescriptionGroup))
	amountToken := strings.TrimSpace(group(match, rule.AmountGroup))

	creditFlag := ""
	if rule.CreditGroup != nil {
		creditFlag = group(match, *rule.CreditGroup)
	}

	date, err := dates.Resolve(dateToken, rule.DateLayout, anchor)
	if err != nil {
		return nil, err
	}

	policy := amount.SignPolicy{
		InvertOnCredit:    rule.InvertOnCredit,
		PlusMeansNegative: rule.PlusMeansNegative,
	}
	value, err := amount.Normalize(amountToken, policy, creditFlag)
	if err != nil {
		return nil, err
	}

	txn := model.Transaction{
		Institution: institution,
		Date:        date,
		Amount:      value,
		Description: description,
		Category:    memo.Categorize(description),
	}
	if err := txn.Validate(); err != nil {
		return nil, err
	}

	return &txn, nil
}

// group returns the capture at the 0-based group index, or "" when the
// pattern matched without that group participating.
func group(match []string, index int) string {
	if index+1 >= len(match) {
		return ""
	}
	return match[index+1]
}

func blacklisted(description string) bool {
	upper := strings.ToUpper(description)
	for _, keyword := range blacklist {
		if strings.Contains(upper, keyword) {
			return true
		}
	}
	return false
}
