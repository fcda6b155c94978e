// Package model defines the core data types shared across the application.
package model

import (
	"crypto/sha256"
	"fmt"
	"math"
	"time"
)

// CategoryOther is assigned when no keyword rule matches a description.
const CategoryOther = "Other"

// Transaction represents a single statement line item after extraction.
// Instances are never mutated once created.
type Transaction struct {
	Date        time.Time
	Institution string
	Description string
	Category    string
	Amount      float64
}

// ValidationError reports a Transaction that violates a model invariant.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid transaction: %s %s", e.Field, e.Reason)
}

// Validate checks the model invariants: a non-empty institution, a real
// calendar date, and a finite amount.
func (t *Transaction) Validate() error {
	if t.Institution == "" {
		return &ValidationError{Field: "institution", Reason: "is required"}
	}
	if t.Date.IsZero() {
		return &ValidationError{Field: "date", Reason: "is required"}
	}
	if math.IsNaN(t.Amount) || math.IsInf(t.Amount, 0) {
		return &ValidationError{Field: "amount", Reason: "must be finite"}
	}
	return nil
}

// GenerateHash creates a stable hash for duplicate detection across files.
func (t *Transaction) GenerateHash() string {
	data := fmt.Sprintf("%s:%s:%.2f:%s",
		t.Institution,
		t.Date.Format("2006-01-02"),
		t.Amount,
		t.Description)
	hash := sha256.Sum256([]byte(data))
	return fmt.Sprintf("%x", hash)
}
