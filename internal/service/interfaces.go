// Package service defines the contracts between the engine and its collaborators.
package service

import (
	"context"
	"time"

	"github.com/Veraticus/ledger-sieve/internal/model"
)

// TextSource turns a source document into a single UTF-8 text blob,
// page-concatenated and newline-separated.
type TextSource interface {
	Text(path string) (string, error)
}

// TransactionFilter defines filtering options for transaction queries.
type TransactionFilter struct {
	StartDate   *time.Time
	EndDate     *time.Time
	Institution string
	Category    string
	Limit       int
}

// Storage defines the contract for the persistence layer.
type Storage interface {
	SaveTransactions(ctx context.Context, transactions []model.Transaction) error
	GetTransactions(ctx context.Context, filter TransactionFilter) ([]model.Transaction, error)
	CountByCategory(ctx context.Context) (map[string]int, error)
	Migrate(ctx context.Context) error
	Close() error
}

// RetryOptions configures retry behavior for external calls.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
