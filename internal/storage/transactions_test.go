package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/ledger-sieve/internal/model"
	"github.com/Veraticus/ledger-sieve/internal/service"
)

func createTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	store, err := NewSQLiteStorage(dbPath)
	require.NoError(t, err)
	require.NoError(t, store.Migrate(context.Background()))

	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}

func testTransaction(institution string, day int, amount float64, description, category string) model.Transaction {
	return model.Transaction{
		Institution: institution,
		Date:        time.Date(2024, time.January, day, 0, 0, 0, 0, time.UTC),
		Amount:      amount,
		Description: description,
		Category:    category,
	}
}

func TestSaveAndGetTransactions(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	saved := []model.Transaction{
		testTransaction("Testbank", 5, 50.00, "AMAZON.COM", "Shopping"),
		testTransaction("Testbank", 2, -25.50, "REFUND", "Other"),
	}
	require.NoError(t, store.SaveTransactions(ctx, saved))

	got, err := store.GetTransactions(ctx, service.TransactionFilter{})
	require.NoError(t, err)
	require.Len(t, got, 2)

	// Ordered by date, not insertion order.
	assert.Equal(t, "REFUND", got[0].Description)
	assert.Equal(t, "AMAZON.COM", got[1].Description)
	assert.InDelta(t, 50.00, got[1].Amount, 0.001)
	assert.Equal(t, "Shopping", got[1].Category)
	assert.Equal(t, time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC), got[1].Date)
}

func TestSaveTransactionsDeduplicates(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	txn := testTransaction("Testbank", 5, 50.00, "AMAZON.COM", "Shopping")
	require.NoError(t, store.SaveTransactions(ctx, []model.Transaction{txn}))
	require.NoError(t, store.SaveTransactions(ctx, []model.Transaction{txn}))

	got, err := store.GetTransactions(ctx, service.TransactionFilter{})
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestSaveTransactionsRejectsInvalid(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	transactions := []model.Transaction{
		testTransaction("Testbank", 5, 50.00, "AMAZON.COM", "Shopping"),
		{Description: "missing institution"},
	}
	err := store.SaveTransactions(ctx, transactions)
	require.Error(t, err)

	var validationErr *model.ValidationError
	assert.ErrorAs(t, err, &validationErr)

	// Nothing is persisted when any transaction fails validation.
	got, err := store.GetTransactions(ctx, service.TransactionFilter{})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestGetTransactionsFilters(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.SaveTransactions(ctx, []model.Transaction{
		testTransaction("Testbank", 2, 10.00, "COFFEE", "Dining"),
		testTransaction("Testbank", 10, 20.00, "BOOKS", "Shopping"),
		testTransaction("Otherbank", 15, 30.00, "GROCERIES", "Groceries"),
	}))

	from := time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, time.January, 12, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		filter service.TransactionFilter
		want   []string
	}{
		{
			name:   "by institution",
			filter: service.TransactionFilter{Institution: "Otherbank"},
			want:   []string{"GROCERIES"},
		},
		{
			name:   "by category",
			filter: service.TransactionFilter{Category: "Dining"},
			want:   []string{"COFFEE"},
		},
		{
			name:   "by date range",
			filter: service.TransactionFilter{StartDate: &from, EndDate: &to},
			want:   []string{"BOOKS"},
		},
		{
			name:   "with limit",
			filter: service.TransactionFilter{Limit: 2},
			want:   []string{"COFFEE", "BOOKS"},
		},
		{
			name:   "no match",
			filter: service.TransactionFilter{Institution: "Nobank"},
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := store.GetTransactions(ctx, tt.filter)
			require.NoError(t, err)

			var descriptions []string
			for _, txn := range got {
				descriptions = append(descriptions, txn.Description)
			}
			assert.Equal(t, tt.want, descriptions)
		})
	}
}

func TestCountByCategory(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.SaveTransactions(ctx, []model.Transaction{
		testTransaction("Testbank", 2, 10.00, "COFFEE", "Dining"),
		testTransaction("Testbank", 3, 12.00, "LUNCH", "Dining"),
		testTransaction("Testbank", 10, 20.00, "BOOKS", "Shopping"),
	}))

	counts, err := store.CountByCategory(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"Dining": 2, "Shopping": 1}, counts)
}

func TestMigrateIdempotent(t *testing.T) {
	store := createTestStorage(t)
	require.NoError(t, store.Migrate(context.Background()))
}
