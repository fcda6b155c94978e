package engine

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/ledger-sieve/internal/common"
	"github.com/Veraticus/ledger-sieve/internal/rules"
)

// fakeSource serves canned document text keyed by path.
type fakeSource struct {
	texts map[string]string
}

func (s *fakeSource) Text(path string) (string, error) {
	text, ok := s.texts[path]
	if !ok {
		return "", fmt.Errorf("%s: %w", path, common.ErrUnreadableDocument)
	}
	return text, nil
}

func newTestEngine(t *testing.T, source *fakeSource) *Engine {
	t.Helper()
	dir := t.TempDir()

	rulesPath := filepath.Join(dir, "rules.yaml")
	require.NoError(t, os.WriteFile(rulesPath, []byte(`
institutions:
  Testbank:
    pattern: '(\d{2} \w{3})\s+(.+?)\s+\$([\d,]+\.\d{2})$'
    date_group: 0
    description_group: 1
    amount_group: 2
`), 0600))
	registry, err := rules.Load(rulesPath)
	require.NoError(t, err)

	categoriesPath := filepath.Join(dir, "categories.yaml")
	require.NoError(t, os.WriteFile(categoriesPath, []byte(`
categories:
  Shopping:
    - AMAZON
`), 0600))
	categories, err := rules.LoadCategories(categoriesPath)
	require.NoError(t, err)

	return New(registry, categories, source)
}

const testStatement = "Testbank\n" +
	"Statement Date: 31 Jan 2024\n" +
	"02 Jan   AMAZON.COM   $50.00\n" +
	"05 Jan   LOCAL SHOP   $9.90\n"

func TestProcessDocument(t *testing.T) {
	source := &fakeSource{texts: map[string]string{
		"jan.pdf": testStatement,
	}}
	engine := newTestEngine(t, source)

	result := engine.ProcessDocument(context.Background(), "jan.pdf")
	require.NoError(t, result.Err)
	assert.Equal(t, "jan.pdf", result.Path)
	assert.Equal(t, "Testbank", result.Institution)
	assert.Len(t, result.Transactions, 2)
}

func TestProcessDocumentUnrecognized(t *testing.T) {
	source := &fakeSource{texts: map[string]string{
		"other.pdf": "Some Other Bank\n02 Jan   AMAZON.COM   $50.00\n",
	}}
	engine := newTestEngine(t, source)

	result := engine.ProcessDocument(context.Background(), "other.pdf")
	require.Error(t, result.Err)
	assert.ErrorIs(t, result.Err, common.ErrNoInstitution)
	assert.Empty(t, result.Transactions)
}

func TestProcessDocumentUnreadable(t *testing.T) {
	engine := newTestEngine(t, &fakeSource{texts: map[string]string{}})

	result := engine.ProcessDocument(context.Background(), "missing.pdf")
	require.Error(t, result.Err)
	assert.ErrorIs(t, result.Err, common.ErrUnreadableDocument)
}

func TestProcessAllOrderAndStats(t *testing.T) {
	source := &fakeSource{texts: map[string]string{
		"a.pdf": testStatement,
		"c.pdf": testStatement,
	}}
	engine := newTestEngine(t, source)

	paths := []string{"a.pdf", "b.pdf", "c.pdf"}
	var completed atomic.Int64
	results, stats := engine.ProcessAll(context.Background(), paths, 4, func() {
		completed.Add(1)
	})

	// Results come back in input order regardless of worker scheduling.
	require.Len(t, results, 3)
	for i, path := range paths {
		assert.Equal(t, path, results[i].Path)
	}
	assert.NoError(t, results[0].Err)
	assert.Error(t, results[1].Err)
	assert.NoError(t, results[2].Err)

	assert.Equal(t, 3, stats.Documents)
	assert.Equal(t, 2, stats.Recognized)
	assert.Equal(t, 1, stats.Failed)
	assert.Equal(t, 4, stats.Transactions)
	assert.Equal(t, int64(3), completed.Load())
}

func TestProcessAllEmpty(t *testing.T) {
	engine := newTestEngine(t, &fakeSource{texts: map[string]string{}})

	results, stats := engine.ProcessAll(context.Background(), nil, 4, nil)
	assert.Empty(t, results)
	assert.Equal(t, 0, stats.Documents)
	assert.Equal(t, "no documents found", stats.Diagnosis())
}

func TestProcessAllCancelled(t *testing.T) {
	source := &fakeSource{texts: map[string]string{"a.pdf": testStatement}}
	engine := newTestEngine(t, source)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, stats := engine.ProcessAll(ctx, []string{"a.pdf"}, 1, nil)
	require.Len(t, results, 1)
	assert.True(t, errors.Is(results[0].Err, context.Canceled))
	assert.Equal(t, 1, stats.Failed)
}

func TestRunStatsDiagnosis(t *testing.T) {
	tests := []struct {
		name  string
		stats RunStats
		want  string
	}{
		{
			name:  "productive run",
			stats: RunStats{Documents: 2, Recognized: 2, Transactions: 10},
			want:  "",
		},
		{
			name:  "no documents",
			stats: RunStats{},
			want:  "no documents found",
		},
		{
			name:  "none recognized",
			stats: RunStats{Documents: 3, Failed: 3},
			want:  "documents found but none recognized; is an institution rule missing?",
		},
		{
			name:  "recognized but empty",
			stats: RunStats{Documents: 2, Recognized: 2},
			want:  "documents recognized but no matches extracted; check the institution patterns",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.stats.Diagnosis())
		})
	}
}
