// Package engine orchestrates statement processing: text extraction,
// institution detection, and transaction extraction, fanned out over a
// worker pool with one task per document. Documents are fully independent;
// the only shared state is the read-only rule registry and category map.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/Veraticus/ledger-sieve/internal/categorize"
	"github.com/Veraticus/ledger-sieve/internal/common"
	"github.com/Veraticus/ledger-sieve/internal/detect"
	"github.com/Veraticus/ledger-sieve/internal/extract"
	"github.com/Veraticus/ledger-sieve/internal/model"
	"github.com/Veraticus/ledger-sieve/internal/rules"
	"github.com/Veraticus/ledger-sieve/internal/service"
)

// Engine processes statement documents into transactions.
type Engine struct {
	registry    *rules.Registry
	categorizer *categorize.Categorizer
	source      service.TextSource
}

// New creates an engine over a loaded registry and category map.
func New(registry *rules.Registry, categories *rules.CategoryMap, source service.TextSource) *Engine {
	return &Engine{
		registry:    registry,
		categorizer: categorize.New(categories),
		source:      source,
	}
}

// DocumentResult holds the outcome for one document. Err is set for
// document-level failures (unreadable file, no matching institution); such
// failures never affect sibling documents.
type DocumentResult struct {
	Err          error
	Path         string
	Institution  string
	Transactions []model.Transaction
}

// RunStats summarizes a processing run. The three zero-transaction shapes
// need different fixes: no documents means missing files, none recognized
// means a missing rule, recognized-but-empty means a wrong pattern.
type RunStats struct {
	Documents    int
	Recognized   int
	Failed       int
	Transactions int
}

// Diagnosis returns a human-readable explanation of a run that produced
// zero transactions, or "" for a productive run.
func (s RunStats) Diagnosis() string {
	switch {
	case s.Transactions > 0:
		return ""
	case s.Documents == 0:
		return "no documents found"
	case s.Recognized == 0:
		return "documents found but none recognized; is an institution rule missing?"
	default:
		return "documents recognized but no matches extracted; check the institution patterns"
	}
}

// ProcessDocument runs the full pipeline for one document.
func (e *Engine) ProcessDocument(ctx context.Context, path string) DocumentResult {
	result := DocumentResult{Path: path}

	if err := ctx.Err(); err != nil {
		result.Err = err
		return result
	}

	text, err := e.source.Text(path)
	if err != nil {
		result.Err = fmt.Errorf("reading %s: %w", filepath.Base(path), err)
		return result
	}

	institution := detect.Detect(text, e.registry)
	if institution == "" {
		result.Err = fmt.Errorf("%s: %w", filepath.Base(path), common.ErrNoInstitution)
		return result
	}
	result.Institution = institution

	rule, ok := e.registry.Rule(institution)
	if !ok {
		result.Err = fmt.Errorf("%s: %w", filepath.Base(path), common.ErrNoInstitution)
		return result
	}

	result.Transactions = extract.Extract(text, institution, rule, e.categorizer)
	slog.Info("processed document",
		"file", filepath.Base(path),
		"institution", institution,
		"transactions", len(result.Transactions))

	return result
}

// ProcessAll processes documents concurrently over a bounded worker pool and
// returns per-document results in input order. The progress callback, if
// non-nil, is invoked once per completed document.
func (e *Engine) ProcessAll(ctx context.Context, paths []string, workers int, progress func()) ([]DocumentResult, RunStats) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(paths) {
		workers = len(paths)
	}

	results := make([]DocumentResult, len(paths))
	jobs := make(chan int)

	var wg sync.WaitGroup
	var progressMu sync.Mutex
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = e.ProcessDocument(ctx, paths[i])
				if progress != nil {
					progressMu.Lock()
					progress()
					progressMu.Unlock()
				}
			}
		}()
	}

	for i := range paths {
		select {
		case jobs <- i:
		case <-ctx.Done():
			results[i] = DocumentResult{Path: paths[i], Err: ctx.Err()}
		}
	}
	close(jobs)
	wg.Wait()

	stats := RunStats{Documents: len(paths)}
	for _, result := range results {
		if result.Err != nil {
			common.LogError(result.Err, "document failed", common.Fields{"file": result.Path})
			stats.Failed++
			continue
		}
		stats.Recognized++
		stats.Transactions += len(result.Transactions)
	}

	return results, stats
}
