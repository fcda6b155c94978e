// Package categorize assigns categories to transaction descriptions by
// keyword lookup against the shared category map.
package categorize

import (
	"strings"

	"github.com/Veraticus/ledger-sieve/internal/model"
	"github.com/Veraticus/ledger-sieve/internal/rules"
)

// Categorizer performs case-insensitive keyword matching over the ordered
// category map. First match wins, so map order is significant. Safe for
// concurrent use; the category map is never mutated after load.
type Categorizer struct {
	categories *rules.CategoryMap
}

// New creates a Categorizer over a loaded category map.
func New(categories *rules.CategoryMap) *Categorizer {
	return &Categorizer{categories: categories}
}

// Categorize returns the first category whose keyword appears in the
// description, or model.CategoryOther when nothing matches.
func (c *Categorizer) Categorize(description string) string {
	upper := strings.ToUpper(description)

	for _, name := range c.categories.Categories() {
		for _, keyword := range c.categories.Keywords(name) {
			if keyword != "" && strings.Contains(upper, strings.ToUpper(keyword)) {
				return name
			}
		}
	}
	return model.CategoryOther
}

// Memo wraps a Categorizer with a per-document result cache. Lookups are
// frequent and descriptions repeat within a statement; the cache must not
// outlive a single document. Not safe for concurrent use.
type Memo struct {
	categorizer *Categorizer
	seen        map[string]string
}

// NewMemo creates a fresh per-document memoized view.
func (c *Categorizer) NewMemo() *Memo {
	return &Memo{
		categorizer: c,
		seen:        make(map[string]string),
	}
}

// Categorize returns the cached category for a description, computing and
// caching it on first sight.
func (m *Memo) Categorize(description string) string {
	if category, ok := m.seen[description]; ok {
		return category
	}
	category := m.categorizer.Categorize(description)
	m.seen[description] = category
	return category
}
