// Package rules loads and holds the per-institution extraction rules and the
// global category keyword map. Both are loaded once at startup and shared
// read-only; iteration order follows file order, which is significant for
// institution detection and first-match-wins categorization.
package rules

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/Veraticus/ledger-sieve/internal/common"
)

// ExtractionRule describes how one institution's statement lines map onto
// transaction fields. Group indices address the pattern's capture groups in
// order, starting at zero. A rule with no pattern is inert: it extracts
// nothing but is not an error.
type ExtractionRule struct {
	Pattern           string `yaml:"pattern"`
	DateLayout        string `yaml:"date_layout"`
	DateGroup         int    `yaml:"date_group"`
	DescriptionGroup  int    `yaml:"description_group"`
	AmountGroup       int    `yaml:"amount_group"`
	CreditGroup       *int   `yaml:"credit_group"`
	InvertOnCredit    bool   `yaml:"invert_on_credit"`
	PlusMeansNegative bool   `yaml:"plus_means_negative"`

	re *regexp.Regexp
}

// Regexp returns the compiled pattern, or nil for an inert rule.
func (r ExtractionRule) Regexp() *regexp.Regexp {
	return r.re
}

func (r *ExtractionRule) compile(institution string) error {
	if r.Pattern == "" {
		return nil
	}

	re, err := regexp.Compile("(?m)" + r.Pattern)
	if err != nil {
		return fmt.Errorf("%w: institution %q: bad pattern: %v", common.ErrInvalidConfig, institution, err)
	}

	groups := []int{r.DateGroup, r.DescriptionGroup, r.AmountGroup}
	if r.CreditGroup != nil {
		groups = append(groups, *r.CreditGroup)
	}
	for _, g := range groups {
		if g < 0 || g >= re.NumSubexp() {
			return fmt.Errorf("%w: institution %q: group index %d out of range (pattern has %d groups)",
				common.ErrInvalidConfig, institution, g, re.NumSubexp())
		}
	}

	if r.DateLayout == "" {
		r.DateLayout = "02 Jan"
	}

	r.re = re
	return nil
}

// Registry holds the loaded extraction rules keyed by institution name,
// preserving the order they appear in the rules file.
type Registry struct {
	rules map[string]ExtractionRule
	names []string
}

// Load reads the institution rules file. A missing or malformed file is a
// configuration error; callers must treat an empty registry as "no rules
// available" and abort gracefully.
func Load(path string) (*Registry, error) {
	doc, err := loadYAMLMapping(path, "institutions")
	if err != nil {
		return nil, err
	}

	reg := &Registry{rules: make(map[string]ExtractionRule)}
	for i := 0; i < len(doc.Content); i += 2 {
		name := doc.Content[i].Value

		var rule ExtractionRule
		if err := doc.Content[i+1].Decode(&rule); err != nil {
			return nil, fmt.Errorf("%w: institution %q: %v", common.ErrInvalidConfig, name, err)
		}
		if err := rule.compile(name); err != nil {
			return nil, err
		}

		reg.names = append(reg.names, name)
		reg.rules[name] = rule
	}

	return reg, nil
}

// Institutions returns the registered institution names in file order.
func (r *Registry) Institutions() []string {
	return r.names
}

// Rule looks up the extraction rule for an institution.
func (r *Registry) Rule(name string) (ExtractionRule, bool) {
	rule, ok := r.rules[name]
	return rule, ok
}

// Len reports the number of registered institutions.
func (r *Registry) Len() int {
	return len(r.names)
}

// CategoryMap maps category names to their keyword lists, preserving file
// order so that first-match-wins categorization is deterministic.
type CategoryMap struct {
	keywords map[string][]string
	names    []string
}

// LoadCategories reads the category keyword map.
func LoadCategories(path string) (*CategoryMap, error) {
	doc, err := loadYAMLMapping(path, "categories")
	if err != nil {
		return nil, err
	}

	m := &CategoryMap{keywords: make(map[string][]string)}
	for i := 0; i < len(doc.Content); i += 2 {
		name := doc.Content[i].Value

		var keywords []string
		if err := doc.Content[i+1].Decode(&keywords); err != nil {
			return nil, fmt.Errorf("%w: category %q: %v", common.ErrInvalidConfig, name, err)
		}

		m.names = append(m.names, name)
		m.keywords[name] = keywords
	}

	return m, nil
}

// Categories returns the category names in file order.
func (m *CategoryMap) Categories() []string {
	return m.names
}

// Keywords returns the keyword list for a category.
func (m *CategoryMap) Keywords(name string) []string {
	return m.keywords[name]
}

// loadYAMLMapping reads a YAML file and returns the mapping node under the
// given top-level key, with key order preserved.
func loadYAMLMapping(path, key string) (*yaml.Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", common.ErrMissingConfig, path)
		}
		return nil, fmt.Errorf("%w: %s: %v", common.ErrInvalidConfig, path, err)
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", common.ErrInvalidConfig, path, err)
	}
	if len(root.Content) == 0 {
		return nil, fmt.Errorf("%w: %s: empty document", common.ErrInvalidConfig, path)
	}

	top := root.Content[0]
	if top.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: %s: expected a mapping at the top level", common.ErrInvalidConfig, path)
	}

	for i := 0; i < len(top.Content); i += 2 {
		if top.Content[i].Value != key {
			continue
		}
		section := top.Content[i+1]
		if section.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("%w: %s: %q must be a mapping", common.ErrInvalidConfig, path, key)
		}
		return section, nil
	}

	return nil, fmt.Errorf("%w: %s: missing %q section", common.ErrInvalidConfig, path, key)
}
