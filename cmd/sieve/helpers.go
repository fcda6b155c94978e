package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/Veraticus/ledger-sieve/internal/common"
	"github.com/Veraticus/ledger-sieve/internal/config"
	"github.com/Veraticus/ledger-sieve/internal/rules"
)

// loadRegistry loads the institution rules, failing the run on any
// configuration error.
func loadRegistry() (*rules.Registry, error) {
	path := viper.GetString("rules.path")
	if path == "" {
		path = config.DefaultRulesPath()
	}

	registry, err := rules.Load(config.ExpandPath(path))
	if err != nil {
		return nil, common.NewUserError("failed to load institution rules", err)
	}
	if registry.Len() == 0 {
		return nil, common.NewUserError("no institution rules available", common.ErrInvalidConfig)
	}
	return registry, nil
}

// loadCategories loads the category keyword map.
func loadCategories() (*rules.CategoryMap, error) {
	path := viper.GetString("categories.path")
	if path == "" {
		path = config.DefaultCategoriesPath()
	}

	categories, err := rules.LoadCategories(config.ExpandPath(path))
	if err != nil {
		return nil, common.NewUserError("failed to load category map", err)
	}
	return categories, nil
}

func databasePath() string {
	if path := viper.GetString("database.path"); path != "" {
		return config.ExpandPath(path)
	}
	return config.DefaultDatabasePath()
}

// expandGlobs resolves file arguments that may contain shell glob patterns.
func expandGlobs(args []string) ([]string, error) {
	var files []string
	for _, pattern := range args {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %s: %w", pattern, err)
		}
		if len(matches) == 0 {
			if _, err := os.Stat(pattern); err == nil {
				files = append(files, pattern)
			} else {
				slog.Warn("No files found matching pattern", "pattern", pattern)
			}
			continue
		}
		files = append(files, matches...)
	}
	return files, nil
}
