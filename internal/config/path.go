// Package config provides configuration utilities for the application.
package config

import (
	"os"
	"path/filepath"
	"strings"
)

// ExpandPath expands ~ and environment variables in a file path.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, path[2:])
		}
	} else if path == "~" {
		home, err := os.UserHomeDir()
		if err == nil {
			path = home
		}
	}

	return os.ExpandEnv(path)
}

// DefaultRulesPath is where the institution rules file is looked up when no
// path is configured.
func DefaultRulesPath() string {
	return "conf/rules.yaml"
}

// DefaultCategoriesPath is where the category keyword map is looked up when
// no path is configured.
func DefaultCategoriesPath() string {
	return "conf/categories.yaml"
}

// DefaultDatabasePath is where parsed transactions are persisted when no
// path is configured.
func DefaultDatabasePath() string {
	return ExpandPath("~/.local/share/sieve/transactions.db")
}
