// Package sheets writes parsed transactions to a Google Sheets spreadsheet.
package sheets

import (
	"fmt"
	"os"
	"time"
)

// Config holds the configuration for the Google Sheets writer.
type Config struct {
	ClientID           string
	ClientSecret       string
	RefreshToken       string
	ServiceAccountPath string
	SpreadsheetID      string
	SpreadsheetName    string
	BatchSize          int
	RetryAttempts      int
	RetryDelay         time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		BatchSize:     1000,
		RetryAttempts: 3,
		RetryDelay:    time.Second,
	}
}

// LoadFromEnv loads the credentials from environment variables.
func (c *Config) LoadFromEnv() error {
	c.ClientID = os.Getenv("SIEVE_SHEETS_CLIENT_ID")
	c.ClientSecret = os.Getenv("SIEVE_SHEETS_CLIENT_SECRET")
	c.RefreshToken = os.Getenv("SIEVE_SHEETS_REFRESH_TOKEN")
	c.ServiceAccountPath = os.Getenv("SIEVE_SHEETS_SERVICE_ACCOUNT_PATH")

	if c.SpreadsheetID == "" {
		c.SpreadsheetID = os.Getenv("SIEVE_SHEETS_SPREADSHEET_ID")
	}
	if c.SpreadsheetName == "" {
		c.SpreadsheetName = os.Getenv("SIEVE_SHEETS_SPREADSHEET_NAME")
	}
	if c.SpreadsheetName == "" {
		c.SpreadsheetName = "Statement Transactions"
	}

	return c.Validate()
}

// Validate checks that at least one authentication method is configured.
func (c *Config) Validate() error {
	if c.ServiceAccountPath == "" && (c.ClientID == "" || c.ClientSecret == "" || c.RefreshToken == "") {
		return fmt.Errorf("missing Google Sheets authentication: provide either a service account path or OAuth2 credentials")
	}
	if c.BatchSize <= 0 {
		c.BatchSize = 1000
	}
	return nil
}
