package detect

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/ledger-sieve/internal/rules"
)

func loadTestRegistry(t *testing.T) *rules.Registry {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rules.yaml")
	content := `
institutions:
  Standard Chartered: {}
  UOB: {}
  Citibank: {}
  Trust: {}
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	registry, err := rules.Load(path)
	require.NoError(t, err)
	return registry
}

func TestDetect(t *testing.T) {
	registry := loadTestRegistry(t)

	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "exact name",
			text: "Standard Chartered Bank (Singapore) Limited\nStatement of Account",
			want: "Standard Chartered",
		},
		{
			name: "case insensitive",
			text: "your CITIBANK statement is ready",
			want: "Citibank",
		},
		{
			name: "alias fallback",
			text: "United Overseas Bank Limited eStatement",
			want: "UOB",
		},
		{
			name: "abbreviation alias",
			text: "thank you for banking with scb",
			want: "Standard Chartered",
		},
		{
			name: "registry order wins over alias order",
			text: "UOB and Citibank both appear here",
			want: "UOB",
		},
		{
			name: "no match",
			text: "some random document about nothing",
			want: "",
		},
		{
			name: "empty text",
			text: "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Detect(tt.text, registry))
		})
	}
}
