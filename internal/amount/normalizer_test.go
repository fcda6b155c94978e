package amount

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		creditFlag string
		policy     SignPolicy
		want       float64
		wantErr    bool
	}{
		{
			name: "plain amount",
			raw:  "50.00",
			want: 50.00,
		},
		{
			name: "currency symbol and thousands separator",
			raw:  "$1,234.56",
			want: 1234.56,
		},
		{
			name: "parenthesized accounting negative",
			raw:  "(1,234.56)",
			want: -1234.56,
		},
		{
			name:       "credit flag negates",
			raw:        "50.00",
			creditFlag: "CR",
			policy:     SignPolicy{InvertOnCredit: true},
			want:       -50.00,
		},
		{
			name:       "credit flag ignored without policy",
			raw:        "50.00",
			creditFlag: "CR",
			want:       50.00,
		},
		{
			name:       "whitespace-only credit flag does not negate",
			raw:        "50.00",
			creditFlag: "  ",
			policy:     SignPolicy{InvertOnCredit: true},
			want:       50.00,
		},
		{
			name:   "leading plus negates under policy",
			raw:    "+25.00",
			policy: SignPolicy{PlusMeansNegative: true},
			want:   -25.00,
		},
		{
			name: "leading plus without policy stays positive",
			raw:  "+25.00",
			want: 25.00,
		},
		{
			name:       "negations compound",
			raw:        "(50.00)",
			creditFlag: "CR",
			policy:     SignPolicy{InvertOnCredit: true},
			want:       50.00,
		},
		{
			name: "explicit negative",
			raw:  "-12.34",
			want: -12.34,
		},
		{
			name: "singapore dollar prefix",
			raw:  "S$88.00",
			want: 88.00,
		},
		{
			name: "integer amount",
			raw:  "100",
			want: 100,
		},
		{
			name:    "three fraction digits rejected",
			raw:     "1.234",
			wantErr: true,
		},
		{
			name:    "not a number",
			raw:     "12.3a",
			wantErr: true,
		},
		{
			name:    "empty token",
			raw:     "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.raw, tt.policy, tt.creditFlag)
			if tt.wantErr {
				require.Error(t, err)
				var parseErr *ParseError
				assert.ErrorAs(t, err, &parseErr)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 0.001)
		})
	}
}
