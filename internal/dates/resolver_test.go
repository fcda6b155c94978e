package dates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestResolveWithAnchor(t *testing.T) {
	tests := []struct {
		anchor time.Time
		want   time.Time
		name   string
		token  string
		layout string
	}{
		{
			name:   "same year when before anchor",
			token:  "01 Jan",
			layout: "02 Jan",
			anchor: date(2024, time.January, 31),
			want:   date(2024, time.January, 1),
		},
		{
			name:   "previous year when after anchor",
			token:  "20 Feb",
			layout: "02 Jan",
			anchor: date(2025, time.January, 15),
			want:   date(2024, time.February, 20),
		},
		{
			name:   "anchor day itself stays in anchor year",
			token:  "15 Jan",
			layout: "02 Jan",
			anchor: date(2025, time.January, 15),
			want:   date(2025, time.January, 15),
		},
		{
			name:   "day after anchor in same month wraps back",
			token:  "16 Jan",
			layout: "02 Jan",
			anchor: date(2025, time.January, 15),
			want:   date(2024, time.January, 16),
		},
		{
			name:   "compact uppercase month token",
			token:  "14NOV",
			layout: "02Jan",
			anchor: date(2024, time.November, 15),
			want:   date(2024, time.November, 14),
		},
		{
			name:   "leap day searches backward from non-leap anchor year",
			token:  "29 Feb",
			layout: "02 Jan",
			anchor: date(2025, time.March, 1),
			want:   date(2024, time.February, 29),
		},
		{
			name:   "leap day in leap anchor year stays put",
			token:  "29 Feb",
			layout: "02 Jan",
			anchor: date(2024, time.March, 1),
			want:   date(2024, time.February, 29),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(tt.token, tt.layout, &tt.anchor)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveWithoutAnchor(t *testing.T) {
	now := func() time.Time { return date(2025, time.June, 1) }

	got, err := resolve("12 Jan", "02 Jan", nil, now)
	require.NoError(t, err)
	assert.Equal(t, date(2025, time.January, 12), got,
		"without an anchor the current wall-clock year is assumed")

	// 2025 is not a leap year: the forward search lands on 2028.
	got, err = resolve("29 Feb", "02 Jan", nil, now)
	require.NoError(t, err)
	assert.Equal(t, date(2028, time.February, 29), got)
}

func TestResolveErrors(t *testing.T) {
	anchor := date(2024, time.June, 1)

	tests := []struct {
		name   string
		token  string
		layout string
	}{
		{name: "garbage token", token: "not a date", layout: "02 Jan"},
		{name: "day out of range", token: "32 Jan", layout: "02 Jan"},
		{name: "impossible day", token: "30 Feb", layout: "02 Jan"},
		{name: "wrong layout", token: "14NOV", layout: "02 Jan"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Resolve(tt.token, tt.layout, &anchor)
			require.Error(t, err)
			var parseErr *ParseError
			assert.ErrorAs(t, err, &parseErr)
		})
	}
}

func TestParseFull(t *testing.T) {
	layouts := []string{"2 Jan 2006", "January 2, 2006"}

	got, ok := ParseFull("November 15, 2024", layouts)
	require.True(t, ok)
	assert.Equal(t, date(2024, time.November, 15), got)

	got, ok = ParseFull("15 Nov 2024", layouts)
	require.True(t, ok)
	assert.Equal(t, date(2024, time.November, 15), got)

	_, ok = ParseFull("15/11/2024", layouts)
	assert.False(t, ok)
}

func TestNormalizeCase(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"14NOV", "14Nov"},
		{"15 nov 2024", "15 Nov 2024"},
		{"NOVEMBER 15, 2024", "November 15, 2024"},
		{"12 Jan", "12 Jan"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeCase(tt.in))
	}
}
