package core

import (
	"testing"
	"time"
)

func TestCurrentBalance(t *testing.T) {
	date := time.Date(2025, time.January, 5, 0, 0, 0, 0, time.UTC)
	cases := []struct {
		name    string
		initial string
		amounts []string
		want    string
	}{
		{"no entries", "100", nil, "100"},
		{"mixed signs", "100", []string{"-30", "50", "-20.50"}, "99.5"},
		{"goes negative", "10", []string{"-25"}, "-15"},
		{"exact decimals", "0.1", []string{"0.2"}, "0.3"},
	}
	for _, tc := range cases {
		var entries []Entry
		for i, a := range tc.amounts {
			entries = append(entries, entry(int64(i+1), date, a, "Misc", CategoryRegular))
		}
		got := CurrentBalance(dec(tc.initial), entries)
		if !got.Equal(dec(tc.want)) {
			t.Fatalf("%s: got %s, want %s", tc.name, got, tc.want)
		}
	}
}
