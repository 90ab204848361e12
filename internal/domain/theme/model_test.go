package theme_test

import (
	"testing"

	"gymdesk/internal/domain/theme"
)

// TestNormalize checks the default-to-light behavior for persisted values.
func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want theme.Theme
	}{
		{"light", theme.Light},
		{"dark", theme.Dark},
		{"", theme.Light},
		{"DARK", theme.Light},
		{"garbage", theme.Light},
	}
	for _, tt := range tests {
		if got := theme.Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

// TestToggleParity verifies toggling twice returns to the original value.
func TestToggleParity(t *testing.T) {
	for _, start := range []theme.Theme{theme.Light, theme.Dark} {
		h := theme.NewHolder(start)
		once := h.Flip()
		if once == start {
			t.Errorf("Flip() from %q did not change the theme", start)
		}
		twice := h.Flip()
		if twice != start {
			t.Errorf("double Flip() from %q = %q, want %q", start, twice, start)
		}
		if h.Current() != start {
			t.Errorf("Current() after double flip = %q, want %q", h.Current(), start)
		}
	}
}
