package view_test

import (
	"testing"

	"gymdesk/internal/domain/view"
)

// TestValid accepts exactly the five view names.
func TestValid(t *testing.T) {
	for _, v := range view.All() {
		if !view.Valid(string(v)) {
			t.Errorf("Valid(%q) = false, want true", v)
		}
	}
	for _, name := range []string{"", "login", "DASHBOARD", "settings"} {
		if view.Valid(name) {
			t.Errorf("Valid(%q) = true, want false", name)
		}
	}
}

// TestPathsAreDistinct guards against two views sharing a route.
func TestPathsAreDistinct(t *testing.T) {
	seen := map[string]view.View{}
	for _, v := range view.All() {
		p := v.Path()
		if p == "" {
			t.Errorf("view %q has empty path", v)
		}
		if prev, ok := seen[p]; ok {
			t.Errorf("views %q and %q share path %q", prev, v, p)
		}
		seen[p] = v
	}
}

func TestDefault(t *testing.T) {
	if view.Default != view.Dashboard {
		t.Errorf("default view = %q, want %q", view.Default, view.Dashboard)
	}
}
