package theme

import "sync"

// Theme is the process-wide light/dark presentation flag.
type Theme string

const (
	Light Theme = "light"
	Dark  Theme = "dark"
)

// Normalize maps a persisted value to a valid theme, defaulting to light.
func Normalize(s string) Theme {
	if Theme(s) == Dark {
		return Dark
	}
	return Light
}

// Toggled returns the opposite theme.
func (t Theme) Toggled() Theme {
	if t == Dark {
		return Light
	}
	return Dark
}

// IsDark reports whether the dark root class should be applied.
func (t Theme) IsDark() bool {
	return t == Dark
}

// Holder is the in-memory copy of the theme flag. It is initialized once at
// startup from the settings store and mutated only by the toggle orchestrator,
// which writes through to the store.
type Holder struct {
	mu      sync.RWMutex
	current Theme
}

// NewHolder creates a Holder seeded with the given (already normalized) theme.
func NewHolder(initial Theme) *Holder {
	return &Holder{current: Normalize(string(initial))}
}

// Current returns the active theme.
func (h *Holder) Current() Theme {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.current
}

// Flip toggles the active theme and returns the new value.
// POST: Current() returns the new value
func (h *Holder) Flip() Theme {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.current = h.current.Toggled()
	return h.current
}
