package orchestrators

import (
	"context"
	"errors"
	"log/slog"

	"gymdesk/internal/adapters/storage/settings"
	"gymdesk/internal/domain/theme"
)

// ThemeStore defines the settings-store interface needed by the theme
// orchestrator.
type ThemeStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

// ToggleThemeDeps holds dependencies for ToggleTheme.
type ToggleThemeDeps struct {
	Holder   *theme.Holder
	Settings ThemeStore
}

// ExecuteToggleTheme flips the active theme and writes it through to the
// settings store so it survives restarts.
// PRE: deps.Holder is non-nil
// POST: Holder carries the new theme even if the settings write fails
func ExecuteToggleTheme(ctx context.Context, deps ToggleThemeDeps) theme.Theme {
	next := deps.Holder.Flip()
	if err := deps.Settings.Set(ctx, settings.KeyTheme, string(next)); err != nil {
		slog.Warn("theme_event", "event", "theme_persist_failed", "error", err)
	}
	slog.Info("theme_event", "event", "theme_toggled", "theme", string(next))
	return next
}

// LoadTheme reads the persisted theme and returns a holder seeded with it.
// An unrecognized or missing value falls back to light.
// POST: returned holder is non-nil
func LoadTheme(ctx context.Context, store ThemeStore) *theme.Holder {
	value, err := store.Get(ctx, settings.KeyTheme)
	if err != nil && !errors.Is(err, settings.ErrNotFound) {
		slog.Warn("theme_event", "event", "theme_load_failed", "error", err)
	}
	return theme.NewHolder(theme.Normalize(value))
}
