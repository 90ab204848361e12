package settings

import (
	"context"
	"errors"
)

// Well-known setting keys.
const (
	KeyTheme     = "theme"
	KeyAuthToken = "auth_token"
)

// ErrNotFound is returned when a setting key has no stored value.
var ErrNotFound = errors.New("setting not found")

// Store persists small key/value settings that survive restarts,
// such as the active theme and the backend auth token.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
