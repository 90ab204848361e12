package orchestrators

import (
	"context"
	"errors"
	"log/slog"

	"gymdesk/internal/adapters/storage/settings"
	"gymdesk/internal/domain/session"
)

// Authenticator defines the backend call needed by Login.
type Authenticator interface {
	Login(ctx context.Context, username, password string) (string, error)
}

// TokenStore defines the settings-store interface needed by the auth
// orchestrators to persist the backend token across restarts.
type TokenStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// LoginInput carries input for the login orchestrator.
type LoginInput struct {
	Username string
	Password string
}

// LoginDeps holds dependencies for Login.
type LoginDeps struct {
	Backend  Authenticator
	Settings TokenStore
	Gate     *session.Gate
}

// ErrMissingCredentials is returned before any network call when either
// field is empty.
var ErrMissingCredentials = errors.New("please enter username and password")

// ExecuteLogin exchanges admin credentials for a backend token and opens
// the auth gate.
// PRE: deps.Gate is non-nil
// POST: on success the gate is open and the token is persisted
// INVARIANT: empty credentials never reach the backend
func ExecuteLogin(ctx context.Context, input LoginInput, deps LoginDeps) error {
	if input.Username == "" || input.Password == "" {
		return ErrMissingCredentials
	}

	token, err := deps.Backend.Login(ctx, input.Username, input.Password)
	if err != nil {
		slog.Info("auth_event", "event", "login_failed", "username", input.Username)
		return err
	}

	deps.Gate.Open(token)

	// Persisting the token only affects restart restore; a failed write
	// does not undo the login.
	if err := deps.Settings.Set(ctx, settings.KeyAuthToken, token); err != nil {
		slog.Warn("auth_event", "event", "token_persist_failed", "error", err)
	}

	slog.Info("auth_event", "event", "login_success", "username", input.Username)
	return nil
}

// LogoutDeps holds dependencies for Logout.
type LogoutDeps struct {
	Settings TokenStore
	Gate     *session.Gate
}

// ExecuteLogout closes the auth gate and discards the persisted token.
// POST: the gate is closed even if the settings delete fails
func ExecuteLogout(ctx context.Context, deps LogoutDeps) {
	deps.Gate.Close()
	if err := deps.Settings.Delete(ctx, settings.KeyAuthToken); err != nil {
		slog.Warn("auth_event", "event", "token_discard_failed", "error", err)
	}
	slog.Info("auth_event", "event", "logout")
}

// RestoreSession reads the persisted token and returns a gate seeded with
// it. A missing token yields a logged-out gate; the token is never
// validated against the backend here, a stale one simply fails on first use.
// POST: returned gate is non-nil
func RestoreSession(ctx context.Context, store TokenStore) *session.Gate {
	token, err := store.Get(ctx, settings.KeyAuthToken)
	if err != nil {
		if !errors.Is(err, settings.ErrNotFound) {
			slog.Warn("auth_event", "event", "token_restore_failed", "error", err)
		}
		return session.NewGate("")
	}
	if token != "" {
		slog.Info("auth_event", "event", "session_restored")
	}
	return session.NewGate(token)
}
