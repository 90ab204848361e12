package session

import "sync"

// State is the tagged auth state of the panel: LoggedOut (zero value) or
// LoggedIn carrying the backend-issued token. The token is opaque; the panel
// never inspects or decodes it.
type State struct {
	Token string
}

// LoggedIn reports whether the state carries a token.
func (s State) LoggedIn() bool {
	return s.Token != ""
}

// Gate is the process-wide auth gate. It is initialized once at startup from
// the persisted token and mutated only by the login and logout orchestrators,
// which write through to the settings store.
type Gate struct {
	mu    sync.RWMutex
	state State
}

// NewGate creates a Gate. An empty token yields the LoggedOut state.
func NewGate(token string) *Gate {
	return &Gate{state: State{Token: token}}
}

// Current returns the auth state.
func (g *Gate) Current() State {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.state
}

// Open transitions to LoggedIn with the given token.
// PRE: token is non-empty
// POST: Current().LoggedIn() is true
func (g *Gate) Open(token string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.state = State{Token: token}
}

// Close transitions to LoggedOut.
// POST: Current().LoggedIn() is false
func (g *Gate) Close() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.state = State{}
}

// Token returns the backend token and whether the gate is open. Used by the
// backend client to attach the bearer credential.
func (g *Gate) Token() (string, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.state.Token, g.state.LoggedIn()
}
