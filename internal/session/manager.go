// Package session owns the authenticated-user identity and the bearer token
// lifecycle. Nothing else in the process may hold the token string.
package session

import (
	"context"
	"log"
	"sync"

	"storefront/internal/api"
	"storefront/internal/domain"
	"storefront/internal/tokenstore"
)

type backend interface {
	Login(ctx context.Context, username, password string) (*api.LoginResult, error)
	Register(ctx context.Context, username, email, password string) error
	Me(ctx context.Context) (*domain.User, error)
}

// Manager mediates login/register/restore/logout against the backend and
// exposes the current user to the rest of the UI.
type Manager struct {
	api    backend
	store  tokenstore.Store
	logger *log.Logger

	mu       sync.Mutex
	token    string
	user     *domain.User
	gen      uint64
	onLogout []func()
}

// New builds a Manager without a backend. The API client takes the manager
// as its token source, so the two are wired in both directions: construct
// the manager, build the client on top of it, then call SetBackend.
func New(store tokenstore.Store, logger *log.Logger) *Manager {
	return &Manager{store: store, logger: logger}
}

// SetBackend completes the wiring. Must be called before any operation.
func (m *Manager) SetBackend(api backend) {
	m.api = api
}

// OnLogout registers a hook run after every logout, including forced ones.
// The composition root wires the cart reset here.
func (m *Manager) OnLogout(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onLogout = append(m.onLogout, fn)
}

// Token implements api.TokenSource. Empty string means logged out.
func (m *Manager) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

// Current returns the logged-in user, or ok=false when logged out.
func (m *Manager) Current() (domain.User, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.user == nil {
		return domain.User{}, false
	}
	return *m.user, true
}

// SignedIn reports whether a user is logged in.
func (m *Manager) SignedIn() bool {
	_, ok := m.Current()
	return ok
}

// Login exchanges credentials for a session. A response that lands after an
// intervening logout is discarded without touching state or storage.
func (m *Manager) Login(ctx context.Context, username, password string) error {
	m.mu.Lock()
	gen := m.gen
	m.mu.Unlock()

	result, err := m.api.Login(ctx, username, password)
	if err != nil {
		return err
	}

	m.mu.Lock()
	if m.gen != gen {
		m.mu.Unlock()
		if m.logger != nil {
			m.logger.Printf("login response for %q discarded, session changed", username)
		}
		return nil
	}
	m.token = result.Token
	user := result.User
	m.user = &user
	m.mu.Unlock()

	if err := m.store.Save(result.Token); err != nil {
		if m.logger != nil {
			m.logger.Printf("persist token: %v", err)
		}
	}
	return nil
}

// Register creates an account. It never logs the user in.
func (m *Manager) Register(ctx context.Context, username, email, password string) error {
	return m.api.Register(ctx, username, email, password)
}

// Restore rebuilds the session from durable storage on startup. An absent or
// rejected token leaves the manager logged out and returns nil; only errors
// worth retrying (connectivity) propagate, and those keep the stored token.
func (m *Manager) Restore(ctx context.Context) error {
	token, err := m.store.Load()
	if err != nil {
		return err
	}
	if token == "" {
		return nil
	}

	m.mu.Lock()
	gen := m.gen
	m.token = token
	m.mu.Unlock()

	user, err := m.api.Me(ctx)
	if err != nil {
		m.mu.Lock()
		if m.gen == gen {
			m.token = ""
		}
		m.mu.Unlock()
		if domain.IsAuth(err) || domain.IsValidation(err) {
			if clearErr := m.store.Clear(); clearErr != nil && m.logger != nil {
				m.logger.Printf("clear rejected token: %v", clearErr)
			}
			if m.logger != nil {
				m.logger.Printf("stored token rejected: %v", err)
			}
			return nil
		}
		return err
	}

	m.mu.Lock()
	if m.gen != gen {
		m.mu.Unlock()
		return nil
	}
	m.user = user
	m.mu.Unlock()
	return nil
}

// Logout clears the user and token synchronously and runs logout hooks.
// Session end invalidates the cart: stock, pricing, and authorization may
// differ next session.
func (m *Manager) Logout() {
	m.mu.Lock()
	m.token = ""
	m.user = nil
	m.gen++
	hooks := make([]func(), len(m.onLogout))
	copy(hooks, m.onLogout)
	m.mu.Unlock()

	if err := m.store.Clear(); err != nil && m.logger != nil {
		m.logger.Printf("clear token: %v", err)
	}
	for _, fn := range hooks {
		fn()
	}
}
