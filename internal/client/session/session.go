// Package session owns the authenticated-user state for the client process:
// the current user and bearer token, synchronized with the local credential
// store so a relaunch does not lose the session.
//
// Invariant: in an authenticated state user and token are set together and
// cleared together; no reachable state has exactly one of the two.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/XXS1337/rentease/internal/client/models"
	"github.com/XXS1337/rentease/internal/logging"
)

// ErrNotAuthenticated is returned by operations that require a session.
var ErrNotAuthenticated = errors.New("not authenticated")

// Manager is the single source of truth for "who is logged in".
//
// It is safe for concurrent use. The forced-expiry side effect is single-shot
// per authenticated session: however many in-flight requests fail with an
// expired token at once, the notify hook runs exactly once, re-armed by the
// next Login.
type Manager struct {
	mu    sync.Mutex
	user  *models.User
	token string

	store     Store
	log       logging.Logger
	expired   *sync.Once
	onExpired func()

	// now is a test seam for token-expiry checks.
	now func() time.Time
}

func NewManager(store Store, log logging.Logger) *Manager {
	return &Manager{
		store:   store,
		log:     log,
		expired: &sync.Once{},
		now:     time.Now,
	}
}

// SetExpiredHandler registers the hook run after a forced expiry has cleared
// the session (typically: tell the user, drop to the login prompt).
func (m *Manager) SetExpiredHandler(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onExpired = fn
}

// Login atomically installs the user and token, persists both, and re-arms
// the forced-expiry guard.
func (m *Manager) Login(ctx context.Context, u *models.User, token string) error {
	if u == nil || token == "" {
		return errors.New("session requires both user and token")
	}

	m.mu.Lock()
	m.user = u.Clone()
	m.token = token
	m.expired = &sync.Once{}
	m.mu.Unlock()

	return m.store.SaveSession(ctx, token, u)
}

// Logout atomically clears the in-memory state and wipes the persisted
// credential.
func (m *Manager) Logout(ctx context.Context) error {
	m.mu.Lock()
	m.user = nil
	m.token = ""
	m.mu.Unlock()

	return m.store.Clear(ctx)
}

// Token implements api.TokenSource.
func (m *Manager) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

// User returns a copy of the cached profile, or nil when anonymous.
func (m *Manager) User() *models.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.user.Clone()
}

func (m *Manager) Authenticated() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.user != nil && m.token != ""
}

// UpdateUser refreshes the cached profile in place without touching the
// token, and persists the new copy.
func (m *Manager) UpdateUser(ctx context.Context, u *models.User) error {
	if u == nil {
		return errors.New("nil user")
	}

	m.mu.Lock()
	if m.user == nil || m.token == "" {
		m.mu.Unlock()
		return ErrNotAuthenticated
	}
	m.user = u.Clone()
	m.mu.Unlock()

	return m.store.SaveUser(ctx, u)
}

// SetRole flips the cached role immediately. A privileged user demoting their
// own account must see the new role within the same interaction, without
// waiting for a refetch, or stale UI guards would keep admin commands open.
func (m *Manager) SetRole(ctx context.Context, role models.Role) error {
	m.mu.Lock()
	if m.user == nil {
		m.mu.Unlock()
		return ErrNotAuthenticated
	}
	m.user.Role = role
	u := m.user.Clone()
	m.mu.Unlock()

	return m.store.SaveUser(ctx, u)
}

// Rehydrate restores a session at application start: it loads the persisted
// token and asks the backend who it belongs to via fetch. Every failure path
// leaves the manager anonymous without surfacing an error; a stale credential
// is an expected condition, not a fault.
func (m *Manager) Rehydrate(ctx context.Context, fetch func(ctx context.Context) (*models.User, error)) {
	token, err := m.store.LoadToken(ctx)
	if err != nil || token == "" {
		return
	}

	// A token that is already past its exp claim cannot succeed; skip the
	// round trip and discard it.
	if exp, ok := TokenExpiry(token); ok && exp.Before(m.now()) {
		m.log.Debug(ctx, "persisted token already expired", "expired_at", exp)
		_ = m.store.Clear(ctx)
		return
	}

	m.mu.Lock()
	m.token = token
	m.mu.Unlock()

	u, err := fetch(ctx)
	if err != nil || u == nil {
		m.log.Debug(ctx, "session rehydration failed", "err", err)
		m.mu.Lock()
		m.token = ""
		m.user = nil
		m.mu.Unlock()
		_ = m.store.Clear(ctx)
		return
	}

	m.mu.Lock()
	m.user = u.Clone()
	m.expired = &sync.Once{}
	m.mu.Unlock()

	_ = m.store.SaveUser(ctx, u)
}

// ForceExpire is the hook the API client invokes on detecting a known
// session-invalidity response. It erases the persisted credential, clears the
// in-memory state, and runs the expired handler — exactly once per session
// even when several concurrent requests fail together.
func (m *Manager) ForceExpire() {
	m.mu.Lock()
	once := m.expired
	m.mu.Unlock()

	once.Do(func() {
		m.mu.Lock()
		m.user = nil
		m.token = ""
		handler := m.onExpired
		m.mu.Unlock()

		if err := m.store.Clear(context.Background()); err != nil {
			m.log.Error(context.Background(), "failed to wipe persisted credential", "err", err)
		}
		if handler != nil {
			handler()
		}
	})
}
