// Package session owns the authenticated-identity lifecycle: login,
// registration, logout, profile refresh, and restoring a session from the
// durable credential projection on startup. Consumers observe failures
// through state, not returned errors bubbling past this layer.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/spineguard/spinectl/internal/client/api"
	"github.com/spineguard/spinectl/internal/client/credentials"
	"github.com/spineguard/spinectl/internal/client/models"
	"github.com/spineguard/spinectl/internal/logging"
)

// State is the lifecycle position of the session.
type State string

const (
	StateAnonymous      State = "anonymous"
	StateAuthenticating State = "authenticating"
	StateAuthenticated  State = "authenticated"
	StateAuthFailed     State = "auth_failed"
)

// ErrAuthInFlight is returned when a login or registration is invoked
// while another auth attempt is still running. The new attempt is
// rejected, never queued.
var ErrAuthInFlight = errors.New("authentication already in progress")

// Manager is the single writer of the credential store and the current
// token. It exposes the current identity, lifecycle state, and the last
// auth error; the error is reset whenever a new attempt begins.
type Manager struct {
	client api.Client
	creds  *credentials.Store
	log    logging.Logger

	mu           sync.Mutex
	state        State
	identity     *models.Identity
	lastErr      error
	tokenExpired bool
	onLogout     func(ctx context.Context)
}

func NewManager(client api.Client, creds *credentials.Store, log logging.Logger) *Manager {
	return &Manager{
		client: client,
		creds:  creds,
		log:    log,
		state:  StateAnonymous,
	}
}

// SetLogoutHook registers a callback run on every logout transition.
// The synchronizer uses it to stop polling and drop mirrored state.
func (m *Manager) SetLogoutHook(fn func(ctx context.Context)) {
	m.mu.Lock()
	m.onLogout = fn
	m.mu.Unlock()
}

// Restore loads the persisted identity projection, if any, and moves
// straight to Authenticated without revalidating the token remotely.
// Token validity is discovered lazily on the first authenticated call;
// an already-expired token is flagged via TokenExpired so the caller can
// tell the user instead of letting the first call fail silently.
func (m *Manager) Restore(ctx context.Context) error {
	id, ok, err := m.creds.LoadIdentity(ctx)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	expired := isTokenExpired(id.Token)
	if expired {
		m.log.Warn(ctx, "restored session token is expired, re-login required", "user", id.Username)
	}

	m.client.SetToken(id.Token)

	m.mu.Lock()
	m.identity = &id
	m.state = StateAuthenticated
	m.tokenExpired = expired
	m.mu.Unlock()

	m.log.Info(ctx, "session restored", "user", id.Username)
	return nil
}

// beginAuth transitions to Authenticating and clears the previous error.
// Returns false when another auth attempt is already running.
func (m *Manager) beginAuth() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == StateAuthenticating {
		return false
	}
	m.state = StateAuthenticating
	m.lastErr = nil
	return true
}

func (m *Manager) finishAuth(id models.Identity, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err != nil {
		m.state = StateAuthFailed
		m.lastErr = err
		return
	}
	m.identity = &id
	m.state = StateAuthenticated
	m.tokenExpired = false
}

// Login authenticates against the backend. The returned token is durably
// stored by the client before this method observes success.
func (m *Manager) Login(ctx context.Context, username, password string) error {
	if !m.beginAuth() {
		return ErrAuthInFlight
	}

	id, err := m.client.Login(ctx, username, password)
	m.finishAuth(id, err)
	if err != nil {
		m.log.Warn(ctx, "login failed", "user", username, "err", err)
		return err
	}

	m.log.Info(ctx, "login successful", "user", id.Username)
	return nil
}

// Register creates an account and logs straight into it, mirroring the
// backend's auto-login on registration.
func (m *Manager) Register(ctx context.Context, req api.RegisterRequest) error {
	if !m.beginAuth() {
		return ErrAuthInFlight
	}

	id, err := m.client.Register(ctx, req)
	m.finishAuth(id, err)
	if err != nil {
		m.log.Warn(ctx, "registration failed", "user", req.Username, "err", err)
		return err
	}

	m.log.Info(ctx, "registration successful", "user", id.Username)
	return nil
}

// UpdateProfile refreshes the identity's profile fields from the backend.
// Best effort: on failure the current identity stays untouched and only
// the last error is recorded.
func (m *Manager) UpdateProfile(ctx context.Context) error {
	m.mu.Lock()
	if m.identity == nil {
		m.mu.Unlock()
		return nil
	}
	userID := m.identity.ID
	m.lastErr = nil
	m.mu.Unlock()

	profile, err := m.client.GetProfile(ctx, userID)
	m.mu.Lock()
	defer m.mu.Unlock()
	if err != nil {
		m.lastErr = err
		return err
	}
	if m.identity != nil && m.identity.ID == userID {
		m.identity.Username = profile.Username
		m.identity.DisplayName = profile.Username
	}
	return nil
}

// Logout clears the identity, the credential store, and the injected
// token, then runs the logout hook. Idempotent: a second call leaves the
// same end state as the first.
func (m *Manager) Logout(ctx context.Context) error {
	m.mu.Lock()
	hook := m.onLogout
	m.identity = nil
	m.state = StateAnonymous
	m.lastErr = nil
	m.tokenExpired = false
	m.mu.Unlock()

	m.client.ClearToken()

	if err := m.creds.Clear(ctx); err != nil {
		m.log.Error(ctx, "failed to clear credential store on logout", "err", err)
		return err
	}

	if hook != nil {
		hook(ctx)
	}
	m.log.Info(ctx, "logged out")
	return nil
}

// Identity returns the current identity, if authenticated.
func (m *Manager) Identity() (models.Identity, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.identity == nil {
		return models.Identity{}, false
	}
	return *m.identity, true
}

func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *Manager) LastError() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastErr
}

// TokenExpired reports whether the restored token carried an exp claim in
// the past. It never blocks a restored session on its own.
func (m *Manager) TokenExpired() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tokenExpired
}

// isTokenExpired inspects the token's exp claim without verifying the
// signature. The token stays opaque otherwise; a token that is not a JWT
// or has no exp claim is treated as not expired.
func isTokenExpired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}
