package session

import (
	"context"
	"encoding/json"
	"sync"

	"go-canteen-ordering/canteen"
	"go-canteen-ordering/notify"
)

type State string

const (
	StateAnonymous      State = "anonymous"
	StateAuthenticating State = "authenticating"
	StateAuthenticated  State = "authenticated"
)

// Keys the session writes to the local store. Logout deletes all of them so
// nothing leaks to the next user of a shared device.
const (
	sessionKey      = "canteen_user"
	tokenKey        = "token"
	refreshTokenKey = "refresh_token"
)

// Manager tracks the current identity for one session. Backends are tried in
// the order given; a second backend acts as the demo fallback. At most one
// authentication operation should be in flight per session; the caller
// serializes them.
type Manager struct {
	backends []IdentityBackend
	kv       KeyValue
	notifier notify.Notifier

	mu       sync.Mutex
	state    State
	identity *Identity
}

func NewManager(kv KeyValue, notifier notify.Notifier, backends ...IdentityBackend) *Manager {
	m := &Manager{backends: backends, kv: kv, notifier: notifier, state: StateAnonymous}
	m.restore()
	return m
}

// restore reads the persisted identity once at startup.
func (m *Manager) restore() {
	raw, ok := m.kv.Get(sessionKey)
	if !ok {
		return
	}
	var identity Identity
	if err := json.Unmarshal([]byte(raw), &identity); err != nil {
		m.kv.Delete(sessionKey)
		return
	}
	m.identity = &identity
	m.state = StateAuthenticated
}

func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Identity returns the current identity, or nil when anonymous.
func (m *Manager) Identity() *Identity {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.identity == nil {
		return nil
	}
	identity := *m.identity
	return &identity
}

// UserID is the current identity id, empty when anonymous.
func (m *Manager) UserID() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.identity == nil {
		return ""
	}
	return m.identity.ID
}

// Login tries each backend in order and signs in on the first match. It
// returns the landing path for the identity's role.
func (m *Manager) Login(ctx context.Context, email string, password string) (string, error) {
	m.setState(StateAuthenticating)

	var lastErr error = canteen.ErrInvalidCredentials
	for _, backend := range m.backends {
		identity, err := backend.Authenticate(ctx, email, password)
		if err == nil {
			m.signIn(identity)
			m.notifier.Success("Login successful!")
			return Destination(identity.Role), nil
		}
		lastErr = err
	}

	m.setState(StateAnonymous)
	m.notifier.Error("Invalid email or password")
	if lastErr != canteen.ErrInvalidCredentials {
		// A transport failure on every backend still reads as a failed
		// login to the user; keep the credential error for the caller.
		lastErr = canteen.ErrInvalidCredentials
	}
	return "", lastErr
}

// Signup registers against the primary backend and signs the new customer in.
func (m *Manager) Signup(ctx context.Context, name string, email string, password string) (string, error) {
	if len(m.backends) == 0 {
		return "", canteen.ErrInvalidCredentials
	}
	m.setState(StateAuthenticating)

	identity, err := m.backends[0].Register(ctx, name, email, password)
	if err != nil {
		m.setState(StateAnonymous)
		if err == canteen.ErrEmailInUse {
			m.notifier.Error("Email already in use")
		} else {
			m.notifier.Error("Signup failed. Please try again.")
		}
		return "", err
	}
	m.signIn(identity)
	m.notifier.Success("Account created successfully!")
	return Destination(identity.Role), nil
}

// Logout clears the identity and every persisted session key.
func (m *Manager) Logout() {
	m.mu.Lock()
	m.identity = nil
	m.state = StateAnonymous
	m.mu.Unlock()

	m.kv.Delete(sessionKey)
	m.kv.Delete(tokenKey)
	m.kv.Delete(refreshTokenKey)
	m.notifier.Success("Logged out successfully")
}

// ForgotPassword fires a reset request against the primary backend, like
// Signup; fallback backends hold no resettable credentials. The outcome is
// only notified, never kept as state.
func (m *Manager) ForgotPassword(ctx context.Context, email string) {
	if len(m.backends) == 0 {
		return
	}
	if err := m.backends[0].RequestPasswordReset(ctx, email); err != nil {
		m.notifier.Error("Could not send the reset email. Please try again.")
		return
	}
	m.notifier.Success("Password reset instructions sent")
}

func (m *Manager) ResetPassword(ctx context.Context, token string, newPassword string) {
	if len(m.backends) == 0 {
		return
	}
	if err := m.backends[0].ResetPassword(ctx, token, newPassword); err != nil {
		m.notifier.Error("Password reset failed. The link may have expired.")
		return
	}
	m.notifier.Success("Password updated, please log in")
}

func (m *Manager) signIn(identity Identity) {
	m.mu.Lock()
	m.identity = &identity
	m.state = StateAuthenticated
	m.mu.Unlock()

	raw, err := json.Marshal(identity)
	if err == nil {
		m.kv.Set(sessionKey, string(raw))
	}
}

func (m *Manager) setState(state State) {
	m.mu.Lock()
	m.state = state
	m.mu.Unlock()
}

// Destination maps a role to its landing area.
func Destination(role string) string {
	switch role {
	case RoleAdmin:
		return "/admin"
	case RoleCashier:
		return "/cashier"
	default:
		return "/customer"
	}
}
