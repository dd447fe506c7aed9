package session_test

import (
	"context"
	"errors"
	"testing"

	"go-canteen-ordering/canteen"
	"go-canteen-ordering/notify"
	"go-canteen-ordering/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// downBackend simulates a remote auth subsystem that is unreachable.
type downBackend struct{}

func (downBackend) Authenticate(ctx context.Context, email, password string) (session.Identity, error) {
	return session.Identity{}, errors.New("remote auth unreachable")
}
func (downBackend) Register(ctx context.Context, name, email, password string) (session.Identity, error) {
	return session.Identity{}, errors.New("remote auth unreachable")
}
func (downBackend) RequestPasswordReset(ctx context.Context, email string) error {
	return errors.New("remote auth unreachable")
}
func (downBackend) ResetPassword(ctx context.Context, token, newPassword string) error {
	return errors.New("remote auth unreachable")
}

func demoManager(kv session.KeyValue) *session.Manager {
	return session.NewManager(kv, notify.Discard{},
		session.NewFixedListBackend(session.DemoIdentities()))
}

func TestLoginWithDemoIdentity(t *testing.T) {
	m := demoManager(session.NewMemoryStore())

	destination, err := m.Login(context.Background(), "admin@canteen.com", "admin123")

	require.NoError(t, err)
	assert.Equal(t, "/admin", destination)
	assert.Equal(t, session.StateAuthenticated, m.State())
	identity := m.Identity()
	require.NotNil(t, identity)
	assert.Equal(t, session.RoleAdmin, identity.Role)
}

func TestLoginFallsBackToFixedListWhenRemoteIsDown(t *testing.T) {
	m := session.NewManager(session.NewMemoryStore(), notify.Discard{},
		downBackend{},
		session.NewFixedListBackend(session.DemoIdentities()))

	destination, err := m.Login(context.Background(), "cashier@canteen.com", "cashier123")

	require.NoError(t, err)
	assert.Equal(t, "/cashier", destination)
	assert.Equal(t, session.StateAuthenticated, m.State())
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	m := demoManager(session.NewMemoryStore())

	_, err := m.Login(context.Background(), "admin@canteen.com", "wrong")

	assert.ErrorIs(t, err, canteen.ErrInvalidCredentials)
	assert.Equal(t, session.StateAnonymous, m.State())
	assert.Nil(t, m.Identity())
	assert.Empty(t, m.UserID())
}

func TestSessionPersistsAcrossRestart(t *testing.T) {
	kv := session.NewMemoryStore()
	m := demoManager(kv)
	_, err := m.Login(context.Background(), "customer@canteen.com", "customer123")
	require.NoError(t, err)

	restored := demoManager(kv)
	assert.Equal(t, session.StateAuthenticated, restored.State())
	identity := restored.Identity()
	require.NotNil(t, identity)
	assert.Equal(t, "customer@canteen.com", identity.Email)
}

func TestLogoutClearsEveryPersistedKey(t *testing.T) {
	kv := session.NewMemoryStore()
	kv.Set("token", "jwt")
	kv.Set("refresh_token", "jwt-refresh")

	m := demoManager(kv)
	_, err := m.Login(context.Background(), "customer@canteen.com", "customer123")
	require.NoError(t, err)

	m.Logout()

	assert.Equal(t, session.StateAnonymous, m.State())
	assert.Nil(t, m.Identity())
	for _, key := range []string{"canteen_user", "token", "refresh_token"} {
		_, ok := kv.Get(key)
		assert.Falsef(t, ok, "key %q must be cleared on logout", key)
	}
}

func TestSignupNewCustomer(t *testing.T) {
	m := demoManager(session.NewMemoryStore())

	destination, err := m.Signup(context.Background(), "New User", "new@canteen.com", "secret12")

	require.NoError(t, err)
	assert.Equal(t, "/customer", destination)
	identity := m.Identity()
	require.NotNil(t, identity)
	assert.Equal(t, session.RoleCustomer, identity.Role)
}

func TestSignupRejectsDuplicateEmail(t *testing.T) {
	m := demoManager(session.NewMemoryStore())

	_, err := m.Signup(context.Background(), "Someone", "admin@canteen.com", "secret12")

	assert.ErrorIs(t, err, canteen.ErrEmailInUse)
	assert.Equal(t, session.StateAnonymous, m.State())
}

func TestDestinationByRole(t *testing.T) {
	assert.Equal(t, "/admin", session.Destination(session.RoleAdmin))
	assert.Equal(t, "/cashier", session.Destination(session.RoleCashier))
	assert.Equal(t, "/customer", session.Destination(session.RoleCustomer))
	assert.Equal(t, "/customer", session.Destination("anything-else"))
}

func TestFileStoreRoundTrip(t *testing.T) {
	path := t.TempDir() + "/session.json"

	kv, err := session.NewFileStore(path)
	require.NoError(t, err)
	kv.Set("canteen_user", `{"id":"1"}`)

	reopened, err := session.NewFileStore(path)
	require.NoError(t, err)
	value, ok := reopened.Get("canteen_user")
	require.True(t, ok)
	assert.JSONEq(t, `{"id":"1"}`, value)

	reopened.Delete("canteen_user")
	third, err := session.NewFileStore(path)
	require.NoError(t, err)
	_, ok = third.Get("canteen_user")
	assert.False(t, ok)
}
