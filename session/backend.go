package session

import (
	"context"
	"log"
	"sync"
	"time"

	"go-canteen-ordering/canteen"
	"go-canteen-ordering/models"
	"go-canteen-ordering/store"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

const (
	RoleAdmin    = "admin"
	RoleCashier  = "cashier"
	RoleCustomer = "customer"
)

type Identity struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// IdentityBackend is one source of identities. Backends chain in order; the
// client wiring puts the RemoteBackend first with the fixed demo list behind
// it, and registration and password resets go to the first backend only.
type IdentityBackend interface {
	Authenticate(ctx context.Context, email string, password string) (Identity, error)
	Register(ctx context.Context, name string, email string, password string) (Identity, error)
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token string, newPassword string) error
}

// RemoteBackend authenticates against the remote user store.
type RemoteBackend struct {
	users store.UserStore
}

func NewRemoteBackend(users store.UserStore) *RemoteBackend {
	return &RemoteBackend{users: users}
}

func (b *RemoteBackend) Authenticate(ctx context.Context, email string, password string) (Identity, error) {
	user, err := b.users.UserByEmail(ctx, email)
	if err == store.ErrNotFound {
		return Identity{}, canteen.ErrInvalidCredentials
	}
	if err != nil {
		return Identity{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(*user.Password), []byte(password)) != nil {
		return Identity{}, canteen.ErrInvalidCredentials
	}
	return identityFromUser(user), nil
}

func (b *RemoteBackend) Register(ctx context.Context, name string, email string, password string) (Identity, error) {
	count, err := b.users.CountByEmail(ctx, email)
	if err != nil {
		return Identity{}, err
	}
	if count > 0 {
		return Identity{}, canteen.ErrEmailInUse
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), 14)
	if err != nil {
		return Identity{}, err
	}
	hashedStr := string(hashed)
	role := RoleCustomer

	var user models.User
	user.ID = primitive.NewObjectID()
	user.User_id = user.ID.Hex()
	user.Name = &name
	user.Email = &email
	user.Password = &hashedStr
	user.User_role = &role
	user.Created_at, _ = time.Parse(time.RFC3339, time.Now().Format(time.RFC3339))
	user.Updated_at = user.Created_at

	if err := b.users.InsertUser(ctx, user); err != nil {
		return Identity{}, err
	}
	return identityFromUser(user), nil
}

func (b *RemoteBackend) RequestPasswordReset(ctx context.Context, email string) error {
	token := uuid.NewString()
	if err := b.users.SetResetToken(ctx, email, token); err != nil {
		return err
	}
	// Delivery of the token is the mail subsystem's job; log it for now.
	log.Printf("password reset token issued for %s", email)
	return nil
}

func (b *RemoteBackend) ResetPassword(ctx context.Context, token string, newPassword string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), 14)
	if err != nil {
		return err
	}
	return b.users.ResetPassword(ctx, token, string(hashed))
}

func identityFromUser(user models.User) Identity {
	identity := Identity{ID: user.User_id}
	if user.Name != nil {
		identity.Name = *user.Name
	}
	if user.Email != nil {
		identity.Email = *user.Email
	}
	if user.User_role != nil {
		identity.Role = *user.User_role
	}
	return identity
}

// FixedListBackend holds a small fixed identity list for offline demo use.
type FixedListBackend struct {
	mu      sync.Mutex
	entries []FixedIdentity
}

type FixedIdentity struct {
	Identity
	Password string
}

// DemoIdentities are the stock demo accounts.
func DemoIdentities() []FixedIdentity {
	return []FixedIdentity{
		{Identity: Identity{ID: "1", Name: "Admin User", Email: "admin@canteen.com", Role: RoleAdmin}, Password: "admin123"},
		{Identity: Identity{ID: "2", Name: "Cashier User", Email: "cashier@canteen.com", Role: RoleCashier}, Password: "cashier123"},
		{Identity: Identity{ID: "3", Name: "Customer User", Email: "customer@canteen.com", Role: RoleCustomer}, Password: "customer123"},
	}
}

func NewFixedListBackend(entries []FixedIdentity) *FixedListBackend {
	return &FixedListBackend{entries: entries}
}

func (b *FixedListBackend) Authenticate(ctx context.Context, email string, password string) (Identity, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, entry := range b.entries {
		if entry.Email == email && entry.Password == password {
			return entry.Identity, nil
		}
	}
	return Identity{}, canteen.ErrInvalidCredentials
}

func (b *FixedListBackend) Register(ctx context.Context, name string, email string, password string) (Identity, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, entry := range b.entries {
		if entry.Email == email {
			return Identity{}, canteen.ErrEmailInUse
		}
	}
	identity := Identity{ID: uuid.NewString(), Name: name, Email: email, Role: RoleCustomer}
	b.entries = append(b.entries, FixedIdentity{Identity: identity, Password: password})
	return identity, nil
}

func (b *FixedListBackend) RequestPasswordReset(ctx context.Context, email string) error {
	return nil
}

func (b *FixedListBackend) ResetPassword(ctx context.Context, token string, newPassword string) error {
	return nil
}
