package canteen

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthorized is returned before any remote call when an operation
	// requires an identity and none is present.
	ErrUnauthorized = errors.New("this action requires a signed-in user")

	// ErrEmptyCart rejects checkout of a cart with no lines.
	ErrEmptyCart = errors.New("cart is empty")

	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailInUse         = errors.New("email already in use")
)

// FetchError wraps a failed read. The previously cached data is kept as-is.
type FetchError struct {
	Op  string
	Err error
}

func (e *FetchError) Error() string { return fmt.Sprintf("%s: fetch failed: %v", e.Op, e.Err) }
func (e *FetchError) Unwrap() error { return e.Err }

// PersistenceError wraps a failed remote write. The local cache is unchanged.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string { return fmt.Sprintf("%s: write failed: %v", e.Op, e.Err) }
func (e *PersistenceError) Unwrap() error { return e.Err }
