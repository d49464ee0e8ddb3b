// Package identity wraps the external identity provider holding the
// credential accounts. Profile documents live in mongo; the provider only
// owns email/password identities and their uids.
package identity

import (
	"context"
	"errors"
)

// ErrUserNotFound is returned when no account exists for the given email or uid.
var ErrUserNotFound = errors.New("identity: user not found")

// ErrEmailExists is returned when an account already exists for the email.
var ErrEmailExists = errors.New("identity: email already exists")

// Record is the provider's view of an account.
type Record struct {
	UID         string
	Email       string
	DisplayName string
}

// Provider is the identity provider contract used by the auth handlers.
type Provider interface {
	CreateUser(ctx context.Context, email, password, displayName string) (*Record, error)
	GetUserByEmail(ctx context.Context, email string) (*Record, error)
	DeleteUser(ctx context.Context, uid string) error
}

// PasswordVerifier is implemented by providers that can check passwords
// themselves. The hosted provider cannot, so login only performs the email
// lookup there; the local provider verifies its stored hash.
type PasswordVerifier interface {
	VerifyPassword(ctx context.Context, email, password string) error
}
