package users

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned by lookups when no user matches.
	ErrNotFound = errors.New("user not found")
	// ErrEmailTaken is returned by Insert when the email is already stored.
	// The store's uniqueness constraint is the final arbiter for concurrent
	// registrations, not the caller's prior existence check.
	ErrEmailTaken = errors.New("email already taken")
)

// Repo is the credential store contract. All calls honour ctx cancellation.
type Repo interface {
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Insert(ctx context.Context, user *User) error
}
