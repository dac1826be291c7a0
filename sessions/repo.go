// Package sessions tracks the single currently-valid refresh token per user.
// The stored value is the sole server-side revocation mechanism: a presented
// refresh token that does not byte-for-byte equal the stored one is dead,
// even if its signature and expiry are still good.
package sessions

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by Get when no session record exists for the user.
// Absence is an expected state, not a store failure.
var ErrNotFound = errors.New("session not found")

// Repo is the session store contract, keyed by user ID. Records expire on
// their own after the stored TTL; no sweeper is needed.
type Repo interface {
	// Get returns the stored refresh token for the user, or ErrNotFound.
	Get(ctx context.Context, userID string) (string, error)
	// Store upserts the user's refresh token, overwriting any prior session
	// and resetting the TTL. Last writer wins for concurrent logins.
	Store(ctx context.Context, userID, token string, ttl time.Duration) error
	// Remove deletes the user's session and reports whether one existed.
	Remove(ctx context.Context, userID string) (bool, error)
}
