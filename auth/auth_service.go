// Package auth implements the credential lifecycle handlers: Register,
// Login, Logout, and RefreshToken. Each handler is a pure orchestration of
// the credential store, the token service, and the session store, and
// returns either a typed success value or an error carrying exactly one of
// the caller-visible kinds.
package auth

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	autherrors "github.com/workmap/auth-service/internal/errors"
	"github.com/workmap/auth-service/sessions"
	"github.com/workmap/auth-service/token"
	"github.com/workmap/auth-service/users"
)

// TokenPair bundles a short-lived access token and a long-lived refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// Repos holds the store dependencies for the Service.
type Repos struct {
	Users    users.Repo    // Durable user records
	Sessions sessions.Repo // One live refresh token per user id
}

// Service provides the four credential lifecycle operations.
type Service struct {
	repos  Repos
	tokens *token.Service
}

// NewService initializes a Service with its required dependencies.
func NewService(repos Repos, tokens *token.Service) (*Service, error) {
	if repos.Users == nil {
		return nil, errors.New("[NewService] Users repo is required")
	}
	if repos.Sessions == nil {
		return nil, errors.New("[NewService] Sessions repo is required")
	}
	if tokens == nil {
		return nil, errors.New("[NewService] token service is required")
	}
	return &Service{repos: repos, tokens: tokens}, nil
}

// Register creates a new user from an email and plaintext password and logs
// them in. Checks run in order and the first failure wins: email syntax,
// password policy, email availability. The store's uniqueness constraint is
// the final arbiter for concurrent registrations of the same email.
func (s *Service) Register(ctx context.Context, email, password string) (*TokenPair, error) {
	if !ValidEmail(email) {
		return nil, autherrors.New(autherrors.KindInvalidArgument, "invalid email format")
	}
	if !ValidPassword(password) {
		return nil, autherrors.New(autherrors.KindInvalidArgument, "password policy violation")
	}

	exists, err := s.repos.Users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, autherrors.Internal(errors.Wrap(err, "[Register] checking email existence"))
	}
	if exists {
		return nil, autherrors.New(autherrors.KindAlreadyExists, "user email taken")
	}

	passwordHash, err := users.HashPassword(password)
	if err != nil {
		return nil, autherrors.Internal(errors.Wrap(err, "[Register] hashing password"))
	}

	user := &users.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: passwordHash,
	}
	if err := s.repos.Users.Insert(ctx, user); err != nil {
		if errors.Is(err, users.ErrEmailTaken) {
			return nil, autherrors.New(autherrors.KindAlreadyExists, "user email taken")
		}
		return nil, autherrors.Internal(errors.Wrap(err, "[Register] inserting user"))
	}

	return s.issueTokens(ctx, user)
}

// Login verifies credentials and issues a fresh token pair, overwriting any
// existing session for the user. An unknown email and a wrong password
// produce the identical failure so callers cannot enumerate accounts.
func (s *Service) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	user, err := s.repos.Users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return nil, autherrors.New(autherrors.KindUnauthenticated, "user not found")
		}
		return nil, autherrors.Internal(errors.Wrap(err, "[Login] fetching user"))
	}

	if !users.CheckPasswordHash(password, user.PasswordHash) {
		// Same kind and message as the unknown-email case above.
		return nil, autherrors.New(autherrors.KindUnauthenticated, "user not found")
	}

	return s.issueTokens(ctx, user)
}

// Logout terminates the session of the user named by the refresh token's
// subject. The token's embedded identity is trusted as-is: it is not
// compared against the currently stored refresh token, so any still-signed
// refresh token for a user can end that user's session, including a stale
// one. This asymmetry with RefreshToken is deliberate and preserved.
func (s *Service) Logout(ctx context.Context, refreshToken string) error {
	principal, err := s.tokens.DecodeRefresh(refreshToken)
	if err != nil {
		return err
	}

	if _, err := s.repos.Users.GetByID(ctx, principal.UserID); err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return autherrors.New(autherrors.KindNotFound, "user not found")
		}
		return autherrors.Internal(errors.Wrap(err, "[Logout] fetching user"))
	}

	existed, err := s.repos.Sessions.Remove(ctx, principal.UserID)
	if err != nil {
		return autherrors.Internal(errors.Wrap(err, "[Logout] removing session"))
	}
	if !existed {
		return autherrors.New(autherrors.KindNotFound, "token not found")
	}
	return nil
}

// RefreshToken exchanges a live refresh token for a new access token. The
// presented token must byte-for-byte equal the stored session value; that
// equality check is the sole revocation mechanism. The refresh token itself
// is not rotated.
func (s *Service) RefreshToken(ctx context.Context, refreshToken string) (string, error) {
	principal, err := s.tokens.DecodeRefresh(refreshToken)
	if err != nil {
		return "", err
	}

	user, err := s.repos.Users.GetByID(ctx, principal.UserID)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return "", autherrors.New(autherrors.KindNotFound, "user not found")
		}
		return "", autherrors.Internal(errors.Wrap(err, "[RefreshToken] fetching user"))
	}

	stored, err := s.repos.Sessions.Get(ctx, user.ID)
	if err != nil {
		if errors.Is(err, sessions.ErrNotFound) {
			return "", autherrors.New(autherrors.KindNotFound, "refresh token not found")
		}
		return "", autherrors.Internal(errors.Wrap(err, "[RefreshToken] fetching session"))
	}
	if stored != refreshToken {
		return "", autherrors.New(autherrors.KindNotFound, "refresh token not found")
	}

	accessToken, err := s.tokens.MintAccess(user)
	if err != nil {
		return "", autherrors.Internal(errors.Wrap(err, "[RefreshToken] minting access token"))
	}
	return accessToken, nil
}

// issueTokens mints both tokens and upserts the session record. The session
// TTL equals the refresh token's own expiry. If storing fails after the user
// row exists the state is still consistent: a later login repairs it.
func (s *Service) issueTokens(ctx context.Context, user *users.User) (*TokenPair, error) {
	accessToken, err := s.tokens.MintAccess(user)
	if err != nil {
		return nil, autherrors.Internal(errors.Wrap(err, "[issueTokens] minting access token"))
	}
	refreshToken, err := s.tokens.MintRefresh(user)
	if err != nil {
		return nil, autherrors.Internal(errors.Wrap(err, "[issueTokens] minting refresh token"))
	}
	if err := s.repos.Sessions.Store(ctx, user.ID, refreshToken, s.tokens.RefreshExpiry()); err != nil {
		return nil, autherrors.Internal(errors.Wrap(err, "[issueTokens] storing session"))
	}
	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}
