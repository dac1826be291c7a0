// Package token mints and validates the signed credentials the service
// issues: short-lived access tokens and long-lived refresh tokens. The two
// are signed with different secrets; only the refresh secret is ever used to
// validate tokens presented back to this service. Access tokens are bearer
// credentials checked by resource servers, never here.
package token

import (
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
	"github.com/workmap/auth-service/internal/config"
	autherrors "github.com/workmap/auth-service/internal/errors"
	"github.com/workmap/auth-service/users"
)

// NowTimeFunc returns the current time. It can be overridden in tests.
var NowTimeFunc = time.Now

// Principal is the identity extracted from a validated refresh token.
type Principal struct {
	UserID string
}

// Service is a stateless token factory: a pure function of its signing
// secrets and the clock.
type Service struct {
	accessSecret  []byte
	refreshSecret []byte
	accessExpiry  time.Duration
	refreshExpiry time.Duration
}

// NewService builds a Service from the injected auth configuration. Both
// signing secrets are required and must differ.
func NewService(cfg config.AuthConfig) (*Service, error) {
	accessSecret := cfg.GetAccessTokenSecret()
	refreshSecret := cfg.GetRefreshTokenSecret()

	if accessSecret == "" {
		return nil, errors.New("[NewService] access token secret is required")
	}
	if refreshSecret == "" {
		return nil, errors.New("[NewService] refresh token secret is required")
	}
	if accessSecret == refreshSecret {
		return nil, errors.New("[NewService] access and refresh secrets must differ")
	}

	return &Service{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessExpiry:  cfg.GetAccessTokenExpiry(),
		refreshExpiry: cfg.GetRefreshTokenExpiry(),
	}, nil
}

// RefreshExpiry is the refresh token lifetime. Session records must be stored
// with this same TTL so server-side and token-embedded expiry never diverge.
func (s *Service) RefreshExpiry() time.Duration {
	return s.refreshExpiry
}

// MintAccess creates a signed access token carrying the user's email as its
// only identity claim.
func (s *Service) MintAccess(user *users.User) (string, error) {
	now := NowTimeFunc()
	claims := jwtlib.MapClaims{
		"email": user.Email,
		"iat":   now.Unix(),
		"exp":   now.Add(s.accessExpiry).Unix(),
	}
	signed, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS512, claims).SignedString(s.accessSecret)
	if err != nil {
		return "", errors.Wrap(err, "[MintAccess] signing access token")
	}
	return signed, nil
}

// MintRefresh creates a signed refresh token with the user ID as its subject.
func (s *Service) MintRefresh(user *users.User) (string, error) {
	now := NowTimeFunc()
	claims := jwtlib.MapClaims{
		"sub": user.ID,
		"iat": now.Unix(),
		"exp": now.Add(s.refreshExpiry).Unix(),
	}
	signed, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS512, claims).SignedString(s.refreshSecret)
	if err != nil {
		return "", errors.Wrap(err, "[MintRefresh] signing refresh token")
	}
	return signed, nil
}

// DecodeRefresh verifies a presented refresh token against the refresh
// secret and returns its principal. The three caller-visible failure modes
// are distinguished precisely: a token that cannot be parsed, a token past
// its expiry, and a token signed with a mismatched key. Anything else is an
// internal error, never silently swallowed.
func (s *Service) DecodeRefresh(rawToken string) (Principal, error) {
	claims := &jwtlib.RegisteredClaims{}

	_, err := jwtlib.ParseWithClaims(rawToken, claims,
		func(t *jwtlib.Token) (interface{}, error) { return s.refreshSecret, nil },
		jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS512.Alg()}),
		jwtlib.WithTimeFunc(NowTimeFunc),
	)

	switch {
	case err == nil:
	case errors.Is(err, jwtlib.ErrTokenMalformed):
		return Principal{}, autherrors.New(autherrors.KindUnauthenticated, "invalid token format")
	case errors.Is(err, jwtlib.ErrTokenExpired):
		return Principal{}, autherrors.New(autherrors.KindUnauthenticated, "token has expired")
	case errors.Is(err, jwtlib.ErrTokenSignatureInvalid):
		return Principal{}, autherrors.New(autherrors.KindUnauthenticated, "invalid token signature")
	default:
		return Principal{}, autherrors.Internal(errors.Wrap(err, "[DecodeRefresh] parsing refresh token"))
	}

	if claims.Subject == "" {
		return Principal{}, autherrors.New(autherrors.KindUnauthenticated, "invalid token format")
	}
	return Principal{UserID: claims.Subject}, nil
}
