package config

import "time"

// AuthConfig supplies the token service with its signing material and token
// lifetimes. Access and refresh tokens are signed with different secrets so
// that compromise of one never forges the other.
type AuthConfig interface {
	GetAccessTokenSecret() string
	GetRefreshTokenSecret() string
	GetAccessTokenExpiry() time.Duration
	GetRefreshTokenExpiry() time.Duration
}

const (
	accessSecretEnvVar  = "JWT_ACCESS_SECRET_KEY"
	refreshSecretEnvVar = "JWT_REFRESH_SECRET_KEY"
	accessExpiryEnvVar  = "ACCESS_TOKEN_EXPIRY"
	refreshExpiryEnvVar = "REFRESH_TOKEN_EXPIRY"
)

type Auth struct{}

var _ AuthConfig = Auth{}

func (Auth) GetAccessTokenSecret() string {
	return GetEnv(accessSecretEnvVar, "")
}

func (Auth) GetRefreshTokenSecret() string {
	return GetEnv(refreshSecretEnvVar, "")
}

func (Auth) GetAccessTokenExpiry() time.Duration {
	return getDurationEnv(accessExpiryEnvVar, 15*time.Minute)
}

func (Auth) GetRefreshTokenExpiry() time.Duration {
	return getDurationEnv(refreshExpiryEnvVar, 15*24*time.Hour)
}

func getDurationEnv(envVar string, defaultValue time.Duration) time.Duration {
	value := GetEnv(envVar, "")
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return d
}
