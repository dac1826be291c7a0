package users_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/workmap/auth-service/users"
)

func TestHashPassword(t *testing.T) {
	hash, err := users.HashPassword("Sup3rSecret")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	require.NotEqual(t, "Sup3rSecret", hash)

	// Salted hashing means equal inputs still produce distinct hashes.
	other, err := users.HashPassword("Sup3rSecret")
	require.NoError(t, err)
	require.NotEqual(t, hash, other)
}

func TestCheckPasswordHash(t *testing.T) {
	hash, err := users.HashPassword("Sup3rSecret")
	require.NoError(t, err)

	require.True(t, users.CheckPasswordHash("Sup3rSecret", hash))
	require.False(t, users.CheckPasswordHash("sup3rsecret", hash))
	require.False(t, users.CheckPasswordHash("", hash))
	require.False(t, users.CheckPasswordHash("Sup3rSecret", "not-a-bcrypt-hash"))
}

func TestUserJSONOmitsPasswordHash(t *testing.T) {
	user := users.User{ID: "user-1", Email: "john.doe@example.com", PasswordHash: "hash"}

	raw, err := json.Marshal(user)
	require.NoError(t, err)
	require.NotContains(t, string(raw), "hash")
	require.Contains(t, string(raw), "john.doe@example.com")
}
