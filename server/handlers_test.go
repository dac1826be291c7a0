package server_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"github.com/workmap/auth-service/auth"
	"github.com/workmap/auth-service/internal/config"
	"github.com/workmap/auth-service/server"
	"github.com/workmap/auth-service/sessions/repofake"
	"github.com/workmap/auth-service/token"
	"github.com/workmap/auth-service/users/repofake"
)

type testAuthConfig struct{}

func (testAuthConfig) GetAccessTokenSecret() string         { return "access-secret-1" }
func (testAuthConfig) GetRefreshTokenSecret() string        { return "refresh-secret-1" }
func (testAuthConfig) GetAccessTokenExpiry() time.Duration  { return 15 * time.Minute }
func (testAuthConfig) GetRefreshTokenExpiry() time.Duration { return 15 * 24 * time.Hour }

type testConfig struct {
	config.EnvVars
	config.Cors
	config.Stores
	testAuthConfig
}

func setupTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	tokenService, err := token.NewService(testAuthConfig{})
	require.NoError(t, err)

	authService, err := auth.NewService(auth.Repos{
		Users:    fakeuserrepo.NewFakeUserRepo(),
		Sessions: fakesessionrepo.NewFakeSessionRepo(),
	}, tokenService)
	require.NoError(t, err)

	srv, err := server.New(testConfig{}, authService, zerolog.Nop())
	require.NoError(t, err)

	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)
	return ts
}

func postJSON(t *testing.T, ts *httptest.Server, route string, body any) *http.Response {
	t.Helper()

	raw, err := json.Marshal(body)
	require.NoError(t, err)

	resp, err := http.Post(ts.URL+route, "application/json", bytes.NewReader(raw))
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func decodeInto(t *testing.T, resp *http.Response, dst any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dst))
}

func credentials(email string) map[string]string {
	return map[string]string{"email": email, "password": "Passw0rd"}
}

func register(t *testing.T, ts *httptest.Server, email string) (accessToken, refreshToken string) {
	t.Helper()

	resp := postJSON(t, ts, server.RouteRegister, credentials(email))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
	}
	decodeInto(t, resp, &body)
	require.NotEmpty(t, body.AccessToken)
	require.NotEmpty(t, body.RefreshToken)
	return body.AccessToken, body.RefreshToken
}

func requireErrorBody(t *testing.T, resp *http.Response, status int, message string) {
	t.Helper()

	require.Equal(t, status, resp.StatusCode)

	var body struct {
		Error string `json:"error"`
	}
	decodeInto(t, resp, &body)
	require.Equal(t, message, body.Error)
}

func TestRegisterEndpoint(t *testing.T) {
	ts := setupTestServer(t)

	register(t, ts, "john.doe@example.com")
}

func TestRegisterEndpointInvalidEmail(t *testing.T) {
	ts := setupTestServer(t)

	resp := postJSON(t, ts, server.RouteRegister, credentials("not-an-email"))
	requireErrorBody(t, resp, http.StatusBadRequest, "invalid email format")
}

func TestRegisterEndpointWeakPassword(t *testing.T) {
	ts := setupTestServer(t)

	resp := postJSON(t, ts, server.RouteRegister, map[string]string{
		"email":    "john.doe@example.com",
		"password": "short",
	})
	requireErrorBody(t, resp, http.StatusBadRequest, "password policy violation")
}

func TestRegisterEndpointEmailTaken(t *testing.T) {
	ts := setupTestServer(t)
	register(t, ts, "john.doe@example.com")

	resp := postJSON(t, ts, server.RouteRegister, credentials("john.doe@example.com"))
	requireErrorBody(t, resp, http.StatusConflict, "user email taken")
}

func TestLoginEndpoint(t *testing.T) {
	ts := setupTestServer(t)
	register(t, ts, "john.doe@example.com")

	resp := postJSON(t, ts, server.RouteLogin, credentials("john.doe@example.com"))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
	}
	decodeInto(t, resp, &body)
	require.NotEmpty(t, body.AccessToken)
	require.NotEmpty(t, body.RefreshToken)
}

func TestLoginEndpointBadCredentials(t *testing.T) {
	ts := setupTestServer(t)
	register(t, ts, "john.doe@example.com")

	wrongPassword := map[string]string{
		"email":    "john.doe@example.com",
		"password": "Wr0ngpass",
	}
	resp := postJSON(t, ts, server.RouteLogin, wrongPassword)
	requireErrorBody(t, resp, http.StatusUnauthorized, "user not found")

	resp = postJSON(t, ts, server.RouteLogin, credentials("nobody@example.com"))
	requireErrorBody(t, resp, http.StatusUnauthorized, "user not found")
}

func TestRefreshEndpoint(t *testing.T) {
	ts := setupTestServer(t)
	_, refreshToken := register(t, ts, "john.doe@example.com")

	resp := postJSON(t, ts, server.RouteRefresh, map[string]string{"refresh_token": refreshToken})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		AccessToken string `json:"access_token"`
	}
	decodeInto(t, resp, &body)
	require.NotEmpty(t, body.AccessToken)
}

func TestRefreshEndpointGarbageToken(t *testing.T) {
	ts := setupTestServer(t)

	resp := postJSON(t, ts, server.RouteRefresh, map[string]string{"refresh_token": "garbage"})
	requireErrorBody(t, resp, http.StatusUnauthorized, "invalid token format")
}

func TestLogoutEndpoint(t *testing.T) {
	ts := setupTestServer(t)
	_, refreshToken := register(t, ts, "john.doe@example.com")

	resp := postJSON(t, ts, server.RouteLogout, map[string]string{"refresh_token": refreshToken})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Success bool `json:"success"`
	}
	decodeInto(t, resp, &body)
	require.True(t, body.Success)

	// The session is gone, so a second logout reports the missing token.
	resp = postJSON(t, ts, server.RouteLogout, map[string]string{"refresh_token": refreshToken})
	requireErrorBody(t, resp, http.StatusNotFound, "token not found")
}

func TestEndpointsRejectMalformedBody(t *testing.T) {
	ts := setupTestServer(t)

	for _, route := range []string{
		server.RouteRegister,
		server.RouteLogin,
		server.RouteLogout,
		server.RouteRefresh,
	} {
		t.Run(route, func(t *testing.T) {
			resp, err := http.Post(ts.URL+route, "application/json", bytes.NewReader([]byte("{not json")))
			require.NoError(t, err)
			t.Cleanup(func() { _ = resp.Body.Close() })
			requireErrorBody(t, resp, http.StatusBadRequest, "invalid request body")
		})
	}
}

func TestEndpointsRequirePost(t *testing.T) {
	ts := setupTestServer(t)

	resp, err := http.Get(fmt.Sprintf("%s%s", ts.URL, server.RouteLogin))
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	require.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestResponsesAreJSON(t *testing.T) {
	ts := setupTestServer(t)

	resp := postJSON(t, ts, server.RouteRegister, credentials("john.doe@example.com"))
	require.Equal(t, "application/json; charset=utf-8", resp.Header.Get("Content-Type"))
}
