package server

import (
	"encoding/json"
	"net/http"

	autherrors "github.com/workmap/auth-service/internal/errors"
)

const contentTypeJSON = "application/json; charset=utf-8"

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type tokenPairResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type accessTokenResponse struct {
	AccessToken string `json:"access_token"`
}

type logoutResponse struct {
	Success bool `json:"success"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// RegisterHandler creates a user and returns their first token pair.
func (s *Server) RegisterHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req credentialsRequest
		if !s.decodeRequest(w, r, &req) {
			return
		}

		s.logger.Info().Str("email", req.Email).Msg("registration request")

		pair, err := s.auth.Register(r.Context(), req.Email, req.Password)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		s.writeJSON(w, http.StatusOK, tokenPairResponse{
			AccessToken:  pair.AccessToken,
			RefreshToken: pair.RefreshToken,
		})
	}
}

// LoginHandler verifies credentials and returns a fresh token pair.
func (s *Server) LoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req credentialsRequest
		if !s.decodeRequest(w, r, &req) {
			return
		}

		s.logger.Info().Str("email", req.Email).Msg("login request")

		pair, err := s.auth.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		s.writeJSON(w, http.StatusOK, tokenPairResponse{
			AccessToken:  pair.AccessToken,
			RefreshToken: pair.RefreshToken,
		})
	}
}

// LogoutHandler terminates the session named by the refresh token.
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req refreshTokenRequest
		if !s.decodeRequest(w, r, &req) {
			return
		}

		if err := s.auth.Logout(r.Context(), req.RefreshToken); err != nil {
			s.writeError(w, r, err)
			return
		}
		s.writeJSON(w, http.StatusOK, logoutResponse{Success: true})
	}
}

// RefreshTokenHandler exchanges a live refresh token for a new access token.
func (s *Server) RefreshTokenHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req refreshTokenRequest
		if !s.decodeRequest(w, r, &req) {
			return
		}

		accessToken, err := s.auth.RefreshToken(r.Context(), req.RefreshToken)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		s.writeJSON(w, http.StatusOK, accessTokenResponse{AccessToken: accessToken})
	}
}

func (s *Server) decodeRequest(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return false
	}
	return true
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps an error kind to its response status. Internal failures
// are logged with their full cause but reach the caller as a generic message.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	kind := autherrors.KindOf(err)
	if kind == autherrors.KindInternal {
		s.logger.Error().Err(err).Str("path", r.URL.Path).Msg("internal error")
	}
	s.writeJSON(w, statusForKind(kind), errorResponse{Error: autherrors.MessageOf(err)})
}

func statusForKind(kind autherrors.Kind) int {
	switch kind {
	case autherrors.KindInvalidArgument:
		return http.StatusBadRequest
	case autherrors.KindAlreadyExists:
		return http.StatusConflict
	case autherrors.KindUnauthenticated:
		return http.StatusUnauthorized
	case autherrors.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
