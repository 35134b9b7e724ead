package server

import (
	"net/http"
	"time"

	"github.com/RomanPopovMB/taskmanager/internal/services/iam"
)

// AuthHandlers wires the authentication endpoints.
type AuthHandlers struct {
	auth *iam.AuthService
}

// NewAuthHandlers creates the handler set for login, refresh, and
// logout.
func NewAuthHandlers(auth *iam.AuthService) *AuthHandlers {
	return &AuthHandlers{auth: auth}
}

type loginRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type tokenPairResponse struct {
	AccessToken   string    `json:"access_token"`
	AccessExpiry  time.Time `json:"access_expiry"`
	RefreshToken  string    `json:"refresh_token"`
	RefreshExpiry time.Time `json:"refresh_expiry"`
	TokenType     string    `json:"token_type"`
}

func newTokenPairResponse(pair iam.TokenPair) tokenPairResponse {
	return tokenPairResponse{
		AccessToken:   pair.AccessToken,
		AccessExpiry:  pair.AccessExpiry,
		RefreshToken:  pair.RefreshToken,
		RefreshExpiry: pair.RefreshExpiry,
		TokenType:     "bearer",
	}
}

// Login handles POST /api/auth/login. The name field accepts either
// the account name or its email address.
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}
	if req.Name == "" || req.Password == "" {
		respondBadRequest(w, "name and password are required")
		return
	}

	pair, err := h.auth.Login(r.Context(), req.Name, req.Password)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, newTokenPairResponse(pair))
}

// Refresh handles POST /api/auth/refresh. The presented refresh token
// is consumed: a second exchange of the same token fails.
func (h *AuthHandlers) Refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := decodeJSON(r, &req); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}
	if req.RefreshToken == "" {
		respondBadRequest(w, "refresh_token is required")
		return
	}

	pair, err := h.auth.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, newTokenPairResponse(pair))
}

// Logout handles POST /api/auth/logout. Requires a valid access token;
// revokes the caller's outstanding refresh token.
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromRequest(w, r)
	if !ok {
		return
	}
	if err := h.auth.Logout(r.Context(), identity.UserID); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
