package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/RomanPopovMB/taskmanager/internal/auth"
)

// Skipper defines a function to skip authentication for matching requests.
type Skipper func(*http.Request) bool

// ErrorResponder writes authentication failures to the response writer.
type ErrorResponder func(http.ResponseWriter, *http.Request, error)

type verifierOptions struct {
	skipper        Skipper
	errorResponder ErrorResponder
}

// VerifierOption customises the behaviour of the authentication middleware.
type VerifierOption func(*verifierOptions)

// WithSkipper overrides the default skipper used by the verifier.
func WithSkipper(skipper Skipper) VerifierOption {
	return func(o *verifierOptions) {
		if skipper != nil {
			o.skipper = skipper
		}
	}
}

// WithErrorResponder overrides the default error responder used by the verifier.
func WithErrorResponder(responder ErrorResponder) VerifierOption {
	return func(o *verifierOptions) {
		if responder != nil {
			o.errorResponder = responder
		}
	}
}

// NewAuthnMiddleware verifies the Authorization bearer token on every
// non-public request and stores the resulting identity on the request
// context. All verification failures produce the same 401 so the
// response does not reveal whether the token was malformed, expired,
// or forged.
func NewAuthnMiddleware(tokens *auth.TokenService, opts ...VerifierOption) func(http.Handler) http.Handler {
	vOpts := verifierOptions{
		skipper:        defaultSkipper,
		errorResponder: defaultErrorResponder,
	}
	for _, opt := range opts {
		opt(&vOpts)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if vOpts.skipper != nil && vOpts.skipper(r) {
				next.ServeHTTP(w, r)
				return
			}

			token, ok := bearerToken(r)
			if !ok {
				vOpts.errorResponder(w, r, auth.ErrTokenMalformed)
				return
			}

			claims, err := tokens.VerifyAccessToken(token)
			if err != nil {
				vOpts.errorResponder(w, r, err)
				return
			}

			identity := auth.Identity{
				UserID:    claims.UserID,
				Role:      claims.Role,
				ExpiresAt: claims.ExpiresAt,
			}
			ctx := auth.SetIdentityContext(r.Context(), identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// bearerToken extracts the token from the Authorization header.
func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(prefix):])
	return token, token != ""
}

func defaultSkipper(r *http.Request) bool {
	if r == nil {
		return false
	}
	if r.Method == http.MethodOptions {
		return true
	}

	path := r.URL.Path

	// Public paths that should not be subjected to bearer token
	// authentication. Logout is authenticated: the server must know
	// whose rotation identifier to clear.
	publicPaths := []string{
		"/health",
		"/api/auth/login",
		"/api/auth/refresh",
	}
	for _, p := range publicPaths {
		if path == p {
			return true
		}
	}

	// Registration is the only public user endpoint.
	return r.Method == http.MethodPost && path == "/api/user"
}

func defaultErrorResponder(w http.ResponseWriter, r *http.Request, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": "authentication required"})
}
