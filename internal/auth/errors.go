package auth

import "errors"

// Error taxonomy for authentication and authorization failures. The
// transport layer maps these to HTTP statuses in exactly one place;
// token verification failures are surfaced to clients uniformly so the
// response does not reveal which check failed.
var (
	// ErrTokenMalformed is returned when a token cannot be parsed.
	ErrTokenMalformed = errors.New("token is malformed")

	// ErrInvalidSignature is returned when a token's signature does not
	// verify against the configured secret.
	ErrInvalidSignature = errors.New("token signature is invalid")

	// ErrTokenExpired is returned when the current time exceeds the
	// token's encoded expiry.
	ErrTokenExpired = errors.New("token has expired")

	// ErrTokenRevoked is returned when a refresh token's rotation
	// identifier no longer matches the one stored for the user, e.g.
	// after a prior refresh or a logout.
	ErrTokenRevoked = errors.New("token has been revoked")

	// ErrInvalidCredentials is returned for any login failure, whether
	// the account is missing or the password does not match.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrForbidden is returned when an authenticated identity's role is
	// outside an endpoint's allowed set, or when the identity does not
	// own the requested resource.
	ErrForbidden = errors.New("insufficient permissions")

	// ErrNotFound is returned when a requested resource, or a link in
	// its ownership chain, does not exist.
	ErrNotFound = errors.New("resource not found")
)
