package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Default token lifetimes. Access tokens are short-lived and fully
// self-contained; refresh tokens are longer-lived and bound to the
// rotation identifier stored on the user record.
const (
	DefaultAccessTokenTTL  = 15 * time.Minute
	DefaultRefreshTokenTTL = 7 * 24 * time.Hour
)

// Claims are the validated contents of an access token.
type Claims struct {
	UserID    int64
	Role      Role
	ExpiresAt time.Time
}

// RefreshClaims are the validated contents of a refresh token. The
// rotation ID must match the identifier stored on the user record for
// the token to be exchangeable.
type RefreshClaims struct {
	UserID     int64
	RotationID string
	ExpiresAt  time.Time
}

type accessClaims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

type refreshClaims struct {
	jwt.RegisteredClaims
}

// TokenService issues and verifies signed, time-bounded tokens. The
// signing secret is injected once at construction and never mutated,
// so verification is pure and needs no shared state.
type TokenService struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

// TokenOption customises a TokenService.
type TokenOption func(*TokenService)

// WithAccessTTL overrides the access token lifetime.
func WithAccessTTL(ttl time.Duration) TokenOption {
	return func(s *TokenService) {
		if ttl > 0 {
			s.accessTTL = ttl
		}
	}
}

// WithRefreshTTL overrides the refresh token lifetime.
func WithRefreshTTL(ttl time.Duration) TokenOption {
	return func(s *TokenService) {
		if ttl > 0 {
			s.refreshTTL = ttl
		}
	}
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) TokenOption {
	return func(s *TokenService) {
		if now != nil {
			s.now = now
		}
	}
}

// NewTokenService creates a TokenService signing with the given secret.
func NewTokenService(secret string, opts ...TokenOption) (*TokenService, error) {
	if secret == "" {
		return nil, errors.New("token service requires a signing secret")
	}
	s := &TokenService{
		secret:     []byte(secret),
		accessTTL:  DefaultAccessTokenTTL,
		refreshTTL: DefaultRefreshTokenTTL,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// IssueAccessToken produces a signed token encoding the user id, role,
// and an absolute expiry.
func (s *TokenService) IssueAccessToken(userID int64, role Role) (string, time.Time, error) {
	now := s.now()
	expiresAt := now.Add(s.accessTTL)
	claims := accessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		Role: string(role),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign access token: %w", err)
	}
	return signed, expiresAt, nil
}

// IssueRefreshToken produces a signed refresh token for the user. The
// returned rotation ID must be persisted on the user record by the
// caller; doing so invalidates any previously issued refresh token.
func (s *TokenService) IssueRefreshToken(userID int64) (token string, rotationID string, expiresAt time.Time, err error) {
	now := s.now()
	expiresAt = now.Add(s.refreshTTL)
	rotationID = uuid.NewString()
	claims := refreshClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			ID:        rotationID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", "", time.Time{}, fmt.Errorf("sign refresh token: %w", err)
	}
	return signed, rotationID, expiresAt, nil
}

// VerifyAccessToken parses and validates an access token, returning the
// embedded claims. Failures map onto the taxonomy: ErrTokenMalformed,
// ErrInvalidSignature, or ErrTokenExpired.
func (s *TokenService) VerifyAccessToken(token string) (Claims, error) {
	var parsed accessClaims
	if err := s.parse(token, &parsed); err != nil {
		return Claims{}, err
	}

	userID, err := strconv.ParseInt(parsed.Subject, 10, 64)
	if err != nil {
		return Claims{}, ErrTokenMalformed
	}
	role, ok := ParseRole(parsed.Role)
	if !ok {
		return Claims{}, ErrTokenMalformed
	}
	if parsed.ExpiresAt == nil {
		return Claims{}, ErrTokenMalformed
	}

	return Claims{
		UserID:    userID,
		Role:      role,
		ExpiresAt: parsed.ExpiresAt.Time,
	}, nil
}

// VerifyRefreshToken parses and validates a refresh token. The rotation
// check against the stored identifier is the caller's responsibility.
func (s *TokenService) VerifyRefreshToken(token string) (RefreshClaims, error) {
	var parsed refreshClaims
	if err := s.parse(token, &parsed); err != nil {
		return RefreshClaims{}, err
	}

	userID, err := strconv.ParseInt(parsed.Subject, 10, 64)
	if err != nil {
		return RefreshClaims{}, ErrTokenMalformed
	}
	if parsed.ID == "" || parsed.ExpiresAt == nil {
		return RefreshClaims{}, ErrTokenMalformed
	}

	return RefreshClaims{
		UserID:     userID,
		RotationID: parsed.ID,
		ExpiresAt:  parsed.ExpiresAt.Time,
	}, nil
}

func (s *TokenService) parse(token string, claims jwt.Claims) error {
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return mapJWTError(err)
	}
	return nil
}

// mapJWTError folds golang-jwt error values onto the taxonomy.
func mapJWTError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return ErrInvalidSignature
	default:
		return ErrTokenMalformed
	}
}
