package iam

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/RomanPopovMB/taskmanager/internal/auth"
	"github.com/RomanPopovMB/taskmanager/internal/repository"
)

// TokenPair is the result of a successful login or refresh.
type TokenPair struct {
	AccessToken   string
	AccessExpiry  time.Time
	RefreshToken  string
	RefreshExpiry time.Time
}

// AuthService implements the authentication flow: credential login,
// refresh-token rotation, and logout.
type AuthService struct {
	users  repository.UserRepository
	tokens *auth.TokenService
}

// NewAuthService creates an AuthService over the given identity store
// and token service.
func NewAuthService(users repository.UserRepository, tokens *auth.TokenService) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

// Login validates credentials and issues a fresh token pair. The new
// refresh rotation identifier is persisted on the user record, which
// invalidates any previously issued refresh token. A missing account
// and a wrong password both surface ErrInvalidCredentials so the
// response cannot be used to enumerate users.
func (s *AuthService) Login(ctx context.Context, nameOrEmail, password string) (TokenPair, error) {
	user, err := s.users.GetByName(ctx, nameOrEmail)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return TokenPair{}, fmt.Errorf("look up user: %w", err)
		}
		user, err = s.users.GetByEmail(ctx, nameOrEmail)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return TokenPair{}, auth.ErrInvalidCredentials
			}
			return TokenPair{}, fmt.Errorf("look up user: %w", err)
		}
	}

	if !auth.VerifyPassword(password, user.PasswordHash) {
		return TokenPair{}, auth.ErrInvalidCredentials
	}

	role, ok := auth.ParseRole(user.Role)
	if !ok {
		return TokenPair{}, fmt.Errorf("user %d has unknown role %q", user.ID, user.Role)
	}

	pair, rotationID, err := s.issuePair(user.ID, role)
	if err != nil {
		return TokenPair{}, err
	}

	if err := s.users.SetRefreshID(ctx, user.ID, rotationID); err != nil {
		return TokenPair{}, fmt.Errorf("persist rotation id: %w", err)
	}
	return pair, nil
}

// Refresh exchanges a valid refresh token for a brand-new pair. The
// presented token's rotation identifier must match the one stored for
// the user; a mismatch (replay of an already-exchanged token, or a
// token outstanding after logout) fails with ErrTokenRevoked. The
// rotation swap is a compare-and-set so two concurrent refreshes
// cannot both win.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (TokenPair, error) {
	claims, err := s.tokens.VerifyRefreshToken(refreshToken)
	if err != nil {
		return TokenPair{}, err
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return TokenPair{}, auth.ErrTokenRevoked
		}
		return TokenPair{}, fmt.Errorf("look up user: %w", err)
	}

	if user.RefreshRotationID == nil || *user.RefreshRotationID != claims.RotationID {
		return TokenPair{}, auth.ErrTokenRevoked
	}

	role, ok := auth.ParseRole(user.Role)
	if !ok {
		return TokenPair{}, fmt.Errorf("user %d has unknown role %q", user.ID, user.Role)
	}

	pair, rotationID, err := s.issuePair(user.ID, role)
	if err != nil {
		return TokenPair{}, err
	}

	err = s.users.RotateRefreshID(ctx, user.ID, user.RefreshRotationID, &rotationID)
	if err != nil {
		if errors.Is(err, repository.ErrRotationConflict) {
			// A concurrent refresh or logout won the race; the pair we
			// just minted is never handed out.
			return TokenPair{}, auth.ErrTokenRevoked
		}
		return TokenPair{}, fmt.Errorf("rotate rotation id: %w", err)
	}
	return pair, nil
}

// Logout clears the stored rotation identifier so any outstanding
// refresh token fails with Revoked on next use. Access tokens already
// issued remain valid until natural expiry; there is no server-side
// access-token revocation list.
func (s *AuthService) Logout(ctx context.Context, userID int64) error {
	if err := s.users.ClearRefreshID(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return auth.ErrNotFound
		}
		return fmt.Errorf("clear rotation id: %w", err)
	}
	return nil
}

func (s *AuthService) issuePair(userID int64, role auth.Role) (TokenPair, string, error) {
	accessToken, accessExpiry, err := s.tokens.IssueAccessToken(userID, role)
	if err != nil {
		return TokenPair{}, "", fmt.Errorf("issue access token: %w", err)
	}
	refreshToken, rotationID, refreshExpiry, err := s.tokens.IssueRefreshToken(userID)
	if err != nil {
		return TokenPair{}, "", fmt.Errorf("issue refresh token: %w", err)
	}
	return TokenPair{
		AccessToken:   accessToken,
		AccessExpiry:  accessExpiry,
		RefreshToken:  refreshToken,
		RefreshExpiry: refreshExpiry,
	}, rotationID, nil
}
