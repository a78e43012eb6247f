package service

import (
	"context"
	"errors"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/stackleaf/todo/internal/todo/domain"
	"github.com/stackleaf/todo/internal/todo/store"
	"github.com/stackleaf/todo/pkg/cryptox"
	"github.com/stackleaf/todo/pkg/idx"
	"github.com/stackleaf/todo/pkg/slogx"
)

const (
	// MinPasswordLength and MaxPasswordLength bound registration passwords,
	// both inclusive.
	MinPasswordLength = 4
	MaxPasswordLength = 20
)

// emailPattern is deliberately loose; real validation happens when mail is
// actually sent. Top-level domains are capped at four letters.
var emailPattern = regexp.MustCompile(`^[A-Za-z0-9._%-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,4}$`)

var (
	// ErrInvalidCredentials covers every login failure mode. Callers must
	// not distinguish unknown identifiers from wrong passwords.
	ErrInvalidCredentials = errors.New("invalid_credentials")

	ErrUsernameTaken   = errors.New("username_taken")
	ErrEmailTaken      = errors.New("email_taken")
	ErrInvalidEmail    = errors.New("invalid_email")
	ErrInvalidPassword = errors.New("invalid_password")

	// ErrInvalidRefresh means the presented refresh token is not the one
	// currently on record, or fails verification.
	ErrInvalidRefresh = errors.New("invalid_refresh_token")
)

// AuthService implements registration, credential login and session renewal.
type AuthService struct {
	Store  store.Store
	Tokens *TokenService
}

// Register creates a new user account. Username and email must be unused
// and the password must satisfy the length policy.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (domain.User, error) {
	l := slogx.FromContext(ctx)

	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	if !emailPattern.MatchString(email) {
		return domain.User{}, ErrInvalidEmail
	}
	if len(password) < MinPasswordLength || len(password) > MaxPasswordLength {
		return domain.User{}, ErrInvalidPassword
	}

	taken, err := s.Store.Users().UsernameExists(ctx, username)
	if err != nil {
		return domain.User{}, err
	}
	if taken {
		return domain.User{}, ErrUsernameTaken
	}

	taken, err = s.Store.Users().EmailExists(ctx, email)
	if err != nil {
		return domain.User{}, err
	}
	if taken {
		return domain.User{}, ErrEmailTaken
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return domain.User{}, err
	}

	user := domain.User{
		ID:           idx.New().String(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	}

	// The UNIQUE constraints close the race between the existence checks
	// above and this insert.
	if err := s.Store.Users().CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, ErrUsernameTaken
		}
		return domain.User{}, err
	}

	l.Info("user registered", slog.String("user_id", user.ID), slog.String("username", user.Username))
	return user, nil
}

// Login authenticates by username or email plus password and issues a fresh
// token pair. The new refresh token overwrites the user's single refresh
// slot, superseding any earlier session.
func (s *AuthService) Login(ctx context.Context, identifier, password string) (domain.TokenPair, error) {
	now := time.Now()
	l := slogx.FromContext(ctx)

	identifier = strings.TrimSpace(identifier)

	// Same validation as registration, before any lookup. An identifier
	// containing "@" is treated as an email and format-checked; a plain
	// username is not.
	if strings.Contains(identifier, "@") && !emailPattern.MatchString(identifier) {
		return domain.TokenPair{}, ErrInvalidEmail
	}
	if len(password) < MinPasswordLength || len(password) > MaxPasswordLength {
		return domain.TokenPair{}, ErrInvalidPassword
	}

	user, err := s.Store.Users().GetUserByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.TokenPair{}, ErrInvalidCredentials
		}
		return domain.TokenPair{}, err
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		l.Info("login failed", slog.String("user_id", user.ID))
		return domain.TokenPair{}, ErrInvalidCredentials
	}

	pair, expiresAt, err := s.Tokens.IssuePair(user, now)
	if err != nil {
		return domain.TokenPair{}, err
	}

	fingerprint := cryptox.FingerprintToken(pair.RefreshToken)
	if err := s.Store.Users().UpdateRefreshToken(ctx, user.ID, fingerprint, expiresAt); err != nil {
		return domain.TokenPair{}, err
	}

	l.Info("login succeeded", slog.String("user_id", user.ID))
	return pair, nil
}

// Refresh exchanges a valid refresh token for a new access token. The
// refresh token itself is not rotated; it stays valid until superseded by a
// later login or until it expires.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	l := slogx.FromContext(ctx)

	// The token must be the one currently on record for some user, matched
	// by fingerprint, before any claims are inspected.
	fingerprint := cryptox.FingerprintToken(refreshToken)
	user, err := s.Store.Users().GetUserByRefreshToken(ctx, fingerprint)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", ErrInvalidRefresh
		}
		return "", err
	}

	claims, err := s.Tokens.VerifyRefreshToken(refreshToken)
	if err != nil {
		l.Info("refresh token failed verification", slog.String("user_id", user.ID))
		return "", ErrInvalidRefresh
	}

	if claims.UserID() != user.ID || claims.Username != user.Username {
		return "", ErrInvalidRefresh
	}

	return s.Tokens.IssueAccessToken(user, time.Now())
}

// Logout acknowledges the client's intent to end the session. Token state
// is untouched: the short access TTL and refresh-slot supersession bound
// how long the old tokens remain usable.
func (s *AuthService) Logout(ctx context.Context) error {
	return nil
}
