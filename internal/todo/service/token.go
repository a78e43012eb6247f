package service

import (
	"time"

	"github.com/stackleaf/todo/internal/todo/domain"
	"github.com/stackleaf/todo/pkg/jwtx"
)

// TokenService issues and verifies the two session-token classes. Access and
// refresh tokens are signed with distinct secrets so one class can never be
// replayed as the other.
type TokenService struct {
	Access  *jwtx.HS256
	Refresh *jwtx.HS256

	Issuer     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// IssueAccessToken signs a short-lived access token for the user.
func (s *TokenService) IssueAccessToken(user domain.User, now time.Time) (string, error) {
	claims := jwtx.NewClaims(user.ID, user.Username, s.AccessTTL, s.Issuer, now)
	return s.Access.Sign(claims)
}

// IssueRefreshToken signs a refresh token and returns it alongside its
// expiry, which the caller persists in the user's refresh slot.
func (s *TokenService) IssueRefreshToken(user domain.User, now time.Time) (string, time.Time, error) {
	claims := jwtx.NewClaims(user.ID, user.Username, s.RefreshTTL, s.Issuer, now)
	token, err := s.Refresh.Sign(claims)
	if err != nil {
		return "", time.Time{}, err
	}
	return token, claims.ExpiresAt.Time, nil
}

// IssuePair issues an access/refresh pair for the user.
func (s *TokenService) IssuePair(user domain.User, now time.Time) (domain.TokenPair, time.Time, error) {
	access, err := s.IssueAccessToken(user, now)
	if err != nil {
		return domain.TokenPair{}, time.Time{}, err
	}

	refresh, expiresAt, err := s.IssueRefreshToken(user, now)
	if err != nil {
		return domain.TokenPair{}, time.Time{}, err
	}

	return domain.TokenPair{AccessToken: access, RefreshToken: refresh}, expiresAt, nil
}

// VerifyAccessToken validates a token against the access-token secret.
func (s *TokenService) VerifyAccessToken(token string) (jwtx.Claims, error) {
	return s.Access.Verify(token)
}

// VerifyRefreshToken validates a token against the refresh-token secret.
func (s *TokenService) VerifyRefreshToken(token string) (jwtx.Claims, error) {
	return s.Refresh.Verify(token)
}
