package jwtx

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const testIssuer = "todo-test"

func newTestPair(t *testing.T) (*HS256, *HS256) {
	t.Helper()
	access := NewHS256([]byte("access-secret-for-tests"), testIssuer)
	refresh := NewHS256([]byte("refresh-secret-for-tests"), testIssuer)
	return access, refresh
}

func TestHS256RoundTrip(t *testing.T) {
	t.Parallel()
	access, refresh := newTestPair(t)

	now := time.Now().UTC()
	claims := NewClaims("01HZX5Q9W3", "alice", time.Minute, testIssuer, now)

	for name, keys := range map[string]*HS256{"access": access, "refresh": refresh} {
		t.Run(name, func(t *testing.T) {
			token, err := keys.Sign(claims)
			require.NoError(t, err)
			require.NotEmpty(t, token)

			got, err := keys.Verify(token)
			require.NoError(t, err)
			require.Equal(t, "01HZX5Q9W3", got.UserID())
			require.Equal(t, "alice", got.Username)
			require.Equal(t, testIssuer, got.Issuer)
		})
	}
}

func TestHS256CrossClassRejection(t *testing.T) {
	t.Parallel()
	access, refresh := newTestPair(t)

	claims := NewClaims("u1", "bob", time.Minute, testIssuer, time.Now().UTC())

	accessToken, err := access.Sign(claims)
	require.NoError(t, err)
	refreshToken, err := refresh.Sign(claims)
	require.NoError(t, err)

	_, err = refresh.Verify(accessToken)
	require.ErrorIs(t, err, ErrInvalidSig, "access token must not verify against refresh secret")

	_, err = access.Verify(refreshToken)
	require.ErrorIs(t, err, ErrInvalidSig, "refresh token must not verify against access secret")
}

func TestHS256Expiry(t *testing.T) {
	t.Parallel()
	access, _ := newTestPair(t)

	expired := NewClaims("u1", "bob", time.Second, testIssuer, time.Now().UTC().Add(-time.Minute))
	token, err := access.Sign(expired)
	require.NoError(t, err)

	_, err = access.Verify(token)
	require.ErrorIs(t, err, ErrExpired)
}

func TestHS256Malformed(t *testing.T) {
	t.Parallel()
	access, _ := newTestPair(t)

	for _, raw := range []string{"", "garbage", "a.b", "a.b.c"} {
		_, err := access.Verify(raw)
		require.ErrorIs(t, err, ErrMalformed, "input %q", raw)
	}
}

func TestHS256IssuerMismatch(t *testing.T) {
	t.Parallel()

	signer := NewHS256([]byte("shared"), "other-service")
	verifier := NewHS256([]byte("shared"), testIssuer)

	token, err := signer.Sign(NewClaims("u1", "bob", time.Minute, "other-service", time.Now().UTC()))
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	require.Error(t, err)
}

func TestValidateExpiry(t *testing.T) {
	t.Parallel()

	fresh := NewClaims("u1", "bob", time.Minute, testIssuer, time.Now().UTC())
	require.NoError(t, fresh.ValidateExpiry())

	stale := NewClaims("u1", "bob", time.Second, testIssuer, time.Now().UTC().Add(-time.Hour))
	require.ErrorIs(t, stale.ValidateExpiry(), ErrExpired)

	future := NewClaims("u1", "bob", time.Minute, testIssuer, time.Now().UTC().Add(time.Hour))
	require.ErrorIs(t, future.ValidateExpiry(), ErrNotYetValid)
}
