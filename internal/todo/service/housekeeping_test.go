package service

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestHousekeepingClearsExpiredSlots(t *testing.T) {
	ctx := context.Background()

	auth := &AuthService{
		Store:  newTestStore(t),
		Tokens: newTestTokens(time.Minute, -time.Second),
	}

	_, err := auth.Register(ctx, "alice", "alice@example.com", "hunter22")
	require.NoError(t, err)

	pair, err := auth.Login(ctx, "alice", "hunter22")
	require.NoError(t, err)

	hk := NewHousekeepingService(auth.Store, slog.Default(), time.Hour)
	hk.Start()
	hk.Stop()

	// The startup cleanup ran before Stop returned; the expired slot is gone,
	// so the fingerprint no longer matches anything.
	_, err = auth.Refresh(ctx, pair.RefreshToken)
	require.ErrorIs(t, err, ErrInvalidRefresh)
}
