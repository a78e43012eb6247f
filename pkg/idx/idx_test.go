package idx

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Parallel()

	a := New()
	b := New()

	require.NotEqual(t, a, b)
	require.False(t, a.IsZero())
	require.Len(t, a.String(), 26)
}

func TestNewIsSortable(t *testing.T) {
	t.Parallel()

	earlier := NewAt(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	later := NewAt(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))

	require.Less(t, earlier.String(), later.String())
}

func TestParse(t *testing.T) {
	t.Parallel()

	t.Run("round trip", func(t *testing.T) {
		id := New()
		parsed, err := Parse(id.String())
		require.NoError(t, err)
		require.Equal(t, id, parsed)
	})

	t.Run("rejects empty", func(t *testing.T) {
		_, err := Parse("")
		require.ErrorIs(t, err, ErrInvalid)
	})

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := Parse("not-a-ulid")
		require.ErrorIs(t, err, ErrInvalid)
	})

	t.Run("trims whitespace", func(t *testing.T) {
		id := New()
		parsed, err := Parse("  " + id.String() + "  ")
		require.NoError(t, err)
		require.Equal(t, id, parsed)
	})
}

func TestTime(t *testing.T) {
	t.Parallel()

	at := time.Date(2025, 3, 10, 12, 30, 0, 0, time.UTC)
	id := NewAt(at)

	require.WithinDuration(t, at, id.Time(), time.Millisecond)
	require.True(t, Zero.Time().IsZero())
}
