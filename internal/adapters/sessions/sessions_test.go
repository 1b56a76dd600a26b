package sessions

import (
	"context"
	"testing"
	"time"

	"nursery-locator/internal/domain"
	"nursery-locator/internal/ports"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSession(id string) *domain.SessionState {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	return domain.NewSession(id, domain.Location{
		Coordinates: domain.Coordinates{Lat: 20.56, Lon: 84.14},
		Source:      domain.LocationFallback,
		Message:     "Using fallback location (Khariar).",
	}, now)
}

// Both stores must satisfy the same contract.
func exerciseStore(t *testing.T, store ports.SessionStore) {
	ctx := context.Background()

	_, err := store.Get(ctx, "missing")
	assert.ErrorIs(t, err, ports.ErrSessionNotFound)

	s := sampleSession("abc")
	require.NoError(t, store.Save(ctx, s))

	got, err := store.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, domain.NoSelection, got.Selection().Kind)
	assert.Equal(t, s.User, got.User)
	assert.True(t, s.CreatedAt.Equal(got.CreatedAt))

	got.Click("B", got.CreatedAt.Add(time.Minute))
	require.NoError(t, store.Save(ctx, got))

	again, err := store.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, domain.Selection{Kind: domain.Selected, Identifier: "B"}, again.Selection())

	assert.Error(t, store.Save(ctx, &domain.SessionState{}))
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore(time.Hour))
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(0)

	s := sampleSession("abc")
	require.NoError(t, store.Save(ctx, s))

	s.Click("A", time.Now())
	got, err := store.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Nil(t, got.LastClick)
}

func TestMemoryStore_Expiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	store := NewMemoryStore(time.Minute)
	store.now = func() time.Time { return now }

	require.NoError(t, store.Save(ctx, sampleSession("a")))
	assert.Equal(t, 1, store.Len())

	now = now.Add(59 * time.Second)
	_, err := store.Get(ctx, "a")
	require.NoError(t, err)

	now = now.Add(time.Second)
	_, err = store.Get(ctx, "a")
	assert.ErrorIs(t, err, ports.ErrSessionNotFound)
	assert.Equal(t, 0, store.Len())
}

func TestRedisStore(t *testing.T) {
	mr := miniredis.RunT(t)

	rdb, err := OpenRedis(context.Background(), mr.Addr(), "", 0)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdb.Close() })

	exerciseStore(t, NewRedisStore(rdb, time.Hour))

	assert.True(t, mr.Exists("nursery:session:abc"))
	assert.Equal(t, time.Hour, mr.TTL("nursery:session:abc"))
}

func TestRedisStore_Expiry(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)

	rdb, err := OpenRedis(ctx, mr.Addr(), "", 0)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdb.Close() })

	store := NewRedisStore(rdb, time.Minute)
	require.NoError(t, store.Save(ctx, sampleSession("a")))

	mr.FastForward(2 * time.Minute)
	_, err = store.Get(ctx, "a")
	assert.ErrorIs(t, err, ports.ErrSessionNotFound)
}

func TestRedisStore_CorruptValue(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	require.NoError(t, mr.Set("nursery:session:bad", "{not json"))

	rdb, err := OpenRedis(ctx, mr.Addr(), "", 0)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdb.Close() })

	_, err = NewRedisStore(rdb, 0).Get(ctx, "bad")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ports.ErrSessionNotFound)
}

func TestOpenRedis_Unreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := OpenRedis(context.Background(), addr, "", 0)
	assert.Error(t, err)
}
