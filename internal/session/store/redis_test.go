// SPDX-License-Identifier: MIT

package store

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/go-cmp/cmp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taxsetu/waflow/internal/session"
)

func setupRedis(t *testing.T) (*miniredis.Miniredis, *RedisStore) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return mr, NewRedisStoreFromClient(client, zerolog.Nop())
}

func TestRedisLoadMissing(t *testing.T) {
	_, st := setupRedis(t)

	_, err := st.Load(context.Background(), "unseen")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisSaveLoadRoundTrip(t *testing.T) {
	_, st := setupRedis(t)
	ctx := context.Background()

	s := session.New("919876543210")
	s.Language = session.LangHindi
	s.Data["gstin"] = "27AAPFU0939F1ZV"
	require.NoError(t, s.Push(session.StateGSTMenu))
	s.State = session.StateAskGSTPeriod3B

	require.NoError(t, st.Save(ctx, s, time.Hour))
	assert.EqualValues(t, 1, s.Version)

	got, err := st.Load(ctx, "919876543210")
	require.NoError(t, err)
	if diff := cmp.Diff(s, got); diff != "" {
		t.Errorf("session changed across save/load (-want +got):\n%s", diff)
	}
}

func TestRedisSaveVersionConflict(t *testing.T) {
	_, st := setupRedis(t)
	ctx := context.Background()

	s := session.New("u1")
	require.NoError(t, st.Save(ctx, s, time.Hour))

	// A second loader mutates and saves first.
	other, err := st.Load(ctx, "u1")
	require.NoError(t, err)
	other.State = session.StateGSTMenu
	require.NoError(t, st.Save(ctx, other, time.Hour))

	// The stale copy must be rejected.
	s.State = session.StateITRMenu
	err = st.Save(ctx, s, time.Hour)
	assert.ErrorIs(t, err, ErrVersionConflict)

	got, err := st.Load(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, session.StateGSTMenu, got.State)
}

func TestRedisCreateRequiresVersionZero(t *testing.T) {
	_, st := setupRedis(t)
	ctx := context.Background()

	s := session.New("u1")
	s.Version = 4
	assert.ErrorIs(t, st.Save(ctx, s, time.Hour), ErrVersionConflict)
}

func TestRedisSessionExpiry(t *testing.T) {
	mr, st := setupRedis(t)
	ctx := context.Background()

	s := session.New("u1")
	require.NoError(t, st.Save(ctx, s, time.Minute))

	mr.FastForward(2 * time.Minute)

	_, err := st.Load(ctx, "u1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisDelete(t *testing.T) {
	_, st := setupRedis(t)
	ctx := context.Background()

	s := session.New("u1")
	require.NoError(t, st.Save(ctx, s, time.Hour))
	require.NoError(t, st.Delete(ctx, "u1"))

	_, err := st.Load(ctx, "u1")
	assert.ErrorIs(t, err, ErrNotFound)

	// Deleting again is not an error.
	assert.NoError(t, st.Delete(ctx, "u1"))
}

func TestRedisCorruptRecordTreatedAsMissing(t *testing.T) {
	mr, st := setupRedis(t)

	mr.Set("wa:session:u1", "{not json")

	_, err := st.Load(context.Background(), "u1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisDedupe(t *testing.T) {
	mr, st := setupRedis(t)
	ctx := context.Background()

	seen, err := st.Seen(ctx, "wamid.abc", time.Minute)
	require.NoError(t, err)
	assert.False(t, seen)

	seen, err = st.Seen(ctx, "wamid.abc", time.Minute)
	require.NoError(t, err)
	assert.True(t, seen)

	mr.FastForward(2 * time.Minute)

	seen, err = st.Seen(ctx, "wamid.abc", time.Minute)
	require.NoError(t, err)
	assert.False(t, seen)
}

func TestMemoryStoreMatchesRedisSemantics(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()

	s := session.New("u1")
	require.NoError(t, m.Save(ctx, s, time.Hour))
	assert.EqualValues(t, 1, s.Version)

	stale := session.New("u1") // version 0 again
	stale.State = session.StateGSTMenu
	assert.ErrorIs(t, m.Save(ctx, stale, time.Hour), ErrVersionConflict)

	got, err := m.Load(ctx, "u1")
	require.NoError(t, err)
	got.State = session.StateITRMenu
	require.NoError(t, m.Save(ctx, got, time.Hour))

	seen, err := m.Seen(ctx, "m-1", time.Minute)
	require.NoError(t, err)
	assert.False(t, seen)
	seen, err = m.Seen(ctx, "m-1", time.Minute)
	require.NoError(t, err)
	assert.True(t, seen)
}

func TestMemoryStoreIsolation(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()

	s := session.New("u1")
	s.Data["k"] = "v"
	require.NoError(t, m.Save(ctx, s, 0))

	got, err := m.Load(ctx, "u1")
	require.NoError(t, err)
	got.Data["k"] = "mutated"

	again, err := m.Load(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "v", again.Data["k"])
}
