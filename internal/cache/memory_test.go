package cache

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// Memory Store Tests
// ============================================================================

func TestMemory_SetAndGet(t *testing.T) {
	m := NewMemory(time.Minute)

	require.NoError(t, m.Set(context.Background(), "k", []byte("value")))

	got, err := m.Get(context.Background(), "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("value"), got)
}

func TestMemory_MissOnUnknownKey(t *testing.T) {
	m := NewMemory(time.Minute)

	_, err := m.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrMiss)
}

func TestMemory_EntryExpires(t *testing.T) {
	m := NewMemory(time.Minute)
	now := time.Now()
	m.now = func() time.Time { return now }

	require.NoError(t, m.Set(context.Background(), "k", []byte("v")))

	// Still fresh just inside the TTL.
	now = now.Add(59 * time.Second)
	_, err := m.Get(context.Background(), "k")
	require.NoError(t, err)

	// Expired past the TTL.
	now = now.Add(2 * time.Second)
	_, err = m.Get(context.Background(), "k")
	assert.ErrorIs(t, err, ErrMiss)
}

func TestMemory_SetOverwrites(t *testing.T) {
	m := NewMemory(time.Minute)

	require.NoError(t, m.Set(context.Background(), "k", []byte("old")))
	require.NoError(t, m.Set(context.Background(), "k", []byte("new")))

	got, err := m.Get(context.Background(), "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("new"), got)
}

func TestMemory_SetRefreshesExpiry(t *testing.T) {
	m := NewMemory(time.Minute)
	now := time.Now()
	m.now = func() time.Time { return now }

	require.NoError(t, m.Set(context.Background(), "k", []byte("v")))

	now = now.Add(45 * time.Second)
	require.NoError(t, m.Set(context.Background(), "k", []byte("v2")))

	now = now.Add(45 * time.Second)
	got, err := m.Get(context.Background(), "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v2"), got)
}

func TestMemory_ExpiredGetKeepsConcurrentlyRefreshedEntry(t *testing.T) {
	for i := 0; i < 100; i++ {
		m := NewMemory(time.Minute)
		base := time.Now()
		now := base
		m.now = func() time.Time { return now }

		require.NoError(t, m.Set(context.Background(), "k", []byte("old")))
		now = base.Add(2 * time.Minute)

		// A Get observing the expired entry must not delete a fresh one
		// written by a racing Set.
		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _ = m.Get(context.Background(), "k")
		}()
		go func() {
			defer wg.Done()
			_ = m.Set(context.Background(), "k", []byte("fresh"))
		}()
		wg.Wait()

		got, err := m.Get(context.Background(), "k")
		require.NoError(t, err)
		assert.Equal(t, []byte("fresh"), got)
	}
}
