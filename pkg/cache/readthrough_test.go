package cache

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type memoryStore struct {
	mu     sync.Mutex
	data   map[string][]byte
	getErr error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{data: make(map[string][]byte)}
}

func (m *memoryStore) Get(_ context.Context, key string, dest any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return m.getErr
	}
	b, ok := m.data[key]
	if !ok {
		return redis.Nil
	}
	return json.Unmarshal(b, dest)
}

func (m *memoryStore) Set(_ context.Context, key string, value any, _ time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = b
	return nil
}

func (m *memoryStore) Delete(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.data, k)
	}
	return nil
}

func (m *memoryStore) Close() error { return nil }

func (m *memoryStore) has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.data[key]
	return ok
}

func TestFetch(t *testing.T) {
	ctx := context.Background()

	t.Run("miss fetches and populates", func(t *testing.T) {
		store := newMemoryStore()
		rt := NewReadThrough(store, time.Minute, zap.NewNop())

		v, err := Fetch(ctx, rt, "k", func(context.Context) (int, error) { return 42, nil })

		require.NoError(t, err)
		assert.Equal(t, 42, v)
		assert.Eventually(t, func() bool { return store.has("k") }, time.Second, 10*time.Millisecond)
	})

	t.Run("hit serves cached value and refreshes", func(t *testing.T) {
		store := newMemoryStore()
		require.NoError(t, store.Set(ctx, "k", 1, 0))
		rt := NewReadThrough(store, time.Minute, zap.NewNop())
		var calls atomic.Int32

		v, err := Fetch(ctx, rt, "k", func(context.Context) (int, error) {
			calls.Add(1)
			return 2, nil
		})

		require.NoError(t, err)
		assert.Equal(t, 1, v)
		assert.Eventually(t, func() bool { return calls.Load() == 1 }, 3*time.Second, 10*time.Millisecond)
	})

	t.Run("fetch error propagates", func(t *testing.T) {
		store := newMemoryStore()
		rt := NewReadThrough(store, time.Minute, nil)
		boom := errors.New("boom")

		_, err := Fetch(ctx, rt, "k", func(context.Context) (int, error) { return 0, boom })

		assert.ErrorIs(t, err, boom)
		assert.False(t, store.has("k"))
	})

	t.Run("store error treated as miss", func(t *testing.T) {
		store := newMemoryStore()
		store.getErr = errors.New("connection refused")
		rt := NewReadThrough(store, time.Minute, nil)

		v, err := Fetch(ctx, rt, "k", func(context.Context) (string, error) { return "fresh", nil })

		require.NoError(t, err)
		assert.Equal(t, "fresh", v)
	})

	t.Run("concurrent misses share one fetch", func(t *testing.T) {
		rt := NewReadThrough(Noop{}, time.Minute, nil)
		release := make(chan struct{})
		var calls atomic.Int32

		var wg sync.WaitGroup
		for i := 0; i < 5; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				v, err := Fetch(ctx, rt, "k", func(context.Context) (int, error) {
					calls.Add(1)
					<-release
					return 7, nil
				})
				assert.NoError(t, err)
				assert.Equal(t, 7, v)
			}()
		}
		time.Sleep(100 * time.Millisecond)
		close(release)
		wg.Wait()

		assert.Equal(t, int32(1), calls.Load())
	})
}

func TestDo(t *testing.T) {
	rt := NewReadThrough(nil, 0, nil)

	v, err := Do(rt, "refresh", func() (string, error) { return "ok", nil })

	require.NoError(t, err)
	assert.Equal(t, "ok", v)
	assert.Equal(t, defaultTTL, rt.TTL())
}

func TestPut(t *testing.T) {
	store := newMemoryStore()
	rt := NewReadThrough(store, time.Minute, nil)

	require.NoError(t, rt.Put(context.Background(), "k", map[string]int{"a": 1}))

	var got map[string]int
	require.NoError(t, store.Get(context.Background(), "k", &got))
	assert.Equal(t, map[string]int{"a": 1}, got)
}

func TestNoop(t *testing.T) {
	var n Noop
	var dest int

	assert.True(t, IsMiss(n.Get(context.Background(), "k", &dest)))
	assert.NoError(t, n.Set(context.Background(), "k", 1, time.Second))
	assert.True(t, IsMiss(redis.Nil))
	assert.False(t, IsMiss(errors.New("other")))
}

func TestAddTTLJitter(t *testing.T) {
	for i := 0; i < 50; i++ {
		got := addTTLJitter(time.Minute)
		assert.GreaterOrEqual(t, got, 45*time.Second)
		assert.Less(t, got, 75*time.Second)
	}
	assert.Equal(t, time.Duration(0), addTTLJitter(0))
	assert.Greater(t, addTTLJitter(5*time.Second), time.Duration(0))
}
