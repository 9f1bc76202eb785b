package cache

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	defaultTTL          = 10 * time.Minute
	defaultFetchTimeout = 60 * time.Second
	defaultSetTimeout   = 5 * time.Second
)

// Store is the subset of a cache the read-through layer needs.
type Store interface {
	Get(ctx context.Context, key string, dest any) error
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	Close() error
}

type FetchFunc[T any] func(ctx context.Context) (T, error)

// ReadThrough serves values from a Store, coalesces concurrent misses of the
// same key and refreshes hits in the background.
type ReadThrough struct {
	store  Store
	sf     singleflight.Group
	ttl    time.Duration
	logger *zap.Logger
}

func NewReadThrough(store Store, ttl time.Duration, logger *zap.Logger) *ReadThrough {
	if store == nil {
		store = Noop{}
	}
	if ttl <= 0 {
		ttl = defaultTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReadThrough{store: store, ttl: ttl, logger: logger.Named("cache")}
}

func (r *ReadThrough) TTL() time.Duration {
	return r.ttl
}

// addTTLJitter adds up to ±15s random jitter to TTL to avoid mass expiration.
func addTTLJitter(ttl time.Duration) time.Duration {
	if ttl <= 0 {
		return ttl
	}
	jitter := time.Duration(rand.Intn(30)-15) * time.Second
	if ttl+jitter <= 0 {
		return ttl
	}
	return ttl + jitter
}

// Put stores value under key immediately, e.g. after an explicit refresh.
func (r *ReadThrough) Put(ctx context.Context, key string, value any) error {
	setCtx, cancel := context.WithTimeout(ctx, defaultSetTimeout)
	defer cancel()
	return r.store.Set(setCtx, key, value, addTTLJitter(r.ttl))
}

// Do runs fn once for concurrent callers sharing key, bypassing the cache.
func Do[T any](r *ReadThrough, key string, fn func() (T, error)) (T, error) {
	var zero T
	v, err, _ := r.sf.Do(key, func() (any, error) {
		return fn()
	})
	if err != nil {
		return zero, err
	}
	value, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("type mismatch for key %q", key)
	}
	return value, nil
}

func triggerBackgroundRefresh[T any](r *ReadThrough, key string, fn FetchFunc[T]) {
	go func() {
		time.Sleep(time.Duration(rand.Intn(1000)) * time.Millisecond)

		_, _, _ = r.sf.Do(key+":refresh", func() (any, error) {
			ctx, cancel := context.WithTimeout(context.Background(), defaultFetchTimeout)
			defer cancel()

			value, err := fn(ctx)
			if err != nil {
				r.logger.Warn("background refresh failed",
					zap.String("key", key),
					zap.Error(err))
				return nil, err
			}

			if err := r.Put(context.Background(), key, value); err != nil {
				r.logger.Warn("failed to update cache in background",
					zap.String("key", key),
					zap.Error(err))
			} else {
				r.logger.Debug("cache refreshed in background", zap.String("key", key))
			}
			return value, nil
		})
	}()
}

func fetchAndCacheInBackground[T any](ctx context.Context, r *ReadThrough, key string, fn FetchFunc[T]) (T, error) {
	var zero T

	value, err := fn(ctx)
	if err != nil {
		r.logger.Error("fetch failed", zap.String("key", key), zap.Error(err))
		return zero, err
	}

	go func(v T) {
		if err := r.Put(context.Background(), key, v); err != nil {
			r.logger.Warn("failed to set cache on miss", zap.String("key", key), zap.Error(err))
		} else {
			r.logger.Debug("cache populated on miss", zap.String("key", key))
		}
	}(value)

	return value, nil
}

// Fetch implements read-through caching with singleflight and refresh-ahead
// logic. Store errors other than a miss are logged and treated as a miss.
func Fetch[T any](ctx context.Context, r *ReadThrough, key string, fn FetchFunc[T]) (T, error) {
	var zero T

	var cached T
	err := r.store.Get(ctx, key, &cached)
	switch {
	case err == nil:
		r.logger.Debug("cache hit", zap.String("key", key))
		triggerBackgroundRefresh(r, key, fn)
		return cached, nil

	case IsMiss(err):
		r.logger.Debug("cache miss", zap.String("key", key))

	default:
		r.logger.Warn("cache get error (treating as miss)", zap.String("key", key), zap.Error(err))
	}

	v, err, shared := r.sf.Do(key, func() (any, error) {
		return fetchAndCacheInBackground(ctx, r, key, fn)
	})
	if err != nil {
		return zero, err
	}

	value, ok := v.(T)
	if !ok {
		r.logger.Error("singleflight type mismatch", zap.String("key", key))
		return zero, fmt.Errorf("type mismatch for key %q", key)
	}

	if shared {
		r.logger.Debug("singleflight shared result", zap.String("key", key))
	}

	return value, nil
}
