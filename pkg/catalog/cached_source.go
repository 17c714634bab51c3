package catalog

import (
	"context"
	"errors"
	"time"

	"github.com/matst80/slask-storefront/pkg/types"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	DefaultCacheKey   = "storefront:catalog"
	DefaultRevalidate = 60 * time.Second
)

// CachedSource serves the catalog from cache and revalidates it from the
// upstream source once the entry expires. Concurrent misses share one
// upstream fetch. Failed fetches are never cached.
type CachedSource struct {
	Upstream   ProductSource
	Cache      Cache
	Key        string
	Revalidate time.Duration
	Logger     *zap.Logger
	group      singleflight.Group
}

func NewCachedSource(upstream ProductSource, cache Cache, revalidate time.Duration, logger *zap.Logger) *CachedSource {
	if revalidate <= 0 {
		revalidate = DefaultRevalidate
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedSource{
		Upstream:   upstream,
		Cache:      cache,
		Key:        DefaultCacheKey,
		Revalidate: revalidate,
		Logger:     logger,
	}
}

func (s *CachedSource) Fetch(ctx context.Context) ([]types.Product, error) {
	var products []types.Product
	err := s.Cache.Get(ctx, s.Key, &products)
	if err == nil {
		cacheHits.Inc()
		if products == nil {
			products = []types.Product{}
		}
		return products, nil
	}
	if !errors.Is(err, ErrCacheMiss) {
		s.Logger.Warn("catalog cache read failed", zap.String("key", s.Key), zap.Error(err))
	}

	v, err, shared := s.group.Do(s.Key, func() (any, error) {
		fresh, err := s.Upstream.Fetch(ctx)
		if err != nil {
			return nil, err
		}
		if err := s.Cache.Set(ctx, s.Key, fresh, s.Revalidate); err != nil {
			s.Logger.Warn("catalog cache write failed", zap.String("key", s.Key), zap.Error(err))
		}
		return fresh, nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		s.Logger.Debug("catalog fetch shared between sessions")
	}
	return v.([]types.Product), nil
}
