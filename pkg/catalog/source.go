package catalog

import (
	"context"
	"errors"

	"github.com/matst80/slask-storefront/pkg/types"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ErrNetwork means the request did not complete.
	ErrNetwork = errors.New("catalog request failed")
	// ErrInvalidResponse means a non-success status or a payload that could not be used.
	ErrInvalidResponse = errors.New("invalid catalog response")
	ErrNoSnapshot      = errors.New("no catalog snapshot loaded")
)

var (
	fetches = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_catalog_fetches_total",
		Help: "The total number of catalog fetches by source and outcome",
	}, []string{"source", "outcome"})
	cacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storefront_catalog_cache_hits_total",
		Help: "The total number of catalog reads served from cache",
	})
)

// ProductSource produces the product list for a page session.
type ProductSource interface {
	Fetch(ctx context.Context) ([]types.Product, error)
}

type SourceFunc func(ctx context.Context) ([]types.Product, error)

func (f SourceFunc) Fetch(ctx context.Context) ([]types.Product, error) {
	return f(ctx)
}

func countFetch(source string, err error) {
	outcome := "ok"
	switch {
	case errors.Is(err, ErrNetwork):
		outcome = "network_error"
	case err != nil:
		outcome = "invalid_response"
	}
	fetches.WithLabelValues(source, outcome).Inc()
}
