package catalog

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/matst80/slask-storefront/pkg/types"
)

const (
	DefaultEndpoint = "https://fakestoreapi.com/products"
	DefaultTimeout  = 10 * time.Second
)

// HttpSource reads the catalog with a single GET against the catalog endpoint.
type HttpSource struct {
	Endpoint   string
	HttpClient *http.Client
}

func NewHttpSource(endpoint string, timeout time.Duration) *HttpSource {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &HttpSource{
		Endpoint:   endpoint,
		HttpClient: &http.Client{Timeout: timeout},
	}
}

func (s *HttpSource) Fetch(ctx context.Context) ([]types.Product, error) {
	products, err := s.fetch(ctx)
	countFetch("http", err)
	return products, err
}

func (s *HttpSource) fetch(ctx context.Context) ([]types.Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.Endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: error creating request: %w", ErrNetwork, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.HttpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: received status %d from %s", ErrInvalidResponse, resp.StatusCode, s.Endpoint)
	}

	products, err := types.DecodeCatalog(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: error decoding products: %w", ErrInvalidResponse, err)
	}
	if err := types.ValidateProducts(products); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidResponse, err)
	}
	return products, nil
}
