package page

import (
	"context"
	"fmt"
	"sync"

	"github.com/matst80/slask-storefront/pkg/catalog"
	"github.com/matst80/slask-storefront/pkg/selection"
	"github.com/matst80/slask-storefront/pkg/sorting"
	"github.com/matst80/slask-storefront/pkg/types"
	"github.com/matst80/slask-storefront/pkg/view"
	"go.uber.org/zap"
)

type Options struct {
	Source       catalog.ProductSource
	FilterGroups []types.FilterGroup
	NavLinks     []string
	Logger       *zap.Logger
}

// Controller owns the state of one page session: the load lifecycle, the
// active sort key and the view and filter state. All events are serialized.
type Controller struct {
	mu       sync.Mutex
	source   catalog.ProductSource
	logger   *zap.Logger
	navLinks []string

	phase    types.LoadPhase
	products []types.Product
	sorted   []types.Product
	sortKey  types.SortKey
	loadErr  error
	loaded   chan struct{}

	view    *view.State
	sidebar *selection.Sidebar
}

func NewController(opts Options) *Controller {
	groups := opts.FilterGroups
	if groups == nil {
		groups = types.DefaultFilterGroups()
	}
	navLinks := opts.NavLinks
	if navLinks == nil {
		navLinks = types.DefaultNavLinks()
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{
		source:   opts.Source,
		logger:   logger,
		navLinks: navLinks,
		phase:    types.PhaseIdle,
		sortKey:  types.SortRecommended,
		sorted:   []types.Product{},
		loaded:   make(chan struct{}),
		view:     view.NewState(groups),
		sidebar:  selection.NewSidebar(groups),
	}
}

// begin moves idle to loading. Only the first caller gets true.
func (c *Controller) begin() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.phase != types.PhaseIdle {
		return false
	}
	c.phase = types.PhaseLoading
	return true
}

// Mount issues the single catalog fetch of this session and blocks until it
// completes. Later calls are no-ops. Fetch failures are logged and end in the
// error phase, they are never returned.
func (c *Controller) Mount(ctx context.Context) {
	if !c.begin() {
		return
	}
	c.load(ctx)
}

// MountAsync starts the fetch in the background and returns right away; the
// snapshot reports loading until the fetch completes.
func (c *Controller) MountAsync(ctx context.Context) {
	if !c.begin() {
		return
	}
	go c.load(ctx)
}

func (c *Controller) load(ctx context.Context) {
	var products []types.Product
	var err error
	if c.source == nil {
		err = fmt.Errorf("%w: no product source configured", catalog.ErrNetwork)
	} else {
		products, err = c.source.Fetch(ctx)
	}
	if err != nil {
		c.logger.Warn("catalog fetch failed", zap.Error(err))
	}
	c.complete(products, err)
}

func (c *Controller) complete(products []types.Product, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	defer close(c.loaded)
	if err != nil {
		c.phase = types.PhaseError
		c.loadErr = err
		c.products = nil
		c.sorted = []types.Product{}
		return
	}
	if products == nil {
		products = []types.Product{}
	}
	c.phase = types.PhaseSuccess
	c.products = products
	c.sorted = sorting.Sort(products, c.sortKey)
}

// Loaded is closed once the fetch has completed, successfully or not.
func (c *Controller) Loaded() <-chan struct{} {
	return c.loaded
}

func (c *Controller) Phase() types.LoadPhase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// Err returns the swallowed fetch error, for diagnostics only.
func (c *Controller) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loadErr
}

// Products returns the presented list: sorted products on success, empty otherwise.
func (c *Controller) Products() []types.Product {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]types.Product{}, c.sorted...)
}

func (c *Controller) SortKey() types.SortKey {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sortKey
}
