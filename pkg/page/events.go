package page

import (
	"errors"
	"fmt"
	"slices"

	"github.com/matst80/slask-storefront/pkg/selection"
	"github.com/matst80/slask-storefront/pkg/sorting"
	"github.com/matst80/slask-storefront/pkg/types"
	"github.com/matst80/slask-storefront/pkg/view"
)

var ErrUnknownProduct = errors.New("unknown product")

// SetSortKey activates the sort option and closes the sort menu. Unknown
// values select recommended.
func (c *Controller) SetSortKey(value string) types.SortKey {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sortKey = types.ParseSortKey(value)
	_ = c.view.Set(view.SortMenu, false)
	if c.phase == types.PhaseSuccess {
		c.sorted = sorting.Sort(c.products, c.sortKey)
	}
	return c.sortKey
}

// ToggleFilterOption updates the selection of one group. Selections do not
// change which products are presented.
func (c *Controller) ToggleFilterOption(groupId, option string) (selection.Set, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sidebar.Toggle(groupId, option)
}

func (c *Controller) ToggleCustomizable() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sidebar.ToggleCustomizable()
}

func (c *Controller) FlipView(name view.Toggle) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view.Flip(name)
}

// SetView is used for explicit closes, like a click outside the sort menu or
// the close button of the mobile drawer.
func (c *Controller) SetView(name view.Toggle, value bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view.Set(name, value)
}

// ClickNavLink closes the mobile navigation.
func (c *Controller) ClickNavLink() {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.view.Set(view.MobileNav, false)
}

func (c *Controller) ToggleWishlist(id types.ProductId) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !slices.ContainsFunc(c.products, func(p types.Product) bool { return p.Id == id }) {
		return false, fmt.Errorf("%w: %d", ErrUnknownProduct, id)
	}
	return c.view.ToggleWishlist(id), nil
}
