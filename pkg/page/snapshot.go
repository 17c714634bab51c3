package page

import (
	"slices"

	"github.com/matst80/slask-storefront/pkg/selection"
	"github.com/matst80/slask-storefront/pkg/types"
	"github.com/matst80/slask-storefront/pkg/view"
)

const emptyMessage = "No products available."

type CollectionData struct {
	Context       string `json:"@context"`
	Type          string `json:"@type"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	NumberOfItems int    `json:"numberOfItems"`
}

// Snapshot is everything a renderer needs to draw the page.
type Snapshot struct {
	LoadState    types.LoadPhase        `json:"loadState"`
	Products     []Card                 `json:"products"`
	Message      string                 `json:"message,omitempty"`
	SortKey      types.SortKey          `json:"sortKey"`
	SortLabel    string                 `json:"sortLabel"`
	SortOptions  []types.SortOption     `json:"sortOptions"`
	View         view.Snapshot          `json:"view"`
	Filters      []selection.GroupState `json:"filters"`
	Customizable bool                   `json:"customizable"`
	Wishlist     []types.ProductId      `json:"wishlist"`
	NavLinks     []string               `json:"navLinks"`
	Collection   CollectionData         `json:"collection"`
}

func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	cards := make([]Card, 0, len(c.sorted))
	wishlist := make([]types.ProductId, 0)
	for _, p := range c.sorted {
		wishlisted := c.view.IsWishlisted(p.Id)
		if wishlisted {
			wishlist = append(wishlist, p.Id)
		}
		cards = append(cards, makeCard(p, wishlisted))
	}
	slices.Sort(wishlist)

	message := ""
	if len(cards) == 0 && c.phase.IsTerminal() {
		message = emptyMessage
	}

	option := c.sortKey.Option()
	return Snapshot{
		LoadState:    c.phase,
		Products:     cards,
		Message:      message,
		SortKey:      option.Value,
		SortLabel:    option.Label,
		SortOptions:  slices.Clone(types.SortOptions),
		View:         c.view.Snapshot(),
		Filters:      c.sidebar.State(),
		Customizable: c.sidebar.Customizable(),
		Wishlist:     wishlist,
		NavLinks:     slices.Clone(c.navLinks),
		Collection: CollectionData{
			Context:       "https://schema.org",
			Type:          "CollectionPage",
			Name:          "Discover Our Products",
			Description:   "Browse our collection of sustainable handcrafted products",
			NumberOfItems: len(c.products),
		},
	}
}
