package page

import (
	"regexp"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/matst80/slask-storefront/pkg/types"
)

const (
	badgeNew        = "NEW PRODUCT"
	badgeOutOfStock = "OUT OF STOCK"
	altSuffix       = "-sustainable-product"

	newProductMaxId types.ProductId = 2
	outOfStockId    types.ProductId = 2
)

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

func slugify(value string) string {
	return strings.Trim(nonSlug.ReplaceAllString(strings.ToLower(value), "-"), "-")
}

// Card is the grid entry for one product.
type Card struct {
	types.Product
	Alt           string `json:"alt"`
	Badge         string `json:"badge,omitempty"`
	OutOfStock    bool   `json:"outOfStock"`
	Wishlisted    bool   `json:"wishlisted"`
	WishlistLabel string `json:"wishlistLabel"`
	PriceLabel    string `json:"priceLabel"`
	RatingLabel   string `json:"ratingLabel,omitempty"`
}

func makeCard(p types.Product, wishlisted bool) Card {
	outOfStock := p.Id == outOfStockId
	badge := ""
	switch {
	case outOfStock:
		badge = badgeOutOfStock
	case p.Id <= newProductMaxId:
		badge = badgeNew
	}
	label := "Add to wishlist"
	if wishlisted {
		label = "Remove from wishlist"
	}
	ratingLabel := ""
	if p.Rating != nil {
		ratingLabel = humanize.Comma(int64(p.GetRatingCount())) + " ratings"
	}
	return Card{
		Product:       p,
		Alt:           slugify(p.Title) + altSuffix,
		Badge:         badge,
		OutOfStock:    outOfStock,
		Wishlisted:    wishlisted,
		WishlistLabel: label,
		PriceLabel:    humanize.CommafWithDigits(p.GetPrice(), 2),
		RatingLabel:   ratingLabel,
	}
}
