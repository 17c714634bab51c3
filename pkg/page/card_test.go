package page

import (
	"testing"

	"github.com/matst80/slask-storefront/pkg/types"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Fjallraven - Foldsack No. 1 Backpack, Fits 15 Laptops": "fjallraven-foldsack-no-1-backpack-fits-15-laptops",
		"  Mens Casual Premium Slim Fit T-Shirts ":               "mens-casual-premium-slim-fit-t-shirts",
		"---":                                                    "",
		"":                                                       "",
	}
	for in, expected := range cases {
		if got := slugify(in); got != expected {
			t.Errorf("Expected %q for %q, got %q", expected, in, got)
		}
	}
}

func TestMakeCardBadges(t *testing.T) {
	if c := makeCard(types.Product{Id: 1}, false); c.Badge != badgeNew || c.OutOfStock {
		t.Errorf("Expected product 1 to be new and in stock, got %+v", c)
	}
	if c := makeCard(types.Product{Id: 2}, false); c.Badge != badgeOutOfStock || !c.OutOfStock {
		t.Errorf("Expected product 2 to be out of stock, got %+v", c)
	}
	if c := makeCard(types.Product{Id: 7}, true); c.Badge != "" || !c.Wishlisted {
		t.Errorf("Expected product 7 without badge and wishlisted, got %+v", c)
	}
}

func TestMakeCardPriceLabel(t *testing.T) {
	c := makeCard(types.Product{Id: 5, Price: 1234.5}, false)
	if c.PriceLabel != "1,234.5" {
		t.Errorf("Expected 1,234.5, got %s", c.PriceLabel)
	}
	if c.RatingLabel != "" {
		t.Errorf("Expected no rating label without a rating, got %s", c.RatingLabel)
	}
}
