package sorting

import (
	"cmp"
	"slices"

	"github.com/matst80/slask-storefront/pkg/types"
)

// Sort returns a new ordering of products for key. The input is never
// modified. Unknown keys keep the source order.
func Sort(products []types.Product, key types.SortKey) []types.Product {
	ret := slices.Clone(products)
	if ret == nil {
		ret = []types.Product{}
	}
	switch key {
	case types.SortNewest:
		slices.Reverse(ret)
	case types.SortPriceHigh:
		sortByValue(ret, priceValue, true)
	case types.SortPriceLow:
		sortByValue(ret, priceValue, false)
	case types.SortPopular:
		sortByValue(ret, rateValue, true)
	}
	return ret
}

func priceValue(p *types.Product) float64 {
	return p.GetPrice()
}

func rateValue(p *types.Product) float64 {
	return p.GetRate()
}

// sortByValue is stable, equal values keep their relative input order.
func sortByValue(items []types.Product, fn func(p *types.Product) float64, descending bool) {
	slices.SortStableFunc(items, func(a, b types.Product) int {
		if descending {
			return cmp.Compare(fn(&b), fn(&a))
		}
		return cmp.Compare(fn(&a), fn(&b))
	})
}

// SortedIds returns only the resulting order.
func SortedIds(products []types.Product, key types.SortKey) []types.ProductId {
	return types.Ids(Sort(products, key))
}
