package types

type SortKey string

const (
	SortRecommended SortKey = "recommended"
	SortNewest      SortKey = "newest"
	SortPopular     SortKey = "popular"
	SortPriceHigh   SortKey = "price-high"
	SortPriceLow    SortKey = "price-low"
)

type SortOption struct {
	Value SortKey `json:"value"`
	Label string  `json:"label"`
}

var SortOptions = []SortOption{
	{Value: SortRecommended, Label: "RECOMMENDED"},
	{Value: SortNewest, Label: "NEWEST FIRST"},
	{Value: SortPopular, Label: "POPULAR"},
	{Value: SortPriceHigh, Label: "PRICE: HIGH TO LOW"},
	{Value: SortPriceLow, Label: "PRICE: LOW TO HIGH"},
}

func (k SortKey) IsKnown() bool {
	for _, o := range SortOptions {
		if o.Value == k {
			return true
		}
	}
	return false
}

// ParseSortKey maps unknown or empty values to recommended.
func ParseSortKey(value string) SortKey {
	k := SortKey(value)
	if k.IsKnown() {
		return k
	}
	return SortRecommended
}

// Option returns the matching sort option, falling back to the first one.
func (k SortKey) Option() SortOption {
	for _, o := range SortOptions {
		if o.Value == k {
			return o
		}
	}
	return SortOptions[0]
}
