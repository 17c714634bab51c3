package types

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/go-playground/validator"
)

type ProductId int

type Rating struct {
	Rate  float64 `json:"rate"`
	Count int     `json:"count"`
}

// Product is a catalog record as returned by the catalog API. It is never
// mutated after decoding, only re-ordered for display.
type Product struct {
	Id          ProductId `json:"id"`
	Title       string    `json:"title"`
	Price       float64   `json:"price" validate:"gte=0"`
	Image       string    `json:"image"`
	Description string    `json:"description,omitempty"`
	Category    string    `json:"category,omitempty"`
	Rating      *Rating   `json:"rating,omitempty"`
}

// GetPrice returns the price, missing price counts as 0.
func (p *Product) GetPrice() float64 {
	if p == nil {
		return 0
	}
	return p.Price
}

// GetRate returns rating.rate, a missing rating counts as 0.
func (p *Product) GetRate() float64 {
	if p == nil || p.Rating == nil {
		return 0
	}
	return p.Rating.Rate
}

func (p *Product) GetRatingCount() int {
	if p == nil || p.Rating == nil {
		return 0
	}
	return p.Rating.Count
}

var validate = validator.New()

var ErrMissingId = errors.New("product id missing")

// catalogEntry shadows the id so an absent id can be told apart from 0.
type catalogEntry struct {
	Product
	Id *ProductId `json:"id"`
}

// DecodeCatalog reads a JSON array of products. A null body is an empty
// catalog; an entry without an id is an error.
func DecodeCatalog(r io.Reader) ([]Product, error) {
	var entries []catalogEntry
	if err := json.NewDecoder(r).Decode(&entries); err != nil {
		return nil, err
	}
	products := make([]Product, len(entries))
	for i, e := range entries {
		if e.Id == nil {
			return nil, fmt.Errorf("product at position %d: %w", i, ErrMissingId)
		}
		products[i] = e.Product
		products[i].Id = *e.Id
	}
	return products, nil
}

func (p *Product) Validate() error {
	return validate.Struct(*p)
}

// ValidateProducts checks every product and that ids are unique.
func ValidateProducts(products []Product) error {
	seen := make(map[ProductId]struct{}, len(products))
	for i := range products {
		if err := products[i].Validate(); err != nil {
			return fmt.Errorf("product at position %d: %w", i, err)
		}
		if _, found := seen[products[i].Id]; found {
			return fmt.Errorf("duplicate product id %d", products[i].Id)
		}
		seen[products[i].Id] = struct{}{}
	}
	return nil
}

func Ids(products []Product) []ProductId {
	ret := make([]ProductId, len(products))
	for i, p := range products {
		ret[i] = p.Id
	}
	return ret
}
