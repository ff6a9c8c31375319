package types

import (
	"fmt"

	"github.com/google/uuid"
)

// MaxPriceSentinel encodes "no upper bound" for the top price bracket.
const MaxPriceSentinel = 100000

// PriceTag is a curated nightly-price bracket. Its slug is always
// derived from the bounds as "{min}-{max}" and is never editable on its
// own.
type PriceTag struct {
	ID       uuid.UUID `json:"id"`
	Label    string    `json:"label"`
	Slug     string    `json:"slug"`
	MinPrice int       `json:"min_price"`
	MaxPrice int       `json:"max_price"`
}

// PriceTagSlug computes the canonical slug for a price bracket.
func PriceTagSlug(minPrice, maxPrice int) string {
	return fmt.Sprintf("%d-%d", minPrice, maxPrice)
}

type CreatePriceTagParams struct {
	Label    string `json:"label"`
	MinPrice int    `json:"min_price"`
	MaxPrice int    `json:"max_price"`
}

type UpdatePriceTagParams struct {
	Label    *string `json:"label,omitempty"`
	MinPrice *int    `json:"min_price,omitempty"`
	MaxPrice *int    `json:"max_price,omitempty"`
}
