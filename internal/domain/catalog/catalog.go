// Package catalog models the dosage tier catalog shown on the landing
// page. Tiers are informational: checkout receives its price through
// the navigation seed, never by looking the catalog up mid-flow.
package catalog

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when a requested tier does not exist.
var ErrNotFound = errors.New("product not found")

// Product is one purchasable dosage tier.
type Product struct {
	ID            string
	Name          string
	Dosage        string
	Price         decimal.Decimal
	OriginalPrice decimal.Decimal
	DiscountPct   int
	Tag           string
	Image         string
}

// Repository defines read operations for the catalog.
type Repository interface {
	List(ctx context.Context) ([]Product, error)
	GetByDosage(ctx context.Context, dosage string) (*Product, error)
}
