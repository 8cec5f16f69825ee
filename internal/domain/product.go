package domain

import (
	"errors"

	"github.com/google/uuid"
)

// ProductKind is the category tag of a catalog entry. Closed enumeration;
// no behavior differs between kinds.
type ProductKind string

const (
	ProductKindDrink ProductKind = "DRINK"
	ProductKindSnack ProductKind = "SNACK"
)

// Product is a single catalog entry together with its remaining stock.
type Product struct {
	ID       uuid.UUID
	Name     string
	Kind     ProductKind
	Price    Amount
	Quantity int
}

// Validate ensures the product adheres to domain rules.
// Returns an error if validation fails.
func (p *Product) Validate() error {
	if p.Name == "" {
		return errors.New("product name cannot be empty")
	}
	if p.Kind != ProductKindDrink && p.Kind != ProductKindSnack {
		return errors.New("product kind must be DRINK or SNACK")
	}
	if p.Price.IsNegative() {
		return errors.New("product price cannot be negative")
	}
	if p.Quantity < 0 {
		return errors.New("product quantity cannot be negative")
	}
	return nil
}

// InStock reports whether at least one unit remains.
func (p *Product) InStock() bool {
	return p.Quantity > 0
}
