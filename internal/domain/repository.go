package domain

import (
	"context"

	"github.com/google/uuid"
)

// CatalogRepository defines the interface for product catalog operations.
// The cash-handling core only depends on this interface; the catalog itself
// is an external collaborator.
type CatalogRepository interface {
	// GetByID retrieves a product by its ID.
	// Returns ErrProductNotFound when no such product exists.
	GetByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// List retrieves every product in the catalog.
	List(ctx context.Context) ([]*Product, error)

	// Create adds a new product to the catalog.
	Create(ctx context.Context, product *Product) error

	// DecrementStock atomically reduces a product's remaining quantity by n.
	// Returns ErrProductNotFound if the product is absent and ErrOutOfStock
	// if fewer than n units remain.
	DecrementStock(ctx context.Context, id uuid.UUID, n int) error

	// IncreaseStock adds n units to a product's remaining quantity.
	// Returns ErrProductNotFound if the product is absent.
	IncreaseStock(ctx context.Context, id uuid.UUID, n int) error
}
