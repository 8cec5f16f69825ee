package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/apetrov/vendomat-backend/internal/domain"
)

// catalogRepository is an in-memory implementation of
// domain.CatalogRepository. It is the default storage for a single machine,
// matching the in-memory lifetime of the coin pools.
type catalogRepository struct {
	mu       sync.RWMutex
	products map[uuid.UUID]*domain.Product
}

// NewCatalogRepository creates an empty in-memory catalog.
func NewCatalogRepository() domain.CatalogRepository {
	return &catalogRepository{
		products: make(map[uuid.UUID]*domain.Product),
	}
}

// GetByID retrieves a product by its ID.
func (r *catalogRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	clone := *product
	return &clone, nil
}

// List retrieves every product, ordered by name for stable output.
func (r *catalogRepository) List(ctx context.Context) ([]*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Product, 0, len(r.products))
	for _, product := range r.products {
		clone := *product
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Create adds a new product.
func (r *catalogRepository) Create(ctx context.Context, product *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.products[product.ID]; exists {
		return domain.ErrProductAlreadyExists
	}
	clone := *product
	r.products[product.ID] = &clone
	return nil
}

// DecrementStock atomically reduces remaining quantity by n.
func (r *catalogRepository) DecrementStock(ctx context.Context, id uuid.UUID, n int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	product, ok := r.products[id]
	if !ok {
		return domain.ErrProductNotFound
	}
	if product.Quantity < n {
		return domain.ErrOutOfStock
	}
	product.Quantity -= n
	return nil
}

// IncreaseStock adds n units to remaining quantity.
func (r *catalogRepository) IncreaseStock(ctx context.Context, id uuid.UUID, n int) error {
	if n <= 0 {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	product, ok := r.products[id]
	if !ok {
		return domain.ErrProductNotFound
	}
	product.Quantity += n
	return nil
}
