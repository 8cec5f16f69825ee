package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/apetrov/vendomat-backend/internal/domain"
)

// catalogRepository implements domain.CatalogRepository
type catalogRepository struct {
	db *DB
}

// NewCatalogRepository creates a new catalog repository
func NewCatalogRepository(db *DB) domain.CatalogRepository {
	return &catalogRepository{db: db}
}

// GetByID retrieves a product by its ID
func (r *catalogRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	query := `
		SELECT id, name, kind, price_minor, quantity
		FROM products
		WHERE id = $1
	`

	var product domain.Product
	var priceMinor int64

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&product.ID,
		&product.Name,
		&product.Kind,
		&priceMinor,
		&product.Quantity,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product by ID: %w", err)
	}

	product.Price = domain.FromMinorUnits(priceMinor)
	return &product, nil
}

// List retrieves every product, ordered by name
func (r *catalogRepository) List(ctx context.Context) ([]*domain.Product, error) {
	query := `
		SELECT id, name, kind, price_minor, quantity
		FROM products
		ORDER BY name
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	var products []*domain.Product
	for rows.Next() {
		var product domain.Product
		var priceMinor int64
		if err := rows.Scan(
			&product.ID,
			&product.Name,
			&product.Kind,
			&priceMinor,
			&product.Quantity,
		); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		product.Price = domain.FromMinorUnits(priceMinor)
		products = append(products, &product)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate products: %w", err)
	}

	return products, nil
}

// Create adds a new product
func (r *catalogRepository) Create(ctx context.Context, product *domain.Product) error {
	query := `
		INSERT INTO products (id, name, kind, price_minor, quantity)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO NOTHING
	`

	result, err := r.db.ExecContext(ctx, query,
		product.ID,
		product.Name,
		string(product.Kind),
		product.Price.MinorUnits(),
		product.Quantity,
	)
	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check created product: %w", err)
	}
	if affected == 0 {
		return domain.ErrProductAlreadyExists
	}

	return nil
}

// DecrementStock atomically reduces remaining quantity by n.
// The quantity guard lives in the WHERE clause so two concurrent purchases
// cannot oversell the last unit.
func (r *catalogRepository) DecrementStock(ctx context.Context, id uuid.UUID, n int) error {
	query := `
		UPDATE products
		SET quantity = quantity - $2
		WHERE id = $1 AND quantity >= $2
	`

	result, err := r.db.ExecContext(ctx, query, id, n)
	if err != nil {
		return fmt.Errorf("failed to decrement stock: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check decremented stock: %w", err)
	}
	if affected == 0 {
		// Distinguish a missing product from an exhausted one.
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return domain.ErrOutOfStock
	}

	return nil
}

// IncreaseStock adds n units to remaining quantity
func (r *catalogRepository) IncreaseStock(ctx context.Context, id uuid.UUID, n int) error {
	if n <= 0 {
		return nil
	}

	query := `
		UPDATE products
		SET quantity = quantity + $2
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query, id, n)
	if err != nil {
		return fmt.Errorf("failed to increase stock: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check increased stock: %w", err)
	}
	if affected == 0 {
		return domain.ErrProductNotFound
	}

	return nil
}
