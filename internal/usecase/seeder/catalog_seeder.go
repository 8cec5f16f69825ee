package seeder

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/apetrov/vendomat-backend/internal/domain"
	"github.com/apetrov/vendomat-backend/internal/usecase/register"
)

// Fixed UUIDs for the default catalog so re-seeding is idempotent.
var (
	DefaultLemonadeID = uuid.MustParse("00000000-0000-0000-0000-000000000001")
	DefaultColaID     = uuid.MustParse("00000000-0000-0000-0000-000000000002")
	DefaultCrispsID   = uuid.MustParse("00000000-0000-0000-0000-000000000003")
	DefaultBarID      = uuid.MustParse("00000000-0000-0000-0000-000000000004")
)

// Seeder populates an empty machine: the default product catalog and the
// initial vault float.
type Seeder struct {
	catalog  domain.CatalogRepository
	register *register.Register
}

// NewSeeder creates a new Seeder instance.
func NewSeeder(catalog domain.CatalogRepository, reg *register.Register) *Seeder {
	return &Seeder{
		catalog:  catalog,
		register: reg,
	}
}

// SeedCatalog ensures the default products exist. Products already present
// are left untouched.
func (s *Seeder) SeedCatalog(ctx context.Context) error {
	defaults := []*domain.Product{
		{
			ID:       DefaultLemonadeID,
			Name:     "Lemonade",
			Kind:     domain.ProductKindDrink,
			Price:    domain.FromMinorUnits(700),
			Quantity: 10,
		},
		{
			ID:       DefaultColaID,
			Name:     "Cola",
			Kind:     domain.ProductKindDrink,
			Price:    domain.FromMinorUnits(900),
			Quantity: 10,
		},
		{
			ID:       DefaultCrispsID,
			Name:     "Crisps",
			Kind:     domain.ProductKindSnack,
			Price:    domain.FromMinorUnits(500),
			Quantity: 15,
		},
		{
			ID:       DefaultBarID,
			Name:     "Chocolate Bar",
			Kind:     domain.ProductKindSnack,
			Price:    domain.FromMinorUnits(600),
			Quantity: 15,
		},
	}

	for _, product := range defaults {
		_, err := s.catalog.GetByID(ctx, product.ID)
		if err == nil {
			continue
		}
		// Only a confirmed absence warrants a create; a storage failure
		// must surface, not trigger spurious create attempts.
		if !errors.Is(err, domain.ErrProductNotFound) {
			return fmt.Errorf("failed to check product %s: %w", product.ID, err)
		}

		if err := product.Validate(); err != nil {
			return err
		}
		if err := s.catalog.Create(ctx, product); err != nil {
			return err
		}
	}

	return nil
}

// SeedFloat loads the standard operator float into the vault:
// ten 10-unit, ten 5-unit, twenty 2-unit and fifty 1-unit coins.
// Only applied when the vault is empty.
func (s *Seeder) SeedFloat() {
	if !s.register.VaultBalance().IsZero() {
		return
	}
	s.register.AddFloat(domain.DenominationTen, 10)
	s.register.AddFloat(domain.DenominationFive, 10)
	s.register.AddFloat(domain.DenominationTwo, 20)
	s.register.AddFloat(domain.DenominationOne, 50)
}
