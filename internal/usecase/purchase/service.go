package purchase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/apetrov/vendomat-backend/internal/domain"
	"github.com/apetrov/vendomat-backend/internal/usecase/register"
)

// Service orchestrates a full purchase: it composes the cash register with
// the external product catalog. It owns neither the pools nor the catalog;
// it only invokes their operations.
type Service struct {
	Catalog  domain.CatalogRepository
	Register *register.Register

	// mu serializes purchases against each other so the stock check and the
	// post-commit decrement cannot interleave across two buyers. Cash
	// consistency against inserts, refunds and operator ops is the register
	// transaction's job.
	mu  sync.Mutex
	log *zap.Logger
}

// NewService creates a new purchase Service instance.
func NewService(catalog domain.CatalogRepository, reg *register.Register, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		Catalog:  catalog,
		Register: reg,
		log:      log,
	}
}

// Buy executes a purchase of the product identified by productID.
// Logic:
//  1. Look up the product in the catalog
//  2. Check stock
//  3. Check inserted funds against the price
//  4. Verify change for paid-price is possible (no mutation yet; a failure
//     here leaves the customer's coins in the hopper, retrievable by refund)
//  5. Commit the cash transaction, then decrement stock
//  6. Build and return the receipt
//
// Failures before the commit return one of the business sentinels
// (ErrProductNotFound, ErrOutOfStock, ErrInsufficientFunds,
// ErrChangeImpossible) with no state change. Once the commit has started,
// a failure of either sub-step is a fatal invariant violation.
func (s *Service) Buy(ctx context.Context, productID uuid.UUID) (*domain.Receipt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	product, err := s.Catalog.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to look up product: %w", err)
	}

	if !product.InStock() {
		return nil, domain.ErrOutOfStock
	}

	// The funds check, change check and commit run inside one register
	// transaction: a concurrent insert, refund or operator cash operation
	// cannot slip between the checks and the commit.
	var (
		paid         domain.Amount
		changeAmount domain.Amount
		changeCoins  domain.CoinPool
		cashErr      error
	)
	s.Register.Transact(func(tx register.Tx) {
		paid = tx.InsertedAmount()
		if paid.LessThan(product.Price) {
			cashErr = domain.ErrInsufficientFunds
			return
		}
		changeAmount = paid.Sub(product.Price)
		if !tx.CanMakeChange(changeAmount) {
			cashErr = domain.ErrChangeImpossible
			return
		}
		changeCoins = tx.CommitPurchase(changeAmount)
	})
	if cashErr != nil {
		return nil, cashErr
	}

	// Stock goes down strictly after a successful cash commit. A failure
	// here leaves cash committed with no product handed out, which is the
	// same class of bookkeeping corruption the register panics on.
	if err := s.Catalog.DecrementStock(ctx, productID, 1); err != nil {
		panic(domain.NewInvariantViolation("Buy",
			"stock decrement failed after cash commit for product %s: %v", productID, err))
	}

	receipt := &domain.Receipt{
		ID:           uuid.New(),
		ProductID:    product.ID,
		ProductName:  product.Name,
		Price:        product.Price,
		Paid:         paid,
		ChangeAmount: changeAmount,
		ChangeCoins:  changeCoins,
		CreatedAt:    time.Now(),
	}

	s.log.Info("purchase completed",
		zap.String("product_id", product.ID.String()),
		zap.String("product", product.Name),
		zap.Int64("price", product.Price.MinorUnits()),
		zap.Int64("paid", paid.MinorUnits()),
		zap.Int64("change", changeAmount.MinorUnits()),
	)

	return receipt, nil
}
