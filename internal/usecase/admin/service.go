package admin

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/apetrov/vendomat-backend/internal/domain"
	"github.com/apetrov/vendomat-backend/internal/usecase/register"
)

// Credential verifies an operator-supplied PIN. It is an interface so the
// plain comparison below can be swapped for a hashed implementation without
// touching the service.
type Credential interface {
	Verify(pin string) bool
}

// PlainPIN compares the supplied PIN against a configured value held in
// memory in plaintext. That is the reference behavior for this simulation,
// kept as-is rather than hardened.
type PlainPIN string

// Verify reports whether pin matches.
func (p PlainPIN) Verify(pin string) bool {
	return string(p) == pin
}

// Service gates operator actions behind a credential check.
type Service struct {
	cred     Credential
	register *register.Register
	catalog  domain.CatalogRepository
	log      *zap.Logger
}

// NewService creates a new admin Service instance.
func NewService(cred Credential, reg *register.Register, catalog domain.CatalogRepository, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		cred:     cred,
		register: reg,
		catalog:  catalog,
		log:      log,
	}
}

// Authenticate checks the PIN and returns an operator session.
// Returns ErrAccessDenied on a mismatch.
func (s *Service) Authenticate(pin string) (*Session, error) {
	if !s.cred.Verify(pin) {
		s.log.Warn("admin authentication failed")
		return nil, domain.ErrAccessDenied
	}
	return &Session{svc: s}, nil
}

// Session grants operator authority over the machine. Obtainable only
// through Authenticate.
type Session struct {
	svc *Service
}

// AddFloat adds count coins of denomination d to the vault.
func (s *Session) AddFloat(d domain.Denomination, count int) {
	s.svc.register.AddFloat(d, count)
	s.svc.log.Info("float added",
		zap.Int64("denomination", int64(d)),
		zap.Int("count", count),
	)
}

// CollectCash empties the vault and returns everything it held.
func (s *Session) CollectCash() domain.CoinPool {
	collected := s.svc.register.EmptyVault()
	s.svc.log.Info("vault collected", zap.Int64("total", collected.Total().MinorUnits()))
	return collected
}

// CashSnapshot returns read-only copies of the vault and hopper.
func (s *Session) CashSnapshot() (vault, hopper domain.CoinPool) {
	return s.svc.register.Snapshot()
}

// IncreaseStock adds n units of a product to the catalog.
func (s *Session) IncreaseStock(ctx context.Context, id uuid.UUID, n int) error {
	if err := s.svc.catalog.IncreaseStock(ctx, id, n); err != nil {
		return err
	}
	s.svc.log.Info("stock increased",
		zap.String("product_id", id.String()),
		zap.Int("count", n),
	)
	return nil
}
