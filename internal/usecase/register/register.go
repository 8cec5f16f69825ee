package register

import (
	"sync"

	"github.com/apetrov/vendomat-backend/internal/domain"
)

// Register owns the machine's two coin pools: the vault (committed machine
// funds) and the hopper (coins inserted by the current customer, not yet the
// machine's property). No other component mutates coin counts directly.
//
// All methods are safe for concurrent use; a single mutex guards both pools
// so every operation observes a consistent vault+hopper pair. Multi-step
// sequences that must not interleave with inserts, refunds or operator cash
// ops run inside Transact.
type Register struct {
	mu         sync.Mutex
	vault      domain.CoinPool
	hopper     domain.CoinPool
	makeChange domain.ChangeFunc
}

// New creates a Register with empty pools and the given change strategy.
func New(makeChange domain.ChangeFunc) *Register {
	return &Register{
		vault:      domain.NewCoinPool(),
		hopper:     domain.NewCoinPool(),
		makeChange: makeChange,
	}
}

// Tx is a view of the register handed to a Transact callback. Its methods
// run with the pool lock already held, so the sequence of calls made inside
// one Transact observes and mutates a single consistent snapshot.
type Tx struct {
	r *Register
}

// Transact runs fn while holding the pool lock. Every other register
// operation blocks until fn returns, which is what makes the purchase
// check-then-commit sequence safe against a concurrent refund or an operator
// emptying the vault mid-purchase.
func (r *Register) Transact(fn func(tx Tx)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fn(Tx{r: r})
}

// InsertedAmount returns the total value of the hopper.
func (t Tx) InsertedAmount() domain.Amount {
	return t.r.hopper.Total()
}

// CanMakeChange reports whether amount is decomposable from the combined
// vault+hopper pool. Pure query.
func (t Tx) CanMakeChange(amount domain.Amount) bool {
	_, ok := t.r.makeChange(amount, t.r.merged())
	return ok
}

// CommitPurchase executes the purchase transaction under the lock already
// held by Transact. See Register.CommitPurchase for the contract.
func (t Tx) CommitPurchase(changeAmount domain.Amount) domain.CoinPool {
	return t.r.commitPurchase(changeAmount)
}

// InsertedAmount returns the total value of the hopper.
func (r *Register) InsertedAmount() domain.Amount {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.hopper.Total()
}

// VaultBalance returns the total value of the vault.
func (r *Register) VaultBalance() domain.Amount {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.vault.Total()
}

// Insert adds one coin to the hopper. No upper bound is enforced.
func (r *Register) Insert(c domain.Coin) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hopper.AddCoin(c)
}

// RefundInserted returns the entire hopper contents unchanged and empties
// the hopper. The customer receives exactly the coins they inserted, not a
// re-decomposition of the same value.
func (r *Register) RefundInserted() domain.CoinPool {
	r.mu.Lock()
	defer r.mu.Unlock()
	refund := r.hopper
	r.hopper = domain.NewCoinPool()
	return refund
}

// AddFloat adds count coins of denomination d to the vault.
// A non-positive count is a no-op.
func (r *Register) AddFloat(d domain.Denomination, count int) {
	if count <= 0 {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.vault.Add(d, count)
}

// EmptyVault returns the entire vault contents and empties it
// (operator cash collection).
func (r *Register) EmptyVault() domain.CoinPool {
	r.mu.Lock()
	defer r.mu.Unlock()
	collected := r.vault
	r.vault = domain.NewCoinPool()
	return collected
}

// CanMakeChange reports whether amount is decomposable from the combined
// vault+hopper pool. Pure query: the hypothetical decomposition is discarded
// and no pool is mutated.
func (r *Register) CanMakeChange(amount domain.Amount) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.makeChange(amount, r.merged())
	return ok
}

// CommitPurchase executes the purchase transaction: the hopper migrates into
// the vault and the change for changeAmount is deducted and returned.
//
// The caller must have verified feasibility via CanMakeChange under the same
// serialization — in practice that means calling both inside one Transact.
// A failed re-decomposition or an unsatisfiable deduction here means the
// check-then-act invariant was violated, so CommitPurchase panics with
// *domain.InvariantViolationError instead of returning an error.
func (r *Register) CommitPurchase(changeAmount domain.Amount) domain.CoinPool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.commitPurchase(changeAmount)
}

// commitPurchase does the commit work. Caller holds the mutex.
func (r *Register) commitPurchase(changeAmount domain.Amount) domain.CoinPool {
	change, ok := r.makeChange(changeAmount, r.merged())
	if !ok {
		panic(domain.NewInvariantViolation("CommitPurchase",
			"change of %d not decomposable at commit time", changeAmount.MinorUnits()))
	}

	// The customer's payment becomes the machine's property.
	r.vault.Merge(r.hopper)
	r.hopper = domain.NewCoinPool()

	// The hopper was just folded into the vault, so the vault alone must
	// satisfy the whole deduction.
	for _, d := range domain.DenominationsDescending {
		need := change.Count(d)
		if need == 0 {
			continue
		}
		if err := r.vault.Deduct(d, need); err != nil {
			panic(domain.NewInvariantViolation("CommitPurchase",
				"change snapshot does not match pool contents: %v", err))
		}
	}

	return change
}

// Snapshot returns independent read-only copies of the vault and the hopper
// for external inspection.
func (r *Register) Snapshot() (vault, hopper domain.CoinPool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.vault.Clone(), r.hopper.Clone()
}

// merged builds a combined vault+hopper snapshot. Caller holds the mutex.
func (r *Register) merged() domain.CoinPool {
	combined := r.vault.Clone()
	combined.Merge(r.hopper)
	return combined
}
