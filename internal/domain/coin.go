package domain

import "fmt"

// Denomination is one of the fixed coin face values, expressed in minor units.
// The set is closed; it is not extensible at runtime.
type Denomination int64

const (
	DenominationOne  Denomination = 100
	DenominationTwo  Denomination = 200
	DenominationFive Denomination = 500
	DenominationTen  Denomination = 1000
)

// DenominationsDescending lists every denomination in strictly descending
// order of face value. The change strategy depends on this traversal order
// being fixed, so the slice must never be reordered.
var DenominationsDescending = []Denomination{
	DenominationTen,
	DenominationFive,
	DenominationTwo,
	DenominationOne,
}

// Value returns the denomination's worth as an Amount.
func (d Denomination) Value() Amount {
	return Amount(d)
}

// IsValid reports whether d belongs to the closed denomination set.
func (d Denomination) IsValid() bool {
	switch d {
	case DenominationOne, DenominationTwo, DenominationFive, DenominationTen:
		return true
	}
	return false
}

// Coin is a single physical coin. Its value is its denomination's value.
type Coin struct {
	Denomination Denomination
}

// NewCoin creates a coin of the given denomination.
func NewCoin(d Denomination) Coin {
	return Coin{Denomination: d}
}

// Value returns the coin's worth.
func (c Coin) Value() Amount {
	return c.Denomination.Value()
}

// CoinPool is a stash of coins: a mapping from denomination to a
// non-negative count. A zero-count entry may be omitted. All mutation goes
// through methods so the non-negative invariant is enforced in one place.
type CoinPool map[Denomination]int

// NewCoinPool returns an empty pool.
func NewCoinPool() CoinPool {
	return make(CoinPool)
}

// Add puts count coins of denomination d into the pool.
// Adding a non-positive count is a no-op.
func (p CoinPool) Add(d Denomination, count int) {
	if count <= 0 {
		return
	}
	p[d] += count
}

// AddCoin puts a single coin into the pool.
func (p CoinPool) AddCoin(c Coin) {
	p.Add(c.Denomination, 1)
}

// Merge adds every entry of other into the pool. other is not modified.
func (p CoinPool) Merge(other CoinPool) {
	for d, count := range other {
		p.Add(d, count)
	}
}

// Deduct removes count coins of denomination d from the pool.
// It returns an error naming the shortfall when fewer than count coins are
// present; the pool is left unchanged in that case.
func (p CoinPool) Deduct(d Denomination, count int) error {
	if count <= 0 {
		return nil
	}
	have := p[d]
	if have < count {
		return fmt.Errorf("coin pool shortfall: need %d of denomination %d, have %d", count, d, have)
	}
	if have == count {
		delete(p, d)
	} else {
		p[d] = have - count
	}
	return nil
}

// Count returns the number of coins of denomination d in the pool.
func (p CoinPool) Count(d Denomination) int {
	return p[d]
}

// Total returns the summed value of every coin in the pool.
func (p CoinPool) Total() Amount {
	var sum Amount
	for d, count := range p {
		sum += d.Value() * Amount(count)
	}
	return sum
}

// Clone returns an independent copy of the pool.
func (p CoinPool) Clone() CoinPool {
	out := make(CoinPool, len(p))
	for d, count := range p {
		if count > 0 {
			out[d] = count
		}
	}
	return out
}

// IsEmpty reports whether the pool holds no coins.
func (p CoinPool) IsEmpty() bool {
	for _, count := range p {
		if count > 0 {
			return false
		}
	}
	return true
}
