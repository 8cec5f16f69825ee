package domain

// ChangeFunc decides whether and how a target amount can be decomposed into
// coins drawn from an available pool. On success it returns the exact
// breakdown; on failure it returns an empty pool — never a partial result.
// Implementations must not mutate available.
type ChangeFunc func(target Amount, available CoinPool) (CoinPool, bool)

// GreedyChange decomposes target by walking denominations in strictly
// descending order of face value, taking from each as many coins as are
// available and still needed. It succeeds iff the remainder reaches exactly
// zero after the smallest denomination.
//
// Greedy is deliberately not a full search: with constrained availability it
// can fail even though some other mix of the same pool would work. That
// incompleteness is accepted behavior, not a defect to fix.
func GreedyChange(target Amount, available CoinPool) (CoinPool, bool) {
	if target.IsNegative() {
		return NewCoinPool(), false
	}
	change := NewCoinPool()
	if target.IsZero() {
		return change, true
	}

	remaining := target
	for _, d := range DenominationsDescending {
		if remaining.IsZero() {
			break
		}
		have := available.Count(d)
		if have == 0 {
			continue
		}
		need := int(remaining.MinorUnits() / d.Value().MinorUnits())
		if need > have {
			need = have
		}
		if need == 0 {
			continue
		}
		change.Add(d, need)
		remaining = remaining.Sub(d.Value() * Amount(need))
	}

	if !remaining.IsZero() {
		return NewCoinPool(), false
	}
	return change, true
}
