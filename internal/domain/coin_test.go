package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoinPool_AddAndTotal(t *testing.T) {
	pool := NewCoinPool()
	assert.True(t, pool.IsEmpty())
	assert.Equal(t, Amount(0), pool.Total())

	pool.Add(DenominationTen, 2)
	pool.Add(DenominationOne, 3)
	pool.AddCoin(NewCoin(DenominationFive))

	assert.Equal(t, 2, pool.Count(DenominationTen))
	assert.Equal(t, 3, pool.Count(DenominationOne))
	assert.Equal(t, 1, pool.Count(DenominationFive))
	assert.Equal(t, Amount(2800), pool.Total())
}

func TestCoinPool_AddNonPositiveIsNoop(t *testing.T) {
	pool := NewCoinPool()
	pool.Add(DenominationTwo, 0)
	pool.Add(DenominationTwo, -5)
	assert.True(t, pool.IsEmpty())
}

func TestCoinPool_Merge(t *testing.T) {
	pool := NewCoinPool()
	pool.Add(DenominationTwo, 1)

	other := NewCoinPool()
	other.Add(DenominationTwo, 2)
	other.Add(DenominationOne, 4)

	pool.Merge(other)

	assert.Equal(t, 3, pool.Count(DenominationTwo))
	assert.Equal(t, 4, pool.Count(DenominationOne))
	// Merge must not touch the source pool.
	assert.Equal(t, 2, other.Count(DenominationTwo))
}

func TestCoinPool_Deduct(t *testing.T) {
	tests := []struct {
		name      string
		have      int
		deduct    int
		wantErr   bool
		wantCount int
	}{
		{
			name:      "Full deduction removes the entry",
			have:      3,
			deduct:    3,
			wantErr:   false,
			wantCount: 0,
		},
		{
			name:      "Partial deduction keeps the remainder",
			have:      3,
			deduct:    2,
			wantErr:   false,
			wantCount: 1,
		},
		{
			name:      "Shortfall fails and leaves the pool unchanged",
			have:      1,
			deduct:    2,
			wantErr:   true,
			wantCount: 1,
		},
		{
			name:      "Non-positive deduction is a no-op",
			have:      3,
			deduct:    0,
			wantErr:   false,
			wantCount: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pool := NewCoinPool()
			pool.Add(DenominationFive, tt.have)

			err := pool.Deduct(DenominationFive, tt.deduct)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.wantCount, pool.Count(DenominationFive))
		})
	}
}

func TestCoinPool_CloneIsIndependent(t *testing.T) {
	pool := NewCoinPool()
	pool.Add(DenominationTen, 1)

	clone := pool.Clone()
	clone.Add(DenominationTen, 5)

	assert.Equal(t, 1, pool.Count(DenominationTen))
	assert.Equal(t, 6, clone.Count(DenominationTen))
}

func TestDenomination_IsValid(t *testing.T) {
	for _, d := range DenominationsDescending {
		assert.True(t, d.IsValid())
	}
	assert.False(t, Denomination(300).IsValid())
	assert.False(t, Denomination(0).IsValid())
}

func TestDenominationsDescending_Order(t *testing.T) {
	for i := 1; i < len(DenominationsDescending); i++ {
		assert.Greater(t, DenominationsDescending[i-1], DenominationsDescending[i])
	}
}
