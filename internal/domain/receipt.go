package domain

import (
	"time"

	"github.com/google/uuid"
)

// Receipt is the immutable record of one successful purchase: what was
// bought, what was paid, and the exact coins handed back as change.
// Created once per purchase and never mutated afterwards.
type Receipt struct {
	ID           uuid.UUID
	ProductID    uuid.UUID
	ProductName  string
	Price        Amount
	Paid         Amount
	ChangeAmount Amount
	ChangeCoins  CoinPool
	CreatedAt    time.Time
}
