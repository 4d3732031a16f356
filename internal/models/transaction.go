package models

import (
	"time"
)

// Stabletoken transaction types.
const (
	TransactionTypeMint    = "mint"
	TransactionTypePayment = "payment"
)

// Transaction statuses.
const (
	TransactionStatusCompleted = "completed"
)

// StabletokenTransaction is an append-only record of a balance mutation.
// Reference carries the external payment id for webhook credits; it is
// nullable and unique, which makes it the dedup key for idempotent webhook
// processing (mints have no reference).
type StabletokenTransaction struct {
	ID        uint    `gorm:"primarykey"`
	UserID    uint    `gorm:"index;not null"`
	Amount    float64 `gorm:"not null"`
	Type      string  `gorm:"not null"`
	Reference *string `gorm:"uniqueIndex"`
	Status    string  `gorm:"not null;default:'completed'"`
	CreatedAt time.Time
}

func (StabletokenTransaction) TableName() string {
	return "stabletoken_transactions"
}
