package models

import (
	"time"

	"gorm.io/gorm"
)

// Wallet holds a user's stabletoken balance. The balance is owned by the
// ledger service and only changes together with an appended
// StabletokenTransaction row.
type Wallet struct {
	ID        uint    `gorm:"primarykey"`
	UserID    uint    `gorm:"uniqueIndex;not null"`
	Balance   float64 `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (w *Wallet) BeforeCreate(tx *gorm.DB) error {
	// Balance always starts at 0; credits go through the ledger.
	w.Balance = 0
	return nil
}

func (Wallet) TableName() string {
	return "wallets"
}
