package models

import (
	"time"

	"gorm.io/gorm"
)

// User roles. Buyers are created on first SIWE login; sellers are promoted
// through the seller application flow; admins are seeded.
const (
	RoleBuyer  = "buyer"
	RoleSeller = "seller"
	RoleAdmin  = "admin"
)

// User is an account authenticated by its Ethereum wallet. There is no
// password column: auth_method is always "siwe" and the address is the
// identity. EthereumAddress is stored lowercased.
type User struct {
	gorm.Model
	Username        string `gorm:"not null"`
	EthereumAddress string `gorm:"uniqueIndex;not null"`
	AuthMethod      string `gorm:"not null;default:'siwe'"`
	Role            string `gorm:"not null;default:'buyer'"`
	Status          string `gorm:"not null;default:'active'"`
	LastLoginAt     time.Time
}

func (User) TableName() string {
	return "users"
}

// Seller is the seller profile attached to a user who applied to sell.
// Applications start in status "pending" until an admin approves them.
type Seller struct {
	gorm.Model
	UserID    uint   `gorm:"uniqueIndex;not null"`
	StoreName string `gorm:"not null"`
	Status    string `gorm:"not null;default:'pending'"`
}

func (Seller) TableName() string {
	return "sellers"
}
