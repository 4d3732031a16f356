package repositories

import (
	"errors"

	"stablemart/internal/models"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrSellerExists      = errors.New("seller application already exists")
	ErrDatabaseOperation = errors.New("database operation failed")
)

// UserRepository defines user-related database operations. Lookups by
// address expect the address already normalized to lowercase.
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByEthereumAddress(address string) (*models.User, error)
	Update(user *models.User) error
	List(limit, offset int) ([]models.User, int64, error)

	CreateSeller(seller *models.Seller) error
	GetSellerByUserID(userID uint) (*models.Seller, error)
}
