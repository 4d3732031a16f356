package repositories

import (
	"context"
	"errors"
	"log"

	"stablemart/internal/models"
	"stablemart/internal/repositories/cache"

	"gorm.io/gorm"
)

type userRepository struct {
	db    *gorm.DB
	cache *cache.CacheService
}

// NewUserRepository creates a new instance of UserRepository.
func NewUserRepository(db *gorm.DB, cache *cache.CacheService) UserRepository {
	return &userRepository{
		db:    db,
		cache: cache,
	}
}

func (r *userRepository) Create(user *models.User) error {
	if err := r.db.Create(user).Error; err != nil {
		return ErrDatabaseOperation
	}
	return nil
}

func (r *userRepository) GetByID(id uint) (*models.User, error) {
	key := r.cache.GenerateKey("user", "id", id)
	if user, err := r.cache.GetUser(context.Background(), key); err == nil {
		return user, nil
	}

	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if err := r.cache.CacheUser(context.Background(), &user); err != nil {
		log.Printf("failed to cache user %d: %v", user.ID, err)
	}
	return &user, nil
}

func (r *userRepository) GetByEthereumAddress(address string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("ethereum_address = ?", address).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, ErrDatabaseOperation
	}
	return &user, nil
}

func (r *userRepository) Update(user *models.User) error {
	if err := r.db.Save(user).Error; err != nil {
		return ErrDatabaseOperation
	}
	if err := r.cache.InvalidateUser(context.Background(), user.ID); err != nil {
		log.Printf("failed to invalidate user cache %d: %v", user.ID, err)
	}
	return nil
}

func (r *userRepository) List(limit, offset int) ([]models.User, int64, error) {
	var users []models.User
	var total int64

	if err := r.db.Model(&models.User{}).Count(&total).Error; err != nil {
		return nil, 0, ErrDatabaseOperation
	}
	if err := r.db.Order("id").Limit(limit).Offset(offset).Find(&users).Error; err != nil {
		return nil, 0, ErrDatabaseOperation
	}
	return users, total, nil
}

func (r *userRepository) CreateSeller(seller *models.Seller) error {
	var existing models.Seller
	err := r.db.Where("user_id = ?", seller.UserID).First(&existing).Error
	if err == nil {
		return ErrSellerExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrDatabaseOperation
	}
	if err := r.db.Create(seller).Error; err != nil {
		return ErrDatabaseOperation
	}
	return nil
}

func (r *userRepository) GetSellerByUserID(userID uint) (*models.Seller, error) {
	var seller models.Seller
	if err := r.db.Where("user_id = ?", userID).First(&seller).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, ErrDatabaseOperation
	}
	return &seller, nil
}
