package handlers

import (
	"errors"

	"stablemart/internal/middleware"
	"stablemart/internal/models"
	"stablemart/internal/repositories"
	"stablemart/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	userRepo repositories.UserRepository
}

func NewUserHandler(userRepo repositories.UserRepository) *UserHandler {
	return &UserHandler{userRepo: userRepo}
}

// Me returns the authenticated user's profile.
func (h *UserHandler) Me(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return utils.Unauthorized(c, "unauthorized")
	}

	return utils.Success(c, fiber.Map{
		"id":               user.ID,
		"username":         user.Username,
		"ethereum_address": user.EthereumAddress,
		"auth_method":      user.AuthMethod,
		"role":             user.Role,
		"status":           user.Status,
	})
}

// ApplySeller records a pending seller application for the authenticated
// buyer.
func (h *UserHandler) ApplySeller(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return utils.Unauthorized(c, "unauthorized")
	}

	var input struct {
		StoreName string `json:"store_name"`
	}
	if err := c.BodyParser(&input); err != nil || input.StoreName == "" {
		return utils.BadRequest(c, "store_name is required")
	}

	seller := &models.Seller{
		UserID:    user.ID,
		StoreName: input.StoreName,
	}
	if err := h.userRepo.CreateSeller(seller); err != nil {
		if errors.Is(err, repositories.ErrSellerExists) {
			return utils.Conflict(c, "Seller application already exists")
		}
		return utils.InternalError(c, "Failed to create seller application")
	}

	return utils.Success(c, fiber.Map{
		"id":         seller.ID,
		"store_name": seller.StoreName,
		"status":     seller.Status,
	})
}

// ListUsers returns a page of users. Admin only.
func (h *UserHandler) ListUsers(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	offset := c.QueryInt("offset", 0)
	if limit < 1 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	users, total, err := h.userRepo.List(limit, offset)
	if err != nil {
		return utils.InternalError(c, "Failed to list users")
	}

	return utils.Success(c, fiber.Map{
		"users": users,
		"total": total,
	})
}
