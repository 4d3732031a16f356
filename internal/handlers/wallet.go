package handlers

import (
	"errors"

	"stablemart/internal/middleware"
	"stablemart/internal/services/ledger"
	"stablemart/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type WalletHandler struct {
	ledgerService ledger.Service
}

func NewWalletHandler(ledgerService ledger.Service) *WalletHandler {
	return &WalletHandler{ledgerService: ledgerService}
}

// Mint credits stabletokens to the authenticated user and returns the new
// balance.
func (h *WalletHandler) Mint(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return utils.Unauthorized(c, "unauthorized")
	}

	var input struct {
		Amount float64 `json:"amount"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}

	balance, err := h.ledgerService.Mint(c.Context(), user.ID, input.Amount)
	if err != nil {
		if errors.Is(err, ledger.ErrInvalidAmount) {
			return utils.BadRequest(c, "Amount must be a positive number")
		}
		if errors.Is(err, ledger.ErrUserNotFound) {
			return utils.NotFound(c, "User not found")
		}
		return utils.InternalError(c, "Mint failed")
	}

	return utils.Success(c, fiber.Map{"balance": balance})
}

// Balance returns the authenticated user's stabletoken balance.
func (h *WalletHandler) Balance(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return utils.Unauthorized(c, "unauthorized")
	}

	balance, err := h.ledgerService.GetBalance(c.Context(), user.ID)
	if err != nil {
		return utils.InternalError(c, "Failed to get balance")
	}
	return utils.Success(c, fiber.Map{"balance": balance})
}

// Transactions returns the authenticated user's transactions, newest first.
func (h *WalletHandler) Transactions(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return utils.Unauthorized(c, "unauthorized")
	}

	txns, err := h.ledgerService.GetTransactionsForUser(c.Context(), user.ID)
	if err != nil {
		return utils.InternalError(c, "Failed to get transactions")
	}
	return utils.Success(c, fiber.Map{"transactions": txns})
}
