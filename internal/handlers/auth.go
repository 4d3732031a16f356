package handlers

import (
	"errors"

	"stablemart/internal/services/siwe"
	"stablemart/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService siwe.Service
}

func NewAuthHandler(authService siwe.Service) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login verifies a signed SIWE message and returns a session token.
// The wire shape matches the SPA contract: {token} on success,
// {MESSAGE: reason} on failure.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input struct {
		Message   string `json:"message"`
		Signature string `json:"signature"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.Respond(c, fiber.StatusBadRequest, fiber.Map{"MESSAGE": "Invalid request body"})
	}
	if input.Message == "" || input.Signature == "" {
		return utils.Respond(c, fiber.StatusBadRequest, fiber.Map{"MESSAGE": "Message and signature are required"})
	}

	token, err := h.authService.Login(input.Message, input.Signature)
	if err != nil {
		return loginError(c, err)
	}

	return utils.Success(c, fiber.Map{"token": token})
}

func loginError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, siwe.ErrRateLimited):
		return utils.Respond(c, fiber.StatusTooManyRequests, fiber.Map{"MESSAGE": "Too many requests"})
	case errors.Is(err, siwe.ErrDomainMismatch):
		return utils.Respond(c, fiber.StatusUnauthorized, fiber.Map{"MESSAGE": "Message not intended for this application"})
	case errors.Is(err, siwe.ErrInvalidNonce):
		return utils.Respond(c, fiber.StatusUnauthorized, fiber.Map{"MESSAGE": "Invalid nonce"})
	case errors.Is(err, siwe.ErrInvalidMessage):
		return utils.Respond(c, fiber.StatusBadRequest, fiber.Map{"MESSAGE": "Invalid SIWE message"})
	case errors.Is(err, siwe.ErrInvalidSignature):
		return utils.Respond(c, fiber.StatusUnauthorized, fiber.Map{"MESSAGE": "Invalid signature"})
	default:
		return utils.Respond(c, fiber.StatusInternalServerError, fiber.Map{"MESSAGE": "Authentication failed"})
	}
}

// Nonce issues a single-use login nonce for an address.
func (h *AuthHandler) Nonce(c *fiber.Ctx) error {
	address := c.Query("address")
	if address == "" {
		return utils.BadRequest(c, "address is required")
	}

	nonce, err := h.authService.IssueNonce(address)
	if err != nil {
		return utils.BadRequest(c, "invalid address")
	}
	return utils.Success(c, fiber.Map{"nonce": nonce})
}

// ResetRateLimit clears the SIWE attempt counters. Admin/ops hook.
func (h *AuthHandler) ResetRateLimit(c *fiber.Ctx) error {
	h.authService.ResetRateLimit()
	return utils.Success(c, fiber.Map{"status": "reset"})
}
