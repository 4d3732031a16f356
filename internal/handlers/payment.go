package handlers

import (
	"crypto/subtle"
	"errors"

	"stablemart/internal/middleware"
	"stablemart/internal/services/ledger"
	"stablemart/internal/services/payment"
	"stablemart/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type PaymentHandler struct {
	paymentService payment.Service
	webhookSecret  string
}

// NewPaymentHandler creates the payment handler. webhookSecret is optional;
// when set, webhook calls must carry it in X-Webhook-Secret.
func NewPaymentHandler(paymentService payment.Service, webhookSecret string) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
		webhookSecret:  webhookSecret,
	}
}

// Initiate starts a fiat payment with the provider and returns the hosted
// checkout for the client to redirect to.
func (h *PaymentHandler) Initiate(c *fiber.Ctx) error {
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

	checkout, err := h.paymentService.Initiate(c.Context(), user.ID, input.Amount)
	if err != nil {
		if errors.Is(err, payment.ErrInvalidAmount) {
			return utils.BadRequest(c, "Amount must be greater than zero")
		}
		return utils.InternalError(c, "Failed to initiate payment")
	}

	return utils.Success(c, checkout)
}

// Webhook consumes the payment provider callback.
func (h *PaymentHandler) Webhook(c *fiber.Ctx) error {
	if h.webhookSecret != "" {
		got := c.Get("X-Webhook-Secret")
		if subtle.ConstantTimeCompare([]byte(got), []byte(h.webhookSecret)) != 1 {
			return utils.Unauthorized(c, "invalid webhook secret")
		}
	}

	var event payment.Event
	if err := c.BodyParser(&event); err != nil {
		return utils.BadRequest(c, "Invalid webhook payload")
	}

	if err := h.paymentService.HandleWebhook(c.Context(), event); err != nil {
		if errors.Is(err, ledger.ErrUserNotFound) {
			return utils.NotFound(c, "User not found")
		}
		if errors.Is(err, payment.ErrInvalidEvent) {
			return utils.BadRequest(c, "Invalid webhook payload")
		}
		return utils.InternalError(c, "Failed to process webhook")
	}

	return utils.Success(c, fiber.Map{"status": "ok"})
}
