package server

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/loveawm50-hub/otp-bots.com/internal/domain"
	"github.com/shopspring/decimal"
)

type registerRequest struct {
	ChatID      string `json:"chatId" validate:"required"`
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
}

func (s *Server) handleRegister(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := s.validate.Struct(req); err != nil {
		return badRequest(c, "chatId is required")
	}

	if err := s.orders.Register(c.Context(), req.ChatID, req.Username, req.DisplayName); err != nil {
		return internalError(c, err)
	}

	return c.JSON(fiber.Map{"status": "registered"})
}

type createPaymentRequest struct {
	ChatID    string          `json:"chatId" validate:"required"`
	PackageID string          `json:"packageId" validate:"required"`
	Amount    decimal.Decimal `json:"amount"`
	Currency  string          `json:"currency" validate:"required"`
}

func (s *Server) handleCreatePayment(c *fiber.Ctx) error {
	var req createPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := s.validate.Struct(req); err != nil {
		return badRequest(c, "chatId, packageId, amount and currency are required")
	}
	if !req.Amount.IsPositive() {
		return badRequest(c, "amount must be positive")
	}

	inv, err := s.orders.CreateInvoice(c.Context(), req.ChatID, req.PackageID, req.Amount, req.Currency)
	if err != nil {
		if errors.Is(err, domain.ErrNotRegistered) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_registered"})
		}
		return internalError(c, err)
	}

	return c.JSON(fiber.Map{
		"paymentUrl": inv.PaymentURL,
		"invoiceId":  inv.TrackID,
	})
}

func (s *Server) handleWebhook(c *fiber.Ctx) error {
	rawBody := append([]byte(nil), c.BodyRaw()...)
	signature := c.Get("HMAC")

	result, err := s.orders.HandleWebhook(c.Context(), rawBody, signature)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidSignature):
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid_signature"})
		case errors.Is(err, domain.ErrOrderNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "order_not_found"})
		default:
			return internalError(c, err)
		}
	}

	if result.Ignored {
		return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"status": "ignored"})
	}
	return c.JSON(fiber.Map{"status": "ok"})
}

type verifyKeyRequest struct {
	ChatID        string `json:"chatId" validate:"required"`
	ActivationKey string `json:"activationKey" validate:"required"`
}

func (s *Server) handleVerifyKey(c *fiber.Ctx) error {
	var req verifyKeyRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := s.validate.Struct(req); err != nil {
		return badRequest(c, "chatId and activationKey are required")
	}

	packageID, err := s.verify.Verify(c.Context(), req.ChatID, req.ActivationKey)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrKeyNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "key_not_found"})
		case errors.Is(err, domain.ErrOwnerMismatch):
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "owner_mismatch"})
		default:
			return internalError(c, err)
		}
	}

	return c.JSON(fiber.Map{
		"status":    "valid",
		"packageId": packageID,
	})
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
}

func internalError(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
}
