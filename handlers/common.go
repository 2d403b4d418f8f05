package handlers

import (
	"errors"

	"sweeps-wager-system/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// respondError maps the engine's error taxonomy onto HTTP statuses. The
// violated bound rides along for range errors so the UI can display it.
func respondError(c *fiber.Ctx, err error) error {
	var bound *services.BoundError
	if errors.As(err, &bound) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":    "bet amount outside limits",
			"violated": bound.Violated,
			"bound":    bound.Bound,
			"amount":   bound.Amount,
		})
	}

	switch {
	case errors.Is(err, services.ErrUnsupportedCurrency):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrInsufficientFunds):
		return c.Status(fiber.StatusPaymentRequired).JSON(fiber.Map{"error": "insufficient funds"})
	case errors.Is(err, services.ErrWalletTimeout):
		return c.Status(fiber.StatusGatewayTimeout).JSON(fiber.Map{"error": "wallet call timed out"})
	case errors.Is(err, services.ErrNoActiveSession):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "start a session before betting"})
	case errors.Is(err, services.ErrSessionNotFound), errors.Is(err, services.ErrUnknownGame), errors.Is(err, services.ErrRoomNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrSessionEnded):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "session already ended"})
	case errors.Is(err, services.ErrSettlementFailure):
		// The win is queued for retry; the caller must know it is not lost.
		return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
			"error":  "settlement deferred, winnings queued for retry",
			"queued": true,
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
}
