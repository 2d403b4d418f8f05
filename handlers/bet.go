package handlers

import (
	"sweeps-wager-system/middleware"
	"sweeps-wager-system/models"
	"sweeps-wager-system/services"

	"github.com/gofiber/fiber/v2"
)

type placeBetRequest struct {
	GameID   string  `json:"game_id" validate:"required"`
	Amount   float64 `json:"amount" validate:"required,gt=0"`
	Currency string  `json:"currency" validate:"omitempty,oneof=GC SC"`
}

type settleSportsbookRequest struct {
	Result     string  `json:"result" validate:"required,oneof=win lose push"`
	Multiplier float64 `json:"multiplier" validate:"omitempty,gt=0"`
}

func SetupBetRoutes(app *fiber.App, betService *services.BetService) {
	secured := app.Group("/", middleware.UserContextMiddleware())

	// Play runs the full flow: place, generate, settle. Sportsbook bets come
	// back pending with no result.
	secured.Post("/bets/play", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		var req placeBetRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}
		if err := validate.Struct(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}

		bet, result, err := betService.Play(c.Context(), services.PlaceBetInput{
			UserID:   userID,
			GameID:   req.GameID,
			Amount:   req.Amount,
			Currency: models.Currency(req.Currency),
		})
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{"bet": bet, "result": result})
	})

	secured.Get("/bets/:id", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		var bet models.GameBet
		err := betService.DB.Preload("Result").
			First(&bet, "id = ? AND user_id = ?", c.Params("id"), userID).Error
		if err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "bet not found"})
		}
		return c.JSON(bet)
	})

	secured.Get("/wallet/:currency", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		currency := models.Currency(c.Params("currency"))
		if !currency.Valid() {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "unknown currency"})
		}

		if err := betService.RefreshMirror(c.Context(), userID, currency); err != nil {
			return respondError(c, err)
		}
		var mirror models.WalletMirror
		if err := betService.DB.First(&mirror, "user_id = ? AND currency = ?", userID, currency).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to read wallet mirror"})
		}
		return c.JSON(mirror)
	})

	// Sportsbook event settlement is an operator action.
	secured.Post("/admin/sportsbook/:id/settle", func(c *fiber.Ctx) error {
		if !middleware.HasRole(c, "admin") {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "admin role required"})
		}

		var req settleSportsbookRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}
		if err := validate.Struct(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		if req.Multiplier == 0 {
			req.Multiplier = 2
		}

		result, err := betService.SettleSportsbook(c.Context(), c.Params("id"), models.Outcome(req.Result), req.Multiplier)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(result)
	})
}
