package handlers

import (
	"context"
	"time"

	"sweeps-wager-system/engine"
	"sweeps-wager-system/middleware"
	"sweeps-wager-system/models"
	"sweeps-wager-system/services"

	"github.com/gofiber/fiber/v2"
)

type createRoomRequest struct {
	Name         string  `json:"name" validate:"required"`
	GameID       string  `json:"game_id" validate:"required"`
	CardType     string  `json:"card_type" validate:"required,oneof=75-ball 90-ball"`
	Pattern      string  `json:"pattern"`
	CardPrice    float64 `json:"card_price" validate:"required,gt=0"`
	LinePrize    float64 `json:"line_prize" validate:"required,gt=0"`
	CallInterval int     `json:"call_interval_seconds" validate:"omitempty,gt=0"`
	AutoMark     bool    `json:"auto_mark"`
}

type joinRoomRequest struct {
	Currency string `json:"currency" validate:"omitempty,oneof=GC SC"`
}

type markRequest struct {
	Number int `json:"number" validate:"required,gt=0"`
}

func SetupBingoRoutes(app *fiber.App, bingoService *services.BingoService) {
	secured := app.Group("/", middleware.UserContextMiddleware())

	secured.Get("/bingo/rooms", func(c *fiber.Ctx) error {
		return c.JSON(bingoService.RoomViews())
	})

	secured.Get("/bingo/rooms/:id", func(c *fiber.Ctx) error {
		room, err := bingoService.Room(c.Params("id"))
		if err != nil {
			return respondError(c, err)
		}
		// The runner goroutine mutates the room; marshal a snapshot.
		return c.JSON(room.Snapshot())
	})

	secured.Post("/bingo/rooms/:id/join", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		var req joinRoomRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}
		if err := validate.Struct(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}

		card, bet, err := bingoService.JoinRoom(c.Context(), c.Params("id"), userID, models.Currency(req.Currency))
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"card": card, "bet": bet})
	})

	secured.Post("/bingo/rooms/:id/mark", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		var req markRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}
		if err := validate.Struct(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}

		if err := bingoService.MarkNumber(c.Params("id"), userID, req.Number); err != nil {
			return respondError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	secured.Post("/admin/bingo/rooms", func(c *fiber.Ctx) error {
		if !middleware.HasRole(c, "admin") {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "admin role required"})
		}

		var req createRoomRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}
		if err := validate.Struct(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}

		room, err := bingoService.CreateRoom(
			req.Name, req.GameID, engine.BingoType(req.CardType), req.Pattern,
			req.CardPrice, req.LinePrize,
			time.Duration(req.CallInterval)*time.Second, req.AutoMark,
		)
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(room.Snapshot())
	})

	secured.Post("/admin/bingo/rooms/:id/start", func(c *fiber.Ctx) error {
		if !middleware.HasRole(c, "admin") {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "admin role required"})
		}
		// The room runner outlives this request.
		if err := bingoService.Start(context.Background(), c.Params("id")); err != nil {
			return respondError(c, err)
		}
		return c.SendStatus(fiber.StatusAccepted)
	})
}
