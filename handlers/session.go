package handlers

import (
	"sweeps-wager-system/middleware"
	"sweeps-wager-system/models"
	"sweeps-wager-system/services"

	"github.com/gofiber/fiber/v2"
)

type startSessionRequest struct {
	Category string `json:"category" validate:"required,oneof=slots table live bingo sportsbook"`
	Currency string `json:"currency" validate:"required,oneof=GC SC"`
}

func SetupSessionRoutes(app *fiber.App, sessionService *services.SessionService) {
	secured := app.Group("/", middleware.UserContextMiddleware())

	secured.Post("/sessions", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		var req startSessionRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}
		if err := validate.Struct(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}

		session, err := sessionService.StartSession(userID, models.GameCategory(req.Category), models.Currency(req.Currency))
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(session)
	})

	secured.Get("/sessions/active", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		category := models.GameCategory(c.Query("category"))
		if !category.Valid() {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "unknown category"})
		}

		session, err := sessionService.GetActiveSession(userID, category)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(session)
	})

	secured.Post("/sessions/:id/end", func(c *fiber.Ctx) error {
		session, err := sessionService.EndSession(c.Params("id"), "user")
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(session)
	})

	secured.Post("/sessions/:id/pause", func(c *fiber.Ctx) error {
		session, err := sessionService.PauseSession(c.Params("id"))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(session)
	})
}
