package handlers

import (
	"sweeps-wager-system/middleware"
	"sweeps-wager-system/models"
	"sweeps-wager-system/services"

	"github.com/gofiber/fiber/v2"
)

type createGameRequest struct {
	Name         string `json:"name" validate:"required"`
	Category     string `json:"category" validate:"required,oneof=slots table live bingo sportsbook"`
	Provider     string `json:"provider"`
	Variant      string `json:"variant" validate:"omitempty,oneof=blackjack roulette baccarat poker"`
	ThumbnailURL string `json:"thumbnail_url"`
	Featured     bool   `json:"featured"`
}

func SetupCatalogRoutes(app *fiber.App, catalogService *services.CatalogService) {
	// Public catalog browsing — still behind the global Gateway auth.
	app.Get("/games", catalogService.GetAllGames)
	app.Get("/games/minimal", catalogService.GetMinimalGames)
	app.Get("/games/:id", catalogService.GetGameByID)

	secured := app.Group("/", middleware.UserContextMiddleware())

	secured.Post("/admin/games", func(c *fiber.Ctx) error {
		if !middleware.HasRole(c, "admin") {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "admin role required"})
		}

		var req createGameRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}
		if err := validate.Struct(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}

		game := &models.Game{
			Name:         req.Name,
			Category:     models.GameCategory(req.Category),
			Provider:     req.Provider,
			Variant:      req.Variant,
			ThumbnailURL: req.ThumbnailURL,
			Featured:     req.Featured,
		}
		if err := catalogService.CreateGame(game); err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(game)
	})

	secured.Post("/admin/games/:id/publish", func(c *fiber.Ctx) error {
		if !middleware.HasRole(c, "admin") {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "admin role required"})
		}
		game, err := catalogService.PublishGame(c.Params("id"))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(game)
	})
}
