package services

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"sweeps-wager-system/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

// CatalogService owns the storefront game catalog. The wagering engine
// resolves a bet's category and table variant through it.
type CatalogService struct {
	DB *gorm.DB
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{DB: db}
}

// Lookup resolves a game by id or slug. Unknown games fail with ErrUnknownGame.
func (s *CatalogService) Lookup(idOrSlug string) (*models.Game, error) {
	var game models.Game
	err := s.DB.Where("id = ? OR slug = ?", idOrSlug, idOrSlug).First(&game).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUnknownGame
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up game: %w", err)
	}
	return &game, nil
}

// CreateGame registers a catalog entry as a draft, deriving the slug from the
// name when none is supplied.
func (s *CatalogService) CreateGame(game *models.Game) error {
	if game.ID == "" {
		game.ID = uuid.NewString()
	}
	if game.Slug == "" {
		game.Slug = slug.Make(game.Name)
	}
	if game.Status == "" {
		game.Status = models.GameStatusDraft
	}
	if !game.Category.Valid() {
		return fmt.Errorf("invalid game category %q", game.Category)
	}
	if err := s.DB.Create(game).Error; err != nil {
		return fmt.Errorf("failed to create game: %w", err)
	}
	return nil
}

// PublishGame flips a draft live.
func (s *CatalogService) PublishGame(idOrSlug string) (*models.Game, error) {
	game, err := s.Lookup(idOrSlug)
	if err != nil {
		return nil, err
	}
	game.Status = models.GameStatusPublished
	if err := s.DB.Save(game).Error; err != nil {
		return nil, fmt.Errorf("failed to publish game: %w", err)
	}
	return game, nil
}

// GetAllGames lists published games, optionally filtered by category.
func (s *CatalogService) GetAllGames(c *fiber.Ctx) error {
	q := s.DB.Where("status = ?", models.GameStatusPublished)
	if category := c.Query("category"); category != "" {
		if !models.GameCategory(category).Valid() {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "unknown category"})
		}
		q = q.Where("category = ?", category)
	}
	if c.QueryBool("featured") {
		q = q.Where("featured = ?", true)
	}

	var games []models.Game
	if err := q.Order("name ASC").Find(&games).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to list games"})
	}
	return c.JSON(games)
}

// GetMinimalGames returns the lightweight listing shape for lobby grids.
func (s *CatalogService) GetMinimalGames(c *fiber.Ctx) error {
	var games []models.Game
	if err := s.DB.Where("status = ?", models.GameStatusPublished).Order("featured DESC, name ASC").Find(&games).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to list games"})
	}

	minimal := make([]models.MinimalGame, len(games))
	for i, g := range games {
		minimal[i] = models.MinimalGame{
			ID:           g.ID,
			Slug:         g.Slug,
			Name:         g.Name,
			Category:     g.Category,
			ThumbnailURL: g.ThumbnailURL,
			Featured:     g.Featured,
		}
	}
	return c.JSON(minimal)
}

// GetGameByID serves one catalog entry by id or slug.
func (s *CatalogService) GetGameByID(c *fiber.Ctx) error {
	game, err := s.Lookup(c.Params("id"))
	if errors.Is(err, ErrUnknownGame) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "game not found"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to fetch game"})
	}
	return c.JSON(game)
}

// seedGames is the starter catalog installed on an empty table.
var seedGames = []models.Game{
	{Name: "Jewel Rush", Category: models.CategorySlots, Provider: "house", Featured: true},
	{Name: "Fruit Frenzy", Category: models.CategorySlots, Provider: "house"},
	{Name: "Classic Blackjack", Category: models.CategoryTable, Provider: "house", Variant: models.VariantBlackjack, Featured: true},
	{Name: "European Roulette", Category: models.CategoryTable, Provider: "house", Variant: models.VariantRoulette},
	{Name: "Baccarat Salon", Category: models.CategoryLive, Provider: "house", Variant: models.VariantBaccarat},
	{Name: "Hold'em Poker", Category: models.CategoryTable, Provider: "house", Variant: models.VariantPoker},
	{Name: "Lucky Hall 75", Category: models.CategoryBingo, Provider: "house"},
	{Name: "Lucky Hall 90", Category: models.CategoryBingo, Provider: "house"},
	{Name: "Sports Picks", Category: models.CategorySportsbook, Provider: "house"},
}

// SeedCatalog installs the starter catalog when the table is empty.
func (s *CatalogService) SeedCatalog() error {
	var count int64
	if err := s.DB.Model(&models.Game{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count games: %w", err)
	}
	if count > 0 {
		return nil
	}

	for _, g := range seedGames {
		game := g
		game.Status = models.GameStatusPublished
		if err := s.CreateGame(&game); err != nil {
			return err
		}
	}
	log.Printf("[Catalog] Seeded %d games", len(seedGames))
	return nil
}

// VariantFor derives a table variant from the game row, falling back to a
// slug prefix match for imported catalogs that predate the Variant column.
func VariantFor(game *models.Game) string {
	if game.Variant != "" {
		return game.Variant
	}
	for _, v := range []string{models.VariantBlackjack, models.VariantRoulette, models.VariantBaccarat, models.VariantPoker} {
		if strings.Contains(game.Slug, v) {
			return v
		}
	}
	return models.VariantBlackjack
}
