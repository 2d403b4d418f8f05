package handlers

import (
	"bufio"
	"encoding/json"
	"fmt"
	"time"

	"sweeps-wager-system/middleware"
	"sweeps-wager-system/models"
	"sweeps-wager-system/services"

	"github.com/gofiber/fiber/v2"
)

// SetupEventRoutes bridges the in-process result notifications to SSE so the
// storefront can re-render as bets settle.
func SetupEventRoutes(app *fiber.App, notifyService *services.NotifyService) {
	secured := app.Group("/", middleware.UserContextMiddleware())

	secured.Get("/results/stream", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		category := models.GameCategory(c.Query("category"))
		if !category.Valid() {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "unknown category"})
		}

		// SSE headers
		c.Set("Content-Type", "text/event-stream")
		c.Set("Cache-Control", "no-cache")
		c.Set("Connection", "keep-alive")
		c.Set("X-Accel-Buffering", "no") // nginx

		// Buffered so a slow client never blocks settlement.
		results := make(chan *models.GameResult, 16)
		unsubscribe := notifyService.Subscribe(userID, category, func(r *models.GameResult) {
			select {
			case results <- r:
			default:
			}
		})

		c.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
			defer unsubscribe()

			keepalive := time.NewTicker(15 * time.Second)
			defer keepalive.Stop()

			// Initial keepalive (comment event)
			w.WriteString(":\n\n")
			w.Flush()

			for {
				select {
				case r := <-results:
					payload, err := json.Marshal(r)
					if err != nil {
						continue
					}
					fmt.Fprintf(w, "event: result\ndata: %s\n\n", payload)
					if err := w.Flush(); err != nil {
						// Client disconnected
						return
					}
				case <-keepalive.C:
					w.WriteString(":\n\n")
					if err := w.Flush(); err != nil {
						return
					}
				case <-c.Context().Done():
					return
				}
			}
		})

		return nil
	})
}
