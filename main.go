package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"sweeps-wager-system/engine"
	"sweeps-wager-system/handlers"
	"sweeps-wager-system/middleware"
	"sweeps-wager-system/models"
	"sweeps-wager-system/services"
	"sweeps-wager-system/utils"
	"sweeps-wager-system/workers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, reading environment variables directly")
	}

	app := fiber.New(fiber.Config{
		AppName: "sweeps-wager-system",
	})

	// 🔐 GLOBAL: Only Gateway requests allowed — no exceptions
	app.Use(middleware.GatewayAuthMiddleware())

	allowedOriginsEnv := os.Getenv("ALLOWED_ORIGINS")
	if allowedOriginsEnv == "" {
		log.Println("⚠️  ALLOWED_ORIGINS environment variable not set, using default: http://localhost:3000")
		allowedOriginsEnv = "http://localhost:3000"
	}
	allowedOriginsList := strings.Split(allowedOriginsEnv, ",")
	for i, origin := range allowedOriginsList {
		allowedOriginsList[i] = strings.TrimSpace(origin)
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(allowedOriginsList, ","),
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH,HEAD",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With, X-Request-ID, X-User-ID, X-User-Roles, X-Service-Token",
		ExposeHeaders:    "Content-Length, Content-Type, Authorization, X-Request-ID",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}))

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect to database:", err)
	}

	if err := db.AutoMigrate(
		&models.Game{},
		&models.GameSession{},
		&models.GameBet{},
		&models.GameResult{},
		&models.SettlementRetry{},
		&models.WalletMirror{},
		&models.CurrencyPreference{},
	); err != nil {
		log.Fatal("failed to migrate database:", err)
	}

	rng := engine.NewTimeRand()
	wallet := services.NewWalletClient()
	policy := services.NewCurrencyPolicy()
	notifyService := services.NewNotifyService()
	sessionService := services.NewSessionService(db)
	catalogService := services.NewCatalogService(db)
	betService := services.NewBetService(db, wallet, sessionService, policy, catalogService, notifyService, rng)
	bingoService := services.NewBingoService(betService, rng)

	if err := catalogService.SeedCatalog(); err != nil {
		log.Fatal("failed to seed catalog:", err)
	}

	// Reload the persisted session snapshot; corrupt rows are skipped, never fatal.
	sessions, err := sessionService.LoadSessions()
	if err != nil {
		log.Fatal("failed to load session snapshot:", err)
	}
	log.Printf("Loaded %d persisted sessions", len(sessions))

	sessionTTL := 30 * time.Minute
	if raw := os.Getenv("SESSION_IDLE_TTL"); raw != "" {
		if ttl, err := time.ParseDuration(raw); err == nil {
			sessionTTL = ttl
		} else {
			log.Printf("⚠️  Invalid SESSION_IDLE_TTL %q, using %s", raw, sessionTTL)
		}
	}
	services.StartEngineScheduler(sessionService, betService, sessionTTL)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Session archive export (optional: needs R2 credentials) ---
	if utils.R2Configured() {
		if err := utils.InitR2(); err != nil {
			log.Fatal("failed to initialize R2 client:", err)
		}
		archiver := workers.NewSessionArchiver(db)
		go workers.PollSessions(ctx, archiver, 5*time.Minute)
		log.Println("✅ Session archive worker running (every 5m)")
	} else {
		log.Println("⚠️  R2 not configured — session archive export disabled")
	}

	handlers.SetupCatalogRoutes(app, catalogService)
	handlers.SetupSessionRoutes(app, sessionService)
	handlers.SetupBetRoutes(app, betService)
	handlers.SetupBingoRoutes(app, bingoService)
	handlers.SetupEventRoutes(app, notifyService)

	go func() {
		if err := app.Listen(":5300"); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Println("✅ Server running on http://localhost:5300")
	log.Println("✅ Engine scheduler running (idle sweep + settlement retry)")
	log.Println("✅ GatewayAuthMiddleware enforced globally — all requests must come from Gateway")

	<-ctx.Done()
	log.Println("Shutting down server...")
}
