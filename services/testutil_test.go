package services

import (
	"context"
	"fmt"
	"testing"

	"sweeps-wager-system/engine"
	"sweeps-wager-system/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
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
		t.Fatalf("failed to migrate test db: %v", err)
	}
	return db
}

// testEnv wires the whole engine against an in-memory store and wallet.
type testEnv struct {
	db       *gorm.DB
	wallet   *MemoryWallet
	sessions *SessionService
	catalog  *CatalogService
	notify   *NotifyService
	bets     *BetService
}

func newTestEnv(t *testing.T, rng engine.Rand) *testEnv {
	t.Helper()
	db := newTestDB(t)
	wallet := NewMemoryWallet()
	sessions := NewSessionService(db)
	catalog := NewCatalogService(db)
	notify := NewNotifyService()
	bets := NewBetService(db, wallet, sessions, NewCurrencyPolicy(), catalog, notify, rng)

	for _, g := range []models.Game{
		{ID: "slot-1", Name: "Jewel Rush", Category: models.CategorySlots, Status: models.GameStatusPublished},
		{ID: "bj-1", Name: "Classic Blackjack", Category: models.CategoryTable, Variant: models.VariantBlackjack, Status: models.GameStatusPublished},
		{ID: "roulette-1", Name: "European Roulette", Category: models.CategoryTable, Variant: models.VariantRoulette, Status: models.GameStatusPublished},
		{ID: "bingo-1", Name: "Lucky Hall 75", Category: models.CategoryBingo, Status: models.GameStatusPublished},
		{ID: "sports-1", Name: "Sports Picks", Category: models.CategorySportsbook, Status: models.GameStatusPublished},
	} {
		game := g
		if err := catalog.CreateGame(&game); err != nil {
			t.Fatalf("failed to seed game %s: %v", g.ID, err)
		}
	}
	return &testEnv{db: db, wallet: wallet, sessions: sessions, catalog: catalog, notify: notify, bets: bets}
}

// startSession opens a funded session for the user.
func (e *testEnv) startSession(t *testing.T, userID string, category models.GameCategory, currency models.Currency, funds float64) *models.GameSession {
	t.Helper()
	e.wallet.Fund(userID, currency, funds)
	session, err := e.sessions.StartSession(userID, category, currency)
	if err != nil {
		t.Fatalf("failed to start session: %v", err)
	}
	return session
}

func (e *testEnv) balance(t *testing.T, userID string, currency models.Currency) float64 {
	t.Helper()
	bal, err := e.wallet.Balance(context.Background(), userID, currency)
	if err != nil {
		t.Fatalf("failed to read balance: %v", err)
	}
	return bal
}

// fixedRand replays a sequence, then repeats its fallback value.
type fixedRand struct {
	seq []float64
	def float64
	i   int
}

func (f *fixedRand) Next() float64 {
	if f.i < len(f.seq) {
		v := f.seq[f.i]
		f.i++
		return v
	}
	f.i++
	return f.def
}

// losingSlotsRand yields draws for n slot spins that pay nothing and trigger
// neither bonus nor free spins: distinct payline symbols, high trigger rolls.
func losingSlotsRand(n int) *fixedRand {
	payline := []float64{0.0, 0.13, 0.3, 0.5, 0.7}
	var seq []float64
	for spin := 0; spin < n; spin++ {
		for col := 0; col < 5; col++ {
			seq = append(seq, 0.0, payline[col], 0.0) // rows: top, middle, bottom
		}
		seq = append(seq, 0.9, 0.9) // bonus roll, free-spin roll
	}
	return &fixedRand{seq: seq, def: 0.9}
}

func assertEqual(t *testing.T, expected, actual interface{}, msg string) {
	t.Helper()
	if expected != actual {
		t.Errorf("%s: expected %v, got %v", msg, expected, actual)
	}
}
