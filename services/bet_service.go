package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"time"

	"sweeps-wager-system/engine"
	"sweeps-wager-system/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BetService is the bet ledger and settlement path: it validates wagers
// against the currency policy, moves funds through the wallet collaborator,
// runs the outcome generators, and finalizes results.
type BetService struct {
	DB       *gorm.DB
	Wallet   Wallet
	Sessions *SessionService
	Policy   *CurrencyPolicy
	Catalog  *CatalogService
	Notify   *NotifyService
	Rng      engine.Rand

	// WalletTimeout bounds each wallet round trip, the engine's only
	// suspension point. A timed-out debit fails the bet instead of leaving
	// it processing forever.
	WalletTimeout time.Duration
}

func NewBetService(db *gorm.DB, wallet Wallet, sessions *SessionService, policy *CurrencyPolicy, catalog *CatalogService, notify *NotifyService, rng engine.Rand) *BetService {
	return &BetService{
		DB:            db,
		Wallet:        wallet,
		Sessions:      sessions,
		Policy:        policy,
		Catalog:       catalog,
		Notify:        notify,
		Rng:           rng,
		WalletTimeout: 5 * time.Second,
	}
}

// PlaceBetInput is the engine-facing bet request. Currency may be empty, in
// which case the user's last-selected currency for the category (or the
// category default) applies.
type PlaceBetInput struct {
	UserID   string
	GameID   string
	Amount   float64
	Currency models.Currency
}

// resolveCurrency applies the explicit argument, then the stored preference,
// then the category default.
func (s *BetService) resolveCurrency(userID string, category models.GameCategory, explicit models.Currency) models.Currency {
	if explicit != "" {
		return explicit
	}
	var pref models.CurrencyPreference
	err := s.DB.Where("user_id = ? AND category = ?", userID, category).First(&pref).Error
	if err == nil && pref.Currency.Valid() {
		return pref.Currency
	}
	return category.DefaultCurrency()
}

func (s *BetService) rememberCurrency(userID string, category models.GameCategory, currency models.Currency) {
	pref := models.CurrencyPreference{
		ID:       uuid.NewString(),
		UserID:   userID,
		Category: category,
		Currency: currency,
	}
	err := s.DB.Where("user_id = ? AND category = ?", userID, category).
		Assign(models.CurrencyPreference{Currency: currency}).
		FirstOrCreate(&pref).Error
	if err != nil {
		log.Printf("[Bets] Failed to store currency preference for %s/%s: %v", userID, category, err)
	}
}

// PlaceBet validates and funds one wager.
//
// An active session for (user, category) is an explicit precondition: there
// is no implicit auto-start, and the check runs before the wallet debit so a
// rejected bet never moves funds. Sportsbook bets are created pending and
// settle later when the backing event resolves; every other category is
// created processing and settles in the same call chain.
func (s *BetService) PlaceBet(ctx context.Context, in PlaceBetInput) (*models.GameBet, error) {
	game, err := s.Catalog.Lookup(in.GameID)
	if err != nil {
		return nil, err
	}
	category := game.Category

	currency := s.resolveCurrency(in.UserID, category, in.Currency)
	if !s.Policy.IsCurrencyAllowed(category, currency) {
		return nil, fmt.Errorf("%w: %s does not accept %s", ErrUnsupportedCurrency, category, currency)
	}
	if err := s.Policy.ValidateAmount(category, currency, in.Amount); err != nil {
		return nil, err
	}

	session, err := s.Sessions.GetActiveSession(in.UserID, category)
	if err != nil {
		return nil, err
	}

	debitCtx, cancel := context.WithTimeout(ctx, s.WalletTimeout)
	defer cancel()
	if err := s.Wallet.Debit(debitCtx, in.UserID, currency, in.Amount); err != nil {
		if errors.Is(debitCtx.Err(), context.DeadlineExceeded) {
			return nil, ErrWalletTimeout
		}
		return nil, err
	}

	status := models.BetProcessing
	if category == models.CategorySportsbook {
		status = models.BetPending
	}

	bet := &models.GameBet{
		ID:        uuid.NewString(),
		UserID:    in.UserID,
		SessionID: session.ID,
		GameID:    game.ID,
		Category:  category,
		Currency:  currency,
		Amount:    in.Amount,
		Status:    status,
	}
	if err := s.DB.Create(bet).Error; err != nil {
		return nil, fmt.Errorf("failed to persist bet: %w", err)
	}

	if err := s.Sessions.RecordBet(session.ID, in.Amount); err != nil {
		// The debit and bet row already landed; fail the bet and queue a
		// stake refund instead of stranding the funds.
		bet.Status = models.BetFailed
		if dbErr := s.DB.Save(bet).Error; dbErr != nil {
			log.Printf("[Bets] Failed to mark bet %s failed: %v", bet.ID, dbErr)
		}
		s.queueRetry(bet, in.Amount, true, err)
		return nil, fmt.Errorf("failed to record bet on session: %w", err)
	}

	s.rememberCurrency(in.UserID, category, currency)
	return bet, nil
}

// Outcome is a generator's output normalized for settlement.
type Outcome struct {
	Result    models.Outcome
	WinAmount float64
	Detail    any
}

func validateOutcome(o Outcome) error {
	if math.IsNaN(o.WinAmount) || math.IsInf(o.WinAmount, 0) || o.WinAmount < 0 {
		return fmt.Errorf("%w: win amount %v", ErrMalformedOutcome, o.WinAmount)
	}
	switch o.Result {
	case models.OutcomeWin:
		if o.WinAmount <= 0 {
			return fmt.Errorf("%w: win outcome with zero win amount", ErrMalformedOutcome)
		}
	case models.OutcomeLose, models.OutcomePush:
		if o.WinAmount != 0 {
			return fmt.Errorf("%w: %s outcome with win amount %v", ErrMalformedOutcome, o.Result, o.WinAmount)
		}
	default:
		return fmt.Errorf("%w: unknown outcome %q", ErrMalformedOutcome, o.Result)
	}
	return nil
}

// Settle applies a generator outcome to a funded bet: credit the win, mark
// the bet completed, update the owning session, and notify subscribers.
//
// A failed wallet credit is never swallowed: the win is queued for durable
// retry, the bet stays processing, and the caller gets ErrSettlementFailure.
func (s *BetService) Settle(ctx context.Context, bet *models.GameBet, outcome Outcome) (*models.GameResult, error) {
	if err := validateOutcome(outcome); err != nil {
		bet.Status = models.BetFailed
		if dbErr := s.DB.Save(bet).Error; dbErr != nil {
			log.Printf("[Settle] Failed to mark bet %s failed: %v", bet.ID, dbErr)
		}
		return nil, err
	}

	if outcome.WinAmount > 0 {
		creditCtx, cancel := context.WithTimeout(ctx, s.WalletTimeout)
		err := s.Wallet.Credit(creditCtx, bet.UserID, bet.Currency, outcome.WinAmount)
		cancel()
		if err != nil {
			s.queueRetry(bet, outcome.WinAmount, false, err)
			return nil, fmt.Errorf("%w: %v", ErrSettlementFailure, err)
		}
	}

	result := &models.GameResult{
		ID:        uuid.NewString(),
		BetID:     bet.ID,
		Outcome:   outcome.Result,
		WinAmount: outcome.WinAmount,
	}
	if bet.Amount > 0 && outcome.Result == models.OutcomeWin {
		result.Multiplier = outcome.WinAmount / bet.Amount
	}
	if err := result.SetDetail(outcome.Detail); err != nil {
		log.Printf("[Settle] Failed to encode result detail for bet %s: %v", bet.ID, err)
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(result).Error; err != nil {
			return err
		}
		bet.Status = models.BetCompleted
		return tx.Save(bet).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to persist settlement for bet %s: %w", bet.ID, err)
	}
	bet.Result = result

	if outcome.WinAmount > 0 {
		if err := s.Sessions.RecordWin(bet.SessionID, outcome.WinAmount); err != nil {
			// The credit already landed; aggregates drifting is log-worthy
			// but not a settlement failure.
			log.Printf("[Settle] Failed to record win on session %s: %v", bet.SessionID, err)
		}
	}

	s.Notify.Publish(bet.UserID, bet.Category, result)
	return result, nil
}

func (s *BetService) queueRetry(bet *models.GameBet, amount float64, refund bool, cause error) {
	retry := models.SettlementRetry{
		ID:        uuid.NewString(),
		BetID:     bet.ID,
		UserID:    bet.UserID,
		Currency:  bet.Currency,
		WinAmount: amount,
		Refund:    refund,
		Attempts:  1,
		LastError: cause.Error(),
	}
	err := s.DB.Where("bet_id = ?", bet.ID).
		Assign(map[string]any{"last_error": cause.Error()}).
		FirstOrCreate(&retry).Error
	if err != nil {
		log.Printf("[Settle] CRITICAL: failed to queue settlement retry for bet %s: %v", bet.ID, err)
	}
}

// RetryQueuedSettlements re-drives queued wallet credits. Called by the
// scheduler; returns how many settlements completed.
func (s *BetService) RetryQueuedSettlements(ctx context.Context) (int, error) {
	var queue []models.SettlementRetry
	if err := s.DB.Order("created_at ASC").Find(&queue).Error; err != nil {
		return 0, fmt.Errorf("failed to load settlement retry queue: %w", err)
	}

	settled := 0
	for _, entry := range queue {
		var bet models.GameBet
		if err := s.DB.First(&bet, "id = ?", entry.BetID).Error; err != nil {
			log.Printf("[Settle] Retry queue references missing bet %s, dropping", entry.BetID)
			s.DB.Delete(&models.SettlementRetry{}, "id = ?", entry.ID)
			continue
		}

		creditCtx, cancel := context.WithTimeout(ctx, s.WalletTimeout)
		err := s.Wallet.Credit(creditCtx, entry.UserID, entry.Currency, entry.WinAmount)
		cancel()
		if err != nil {
			entry.Attempts++
			entry.LastError = err.Error()
			s.DB.Save(&entry)
			continue
		}

		s.DB.Delete(&models.SettlementRetry{}, "id = ?", entry.ID)

		result := &models.GameResult{
			ID:      uuid.NewString(),
			BetID:   bet.ID,
			Outcome: models.OutcomeWin,
		}
		if entry.Refund {
			result.Outcome = models.OutcomePush
		} else {
			result.WinAmount = entry.WinAmount
			if bet.Amount > 0 {
				result.Multiplier = entry.WinAmount / bet.Amount
			}
		}
		if err := s.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(result).Error; err != nil {
				return err
			}
			bet.Status = models.BetCompleted
			return tx.Save(&bet).Error
		}); err != nil {
			log.Printf("[Settle] Retry credit landed but persistence failed for bet %s: %v", bet.ID, err)
			continue
		}

		if !entry.Refund {
			if err := s.Sessions.RecordWin(bet.SessionID, entry.WinAmount); err != nil {
				log.Printf("[Settle] Failed to record retried win on session %s: %v", bet.SessionID, err)
			}
		}
		s.Notify.Publish(bet.UserID, bet.Category, result)
		settled++
	}
	return settled, nil
}

// Play is the full synchronous flow for slots, table, and live games:
// place the bet, run the category's generator, settle the outcome.
func (s *BetService) Play(ctx context.Context, in PlaceBetInput) (*models.GameBet, *models.GameResult, error) {
	bet, err := s.PlaceBet(ctx, in)
	if err != nil {
		return nil, nil, err
	}
	if bet.Status == models.BetPending {
		// Sportsbook: the bet waits for the backing event; nothing to settle yet.
		return bet, nil, nil
	}

	outcome, err := s.generate(bet)
	if err != nil {
		bet.Status = models.BetFailed
		if dbErr := s.DB.Save(bet).Error; dbErr != nil {
			log.Printf("[Bets] Failed to mark bet %s failed: %v", bet.ID, dbErr)
		}
		return bet, nil, err
	}

	result, err := s.Settle(ctx, bet, outcome)
	if err != nil {
		return bet, nil, err
	}
	return bet, result, nil
}

// generate dispatches to the category's outcome generator.
func (s *BetService) generate(bet *models.GameBet) (Outcome, error) {
	switch bet.Category {
	case models.CategorySlots:
		spin := engine.SpinSlots(s.Rng, bet.Amount)
		outcome := Outcome{Result: models.OutcomeLose, Detail: spin}
		if spin.TotalWin > 0 {
			outcome.Result = models.OutcomeWin
			outcome.WinAmount = spin.TotalWin
		}
		return outcome, nil

	case models.CategoryTable, models.CategoryLive:
		game, err := s.Catalog.Lookup(bet.GameID)
		if err != nil {
			return Outcome{}, err
		}
		res := engine.ResolveTable(s.Rng, VariantFor(game), bet.Amount, 0)
		outcome := Outcome{Result: models.OutcomeLose, Detail: res}
		if res.Won {
			outcome.Result = models.OutcomeWin
			outcome.WinAmount = res.Payout
		}
		return outcome, nil

	default:
		// Bingo settles through its room service; sportsbook through
		// SettleSportsbook. Neither reaches this dispatch.
		return Outcome{}, fmt.Errorf("no synchronous generator for category %s", bet.Category)
	}
}

// SettleSportsbook resolves a pending sportsbook bet once its event settles.
// winMultiplier applies to the stake on a win; push returns the stake through
// the wallet service.
func (s *BetService) SettleSportsbook(ctx context.Context, betID string, result models.Outcome, winMultiplier float64) (*models.GameResult, error) {
	var bet models.GameBet
	if err := s.DB.First(&bet, "id = ?", betID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("sportsbook bet %s not found", betID)
		}
		return nil, fmt.Errorf("failed to load sportsbook bet: %w", err)
	}
	if bet.Status != models.BetPending {
		return nil, fmt.Errorf("sportsbook bet %s is %s, not pending", betID, bet.Status)
	}

	outcome := Outcome{Result: result, Detail: map[string]any{"settled_by": "sportsbook-event"}}
	if result == models.OutcomeWin {
		outcome.WinAmount = bet.Amount * winMultiplier
	}
	if result == models.OutcomePush {
		// The stake refund is a wallet concern, not a win amount.
		refundCtx, cancel := context.WithTimeout(ctx, s.WalletTimeout)
		err := s.Wallet.Credit(refundCtx, bet.UserID, bet.Currency, bet.Amount)
		cancel()
		if err != nil {
			s.queueRetry(&bet, bet.Amount, true, err)
			return nil, fmt.Errorf("%w: %v", ErrSettlementFailure, err)
		}
	}
	return s.Settle(ctx, &bet, outcome)
}

// RefreshMirror pulls the wallet's current balance into the display mirror.
func (s *BetService) RefreshMirror(ctx context.Context, userID string, currency models.Currency) error {
	balCtx, cancel := context.WithTimeout(ctx, s.WalletTimeout)
	defer cancel()
	balance, err := s.Wallet.Balance(balCtx, userID, currency)
	if err != nil {
		return err
	}

	mirror := models.WalletMirror{
		ID:           uuid.NewString(),
		UserID:       userID,
		Currency:     currency,
		Balance:      balance,
		LastSyncedAt: time.Now(),
	}
	return s.DB.Where("user_id = ? AND currency = ?", userID, currency).
		Assign(map[string]any{"balance": balance, "last_synced_at": mirror.LastSyncedAt}).
		FirstOrCreate(&mirror).Error
}
