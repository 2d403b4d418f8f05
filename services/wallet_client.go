package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"sync"
	"time"

	"sweeps-wager-system/models"
)

// Wallet is the external ledger collaborator. The engine treats each call as
// transactional; it never mutates balances on its own.
type Wallet interface {
	Debit(ctx context.Context, userID string, currency models.Currency, amount float64) error
	Credit(ctx context.Context, userID string, currency models.Currency, amount float64) error
	Balance(ctx context.Context, userID string, currency models.Currency) (float64, error)
}

// WalletClient talks to the wallet service over HTTP with a service token.
type WalletClient struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
}

func NewWalletClient() *WalletClient {
	baseURL := os.Getenv("WALLET_SERVICE_URL")
	if baseURL == "" {
		log.Fatal("WALLET_SERVICE_URL environment variable is required")
	}
	token := os.Getenv("ENGINE_SERVICE_TOKEN")
	if token == "" {
		log.Fatal("ENGINE_SERVICE_TOKEN environment variable is required for wallet calls")
	}

	return &WalletClient{
		BaseURL: baseURL,
		Token:   token,
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type walletMutation struct {
	UserID   string          `json:"user_id"`
	Currency models.Currency `json:"currency"`
	Amount   float64         `json:"amount"`
}

func (c *WalletClient) post(ctx context.Context, path string, body walletMutation) error {
	raw, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode wallet request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.BaseURL+path, bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("failed to create wallet request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Service-Token", c.Token)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return ErrWalletTimeout
		}
		return fmt.Errorf("failed to call wallet service: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
		return nil
	case http.StatusPaymentRequired, http.StatusConflict:
		return ErrInsufficientFunds
	default:
		return fmt.Errorf("wallet service returned status %d for %s", resp.StatusCode, path)
	}
}

func (c *WalletClient) Debit(ctx context.Context, userID string, currency models.Currency, amount float64) error {
	return c.post(ctx, "/api/v1/wallet/debit", walletMutation{UserID: userID, Currency: currency, Amount: amount})
}

func (c *WalletClient) Credit(ctx context.Context, userID string, currency models.Currency, amount float64) error {
	return c.post(ctx, "/api/v1/wallet/credit", walletMutation{UserID: userID, Currency: currency, Amount: amount})
}

func (c *WalletClient) Balance(ctx context.Context, userID string, currency models.Currency) (float64, error) {
	url := fmt.Sprintf("%s/api/v1/wallet/balance?user_id=%s&currency=%s", c.BaseURL, userID, currency)
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create balance request: %w", err)
	}
	req.Header.Set("X-Service-Token", c.Token)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("failed to call wallet service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("wallet service returned status %d for balance", resp.StatusCode)
	}

	var payload struct {
		Balance float64 `json:"balance"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return 0, fmt.Errorf("failed to decode balance response: %w", err)
	}
	return payload.Balance, nil
}

// MemoryWallet is the in-process wallet used by tests and local development.
type MemoryWallet struct {
	mu       sync.Mutex
	balances map[string]float64

	// FailCredits forces every credit to fail, for settlement-failure tests.
	FailCredits bool
}

func NewMemoryWallet() *MemoryWallet {
	return &MemoryWallet{balances: make(map[string]float64)}
}

func walletKey(userID string, currency models.Currency) string {
	return userID + ":" + string(currency)
}

// Fund seeds a balance.
func (w *MemoryWallet) Fund(userID string, currency models.Currency, amount float64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.balances[walletKey(userID, currency)] += amount
}

func (w *MemoryWallet) Debit(_ context.Context, userID string, currency models.Currency, amount float64) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	key := walletKey(userID, currency)
	if w.balances[key] < amount {
		return ErrInsufficientFunds
	}
	w.balances[key] -= amount
	return nil
}

func (w *MemoryWallet) Credit(_ context.Context, userID string, currency models.Currency, amount float64) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.FailCredits {
		return errors.New("wallet credit rejected")
	}
	w.balances[walletKey(userID, currency)] += amount
	return nil
}

func (w *MemoryWallet) Balance(_ context.Context, userID string, currency models.Currency) (float64, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.balances[walletKey(userID, currency)], nil
}
