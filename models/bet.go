package models

import "time"

type BetStatus string

const (
	BetPending    BetStatus = "pending"    // sportsbook: waiting for the event to settle
	BetProcessing BetStatus = "processing" // funds debited, outcome not yet applied
	BetCompleted  BetStatus = "completed"
	BetFailed     BetStatus = "failed"
)

// GameBet is one wager. Funds are debited before the row is created, so a
// persisted bet always represents money already moved.
type GameBet struct {
	ID        string       `gorm:"primaryKey" json:"id"`
	UserID    string       `gorm:"index" json:"user_id"`
	SessionID string       `gorm:"index" json:"session_id"`
	GameID    string       `gorm:"index" json:"game_id"`
	Category  GameCategory `gorm:"type:varchar(16)" json:"category"`
	Currency  Currency     `gorm:"type:varchar(4)" json:"currency"`
	Amount    float64      `json:"amount"`
	Status    BetStatus    `gorm:"type:varchar(12);default:'processing'" json:"status"`

	Result *GameResult `gorm:"foreignKey:BetID" json:"result,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SettlementRetry queues a win whose wallet credit failed after the outcome
// was already generated. These are never dropped; the scheduler retries them
// until the credit lands.
type SettlementRetry struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	BetID     string    `gorm:"uniqueIndex" json:"bet_id"`
	UserID    string    `json:"user_id"`
	Currency  Currency  `gorm:"type:varchar(4)" json:"currency"`
	WinAmount float64   `json:"win_amount"`
	Refund    bool      `json:"refund"` // push stake return rather than a win
	Attempts  int       `json:"attempts"`
	LastError string    `gorm:"type:text" json:"last_error"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
