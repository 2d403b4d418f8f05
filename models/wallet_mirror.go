package models

import "time"

// WalletMirror caches the last balance reported by the wallet service per
// (user, currency). It is display-only: the engine never debits or credits
// against this row, only against the wallet service itself.
// Table name: wallet_mirror
type WalletMirror struct {
	ID           string    `gorm:"primaryKey" json:"id"`
	UserID       string    `gorm:"uniqueIndex:idx_wallet_user_cur" json:"user_id"`
	Currency     Currency  `gorm:"uniqueIndex:idx_wallet_user_cur;type:varchar(4)" json:"currency"`
	Balance      float64   `json:"balance"`
	LastSyncedAt time.Time `json:"last_synced_at"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (WalletMirror) TableName() string { return "wallet_mirror" }

// CurrencyPreference remembers the user's last-selected currency per category,
// consulted when a bet arrives without an explicit currency.
type CurrencyPreference struct {
	ID        string       `gorm:"primaryKey" json:"id"`
	UserID    string       `gorm:"uniqueIndex:idx_pref_user_cat" json:"user_id"`
	Category  GameCategory `gorm:"uniqueIndex:idx_pref_user_cat;type:varchar(16)" json:"category"`
	Currency  Currency     `gorm:"type:varchar(4)" json:"currency"`
	UpdatedAt time.Time    `json:"updated_at"`
}
