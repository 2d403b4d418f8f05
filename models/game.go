package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	GameStatusDraft     = "draft"
	GameStatusPublished = "published"
)

// Table-game variants resolved by the simplified table generator.
const (
	VariantBlackjack = "blackjack"
	VariantRoulette  = "roulette"
	VariantBaccarat  = "baccarat"
	VariantPoker     = "poker"
)

// Game is one storefront catalog entry. The wagering engine resolves a bet's
// category (and table variant) through this table.
type Game struct {
	ID       string       `json:"id" gorm:"primaryKey"`
	Slug     string       `json:"slug" gorm:"uniqueIndex;size:128"`
	Name     string       `json:"name" gorm:"not null"`
	Category GameCategory `json:"category" gorm:"type:varchar(16);index"`
	Provider string       `json:"provider"`

	// Variant is set for table/live games only (blackjack | roulette | baccarat | poker).
	Variant string `json:"variant,omitempty" gorm:"size:16"`

	ThumbnailURL string `json:"thumbnail_url"`
	Featured     bool   `json:"featured" gorm:"default:false"`

	Status string `json:"status" gorm:"default:'draft'"` // draft | published

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

// MinimalGame is the lightweight listing shape for lobby grids.
type MinimalGame struct {
	ID           string       `json:"id"`
	Slug         string       `json:"slug"`
	Name         string       `json:"name"`
	Category     GameCategory `json:"category"`
	ThumbnailURL string       `json:"thumbnail_url"`
	Featured     bool         `json:"featured"`
}
