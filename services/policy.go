package services

import (
	"sweeps-wager-system/models"
)

// BetLimits is one (category, currency) row of the limit table.
type BetLimits struct {
	Min float64
	Max float64
}

// defaultLimits is the conservative fallback for any (category, currency)
// pair missing from the table: a real bound, never silently zero.
var defaultLimits = BetLimits{Min: 1, Max: 100}

// limitTable is the static per-category, per-currency bet bounds.
var limitTable = map[models.GameCategory]map[models.Currency]BetLimits{
	models.CategorySlots: {
		models.CurrencyGC: {Min: 1, Max: 10000},
		models.CurrencySC: {Min: 0.25, Max: 100},
	},
	models.CategoryTable: {
		models.CurrencyGC: {Min: 5, Max: 25000},
		models.CurrencySC: {Min: 0.5, Max: 500},
	},
	models.CategoryLive: {
		models.CurrencyGC: {Min: 5, Max: 25000},
		models.CurrencySC: {Min: 0.5, Max: 500},
	},
	models.CategoryBingo: {
		models.CurrencyGC: {Min: 1, Max: 5000},
		models.CurrencySC: {Min: 0.1, Max: 50},
	},
	models.CategorySportsbook: {
		models.CurrencySC: {Min: 0.5, Max: 250},
	},
}

// CurrencyPolicy is a pure lookup of bet limits and currency restrictions.
type CurrencyPolicy struct{}

func NewCurrencyPolicy() *CurrencyPolicy { return &CurrencyPolicy{} }

func (p *CurrencyPolicy) limits(category models.GameCategory, currency models.Currency) BetLimits {
	if byCurrency, ok := limitTable[category]; ok {
		if l, ok := byCurrency[currency]; ok {
			return l
		}
	}
	return defaultLimits
}

func (p *CurrencyPolicy) MinimumBet(category models.GameCategory, currency models.Currency) float64 {
	return p.limits(category, currency).Min
}

func (p *CurrencyPolicy) MaximumBet(category models.GameCategory, currency models.Currency) float64 {
	return p.limits(category, currency).Max
}

// IsCurrencyAllowed reports whether the category accepts the currency.
// Sportsbook is SC-only; every other category takes both credits.
func (p *CurrencyPolicy) IsCurrencyAllowed(category models.GameCategory, currency models.Currency) bool {
	if !currency.Valid() {
		return false
	}
	if category == models.CategorySportsbook {
		return currency == models.CurrencySC
	}
	return true
}

// ValidateAmount checks the amount against the category/currency bounds,
// returning a BoundError carrying the violated bound.
func (p *CurrencyPolicy) ValidateAmount(category models.GameCategory, currency models.Currency, amount float64) error {
	l := p.limits(category, currency)
	if amount < l.Min {
		return &BoundError{Violated: "minimum", Bound: l.Min, Amount: amount}
	}
	if amount > l.Max {
		return &BoundError{Violated: "maximum", Bound: l.Max, Amount: amount}
	}
	return nil
}
