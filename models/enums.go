package models

// Currency is one of the two parallel credits the storefront runs on.
type Currency string

const (
	CurrencyGC Currency = "GC" // play-money credit, no cash-out value
	CurrencySC Currency = "SC" // sweepstakes-redeemable credit
)

// GameCategory groups games for limits, sessions and outcome generation.
type GameCategory string

const (
	CategorySlots      GameCategory = "slots"
	CategoryTable      GameCategory = "table"
	CategoryLive       GameCategory = "live"
	CategoryBingo      GameCategory = "bingo"
	CategorySportsbook GameCategory = "sportsbook"
)

// AllCategories in display order.
var AllCategories = []GameCategory{
	CategorySlots,
	CategoryTable,
	CategoryLive,
	CategoryBingo,
	CategorySportsbook,
}

func (c Currency) Valid() bool {
	return c == CurrencyGC || c == CurrencySC
}

func (g GameCategory) Valid() bool {
	switch g {
	case CategorySlots, CategoryTable, CategoryLive, CategoryBingo, CategorySportsbook:
		return true
	}
	return false
}

// DefaultCurrency is used when a bet arrives with no explicit currency and the
// user has no stored preference for the category.
func (g GameCategory) DefaultCurrency() Currency {
	if g == CategorySportsbook {
		return CurrencySC
	}
	return CurrencyGC
}
