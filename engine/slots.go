package engine

// 5-reel, 3-row machine evaluating the single middle payline.
const (
	ReelCount  = 5
	RowCount   = 3
	PaylineRow = 1
)

// SlotSymbols is the fixed 8-symbol alphabet, lowest value first.
var SlotSymbols = []string{"🍒", "🍋", "🍊", "🍇", "🔔", "⭐", "7️⃣", "💎"}

// symbolMultiplier is the base payline multiplier per symbol.
var symbolMultiplier = map[string]float64{
	"🍒":  3,
	"🍋":  4,
	"🍊":  5,
	"🍇":  6,
	"🔔":  10,
	"⭐":  15,
	"7️⃣": 25,
	"💎":  100,
}

// countMultiplier scales the base multiplier by run length on the payline.
var countMultiplier = map[int]float64{3: 1, 4: 5, 5: 10}

const (
	bonusChance    = 0.05
	freeSpinChance = 0.03
)

// SlotSpin is one spin's full display and payout detail.
type SlotSpin struct {
	Reels   [ReelCount][RowCount]string `json:"reels"`
	Payline [ReelCount]string           `json:"payline"`

	LineSymbol string  `json:"line_symbol,omitempty"` // winning symbol, if any
	LineCount  int     `json:"line_count,omitempty"`
	LineWin    float64 `json:"line_win"`

	BonusTriggered bool    `json:"bonus_triggered"`
	BonusWin       float64 `json:"bonus_win"`
	FreeSpins      int     `json:"free_spins"` // attached, no payout of its own

	TotalWin float64 `json:"total_win"`
}

// SpinSlots draws a reel matrix, evaluates the middle payline, and rolls the
// independent bonus and free-spin triggers.
//
// Draw order is part of the contract: 15 cells column-major, then the bonus
// roll (plus one draw for its size when it hits), then the free-spin roll
// (plus one draw for the count when it hits).
func SpinSlots(r Rand, betAmount float64) SlotSpin {
	var spin SlotSpin
	for col := 0; col < ReelCount; col++ {
		for row := 0; row < RowCount; row++ {
			spin.Reels[col][row] = SlotSymbols[intn(r, len(SlotSymbols))]
		}
		spin.Payline[col] = spin.Reels[col][PaylineRow]
	}

	counts := map[string]int{}
	for _, sym := range spin.Payline {
		counts[sym]++
	}
	for sym, n := range counts {
		if n >= 3 {
			spin.LineSymbol = sym
			spin.LineCount = n
			spin.LineWin = betAmount * symbolMultiplier[sym] * countMultiplier[n]
			break // at most one symbol can reach 3 on a 5-cell line
		}
	}

	if r.Next() < bonusChance {
		spin.BonusTriggered = true
		spin.BonusWin = betAmount * between(r, 2, 7)
	}
	if r.Next() < freeSpinChance {
		spin.FreeSpins = 5 + intn(r, 10)
	}

	spin.TotalWin = spin.LineWin + spin.BonusWin
	return spin
}
