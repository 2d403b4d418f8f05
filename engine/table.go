package engine

// Simplified table-game family: the outcome is a straight probability draw
// against a pluggable win chance, not real hand logic. The synthesized hand
// detail is display-only and never feeds back into the payout.

// DefaultWinProbability models the nominal house edge across the family.
const DefaultWinProbability = 0.47

// variantMultiplier is the payout applied on a win, per table variant.
var variantMultiplier = map[string]float64{
	"blackjack": 2,
	"roulette":  35,
	"baccarat":  2,
	"poker":     5,
}

var cardRanks = []string{"2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K", "A"}
var cardSuits = []string{"♠", "♥", "♦", "♣"}

// TableResult is one resolved table-game round.
type TableResult struct {
	Variant string         `json:"variant"`
	Won     bool           `json:"won"`
	Payout  float64        `json:"payout"`
	Detail  map[string]any `json:"detail"`
}

// ResolveTable draws a win/lose result for the named variant. winProbability
// may be <= 0 to use the default. Unknown variants fall back to a 2x payout.
func ResolveTable(r Rand, variant string, betAmount, winProbability float64) TableResult {
	if winProbability <= 0 || winProbability >= 1 {
		winProbability = DefaultWinProbability
	}

	res := TableResult{Variant: variant}
	res.Won = r.Next() < winProbability

	mult, ok := variantMultiplier[variant]
	if !ok {
		mult = 2
	}
	if res.Won {
		res.Payout = betAmount * mult
	}
	res.Detail = synthesizeHand(r, variant, res.Won)
	return res
}

func drawCard(r Rand) string {
	return cardRanks[intn(r, len(cardRanks))] + cardSuits[intn(r, len(cardSuits))]
}

func drawHand(r Rand, n int) []string {
	hand := make([]string, n)
	for i := range hand {
		hand[i] = drawCard(r)
	}
	return hand
}

// synthesizeHand fabricates a plausible display payload for the round.
func synthesizeHand(r Rand, variant string, won bool) map[string]any {
	switch variant {
	case "roulette":
		pocket := intn(r, 37)
		color := "red"
		if pocket == 0 {
			color = "green"
		} else if pocket%2 == 0 {
			color = "black"
		}
		return map[string]any{"pocket": pocket, "color": color}
	case "baccarat":
		return map[string]any{
			"player_hand": drawHand(r, 2),
			"banker_hand": drawHand(r, 2),
			"winner":      map[bool]string{true: "player", false: "banker"}[won],
		}
	case "poker":
		return map[string]any{
			"hole_cards": drawHand(r, 2),
			"board":      drawHand(r, 5),
		}
	default: // blackjack
		return map[string]any{
			"player_hand": drawHand(r, 2),
			"dealer_hand": drawHand(r, 2),
		}
	}
}
