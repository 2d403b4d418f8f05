package engine

import (
	"math"
	"testing"
)

func TestResolveTablePayouts(t *testing.T) {
	tests := []struct {
		variant string
		mult    float64
	}{
		{"blackjack", 2},
		{"roulette", 35},
		{"baccarat", 2},
		{"poker", 5},
	}
	for _, tc := range tests {
		t.Run(tc.variant, func(t *testing.T) {
			// 0.4 < 0.47 → win; 0.6 → lose.
			win := ResolveTable(&fakeRand{seq: []float64{0.4}, def: 0.5}, tc.variant, 25, 0)
			assertTrue(t, win.Won, "winning draw")
			assertEqual(t, 25*tc.mult, win.Payout, "payout at nominal multiplier")

			lose := ResolveTable(&fakeRand{seq: []float64{0.6}, def: 0.5}, tc.variant, 25, 0)
			assertEqual(t, false, lose.Won, "losing draw")
			assertEqual(t, 0.0, lose.Payout, "no payout on loss")
		})
	}
}

func TestResolveTablePluggableWinProbability(t *testing.T) {
	// The same draw flips with the configured win chance.
	r := func() Rand { return &fakeRand{seq: []float64{0.5}, def: 0.5} }
	assertTrue(t, ResolveTable(r(), "blackjack", 10, 0.9).Won, "0.5 wins at p=0.9")
	assertEqual(t, false, ResolveTable(r(), "blackjack", 10, 0.1).Won, "0.5 loses at p=0.1")
}

func TestResolveTableDetailIsDisplayOnly(t *testing.T) {
	res := ResolveTable(NewRand(3), "roulette", 10, 0)
	pocket, ok := res.Detail["pocket"].(int)
	assertTrue(t, ok, "roulette detail has a pocket")
	assertTrue(t, pocket >= 0 && pocket <= 36, "pocket in range")

	// Payout never depends on the synthesized detail.
	if res.Won {
		assertEqual(t, 10*35.0, res.Payout, "roulette payout")
	} else {
		assertEqual(t, 0.0, res.Payout, "roulette loss")
	}
	assertTrue(t, !math.IsNaN(res.Payout), "payout is a number")
}

func TestResolveTableUnknownVariantFallsBack(t *testing.T) {
	res := ResolveTable(&fakeRand{seq: []float64{0.1}, def: 0.5}, "pai-gow", 10, 0)
	assertTrue(t, res.Won, "winning draw")
	assertEqual(t, 20.0, res.Payout, "unknown variant pays 2x")
}
