package engine

import "testing"

// cellDraws builds the 15 column-major cell draws with every middle-row cell
// taken from payline and all other cells fixed to filler.
func cellDraws(payline [ReelCount]float64, filler float64) []float64 {
	seq := make([]float64, 0, ReelCount*RowCount)
	for col := 0; col < ReelCount; col++ {
		for row := 0; row < RowCount; row++ {
			if row == PaylineRow {
				seq = append(seq, payline[col])
			} else {
				seq = append(seq, filler)
			}
		}
	}
	return seq
}

func TestSpinSlotsThreeDiamonds(t *testing.T) {
	// 0.9 → 💎, 0.0 → 🍒, 0.13 → 🍋; bonus and free-spin rolls miss.
	seq := cellDraws([ReelCount]float64{0.9, 0.9, 0.9, 0.0, 0.13}, 0.0)
	seq = append(seq, 0.9, 0.9)
	spin := SpinSlots(&fakeRand{seq: seq, def: 0.9}, 10)

	assertEqual(t, "💎", spin.LineSymbol, "line symbol")
	assertEqual(t, 3, spin.LineCount, "line count")
	assertEqual(t, 10*100.0, spin.LineWin, "three diamonds pay bet x 100")
	assertEqual(t, false, spin.BonusTriggered, "no bonus")
	assertEqual(t, 0, spin.FreeSpins, "no free spins")
	assertEqual(t, spin.LineWin, spin.TotalWin, "total equals line win")
}

func TestSpinSlotsCountMultipliers(t *testing.T) {
	tests := []struct {
		name    string
		payline [ReelCount]float64
		want    float64
	}{
		{"five of a kind pays 10x base", [ReelCount]float64{0.9, 0.9, 0.9, 0.9, 0.9}, 10 * 100 * 10},
		{"four of a kind pays 5x base", [ReelCount]float64{0.9, 0.9, 0.9, 0.9, 0.0}, 10 * 100 * 5},
		{"two of a kind pays nothing", [ReelCount]float64{0.9, 0.9, 0.0, 0.13, 0.3}, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			seq := append(cellDraws(tc.payline, 0.0), 0.9, 0.9)
			spin := SpinSlots(&fakeRand{seq: seq, def: 0.9}, 10)
			assertEqual(t, tc.want, spin.LineWin, "line win")
		})
	}
}

func TestSpinSlotsBonusAndFreeSpins(t *testing.T) {
	// Vary the middle row so the payline itself pays nothing, then hit both
	// triggers: bonus roll 0.01 + size 0.5 → 4.5x, free-spin roll 0.0 + count 0.5.
	seq := cellDraws([ReelCount]float64{0.0, 0.13, 0.3, 0.5, 0.9}, 0.0)
	seq = append(seq, 0.01, 0.5, 0.0, 0.5)
	spin := SpinSlots(&fakeRand{seq: seq, def: 0.9}, 10)

	assertEqual(t, 0.0, spin.LineWin, "no payline win")
	assertTrue(t, spin.BonusTriggered, "bonus triggered")
	assertEqual(t, 10*4.5, spin.BonusWin, "bonus pays between 2x and 7x")
	assertEqual(t, 10, spin.FreeSpins, "free spin count")
	assertEqual(t, spin.BonusWin, spin.TotalWin, "total equals bonus win")
}

func TestSpinSlotsMatrixShape(t *testing.T) {
	spin := SpinSlots(NewRand(7), 1)
	for col := 0; col < ReelCount; col++ {
		assertEqual(t, spin.Reels[col][PaylineRow], spin.Payline[col], "payline is the middle row")
		for row := 0; row < RowCount; row++ {
			if _, ok := symbolMultiplier[spin.Reels[col][row]]; !ok {
				t.Errorf("cell (%d,%d) holds unknown symbol %q", col, row, spin.Reels[col][row])
			}
		}
	}
}
