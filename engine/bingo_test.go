package engine

import "testing"

func TestGenerateCard75Audit(t *testing.T) {
	r := NewRand(42)
	for i := 0; i < 1000; i++ {
		card := GenerateCard75(r)
		assertEqual(t, FreeCell, card.Grid[2][2], "free center")

		seen := map[int]bool{}
		populated := 0
		for row := 0; row < rows75; row++ {
			for col := 0; col < cols75; col++ {
				n := card.Grid[row][col]
				populated++
				if row == 2 && col == 2 {
					continue
				}
				if n == FreeCell {
					t.Fatalf("card %d: unexpected blank at (%d,%d)", i, row, col)
				}
				if seen[n] {
					t.Fatalf("card %d: duplicate number %d", i, n)
				}
				seen[n] = true
				lo := 15*col + 1
				if n < lo || n > lo+14 {
					t.Fatalf("card %d: %d outside column %d range [%d,%d]", i, n, col, lo, lo+14)
				}
			}
		}
		assertEqual(t, 25, populated, "grid is 5x5")
		assertEqual(t, 24, len(seen), "24 numbers plus the free space")
	}
}

func TestGenerateCard90Audit(t *testing.T) {
	r := NewRand(99)
	for i := 0; i < 1000; i++ {
		card := GenerateCard90(r)
		seen := map[int]bool{}
		total := 0
		for row := 0; row < rows90; row++ {
			inRow := 0
			for col := 0; col < cols90; col++ {
				n := card.Grid[row][col]
				if n == FreeCell {
					continue
				}
				inRow++
				total++
				if seen[n] {
					t.Fatalf("card %d: duplicate number %d", i, n)
				}
				seen[n] = true
				lo, hi := 10*col+1, 10*col+10
				if col == cols90-1 {
					hi = 90
				}
				if n < lo || n > hi {
					t.Fatalf("card %d: %d outside column %d range [%d,%d]", i, n, col, lo, hi)
				}
			}
			assertEqual(t, perRow90, inRow, "five numbers per row")
		}
		assertEqual(t, 15, total, "fifteen numbers per card")
	}
}

// fixedCard75 builds a deterministic 5x5 card: column c holds 15c+1..15c+5,
// free center.
func fixedCard75() *BingoCard {
	grid := newGrid(rows75, cols75)
	for row := 0; row < rows75; row++ {
		for col := 0; col < cols75; col++ {
			grid[row][col] = 15*col + row + 1
		}
	}
	grid[2][2] = FreeCell
	return &BingoCard{Type: Bingo75, Grid: grid, Marked: map[int]bool{}}
}

func TestFourCornersPattern(t *testing.T) {
	card := fixedCard75()
	corners := []int{card.Grid[0][0], card.Grid[0][4], card.Grid[4][0], card.Grid[4][4]}

	called := map[int]bool{}
	for _, n := range corners[:3] {
		called[n] = true
	}
	assertEqual(t, false, card.MatchesPattern(PatternFourCorners, called), "three corners do not win")

	called[corners[3]] = true
	assertTrue(t, card.MatchesPattern(PatternFourCorners, called), "four corners win")
}

func TestPatternShapeMismatch(t *testing.T) {
	card := GenerateCard90(NewRand(5))
	assertEqual(t, false, card.MatchesPattern(PatternFourCorners, map[int]bool{}), "75-ball pattern never matches a 90-ball card")
}

func TestAutoMarkAndCoverage(t *testing.T) {
	card := fixedCard75()
	n := card.Grid[1][3]

	assertEqual(t, false, card.Covered(1, 3, nil), "unmarked cell not covered")
	assertTrue(t, card.Mark(n), "number on card marks")
	assertTrue(t, card.Covered(1, 3, nil), "marked cell covered")
	assertEqual(t, false, card.Mark(999), "number off card does not mark")
	assertTrue(t, card.Covered(2, 2, nil), "free space always covered")
}

func TestCompletedLinesAndPrize(t *testing.T) {
	card := fixedCard75()

	// Cover the middle row: four numbers plus the free center.
	called := map[int]bool{}
	for col := 0; col < cols75; col++ {
		if n := card.Grid[2][col]; n != FreeCell {
			called[n] = true
		}
	}
	assertEqual(t, 1, card.CompletedLines(called), "one completed row")
	assertEqual(t, 10.0, card.LinePrize(nil, called, 10), "one line pays the base prize")

	// Add the middle column: two structural lines now.
	for row := 0; row < rows75; row++ {
		if n := card.Grid[row][2]; n != FreeCell {
			called[n] = true
		}
	}
	assertEqual(t, 2, card.CompletedLines(called), "row plus column")
	assertEqual(t, 20.0, card.LinePrize(nil, called, 10), "two lines pay twice the base prize")
}

func TestCuratedPatternPayoutReplacesLines(t *testing.T) {
	card := fixedCard75()
	called := map[int]bool{}
	// Cover everything: full house.
	for row := 0; row < rows75; row++ {
		for col := 0; col < cols75; col++ {
			if n := card.Grid[row][col]; n != FreeCell {
				called[n] = true
			}
		}
	}
	assertEqual(t, 12, card.CompletedLines(called), "5 rows + 5 cols + 2 diagonals")
	assertEqual(t, PatternFullHouse.Payout, card.LinePrize(PatternFullHouse, called, 10), "pattern payout replaces line total")
}

func TestBingoCaller(t *testing.T) {
	caller := NewBingoCaller(NewRand(11), 75, 5)
	seen := map[int]bool{}
	for i := 0; i < 75; i++ {
		n, ok := caller.Call()
		assertTrue(t, ok, "pool not exhausted yet")
		if n < 1 || n > 75 {
			t.Fatalf("call %d out of range: %d", i, n)
		}
		if seen[n] {
			t.Fatalf("number %d called twice", n)
		}
		seen[n] = true
	}
	_, ok := caller.Call()
	assertEqual(t, false, ok, "pool exhausted")
	assertEqual(t, 5, len(caller.Recent()), "recent history bounded")
	assertEqual(t, 75, len(caller.Called()), "called set complete")
	assertEqual(t, 0, caller.Remaining(), "nothing remaining")
}
