package engine

// Curated 75-ball patterns rooms can run. Payouts are the configured defaults;
// rooms may override them.

func pattern75(name string, payout float64, cells [rows75][cols75]bool) *BingoPattern {
	grid := make([][]bool, rows75)
	for i := range grid {
		grid[i] = append([]bool(nil), cells[i][:]...)
	}
	return &BingoPattern{Name: name, Type: Bingo75, Cells: grid, Payout: payout}
}

var (
	PatternFourCorners = pattern75("Four Corners", 50, [rows75][cols75]bool{
		{true, false, false, false, true},
		{false, false, false, false, false},
		{false, false, false, false, false},
		{false, false, false, false, false},
		{true, false, false, false, true},
	})

	PatternX = pattern75("X", 150, [rows75][cols75]bool{
		{true, false, false, false, true},
		{false, true, false, true, false},
		{false, false, true, false, false},
		{false, true, false, true, false},
		{true, false, false, false, true},
	})

	PatternFullHouse = pattern75("Full House", 500, [rows75][cols75]bool{
		{true, true, true, true, true},
		{true, true, true, true, true},
		{true, true, true, true, true},
		{true, true, true, true, true},
		{true, true, true, true, true},
	})
)

// PatternByName resolves a curated pattern; nil when unknown.
func PatternByName(name string) *BingoPattern {
	switch name {
	case PatternFourCorners.Name:
		return PatternFourCorners
	case PatternX.Name:
		return PatternX
	case PatternFullHouse.Name:
		return PatternFullHouse
	}
	return nil
}
