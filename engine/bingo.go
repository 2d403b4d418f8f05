package engine

// Bingo card generation, number calling, and pattern matching for 75-ball
// (5×5, free center) and 90-ball (3×9, 15 numbers) cards.

import "sort"

type BingoType string

const (
	Bingo75 BingoType = "75-ball"
	Bingo90 BingoType = "90-ball"
)

const (
	rows75, cols75 = 5, 5
	rows90, cols90 = 3, 9
	perRow90       = 5 // numbers per row on a 90-ball card
)

// FreeCell is the value of an unnumbered cell: the 75-ball free center and
// the 12 blanks of a 90-ball card.
const FreeCell = 0

// BingoCard is a generated card plus its marked numbers.
type BingoCard struct {
	Type   BingoType    `json:"type"`
	Grid   [][]int      `json:"grid"` // Grid[row][col]; FreeCell where unnumbered
	Marked map[int]bool `json:"-"`
}

// BingoPattern is a boolean matrix matching a card's grid shape. A card wins
// the pattern when every true cell maps to a covered card cell.
type BingoPattern struct {
	Name   string    `json:"name"`
	Type   BingoType `json:"type"`
	Cells  [][]bool  `json:"cells"`
	Payout float64   `json:"payout"` // configured prize; overrides line-based prizes
}

// GenerateCard75 draws a 5×5 card: column c holds 5 distinct numbers from
// [15c+1, 15c+15], cell (2,2) is the permanently-covered free space.
func GenerateCard75(r Rand) *BingoCard {
	grid := newGrid(rows75, cols75)
	for col := 0; col < cols75; col++ {
		lo := 15*col + 1
		nums := sample(r, lo, lo+14, rows75)
		for row := 0; row < rows75; row++ {
			grid[row][col] = nums[row]
		}
	}
	grid[2][2] = FreeCell
	return &BingoCard{Type: Bingo75, Grid: grid, Marked: map[int]bool{}}
}

// GenerateCard90 places exactly 15 numbers on a 3×9 grid, 5 per row, with
// column c drawing from [10c+1, 10c+10] and the last column extended to 90.
func GenerateCard90(r Rand) *BingoCard {
	counts := columnCounts90(r)
	rowsFor := assignRows90(r, counts)

	grid := newGrid(rows90, cols90)
	for col := 0; col < cols90; col++ {
		lo, hi := 10*col+1, 10*col+10
		if col == cols90-1 {
			hi = 90 // last column extends to 90
		}
		nums := sample(r, lo, hi, counts[col])
		sort.Ints(nums) // ascending down the column, as printed tickets do
		for i, row := range rowsFor[col] {
			grid[row][col] = nums[i]
		}
	}
	return &BingoCard{Type: Bingo90, Grid: grid, Marked: map[int]bool{}}
}

// columnCounts90 distributes 15 numbers over 9 columns, each holding 1–3.
func columnCounts90(r Rand) []int {
	counts := make([]int, cols90)
	for i := range counts {
		counts[i] = 1
	}
	for placed := cols90; placed < rows90*perRow90; {
		c := intn(r, cols90)
		if counts[c] < rows90 {
			counts[c]++
			placed++
		}
	}
	return counts
}

// assignRows90 picks which rows each column occupies so every row ends up
// with exactly perRow90 numbers. Columns are processed fullest-first and
// always take the rows with the most remaining capacity, which cannot get
// stuck.
func assignRows90(r Rand, counts []int) [][]int {
	capacity := [rows90]int{perRow90, perRow90, perRow90}
	rowsFor := make([][]int, cols90)

	order := make([]int, cols90)
	for i := range order {
		order[i] = i
	}
	// fullest columns first; shuffle within equal counts via random tiebreak
	tiebreak := make([]float64, cols90)
	for i := range tiebreak {
		tiebreak[i] = r.Next()
	}
	sort.Slice(order, func(i, j int) bool {
		a, b := order[i], order[j]
		if counts[a] != counts[b] {
			return counts[a] > counts[b]
		}
		return tiebreak[a] > tiebreak[b]
	})

	for _, col := range order {
		picked := make([]int, 0, counts[col])
		for len(picked) < counts[col] {
			best := -1
			for row := 0; row < rows90; row++ {
				if containsInt(picked, row) {
					continue
				}
				if best == -1 || capacity[row] > capacity[best] {
					best = row
				}
			}
			picked = append(picked, best)
			capacity[best]--
		}
		sort.Ints(picked)
		rowsFor[col] = picked
	}
	return rowsFor
}

// Covered reports whether the cell at (row, col) counts toward a pattern:
// a free/blank cell, a marked number, or a number in the called set.
func (c *BingoCard) Covered(row, col int, called map[int]bool) bool {
	n := c.Grid[row][col]
	if n == FreeCell {
		return true
	}
	return c.Marked[n] || called[n]
}

// Has reports whether the card carries the number anywhere.
func (c *BingoCard) Has(n int) bool {
	for _, row := range c.Grid {
		for _, v := range row {
			if v == n {
				return true
			}
		}
	}
	return false
}

// Mark adds a number to the card's marked set if the card carries it.
// Returns whether anything was marked.
func (c *BingoCard) Mark(n int) bool {
	if !c.Has(n) {
		return false
	}
	c.Marked[n] = true
	return true
}

// MatchesPattern reports whether the card satisfies the pattern given the
// called numbers. Shape mismatches never match.
func (c *BingoCard) MatchesPattern(p *BingoPattern, called map[int]bool) bool {
	if p == nil || len(p.Cells) != len(c.Grid) {
		return false
	}
	for row := range p.Cells {
		if len(p.Cells[row]) != len(c.Grid[row]) {
			return false
		}
		for col, need := range p.Cells[row] {
			if need && !c.Covered(row, col, called) {
				return false
			}
		}
	}
	return true
}

// CompletedLines counts fully-covered structural lines: every row, every
// column, and (on square cards) both diagonals.
func (c *BingoCard) CompletedLines(called map[int]bool) int {
	rows := len(c.Grid)
	cols := len(c.Grid[0])
	lines := 0

	for row := 0; row < rows; row++ {
		full := true
		for col := 0; col < cols; col++ {
			if !c.Covered(row, col, called) {
				full = false
				break
			}
		}
		if full {
			lines++
		}
	}
	for col := 0; col < cols; col++ {
		full := true
		for row := 0; row < rows; row++ {
			if !c.Covered(row, col, called) {
				full = false
				break
			}
		}
		if full {
			lines++
		}
	}
	if rows == cols {
		full := true
		for i := 0; i < rows; i++ {
			if !c.Covered(i, i, called) {
				full = false
				break
			}
		}
		if full {
			lines++
		}
		full = true
		for i := 0; i < rows; i++ {
			if !c.Covered(i, rows-1-i, called) {
				full = false
				break
			}
		}
		if full {
			lines++
		}
	}
	return lines
}

// LinePrize computes the payout for the card's current coverage: each
// completed structural line pays linePrize, unless the card satisfies the
// active curated pattern, whose configured payout replaces the line total.
func (c *BingoCard) LinePrize(pattern *BingoPattern, called map[int]bool, linePrize float64) float64 {
	if pattern != nil && c.MatchesPattern(pattern, called) {
		return pattern.Payout
	}
	return float64(c.CompletedLines(called)) * linePrize
}

// BingoCaller draws unique numbers without replacement from [1, max] and
// keeps a bounded recent-call history.
type BingoCaller struct {
	remaining []int
	called    map[int]bool
	recent    []int
	histCap   int
}

// NewBingoCaller prepares a caller over [1, max] (75 or 90). historyCap
// bounds the recent-call list; <= 0 means keep the last 10.
func NewBingoCaller(r Rand, max, historyCap int) *BingoCaller {
	if historyCap <= 0 {
		historyCap = 10
	}
	return &BingoCaller{
		remaining: sample(r, 1, max, max), // full shuffled draw order
		called:    map[int]bool{},
		histCap:   historyCap,
	}
}

// Call draws the next number. ok is false once the pool is exhausted.
func (b *BingoCaller) Call() (n int, ok bool) {
	if len(b.remaining) == 0 {
		return 0, false
	}
	n = b.remaining[0]
	b.remaining = b.remaining[1:]
	b.called[n] = true
	b.recent = append(b.recent, n)
	if len(b.recent) > b.histCap {
		b.recent = b.recent[1:]
	}
	return n, true
}

// Called returns the set of every number drawn so far.
func (b *BingoCaller) Called() map[int]bool { return b.called }

// Recent returns the bounded recent-call history, oldest first.
func (b *BingoCaller) Recent() []int { return b.recent }

// Remaining reports how many numbers are left in the pool.
func (b *BingoCaller) Remaining() int { return len(b.remaining) }

func newGrid(rows, cols int) [][]int {
	g := make([][]int, rows)
	for i := range g {
		g[i] = make([]int, cols)
	}
	return g
}

func containsInt(s []int, v int) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}
