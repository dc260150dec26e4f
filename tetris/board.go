// Package tetris implements the rules of a falling-block puzzle: pieces with
// precomputed rotations and a board that validates placements, clears full
// rows and can undo its latest transaction.
package tetris

//go:generate go tool stringer -type=PlaceResult -trimprefix=Place

// PlaceResult is the outcome of Board.Place.
type PlaceResult int

const (
	// PlaceOK means the piece was stamped into the grid.
	PlaceOK PlaceResult = iota
	// PlaceRowFilled means the piece was stamped and completed at least one row.
	PlaceRowFilled
	// PlaceOutOfBounds means part of the piece would lie outside the board.
	PlaceOutOfBounds
	// PlaceBad means the piece would overlap filled cells.
	PlaceBad
)

// Failed reports whether the placement was rejected.
func (r PlaceResult) Failed() bool {
	return r >= PlaceOutOfBounds
}

// boardState is everything Undo has to restore.
type boardState struct {
	grid         []bool // column major: grid[x*height+y]
	columnHeight []int
	rowWidth     []int
	maxHeight    int
}

func newBoardState(width, height int) boardState {
	return boardState{
		grid:         make([]bool, width*height),
		columnHeight: make([]int, width),
		rowWidth:     make([]int, height),
	}
}

func (s *boardState) copyFrom(src *boardState) {
	copy(s.grid, src.grid)
	copy(s.columnHeight, src.columnHeight)
	copy(s.rowWidth, src.rowWidth)
	s.maxHeight = src.maxHeight
}

// Board is a width x height occupancy grid with per-column heights and
// per-row widths kept in step with it.
//
// Mutations follow a transaction discipline: Place (optionally followed by
// ClearRows) leaves the board uncommitted, and exactly one Commit or Undo
// must follow before the next Place. Only one checkpoint is kept, so Undo
// reverts the latest transaction only.
//
// A Board is not safe for concurrent use.
type Board struct {
	width     int
	height    int
	cur       boardState
	backup    boardState
	committed bool
	debug     bool
}

// NewBoard creates an empty, committed board.
func NewBoard(width, height int) *Board {
	if width <= 0 || height <= 0 {
		usagePanic("NewBoard", ErrBadDimensions)
	}
	return &Board{
		width:     width,
		height:    height,
		cur:       newBoardState(width, height),
		backup:    newBoardState(width, height),
		committed: true,
	}
}

// SetDebug enables the consistency check after every Place, ClearRows and
// Undo. A failing check panics with a *ConsistencyError.
func (b *Board) SetDebug(enabled bool) {
	b.debug = enabled
}

// Width returns the width of the board in cells.
func (b *Board) Width() int {
	return b.width
}

// Height returns the height of the board in cells.
func (b *Board) Height() int {
	return b.height
}

// MaxHeight returns the tallest column height, 0 for an empty board.
func (b *Board) MaxHeight() int {
	return b.cur.maxHeight
}

// ColumnHeight returns one more than the y of the highest filled cell in
// column x, or 0 if the column is empty.
func (b *Board) ColumnHeight(x int) int {
	return b.cur.columnHeight[x]
}

// RowWidth returns the number of filled cells in row y.
func (b *Board) RowWidth(y int) int {
	return b.cur.rowWidth[y]
}

// Filled reports whether the cell at (x, y) is occupied. Cells outside the
// board count as filled.
func (b *Board) Filled(x, y int) bool {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return true
	}
	return b.cur.grid[x*b.height+y]
}

// Committed reports whether the board has no pending mutation.
func (b *Board) Committed() bool {
	return b.committed
}

// DropHeight returns the y at which the piece comes to rest when dropped
// straight down with its left edge at column x. The piece must fit
// horizontally: x >= 0 and x+piece.Width() <= Width().
func (b *Board) DropHeight(piece *Piece, x int) int {
	if x < 0 || x >= b.width || x+piece.width > b.width {
		usagePanic("DropHeight", ErrColumnOutOfRange)
	}

	y := 0
	for i, s := range piece.skirt {
		if stop := b.cur.columnHeight[x+i] - s; stop > y {
			y = stop
		}
	}
	return y
}

func (b *Board) inBounds(piece *Piece, x, y int) bool {
	return x >= 0 && x+piece.width <= b.width && y >= 0 && y+piece.height <= b.height
}

// Place stamps the piece into the grid with its origin at (x, y).
//
// The board must be committed; Place panics with ErrUncommitted otherwise.
// The board becomes uncommitted even when the placement is rejected, and
// the caller is expected to Undo after PlaceOutOfBounds or PlaceBad.
//
// Only overlap with cells beneath the piece is checked: a y above the drop
// height leaves the piece floating.
func (b *Board) Place(piece *Piece, x, y int) PlaceResult {
	if !b.committed {
		usagePanic("Place", ErrUncommitted)
	}
	b.committed = false
	b.backup.copyFrom(&b.cur)

	if !b.inBounds(piece, x, y) {
		return PlaceOutOfBounds
	}
	if y < b.DropHeight(piece, x) {
		return PlaceBad
	}

	result := PlaceOK
	s := &b.cur
	for _, pt := range piece.body {
		cx, cy := x+pt.X, y+pt.Y

		s.grid[cx*b.height+cy] = true
		if cy+1 > s.columnHeight[cx] {
			s.columnHeight[cx] = cy + 1
		}
		if cy+1 > s.maxHeight {
			s.maxHeight = cy + 1
		}
		s.rowWidth[cy]++
		if s.rowWidth[cy] == b.width {
			result = PlaceRowFilled
		}
	}

	b.check()
	return result
}

// ClearRows removes every full row, moving the rows above it down, and
// returns the number of rows removed. A ClearRows that directly follows a
// Place belongs to the same transaction and is undone with it.
func (b *Board) ClearRows() int {
	if b.committed {
		b.backup.copyFrom(&b.cur)
	}
	b.committed = false

	s := &b.cur
	cleared := 0
	for y := 0; y < s.maxHeight; y++ {
		if s.rowWidth[y] == b.width {
			b.clearRow(y)
			cleared++
		} else if cleared > 0 {
			b.moveRow(y, y-cleared)
		}
	}

	if cleared > 0 {
		b.recomputeHeights()
	}

	b.check()
	return cleared
}

func (b *Board) clearRow(y int) {
	for x := 0; x < b.width; x++ {
		b.cur.grid[x*b.height+y] = false
	}
	b.cur.rowWidth[y] = 0
}

func (b *Board) moveRow(from, to int) {
	s := &b.cur
	for x := 0; x < b.width; x++ {
		col := x * b.height
		s.grid[col+to] = s.grid[col+from]
		s.grid[col+from] = false
	}
	s.rowWidth[to] = s.rowWidth[from]
	s.rowWidth[from] = 0
}

// recomputeHeights rebuilds column heights and the max height from the grid.
func (b *Board) recomputeHeights() {
	s := &b.cur
	s.maxHeight = 0
	for x := 0; x < b.width; x++ {
		h := b.scanColumn(x)
		s.columnHeight[x] = h
		if h > s.maxHeight {
			s.maxHeight = h
		}
	}
}

func (b *Board) scanColumn(x int) int {
	col := b.cur.grid[x*b.height : (x+1)*b.height]
	for y := b.height - 1; y >= 0; y-- {
		if col[y] {
			return y + 1
		}
	}
	return 0
}

// Undo reverts the pending transaction. It does nothing on a committed board.
func (b *Board) Undo() {
	if b.committed {
		return
	}
	b.cur.copyFrom(&b.backup)
	b.committed = true
	b.check()
}

// Commit accepts the pending transaction.
func (b *Board) Commit() {
	b.committed = true
}

// Clone returns a deep copy of the board, including its checkpoint.
func (b *Board) Clone() *Board {
	c := NewBoard(b.width, b.height)
	c.cur.copyFrom(&b.cur)
	c.backup.copyFrom(&b.backup)
	c.committed = b.committed
	c.debug = b.debug
	return c
}
