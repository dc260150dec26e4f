package tetris_test

import (
	"errors"
	"testing"

	"github.com/plus3/blockfall/tetris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBoard(width, height int) *tetris.Board {
	b := tetris.NewBoard(width, height)
	b.SetDebug(true)
	return b
}

// recoverUsage runs fn and returns the *UsageError it panicked with.
func recoverUsage(t *testing.T, fn func()) (uerr *tetris.UsageError) {
	t.Helper()
	defer func() {
		r := recover()
		require.NotNil(t, r, "expected a panic")
		err, ok := r.(error)
		require.True(t, ok, "panic value %v is not an error", r)
		require.True(t, errors.As(err, &uerr), "panic value %v is not a UsageError", err)
	}()
	fn()
	return nil
}

type snapshot struct {
	grid      string
	heights   []int
	widths    []int
	maxHeight int
	committed bool
}

func takeSnapshot(b *tetris.Board) snapshot {
	s := snapshot{
		grid:      b.String(),
		maxHeight: b.MaxHeight(),
		committed: b.Committed(),
	}
	for x := 0; x < b.Width(); x++ {
		s.heights = append(s.heights, b.ColumnHeight(x))
	}
	for y := 0; y < b.Height(); y++ {
		s.widths = append(s.widths, b.RowWidth(y))
	}
	return s
}

func TestNewBoard(t *testing.T) {
	b := tetris.NewBoard(10, 20)

	assert.Equal(t, 10, b.Width())
	assert.Equal(t, 20, b.Height())
	assert.Equal(t, 0, b.MaxHeight())
	assert.True(t, b.Committed())
	assert.NoError(t, b.CheckConsistency())

	for x := 0; x < b.Width(); x++ {
		assert.Equal(t, 0, b.ColumnHeight(x))
		for y := 0; y < b.Height(); y++ {
			assert.False(t, b.Filled(x, y))
		}
	}
}

func TestNewBoardBadDimensions(t *testing.T) {
	for _, dims := range [][2]int{{0, 5}, {5, 0}, {-1, 4}} {
		uerr := recoverUsage(t, func() { tetris.NewBoard(dims[0], dims[1]) })
		assert.ErrorIs(t, uerr, tetris.ErrBadDimensions)
	}
}

func TestFilledOutsideIsWall(t *testing.T) {
	b := tetris.NewBoard(3, 3)

	assert.True(t, b.Filled(-1, 0))
	assert.True(t, b.Filled(3, 0))
	assert.True(t, b.Filled(0, -1))
	assert.True(t, b.Filled(0, 3))
	assert.False(t, b.Filled(2, 2))
}

func TestDropHeightEmptyBoard(t *testing.T) {
	b := tetris.NewBoard(10, 20)
	set := tetris.NewPieceSet()

	for _, root := range set.All() {
		for _, p := range set.Rotations(root.Shape()) {
			for x := 0; x+p.Width() <= b.Width(); x++ {
				assert.Equal(t, 0, b.DropHeight(p, x), "%s rotation %d at x=%d", p.Shape(), p.Rotation(), x)
			}
		}
	}
}

func TestDropHeightUsesSkirt(t *testing.T) {
	b := newTestBoard(6, 10)
	set := tetris.NewPieceSet()

	require.Equal(t, tetris.PlaceOK, b.Place(set.Get(tetris.Stick), 0, 0))
	b.Commit()

	assert.Equal(t, 4, b.DropHeight(set.Get(tetris.Pyramid), 0))
	assert.Equal(t, 3, b.DropHeight(set.Get(tetris.S2), 0), "the S2 overhang reaches down over column 0")
	assert.Equal(t, 0, b.DropHeight(set.Get(tetris.Pyramid), 1))

	// L2 rotated once has skirt {1, 1, 0}
	assert.Equal(t, 3, b.DropHeight(set.Get(tetris.L2).FastRotation(), 0))
}

func TestDropHeightOutOfRange(t *testing.T) {
	b := tetris.NewBoard(4, 8)
	pyramid := tetris.Pieces().Get(tetris.Pyramid)

	for _, x := range []int{-1, 4, 2} {
		uerr := recoverUsage(t, func() { b.DropHeight(pyramid, x) })
		assert.ErrorIs(t, uerr, tetris.ErrColumnOutOfRange, "x=%d", x)
		assert.Equal(t, "DropHeight", uerr.Op)
	}
}

func TestStickStacking(t *testing.T) {
	b := newTestBoard(3, 16)
	stick := tetris.Pieces().Get(tetris.Stick)

	require.Equal(t, tetris.PlaceOK, b.Place(stick, 0, 0))
	b.Commit()

	for i := 1; i < 4; i++ {
		assert.Equal(t, tetris.PlaceBad, b.Place(stick, 0, 0), "attempt %d at the same y", i+1)
		b.Undo()

		y := b.DropHeight(stick, 0)
		assert.Equal(t, 4*i, y)
		assert.Equal(t, tetris.PlaceOK, b.Place(stick, 0, y))
		b.Commit()
	}

	assert.Equal(t, 16, b.ColumnHeight(0))
	assert.Equal(t, 16, b.MaxHeight())
	assert.NoError(t, b.CheckConsistency())
}

func TestStickFillsNarrowBoard(t *testing.T) {
	b := newTestBoard(1, 4)

	assert.Equal(t, tetris.PlaceRowFilled, b.Place(tetris.Pieces().Get(tetris.Stick), 0, 0))
	assert.Equal(t, 4, b.ColumnHeight(0))
	assert.Equal(t, 4, b.ClearRows())
	b.Commit()

	assert.Equal(t, 0, b.MaxHeight())
	assert.Equal(t, 0, b.ColumnHeight(0))
}

func TestRowFilledOnLastCell(t *testing.T) {
	b := newTestBoard(6, 6)
	square := tetris.Pieces().Get(tetris.Square)

	assert.Equal(t, tetris.PlaceOK, b.Place(square, 0, 0))
	b.Commit()
	assert.Equal(t, tetris.PlaceOK, b.Place(square, 2, 0))
	b.Commit()
	assert.Equal(t, 4, b.RowWidth(0))

	assert.Equal(t, tetris.PlaceRowFilled, b.Place(square, 4, 0))
	b.Commit()
	assert.Equal(t, 6, b.RowWidth(0))
	assert.Equal(t, 6, b.RowWidth(1))
}

func TestPlaceOutOfBounds(t *testing.T) {
	set := tetris.Pieces()
	tests := []struct {
		name  string
		shape tetris.Shape
		x, y  int
	}{
		{"left", tetris.Square, -1, 0},
		{"right", tetris.Pyramid, 2, 0},
		{"below", tetris.Square, 0, -1},
		{"above", tetris.Stick, 0, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newTestBoard(4, 6)
			before := takeSnapshot(b)

			assert.Equal(t, tetris.PlaceOutOfBounds, b.Place(set.Get(tt.shape), tt.x, tt.y))
			assert.False(t, b.Committed())

			b.Undo()
			assert.Equal(t, before, takeSnapshot(b))
		})
	}
}

func TestPlaceRequiresCommit(t *testing.T) {
	b := tetris.NewBoard(4, 6)
	square := tetris.Pieces().Get(tetris.Square)

	b.Place(square, 0, 0)

	uerr := recoverUsage(t, func() { b.Place(square, 2, 0) })
	assert.ErrorIs(t, uerr, tetris.ErrUncommitted)
	assert.Equal(t, "Place", uerr.Op)
	assert.Contains(t, uerr.Error(), "not committed")

	b.Commit()
	assert.Equal(t, tetris.PlaceOK, b.Place(square, 2, 0))
}

func TestFloatingPlacementIsAccepted(t *testing.T) {
	b := newTestBoard(4, 8)

	assert.Equal(t, tetris.PlaceOK, b.Place(tetris.Pieces().Get(tetris.Square), 1, 3))
	b.Commit()

	assert.Equal(t, 5, b.ColumnHeight(1))
	assert.Equal(t, 0, b.ColumnHeight(0))
	assert.Equal(t, 5, b.MaxHeight())
	assert.Equal(t, 0, b.RowWidth(0))
	assert.Equal(t, 2, b.RowWidth(3))
}

func TestClearRowsUnderFloatingPiece(t *testing.T) {
	b := newTestBoard(2, 4)

	// a square hovering over an empty row fills rows 1 and 2
	require.Equal(t, tetris.PlaceRowFilled, b.Place(tetris.Pieces().Get(tetris.Square), 0, 1))
	assert.Equal(t, 3, b.MaxHeight())

	assert.Equal(t, 2, b.ClearRows())
	assert.Equal(t, 0, b.MaxHeight(), "max height follows the columns, not the cleared count")
	assert.Equal(t, 0, b.ColumnHeight(0))
	assert.Equal(t, 0, b.ColumnHeight(1))
	require.NoError(t, b.CheckConsistency())

	b.Commit()
	assert.Equal(t, "|  |\n|  |\n|  |\n|  |\n----", b.String())
}

func TestUndoRestoresPreviousState(t *testing.T) {
	set := tetris.Pieces()
	b := newTestBoard(6, 8)

	require.Equal(t, tetris.PlaceOK, b.Place(set.Get(tetris.L1), 0, 0))
	b.Commit()
	before := takeSnapshot(b)

	t.Run("successful place", func(t *testing.T) {
		require.Equal(t, tetris.PlaceOK, b.Place(set.Get(tetris.Pyramid), 2, 0))
		require.NotEqual(t, before, takeSnapshot(b))
		b.Undo()
		assert.Equal(t, before, takeSnapshot(b))
	})

	t.Run("rejected place", func(t *testing.T) {
		require.Equal(t, tetris.PlaceBad, b.Place(set.Get(tetris.Square), 0, 1))
		b.Undo()
		assert.Equal(t, before, takeSnapshot(b))
	})

	t.Run("undo when committed is a no-op", func(t *testing.T) {
		b.Undo()
		b.Undo()
		assert.Equal(t, before, takeSnapshot(b))
	})

	t.Run("commit keeps the mutation", func(t *testing.T) {
		require.Equal(t, tetris.PlaceOK, b.Place(set.Get(tetris.Square), 3, 0))
		b.Commit()
		b.Undo()
		assert.True(t, b.Filled(3, 0))
		assert.True(t, b.Filled(4, 1))
	})
}

func TestClearRowsShiftsRowsDown(t *testing.T) {
	set := tetris.Pieces()
	b := newTestBoard(5, 8)

	require.Equal(t, tetris.PlaceOK, b.Place(set.Get(tetris.Stick), 0, 0))
	b.Commit()
	require.Equal(t, tetris.PlaceRowFilled, b.Place(set.Get(tetris.Stick).FastRotation(), 1, 0))
	b.Commit()
	require.Equal(t, tetris.PlaceOK, b.Place(set.Get(tetris.Square), 3, 1))
	b.Commit()
	require.Equal(t, 4, b.MaxHeight())

	assert.Equal(t, 1, b.ClearRows())
	b.Commit()

	assert.Equal(t, 3, b.MaxHeight())
	assert.Equal(t, []int{3, 0, 0, 2, 2}, takeSnapshot(b).heights)
	assert.Equal(t, []int{3, 3, 1, 0, 0, 0, 0, 0}, takeSnapshot(b).widths)

	want := "" +
		"|     |\n" +
		"|     |\n" +
		"|     |\n" +
		"|     |\n" +
		"|     |\n" +
		"|+    |\n" +
		"|+  ++|\n" +
		"|+  ++|\n" +
		"-------"
	assert.Equal(t, want, b.String())
}

func TestClearRowsNonContiguous(t *testing.T) {
	b := newTestBoard(2, 6)
	comb := tetris.MustParsePiece("0 0 1 0  0 1  0 2 1 2  0 3")

	require.Equal(t, tetris.PlaceRowFilled, b.Place(comb, 0, 0))
	assert.Equal(t, 2, b.ClearRows())
	b.Commit()

	assert.Equal(t, 2, b.MaxHeight())
	assert.Equal(t, 2, b.ColumnHeight(0))
	assert.Equal(t, 0, b.ColumnHeight(1))
	assert.Equal(t, 1, b.RowWidth(0))
	assert.Equal(t, 1, b.RowWidth(1))
	assert.Equal(t, 0, b.RowWidth(2))
}

func TestClearRowsWithoutFullRows(t *testing.T) {
	b := newTestBoard(4, 6)
	require.Equal(t, tetris.PlaceOK, b.Place(tetris.Pieces().Get(tetris.Pyramid), 0, 0))
	b.Commit()
	before := takeSnapshot(b)

	assert.Equal(t, 0, b.ClearRows())
	assert.False(t, b.Committed(), "ClearRows opens a transaction even when nothing is cleared")
	b.Commit()

	assert.Equal(t, before, takeSnapshot(b))
}

func TestPlaceAndClearUndoTogether(t *testing.T) {
	set := tetris.Pieces()
	b := newTestBoard(4, 6)

	require.Equal(t, tetris.PlaceOK, b.Place(set.Get(tetris.Square), 0, 0))
	b.Commit()
	before := takeSnapshot(b)

	require.Equal(t, tetris.PlaceRowFilled, b.Place(set.Get(tetris.Square), 2, 0))
	require.Equal(t, 2, b.ClearRows())
	require.Equal(t, 0, b.MaxHeight())

	b.Undo()
	assert.Equal(t, before, takeSnapshot(b))
}

func TestStandaloneClearRowsIsUndoable(t *testing.T) {
	set := tetris.Pieces()
	b := newTestBoard(4, 6)

	b.Place(set.Get(tetris.Square), 0, 0)
	b.Commit()
	require.Equal(t, tetris.PlaceRowFilled, b.Place(set.Get(tetris.Square), 2, 0))
	b.Commit()
	filled := takeSnapshot(b)

	require.Equal(t, 2, b.ClearRows())
	assert.False(t, b.Committed())
	b.Undo()

	assert.Equal(t, filled, takeSnapshot(b))
}

func TestCloneIsIndependent(t *testing.T) {
	b := newTestBoard(4, 6)
	b.Place(tetris.Pieces().Get(tetris.Square), 0, 0)

	c := b.Clone()
	assert.Equal(t, takeSnapshot(b), takeSnapshot(c))

	c.Undo()
	assert.Equal(t, 0, c.MaxHeight())
	assert.Equal(t, 2, b.MaxHeight())
	assert.False(t, b.Committed())
}

func TestBoardString(t *testing.T) {
	b := tetris.NewBoard(3, 2)
	b.Place(tetris.Pieces().Get(tetris.Square), 0, 0)

	assert.Equal(t, "|++ |\n|++ |\n-----", b.String())
}

func TestPlaceResult(t *testing.T) {
	assert.False(t, tetris.PlaceOK.Failed())
	assert.False(t, tetris.PlaceRowFilled.Failed())
	assert.True(t, tetris.PlaceOutOfBounds.Failed())
	assert.True(t, tetris.PlaceBad.Failed())

	assert.Equal(t, "RowFilled", tetris.PlaceRowFilled.String())
	assert.Equal(t, "OutOfBounds", tetris.PlaceOutOfBounds.String())
}
