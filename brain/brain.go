// Package brain chooses where a piece should land. Brains only read the
// board: every placement they try is undone before they return.
package brain

import (
	"github.com/kamstrup/intmap"
	"github.com/plus3/blockfall/tetris"
)

// Move is a candidate placement. Lower scores are better.
type Move struct {
	X, Y  int
	Piece *tetris.Piece
	Score float64
}

// Brain picks the best placement of piece on board. The board must be
// committed and is returned committed and unchanged. limitHeight is the
// height the landed piece must stay within; ok is false when no placement
// fits.
type Brain interface {
	BestMove(board *tetris.Board, piece *tetris.Piece, limitHeight int) (move Move, ok bool)
}

// Weights are the coefficients of RateBoard.
type Weights struct {
	MaxHeight float64
	AvgHeight float64
	Holes     float64
}

// DefaultWeights returns the classic 8 / 40 / 1.25 weighting.
func DefaultWeights() Weights {
	return Weights{MaxHeight: 8, AvgHeight: 40, Holes: 1.25}
}

// RateBoard scores a board, lower is better. Holes are empty cells below the
// top of their column.
func (w Weights) RateBoard(board *tetris.Board) float64 {
	sumHeight := 0
	holes := 0
	for x := 0; x < board.Width(); x++ {
		h := board.ColumnHeight(x)
		sumHeight += h
		for y := h - 2; y >= 0; y-- {
			if !board.Filled(x, y) {
				holes++
			}
		}
	}
	avgHeight := float64(sumHeight) / float64(board.Width())
	return w.MaxHeight*float64(board.MaxHeight()) + w.AvgHeight*avgHeight + w.Holes*float64(holes)
}

// Evaluation is the outcome of trying every rotation at every column.
type Evaluation struct {
	Best   Move
	Found  bool
	Tried  int
	scores *intmap.Map[uint32, float64]
}

func scoreKey(rotation, x int) uint32 {
	return uint32(rotation)<<16 | uint32(uint16(x))
}

// Score returns the rating of the placement at column x of the piece turned
// counter-clockwise rotation times, if that placement was legal.
func (e *Evaluation) Score(rotation, x int) (float64, bool) {
	return e.scores.Get(scoreKey(rotation, x))
}

// Len returns the number of legal placements that were rated.
func (e *Evaluation) Len() int {
	return e.scores.Len()
}

// LameBrain drops every rotation of the piece straight down at every column
// and keeps the placement with the lowest RateBoard score. Ties keep the
// first placement found.
type LameBrain struct {
	Weights Weights
}

// NewLameBrain returns a LameBrain with the default weights.
func NewLameBrain() *LameBrain {
	return &LameBrain{Weights: DefaultWeights()}
}

// BestMove implements Brain.
func (b *LameBrain) BestMove(board *tetris.Board, piece *tetris.Piece, limitHeight int) (Move, bool) {
	e := b.Evaluate(board, piece, limitHeight)
	return e.Best, e.Found
}

// Evaluate rates every legal straight-down placement of piece.
func (b *LameBrain) Evaluate(board *tetris.Board, piece *tetris.Piece, limitHeight int) *Evaluation {
	e := &Evaluation{scores: intmap.New[uint32, float64](64)}

	for r, p := range Rotations(piece) {
		for x := 0; x+p.Width() <= board.Width(); x++ {
			y := board.DropHeight(p, x)
			if y+p.Height() > limitHeight {
				continue
			}

			e.Tried++
			result := board.Place(p, x, y)
			if !result.Failed() {
				if result == tetris.PlaceRowFilled {
					board.ClearRows()
				}
				score := b.Weights.RateBoard(board)
				e.scores.Put(scoreKey(r, x), score)
				if !e.Found || score < e.Best.Score {
					e.Best = Move{X: x, Y: y, Piece: p, Score: score}
					e.Found = true
				}
			}
			board.Undo()
		}
	}
	return e
}

// Rotations returns the distinct rotations of piece starting with piece
// itself. Linked pieces follow their precomputed cycle; ad-hoc pieces are
// rotated until they repeat.
func Rotations(piece *tetris.Piece) []*tetris.Piece {
	rots := []*tetris.Piece{piece}
	if piece.FastRotation() != nil {
		for p := piece.FastRotation(); p != piece; p = p.FastRotation() {
			rots = append(rots, p)
		}
		return rots
	}

	for p := piece.ComputeNextRotation(); !p.Equal(piece) && len(rots) < 4; p = p.ComputeNextRotation() {
		rots = append(rots, p)
	}
	return rots
}
