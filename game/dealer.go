package game

import (
	"math/rand/v2"

	"github.com/plus3/blockfall/brain"
	"github.com/plus3/blockfall/tetris"
)

// dealer hands out root pieces, either from a fixed sequence or at random.
// With an adversary percentage it sometimes deals the piece the brain does
// worst with instead.
type dealer struct {
	pieces   *tetris.PieceSet
	sequence []tetris.Shape
	rng      *rand.Rand
	seed     uint64
	next     int

	brain     brain.Brain
	adversary int
	limit     int
}

func newDealer(cfg Config, b brain.Brain) *dealer {
	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	d := &dealer{
		pieces:    cfg.pieces(),
		sequence:  cfg.Sequence,
		seed:      seed,
		brain:     b,
		adversary: cfg.Adversary,
		limit:     cfg.LimitHeight(),
	}
	d.reset()
	return d
}

func (d *dealer) reset() {
	d.rng = rand.New(rand.NewPCG(d.seed, d.seed^0x9e3779b97f4a7c15))
	d.next = 0
}

// deal picks the next piece for board, which must be committed.
func (d *dealer) deal(board *tetris.Board) *tetris.Piece {
	if len(d.sequence) > 0 {
		shape := d.sequence[d.next%len(d.sequence)]
		d.next++
		return d.pieces.Get(shape)
	}
	if d.adversary > 0 && d.rng.IntN(100) < d.adversary {
		if p := d.worst(board); p != nil {
			return p
		}
	}
	return d.pieces.Get(tetris.Shape(d.rng.IntN(d.pieces.Len())))
}

// worst returns the piece whose best move scores highest. It returns nil
// when some piece has no move at all.
func (d *dealer) worst(board *tetris.Board) *tetris.Piece {
	var (
		worst      *tetris.Piece
		worstScore float64
	)
	for _, p := range d.pieces.All() {
		move, ok := d.brain.BestMove(board, p, d.limit)
		if !ok {
			return nil
		}
		if worst == nil || move.Score > worstScore {
			worst, worstScore = p, move.Score
		}
	}
	return worst
}
