// Package game drives a tetris.Board: Game lets a brain.Brain play on its
// own, Interactive moves a falling piece in response to player actions.
package game

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/plus3/blockfall/brain"
	"github.com/plus3/blockfall/tetris"
	"github.com/sirupsen/logrus"
)

// ErrGameOver is returned once the stack can no longer take a piece.
var ErrGameOver = errors.New("game over")

// heightHistory is how many recent stack heights Stats keeps.
const heightHistory = 120

// StepResult describes one piece placed by Game.Once.
type StepResult struct {
	Piece       *tetris.Piece
	Move        brain.Move
	Result      tetris.PlaceResult
	RowsCleared int
}

// StepStats holds timing for Game.Once calls. Every call of a running game
// counts, including the one that ends it, so Count is one more than
// Stats.Pieces when the last piece found no place to land.
type StepStats struct {
	Count int64
	Min   time.Duration
	Max   time.Duration
	Avg   time.Duration
	Last  time.Duration
	Total time.Duration
}

// Stats summarizes a game so far.
type Stats struct {
	Pieces      int64
	RowsCleared int64
	// Clears[n] counts placements that cleared exactly n rows.
	Clears    [5]int64
	MaxHeight int
	// Heights holds the stack height after each of the most recent pieces,
	// oldest first.
	Heights []float32
	Steps   StepStats
}

func (s *Stats) record(rows, height int) {
	s.Pieces++
	s.RowsCleared += int64(rows)
	if rows < len(s.Clears) {
		s.Clears[rows]++
	}
	if height > s.MaxHeight {
		s.MaxHeight = height
	}
	if len(s.Heights) == heightHistory {
		copy(s.Heights, s.Heights[1:])
		s.Heights = s.Heights[:heightHistory-1]
	}
	s.Heights = append(s.Heights, float32(height))
}

func (s *StepStats) record(d time.Duration) {
	s.Count++
	s.Last = d
	s.Total += d
	if s.Count == 1 || d < s.Min {
		s.Min = d
	}
	if d > s.Max {
		s.Max = d
	}
	s.Avg = s.Total / time.Duration(s.Count)
}

// Game is a board played by a brain, one piece per step.
type Game struct {
	cfg    Config
	log    logrus.FieldLogger
	brain  brain.Brain
	dealer *dealer
	board  *tetris.Board
	next   *tetris.Piece
	over   bool
	stats  Stats
}

// New validates cfg and sets up an empty board.
func New(cfg Config) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}

	b := cfg.brain()
	g := &Game{
		cfg:    cfg,
		log:    cfg.logger(),
		brain:  b,
		dealer: newDealer(cfg, b),
	}
	g.Reset()
	return g, nil
}

// Reset clears the board and statistics and restarts the piece sequence.
func (g *Game) Reset() {
	g.board = tetris.NewBoard(g.cfg.Width, g.cfg.Height)
	g.board.SetDebug(g.cfg.Debug)
	g.dealer.reset()
	g.next = g.dealer.deal(g.board)
	g.over = false
	g.stats = Stats{}
	g.log.WithFields(logrus.Fields{
		"width":  g.cfg.Width,
		"height": g.cfg.Height,
		"seed":   g.dealer.seed,
	}).Debug("new game")
}

// Board returns the live board. It is committed between steps and must not
// be mutated by the caller.
func (g *Game) Board() *tetris.Board {
	return g.board
}

// Next returns the piece the following step will place.
func (g *Game) Next() *tetris.Piece {
	return g.next
}

// Seed returns the seed the piece sequence was drawn from.
func (g *Game) Seed() uint64 {
	return g.dealer.seed
}

// Over reports whether the game has ended.
func (g *Game) Over() bool {
	return g.over
}

// Config returns the configuration the game was created with.
func (g *Game) Config() Config {
	return g.cfg
}

// Stats returns a snapshot of the game statistics.
func (g *Game) Stats() Stats {
	s := g.stats
	s.Heights = append([]float32(nil), g.stats.Heights...)
	return s
}

// Once places the next piece where the brain wants it and clears any full
// rows. It returns ErrGameOver when the brain finds no placement, when the
// placement is rejected or when the landed stack rises above the limit
// height.
func (g *Game) Once() (StepResult, error) {
	if g.over {
		return StepResult{}, ErrGameOver
	}

	start := time.Now()
	defer func() { g.stats.Steps.record(time.Since(start)) }()

	piece := g.next
	step := StepResult{Piece: piece}

	move, ok := g.brain.BestMove(g.board, piece, g.cfg.LimitHeight())
	if !ok {
		g.end("no placement", piece)
		return step, ErrGameOver
	}
	step.Move = move

	step.Result = g.board.Place(move.Piece, move.X, move.Y)
	if step.Result.Failed() {
		g.board.Undo()
		g.end("placement rejected", piece)
		return step, ErrGameOver
	}
	if step.Result == tetris.PlaceRowFilled {
		step.RowsCleared = g.board.ClearRows()
	}
	g.board.Commit()
	g.stats.record(step.RowsCleared, g.board.MaxHeight())

	g.log.WithFields(logrus.Fields{
		"piece":  move.Piece.Shape(),
		"x":      move.X,
		"y":      move.Y,
		"result": step.Result,
		"rows":   step.RowsCleared,
	}).Debug("piece placed")

	if g.board.MaxHeight() > g.cfg.LimitHeight() {
		g.end("stack above limit", piece)
		return step, ErrGameOver
	}
	g.next = g.dealer.deal(g.board)
	return step, nil
}

func (g *Game) end(reason string, piece *tetris.Piece) {
	g.over = true
	g.log.WithFields(logrus.Fields{
		"reason": reason,
		"piece":  piece.Shape(),
		"pieces": g.stats.Pieces,
		"rows":   g.stats.RowsCleared,
	}).Info("game over")
}

// Run steps the game at the given interval until ctx is cancelled, in which
// case it returns nil, or the game ends, in which case it returns
// ErrGameOver.
func (g *Game) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if _, err := g.Once(); err != nil {
				return err
			}
		}
	}
}

// Play steps the game back to back until it ends or ctx is cancelled.
func (g *Game) Play(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := g.Once(); err != nil {
			return err
		}
	}
}
