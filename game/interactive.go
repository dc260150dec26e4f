package game

import (
	"fmt"

	"github.com/plus3/blockfall/tetris"
	"github.com/sirupsen/logrus"
)

//go:generate go tool stringer -type=Action -trimprefix=Action

// Action is a player input applied to the falling piece.
type Action int

const (
	ActionLeft Action = iota
	ActionRight
	ActionRotate
	ActionDrop
	ActionDown
)

// Outcome reports what an Action did.
type Outcome struct {
	// Moved is set when the piece took up its new position.
	Moved bool
	// Landed is set when the piece came to rest and the next piece spawned.
	Landed      bool
	RowsCleared int
}

// Interactive keeps one falling piece on the board. The falling piece is
// always placed but never committed; everything below it is committed.
type Interactive struct {
	cfg    Config
	log    logrus.FieldLogger
	dealer *dealer
	board  *tetris.Board

	cur  *tetris.Piece
	x, y int
	over bool

	pieces int64
	rows   int64
	// serial counts spawned pieces and survives Reset.
	serial int64
}

// NewInteractive validates cfg and spawns the first piece.
func NewInteractive(cfg Config) (*Interactive, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}

	s := &Interactive{
		cfg:    cfg,
		log:    cfg.logger(),
		dealer: newDealer(cfg, cfg.brain()),
	}
	s.Reset()
	return s, nil
}

// Reset empties the board and spawns a new first piece.
func (s *Interactive) Reset() {
	s.board = tetris.NewBoard(s.cfg.Width, s.cfg.Height)
	s.board.SetDebug(s.cfg.Debug)
	s.dealer.reset()
	s.over = false
	s.pieces, s.rows = 0, 0
	s.spawn()
}

// Board returns the live board, falling piece included.
func (s *Interactive) Board() *tetris.Board {
	return s.board
}

// Current returns the falling piece and its origin. The piece is nil once
// the game is over.
func (s *Interactive) Current() (piece *tetris.Piece, x, y int) {
	return s.cur, s.x, s.y
}

// Config returns the configuration the game was created with.
func (s *Interactive) Config() Config {
	return s.cfg
}

// Over reports whether the game has ended.
func (s *Interactive) Over() bool {
	return s.over
}

// Pieces returns the number of pieces that have landed.
func (s *Interactive) Pieces() int64 {
	return s.pieces
}

// RowsCleared returns the total number of rows cleared.
func (s *Interactive) RowsCleared() int64 {
	return s.rows
}

// spawn places a new piece centered at the top of a committed board.
func (s *Interactive) spawn() {
	p := s.dealer.deal(s.board)
	s.serial++
	x := (s.board.Width() - p.Width()) / 2
	y := s.board.Height() - p.Height()

	if s.board.Place(p, x, y).Failed() {
		s.board.Undo()
		s.cur = nil
		s.over = true
		s.log.WithFields(logrus.Fields{
			"piece":  p.Shape(),
			"pieces": s.pieces,
			"rows":   s.rows,
		}).Info("game over")
		return
	}
	s.cur, s.x, s.y = p, x, y
}

// candidate computes where action would take the falling piece. The board
// must not hold the falling piece.
func (s *Interactive) candidate(action Action) (*tetris.Piece, int, int) {
	p, x, y := s.cur, s.x, s.y
	switch action {
	case ActionLeft:
		x--
	case ActionRight:
		x++
	case ActionDown:
		y--
	case ActionRotate:
		p = p.FastRotation()
		if p == nil {
			p = s.cur.ComputeNextRotation()
		}
		x += (s.cur.Width() - p.Width()) / 2
		y += (s.cur.Height() - p.Height()) / 2
	case ActionDrop:
		if x >= 0 && x+p.Width() <= s.board.Width() {
			y = min(y, s.board.DropHeight(p, x))
		}
	}
	return p, x, y
}

// Apply moves the falling piece. A move that is rejected leaves the piece
// where it was; a rejected ActionDown, and every ActionDrop, lands it. It
// returns ErrGameOver once the next piece cannot spawn.
func (s *Interactive) Apply(action Action) (Outcome, error) {
	if action < ActionLeft || action > ActionDown {
		return Outcome{}, fmt.Errorf("game: unknown action %d", int(action))
	}
	if s.over {
		return Outcome{}, ErrGameOver
	}

	s.board.Undo()
	p, x, y := s.candidate(action)

	var out Outcome
	if !s.board.Place(p, x, y).Failed() {
		s.cur, s.x, s.y = p, x, y
		out.Moved = true
		if action != ActionDrop {
			return out, nil
		}
	} else {
		s.board.Undo()
		s.board.Place(s.cur, s.x, s.y)
		if action != ActionDown {
			return out, nil
		}
	}

	out.Landed = true
	out.RowsCleared = s.land()
	if s.over {
		return out, ErrGameOver
	}
	return out, nil
}

// land settles the falling piece, which is placed but uncommitted.
func (s *Interactive) land() int {
	rows := s.board.ClearRows()
	s.board.Commit()
	s.pieces++
	s.rows += int64(rows)

	s.log.WithFields(logrus.Fields{
		"piece": s.cur.Shape(),
		"x":     s.x,
		"y":     s.y,
		"rows":  rows,
	}).Debug("piece landed")

	if s.board.MaxHeight() > s.cfg.LimitHeight() {
		s.cur = nil
		s.over = true
		s.log.WithFields(logrus.Fields{
			"reason": "stack above limit",
			"pieces": s.pieces,
			"rows":   s.rows,
		}).Info("game over")
		return rows
	}
	s.spawn()
	return rows
}
