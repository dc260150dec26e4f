package game

import (
	"github.com/plus3/blockfall/brain"
	"github.com/sirupsen/logrus"
)

// Autopilot lets a brain steer the falling piece of an Interactive game
// the way a player would: at most one rotation and one sideways step per
// tick, followed by a step down.
type Autopilot struct {
	game  *Interactive
	brain brain.Brain

	serial  int64
	goal    brain.Move
	hasGoal bool
}

// NewAutopilot steers s with b. A nil b uses the brain from the game's
// Config.
func NewAutopilot(s *Interactive, b brain.Brain) *Autopilot {
	if b == nil {
		b = s.cfg.brain()
	}
	return &Autopilot{game: s, brain: b}
}

// Goal returns the placement the brain is steering the current piece to.
func (a *Autopilot) Goal() (brain.Move, bool) {
	return a.goal, a.hasGoal && a.serial == a.game.serial
}

// Tick plays one gravity step. The move is planned once per piece, on the
// board without the falling piece. Without a plan the piece just falls.
func (a *Autopilot) Tick() (Outcome, error) {
	s := a.game
	if s.over {
		return Outcome{}, ErrGameOver
	}
	if a.serial != s.serial {
		a.plan()
	}

	if a.hasGoal {
		if !s.cur.Equal(a.goal.Piece) {
			if _, err := s.Apply(ActionRotate); err != nil {
				return Outcome{}, err
			}
		}
		var err error
		switch {
		case a.goal.X < s.x:
			_, err = s.Apply(ActionLeft)
		case a.goal.X > s.x:
			_, err = s.Apply(ActionRight)
		}
		if err != nil {
			return Outcome{}, err
		}
	}
	return s.Apply(ActionDown)
}

func (a *Autopilot) plan() {
	s := a.game
	a.serial = s.serial

	s.board.Undo()
	a.goal, a.hasGoal = a.brain.BestMove(s.board, s.cur, s.cfg.LimitHeight())
	s.board.Place(s.cur, s.x, s.y)

	if !a.hasGoal {
		s.log.WithField("piece", s.cur.Shape()).Debug("autopilot found no move")
		return
	}
	s.log.WithFields(logrus.Fields{
		"piece":    s.cur.Shape(),
		"x":        a.goal.X,
		"rotation": a.goal.Piece.Rotation(),
	}).Debug("autopilot goal")
}
