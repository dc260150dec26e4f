package main

import (
	"errors"

	"github.com/plus3/blockfall/game"
	"github.com/plus3/blockfall/tetris"
)

// session is the part of a game the terminal front end drives.
type session interface {
	Board() *tetris.Board
	Over() bool
	Reset()
	// Tick advances the game by one gravity step or brain move.
	Tick() error
	// Apply handles a player action; brain sessions ignore it.
	Apply(game.Action) error
	Score() (pieces, rows int64)
}

type brainSession struct {
	*game.Game
}

func newBrainSession(cfg game.Config) (*brainSession, error) {
	g, err := game.New(cfg)
	if err != nil {
		return nil, err
	}
	return &brainSession{Game: g}, nil
}

func (s *brainSession) Tick() error {
	_, err := s.Once()
	return ignoreGameOver(err)
}

func (s *brainSession) Apply(game.Action) error {
	return nil
}

func (s *brainSession) Score() (int64, int64) {
	stats := s.Stats()
	return stats.Pieces, stats.RowsCleared
}

type playerSession struct {
	*game.Interactive
}

func newPlayerSession(cfg game.Config) (*playerSession, error) {
	g, err := game.NewInteractive(cfg)
	if err != nil {
		return nil, err
	}
	return &playerSession{Interactive: g}, nil
}

func (s *playerSession) Tick() error {
	return s.Apply(game.ActionDown)
}

func (s *playerSession) Apply(action game.Action) error {
	_, err := s.Interactive.Apply(action)
	return ignoreGameOver(err)
}

func (s *playerSession) Score() (int64, int64) {
	return s.Pieces(), s.RowsCleared()
}

func ignoreGameOver(err error) error {
	if errors.Is(err, game.ErrGameOver) {
		return nil
	}
	return err
}
