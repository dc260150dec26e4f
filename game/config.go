package game

import (
	"errors"
	"fmt"
	"io"

	"github.com/plus3/blockfall/brain"
	"github.com/plus3/blockfall/tetris"
	"github.com/sirupsen/logrus"
)

// ErrInvalidConfig is wrapped by every error returned from Config.Validate.
var ErrInvalidConfig = errors.New("invalid config")

// Config describes a game. The zero value is not usable; start from
// DefaultConfig.
type Config struct {
	Width  int
	Height int

	// TopSpace is the number of rows at the top of the board that a landed
	// piece may not reach.
	TopSpace int

	// Seed drives piece selection. Zero picks a random seed.
	Seed uint64

	// Sequence deals pieces in this order, cycling, instead of at random.
	Sequence []tetris.Shape

	// Brain plays Game and rates pieces for the adversary. Nil means a
	// LameBrain with default weights.
	Brain brain.Brain

	// Adversary is the percentage of random deals, 0 to 100, replaced by
	// the piece the brain does worst with. It has no effect with a
	// Sequence.
	Adversary int

	// Pieces is the rotation set pieces are dealt from. Nil means
	// tetris.Pieces().
	Pieces *tetris.PieceSet

	// Logger receives placement and game over events. Nil discards them.
	Logger logrus.FieldLogger

	// Debug turns on the board consistency check after every mutation.
	Debug bool
}

// DefaultConfig returns the classic 10x24 board with a limit height of 20.
func DefaultConfig() Config {
	return Config{
		Width:    10,
		Height:   24,
		TopSpace: 4,
	}
}

// LimitHeight returns the highest row a landed piece may reach.
func (c Config) LimitHeight() int {
	return c.Height - c.TopSpace
}

// Validate reports the first problem with the configuration.
func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: board must be at least 1x1, got %dx%d", ErrInvalidConfig, c.Width, c.Height)
	case c.Width >= 1<<16 || c.Height >= 1<<16:
		return fmt.Errorf("%w: board %dx%d is too large", ErrInvalidConfig, c.Width, c.Height)
	case c.TopSpace < 0 || c.TopSpace >= c.Height:
		return fmt.Errorf("%w: top space %d must be in [0, %d)", ErrInvalidConfig, c.TopSpace, c.Height)
	case c.Adversary < 0 || c.Adversary > 100:
		return fmt.Errorf("%w: adversary %d must be a percentage", ErrInvalidConfig, c.Adversary)
	}

	pieces := c.pieces()
	for _, shape := range c.Sequence {
		if pieces.Get(shape) == nil {
			return fmt.Errorf("%w: unknown shape %s in sequence", ErrInvalidConfig, shape)
		}
	}
	return nil
}

func (c Config) pieces() *tetris.PieceSet {
	if c.Pieces != nil {
		return c.Pieces
	}
	return tetris.Pieces()
}

func (c Config) logger() logrus.FieldLogger {
	if c.Logger != nil {
		return c.Logger
	}
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func (c Config) brain() brain.Brain {
	if c.Brain != nil {
		return c.Brain
	}
	return brain.NewLameBrain()
}
