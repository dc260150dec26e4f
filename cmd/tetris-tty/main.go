// Command tetris-tty plays a falling-block game in the terminal. The arrow
// keys move the piece, space drops it; with -brain the built-in brain plays.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/blockfall/game"
	"github.com/sirupsen/logrus"
)

func main() {
	width := flag.Int("width", 10, "Board width in cells.")
	height := flag.Int("height", 24, "Board height in cells.")
	seed := flag.Uint64("seed", 0, "Piece sequence seed, 0 for random.")
	interval := flag.Duration("interval", 400*time.Millisecond, "Time between gravity steps or brain moves.")
	useBrain := flag.Bool("brain", false, "Let the brain play.")
	adversary := flag.Int("adversary", 0, "Percentage of pieces chosen to be the worst for the brain.")
	debug := flag.Bool("debug", false, "Check board consistency after every move.")
	logPath := flag.String("log", "", "Write a debug log to this file.")
	flag.Parse()

	log := logrus.New()
	log.SetOutput(io.Discard)
	if *logPath != "" {
		f, err := os.Create(*logPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open log: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		log.SetOutput(f)
		log.SetLevel(logrus.DebugLevel)
	}

	cfg := game.DefaultConfig()
	cfg.Width = *width
	cfg.Height = *height
	cfg.Seed = *seed
	cfg.Adversary = *adversary
	cfg.Logger = log
	cfg.Debug = *debug

	var s session
	var err error
	if *useBrain {
		s, err = newBrainSession(cfg)
	} else {
		s, err = newPlayerSession(cfg)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}

	app := &App{
		screen:   screen,
		session:  s,
		interval: *interval,
		log:      log,
	}
	err = app.run()
	screen.Fini()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}
