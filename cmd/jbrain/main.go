// Command jbrain opens a window on a falling-block game. By default the
// built-in brain steers the falling piece one step per tick; with -play the
// arrow keys move it and B hands control to the brain. With -instant the
// brain drops whole pieces straight into place.
package main

import (
	"flag"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/blockfall/brain"
	"github.com/plus3/blockfall/game"
	"github.com/plus3/blockfall/game/debugui"
	debugui_ebiten "github.com/plus3/blockfall/game/debugui/ebiten"
	"github.com/plus3/blockfall/tetris"
	"github.com/sirupsen/logrus"
)

const (
	ScreenWidth  = 1280
	ScreenHeight = 720
	CellSize     = 24
)

func main() {
	width := flag.Int("width", 10, "Board width in cells.")
	height := flag.Int("height", 24, "Board height in cells.")
	seed := flag.Uint64("seed", 0, "Piece sequence seed, 0 for random.")
	interval := flag.Duration("interval", 200*time.Millisecond, "Time between brain moves or gravity steps.")
	play := flag.Bool("play", false, "Play with the keyboard instead of watching the brain.")
	instant := flag.Bool("instant", false, "Let the brain place whole pieces instead of steering them.")
	adversary := flag.Int("adversary", 0, "Percentage of pieces chosen to be the worst for the brain.")
	debug := flag.Bool("debug", false, "Show the debug overlay and log every placement.")
	flag.Parse()

	log := logrus.New()
	if *debug {
		log.SetLevel(logrus.DebugLevel)
	}

	cfg := game.DefaultConfig()
	cfg.Width = *width
	cfg.Height = *height
	cfg.Seed = *seed
	cfg.Adversary = *adversary
	cfg.Logger = log
	cfg.Debug = *debug

	g := &Game{
		interval: *interval,
		log:      log,
		timer:    debugui.NewFrameTimer(),
	}

	var err error
	if *instant {
		g.auto, err = game.New(cfg)
	} else {
		g.player, err = game.NewInteractive(cfg)
	}
	if err != nil {
		log.WithError(err).Fatal("cannot start game")
	}
	if g.player != nil {
		g.pilot = game.NewAutopilot(g.player, nil)
		g.steering = !*play
	}

	if *debug {
		g.imgui = debugui_ebiten.NewImguiBackend("jbrain", ScreenWidth, ScreenHeight)
		g.stats = debugui.NewGameStats(g.gameStats, 120)
		g.imgui.Overlay.Add(debugui.NewBoardInspector(g.board).Render)
		g.imgui.Overlay.Add(debugui.NewPieceBrowser(tetris.Pieces(), g.board, brain.NewLameBrain(), cfg.LimitHeight()).Render)
		g.imgui.Overlay.Add(func() { g.stats.Render(g.frameTime) })
	} else {
		ebiten.SetWindowSize(ScreenWidth, ScreenHeight)
		ebiten.SetWindowTitle("jbrain")
	}
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	log.WithFields(logrus.Fields{
		"width":     cfg.Width,
		"height":    cfg.Height,
		"play":      *play,
		"instant":   *instant,
		"adversary": cfg.Adversary,
	}).Info("starting")

	if err := ebiten.RunGame(g); err != nil {
		log.WithError(err).Fatal("game loop failed")
	}
}
