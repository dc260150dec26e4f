package main

import (
	"errors"
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/blockfall/game"
	"github.com/plus3/blockfall/game/debugui"
	debugui_ebiten "github.com/plus3/blockfall/game/debugui/ebiten"
	"github.com/plus3/blockfall/tetris"
	"github.com/sirupsen/logrus"
)

var (
	backgroundColor = color.RGBA{24, 24, 32, 255}
	emptyColor      = color.RGBA{40, 40, 52, 255}
	filledColor     = color.RGBA{179, 229, 252, 255}
	limitColor      = color.RGBA{255, 179, 186, 255}
)

// keyActions maps keys to player actions. They work while the brain steers,
// too.
var keyActions = map[ebiten.Key]game.Action{
	ebiten.KeyArrowLeft:  game.ActionLeft,
	ebiten.KeyArrowRight: game.ActionRight,
	ebiten.KeyArrowUp:    game.ActionRotate,
	ebiten.KeyArrowDown:  game.ActionDown,
	ebiten.KeySpace:      game.ActionDrop,
}

// Game implements ebiten.Game for a falling-piece game, steered by the
// player or the brain, or for an instant brain game.
type Game struct {
	auto     *game.Game
	player   *game.Interactive
	pilot    *game.Autopilot
	steering bool

	interval time.Duration
	elapsed  time.Duration
	paused   bool
	log      logrus.FieldLogger

	imgui     *debugui_ebiten.ImguiBackend
	stats     *debugui.GameStats
	timer     *debugui.FrameTimer
	frameTime float32
}

func (g *Game) board() *tetris.Board {
	if g.player != nil {
		return g.player.Board()
	}
	return g.auto.Board()
}

func (g *Game) gameStats() game.Stats {
	if g.player != nil {
		return game.Stats{Pieces: g.player.Pieces(), RowsCleared: g.player.RowsCleared()}
	}
	return g.auto.Stats()
}

func (g *Game) over() bool {
	if g.player != nil {
		return g.player.Over()
	}
	return g.auto.Over()
}

func (g *Game) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyQ) || ebiten.IsKeyPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	g.frameTime = g.timer.GetDeltaTime()
	if g.imgui != nil {
		g.imgui.RenderOverlay()
		if g.imgui.Overlay.Input.WantCaptureKeyboard {
			return nil
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.reset()
		return nil
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.paused = !g.paused
	}
	if g.player != nil && inpututil.IsKeyJustPressed(ebiten.KeyB) {
		g.steering = !g.steering
		g.log.WithField("brain", g.steering).Debug("brain toggled")
	}
	if g.paused || g.over() {
		return nil
	}

	if g.player != nil {
		for key, action := range keyActions {
			if inpututil.IsKeyJustPressed(key) {
				if err := g.apply(action); err != nil {
					return err
				}
			}
		}
	}

	g.elapsed += time.Duration(g.frameTime * float32(time.Second))
	for g.elapsed >= g.interval && !g.over() {
		g.elapsed -= g.interval
		if err := g.tick(); err != nil {
			return err
		}
	}
	return nil
}

// tick advances the game by one gravity step, steered by the brain when it
// is active, or by one instant brain move.
func (g *Game) tick() error {
	if g.player != nil {
		if g.steering {
			return g.record(g.pilot.Tick())
		}
		return g.apply(game.ActionDown)
	}
	_, err := g.auto.Once()
	if errors.Is(err, game.ErrGameOver) {
		return nil
	}
	return err
}

func (g *Game) apply(action game.Action) error {
	return g.record(g.player.Apply(action))
}

func (g *Game) record(out game.Outcome, err error) error {
	if errors.Is(err, game.ErrGameOver) {
		return nil
	}
	if out.RowsCleared > 0 {
		g.log.WithField("rows", out.RowsCleared).Debug("rows cleared")
	}
	return err
}

func (g *Game) reset() {
	if g.player != nil {
		g.player.Reset()
	} else {
		g.auto.Reset()
	}
	g.elapsed = 0
	g.paused = false
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)

	b := g.board()
	originX := float32(CellSize)
	originY := float32(CellSize)
	drawBoard(screen, b, originX, originY)

	limitY := originY + float32(b.Height()-g.limitHeight())*CellSize
	vector.StrokeLine(screen, originX, limitY, originX+float32(b.Width()*CellSize), limitY, 1, limitColor, false)

	textX := int(originX) + (b.Width()+1)*CellSize
	stats := g.gameStats()
	status := fmt.Sprintf("pieces %d\nrows %d", stats.Pieces, stats.RowsCleared)
	switch {
	case g.over():
		status += "\n\nGAME OVER\nR to restart"
	case g.paused:
		status += "\n\nPAUSED"
	}
	if g.player != nil {
		if g.steering {
			status += "\n\nbrain: on (B)"
		} else {
			status += "\n\nbrain: off (B)"
		}
	}
	ebitenutil.DebugPrintAt(screen, status, textX, int(originY))

	if g.auto != nil && !g.auto.Over() {
		ebitenutil.DebugPrintAt(screen, "next", textX, int(originY)+5*CellSize)
		drawPiece(screen, g.auto.Next(), float32(textX), originY+6*CellSize)
	}

	if g.imgui != nil {
		g.imgui.DrawOverlay(screen)
	}
}

func (g *Game) limitHeight() int {
	if g.player != nil {
		return g.player.Config().LimitHeight()
	}
	return g.auto.Config().LimitHeight()
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.imgui != nil {
		g.imgui.Layout(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}

// drawBoard paints every cell of b with row 0 at the bottom.
func drawBoard(screen *ebiten.Image, b *tetris.Board, originX, originY float32) {
	for y := 0; y < b.Height(); y++ {
		sy := originY + float32(b.Height()-1-y)*CellSize
		for x := 0; x < b.Width(); x++ {
			c := emptyColor
			if b.Filled(x, y) {
				c = filledColor
			}
			vector.DrawFilledRect(screen, originX+float32(x*CellSize), sy, CellSize-1, CellSize-1, c, false)
		}
	}
}

func drawPiece(screen *ebiten.Image, p *tetris.Piece, originX, originY float32) {
	for _, pt := range p.Body() {
		sy := originY + float32(p.Height()-1-pt.Y)*CellSize
		vector.DrawFilledRect(screen, originX+float32(pt.X*CellSize), sy, CellSize-1, CellSize-1, filledColor, false)
	}
}
