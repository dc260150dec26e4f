// Package ebiten hosts the game debug overlay on the Ebiten game engine.
package ebiten

import (
	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/blockfall/game/debugui"
)

// ImguiBackend wraps the Ebiten-specific Dear ImGui backend implementation
// and renders a debugui.Overlay through it.
type ImguiBackend struct {
	*ebitenbackend.EbitenBackend
	Overlay *debugui.Overlay
}

// NewImguiBackend creates the backend window used by ebiten.RunGame.
func NewImguiBackend(title string, width, height int) *ImguiBackend {
	backend := ebitenbackend.NewEbitenBackend()
	backend.CreateWindow(title, width, height)
	imgui.CurrentIO().SetIniFilename("")
	return &ImguiBackend{
		EbitenBackend: backend,
		Overlay:       &debugui.Overlay{},
	}
}

// RenderOverlay runs one overlay frame. Call it from ebiten.Game.Update.
func (b *ImguiBackend) RenderOverlay() {
	b.BeginFrame()
	b.Overlay.Render()
	b.EndFrame()
}

// DrawOverlay draws the last overlay frame on top of screen.
func (b *ImguiBackend) DrawOverlay(screen *ebiten.Image) {
	b.Draw(screen)
}
