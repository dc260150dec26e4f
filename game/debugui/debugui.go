// Package debugui provides Dear ImGui panels for inspecting a running game:
// the board grid with its per-row and per-column bookkeeping, the rotation
// cycles of the piece set with brain scores, and game statistics.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
)

// ImguiItem holds a Dear ImGui render function.
type ImguiItem struct {
	Render func()
}

// ImguiInputState tracks whether Dear ImGui is consuming mouse or keyboard
// input, so the game can ignore input meant for a panel.
type ImguiInputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// Overlay renders a list of items once per frame. Call Render between the
// backend's BeginFrame and EndFrame.
type Overlay struct {
	Items  []ImguiItem
	Input  ImguiInputState
	Hidden bool
}

// Add appends a render function to the overlay.
func (o *Overlay) Add(render func()) {
	o.Items = append(o.Items, ImguiItem{Render: render})
}

// Render updates the input state and runs every item.
func (o *Overlay) Render() {
	io := imgui.CurrentIO()
	o.Input.WantCaptureMouse = io.WantCaptureMouse()
	o.Input.WantCaptureKeyboard = io.WantCaptureKeyboard()

	if o.Hidden {
		return
	}
	for _, item := range o.Items {
		item.Render()
	}
}
