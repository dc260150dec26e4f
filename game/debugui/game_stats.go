package debugui

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/blockfall/game"
)

// GameStats shows piece and row counts, the stack height history and the
// frame and step timings of a running game.
type GameStats struct {
	stats         func() game.Stats
	historyFrames int
	frameHistory  []float32
	frameIndex    int
}

func NewGameStats(stats func() game.Stats, historyFrames int) *GameStats {
	return &GameStats{
		stats:         stats,
		historyFrames: historyFrames,
		frameHistory:  make([]float32, historyFrames),
	}
}

func (gs *GameStats) Render(deltaTime float32) {
	imgui.SetNextWindowPosV(imgui.NewVec2(340, 440), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(380, 320), imgui.CondOnce)
	if !imgui.BeginV("Game Stats", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	gs.frameHistory[gs.frameIndex] = deltaTime * 1000.0
	gs.frameIndex = (gs.frameIndex + 1) % gs.historyFrames

	stats := gs.stats()
	imgui.Text(fmt.Sprintf("Pieces: %d", stats.Pieces))
	imgui.Text(fmt.Sprintf("Rows Cleared: %d", stats.RowsCleared))
	imgui.Text(fmt.Sprintf("Max Height: %d", stats.MaxHeight))

	var avgFrameTime float32
	for _, ft := range gs.frameHistory {
		avgFrameTime += ft
	}
	avgFrameTime /= float32(gs.historyFrames)
	imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms (%.0f FPS)", avgFrameTime, 1000.0/avgFrameTime))

	imgui.Separator()
	imgui.Text("Stack Height")
	if len(stats.Heights) > 0 {
		imgui.PlotLinesFloatPtr("##heights", &stats.Heights[0], int32(len(stats.Heights)))
	}
	imgui.Text("Frame Time Graph (ms)")
	imgui.PlotLinesFloatPtr("##frametime", &gs.frameHistory[0], int32(len(gs.frameHistory)))

	if imgui.TreeNodeStr("Clears") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("ClearTable", 2, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("Rows")
			imgui.TableSetupColumn("Placements")
			imgui.TableHeadersRow()

			for rows, count := range stats.Clears {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", rows))
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", count))
			}
			imgui.EndTable()
		}
		imgui.TreePop()
	}

	if imgui.TreeNodeStr("Step Timing") {
		steps := stats.Steps
		imgui.BulletText(fmt.Sprintf("Steps: %d", steps.Count))
		imgui.BulletText(fmt.Sprintf("Min: %v", steps.Min))
		imgui.BulletText(fmt.Sprintf("Avg: %v", steps.Avg))
		imgui.BulletText(fmt.Sprintf("Max: %v", steps.Max))
		imgui.BulletText(fmt.Sprintf("Last: %v", steps.Last))
		imgui.TreePop()
	}

	imgui.End()
}

type FrameTimer struct {
	lastFrameTime time.Time
}

func NewFrameTimer() *FrameTimer {
	return &FrameTimer{
		lastFrameTime: time.Now(),
	}
}

func (ft *FrameTimer) GetDeltaTime() float32 {
	now := time.Now()
	delta := float32(now.Sub(ft.lastFrameTime).Seconds())
	ft.lastFrameTime = now
	return delta
}
