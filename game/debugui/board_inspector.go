package debugui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/blockfall/tetris"
)

const cellSize = 12

// BoardInspector shows the grid of a board next to its row widths and
// column heights, and can run the consistency check on demand.
type BoardInspector struct {
	board     func() *tetris.Board
	lastCheck error
	checked   bool
}

func NewBoardInspector(board func() *tetris.Board) *BoardInspector {
	return &BoardInspector{board: board}
}

func (bi *BoardInspector) Render() {
	imgui.SetNextWindowPosV(imgui.NewVec2(10, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(320, 520), imgui.CondOnce)
	if !imgui.BeginV("Board", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	b := bi.board()
	imgui.Text(fmt.Sprintf("Size: %dx%d", b.Width(), b.Height()))
	imgui.Text(fmt.Sprintf("Max Height: %d", b.MaxHeight()))
	if b.Committed() {
		imgui.Text("Committed")
	} else {
		imgui.TextColored(imgui.NewVec4(1, 0.8, 0.2, 1), "Pending transaction")
	}

	if imgui.Button("Check Consistency") {
		bi.lastCheck = b.CheckConsistency()
		bi.checked = true
	}
	if bi.checked {
		imgui.SameLine()
		if bi.lastCheck != nil {
			imgui.TextColored(imgui.NewVec4(1, 0.3, 0.3, 1), bi.lastCheck.Error())
		} else {
			imgui.Text("OK")
		}
	}

	imgui.Separator()
	drawGrid(b)

	if imgui.TreeNodeStr("Rows") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("RowTable", 2, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("Row")
			imgui.TableSetupColumn("Width")
			imgui.TableHeadersRow()

			for y := b.MaxHeight() - 1; y >= 0; y-- {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", y))
				imgui.TableNextColumn()
				imgui.ProgressBarV(float32(b.RowWidth(y))/float32(b.Width()), imgui.NewVec2(-1, 0), fmt.Sprintf("%d", b.RowWidth(y)))
			}
			imgui.EndTable()
		}
		imgui.TreePop()
	}

	if imgui.TreeNodeStr("Columns") {
		for x := 0; x < b.Width(); x++ {
			imgui.BulletText(fmt.Sprintf("column %d: height %d", x, b.ColumnHeight(x)))
		}
		imgui.TreePop()
	}

	imgui.End()
}

// drawGrid paints the board cells at the cursor, highest row first.
func drawGrid(b *tetris.Board) {
	drawList := imgui.WindowDrawList()
	origin := imgui.CursorScreenPos()
	filled := imgui.ColorU32Vec4(imgui.NewVec4(0.2, 0.6, 0.8, 1))
	empty := imgui.ColorU32Vec4(imgui.NewVec4(0.15, 0.15, 0.15, 1))

	for y := 0; y < b.Height(); y++ {
		row := float32(b.Height() - 1 - y)
		for x := 0; x < b.Width(); x++ {
			color := empty
			if b.Filled(x, y) {
				color = filled
			}
			topLeft := imgui.NewVec2(origin.X+float32(x*cellSize), origin.Y+row*cellSize)
			bottomRight := imgui.NewVec2(topLeft.X+cellSize-1, topLeft.Y+cellSize-1)
			drawList.AddRectFilled(topLeft, bottomRight, color)
		}
	}
	imgui.Dummy(imgui.NewVec2(float32(b.Width()*cellSize), float32(b.Height()*cellSize)))
}
