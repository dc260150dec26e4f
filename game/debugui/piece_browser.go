package debugui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/blockfall/brain"
	"github.com/plus3/blockfall/tetris"
)

// PieceBrowser steps through the rotation cycles of a piece set. Given a
// board it also shows how the brain rates every placement of the selected
// shape.
type PieceBrowser struct {
	pieces   *tetris.PieceSet
	board    func() *tetris.Board
	brain    *brain.LameBrain
	limit    int
	shape    tetris.Shape
	rotation int
}

// NewPieceBrowser creates a browser over pieces. board may be nil, in which
// case no scores are shown.
func NewPieceBrowser(pieces *tetris.PieceSet, board func() *tetris.Board, b *brain.LameBrain, limitHeight int) *PieceBrowser {
	return &PieceBrowser{
		pieces: pieces,
		board:  board,
		brain:  b,
		limit:  limitHeight,
		shape:  tetris.Stick,
	}
}

// Selected returns the piece currently shown.
func (pb *PieceBrowser) Selected() *tetris.Piece {
	rots := pb.pieces.Rotations(pb.shape)
	return rots[pb.rotation%len(rots)]
}

// Select shows the given shape, starting from its root rotation.
func (pb *PieceBrowser) Select(shape tetris.Shape) {
	if pb.pieces.Get(shape) == nil {
		return
	}
	pb.shape = shape
	pb.rotation = 0
}

// Rotate advances the selection to the next rotation in the cycle.
func (pb *PieceBrowser) Rotate() {
	pb.rotation = pb.Selected().FastRotation().Rotation()
}

func (pb *PieceBrowser) Render() {
	imgui.SetNextWindowPosV(imgui.NewVec2(340, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(380, 420), imgui.CondOnce)
	if !imgui.BeginV("Pieces", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	for i, p := range pb.pieces.All() {
		if i > 0 {
			imgui.SameLine()
		}
		if imgui.Button(p.Shape().String()) {
			pb.Select(p.Shape())
		}
	}
	if imgui.Button("Rotate") {
		pb.Rotate()
	}

	p := pb.Selected()
	imgui.Separator()
	imgui.Text(fmt.Sprintf("%s rotation %d of %d", p.Shape(), p.Rotation(), len(pb.pieces.Rotations(pb.shape))))
	imgui.Text(fmt.Sprintf("Size: %dx%d", p.Width(), p.Height()))
	imgui.Text(fmt.Sprintf("Skirt: %v", p.Skirt()))
	imgui.Text(fmt.Sprintf("Body: %s", p))
	drawPiece(p)

	if pb.board != nil && pb.brain != nil && imgui.TreeNodeStr("Placement Scores") {
		pb.renderScores()
		imgui.TreePop()
	}

	imgui.End()
}

func (pb *PieceBrowser) renderScores() {
	b := pb.board()
	if !b.Committed() {
		imgui.Text("board has a pending transaction")
		return
	}

	// evaluate a copy of the live board
	root := pb.pieces.Get(pb.shape)
	eval := pb.brain.Evaluate(b.Clone(), root, pb.limit)
	columns := scoreColumns(b.Width())
	table := scoreTable(eval, len(pb.pieces.Rotations(pb.shape)), columns)

	if eval.Found {
		imgui.Text(fmt.Sprintf("Best: rotation %d at x=%d y=%d (%.2f)", eval.Best.Piece.Rotation(), eval.Best.X, eval.Best.Y, eval.Best.Score))
	} else {
		imgui.Text("No legal placement")
	}

	if columns < b.Width() {
		imgui.TextColored(imgui.NewVec4(1, 0.8, 0.2, 1), fmt.Sprintf("Showing columns 0-%d of %d", columns-1, b.Width()))
	}

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
	if imgui.BeginTableV("ScoreTable", int32(columns+1), tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Rot")
		for x := 0; x < columns; x++ {
			imgui.TableSetupColumn(fmt.Sprintf("%d", x))
		}
		imgui.TableHeadersRow()

		for r, row := range table {
			imgui.TableNextRow()
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", r))
			for _, cell := range row {
				imgui.TableNextColumn()
				imgui.Text(cell)
			}
		}
		imgui.EndTable()
	}
}

// maxTableColumns is the most columns an ImGui table accepts.
const maxTableColumns = 512

// scoreColumns returns how many board columns fit in the score table next to
// the rotation column.
func scoreColumns(width int) int {
	return min(width, maxTableColumns-1)
}

// scoreTable lays out an evaluation as one row per rotation and one cell per
// column. Placements that were not legal are shown as "-".
func scoreTable(e *brain.Evaluation, rotations, width int) [][]string {
	table := make([][]string, rotations)
	for r := range table {
		table[r] = make([]string, width)
		for x := range table[r] {
			if score, ok := e.Score(r, x); ok {
				table[r][x] = fmt.Sprintf("%.1f", score)
			} else {
				table[r][x] = "-"
			}
		}
	}
	return table
}

func drawPiece(p *tetris.Piece) {
	drawList := imgui.WindowDrawList()
	origin := imgui.CursorScreenPos()
	color := imgui.ColorU32Vec4(imgui.NewVec4(0.9, 0.6, 0.2, 1))

	for _, pt := range p.Body() {
		row := float32(p.Height() - 1 - pt.Y)
		topLeft := imgui.NewVec2(origin.X+float32(pt.X*cellSize), origin.Y+row*cellSize)
		bottomRight := imgui.NewVec2(topLeft.X+cellSize-1, topLeft.Y+cellSize-1)
		drawList.AddRectFilled(topLeft, bottomRight, color)
	}
	imgui.Dummy(imgui.NewVec2(float32(4*cellSize), float32(4*cellSize)))
}
