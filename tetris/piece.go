package tetris

import (
	"slices"
	"strconv"
	"strings"

	"github.com/kamstrup/intmap"
)

// Piece is an immutable tetromino in one particular rotation.
// The body is stored in the piece's local frame; width and height are the
// bounding box of the body and the skirt holds the lowest occupied y of
// every column.
type Piece struct {
	body   []Point
	points *intmap.Set[uint32]
	width  int
	height int
	skirt  []int

	// cycle and index locate the piece inside its precomputed rotation
	// cycle. Both are zero for pieces built outside a PieceSet.
	cycle *rotationCycle
	index int
}

// NewPiece creates a piece from its body points. The points must be unique;
// duplicates are not detected.
func NewPiece(points []Point) *Piece {
	p := &Piece{}
	p.init(points)
	return p
}

func (p *Piece) init(points []Point) {
	p.body = slices.Clone(points)
	p.points = intmap.NewSet[uint32](len(points))

	for _, pt := range p.body {
		if pt.X >= p.width {
			p.width = pt.X + 1
		}
		if pt.Y >= p.height {
			p.height = pt.Y + 1
		}
		p.points.Add(pt.key())
	}

	p.skirt = make([]int, p.width)
	for x := range p.skirt {
		p.skirt[x] = p.height
	}
	for _, pt := range p.body {
		if pt.Y < p.skirt[pt.X] {
			p.skirt[pt.X] = pt.Y
		}
	}
}

// Width returns the width of the piece's bounding box in cells.
func (p *Piece) Width() int {
	return p.width
}

// Height returns the height of the piece's bounding box in cells.
func (p *Piece) Height() int {
	return p.height
}

// Len returns the number of cells in the body.
func (p *Piece) Len() int {
	return len(p.body)
}

// Body returns a copy of the body points.
func (p *Piece) Body() []Point {
	return slices.Clone(p.body)
}

// Skirt returns a copy of the skirt: for every x across the piece, the
// lowest y occupied in that column.
func (p *Piece) Skirt() []int {
	return slices.Clone(p.skirt)
}

// Shape returns the canonical shape this piece belongs to, or ShapeNone for
// pieces that were not produced by a PieceSet.
func (p *Piece) Shape() Shape {
	if p.cycle == nil {
		return ShapeNone
	}
	return p.cycle.shape
}

// Rotation returns the index of the piece inside its rotation cycle.
// The root rotation and ad-hoc pieces report 0.
func (p *Piece) Rotation() int {
	return p.index
}

// ComputeNextRotation returns a new piece rotated 90 degrees
// counter-clockwise from the receiver. The result is never linked into a
// rotation cycle.
func (p *Piece) ComputeNextRotation() *Piece {
	rotated := make([]Point, len(p.body))
	for i, pt := range p.body {
		rotated[i] = Point{X: p.height - pt.Y - 1, Y: pt.X}
	}
	return NewPiece(rotated)
}

// FastRotation returns the precomputed counter-clockwise rotation of the
// piece. It returns nil for pieces built outside a PieceSet.
func (p *Piece) FastRotation() *Piece {
	if p.cycle == nil {
		return nil
	}
	return &p.cycle.pieces[(p.index+1)%len(p.cycle.pieces)]
}

// Equal reports whether both pieces have the same set of body points,
// regardless of point order.
func (p *Piece) Equal(other *Piece) bool {
	if p == other {
		return true
	}
	if p == nil || other == nil {
		return false
	}
	if p.points.Len() != other.points.Len() {
		return false
	}
	for _, pt := range other.body {
		if !p.points.Has(pt.key()) {
			return false
		}
	}
	return true
}

// String returns the body in the "x y x y ..." form accepted by ParsePiece.
func (p *Piece) String() string {
	var sb strings.Builder
	for i, pt := range p.body {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(strconv.Itoa(pt.X))
		sb.WriteByte(' ')
		sb.WriteString(strconv.Itoa(pt.Y))
	}
	return sb.String()
}
