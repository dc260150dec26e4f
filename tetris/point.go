package tetris

// Point is an integer grid coordinate. Pieces use it in their local frame,
// with (0, 0) at the bottom left of the bounding box.
type Point struct {
	X, Y int
}

// key packs the point into a single integer for intmap lookups.
// Coordinates are truncated to 16 bits, which is far beyond any piece size.
func (p Point) key() uint32 {
	return uint32(uint16(p.X))<<16 | uint32(uint16(p.Y))
}
