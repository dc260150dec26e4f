package tetris

import "sync"

//go:generate go tool stringer -type=Shape

// Shape identifies one of the seven canonical tetrominoes.
type Shape int

const (
	ShapeNone Shape = iota - 1
	Stick
	L1
	L2
	S1
	S2
	Square
	Pyramid
)

// NumShapes is the number of canonical shapes.
const NumShapes = 7

// Bodies of the canonical shapes in their root rotation.
const (
	StickBody   = "0 0  0 1  0 2  0 3"
	L1Body      = "0 0  0 1  0 2  1 0"
	L2Body      = "0 0  1 0  1 1  1 2"
	S1Body      = "0 0  1 0  1 1  2 1"
	S2Body      = "0 1  1 1  1 0  2 0"
	SquareBody  = "0 0  0 1  1 0  1 1"
	PyramidBody = "0 0  1 0  1 1  2 0"
)

var shapeBodies = [NumShapes]string{
	Stick:   StickBody,
	L1:      L1Body,
	L2:      L2Body,
	S1:      S1Body,
	S2:      S2Body,
	Square:  SquareBody,
	Pyramid: PyramidBody,
}

// rotationCycle owns every distinct rotation of one shape. Pieces point
// back into it by index, so following a rotation is a slice lookup.
type rotationCycle struct {
	shape  Shape
	pieces []Piece
}

// newRotationCycle rotates root until it comes back to itself, keeping every
// distinct orientation: 1 for the square, 2 for the stick and the S shapes,
// 4 otherwise.
func newRotationCycle(shape Shape, root *Piece) *rotationCycle {
	c := &rotationCycle{shape: shape}

	orientations := []*Piece{root}
	for next := root.ComputeNextRotation(); !next.Equal(root); next = next.ComputeNextRotation() {
		orientations = append(orientations, next)
	}

	c.pieces = make([]Piece, len(orientations))
	for i, o := range orientations {
		c.pieces[i] = *o
		c.pieces[i].cycle = c
		c.pieces[i].index = i
	}
	return c
}

// PieceSet holds the canonical pieces and their rotation cycles.
type PieceSet struct {
	cycles [NumShapes]*rotationCycle
}

// NewPieceSet computes the rotation cycles of all canonical shapes.
func NewPieceSet() *PieceSet {
	s := &PieceSet{}
	for shape, body := range shapeBodies {
		s.cycles[shape] = newRotationCycle(Shape(shape), MustParsePiece(body))
	}
	return s
}

var defaultPieces = sync.OnceValue(NewPieceSet)

// Pieces returns a process-wide PieceSet, computed on first use.
func Pieces() *PieceSet {
	return defaultPieces()
}

// Len returns the number of shapes in the set.
func (s *PieceSet) Len() int {
	return len(s.cycles)
}

// Get returns the root rotation of the given shape.
func (s *PieceSet) Get(shape Shape) *Piece {
	if shape < 0 || int(shape) >= len(s.cycles) {
		return nil
	}
	return &s.cycles[shape].pieces[0]
}

// All returns the root rotation of every shape in the order
// Stick, L1, L2, S1, S2, Square, Pyramid.
func (s *PieceSet) All() []*Piece {
	all := make([]*Piece, len(s.cycles))
	for i := range s.cycles {
		all[i] = &s.cycles[i].pieces[0]
	}
	return all
}

// Rotations returns every distinct rotation of a shape, root first.
func (s *PieceSet) Rotations(shape Shape) []*Piece {
	if shape < 0 || int(shape) >= len(s.cycles) {
		return nil
	}
	c := s.cycles[shape]
	rotations := make([]*Piece, len(c.pieces))
	for i := range c.pieces {
		rotations[i] = &c.pieces[i]
	}
	return rotations
}
