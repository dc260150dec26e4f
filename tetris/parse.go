package tetris

import (
	"strconv"
	"strings"
)

// ParsePiece builds a piece from whitespace separated "x y" pairs,
// for example "0 0  1 0  2 0  1 1".
func ParsePiece(s string) (*Piece, error) {
	points, err := parsePoints(s)
	if err != nil {
		return nil, err
	}
	return NewPiece(points), nil
}

// MustParsePiece is like ParsePiece but panics on malformed input.
func MustParsePiece(s string) *Piece {
	p, err := ParsePiece(s)
	if err != nil {
		panic(err)
	}
	return p
}

func parsePoints(s string) ([]Point, error) {
	fields := strings.Fields(s)
	if len(fields)%2 != 0 {
		return nil, &ParseError{Input: s, Err: ErrOddCoordinates}
	}

	points := make([]Point, 0, len(fields)/2)
	for i := 0; i < len(fields); i += 2 {
		x, err := strconv.Atoi(fields[i])
		if err != nil {
			return nil, &ParseError{Input: s, Token: fields[i], Err: err}
		}
		y, err := strconv.Atoi(fields[i+1])
		if err != nil {
			return nil, &ParseError{Input: s, Token: fields[i+1], Err: err}
		}
		if x < 0 || y < 0 {
			return nil, &ParseError{Input: s, Token: fields[i] + " " + fields[i+1], Err: ErrNegativeCoordinate}
		}
		points = append(points, Point{X: x, Y: y})
	}
	return points, nil
}
