package tetris

import (
	"fmt"
	"io"
	"strings"
)

// CheckConsistency recomputes column heights, the max height and row widths
// from the grid and returns a *ConsistencyError for the first summary that
// disagrees.
func (b *Board) CheckConsistency() error {
	s := &b.cur

	maxHeight := 0
	for x := 0; x < b.width; x++ {
		h := b.scanColumn(x)
		if h != s.columnHeight[x] {
			return &ConsistencyError{Field: "columnHeight", Index: x, Got: s.columnHeight[x], Want: h}
		}
		maxHeight = max(maxHeight, h)
	}
	if maxHeight != s.maxHeight {
		return &ConsistencyError{Field: "maxHeight", Index: -1, Got: s.maxHeight, Want: maxHeight}
	}

	for y := 0; y < b.height; y++ {
		n := 0
		for x := 0; x < b.width; x++ {
			if s.grid[x*b.height+y] {
				n++
			}
		}
		if n != s.rowWidth[y] {
			return &ConsistencyError{Field: "rowWidth", Index: y, Got: s.rowWidth[y], Want: n}
		}
	}
	return nil
}

func (b *Board) check() {
	if !b.debug {
		return
	}
	if err := b.CheckConsistency(); err != nil {
		panic(err)
	}
}

// String renders the board top row first, '+' for filled cells, framed by
// side walls and a floor.
func (b *Board) String() string {
	var sb strings.Builder
	sb.Grow((b.width + 3) * (b.height + 1))
	for y := b.height - 1; y >= 0; y-- {
		sb.WriteByte('|')
		for x := 0; x < b.width; x++ {
			if b.cur.grid[x*b.height+y] {
				sb.WriteByte('+')
			} else {
				sb.WriteByte(' ')
			}
		}
		sb.WriteString("|\n")
	}
	sb.WriteString(strings.Repeat("-", b.width+2))
	return sb.String()
}

// Dump writes the grid together with every row width and column height.
func (b *Board) Dump(w io.Writer) error {
	s := &b.cur
	if _, err := fmt.Fprintf(w, "board %dx%d max=%d committed=%t\n", b.width, b.height, s.maxHeight, b.committed); err != nil {
		return err
	}

	lines := strings.Split(b.String(), "\n")
	for i, line := range lines[:b.height] {
		y := b.height - 1 - i
		if _, err := fmt.Fprintf(w, "%3d %s %d\n", y, line, s.rowWidth[y]); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "    %s\n", lines[b.height]); err != nil {
		return err
	}

	var heights strings.Builder
	for x, h := range s.columnHeight {
		if x > 0 {
			heights.WriteByte(' ')
		}
		fmt.Fprintf(&heights, "%d", h)
	}
	_, err := fmt.Fprintf(w, "heights %s\n", heights.String())
	return err
}
