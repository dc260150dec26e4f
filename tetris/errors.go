package tetris

import (
	"errors"
	"fmt"
)

var (
	// ErrUncommitted is raised when Place is called while a previous
	// mutation is still pending a Commit or Undo.
	ErrUncommitted = errors.New("board is not committed")

	// ErrColumnOutOfRange is raised when a column index lies outside the board.
	ErrColumnOutOfRange = errors.New("column out of range")

	// ErrBadDimensions is raised when a board is created with a
	// non-positive width or height.
	ErrBadDimensions = errors.New("board dimensions must be positive")

	// ErrOddCoordinates is reported when a piece description has an x
	// without its matching y.
	ErrOddCoordinates = errors.New("odd number of coordinates")

	// ErrNegativeCoordinate is reported for points left of or below the
	// piece's local origin.
	ErrNegativeCoordinate = errors.New("negative coordinate")
)

// UsageError describes a violation of the board's calling protocol.
// The board panics with a *UsageError; callers that recover can match the
// wrapped sentinel with errors.Is.
type UsageError struct {
	Op  string
	Err error
}

func (e *UsageError) Error() string {
	return "tetris: " + e.Op + ": " + e.Err.Error()
}

func (e *UsageError) Unwrap() error {
	return e.Err
}

func usagePanic(op string, err error) {
	panic(&UsageError{Op: op, Err: err})
}

// ParseError is returned when a textual piece description is malformed.
type ParseError struct {
	Input string
	Token string
	Err   error
}

func (e *ParseError) Error() string {
	if e.Token != "" {
		return fmt.Sprintf("tetris: parse piece %q: token %q: %v", e.Input, e.Token, e.Err)
	}
	return fmt.Sprintf("tetris: parse piece %q: %v", e.Input, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ConsistencyError reports a derived board summary that disagrees with the
// grid. Index is the column or row in question, -1 for maxHeight.
type ConsistencyError struct {
	Field string
	Index int
	Got   int
	Want  int
}

func (e *ConsistencyError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("tetris: %s is %d, grid says %d", e.Field, e.Got, e.Want)
	}
	return fmt.Sprintf("tetris: %s[%d] is %d, grid says %d", e.Field, e.Index, e.Got, e.Want)
}
