package goosemg

import "errors"

var (
	// ErrIllegalMove is returned when a move is not in the legal move set of
	// the current position. The board is left unchanged.
	ErrIllegalMove = errors.New("illegal move")

	// ErrInvalidPosition is returned when a setup cannot describe a playable
	// position. No board is produced.
	ErrInvalidPosition = errors.New("invalid position")
)

// InvariantError reports internal corruption of a Board (missing king,
// desynchronised bitboards, a fingerprint mismatch after undo). It is a
// defect in this package, never caller misuse, and is raised with panic.
type InvariantError struct {
	Msg string
}

func (e *InvariantError) Error() string { return "goosemg: invariant violated: " + e.Msg }
