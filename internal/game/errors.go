package game

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedFEN is returned by ParseFEN for input that cannot be
	// interpreted as a position.
	ErrMalformedFEN = errors.New("malformed fen")

	// ErrIllegalMove is returned when a requested move is not in the
	// legal move set of the current position.
	ErrIllegalMove = errors.New("illegal move")

	// ErrGameOver is returned when a move is requested in a terminal
	// position.
	ErrGameOver = errors.New("game is over")

	// ErrInvariant marks internal corruption, such as a side with no
	// king. It is only ever seen inside a panic.
	ErrInvariant = errors.New("position invariant violated")
)

func errInvariantf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvariant}, args...)...)
}
