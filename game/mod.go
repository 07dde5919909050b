package game

import "errors"

var (
	ErrInvalidSquare   = errors.New("invalid square")
	ErrInvalidMove     = errors.New("invalid move")
	ErrIllegalMove     = errors.New("illegal move")
	ErrInvalidPosition = errors.New("invalid position")
)

// State is an immutable position: operations on State always return a new copy.
// It is the only view of the rules the searcher depends on.
type State interface {
	// Turn returns the color to move.
	Turn() Color
	// LegalMoves returns the legal moves for the side to move, in a deterministic order.
	LegalMoves() []Move
	// Play returns the state after move; the receiver is left untouched.
	Play(move Move) (State, error)
	PieceAt(sq Square) Piece
	// InCheck reports whether the side to move is in check.
	InCheck() bool
	KingSquare(c Color) (Square, bool)
	// Attackers returns the squares of c's pieces attacking sq, in ascending order.
	Attackers(c Color, sq Square) []Square
	// WithTurn returns the same piece placement with c to move and no castling or en passant
	// rights.
	WithTurn(c Color) (State, error)
}
