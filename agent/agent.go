// Package agent holds the reconnaissance chess players driven by the harness: the forward search
// agent and a random baseline.
package agent

import (
	"time"

	"recon/game"
)

// SenseResult is one square revealed by a sense action. Piece is NoPiece for an empty square.
type SenseResult struct {
	Square game.Square
	Piece  game.Piece
}

type WinReason int

const (
	NoReason WinReason = iota
	KingCapture
	Timeout
	TurnLimit
)

func (r WinReason) String() string {
	switch r {
	case KingCapture:
		return "king_capture"
	case Timeout:
		return "timeout"
	case TurnLimit:
		return "turn_limit"
	}
	return "none"
}

// Turn records one player's turn as seen by the harness.
type Turn struct {
	Step      int
	Color     game.Color
	Sense     game.Square
	Requested *game.Move
	Taken     *game.Move
	Capture   game.Square // Square of the captured opponent piece, or NoSquare
}

// Player receives the harness events of one game in order: game start, then per turn the
// opponent's move result, a sense choice and its result, a move choice and its result, and
// finally game end.
type Player interface {
	HandleGameStart(color game.Color, board *game.Board, opponent string)
	HandleOpponentMoveResult(captured bool, square game.Square)
	ChooseSense(actions []game.Square, moves []game.Move, remaining time.Duration) game.Square
	HandleSenseResult(results []SenseResult)
	// ChooseMove returns nil to pass.
	ChooseMove(moves []game.Move, remaining time.Duration) *game.Move
	HandleMoveResult(requested, taken *game.Move, captured bool, square game.Square)
	HandleGameEnd(winner game.Color, reason WinReason, history []Turn)
	Name() string
}
