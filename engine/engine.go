package engine

import (
	"recon/agent"
	"recon/experiments/metrics"
	"recon/game"
)

// Result describes a finished game. Winner is NoColor for a draw.
type Result struct {
	Winner  game.Color
	Reason  agent.WinReason
	History []agent.Turn
	Game    metrics.GameMetric
	Moves   []metrics.MoveMetric
}

type Engine interface {
	// Run plays a game till a king is captured, a player runs out of time or the turn cap is
	// reached
	Run() Result
}
