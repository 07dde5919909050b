package agent

import (
	"time"

	"recon/game"
	"recon/searcher"
)

// RandomAgent senses and moves uniformly at random. It is the baseline opponent in experiments.
type RandomAgent struct {
	name string
	rand searcher.Source
}

func NewRandomAgent(name string, src searcher.Source) *RandomAgent {
	if src == nil {
		panic("random agent needs a random source")
	}
	return &RandomAgent{name: name, rand: src}
}

func (a *RandomAgent) Name() string {
	return a.name
}

func (a *RandomAgent) HandleGameStart(color game.Color, board *game.Board, opponent string) {}

func (a *RandomAgent) HandleOpponentMoveResult(captured bool, square game.Square) {}

func (a *RandomAgent) ChooseSense(actions []game.Square, moves []game.Move, remaining time.Duration) game.Square {
	if len(actions) == 0 {
		return game.NoSquare
	}
	return actions[a.rand.Intn(len(actions))]
}

func (a *RandomAgent) HandleSenseResult(results []SenseResult) {}

// ChooseMove passes with the same probability as any single move.
func (a *RandomAgent) ChooseMove(moves []game.Move, remaining time.Duration) *game.Move {
	i := a.rand.Intn(len(moves) + 1)
	if i == len(moves) {
		return nil
	}
	move := moves[i]
	return &move
}

func (a *RandomAgent) HandleMoveResult(requested, taken *game.Move, captured bool, square game.Square) {}

func (a *RandomAgent) HandleGameEnd(winner game.Color, reason WinReason, history []Turn) {}
