package agent

import (
	"time"

	"recon/experiments/metrics"
	"recon/game"
	"recon/searcher"

	"github.com/rs/zerolog/log"
)

// SearchAgent keeps a belief board updated from its own moves, sense results and captures
// reported by the harness, and chooses moves with a forward search over that board.
type SearchAgent struct {
	name     string
	search   *searcher.ForwardSearch
	sense    *SenseSelector
	board    *game.Board
	color    game.Color
	captured game.Square // Where the opponent last took one of our pieces
}

func NewSearchAgent(name string, search *searcher.ForwardSearch, sense *SenseSelector) *SearchAgent {
	if search == nil || sense == nil {
		panic("search agent needs a forward search and a sense selector")
	}
	return &SearchAgent{
		name:     name,
		search:   search,
		sense:    sense,
		captured: game.NoSquare,
	}
}

func (a *SearchAgent) Name() string {
	return a.name
}

// Board returns the current belief board. Callers must not modify it.
func (a *SearchAgent) Board() *game.Board {
	return a.board
}

func (a *SearchAgent) SearchMetric() metrics.SearchMetric {
	return a.search.SearchMetric()
}

func (a *SearchAgent) HandleGameStart(color game.Color, board *game.Board, opponent string) {
	a.color = color
	a.board = board.Copy()
	a.captured = game.NoSquare
	log.Debug().Str("agent", a.name).Str("color", color.String()).Str("opponent", opponent).Msg("game started")
}

func (a *SearchAgent) HandleOpponentMoveResult(captured bool, square game.Square) {
	a.captured = game.NoSquare
	if captured {
		a.board.RemovePiece(square)
		a.captured = square
	}
}

func (a *SearchAgent) ChooseSense(actions []game.Square, moves []game.Move, remaining time.Duration) game.Square {
	return a.sense.Choose(actions, a.board, a.color, a.captured)
}

func (a *SearchAgent) HandleSenseResult(results []SenseResult) {
	for _, r := range results {
		a.board.SetPiece(r.Square, r.Piece)
	}
}

// ChooseMove searches the belief board with the agent's color to move and passes when the
// board cannot be turned into a position or the search gives up.
func (a *SearchAgent) ChooseMove(moves []game.Move, remaining time.Duration) *game.Move {
	state, err := a.board.State(a.color)
	if err != nil {
		log.Warn().Err(err).Str("agent", a.name).Msg("belief board is not a valid position, passing")
		return nil
	}
	move, ok := a.search.SelectMove(state, a.color)
	if !ok {
		return nil
	}
	return &move
}

func (a *SearchAgent) HandleMoveResult(requested, taken *game.Move, captured bool, square game.Square) {
	if taken == nil {
		return
	}
	a.board.Push(*taken)
	// En passant takes off the landing square
	if captured && square.Valid() && square != taken.To {
		a.board.RemovePiece(square)
	}
}

func (a *SearchAgent) HandleGameEnd(winner game.Color, reason WinReason, history []Turn) {
	log.Debug().
		Str("agent", a.name).
		Str("winner", winner.String()).
		Str("reason", reason.String()).
		Int("turns", len(history)).
		Msg("game over")
}
