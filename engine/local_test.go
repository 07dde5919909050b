package engine

import (
	"testing"
	"time"

	"recon/agent"
	"recon/experiments/metrics"
	"recon/game"

	"github.com/stretchr/testify/require"
)

var _ Engine = (*LocalEngine)(nil)

type opponentResult struct {
	captured bool
	square   game.Square
}

// scriptedPlayer plays its moves in order and passes once they run out. An empty move passes.
type scriptedPlayer struct {
	name   string
	moves  []string
	senses []game.Square
	turn   int

	color           game.Color
	opponentResults []opponentResult
	senseResults    [][]agent.SenseResult
	taken           []*game.Move
	winner          game.Color
	reason          agent.WinReason
	ended           bool
}

func (p *scriptedPlayer) Name() string { return p.name }

func (p *scriptedPlayer) HandleGameStart(color game.Color, board *game.Board, opponent string) {
	p.color = color
}

func (p *scriptedPlayer) HandleOpponentMoveResult(captured bool, square game.Square) {
	p.opponentResults = append(p.opponentResults, opponentResult{captured, square})
}

func (p *scriptedPlayer) ChooseSense(actions []game.Square, moves []game.Move, remaining time.Duration) game.Square {
	if p.turn < len(p.senses) {
		return p.senses[p.turn]
	}
	return game.NoSquare
}

func (p *scriptedPlayer) HandleSenseResult(results []agent.SenseResult) {
	p.senseResults = append(p.senseResults, results)
}

func (p *scriptedPlayer) ChooseMove(moves []game.Move, remaining time.Duration) *game.Move {
	defer func() { p.turn++ }()
	if p.turn >= len(p.moves) || p.moves[p.turn] == "" {
		return nil
	}
	m, err := game.ParseMove(p.moves[p.turn])
	if err != nil {
		panic(err)
	}
	return &m
}

func (p *scriptedPlayer) HandleMoveResult(requested, taken *game.Move, captured bool, square game.Square) {
	p.taken = append(p.taken, taken)
}

func (p *scriptedPlayer) HandleGameEnd(winner game.Color, reason agent.WinReason, history []agent.Turn) {
	p.winner, p.reason, p.ended = winner, reason, true
}

type reportingPlayer struct {
	scriptedPlayer
}

func (p *reportingPlayer) SearchMetric() metrics.SearchMetric {
	return metrics.SearchMetric{MaxDepth: 2, RootMoves: 20}
}

func mustSquare(t *testing.T, s string) game.Square {
	t.Helper()
	sq, err := game.ParseSquare(s)
	require.NoError(t, err)
	return sq
}

func mustMove(t *testing.T, s string) game.Move {
	t.Helper()
	m, err := game.ParseMove(s)
	require.NoError(t, err)
	return m
}

func mustBoard(t *testing.T, fen string) *game.Board {
	t.Helper()
	b, err := game.NewBoardFromFEN(fen)
	require.NoError(t, err)
	return b
}

func TestRun(t *testing.T) {
	t.Run("king capture ends the game", func(t *testing.T) {
		white := &scriptedPlayer{name: "white", moves: []string{"e1e8"}}
		black := &scriptedPlayer{name: "black"}
		e := NewLocalEngine(white, black, WithBoard(mustBoard(t, "4k3/8/8/8/8/8/8/4R2K w - - 0 1")))

		result := e.Run()

		require.Equal(t, game.White, result.Winner)
		require.Equal(t, agent.KingCapture, result.Reason)
		require.Len(t, result.History, 1)
		require.Equal(t, "white", result.Game.Winner)
		require.Equal(t, "king_capture", result.Game.Reason)
		require.True(t, white.ended)
		require.True(t, black.ended)
		require.Equal(t, game.White, black.winner)
		require.Equal(t, mustSquare(t, "e8"), result.History[0].Capture)
	})

	t.Run("turn cap is a draw", func(t *testing.T) {
		white := &scriptedPlayer{name: "white"}
		black := &scriptedPlayer{name: "black"}
		e := NewLocalEngine(white, black, WithMaxTurns(4))

		result := e.Run()

		require.Equal(t, game.NoColor, result.Winner)
		require.Equal(t, agent.TurnLimit, result.Reason)
		require.Len(t, result.History, 4)
		require.Len(t, result.Moves, 4)
		require.Equal(t, "", result.Game.Winner)
		require.Equal(t, 4, result.Game.TotalMoves)
		require.Equal(t, "white", result.Game.White)
		require.Equal(t, "black", result.Game.Black)
		require.Equal(t, []*game.Move{nil, nil}, white.taken, "Passing players should take no moves")
	})

	t.Run("running out of time loses", func(t *testing.T) {
		white := &scriptedPlayer{name: "white", moves: []string{"e2e4"}}
		black := &scriptedPlayer{name: "black"}
		e := NewLocalEngine(white, black, WithTimeBudget(time.Nanosecond))

		result := e.Run()

		require.Equal(t, game.Black, result.Winner)
		require.Equal(t, agent.Timeout, result.Reason)
		require.Len(t, result.History, 1)
	})

	t.Run("hooks follow the game", func(t *testing.T) {
		white := &scriptedPlayer{name: "white", moves: []string{"e2e4", "e4d5"}}
		black := &scriptedPlayer{name: "black", moves: []string{"d7d5"}, senses: []game.Square{mustSquare(t, "e4")}}
		e := NewLocalEngine(white, black, WithMaxTurns(4))

		result := e.Run()

		require.Equal(t, game.White, white.color)
		require.Equal(t, game.Black, black.color)
		require.Equal(t, []opponentResult{{false, game.NoSquare}, {false, game.NoSquare}}, white.opponentResults)
		require.Equal(t, []opponentResult{{false, game.NoSquare}, {true, mustSquare(t, "d5")}}, black.opponentResults)
		require.Equal(t, mustSquare(t, "d5"), result.History[2].Capture)
		require.Equal(t, game.Piece{Kind: game.Pawn, Color: game.White}, e.Board().PieceAt(mustSquare(t, "d5")))

		require.Len(t, black.senseResults[0], 9)
		require.Contains(t, black.senseResults[0], agent.SenseResult{Square: mustSquare(t, "e4"), Piece: game.Piece{Kind: game.Pawn, Color: game.White}})
		require.Empty(t, white.senseResults[0], "No sense should reveal nothing")
	})

	t.Run("search metrics are recorded", func(t *testing.T) {
		white := &reportingPlayer{scriptedPlayer{name: "white"}}
		black := &scriptedPlayer{name: "black"}
		e := NewLocalEngine(white, black, WithMaxTurns(2))

		result := e.Run()

		require.Equal(t, 20, result.Moves[0].RootMoves)
		require.Equal(t, "white", result.Moves[0].Player)
		require.Equal(t, 0, result.Moves[1].RootMoves)
		require.Equal(t, 2, result.Moves[1].Step)
	})
}

func TestSenseResult(t *testing.T) {
	e := NewLocalEngine(&scriptedPlayer{}, &scriptedPlayer{})

	results := e.senseResult(mustSquare(t, "a1"))

	require.Equal(t, []agent.SenseResult{
		{Square: mustSquare(t, "a1"), Piece: game.Piece{Kind: game.Rook, Color: game.White}},
		{Square: mustSquare(t, "b1"), Piece: game.Piece{Kind: game.Knight, Color: game.White}},
		{Square: mustSquare(t, "a2"), Piece: game.Piece{Kind: game.Pawn, Color: game.White}},
		{Square: mustSquare(t, "b2"), Piece: game.Piece{Kind: game.Pawn, Color: game.White}},
	}, results)
}

func TestMoveActions(t *testing.T) {
	t.Run("standard position", func(t *testing.T) {
		e := NewLocalEngine(&scriptedPlayer{}, &scriptedPlayer{})

		require.Len(t, e.moveActions(game.White), 20)
	})

	t.Run("king capture by a pawn promotes", func(t *testing.T) {
		e := NewLocalEngine(&scriptedPlayer{}, &scriptedPlayer{}, WithBoard(mustBoard(t, "7k/6P1/8/8/8/8/8/K7 w - - 0 1")))

		require.Contains(t, e.moveActions(game.White), mustMove(t, "g7h8q"))
	})
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name      string
		fen       string
		requested string // Empty for a pass
		want      string // Empty for a pass
	}{
		{"legal move", "4k3/8/8/8/8/8/4P3/4K3 w - - 0 1", "e2e4", "e2e4"},
		{"pass", "4k3/8/8/8/8/8/4P3/4K3 w - - 0 1", "", ""},
		{"slide stops at an opponent piece", "4k3/8/8/p7/8/8/8/R3K3 w - - 0 1", "a1a8", "a1a5"},
		{"slide blocked by own piece", "4k3/8/8/P7/8/8/8/R3K3 w - - 0 1", "a1a8", ""},
		{"knight cannot be revised", "4k3/8/8/8/8/8/8/1N2K3 w - - 0 1", "b1b4", ""},
		{"pawn promotes to queen", "4k3/P7/8/8/8/8/8/4K3 w - - 0 1", "a7a8", "a7a8q"},
		{"under-promotion is kept", "4k3/P7/8/8/8/8/8/4K3 w - - 0 1", "a7a8n", "a7a8n"},
		{"opponent piece", "4k3/8/8/8/8/8/4p3/4K3 w - - 0 1", "e2e1", ""},
		{"empty square", "4k3/8/8/8/8/8/8/4K3 w - - 0 1", "a2a3", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewLocalEngine(&scriptedPlayer{}, &scriptedPlayer{}, WithBoard(mustBoard(t, tt.fen)))
			var requested *game.Move
			if tt.requested != "" {
				m := mustMove(t, tt.requested)
				requested = &m
			}

			taken := resolve(e.Board(), game.White, requested, e.moveActions(game.White))

			if tt.want == "" {
				require.Nil(t, taken)
				return
			}
			require.NotNil(t, taken)
			require.Equal(t, mustMove(t, tt.want), *taken)
		})
	}
}
