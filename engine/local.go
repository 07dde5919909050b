package engine

import (
	"time"

	"recon/agent"
	"recon/experiments/metrics"
	"recon/game"
	"recon/meta"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/slices"
)

type Option func(e *LocalEngine)

// LocalEngine referees a game between two in-process players on a fully known board.
type LocalEngine struct {
	board      *game.Board
	players    map[game.Color]agent.Player
	maxTurns   int
	timeBudget time.Duration
}

func WithMaxTurns(turns int) Option {
	return func(e *LocalEngine) {
		if turns > 0 {
			e.maxTurns = turns
		}
	}
}

func WithTimeBudget(budget time.Duration) Option {
	return func(e *LocalEngine) {
		if budget > 0 {
			e.timeBudget = budget
		}
	}
}

// WithBoard starts the game from board instead of the standard position. White moves first.
func WithBoard(board *game.Board) Option {
	return func(e *LocalEngine) {
		if board != nil {
			e.board = board.Copy()
		}
	}
}

func NewLocalEngine(white, black agent.Player, options ...Option) *LocalEngine {
	if white == nil || black == nil {
		panic("need two players")
	}
	e := &LocalEngine{ // Default values
		board:      game.NewBoard(),
		players:    map[game.Color]agent.Player{game.White: white, game.Black: black},
		maxTurns:   meta.MAX_TURNS,
		timeBudget: meta.TIME_BUDGET,
	}
	for _, option := range options {
		option(e)
	}
	return e
}

// Board returns the true board. Callers must not modify it.
func (e *LocalEngine) Board() *game.Board {
	return e.board
}

// Run executes the entire game loop until a king is captured, a player runs out of time or
// the turn cap is reached.
func (e *LocalEngine) Run() Result {
	white, black := e.players[game.White], e.players[game.Black]
	white.HandleGameStart(game.White, e.board.Copy(), black.Name())
	black.HandleGameStart(game.Black, e.board.Copy(), white.Name())

	remaining := map[game.Color]time.Duration{game.White: e.timeBudget, game.Black: e.timeBudget}
	result := Result{Winner: game.NoColor, Reason: agent.TurnLimit}
	start := time.Now()
	log.Info().Msgf("%s (white) vs %s (black) is starting", white.Name(), black.Name())

	turn := game.White
	captured := game.NoSquare // Square where the previous move took one of turn's pieces
	step := 1
	for ; step <= e.maxTurns; step++ {
		player := e.players[turn]
		turnStart := time.Now()

		player.HandleOpponentMoveResult(captured.Valid(), captured)

		moves := e.moveActions(turn)
		sense := player.ChooseSense(senseActions(), moves, remaining[turn])
		player.HandleSenseResult(e.senseResult(sense))

		requested := player.ChooseMove(moves, remaining[turn])
		taken := resolve(e.board, turn, requested, moves)
		capture, kingCaptured := game.NoSquare, false
		if taken != nil {
			var piece game.Piece
			piece, capture = e.board.Push(*taken)
			kingCaptured = piece.Kind == game.King
		}
		player.HandleMoveResult(requested, taken, capture.Valid(), capture)

		remaining[turn] -= time.Since(turnStart)
		result.History = append(result.History, agent.Turn{
			Step:      step,
			Color:     turn,
			Sense:     sense,
			Requested: requested,
			Taken:     taken,
			Capture:   capture,
		})
		moveMetric := metrics.MoveMetric{Step: step, Player: turn.String()}
		if reporter, ok := player.(metrics.Reporter); ok {
			moveMetric.SearchMetric = reporter.SearchMetric()
		}
		result.Moves = append(result.Moves, moveMetric)

		log.Debug().
			Int("step", step).
			Str("player", turn.String()).
			Str("sense", sense.String()).
			Str("requested", moveString(requested)).
			Str("taken", moveString(taken)).
			Msg("turn complete")

		if kingCaptured {
			result.Winner, result.Reason = turn, agent.KingCapture
			break
		}
		if remaining[turn] <= 0 {
			result.Winner, result.Reason = turn.Other(), agent.Timeout
			break
		}
		captured = capture
		turn = turn.Other()
	}

	for _, color := range []game.Color{game.White, game.Black} {
		e.players[color].HandleGameEnd(result.Winner, result.Reason, result.History)
	}

	end := time.Now()
	result.Game = metrics.GameMetric{
		White:      white.Name(),
		Black:      black.Name(),
		Reason:     result.Reason.String(),
		StartTime:  start,
		EndTime:    end,
		Duration:   end.Sub(start),
		TotalMoves: len(result.History),
	}
	if result.Winner != game.NoColor {
		result.Game.Winner = result.Winner.String()
	}
	log.Info().Msgf("game over after %d turns, winner: %s (%s)", len(result.History), result.Winner, result.Reason)
	return result
}

// moveActions lists the moves turn may request: the legal moves of the true position plus a
// capture of the opponent's king by each of its attackers. The legal moves come from the rules
// engine, so moves that ignore check or walk into it are not offered, although reconnaissance
// chess would allow them; requesting one is a pass.
func (e *LocalEngine) moveActions(turn game.Color) []game.Move {
	var moves []game.Move
	state, err := e.board.State(turn)
	if err != nil {
		log.Error().Err(err).Msg("true board is not a valid position")
	} else {
		moves = state.LegalMoves()
	}

	king, ok := e.board.KingSquare(turn.Other())
	if !ok {
		return moves
	}
	for _, from := range e.board.Attackers(turn, king) {
		capture := game.Move{From: from, To: king}
		if e.board.PieceAt(from).Kind == game.Pawn && (king.Rank() == 0 || king.Rank() == 7) {
			capture.Promotion = game.Queen
		}
		if !slices.Contains(moves, capture) {
			moves = append(moves, capture)
		}
	}
	return moves
}

func (e *LocalEngine) senseResult(sq game.Square) []agent.SenseResult {
	var results []agent.SenseResult
	for _, s := range game.Window(sq, meta.SENSE_RADIUS) {
		results = append(results, agent.SenseResult{Square: s, Piece: e.board.PieceAt(s)})
	}
	return results
}

// resolve turns a requested move into the move actually played, or nil for a pass. Pawns
// reaching the last rank without a promotion become queens, and a slide blocked by an opponent
// piece stops there and captures it.
func resolve(board *game.Board, turn game.Color, requested *game.Move, moves []game.Move) *game.Move {
	if requested == nil {
		return nil
	}
	move := *requested
	piece := board.PieceAt(move.From)
	if piece.IsEmpty() || piece.Color != turn {
		return nil
	}
	if piece.Kind == game.Pawn && move.Promotion == game.None && (move.To.Rank() == 0 || move.To.Rank() == 7) {
		move.Promotion = game.Queen
	}
	if slices.Contains(moves, move) {
		return &move
	}

	if piece.Kind != game.Bishop && piece.Kind != game.Rook && piece.Kind != game.Queen {
		return nil
	}
	for _, sq := range game.Between(move.From, move.To) {
		blocker := board.PieceAt(sq)
		if blocker.IsEmpty() {
			continue
		}
		revised := game.Move{From: move.From, To: sq}
		if blocker.Color != turn && slices.Contains(moves, revised) {
			return &revised
		}
		return nil
	}
	return nil
}

func senseActions() []game.Square {
	squares := make([]game.Square, 0, game.NumSquares)
	for sq := game.Square(0); sq < game.NumSquares; sq++ {
		squares = append(squares, sq)
	}
	return squares
}

func moveString(m *game.Move) string {
	if m == nil {
		return "pass"
	}
	return m.String()
}
