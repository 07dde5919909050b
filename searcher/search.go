package searcher

import (
	"errors"
	"fmt"
	"math"
	"time"

	"recon/experiments/metrics"
	"recon/game"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

var (
	ErrNoLegalMoves = errors.New("no legal moves")
	ErrNoCandidates = errors.New("no scored candidates")
)

type Option func(fs *ForwardSearch)

// ForwardSearch scores each legal move by a sampled, discounted lookahead in which the
// searching player moves at every ply. It is not adversarial: the opponent's replies are never
// played.
type ForwardSearch struct {
	maxDepth  int
	discount  float64
	values    PieceValues
	penalties CheckPenalties
	rand      Source
	metrics   metrics.Collector
	last      metrics.SearchMetric
}

func WithMaxDepth(depth int) Option {
	return func(fs *ForwardSearch) {
		if depth >= 0 {
			fs.maxDepth = depth
		}
	}
}

func WithDiscount(discount float64) Option {
	return func(fs *ForwardSearch) {
		if discount > 0 && discount < 1 {
			fs.discount = discount
		}
	}
}

func WithPieceValues(values PieceValues) Option {
	return func(fs *ForwardSearch) {
		if values != nil {
			fs.values = make(PieceValues, len(values))
			for kind, value := range values {
				fs.values[kind] = value
			}
		}
	}
}

func WithCheckPenalties(penalties CheckPenalties) Option {
	return func(fs *ForwardSearch) {
		fs.penalties = penalties
	}
}

// WithRand injects the source used to sample moves.
func WithRand(src Source) Option {
	return func(fs *ForwardSearch) {
		if src != nil {
			fs.rand = src
		}
	}
}

// WithSeed samples moves from a golang.org/x/exp/rand generator seeded with seed.
func WithSeed(seed uint64) Option {
	return WithRand(rand.New(rand.NewSource(seed)))
}

func WithMetrics() Option {
	return func(fs *ForwardSearch) {
		fs.metrics = metrics.NewCollector()
	}
}

func NewForwardSearch(options ...Option) *ForwardSearch {
	fs := &ForwardSearch{ // Default values
		maxDepth:  DefaultMaxDepth,
		discount:  DefaultDiscount,
		values:    DefaultPieceValues(),
		penalties: DefaultCheckPenalties(),
		metrics:   metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(fs)
	}
	if fs.rand == nil {
		fs.rand = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}
	return fs
}

func (fs *ForwardSearch) MaxDepth() int     { return fs.maxDepth }
func (fs *ForwardSearch) Discount() float64 { return fs.discount }

// SearchMetric returns the metrics of the last SelectMove call. They are zero unless the
// search was built WithMetrics.
func (fs *ForwardSearch) SearchMetric() metrics.SearchMetric {
	return fs.last
}

// SelectMove picks player's move in state. A visible king that player attacks is captured
// outright; otherwise the forward search decides. It reports false when the player should
// pass: no legal moves, or the rules engine failed mid-search.
func (fs *ForwardSearch) SelectMove(state game.State, player game.Color) (move game.Move, ok bool) {
	fs.metrics.Start(fs.maxDepth, fs.discount)
	defer func() {
		if r := recover(); r != nil {
			log.Error().Msgf("forward search aborted: %v", r)
			move, ok = game.Move{}, false
		}
		fs.last = fs.metrics.Complete()
	}()

	if capture, found := KingCapture(state, player); found {
		fs.metrics.SetKingCapture()
		log.Info().Str("player", player.String()).Str("move", capture.String()).Msg("capturing exposed king")
		return capture, true
	}

	move, err := fs.Search(state, player)
	if err != nil {
		log.Warn().Err(err).Str("player", player.String()).Msg("forward search failed, passing")
		return game.Move{}, false
	}
	return move, true
}

// Search runs the forward search from state with player to move at every ply.
func (fs *ForwardSearch) Search(state game.State, player game.Color) (game.Move, error) {
	root := state
	if state.Turn() != player {
		var err error
		if root, err = state.WithTurn(player); err != nil {
			return game.Move{}, fmt.Errorf("setting %s to move: %w", player, err)
		}
	}

	moves := root.LegalMoves()
	if len(moves) == 0 {
		return game.Move{}, ErrNoLegalMoves
	}
	fs.metrics.AddRootMoves(len(moves))

	candidates := make([]node, 0, len(moves))
	for _, move := range moves {
		next, err := root.Play(move)
		if err != nil {
			return game.Move{}, fmt.Errorf("playing root move %s: %w", move, err)
		}
		value, err := fs.expand(next, player, fs.maxDepth)
		if err != nil {
			return game.Move{}, fmt.Errorf("searching after %s: %w", move, err)
		}
		candidates = append(candidates, node{depth: fs.maxDepth, move: move, value: value})
	}

	chosen, ok := best(candidates)
	if !ok {
		return game.Move{}, ErrNoCandidates
	}
	log.Debug().
		Str("move", chosen.move.String()).
		Float64("value", chosen.value).
		Int("candidates", len(candidates)).
		Msg("forward search complete")
	return chosen.move, nil
}

// expand values state for player. A single running value walks the sampled moves: a move's
// immediate reward replaces it when larger, and while depth remains the move's discounted
// continuation is added to it. A capture late in the sample therefore only counts when it beats
// everything accumulated before it.
func (fs *ForwardSearch) expand(state game.State, player game.Color, depth int) (float64, error) {
	frozen, err := state.WithTurn(player)
	if err != nil {
		return 0, fmt.Errorf("setting %s to move: %w", player, err)
	}

	moves := frozen.LegalMoves()
	k := sampleSize(len(moves), fs.maxDepth-depth)
	fs.metrics.AddNode(k)
	if k == 0 {
		return 0, nil
	}

	weight := math.Pow(fs.discount, float64(fs.maxDepth-depth))
	value := 0.0
	for _, move := range sample(moves, k, fs.rand) {
		captured := frozen.PieceAt(move.To).Kind
		next, err := frozen.Play(move)
		if err != nil {
			return 0, fmt.Errorf("playing %s: %w", move, err)
		}
		// next has the opponent to move, so this penalises giving check
		if reward := fs.values.For(captured) + fs.penalties.For(next.InCheck()); reward > value {
			value = reward
		}

		if depth > 0 {
			child, err := fs.expand(next, player, depth-1)
			if err != nil {
				return 0, err
			}
			value += weight * child
		}
	}
	return value, nil
}

// KingCapture returns a move taking the opponent's king when its square is known and one of
// player's pieces attacks it. The attacker on the lowest square is used.
func KingCapture(state game.State, player game.Color) (game.Move, bool) {
	king, ok := state.KingSquare(player.Other())
	if !ok {
		return game.Move{}, false
	}
	attackers := state.Attackers(player, king)
	if len(attackers) == 0 {
		return game.Move{}, false
	}
	move := game.Move{From: attackers[0], To: king}
	if state.PieceAt(move.From).Kind == game.Pawn && (king.Rank() == 0 || king.Rank() == 7) {
		move.Promotion = game.Queen
	}
	return move, true
}
