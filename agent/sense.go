package agent

import (
	"recon/game"
	"recon/searcher"

	"golang.org/x/exp/slices"
)

// SenseSelector picks the square to sense each turn.
type SenseSelector struct {
	perimeter []game.Square
	rand      searcher.Source
}

func NewSenseSelector(perimeter []game.Square, src searcher.Source) *SenseSelector {
	if src == nil {
		panic("sense selector needs a random source")
	}
	return &SenseSelector{
		perimeter: slices.Clone(perimeter),
		rand:      src,
	}
}

// Choose senses where one of color's pieces was just captured, if any. Otherwise it picks
// uniformly among the actions that neither hold one of color's pieces on board nor lie on the
// perimeter, falling back to all actions when that leaves nothing.
func (s *SenseSelector) Choose(actions []game.Square, board *game.Board, color game.Color, captured game.Square) game.Square {
	if captured.Valid() {
		return captured
	}
	if len(actions) == 0 {
		return game.NoSquare
	}

	own := board.Pieces(color)
	candidates := make([]game.Square, 0, len(actions))
	for _, sq := range actions {
		if slices.Contains(own, sq) || slices.Contains(s.perimeter, sq) {
			continue
		}
		candidates = append(candidates, sq)
	}
	if len(candidates) == 0 {
		candidates = actions
	}
	return candidates[s.rand.Intn(len(candidates))]
}
