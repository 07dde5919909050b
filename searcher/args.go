package searcher

import "recon/game"

// Hyperparameters for the forward search

const DefaultMaxDepth = 2 // Tree depth is DefaultMaxDepth + 1 plies below the root
const DefaultDiscount = 0.75

// PieceValues maps the kind of piece captured by a move to its reward. Kinds missing from
// the table are worth 0.
type PieceValues map[game.PieceKind]float64

func DefaultPieceValues() PieceValues {
	return PieceValues{
		game.None:   0,
		game.Pawn:   1,
		game.Knight: 3,
		game.Bishop: 3,
		game.Rook:   5,
		game.Queen:  9,
		game.King:   100,
	}
}

func (v PieceValues) For(kind game.PieceKind) float64 {
	return v[kind]
}

// CheckPenalties is the reward for a move depending on whether the resulting position is check.
type CheckPenalties struct {
	Check   float64
	NoCheck float64
}

func DefaultCheckPenalties() CheckPenalties {
	return CheckPenalties{Check: -80, NoCheck: 0}
}

func (p CheckPenalties) For(check bool) float64 {
	if check {
		return p.Check
	}
	return p.NoCheck
}
