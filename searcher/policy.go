package searcher

import "recon/game"

// Source draws uniform integers in [0, n). *rand.Rand from golang.org/x/exp/rand satisfies it.
type Source interface {
	Intn(n int) int
}

// sampleSize returns floor(n / 2^shift), never negative.
func sampleSize(n, shift int) int {
	if n <= 0 {
		return 0
	}
	if shift <= 0 {
		return n
	}
	if shift >= 63 {
		return 0
	}
	return n >> shift
}

// sample draws k moves uniformly with replacement.
func sample(moves []game.Move, k int, src Source) []game.Move {
	if k <= 0 || len(moves) == 0 {
		return nil
	}
	sampled := make([]game.Move, k)
	for i := range sampled {
		sampled[i] = moves[src.Intn(len(moves))]
	}
	return sampled
}
