package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAttackers(t *testing.T) {
	tests := []struct {
		name   string
		fen    string
		by     Color
		target string
		want   []string
	}{
		{"rook along an open file", "4k3/8/8/8/8/8/8/4R2K w - - 0 1", White, "e8", []string{"e1"}},
		{"rook blocked by a piece", "4k3/8/8/4p3/8/8/8/4R2K w - - 0 1", White, "e8", nil},
		{"bishop on a diagonal", "7k/8/8/8/8/8/8/B6K w - - 0 1", White, "h8", []string{"a1"}},
		{"queen along a file", "k7/8/8/8/8/8/8/Q6K w - - 0 1", White, "a8", []string{"a1"}},
		{"knight jump", "4k3/8/3N4/8/8/8/8/7K w - - 0 1", White, "e8", []string{"d6"}},
		{"white pawns attack upwards", "4k3/8/8/8/8/8/3P1P2/7K w - - 0 1", White, "e3", []string{"d2", "f2"}},
		{"black pawns attack downwards", "4k3/8/8/8/4p3/8/8/7K w - - 0 1", Black, "d3", []string{"e4"}},
		{"pawns do not attack forwards", "4k3/8/8/8/8/8/4P3/7K w - - 0 1", White, "e3", nil},
		{"adjacent king", "8/8/8/8/8/8/5k2/7K w - - 0 1", Black, "g1", []string{"f2"}},
		{"several attackers in square order", "4k3/8/8/8/8/5N2/8/R3K2R w - - 0 1", White, "e1", []string{"a1", "h1", "f3"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := mustState(t, tt.fen)
			var want []Square
			for _, sq := range tt.want {
				want = append(want, mustSquare(t, sq))
			}

			got := s.Attackers(tt.by, mustSquare(t, tt.target))

			require.Equal(t, want, got)
		})
	}
}

func TestKingSquare(t *testing.T) {
	s := mustState(t, "8/8/8/8/8/8/5k2/7K w - - 0 1")

	white, ok := s.KingSquare(White)
	require.True(t, ok)
	require.Equal(t, mustSquare(t, "h1"), white)

	b := mustBoard(t, "8/8/8/8/8/8/8/7K w - - 0 1")
	_, ok = b.KingSquare(Black)
	require.False(t, ok, "Missing king should not be found")
}
