package game

import (
	"fmt"
	"strings"
)

type Color int8

const (
	NoColor Color = iota
	White
	Black
)

func (c Color) Other() Color {
	switch c {
	case White:
		return Black
	case Black:
		return White
	}
	return NoColor
}

func (c Color) String() string {
	switch c {
	case White:
		return "white"
	case Black:
		return "black"
	}
	return "none"
}

// PieceKind numbering matches the usual 1..6 ordering, with None for an empty square.
type PieceKind int8

const (
	None PieceKind = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

var kindNames = [...]string{"none", "pawn", "knight", "bishop", "rook", "queen", "king"}

func (k PieceKind) String() string {
	if k < None || k > King {
		return "unknown"
	}
	return kindNames[k]
}

// ParsePieceKind accepts the names returned by PieceKind.String.
func ParsePieceKind(s string) (PieceKind, error) {
	for i, name := range kindNames {
		if strings.EqualFold(s, name) {
			return PieceKind(i), nil
		}
	}
	return None, fmt.Errorf("unknown piece kind %q", s)
}

// Piece is a colored piece; the zero value is an empty square.
type Piece struct {
	Kind  PieceKind
	Color Color
}

var NoPiece = Piece{}

func (p Piece) IsEmpty() bool {
	return p.Kind == None
}

// Move is a from/to pair with an optional promotion kind.
type Move struct {
	From      Square
	To        Square
	Promotion PieceKind
}

// String returns the move in UCI notation.
func (m Move) String() string {
	s := m.From.String() + m.To.String()
	switch m.Promotion {
	case Knight:
		s += "n"
	case Bishop:
		s += "b"
	case Rook:
		s += "r"
	case Queen:
		s += "q"
	}
	return s
}

// ParseMove parses a move in UCI notation, e.g. "e2e4" or "e7e8q".
func ParseMove(s string) (Move, error) {
	if len(s) != 4 && len(s) != 5 {
		return Move{}, fmt.Errorf("%w: %q", ErrInvalidMove, s)
	}
	from, err := ParseSquare(s[:2])
	if err != nil {
		return Move{}, fmt.Errorf("%w: %q: %w", ErrInvalidMove, s, err)
	}
	to, err := ParseSquare(s[2:4])
	if err != nil {
		return Move{}, fmt.Errorf("%w: %q: %w", ErrInvalidMove, s, err)
	}
	m := Move{From: from, To: to}
	if len(s) == 5 {
		switch s[4] {
		case 'n':
			m.Promotion = Knight
		case 'b':
			m.Promotion = Bishop
		case 'r':
			m.Promotion = Rook
		case 'q':
			m.Promotion = Queen
		default:
			return Move{}, fmt.Errorf("%w: bad promotion in %q", ErrInvalidMove, s)
		}
	}
	return m, nil
}
