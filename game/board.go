package game

import (
	"fmt"
	"strings"

	"github.com/notnil/chess"
)

type castleRight uint8

const (
	whiteKingSide castleRight = 1 << iota
	whiteQueenSide
	blackKingSide
	blackQueenSide
)

// Board is a mutable piece placement with castling and en passant bookkeeping. Agents keep
// their belief about the true position in one, and the local harness keeps the true position
// in another. Moves pushed onto a Board are applied as given, without legality checks, since a
// belief board routinely disagrees with the moves the harness reports.
type Board struct {
	squares   placement
	castling  castleRight
	enPassant Square
}

// NewBoard returns the standard starting placement.
func NewBoard() *Board {
	b, err := NewBoardFromFEN(chess.StartingPosition().String())
	if err != nil {
		panic(err)
	}
	return b
}

// NewBoardFromFEN builds a Board from the placement, castling and en passant fields of fen.
func NewBoardFromFEN(fen string) (*Board, error) {
	opt, err := chess.FEN(fen)
	if err != nil {
		return nil, fmt.Errorf("decoding fen %q: %w", fen, err)
	}
	pos := chess.NewGame(opt).Position()
	b := &Board{enPassant: NoSquare}
	for sq := Square(0); sq < NumSquares; sq++ {
		b.squares[sq] = pieceFromChess(pos.Board().Piece(chess.Square(sq)))
	}
	rights := pos.CastleRights()
	if rights.CanCastle(chess.White, chess.KingSide) {
		b.castling |= whiteKingSide
	}
	if rights.CanCastle(chess.White, chess.QueenSide) {
		b.castling |= whiteQueenSide
	}
	if rights.CanCastle(chess.Black, chess.KingSide) {
		b.castling |= blackKingSide
	}
	if rights.CanCastle(chess.Black, chess.QueenSide) {
		b.castling |= blackQueenSide
	}
	if ep := pos.EnPassantSquare(); ep != chess.NoSquare {
		b.enPassant = Square(ep)
	}
	return b, nil
}

func (b *Board) Copy() *Board {
	c := *b
	return &c
}

func (b *Board) PieceAt(sq Square) Piece {
	if !sq.Valid() {
		return NoPiece
	}
	return b.squares[sq]
}

func (b *Board) SetPiece(sq Square, p Piece) {
	if !sq.Valid() {
		return
	}
	b.squares[sq] = p
	b.dropStaleRights()
}

// RemovePiece empties sq and returns whatever stood there.
func (b *Board) RemovePiece(sq Square) Piece {
	if !sq.Valid() {
		return NoPiece
	}
	p := b.squares[sq]
	b.squares[sq] = NoPiece
	b.dropStaleRights()
	return p
}

// Pieces returns the squares holding c's pieces in ascending order.
func (b *Board) Pieces(c Color) []Square {
	var squares []Square
	for sq := Square(0); sq < NumSquares; sq++ {
		if !b.squares[sq].IsEmpty() && b.squares[sq].Color == c {
			squares = append(squares, sq)
		}
	}
	return squares
}

func (b *Board) KingSquare(c Color) (Square, bool) {
	return b.squares.kingSquare(c)
}

func (b *Board) Attackers(c Color, sq Square) []Square {
	return b.squares.attackers(c, sq)
}

// Push applies m and returns the captured piece and the square it was taken on, or NoPiece
// and NoSquare. Castling moves the rook, en passant removes the passed pawn and promotions
// replace the pawn.
func (b *Board) Push(m Move) (Piece, Square) {
	if !m.From.Valid() || !m.To.Valid() {
		return NoPiece, NoSquare
	}
	piece := b.squares[m.From]
	captured, captureSquare := b.squares[m.To], m.To
	if captured.IsEmpty() {
		captureSquare = NoSquare
	}

	switch {
	case piece.Kind == Pawn && m.From.File() != m.To.File() && captured.IsEmpty():
		passed := NewSquare(m.To.File(), m.From.Rank())
		if v := b.squares[passed]; v.Kind == Pawn && v.Color != piece.Color {
			captured, captureSquare = v, passed
			b.squares[passed] = NoPiece
		}
	case piece.Kind == King && abs(m.To.File()-m.From.File()) == 2:
		rank := m.From.Rank()
		rookFrom, rookTo := NewSquare(7, rank), NewSquare(5, rank)
		if m.To.File() < m.From.File() {
			rookFrom, rookTo = NewSquare(0, rank), NewSquare(3, rank)
		}
		b.squares[rookTo] = b.squares[rookFrom]
		b.squares[rookFrom] = NoPiece
	}

	b.squares[m.From] = NoPiece
	if m.Promotion != None && !piece.IsEmpty() {
		piece.Kind = m.Promotion
	}
	b.squares[m.To] = piece

	b.enPassant = NoSquare
	if piece.Kind == Pawn && abs(m.To.Rank()-m.From.Rank()) == 2 {
		b.enPassant = NewSquare(m.From.File(), (m.From.Rank()+m.To.Rank())/2)
	}
	b.dropStaleRights()
	return captured, captureSquare
}

// FEN renders the board with turn to move. Castling rights are only written while the king and
// rook still stand on their home squares, and the en passant square only when turn could take.
func (b *Board) FEN(turn Color) string {
	pieces := make(map[chess.Square]chess.Piece)
	for sq := Square(0); sq < NumSquares; sq++ {
		if !b.squares[sq].IsEmpty() {
			pieces[chess.Square(sq)] = pieceToChess(b.squares[sq])
		}
	}

	var sb strings.Builder
	sb.WriteString(chess.NewBoard(pieces).String())
	sb.WriteString(" " + fenTurn(turn) + " ")

	castling := ""
	for _, r := range []struct {
		right castleRight
		code  string
	}{{whiteKingSide, "K"}, {whiteQueenSide, "Q"}, {blackKingSide, "k"}, {blackQueenSide, "q"}} {
		if b.castling&r.right != 0 {
			castling += r.code
		}
	}
	if castling == "" {
		castling = "-"
	}
	sb.WriteString(castling)

	ep := "-"
	if b.enPassant.Valid() && ((turn == White && b.enPassant.Rank() == 5) || (turn == Black && b.enPassant.Rank() == 2)) {
		ep = b.enPassant.String()
	}
	sb.WriteString(" " + ep + " 0 1")
	return sb.String()
}

// State returns an immutable view of the board with turn to move.
func (b *Board) State(turn Color) (State, error) {
	return NewState(b.FEN(turn))
}

func (b *Board) dropStaleRights() {
	home := []struct {
		right      castleRight
		king, rook Square
		color      Color
	}{
		{whiteKingSide, 4, 7, White},
		{whiteQueenSide, 4, 0, White},
		{blackKingSide, 60, 63, Black},
		{blackQueenSide, 60, 56, Black},
	}
	for _, h := range home {
		if b.squares[h.king] != (Piece{Kind: King, Color: h.color}) || b.squares[h.rook] != (Piece{Kind: Rook, Color: h.color}) {
			b.castling &^= h.right
		}
	}
}
