package game

import (
	"fmt"

	"github.com/notnil/chess"
)

// chessState implements State on top of a notnil/chess position.
type chessState struct {
	pos *chess.Position

	generated bool
	moves     []*chess.Move // engine moves, index-aligned with legal
	legal     []Move
	squares   *placement
}

// NewState decodes a FEN string into a State. Positions the rules engine cannot handle, such
// as a side without a king, are reported as ErrInvalidPosition.
func NewState(fen string) (state State, err error) {
	opt, err := chess.FEN(fen)
	if err != nil {
		return nil, fmt.Errorf("decoding fen %q: %w", fen, err)
	}
	defer func() {
		if r := recover(); r != nil {
			state, err = nil, fmt.Errorf("%w: %s: %v", ErrInvalidPosition, fen, r)
		}
	}()
	return &chessState{pos: chess.NewGame(opt).Position()}, nil
}

// StartingState returns the standard initial position with white to move.
func StartingState() State {
	return &chessState{pos: chess.StartingPosition()}
}

func (s *chessState) Turn() Color {
	return colorFromChess(s.pos.Turn())
}

func (s *chessState) LegalMoves() []Move {
	s.generate()
	moves := make([]Move, len(s.legal))
	copy(moves, s.legal)
	return moves
}

func (s *chessState) generate() {
	if s.generated {
		return
	}
	s.moves = s.pos.ValidMoves()
	s.legal = make([]Move, len(s.moves))
	for i, m := range s.moves {
		s.legal[i] = moveFromChess(m)
	}
	s.generated = true
}

func (s *chessState) Play(move Move) (State, error) {
	s.generate()
	for i, m := range s.legal {
		if m == move {
			return &chessState{pos: s.pos.Update(s.moves[i])}, nil
		}
	}
	return nil, fmt.Errorf("%w: %s in %s", ErrIllegalMove, move, s.pos)
}

func (s *chessState) PieceAt(sq Square) Piece {
	if !sq.Valid() {
		return NoPiece
	}
	return s.placement()[sq]
}

func (s *chessState) InCheck() bool {
	return s.placement().inCheck(s.Turn())
}

func (s *chessState) KingSquare(c Color) (Square, bool) {
	return s.placement().kingSquare(c)
}

func (s *chessState) Attackers(c Color, sq Square) []Square {
	return s.placement().attackers(c, sq)
}

func (s *chessState) WithTurn(c Color) (State, error) {
	return NewState(s.pos.Board().String() + " " + fenTurn(c) + " - - 0 1")
}

// String returns the position as FEN.
func (s *chessState) String() string {
	return s.pos.String()
}

func (s *chessState) placement() *placement {
	if s.squares != nil {
		return s.squares
	}
	var p placement
	board := s.pos.Board()
	for sq := Square(0); sq < NumSquares; sq++ {
		p[sq] = pieceFromChess(board.Piece(chess.Square(sq)))
	}
	s.squares = &p
	return s.squares
}

func colorFromChess(c chess.Color) Color {
	switch c {
	case chess.White:
		return White
	case chess.Black:
		return Black
	}
	return NoColor
}

func kindFromChess(t chess.PieceType) PieceKind {
	switch t {
	case chess.Pawn:
		return Pawn
	case chess.Knight:
		return Knight
	case chess.Bishop:
		return Bishop
	case chess.Rook:
		return Rook
	case chess.Queen:
		return Queen
	case chess.King:
		return King
	}
	return None
}

func pieceFromChess(p chess.Piece) Piece {
	if p == chess.NoPiece {
		return NoPiece
	}
	return Piece{Kind: kindFromChess(p.Type()), Color: colorFromChess(p.Color())}
}

func pieceToChess(p Piece) chess.Piece {
	color := chess.White
	if p.Color == Black {
		color = chess.Black
	}
	var kind chess.PieceType
	switch p.Kind {
	case Pawn:
		kind = chess.Pawn
	case Knight:
		kind = chess.Knight
	case Bishop:
		kind = chess.Bishop
	case Rook:
		kind = chess.Rook
	case Queen:
		kind = chess.Queen
	case King:
		kind = chess.King
	default:
		return chess.NoPiece
	}
	return chess.NewPiece(kind, color)
}

func moveFromChess(m *chess.Move) Move {
	return Move{
		From:      Square(m.S1()),
		To:        Square(m.S2()),
		Promotion: kindFromChess(m.Promo()),
	}
}

func fenTurn(c Color) string {
	if c == Black {
		return "b"
	}
	return "w"
}
