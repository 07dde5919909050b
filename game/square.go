package game

import "fmt"

// Square indexes the board from a1 (0) to h8 (63).
type Square int8

const NoSquare Square = -1

const NumSquares = 64

func NewSquare(file, rank int) Square {
	if file < 0 || file > 7 || rank < 0 || rank > 7 {
		return NoSquare
	}
	return Square(rank*8 + file)
}

func (sq Square) File() int { return int(sq) % 8 }
func (sq Square) Rank() int { return int(sq) / 8 }

func (sq Square) Valid() bool {
	return sq >= 0 && sq < NumSquares
}

func (sq Square) String() string {
	if !sq.Valid() {
		return "-"
	}
	return string([]byte{byte('a' + sq.File()), byte('1' + sq.Rank())})
}

func ParseSquare(s string) (Square, error) {
	if len(s) != 2 || s[0] < 'a' || s[0] > 'h' || s[1] < '1' || s[1] > '8' {
		return NoSquare, fmt.Errorf("%w: %q", ErrInvalidSquare, s)
	}
	return NewSquare(int(s[0]-'a'), int(s[1]-'1')), nil
}

// Perimeter returns the 28 edge squares in ascending order.
func Perimeter() []Square {
	squares := make([]Square, 0, 28)
	for sq := Square(0); sq < NumSquares; sq++ {
		if sq.File() == 0 || sq.File() == 7 || sq.Rank() == 0 || sq.Rank() == 7 {
			squares = append(squares, sq)
		}
	}
	return squares
}

// Window returns the squares within radius of center on both axes, clipped to the board,
// in ascending order.
func Window(center Square, radius int) []Square {
	if !center.Valid() {
		return nil
	}
	var squares []Square
	for r := center.Rank() - radius; r <= center.Rank()+radius; r++ {
		for f := center.File() - radius; f <= center.File()+radius; f++ {
			if sq := NewSquare(f, r); sq != NoSquare {
				squares = append(squares, sq)
			}
		}
	}
	return squares
}

// Between returns the squares strictly between from and to, nearest to from first, when the
// two share a rank, file or diagonal. Otherwise it returns nil.
func Between(from, to Square) []Square {
	if !from.Valid() || !to.Valid() || from == to {
		return nil
	}
	df, dr := to.File()-from.File(), to.Rank()-from.Rank()
	if df != 0 && dr != 0 && abs(df) != abs(dr) {
		return nil
	}
	stepF, stepR := sign(df), sign(dr)
	var squares []Square
	for f, r := from.File()+stepF, from.Rank()+stepR; NewSquare(f, r) != to; f, r = f+stepF, r+stepR {
		squares = append(squares, NewSquare(f, r))
	}
	return squares
}
