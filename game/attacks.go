package game

var knightJumps = [8][2]int{{1, 2}, {2, 1}, {2, -1}, {1, -2}, {-1, -2}, {-2, -1}, {-2, 1}, {-1, 2}}

// placement is a piece-per-square view shared by Board and the chess-backed State.
type placement [NumSquares]Piece

// attacks reports whether the piece on from attacks target, ignoring pins and whose turn it is.
func (p *placement) attacks(from, target Square) bool {
	piece := p[from]
	df := target.File() - from.File()
	dr := target.Rank() - from.Rank()
	switch piece.Kind {
	case Pawn:
		forward := 1
		if piece.Color == Black {
			forward = -1
		}
		return dr == forward && (df == 1 || df == -1)
	case Knight:
		for _, j := range knightJumps {
			if df == j[0] && dr == j[1] {
				return true
			}
		}
	case King:
		return from != target && abs(df) <= 1 && abs(dr) <= 1
	case Bishop:
		return abs(df) == abs(dr) && df != 0 && p.clear(from, target)
	case Rook:
		return (df == 0) != (dr == 0) && p.clear(from, target)
	case Queen:
		straight := (df == 0) != (dr == 0)
		diagonal := abs(df) == abs(dr) && df != 0
		return (straight || diagonal) && p.clear(from, target)
	}
	return false
}

// clear reports whether every square strictly between from and target on a line is empty.
func (p *placement) clear(from, target Square) bool {
	stepF := sign(target.File() - from.File())
	stepR := sign(target.Rank() - from.Rank())
	f, r := from.File()+stepF, from.Rank()+stepR
	for {
		sq := NewSquare(f, r)
		if sq == target {
			return true
		}
		if sq == NoSquare || !p[sq].IsEmpty() {
			return false
		}
		f += stepF
		r += stepR
	}
}

func (p *placement) attackers(c Color, target Square) []Square {
	if !target.Valid() {
		return nil
	}
	var squares []Square
	for sq := Square(0); sq < NumSquares; sq++ {
		if p[sq].Color == c && !p[sq].IsEmpty() && p.attacks(sq, target) {
			squares = append(squares, sq)
		}
	}
	return squares
}

func (p *placement) kingSquare(c Color) (Square, bool) {
	for sq := Square(0); sq < NumSquares; sq++ {
		if p[sq] == (Piece{Kind: King, Color: c}) {
			return sq, true
		}
	}
	return NoSquare, false
}

func (p *placement) inCheck(c Color) bool {
	king, ok := p.kingSquare(c)
	if !ok {
		return false
	}
	return len(p.attackers(c.Other(), king)) > 0
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}
