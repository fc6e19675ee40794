package game

import (
	"fmt"
	"strings"

	"chesskit/internal/shared"
)

// Position is the full state of a game at one point in time. It is a
// comparable value: applying a move yields a new Position and never
// touches the old one, so callers keep history by keeping values.
type Position struct {
	board     [64]Piece
	occupancy [2]Bitboard
	all       Bitboard
	turn      Color
	castling  CastlingRights
	enPassant EnPassantTarget
	halfmove  int
	fullmove  int
}

// NewPosition returns the standard starting position.
func NewPosition() Position {
	var p Position
	back := [8]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	for file := 0; file < 8; file++ {
		p.put(Square(file), Piece{Color: White, Type: back[file]})
		p.put(Square(8+file), Piece{Color: White, Type: Pawn})
		p.put(Square(48+file), Piece{Color: Black, Type: Pawn})
		p.put(Square(56+file), Piece{Color: Black, Type: back[file]})
	}
	p.turn = White
	p.castling = shared.CastlingAll
	p.fullmove = 1
	return p
}

func (p *Position) PieceAt(sq Square) (Piece, bool) {
	if !p.all.Has(sq) {
		return Piece{}, false
	}
	return p.board[sq], true
}

func (p *Position) SideToMove() Color { return p.turn }

func (p *Position) Castling() CastlingRights { return p.castling }

func (p *Position) EnPassant() EnPassantTarget { return p.enPassant }

func (p *Position) HalfmoveClock() int { return p.halfmove }

func (p *Position) FullmoveNumber() int { return p.fullmove }

// EachPiece calls fn for every occupied square in ascending order.
func (p *Position) EachPiece(fn func(Square, Piece)) {
	p.all.Iter(func(sq Square) {
		fn(sq, p.board[sq])
	})
}

// KingSquare locates the king of the given color. A side without a king
// is unreachable through the public API, so a miss panics.
func (p *Position) KingSquare(c Color) Square {
	var king Square
	found := false
	p.occupancy[c].Iter(func(sq Square) {
		if p.board[sq].Type == King {
			king = sq
			found = true
		}
	})
	if !found {
		panic(fmt.Errorf("%w: no %s king on the board", ErrInvariant, c))
	}
	return king
}

// WithSideToMove returns a copy with the given side to move. When the
// side actually changes the en-passant target is dropped, since it
// belonged to the displaced mover.
func (p Position) WithSideToMove(c Color) Position {
	if c != p.turn {
		p.turn = c
		p.enPassant = shared.NoEnPassantTarget()
	}
	return p
}

// String renders an ASCII diagram, rank 8 at the top.
func (p *Position) String() string {
	var b strings.Builder
	for rank := 7; rank >= 0; rank-- {
		fmt.Fprintf(&b, "%d ", rank+1)
		for file := 0; file < 8; file++ {
			pc, ok := p.PieceAt(Square(rank*8 + file))
			if !ok {
				b.WriteString(" .")
				continue
			}
			b.WriteByte(' ')
			b.WriteByte(pc.Type.Letter(pc.Color))
		}
		b.WriteByte('\n')
	}
	b.WriteString("   a b c d e f g h\n")
	fmt.Fprintf(&b, "%s to move, castling %s, ep %s, clocks %d/%d\n",
		p.turn, p.castling, p.enPassant, p.halfmove, p.fullmove)
	return b.String()
}

func (p *Position) put(sq Square, pc Piece) {
	if p.all.Has(sq) {
		p.clear(sq)
	}
	p.board[sq] = pc
	p.occupancy[pc.Color] = p.occupancy[pc.Color].With(sq)
	p.all = p.all.With(sq)
}

func (p *Position) clear(sq Square) {
	if !p.all.Has(sq) {
		return
	}
	pc := p.board[sq]
	p.board[sq] = Piece{}
	p.occupancy[pc.Color] = p.occupancy[pc.Color].Without(sq)
	p.all = p.all.Without(sq)
}
