package game

import "math/bits"

// Bitboard is a set of squares, bit n for square n.
type Bitboard uint64

func (b Bitboard) Has(sq Square) bool { return b&(1<<sq) != 0 }

func (b Bitboard) With(sq Square) Bitboard { return b | 1<<sq }

func (b Bitboard) Without(sq Square) Bitboard { return b &^ (1 << sq) }

func (b Bitboard) Count() int { return bits.OnesCount64(uint64(b)) }

// Iter calls fn for every set square in ascending order.
func (b Bitboard) Iter(fn func(Square)) {
	for b != 0 {
		sq := Square(bits.TrailingZeros64(uint64(b)))
		b &= b - 1
		fn(sq)
	}
}
