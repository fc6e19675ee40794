package game

import "chesskit/internal/shared"

// Apply plays m and returns the resulting position. The receiver is
// untouched. m must come from the position's own move generation;
// arbitrary input goes through MoveFor first.
func (p Position) Apply(m Move) Position {
	pc, ok := p.PieceAt(m.From)
	if !ok {
		panic(errInvariantf("apply %s: no piece on %s", m, m.From))
	}
	mover := pc.Color

	if m.Is(FlagEnPassant) {
		dir := 1
		if mover == Black {
			dir = -1
		}
		victim, ok := shared.SquareFromCoords(m.To.Rank()-dir, m.To.File())
		if !ok {
			panic(errInvariantf("apply %s: en-passant victim off board", m))
		}
		p.clear(victim)
	}

	// A capture on a rook's home square takes that rook's castling
	// right with it.
	if m.Is(FlagCapture) && !m.Is(FlagEnPassant) {
		if victim, ok := p.PieceAt(m.To); ok && victim.Type == Rook {
			p.castling = p.castling.Without(castlingRightForRook(victim.Color, m.To))
		}
	}

	p.clear(m.From)
	p.put(m.To, pc)

	if m.Is(FlagPromotion) {
		p.put(m.To, Piece{Color: mover, Type: m.Promotion})
	}

	switch pc.Type {
	case King:
		p.castling = p.castling.WithoutColor(mover)
		if m.Is(FlagCastle) {
			p.relocateCastleRook(mover, m.Side)
		}
	case Rook:
		p.castling = p.castling.Without(castlingRightForRook(mover, m.From))
	}

	if m.Is(FlagDoublePush) {
		p.enPassant = shared.NewEnPassantTarget(m.Skipped)
	} else {
		p.enPassant = shared.NoEnPassantTarget()
	}

	if pc.Type == Pawn || m.Is(FlagCapture) {
		p.halfmove = 0
	} else {
		p.halfmove++
	}

	p.turn = mover.Opposite()
	if p.turn == White {
		p.fullmove++
	}
	return p
}

func (p *Position) relocateCastleRook(color Color, side CastlingSide) {
	from := rookHome(color, side)
	kingTo := castleKingTo(color, side)
	toFile := kingTo.File() + 1
	if side == shared.CastleKingside {
		toFile = kingTo.File() - 1
	}
	to, ok := shared.SquareFromCoords(kingTo.Rank(), toFile)
	if !ok {
		panic(errInvariantf("castle rook destination off board for %s %s", color, side))
	}
	rook, found := p.PieceAt(from)
	if !found || rook.Type != Rook {
		panic(errInvariantf("castle without a rook on %s", from))
	}
	p.clear(from)
	p.put(to, rook)
}

func castlingRightForRook(color Color, sq Square) CastlingRights {
	switch sq {
	case rookHome(color, shared.CastleKingside):
		return shared.CastlingRight(color, shared.CastleKingside)
	case rookHome(color, shared.CastleQueenside):
		return shared.CastlingRight(color, shared.CastleQueenside)
	default:
		return shared.CastlingNone
	}
}
