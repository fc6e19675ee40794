package game

import (
	"fmt"

	"chesskit/internal/shared"
)

func kingHome(c Color) Square {
	if c == White {
		return Square(4)
	}
	return Square(60)
}

func rookHome(c Color, side CastlingSide) Square {
	sq := Square(0)
	if side == shared.CastleKingside {
		sq = Square(7)
	}
	if c == Black {
		sq += 56
	}
	return sq
}

func castleKingTo(c Color, side CastlingSide) Square {
	sq := Square(2)
	if side == shared.CastleKingside {
		sq = Square(6)
	}
	if c == Black {
		sq += 56
	}
	return sq
}

// LegalMoves returns every legal move for the side to move, promotions
// restricted to queen. Order is deterministic: ascending origin square,
// fixed direction-table order per piece.
func (p *Position) LegalMoves() []Move {
	return p.LegalMovesPromoting(shared.PromoteToQueen)
}

// LegalMovesPromoting is LegalMoves with an explicit promotion choice
// set, for callers that want under-promotion.
func (p *Position) LegalMovesPromoting(choices PromotionChoices) []Move {
	pseudo := p.pseudoLegalMoves(choices)
	mover := p.turn
	enemy := mover.Opposite()
	legal := pseudo[:0]
	for _, m := range pseudo {
		next := p.Apply(m)
		if !next.IsAttacked(next.KingSquare(mover), enemy) {
			legal = append(legal, m)
		}
	}
	return legal
}

// MoveFor resolves a requested from/to pair (plus promotion piece, which
// only matters on promotion moves) against the legal move set.
func (p *Position) MoveFor(from, to Square, promotion PieceType) (Move, error) {
	for _, m := range p.LegalMoves() {
		if m.From != from || m.To != to {
			continue
		}
		if m.Is(FlagPromotion) && m.Promotion != promotion {
			continue
		}
		return m, nil
	}
	return Move{}, fmt.Errorf("%w: %s%s for %s", ErrIllegalMove, from, to, p.turn)
}

func (p *Position) pseudoLegalMoves(choices PromotionChoices) []Move {
	moves := make([]Move, 0, 48)
	p.occupancy[p.turn].Iter(func(sq Square) {
		switch p.board[sq].Type {
		case Pawn:
			moves = p.appendPawnMoves(moves, sq, choices)
		case Knight:
			moves = p.appendStepMoves(moves, sq, knightOffsets[:])
		case Bishop:
			moves = p.appendSlidingMoves(moves, sq, bishopDirections[:])
		case Rook:
			moves = p.appendSlidingMoves(moves, sq, rookDirections[:])
		case Queen:
			moves = p.appendSlidingMoves(moves, sq, rookDirections[:])
			moves = p.appendSlidingMoves(moves, sq, bishopDirections[:])
		case King:
			moves = p.appendStepMoves(moves, sq, kingOffsets[:])
			moves = p.appendCastleMoves(moves, sq)
		}
	})
	return moves
}

func (p *Position) appendStepMoves(moves []Move, from Square, deltas []moveDelta) []Move {
	fr, ff := from.Rank(), from.File()
	for _, d := range deltas {
		to, ok := shared.SquareFromCoords(fr+d.dr, ff+d.df)
		if !ok {
			continue
		}
		occupant, occupied := p.PieceAt(to)
		if occupied && occupant.Color == p.turn {
			continue
		}
		m := Move{From: from, To: to}
		if occupied {
			m.Flags |= FlagCapture
		}
		moves = append(moves, m)
	}
	return moves
}

func (p *Position) appendSlidingMoves(moves []Move, from Square, directions []moveDelta) []Move {
	fr, ff := from.Rank(), from.File()
	for _, d := range directions {
		r, f := fr+d.dr, ff+d.df
		for {
			to, ok := shared.SquareFromCoords(r, f)
			if !ok {
				break
			}
			occupant, occupied := p.PieceAt(to)
			if occupied {
				if occupant.Color != p.turn {
					moves = append(moves, Move{From: from, To: to, Flags: FlagCapture})
				}
				break
			}
			moves = append(moves, Move{From: from, To: to})
			r += d.dr
			f += d.df
		}
	}
	return moves
}

func (p *Position) appendPawnMoves(moves []Move, from Square, choices PromotionChoices) []Move {
	dir, startRank, lastRank := 1, 1, 7
	if p.turn == Black {
		dir, startRank, lastRank = -1, 6, 0
	}
	fr, ff := from.Rank(), from.File()

	if to, ok := shared.SquareFromCoords(fr+dir, ff); ok && !p.all.Has(to) {
		moves = appendPawnAdvance(moves, Move{From: from, To: to}, lastRank, choices)
		if fr == startRank {
			if jump, ok2 := shared.SquareFromCoords(fr+2*dir, ff); ok2 && !p.all.Has(jump) {
				moves = append(moves, Move{From: from, To: jump, Flags: FlagDoublePush, Skipped: to})
			}
		}
	}

	for _, df := range [2]int{-1, 1} {
		to, ok := shared.SquareFromCoords(fr+dir, ff+df)
		if !ok {
			continue
		}
		if occupant, occupied := p.PieceAt(to); occupied {
			if occupant.Color != p.turn {
				moves = appendPawnAdvance(moves, Move{From: from, To: to, Flags: FlagCapture}, lastRank, choices)
			}
			continue
		}
		if ep, valid := p.enPassant.Square(); valid && ep == to {
			moves = append(moves, Move{From: from, To: to, Flags: FlagCapture | FlagEnPassant})
		}
	}
	return moves
}

func appendPawnAdvance(moves []Move, m Move, lastRank int, choices PromotionChoices) []Move {
	if m.To.Rank() != lastRank {
		return append(moves, m)
	}
	for _, pt := range choices.Types() {
		promo := m
		promo.Flags |= FlagPromotion
		promo.Promotion = pt
		moves = append(moves, promo)
	}
	return moves
}

// appendCastleMoves emits castle moves whose static conditions hold:
// the right is retained, the rook is home, the squares between king and
// rook are empty, and the king's start, crossed, and destination
// squares are unattacked. The usual legality filter then re-checks the
// destination along with everything else.
func (p *Position) appendCastleMoves(moves []Move, from Square) []Move {
	color := p.turn
	if from != kingHome(color) {
		return moves
	}
	enemy := color.Opposite()
	for _, side := range [2]CastlingSide{shared.CastleKingside, shared.CastleQueenside} {
		if !p.castling.HasSide(color, side) {
			continue
		}
		corner := rookHome(color, side)
		if pc, ok := p.PieceAt(corner); !ok || pc.Color != color || pc.Type != Rook {
			continue
		}
		blocked := false
		for _, sq := range shared.Line(from, corner) {
			if p.all.Has(sq) {
				blocked = true
				break
			}
		}
		if blocked {
			continue
		}
		to := castleKingTo(color, side)
		crossed, _ := shared.SquareFromCoords(from.Rank(), (from.File()+to.File())/2)
		if p.IsAttacked(from, enemy) || p.IsAttacked(crossed, enemy) || p.IsAttacked(to, enemy) {
			continue
		}
		moves = append(moves, Move{From: from, To: to, Flags: FlagCastle, Side: side})
	}
	return moves
}
