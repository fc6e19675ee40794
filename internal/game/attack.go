package game

import "chesskit/internal/shared"

type moveDelta struct {
	dr int
	df int
}

var (
	rookDirections   = [...]moveDelta{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	bishopDirections = [...]moveDelta{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
	knightOffsets    = [...]moveDelta{{2, 1}, {1, 2}, {-1, 2}, {-2, 1}, {-2, -1}, {-1, -2}, {1, -2}, {2, -1}}
	kingOffsets      = [...]moveDelta{{1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}, {0, -1}, {1, -1}}
)

// IsAttacked reports whether any piece of color by attacks target. It
// scans attacker candidates outward from the target instead of
// generating moves, so it works in positions where the attacker has no
// legal move at all.
func (p *Position) IsAttacked(target Square, by Color) bool {
	tr, tf := target.Rank(), target.File()

	// A pawn attacks from one rank behind the target, relative to its
	// own direction of travel.
	pawnRank := tr - 1
	if by == Black {
		pawnRank = tr + 1
	}
	for _, df := range [2]int{-1, 1} {
		if sq, ok := shared.SquareFromCoords(pawnRank, tf+df); ok {
			if pc, found := p.PieceAt(sq); found && pc.Color == by && pc.Type == Pawn {
				return true
			}
		}
	}

	for _, d := range knightOffsets {
		if sq, ok := shared.SquareFromCoords(tr+d.dr, tf+d.df); ok {
			if pc, found := p.PieceAt(sq); found && pc.Color == by && pc.Type == Knight {
				return true
			}
		}
	}

	for _, d := range kingOffsets {
		if sq, ok := shared.SquareFromCoords(tr+d.dr, tf+d.df); ok {
			if pc, found := p.PieceAt(sq); found && pc.Color == by && pc.Type == King {
				return true
			}
		}
	}

	for _, d := range rookDirections {
		if p.rayHits(tr, tf, d, by, Rook) {
			return true
		}
	}
	for _, d := range bishopDirections {
		if p.rayHits(tr, tf, d, by, Bishop) {
			return true
		}
	}
	return false
}

// rayHits walks outward from (rank, file) along d and reports whether
// the first occupied square holds a matching slider or queen of color by.
func (p *Position) rayHits(rank, file int, d moveDelta, by Color, slider PieceType) bool {
	r, f := rank+d.dr, file+d.df
	for {
		sq, ok := shared.SquareFromCoords(r, f)
		if !ok {
			return false
		}
		if pc, found := p.PieceAt(sq); found {
			return pc.Color == by && (pc.Type == slider || pc.Type == Queen)
		}
		r += d.dr
		f += d.df
	}
}
