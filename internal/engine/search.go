package engine

import (
	"math"
	"math/rand"
	"sort"

	"chesskit/internal/game"
)

// SelectMove picks a move for the side to play. Depth 0 plays a
// uniformly random legal move; depth 1 and up runs negamax with
// alpha-beta pruning, deterministically: ties go to the move ordered
// first. The false return happens only in terminal positions.
func SelectMove(p *game.Position, depth int) (game.Move, bool) {
	moves := p.LegalMoves()
	if len(moves) == 0 {
		return game.Move{}, false
	}
	if depth <= 0 {
		return moves[rand.Intn(len(moves))], true
	}

	orderMoves(p, moves)
	best := moves[0]
	bestScore := math.Inf(-1)
	alpha, beta := math.Inf(-1), math.Inf(1)
	for _, m := range moves {
		child := p.Apply(m)
		score := -negamax(&child, depth-1, -beta, -alpha)
		if score > bestScore {
			bestScore = score
			best = m
		}
		if score > alpha {
			alpha = score
		}
	}
	return best, true
}

func negamax(p *game.Position, depth int, alpha, beta float64) float64 {
	if depth == 0 {
		return PerspectiveScore(p)
	}
	moves := p.LegalMoves()
	if len(moves) == 0 {
		if p.InCheck(p.SideToMove()) {
			return math.Inf(-1)
		}
		return 0
	}
	orderMoves(p, moves)
	best := math.Inf(-1)
	for _, m := range moves {
		child := p.Apply(m)
		score := -negamax(&child, depth-1, -beta, -alpha)
		if score > best {
			best = score
		}
		if score > alpha {
			alpha = score
		}
		if alpha >= beta {
			break
		}
	}
	return best
}

// orderMoves puts captures first, most valuable victim with least
// valuable attacker leading. Quiet moves keep generation order.
func orderMoves(p *game.Position, moves []game.Move) {
	gain := func(m game.Move) (int, bool) {
		if !m.Is(game.FlagCapture) {
			return 0, false
		}
		victim := game.Pawn
		if !m.Is(game.FlagEnPassant) {
			if pc, ok := p.PieceAt(m.To); ok {
				victim = pc.Type
			}
		}
		attacker := game.Pawn
		if pc, ok := p.PieceAt(m.From); ok {
			attacker = pc.Type
		}
		return pieceValue(victim) - pieceValue(attacker), true
	}
	sort.SliceStable(moves, func(i, j int) bool {
		gi, ci := gain(moves[i])
		gj, cj := gain(moves[j])
		if ci != cj {
			return ci
		}
		return ci && gi > gj
	})
}
