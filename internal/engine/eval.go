package engine

import "chesskit/internal/game"

var pieceValues = [...]int{
	game.Pawn:   100,
	game.Knight: 320,
	game.Bishop: 330,
	game.Rook:   500,
	game.Queen:  900,
	game.King:   20000,
}

const mobilityWeight = 1.5

func pieceValue(pt game.PieceType) int {
	if int(pt) < len(pieceValues) {
		return pieceValues[pt]
	}
	return 0
}

// Evaluate scores the position from White's point of view: material
// plus a weighted mobility differential between the side to move and
// the side displaced to move.
func Evaluate(p *game.Position) float64 {
	material := 0
	p.EachPiece(func(_ game.Square, pc game.Piece) {
		v := pieceValue(pc.Type)
		if pc.Color == game.White {
			material += v
		} else {
			material -= v
		}
	})

	own := len(p.LegalMoves())
	flipped := p.WithSideToMove(p.SideToMove().Opposite())
	opp := len(flipped.LegalMoves())
	mobility := mobilityWeight * float64(own-opp)
	if p.SideToMove() == game.Black {
		mobility = -mobility
	}
	return float64(material) + mobility
}

// PerspectiveScore is Evaluate negated for a Black mover, the shape
// negamax consumes.
func PerspectiveScore(p *game.Position) float64 {
	score := Evaluate(p)
	if p.SideToMove() == game.Black {
		return -score
	}
	return score
}
