package game

type Status uint8

const (
	StatusOngoing Status = iota
	StatusCheckmate
	StatusStalemate
)

func (s Status) String() string {
	switch s {
	case StatusOngoing:
		return "ongoing"
	case StatusCheckmate:
		return "checkmate"
	case StatusStalemate:
		return "stalemate"
	default:
		return "?"
	}
}

func (s Status) Terminal() bool { return s != StatusOngoing }

func (p *Position) InCheck(c Color) bool {
	return p.IsAttacked(p.KingSquare(c), c.Opposite())
}

// Status classifies the position. The second result is the loser and is
// meaningful only for checkmate, where it names the side to move. The
// fifty-move clock is reported through HalfmoveClock but never turns a
// position terminal here.
func (p *Position) Status() (Status, Color) {
	if len(p.LegalMoves()) > 0 {
		return StatusOngoing, White
	}
	if p.InCheck(p.turn) {
		return StatusCheckmate, p.turn
	}
	return StatusStalemate, White
}
