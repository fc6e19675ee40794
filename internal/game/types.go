package game

import (
	"strings"

	"chesskit/internal/shared"
)

type (
	Color            = shared.Color
	PieceType        = shared.PieceType
	Square           = shared.Square
	CastlingRights   = shared.CastlingRights
	CastlingSide     = shared.CastlingSide
	EnPassantTarget  = shared.EnPassantTarget
	PromotionChoices = shared.PromotionChoices
)

const (
	White = shared.White
	Black = shared.Black

	Pawn   = shared.Pawn
	Knight = shared.Knight
	Bishop = shared.Bishop
	Rook   = shared.Rook
	Queen  = shared.Queen
	King   = shared.King
)

func CoordToSquare(coord string) (Square, bool) { return shared.CoordToSquare(coord) }

func ParsePromotionPiece(s string) (PieceType, bool) { return shared.ParsePromotionPiece(s) }

// Piece is a colored piece occupying a square. The zero value is only
// meaningful on squares the occupancy bitboards mark as occupied.
type Piece struct {
	Color Color
	Type  PieceType
}

func (pc Piece) String() string {
	return string(pc.Type.Letter(pc.Color))
}

type MoveFlags uint8

const (
	FlagCapture MoveFlags = 1 << iota
	FlagEnPassant
	FlagPromotion
	FlagCastle
	FlagDoublePush
)

// Move is one candidate move. From, To and Flags are always set;
// Promotion, Side and Skipped are meaningful only when the
// corresponding flag is present.
type Move struct {
	From      Square
	To        Square
	Flags     MoveFlags
	Promotion PieceType
	Side      CastlingSide
	Skipped   Square
}

func (m Move) Is(f MoveFlags) bool { return m.Flags&f != 0 }

// String renders coordinate notation, e.g. "e2e4" or "e7e8q".
func (m Move) String() string {
	s := m.From.String() + m.To.String()
	if m.Is(FlagPromotion) {
		s += strings.ToLower(m.Promotion.String())
	}
	return s
}
