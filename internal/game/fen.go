package game

import (
	"fmt"
	"strconv"
	"strings"

	"chesskit/internal/shared"
)

// StartFEN is the serialized form of NewPosition().
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// FEN serializes the position. ParseFEN(p.FEN()) reproduces p exactly.
func (p *Position) FEN() string {
	var b strings.Builder
	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			pc, ok := p.PieceAt(Square(rank*8 + file))
			if !ok {
				empty++
				continue
			}
			if empty > 0 {
				b.WriteByte(byte('0' + empty))
				empty = 0
			}
			b.WriteByte(pc.Type.Letter(pc.Color))
		}
		if empty > 0 {
			b.WriteByte(byte('0' + empty))
		}
		if rank > 0 {
			b.WriteByte('/')
		}
	}
	turn := "w"
	if p.turn == Black {
		turn = "b"
	}
	return fmt.Sprintf("%s %s %s %s %d %d", b.String(), turn, p.castling, p.enPassant, p.halfmove, p.fullmove)
}

// ParseFEN builds a position from FEN text. The clock fields may be
// omitted and default to 0 and 1. Anything else missing or unreadable
// is ErrMalformedFEN; the zero Position returned alongside it carries
// no partial state.
func ParseFEN(s string) (Position, error) {
	fields := strings.Fields(s)
	if len(fields) < 4 {
		return Position{}, fmt.Errorf("%w: want at least 4 fields, got %d", ErrMalformedFEN, len(fields))
	}

	var p Position
	ranks := strings.Split(fields[0], "/")
	if len(ranks) != 8 {
		return Position{}, fmt.Errorf("%w: want 8 ranks, got %d", ErrMalformedFEN, len(ranks))
	}
	for i, row := range ranks {
		rank := 7 - i
		file := 0
		for j := 0; j < len(row); j++ {
			c := row[j]
			if c >= '1' && c <= '8' {
				file += int(c - '0')
				continue
			}
			pt, color, ok := shared.PieceFromLetter(c)
			if !ok {
				return Position{}, fmt.Errorf("%w: unknown piece %q", ErrMalformedFEN, string(c))
			}
			sq, onBoard := shared.SquareFromCoords(rank, file)
			if !onBoard {
				return Position{}, fmt.Errorf("%w: rank %d overflows", ErrMalformedFEN, rank+1)
			}
			p.put(sq, Piece{Color: color, Type: pt})
			file++
		}
		if file != 8 {
			return Position{}, fmt.Errorf("%w: rank %d covers %d files", ErrMalformedFEN, rank+1, file)
		}
	}

	switch fields[1] {
	case "w":
		p.turn = White
	case "b":
		p.turn = Black
	default:
		return Position{}, fmt.Errorf("%w: side to move %q", ErrMalformedFEN, fields[1])
	}

	castling, err := shared.ParseCastlingRights(fields[2])
	if err != nil {
		return Position{}, fmt.Errorf("%w: %v", ErrMalformedFEN, err)
	}
	p.castling = castling

	ep, err := shared.ParseEnPassantTarget(fields[3])
	if err != nil {
		return Position{}, fmt.Errorf("%w: %v", ErrMalformedFEN, err)
	}
	p.enPassant = ep

	p.halfmove = 0
	p.fullmove = 1
	if len(fields) > 4 {
		n, err := strconv.Atoi(fields[4])
		if err != nil || n < 0 {
			return Position{}, fmt.Errorf("%w: halfmove clock %q", ErrMalformedFEN, fields[4])
		}
		p.halfmove = n
	}
	if len(fields) > 5 {
		n, err := strconv.Atoi(fields[5])
		if err != nil || n < 1 {
			return Position{}, fmt.Errorf("%w: fullmove number %q", ErrMalformedFEN, fields[5])
		}
		p.fullmove = n
	}

	for _, c := range [2]Color{White, Black} {
		kings := 0
		p.occupancy[c].Iter(func(sq Square) {
			if p.board[sq].Type == King {
				kings++
			}
		})
		if kings != 1 {
			return Position{}, fmt.Errorf("%w: %s has %d kings", ErrMalformedFEN, c, kings)
		}
	}
	return p, nil
}
