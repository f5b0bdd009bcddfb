// Package notation converts between text and the goosemg types: FEN for
// positions, long algebraic (UCI) and SAN for moves.
package notation

import (
	"fmt"
	"strconv"
	"strings"

	gm "chess-core/goosemg"
)

// FENStartPos is the FEN string for the standard initial chess position.
const FENStartPos = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

const pieceChars = "PNBRQKpnbrqk"

func pieceFromChar(ch rune) gm.Piece {
	i := strings.IndexRune(pieceChars, ch)
	if i < 0 {
		return gm.NoPiece
	}
	color := gm.White
	if i >= 6 {
		color = gm.Black
	}
	return gm.PieceFromType(color, gm.PieceType(i%6+1))
}

func syntaxErr(format string, args ...any) error {
	return fmt.Errorf("%w: fen: "+format, append([]any{gm.ErrInvalidPosition}, args...)...)
}

// ParseFEN decodes a FEN string into a setup. The halfmove and fullmove
// fields may be omitted and default to 0 and 1.
func ParseFEN(fen string) (gm.Setup, error) {
	s := gm.Setup{EnPassantSquare: gm.NoSquare, FullmoveNumber: 1}
	fields := strings.Fields(fen)
	if len(fields) < 4 || len(fields) > 6 {
		return s, syntaxErr("expected 4 to 6 fields, got %d", len(fields))
	}

	ranks := strings.Split(fields[0], "/")
	if len(ranks) != 8 {
		return s, syntaxErr("incorrect number of ranks")
	}
	for i, rankStr := range ranks {
		rank := 7 - i
		file := 0
		for _, ch := range rankStr {
			if ch >= '1' && ch <= '8' {
				file += int(ch - '0')
				continue
			}
			piece := pieceFromChar(ch)
			if piece == gm.NoPiece {
				return s, syntaxErr("unrecognized piece character %q", ch)
			}
			if file >= 8 {
				return s, syntaxErr("too many squares in rank %d", rank+1)
			}
			s.Pieces[gm.SquareAt(file, rank)] = piece
			file++
		}
		if file != 8 {
			return s, syntaxErr("rank %d does not have 8 columns", rank+1)
		}
	}

	switch fields[1] {
	case "w":
		s.SideToMove = gm.White
	case "b":
		s.SideToMove = gm.Black
	default:
		return s, syntaxErr("side to move must be 'w' or 'b'")
	}

	if fields[2] != "-" {
		for _, ch := range fields[2] {
			var cr gm.CastlingRights
			switch ch {
			case 'K':
				cr = gm.CastlingWhiteK
			case 'Q':
				cr = gm.CastlingWhiteQ
			case 'k':
				cr = gm.CastlingBlackK
			case 'q':
				cr = gm.CastlingBlackQ
			default:
				return s, syntaxErr("invalid castling rights character %q", ch)
			}
			s.CastlingRights |= cr
		}
	}

	if fields[3] != "-" {
		sq, err := ParseSquare(fields[3])
		if err != nil {
			return s, syntaxErr("en passant: %v", err)
		}
		s.EnPassantSquare = sq
	}

	if len(fields) > 4 {
		n, err := strconv.Atoi(fields[4])
		if err != nil {
			return s, syntaxErr("halfmove clock is not a number")
		}
		s.HalfmoveClock = n
	}
	if len(fields) > 5 {
		n, err := strconv.Atoi(fields[5])
		if err != nil {
			return s, syntaxErr("fullmove number is not a number")
		}
		s.FullmoveNumber = n
	}
	return s, nil
}

// BoardFromFEN parses fen and builds a validated board from it.
func BoardFromFEN(fen string) (*gm.Board, error) {
	s, err := ParseFEN(fen)
	if err != nil {
		return nil, err
	}
	return gm.NewBoard(s)
}

// MustBoard is BoardFromFEN for fixed positions in tools and tests; it panics
// on error.
func MustBoard(fen string) *gm.Board {
	b, err := BoardFromFEN(fen)
	if err != nil {
		panic(err)
	}
	return b
}

// FormatFEN produces the FEN string of a setup.
func FormatFEN(s gm.Setup) string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			p := s.Pieces[gm.SquareAt(file, rank)]
			if p == gm.NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte('0' + byte(empty))
				empty = 0
			}
			sb.WriteString(p.String())
		}
		if empty > 0 {
			sb.WriteByte('0' + byte(empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	if s.SideToMove == gm.White {
		sb.WriteString(" w ")
	} else {
		sb.WriteString(" b ")
	}

	if s.CastlingRights == gm.CastlingNone {
		sb.WriteByte('-')
	}
	for i, cr := range []gm.CastlingRights{gm.CastlingWhiteK, gm.CastlingWhiteQ, gm.CastlingBlackK, gm.CastlingBlackQ} {
		if s.CastlingRights&cr != 0 {
			sb.WriteByte("KQkq"[i])
		}
	}
	sb.WriteByte(' ')
	sb.WriteString(s.EnPassantSquare.String())
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(s.HalfmoveClock))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(s.FullmoveNumber))
	return sb.String()
}

// FEN is shorthand for FormatFEN(b.Setup()).
func FEN(b *gm.Board) string { return FormatFEN(b.Setup()) }
