package goosemg

import (
	"fmt"
	"math/bits"
)

// Setup is the decoded description of a position handed over by whatever
// parsed it (a FEN reader, a GUI, a binding). The board never parses text.
type Setup struct {
	Pieces          [64]Piece
	SideToMove      Color
	CastlingRights  CastlingRights
	EnPassantSquare Square // NoSquare when absent
	HalfmoveClock   int
	FullmoveNumber  int
}

// StartingSetup returns the standard initial position.
func StartingSetup() Setup {
	s := Setup{EnPassantSquare: NoSquare, CastlingRights: CastlingAll, FullmoveNumber: 1}
	back := [8]PieceType{
		PieceTypeRook, PieceTypeKnight, PieceTypeBishop, PieceTypeQueen,
		PieceTypeKing, PieceTypeBishop, PieceTypeKnight, PieceTypeRook,
	}
	for f := 0; f < 8; f++ {
		s.Pieces[SquareAt(f, 0)] = PieceFromType(White, back[f])
		s.Pieces[SquareAt(f, 1)] = WhitePawn
		s.Pieces[SquareAt(f, 6)] = BlackPawn
		s.Pieces[SquareAt(f, 7)] = PieceFromType(Black, back[f])
	}
	return s
}

// NewStartingBoard returns a board set up in the initial position.
func NewStartingBoard() *Board {
	b, err := NewBoard(StartingSetup())
	if err != nil {
		panic(err)
	}
	return b
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidPosition}, args...)...)
}

// NewBoard validates a setup and builds a board from it. Any setup that could
// not arise in a legal game of chess is rejected with ErrInvalidPosition.
func NewBoard(s Setup) (*Board, error) {
	b := &Board{
		enPassantSquare: NoSquare,
		history:         make([]uint64, 0, 128),
	}
	for sq := Square(0); sq < 64; sq++ {
		p := s.Pieces[sq]
		if p == NoPiece {
			continue
		}
		if pt := p.Type(); pt == PieceTypeNone || pt > PieceTypeKing || p&^15 != 0 {
			return nil, invalid("bad piece code %d on %v", p, sq)
		}
		if p.Type() == PieceTypePawn && bb(sq)&(Rank1|Rank8) != 0 {
			return nil, invalid("pawn on back rank %v", sq)
		}
		b.addPiece(sq, p)
	}
	for c := White; c <= Black; c++ {
		if n := bits.OnesCount64(b.pieceBB[c][PieceTypeKing]); n != 1 {
			return nil, invalid("%v has %d kings", c, n)
		}
		if bits.OnesCount64(b.pieceBB[c][PieceTypePawn]) > 8 || bits.OnesCount64(b.occupancy[c]) > 16 {
			return nil, invalid("%v has too many pieces", c)
		}
	}
	if s.SideToMove > Black {
		return nil, invalid("bad side to move %d", s.SideToMove)
	}
	b.sideToMove = s.SideToMove

	if s.CastlingRights&^CastlingAll != 0 {
		return nil, invalid("bad castling rights %#x", s.CastlingRights)
	}
	for _, side := range castleSpecs {
		for _, cs := range side {
			if s.CastlingRights&cs.right == 0 {
				continue
			}
			rFrom, _ := castleRookSquares(cs.kingTo)
			c := Color(0)
			if cs.kingFrom == E8 {
				c = Black
			}
			if b.pieces[cs.kingFrom] != PieceFromType(c, PieceTypeKing) || b.pieces[rFrom] != PieceFromType(c, PieceTypeRook) {
				return nil, invalid("castling right without king and rook in place")
			}
		}
	}
	b.castlingRights = s.CastlingRights

	if ep := s.EnPassantSquare; ep != NoSquare {
		if ep < 0 || ep > 63 {
			return nil, invalid("en passant square %d off board", ep)
		}
		// The pawn that just double-pushed sits in front of ep, from the
		// mover's point of view, and the squares it crossed are empty.
		wantRank, victim, origin := 5, ep-8, ep+8
		if s.SideToMove == Black {
			wantRank, victim, origin = 2, ep+8, ep-8
		}
		if ep.Rank() != wantRank || b.pieces[victim] != PieceFromType(s.SideToMove.Other(), PieceTypePawn) ||
			b.pieces[ep] != NoPiece || b.pieces[origin] != NoPiece {
			return nil, invalid("en passant square %v inconsistent with the board", ep)
		}
	}
	b.enPassantSquare = s.EnPassantSquare

	if s.HalfmoveClock < 0 {
		return nil, invalid("negative halfmove clock")
	}
	if s.FullmoveNumber < 1 {
		return nil, invalid("fullmove number must be positive")
	}
	b.halfmoveClock = s.HalfmoveClock
	b.fullmoveNumber = s.FullmoveNumber

	if b.InCheck(b.sideToMove.Other()) {
		return nil, invalid("side not to move is in check")
	}
	b.zobristKey = b.ComputeZobrist()
	return b, nil
}

// Setup returns the decoded description of the board, the inverse of NewBoard.
func (b *Board) Setup() Setup {
	return Setup{
		Pieces:          b.pieces,
		SideToMove:      b.sideToMove,
		CastlingRights:  b.castlingRights,
		EnPassantSquare: b.enPassantSquare,
		HalfmoveClock:   b.halfmoveClock,
		FullmoveNumber:  b.fullmoveNumber,
	}
}
