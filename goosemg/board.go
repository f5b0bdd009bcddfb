package goosemg

import "math/bits"

// Piece constants and types for pieces and colors
type Piece uint8

const (
	NoPiece     Piece = 0
	WhitePawn   Piece = 1
	WhiteKnight Piece = 2
	WhiteBishop Piece = 3
	WhiteRook   Piece = 4
	WhiteQueen  Piece = 5
	WhiteKing   Piece = 6

	// Black pieces are encoded as (white piece type | 8) so that
	// - piece & 7 gives the type in [1..6]
	// - piece & 8 != 0 indicates Black
	BlackPawn   Piece = 1 | 8
	BlackKnight Piece = 2 | 8
	BlackBishop Piece = 3 | 8
	BlackRook   Piece = 4 | 8
	BlackQueen  Piece = 5 | 8
	BlackKing   Piece = 6 | 8
)

// PieceType is a colorless representation of a chess piece used for table lookups.
type PieceType uint8

const (
	PieceTypeNone   PieceType = 0
	PieceTypePawn   PieceType = 1
	PieceTypeKnight PieceType = 2
	PieceTypeBishop PieceType = 3
	PieceTypeRook   PieceType = 4
	PieceTypeQueen  PieceType = 5
	PieceTypeKing   PieceType = 6
)

// Type returns the colorless type of the piece (ignores side).
func (p Piece) Type() PieceType { return PieceType(p & 7) }

// Color returns the side that owns the piece. NoPiece defaults to White.
func (p Piece) Color() Color {
	if p&8 != 0 {
		return Black
	}
	return White
}

// PieceFromType combines a colorless type with a side to produce a concrete Piece.
func PieceFromType(color Color, pt PieceType) Piece {
	if pt == PieceTypeNone || pt > PieceTypeKing {
		return NoPiece
	}
	return Piece(pt) | Piece(color)<<3
}

func (p Piece) String() string {
	if p.Type() == PieceTypeNone || p.Type() > PieceTypeKing {
		return "."
	}
	c := " PNBRQK"[p.Type()]
	if p.Color() == Black {
		c += 'a' - 'A'
	}
	return string(c)
}

type Color uint8

const (
	White Color = 0
	Black Color = 1
)

// Other returns the opposing side.
func (c Color) Other() Color { return c ^ 1 }

func (c Color) String() string {
	if c == White {
		return "white"
	}
	return "black"
}

// Castling rights bit flags
type CastlingRights uint8

const (
	// White king-side (short) castling
	CastlingWhiteK CastlingRights = 1 << iota
	// White queen-side (long) castling
	CastlingWhiteQ
	// Black king-side castling
	CastlingBlackK
	// Black queen-side castling
	CastlingBlackQ

	CastlingNone CastlingRights = 0
	CastlingAll                 = CastlingWhiteK | CastlingWhiteQ | CastlingBlackK | CastlingBlackQ
)

// Bitboards exposes the per-piece bitboards of one color.
type Bitboards struct {
	Pawns   uint64
	Knights uint64
	Bishops uint64
	Rooks   uint64
	Queens  uint64
	Kings   uint64
	All     uint64
}

// Board represents the chess position: piece placement and game state.
type Board struct {
	// Piece bitboards indexed by color and PieceType (index 0 unused).
	pieceBB [2][7]uint64

	// Occupancy per side and their union, kept in step with pieceBB.
	occupancy [2]uint64
	all       uint64

	// Piece placement array for each square (0 = NoPiece, otherwise a Piece constant)
	pieces [64]Piece

	sideToMove     Color
	castlingRights CastlingRights

	// En passant target square (if a pawn moved two steps last move, otherwise NoSquare)
	enPassantSquare Square

	// Half-moves since the last capture or pawn advance (50-move rule).
	halfmoveClock int

	// Starts at 1, incremented after Black's move.
	fullmoveNumber int

	zobristKey uint64

	// Keys of the positions preceding each move made on this board.
	history []uint64

	// len(history) right after the latest null move still on the board;
	// repetitions are not matched across it.
	nullBoundary int
}

// Clone returns an independent copy of the board.
func (b *Board) Clone() *Board {
	c := *b
	c.history = make([]uint64, len(b.history), len(b.history)+64)
	copy(c.history, b.history)
	return &c
}

// HalfmoveClock accessor for testing/consumers that want read-only access.
func (b *Board) HalfmoveClock() int { return b.halfmoveClock }

// FullmoveNumber returns the full move counter (incremented after Black's move).
func (b *Board) FullmoveNumber() int { return b.fullmoveNumber }

// EnPassantSquare returns the current en-passant target square or NoSquare.
func (b *Board) EnPassantSquare() Square { return b.enPassantSquare }

// SideToMove reports which side is to play.
func (b *Board) SideToMove() Color { return b.sideToMove }

// CastlingRights returns the current castling rights mask.
func (b *Board) CastlingRights() CastlingRights { return b.castlingRights }

// Hash returns the current Zobrist hash key.
func (b *Board) Hash() uint64 { return b.zobristKey }

// History returns the keys of all earlier positions, oldest first.
func (b *Board) History() []uint64 { return b.history }

// Pieces returns the bitboard of one piece type of one color.
func (b *Board) Pieces(c Color, pt PieceType) uint64 { return b.pieceBB[c][pt] }

// Bitboards returns the per-piece bitboards for the requested side.
func (b *Board) Bitboards(color Color) Bitboards {
	p := &b.pieceBB[color]
	return Bitboards{
		Pawns:   p[PieceTypePawn],
		Knights: p[PieceTypeKnight],
		Bishops: p[PieceTypeBishop],
		Rooks:   p[PieceTypeRook],
		Queens:  p[PieceTypeQueen],
		Kings:   p[PieceTypeKing],
		All:     b.occupancy[color],
	}
}

// AllOccupancy returns a bitboard of all occupied squares.
func (b *Board) AllOccupancy() uint64 { return b.all }

// ColorOccupancy returns the occupancy bitboard for the given color.
func (b *Board) ColorOccupancy(c Color) uint64 { return b.occupancy[c] }

// PieceAt returns the piece on a square.
func (b *Board) PieceAt(sq Square) Piece { return b.pieces[sq] }

// KingSquare returns the square of c's king, or NoSquare if it has none.
func (b *Board) KingSquare(c Color) Square {
	k := b.pieceBB[c][PieceTypeKing]
	if k == 0 {
		return NoSquare
	}
	return Square(bits.TrailingZeros64(k))
}

// addPiece places a piece on an empty square and updates bitboards, occupancy and zobrist.
func (b *Board) addPiece(sq Square, p Piece) {
	if p == NoPiece {
		return
	}
	m := bb(sq)
	c := p.Color()
	b.pieces[sq] = p
	b.pieceBB[c][p.Type()] |= m
	b.occupancy[c] |= m
	b.all |= m
	b.zobristKey ^= zobristPiece[p][sq]
}

// removePiece removes a piece from a square and updates bitboards, occupancy and zobrist.
func (b *Board) removePiece(sq Square) Piece {
	p := b.pieces[sq]
	if p == NoPiece {
		return NoPiece
	}
	m := ^bb(sq)
	c := p.Color()
	b.pieces[sq] = NoPiece
	b.pieceBB[c][p.Type()] &= m
	b.occupancy[c] &= m
	b.all &= m
	b.zobristKey ^= zobristPiece[p][sq]
	return p
}

// shiftPiece moves p between two squares; the destination must be empty.
func (b *Board) shiftPiece(from, to Square, p Piece) {
	m := bb(from) | bb(to)
	c := p.Color()
	b.pieces[from] = NoPiece
	b.pieces[to] = p
	b.pieceBB[c][p.Type()] ^= m
	b.occupancy[c] ^= m
	b.all ^= m
	b.zobristKey ^= zobristPiece[p][from] ^ zobristPiece[p][to]
}

// Validate checks internal consistency between pieces[], the piece bitboards,
// occupancy, kings and the Zobrist key.
func (b *Board) Validate() error {
	var pbb [2][7]uint64
	var occ [2]uint64
	for sq := Square(0); sq < 64; sq++ {
		p := b.pieces[sq]
		if p == NoPiece {
			continue
		}
		pt := p.Type()
		if pt == PieceTypeNone || pt > PieceTypeKing {
			return &InvariantError{Msg: "bad piece code on " + sq.String()}
		}
		pbb[p.Color()][pt] |= bb(sq)
		occ[p.Color()] |= bb(sq)
	}
	if pbb != b.pieceBB {
		return &InvariantError{Msg: "piece bitboards disagree with mailbox"}
	}
	if occ != b.occupancy || occ[White]|occ[Black] != b.all || occ[White]&occ[Black] != 0 {
		return &InvariantError{Msg: "occupancy out of sync"}
	}
	for c := White; c <= Black; c++ {
		if bits.OnesCount64(b.pieceBB[c][PieceTypeKing]) != 1 {
			return &InvariantError{Msg: c.String() + " does not have exactly one king"}
		}
	}
	if b.zobristKey != b.ComputeZobrist() {
		return &InvariantError{Msg: "incremental zobrist differs from recomputed key"}
	}
	return nil
}

// mustValidate panics if the board is internally inconsistent.
func (b *Board) mustValidate() {
	if err := b.Validate(); err != nil {
		panic(err)
	}
}
