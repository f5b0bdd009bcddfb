package goosemg

import "strings"

// Move encodes a chess move in a 32-bit value. Moves carry the moving and
// captured piece so they can be made and unmade without consulting the board.
type Move uint32

// Bitfield layout within Move (from LSB to MSB)
const (
	moveFromShift    = 0  // 6 bits
	moveToShift      = 6  // 6 bits
	movePieceShift   = 12 // 4 bits
	moveCaptureShift = 16 // 4 bits
	movePromoteShift = 20 // 4 bits
	moveFlagShift    = 24 // 2 bits
)

// NoMove is the zero move; no legal move encodes to it because every
// legal move carries a moving piece.
const NoMove Move = 0

// Move flags. Captures are recognised by a non-empty captured piece and
// promotions by a non-empty promotion piece.
const (
	FlagNone       uint8 = 0
	FlagDoublePush uint8 = 1
	FlagEnPassant  uint8 = 2
	FlagCastle     uint8 = 3
)

// NewMove constructs a Move value from components.
func NewMove(from, to Square, piece, captured Piece, promotion Piece, flag uint8) Move {
	m := uint32(from&0x3F) |
		(uint32(to&0x3F) << moveToShift) |
		(uint32(piece&0xF) << movePieceShift) |
		(uint32(captured&0xF) << moveCaptureShift) |
		(uint32(promotion&0xF) << movePromoteShift) |
		(uint32(flag&0x3) << moveFlagShift)
	return Move(m)
}

// From returns the source square of the move.
func (m Move) From() Square { return Square((uint32(m) >> moveFromShift) & 0x3F) }

// To returns the destination square of the move.
func (m Move) To() Square { return Square((uint32(m) >> moveToShift) & 0x3F) }

// MovedPiece returns the piece code that is moved.
func (m Move) MovedPiece() Piece { return Piece((uint32(m) >> movePieceShift) & 0xF) }

// CapturedPiece returns the piece code that was captured (or NoPiece if none).
func (m Move) CapturedPiece() Piece { return Piece((uint32(m) >> moveCaptureShift) & 0xF) }

// PromotionPiece returns the promotion piece code (or NoPiece if not a promotion).
func (m Move) PromotionPiece() Piece { return Piece((uint32(m) >> movePromoteShift) & 0xF) }

// PromotionPieceType returns the colorless type of the promoted piece (or PieceTypeNone).
func (m Move) PromotionPieceType() PieceType { return m.PromotionPiece().Type() }

// Flags returns the special move flags.
func (m Move) Flags() uint8 { return uint8((uint32(m) >> moveFlagShift) & 0x3) }

func (m Move) IsCapture() bool   { return m.CapturedPiece() != NoPiece }
func (m Move) IsPromotion() bool { return m.PromotionPiece() != NoPiece }
func (m Move) IsCastle() bool    { return m.Flags() == FlagCastle }
func (m Move) IsEnPassant() bool { return m.Flags() == FlagEnPassant }

// IsQuiet reports a move that neither captures nor promotes.
func (m Move) IsQuiet() bool { return !m.IsCapture() && !m.IsPromotion() }

// String renders the move in long algebraic form ("e2e4", "e7e8q"); NoMove is "0000".
func (m Move) String() string {
	if m == NoMove {
		return "0000"
	}
	s := m.From().String() + m.To().String()
	if promo := m.PromotionPiece(); promo != NoPiece {
		s += strings.ToLower(promo.String())
	}
	return s
}

// GivesCheck reports whether the move (assumed legal for the current side to move)
// results in the opponent's king being in check. It works on local copies of
// the bitboards and does not mutate the board.
func (b *Board) GivesCheck(m Move) bool {
	us := b.sideToMove
	them := us.Other()
	ksq := b.KingSquare(them)
	if ksq == NoSquare {
		return false
	}

	from, to := m.From(), m.To()
	fromBB, toBB := bb(from), bb(to)
	ours := b.pieceBB[us]
	occ := b.all

	switch {
	case m.IsEnPassant():
		occ &^= bb(epVictimSquare(to, us))
	case m.IsCapture():
		occ &^= toBB
	}

	ours[m.MovedPiece().Type()] &^= fromBB
	placed := m.MovedPiece().Type()
	if m.IsPromotion() {
		placed = m.PromotionPieceType()
	}
	ours[placed] |= toBB
	occ = occ&^fromBB | toBB

	if m.IsCastle() {
		rFrom, rTo := castleRookSquares(to)
		ours[PieceTypeRook] = ours[PieceTypeRook]&^bb(rFrom) | bb(rTo)
		occ = occ&^bb(rFrom) | bb(rTo)
	}

	if pawnAttacks[them][ksq]&ours[PieceTypePawn] != 0 {
		return true
	}
	if knightMoves[ksq]&ours[PieceTypeKnight] != 0 {
		return true
	}
	if RookAttacks(ksq, occ)&(ours[PieceTypeRook]|ours[PieceTypeQueen]) != 0 {
		return true
	}
	return BishopAttacks(ksq, occ)&(ours[PieceTypeBishop]|ours[PieceTypeQueen]) != 0
}

// epVictimSquare is the square of the pawn removed by an en passant capture
// landing on to, made by side us.
func epVictimSquare(to Square, us Color) Square {
	if us == White {
		return to - 8
	}
	return to + 8
}

// castleRookSquares returns the rook's origin and destination for a castling
// king landing on kingTo.
func castleRookSquares(kingTo Square) (Square, Square) {
	switch kingTo {
	case G1:
		return H1, F1
	case C1:
		return A1, D1
	case G8:
		return H8, F8
	default:
		return A8, D8
	}
}
