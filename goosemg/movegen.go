package goosemg

// Generation filters.
const (
	genQuiets = 1 << iota
	genCaptures
	genAll = genQuiets | genCaptures
)

var promotionTypes = [4]PieceType{PieceTypeQueen, PieceTypeRook, PieceTypeBishop, PieceTypeKnight}

// IsSquareAttacked reports whether side 'by' attacks sq on the current board.
func (b *Board) IsSquareAttacked(sq Square, by Color) bool {
	return b.isSquareAttackedWithOcc(sq, by, b.all)
}

func (b *Board) isSquareAttackedWithOcc(sq Square, by Color, occ uint64) bool {
	them := &b.pieceBB[by]
	if pawnAttacks[by.Other()][sq]&them[PieceTypePawn] != 0 {
		return true
	}
	if knightMoves[sq]&them[PieceTypeKnight] != 0 {
		return true
	}
	if kingMoves[sq]&them[PieceTypeKing] != 0 {
		return true
	}
	if rq := them[PieceTypeRook] | them[PieceTypeQueen]; rq != 0 && RookAttacks(sq, occ)&rq != 0 {
		return true
	}
	bq := them[PieceTypeBishop] | them[PieceTypeQueen]
	return bq != 0 && BishopAttacks(sq, occ)&bq != 0
}

// AttackersTo returns every piece of either color attacking sq under the
// given occupancy. Sliders hidden behind pieces removed from occ are found,
// which is what exchange evaluation needs.
func (b *Board) AttackersTo(sq Square, occ uint64) uint64 {
	w, k := &b.pieceBB[White], &b.pieceBB[Black]
	rq := w[PieceTypeRook] | w[PieceTypeQueen] | k[PieceTypeRook] | k[PieceTypeQueen]
	bq := w[PieceTypeBishop] | w[PieceTypeQueen] | k[PieceTypeBishop] | k[PieceTypeQueen]
	return (pawnAttacks[Black][sq] & w[PieceTypePawn]) |
		(pawnAttacks[White][sq] & k[PieceTypePawn]) |
		(knightMoves[sq] & (w[PieceTypeKnight] | k[PieceTypeKnight])) |
		(kingMoves[sq] & (w[PieceTypeKing] | k[PieceTypeKing])) |
		(RookAttacks(sq, occ) & rq) |
		(BishopAttacks(sq, occ) & bq)
}

// InCheck reports whether the given side's king is attacked.
func (b *Board) InCheck(color Color) bool {
	ksq := b.KingSquare(color)
	if ksq == NoSquare {
		return false
	}
	return b.isSquareAttackedWithOcc(ksq, color.Other(), b.all)
}

// generatePseudoInto appends pseudo-legal moves matching filter to dst.
// Moves may still leave the mover's king attacked; MakeMove rejects those.
// Promotions count as captures for filtering so quiescence sees them.
func (b *Board) generatePseudoInto(dst []Move, filter int) []Move {
	us := b.sideToMove
	them := us.Other()
	ours := &b.pieceBB[us]
	empty := ^b.all
	// The enemy king is never a target.
	enemy := b.occupancy[them] &^ b.pieceBB[them][PieceTypeKing]

	var targets uint64
	if filter&genCaptures != 0 {
		targets |= enemy
	}
	if filter&genQuiets != 0 {
		targets |= empty
	}

	dst = b.generatePawnMoves(dst, filter, enemy)

	for pt := PieceTypeKnight; pt <= PieceTypeKing; pt++ {
		piece := PieceFromType(us, pt)
		for from := ours[pt]; from != 0; {
			sq := popLSB(&from)
			var att uint64
			switch pt {
			case PieceTypeKnight:
				att = knightMoves[sq]
			case PieceTypeBishop:
				att = BishopAttacks(sq, b.all)
			case PieceTypeRook:
				att = RookAttacks(sq, b.all)
			case PieceTypeQueen:
				att = QueenAttacks(sq, b.all)
			case PieceTypeKing:
				att = kingMoves[sq]
			}
			for to := att & targets; to != 0; {
				t := popLSB(&to)
				dst = append(dst, NewMove(sq, t, piece, b.pieces[t], NoPiece, FlagNone))
			}
		}
	}

	if filter&genQuiets != 0 {
		dst = b.generateCastles(dst)
	}
	return dst
}

func (b *Board) generatePawnMoves(dst []Move, filter int, enemy uint64) []Move {
	us := b.sideToMove
	pawn := PieceFromType(us, PieceTypePawn)
	pawns := b.pieceBB[us][PieceTypePawn]
	empty := ^b.all

	forward, startRank, lastRank := 8, Rank2, Rank8
	if us == Black {
		forward, startRank, lastRank = -8, Rank7, Rank1
	}

	addPromotions := func(from, to Square, captured Piece) {
		for _, pt := range promotionTypes {
			dst = append(dst, NewMove(from, to, pawn, captured, PieceFromType(us, pt), FlagNone))
		}
	}

	for p := pawns; p != 0; {
		from := popLSB(&p)
		one := from + Square(forward)
		if bb(one)&empty != 0 {
			if bb(one)&lastRank != 0 {
				if filter&genCaptures != 0 {
					addPromotions(from, one, NoPiece)
				}
			} else if filter&genQuiets != 0 {
				dst = append(dst, NewMove(from, one, pawn, NoPiece, NoPiece, FlagNone))
				two := one + Square(forward)
				if bb(from)&startRank != 0 && bb(two)&empty != 0 {
					dst = append(dst, NewMove(from, two, pawn, NoPiece, NoPiece, FlagDoublePush))
				}
			}
		}
		if filter&genCaptures == 0 {
			continue
		}
		for caps := pawnAttacks[us][from] & enemy; caps != 0; {
			to := popLSB(&caps)
			if bb(to)&lastRank != 0 {
				addPromotions(from, to, b.pieces[to])
			} else {
				dst = append(dst, NewMove(from, to, pawn, b.pieces[to], NoPiece, FlagNone))
			}
		}
	}

	if ep := b.enPassantSquare; ep != NoSquare && filter&genCaptures != 0 {
		victim := PieceFromType(us.Other(), PieceTypePawn)
		for attackers := pawnAttacks[us.Other()][ep] & pawns; attackers != 0; {
			from := popLSB(&attackers)
			dst = append(dst, NewMove(from, ep, pawn, victim, NoPiece, FlagEnPassant))
		}
	}
	return dst
}

// castleSpec describes one castling option.
type castleSpec struct {
	right    CastlingRights
	kingFrom Square
	kingTo   Square
	empty    uint64   // squares between king and rook
	safe     []Square // squares the king starts on, crosses and lands on
}

var castleSpecs = [2][2]castleSpec{
	White: {
		{CastlingWhiteK, E1, G1, bb(F1) | bb(G1), []Square{E1, F1, G1}},
		{CastlingWhiteQ, E1, C1, bb(B1) | bb(C1) | bb(D1), []Square{E1, D1, C1}},
	},
	Black: {
		{CastlingBlackK, E8, G8, bb(F8) | bb(G8), []Square{E8, F8, G8}},
		{CastlingBlackQ, E8, C8, bb(B8) | bb(C8) | bb(D8), []Square{E8, D8, C8}},
	},
}

func (b *Board) generateCastles(dst []Move) []Move {
	us := b.sideToMove
	king := PieceFromType(us, PieceTypeKing)
	rook := PieceFromType(us, PieceTypeRook)
outer:
	for i := range castleSpecs[us] {
		cs := &castleSpecs[us][i]
		if b.castlingRights&cs.right == 0 || b.all&cs.empty != 0 || b.pieces[cs.kingFrom] != king {
			continue
		}
		rFrom, _ := castleRookSquares(cs.kingTo)
		if b.pieces[rFrom] != rook {
			continue
		}
		for _, sq := range cs.safe {
			if b.isSquareAttackedWithOcc(sq, us.Other(), b.all) {
				continue outer
			}
		}
		dst = append(dst, NewMove(cs.kingFrom, cs.kingTo, king, NoPiece, NoPiece, FlagCastle))
	}
	return dst
}

// filterLegal keeps only the moves of src[start:] that do not leave the
// mover's king attacked, compacting them in place.
func (b *Board) filterLegal(moves []Move, start int) []Move {
	n := start
	for _, m := range moves[start:] {
		if ok, st := b.MakeMove(m); ok {
			b.UnmakeMove(st)
			moves[n] = m
			n++
		}
	}
	return moves[:n]
}

// GeneratePseudoMovesInto appends all pseudo-legal moves to dst.
func (b *Board) GeneratePseudoMovesInto(dst []Move) []Move {
	return b.generatePseudoInto(dst, genAll)
}

// GenerateLegalMoves returns a fresh slice of all legal moves.
func (b *Board) GenerateLegalMoves() []Move {
	return b.GenerateLegalMovesInto(make([]Move, 0, 64))
}

// GenerateLegalMovesInto appends all legal moves to dst.
func (b *Board) GenerateLegalMovesInto(dst []Move) []Move {
	start := len(dst)
	return b.filterLegal(b.generatePseudoInto(dst, genAll), start)
}

// GenerateCapturesInto appends legal captures and promotions to dst.
func (b *Board) GenerateCapturesInto(dst []Move) []Move {
	start := len(dst)
	return b.filterLegal(b.generatePseudoInto(dst, genCaptures), start)
}

// GenerateQuietsInto appends legal non-capturing, non-promoting moves to dst.
func (b *Board) GenerateQuietsInto(dst []Move) []Move {
	start := len(dst)
	return b.filterLegal(b.generatePseudoInto(dst, genQuiets), start)
}

// GenerateQuietChecksInto appends legal quiet moves that give check.
func (b *Board) GenerateQuietChecksInto(dst []Move) []Move {
	start := len(dst)
	dst = b.GenerateQuietsInto(dst)
	n := start
	for _, m := range dst[start:] {
		if b.GivesCheck(m) {
			dst[n] = m
			n++
		}
	}
	return dst[:n]
}

// HasLegalMoves reports whether the side to move has any legal moves.
func (b *Board) HasLegalMoves() bool {
	var buf [256]Move
	for _, m := range b.generatePseudoInto(buf[:0], genAll) {
		if ok, st := b.MakeMove(m); ok {
			b.UnmakeMove(st)
			return true
		}
	}
	return false
}
