package goosemg

// Precomputed attack masks for leaping pieces.
var knightMoves [64]uint64
var kingMoves [64]uint64

// pawnAttacks[color][sq] gives the squares a pawn of 'color' attacks from 'sq'.
var pawnAttacks [2][64]uint64

var (
	rookDirs   = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	bishopDirs = [4][2]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
)

func init() {
	initLeaperTables()
	initSliderTables()
}

// initLeaperTables precomputes attack bitboards for knights, kings and pawn captures.
func initLeaperTables() {
	knightOffsets := [8][2]int{
		{2, 1}, {2, -1}, {-2, 1}, {-2, -1},
		{1, 2}, {1, -2}, {-1, 2}, {-1, -2},
	}
	kingOffsets := [8][2]int{
		{1, 0}, {-1, 0}, {0, 1}, {0, -1},
		{1, 1}, {1, -1}, {-1, 1}, {-1, -1},
	}
	for sq := 0; sq < 64; sq++ {
		knightMoves[sq] = offsetMask(sq, knightOffsets[:])
		kingMoves[sq] = offsetMask(sq, kingOffsets[:])
		pawnAttacks[White][sq] = offsetMask(sq, [][2]int{{1, -1}, {1, 1}})
		pawnAttacks[Black][sq] = offsetMask(sq, [][2]int{{-1, -1}, {-1, 1}})
	}
}

// offsetMask collects the on-board targets of (rank, file) offsets from sq.
func offsetMask(sq int, offsets [][2]int) uint64 {
	file := sq % 8
	rank := sq / 8
	var mask uint64
	for _, off := range offsets {
		rf := rank + off[0]
		ff := file + off[1]
		if rf >= 0 && rf < 8 && ff >= 0 && ff < 8 {
			mask |= uint64(1) << uint(rf*8+ff)
		}
	}
	return mask
}

// slideAttacks walks each direction from sq until the board edge or the first
// occupied square (inclusive). It is the slow reference for the magic tables.
func slideAttacks(sq Square, occ uint64, dirs [4][2]int) uint64 {
	var attacks uint64
	rank, file := sq.Rank(), sq.File()
	for _, d := range dirs {
		r, f := rank+d[0], file+d[1]
		for r >= 0 && r < 8 && f >= 0 && f < 8 {
			t := uint64(1) << uint(r*8+f)
			attacks |= t
			if occ&t != 0 {
				break
			}
			r += d[0]
			f += d[1]
		}
	}
	return attacks
}

// KnightAttacks returns the squares attacked by a knight on sq.
func KnightAttacks(sq Square) uint64 { return knightMoves[sq] }

// KingAttacks returns the squares attacked by a king on sq.
func KingAttacks(sq Square) uint64 { return kingMoves[sq] }

// PawnAttacks returns the squares attacked by a pawn of color c on sq.
func PawnAttacks(c Color, sq Square) uint64 { return pawnAttacks[c][sq] }

// RookAttacks returns the rook attack set from sq given the board occupancy.
func RookAttacks(sq Square, occ uint64) uint64 {
	m := &rookMagic[sq]
	return sliderAttacks[m.index(occ)]
}

// BishopAttacks returns the bishop attack set from sq given the board occupancy.
func BishopAttacks(sq Square, occ uint64) uint64 {
	m := &bishopMagic[sq]
	return sliderAttacks[m.index(occ)]
}

// QueenAttacks is the union of rook and bishop attacks.
func QueenAttacks(sq Square, occ uint64) uint64 {
	return RookAttacks(sq, occ) | BishopAttacks(sq, occ)
}

// PieceAttacks returns the attack set of a piece type of color c on sq.
func PieceAttacks(pt PieceType, c Color, sq Square, occ uint64) uint64 {
	switch pt {
	case PieceTypePawn:
		return pawnAttacks[c][sq]
	case PieceTypeKnight:
		return knightMoves[sq]
	case PieceTypeBishop:
		return BishopAttacks(sq, occ)
	case PieceTypeRook:
		return RookAttacks(sq, occ)
	case PieceTypeQueen:
		return QueenAttacks(sq, occ)
	case PieceTypeKing:
		return kingMoves[sq]
	}
	return 0
}
