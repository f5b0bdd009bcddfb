package engine

import (
	gm "chess-core/goosemg"
)

var SeePieceValue = [7]int{
	gm.PieceTypePawn:   100,
	gm.PieceTypeKnight: 300,
	gm.PieceTypeBishop: 300,
	gm.PieceTypeRook:   500,
	gm.PieceTypeQueen:  900,
	gm.PieceTypeKing:   5000,
}

// see returns the static exchange value of move for the side making it: the
// material it nets if both sides keep recapturing on the target square with
// their least valuable attacker, each free to stop when that is better.
func see(b *gm.Board, move gm.Move) int {
	var gain [32]int
	depth := 0
	to := move.To()
	side := b.SideToMove()

	attacker := move.MovedPiece().Type()
	gain[0] = SeePieceValue[move.CapturedPiece().Type()]
	if move.IsPromotion() {
		promo := move.PromotionPieceType()
		gain[0] += SeePieceValue[promo] - SeePieceValue[gm.PieceTypePawn]
		attacker = promo
	}

	occ := b.AllOccupancy()
	fromBB := uint64(1) << uint(move.From())
	if move.IsEnPassant() {
		occ &^= uint64(1) << uint(epCapturedSquare(to, side))
	}
	diagonal := b.Pieces(gm.White, gm.PieceTypeBishop) | b.Pieces(gm.Black, gm.PieceTypeBishop) |
		b.Pieces(gm.White, gm.PieceTypeQueen) | b.Pieces(gm.Black, gm.PieceTypeQueen)
	orthogonal := b.Pieces(gm.White, gm.PieceTypeRook) | b.Pieces(gm.Black, gm.PieceTypeRook) |
		b.Pieces(gm.White, gm.PieceTypeQueen) | b.Pieces(gm.Black, gm.PieceTypeQueen)

	attadef := b.AttackersTo(to, occ)
	for fromBB != 0 {
		depth++
		if depth >= len(gain) {
			break
		}
		gain[depth] = SeePieceValue[attacker] - gain[depth-1]

		// If we're in a losing position after the last trade, we break
		if Max(-gain[depth-1], gain[depth]) < 0 {
			break
		}

		attadef &^= fromBB
		occ &^= fromBB
		// Removing a piece may uncover a slider behind it.
		attadef |= gm.BishopAttacks(to, occ)&diagonal&occ | gm.RookAttacks(to, occ)&orthogonal&occ

		side = side.Other()
		fromBB, attacker = leastValuableAttacker(b, attadef, side)
	}

	for x := depth - 1; x > 0; x-- {
		gain[x-1] = -Max(-gain[x-1], gain[x])
	}
	return gain[0]
}

// seeAtLeast reports whether move wins at least threshold by exchange.
func seeAtLeast(b *gm.Board, move gm.Move, threshold int) bool {
	return see(b, move) >= threshold
}

func leastValuableAttacker(b *gm.Board, attadef uint64, side gm.Color) (uint64, gm.PieceType) {
	for pt := gm.PieceTypePawn; pt <= gm.PieceTypeKing; pt++ {
		if x := attadef & b.Pieces(side, pt); x != 0 {
			return x & -x, pt
		}
	}
	return 0, gm.PieceTypeNone
}

func epCapturedSquare(to gm.Square, us gm.Color) gm.Square {
	if us == gm.White {
		return to - 8
	}
	return to + 8
}
