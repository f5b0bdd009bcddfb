package engine

import (
	"context"

	"golang.org/x/sync/errgroup"

	gm "chess-core/goosemg"
)

// psqIndex maps sq to the table index for color c; tables are written from
// White's side and mirrored for Black.
func psqIndex(c gm.Color, sq gm.Square) gm.Square {
	if c == gm.Black {
		return sq.Mirror()
	}
	return sq
}

// GetPiecePhase returns the game phase from non-pawn material: TotalPhase
// with all pieces on the board, 0 with bare kings and pawns.
func GetPiecePhase(b *gm.Board) (phase int) {
	for c := gm.White; c <= gm.Black; c++ {
		phase += gm.PopCount(b.Pieces(c, gm.PieceTypeKnight)) * KnightPhase
		phase += gm.PopCount(b.Pieces(c, gm.PieceTypeBishop)) * BishopPhase
		phase += gm.PopCount(b.Pieces(c, gm.PieceTypeRook)) * RookPhase
		phase += gm.PopCount(b.Pieces(c, gm.PieceTypeQueen)) * QueenPhase
	}
	return Min(phase, TotalPhase)
}

// evalInfo carries the king zones and attack counts shared between terms.
type evalInfo struct {
	kingInner [2]uint64
	kingOuter [2]uint64
	// attackUnits[c] is c's pressure on the enemy king zone.
	attackUnits [2]int
}

// Evaluate scores b in centipawns, positive when White is better. It never
// modifies b and is safe to call from several goroutines on distinct boards.
func Evaluate(b *gm.Board) int {
	return evaluate(b, nil)
}

// EvaluateRelative is Evaluate from the side to move's point of view.
func EvaluateRelative(b *gm.Board) int {
	return relative(b, Evaluate(b))
}

func relative(b *gm.Board, score int) int {
	if b.SideToMove() == gm.Black {
		return -score
	}
	return score
}

func evaluate(b *gm.Board, pt *pawnTable) int {
	pe := pt.entry(b)

	var info evalInfo
	for c := gm.White; c <= gm.Black; c++ {
		ksq := b.KingSquare(c)
		inner := gm.KingAttacks(ksq) | 1<<uint(ksq)
		var ring uint64
		for x := inner; x != 0; {
			ring |= gm.KingAttacks(gm.PopLSB(&x))
		}
		info.kingInner[c] = inner
		info.kingOuter[c] = ring &^ inner
	}
	// Pawn pressure needs both king zones.
	for c := gm.White; c <= gm.Black; c++ {
		info.attackUnits[c] = gm.PopCount(pe.attacks[c]&info.kingInner[c.Other()]) * attackerInner[gm.PieceTypePawn]
	}

	mg, eg := pe.mg, pe.eg

	wMG, wEG := evaluatePieces(b, gm.White, pe, &info)
	bMG, bEG := evaluatePieces(b, gm.Black, pe, &info)
	mg += wMG - bMG
	eg += wEG - bEG

	// King safety needs the attack units filled in by the piece pass.
	wMG, wEG = evaluateKing(b, gm.White, pe, &info)
	bMG, bEG = evaluateKing(b, gm.Black, pe, &info)
	mg += wMG - bMG
	eg += wEG - bEG

	pairMG, pairEG := bishopPairBonuses(b)
	mg += pairMG
	eg += pairEG

	if b.SideToMove() == gm.White {
		mg += TempoBonus
		eg += TempoBonus
	} else {
		mg -= TempoBonus
		eg -= TempoBonus
	}

	phase := GetPiecePhase(b)
	score := (mg*phase + eg*(TotalPhase-phase)) / TotalPhase

	if b.IsInsufficientMaterial() {
		score /= DrawDivider
	}
	return score
}

// evaluatePieces scores the knights, bishops, rooks and queens of color c:
// material, placement, mobility, rook files, and pressure on the enemy king.
func evaluatePieces(b *gm.Board, c gm.Color, pe *pawnEntry, info *evalInfo) (mg, eg int) {
	them := c.Other()
	occ := b.AllOccupancy()
	own := b.ColorOccupancy(c)
	mobilityArea := ^own &^ pe.attacks[them]
	seventh := gm.Rank7
	if c == gm.Black {
		seventh = gm.Rank2
	}

	for pt := gm.PieceTypeKnight; pt <= gm.PieceTypeQueen; pt++ {
		for x := b.Pieces(c, pt); x != 0; {
			sq := gm.PopLSB(&x)
			idx := psqIndex(c, sq)
			mg += pieceValueMG[pt] + PSQT_MG[pt][idx]
			eg += pieceValueEG[pt] + PSQT_EG[pt][idx]

			att := gm.PieceAttacks(pt, c, sq, occ)
			moves := gm.PopCount(att & mobilityArea)
			mg += moves * mobilityValueMG[pt]
			eg += moves * mobilityValueEG[pt]

			info.attackUnits[c] += gm.PopCount(att&info.kingInner[them])*attackerInner[pt] +
				gm.PopCount(att&info.kingOuter[them])*attackerOuter[pt]

			if pt == gm.PieceTypeRook {
				file := onlyFile[sq.File()]
				switch {
				case file&pe.openFiles != 0:
					mg += RookOpenMG
				case file&pe.semiOpen[c] != 0:
					mg += RookSemiOpenMG
				}
				if seventh&(1<<uint(sq)) != 0 {
					eg += RookSeventhRankEG
				}
			}
		}
	}
	return mg, eg
}

// evaluateKing scores c's king: placement, the enemy's attack pressure, the
// pawn shield and open files next to it.
func evaluateKing(b *gm.Board, c gm.Color, pe *pawnEntry, info *evalInfo) (mg, eg int) {
	ksq := b.KingSquare(c)
	idx := psqIndex(c, ksq)
	mg += PSQT_MG[gm.PieceTypeKing][idx]
	eg += PSQT_EG[gm.PieceTypeKing][idx]

	danger := KingSafetyTable[Min(info.attackUnits[c.Other()], len(KingSafetyTable)-1)]
	mg -= danger
	eg -= danger / 4

	shield := Min(3, gm.PopCount(b.Pieces(c, gm.PieceTypePawn)&info.kingInner[c]))
	mg += shield * KingPawnDefenseBonusMG

	f := ksq.File()
	for _, file := range []int{f - 1, f, f + 1} {
		if file < 0 || file > 7 {
			continue
		}
		switch {
		case onlyFile[file]&pe.openFiles != 0:
			mg += KingOpenFileMG
		case onlyFile[file]&pe.semiOpen[c] != 0:
			mg += KingSemiOpenFileMG
		}
	}
	return mg, eg
}

func bishopPairBonuses(b *gm.Board) (bishopPairMG, bishopPairEG int) {
	whiteBishops := gm.PopCount(b.Pieces(gm.White, gm.PieceTypeBishop))
	blackBishops := gm.PopCount(b.Pieces(gm.Black, gm.PieceTypeBishop))
	if whiteBishops > 1 && blackBishops < 2 {
		bishopPairMG += BishopPairBonusMG
		bishopPairEG += BishopPairBonusEG
	}
	if blackBishops > 1 && whiteBishops < 2 {
		bishopPairMG -= BishopPairBonusMG
		bishopPairEG -= BishopPairBonusEG
	}
	return bishopPairMG, bishopPairEG
}

// EvaluateAll evaluates many boards on up to workers goroutines and returns
// the White-positive scores in input order. The boards must not be modified
// while it runs.
func EvaluateAll(ctx context.Context, boards []*gm.Board, workers int) ([]int, error) {
	scores := make([]int, len(boards))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(Max(workers, 1))
	for i, b := range boards {
		i, b := i, b
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			scores[i] = Evaluate(b)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return scores, nil
}
