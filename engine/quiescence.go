package engine

import (
	gm "chess-core/goosemg"
)

// quiescence resolves captures and promotions below the nominal depth so the
// static evaluation is only taken in quiet positions. On its first ply it also
// tries quiet checks; in check it searches every evasion.
func (s *Searcher) quiescence(b *gm.Board, alpha, beta, ply, qply int) int {
	if s.checkStop() {
		return 0
	}
	if ply >= MaxDepth {
		return s.evaluate(b)
	}

	inCheck := b.InCheck(b.SideToMove())

	standpat := 0
	bestScore := -MaxScore // must escape check
	if !inCheck {
		standpat = s.evaluate(b)
		if standpat >= beta {
			s.stats.QStandPatCutoffs++
			return standpat
		}
		alpha = Max(alpha, standpat)
		bestScore = standpat
	}

	buf := &s.stack[ply]
	var moves []gm.Move
	if inCheck {
		moves = b.GenerateLegalMovesInto(buf.moves[:0])
		if len(moves) == 0 {
			return -Checkmate + ply
		}
	} else {
		moves = b.GenerateCapturesInto(buf.moves[:0])
		if qply == 0 {
			moves = b.GenerateQuietChecksInto(moves)
		}
	}

	var ttMove gm.Move
	if s.cfg.UseTT {
		if e, ok := s.tt.Probe(b.Hash()); ok {
			ttMove = e.Move
		}
	}
	ml := moveList{moves: moves, scores: buf.scores[:len(moves)]}
	scoreCaptures(&ml, ttMove)

	for index := range ml.moves {
		orderNextMove(index, &ml)
		move := ml.moves[index]

		if !inCheck {
			// Losing exchanges are never worth resolving.
			if !seeAtLeast(b, move, 0) {
				s.stats.QSeePrunes++
				continue
			}

			/*
				DELTA PRUNING
				If the capture + a margin still can't beat alpha, skip it.
			*/
			if s.cfg.Futility && !move.IsQuiet() {
				gain := pieceValueMG[move.CapturedPiece().Type()]
				if move.IsPromotion() {
					gain += pieceValueMG[move.PromotionPieceType()] - pieceValueMG[gm.PieceTypePawn]
				}
				if standpat+gain+DeltaMargin < alpha {
					s.stats.QDeltaPrunes++
					continue
				}
			}
		}

		ok, st := b.MakeMove(move)
		if !ok {
			panic(&gm.InvariantError{Msg: "generated move " + move.String() + " is illegal"})
		}
		score := -s.quiescence(b, -beta, -alpha, ply+1, qply+1)
		b.UnmakeMove(st)
		if s.stopped {
			return 0
		}

		if score > bestScore {
			bestScore = score
		}
		if score >= beta {
			s.stats.QBetaCutoffs++
			return score
		}
		alpha = Max(alpha, score)
	}
	return bestScore
}
