package engine

import (
	gm "chess-core/goosemg"
)

// moveList pairs generated moves with their ordering scores. The backing
// arrays live in the searcher's per-ply stack so nodes do not allocate.
type moveList struct {
	moves  []gm.Move
	scores []int
}

func (ml *moveList) Len() int { return len(ml.moves) }

// Most Valuable Victim - Least Valuable Aggressor; used to score & sort captures
var mvvLva = [7][7]int{
	{0, 0, 0, 0, 0, 0, 0},
	{0, 14, 13, 12, 11, 10, 0}, // victim Pawn
	{0, 24, 23, 22, 21, 20, 0}, // victim Knight
	{0, 34, 33, 32, 31, 30, 0}, // victim Bishop
	{0, 44, 43, 42, 41, 40, 0}, // victim Rook
	{0, 54, 53, 52, 51, 50, 0}, // victim Queen
	{0, 0, 0, 0, 0, 0, 0},      // victim King
}

/*
	Move ordering offsets
	- The hash move is the best guess we have, so it always goes first.
	- Promotions are rare and usually decisive.
	- Captures by MVV-LVA, so we never miss tactical shots.
	- Quiet moves: killers, then the counter move, then history.
*/
const (
	pvOffset        = 25000
	promotionOffset = 20000
	captureOffset   = 15000

	// Offset values for prioritizing quiet move heuristics
	killerOffset  = 2000
	counterOffset = 1000
)

func captureScore(m gm.Move) int {
	return mvvLva[m.CapturedPiece().Type()][m.MovedPiece().Type()]
}

// scoreMoves fills ml.scores for a full-width node.
func (s *Searcher) scoreMoves(ml *moveList, side gm.Color, ply int, ttMove, prevMove gm.Move) {
	counter := s.history.counter(side, prevMove)
	for i, m := range ml.moves {
		var score int
		switch {
		case m == ttMove:
			score = pvOffset + 1500
		case m.IsPromotion():
			score = promotionOffset + pieceValueEG[m.PromotionPieceType()]
		case m.IsCapture():
			score = captureOffset + captureScore(m)
		case s.killers.KillerMoves[ply][0] == m:
			score = killerOffset + 200
		case s.killers.KillerMoves[ply][1] == m:
			score = killerOffset
		default:
			score = s.history.score(side, m)
			if m == counter {
				score += counterOffset
			}
		}
		ml.scores[i] = score
	}
}

// scoreCaptures fills ml.scores for quiescence, where every move is a
// capture, a promotion, an evasion or a quiet check.
func scoreCaptures(ml *moveList, ttMove gm.Move) {
	for i, m := range ml.moves {
		var score int
		switch {
		case m == ttMove:
			score = pvOffset
		case m.IsPromotion():
			score = captureOffset + 75
		case m.IsCapture():
			score = captureOffset + captureScore(m)
		}
		ml.scores[i] = score
	}
}

// Ordering the moves one at a time, at index given
func orderNextMove(currIndex int, ml *moveList) {
	bestIndex := currIndex
	bestScore := ml.scores[bestIndex]

	for index := currIndex + 1; index < len(ml.moves); index++ {
		if ml.scores[index] > bestScore {
			bestIndex = index
			bestScore = ml.scores[index]
		}
	}

	ml.moves[currIndex], ml.moves[bestIndex] = ml.moves[bestIndex], ml.moves[currIndex]
	ml.scores[currIndex], ml.scores[bestIndex] = ml.scores[bestIndex], ml.scores[currIndex]
}
