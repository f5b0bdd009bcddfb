package engine

import (
	gm "chess-core/goosemg"
)

// KillerStruct keeps two quiet moves per ply that recently caused a beta
// cutoff.
type KillerStruct struct {
	KillerMoves [MaxDepth + 1][2]gm.Move
}

func (k *KillerStruct) InsertKiller(move gm.Move, ply int) {
	if move != k.KillerMoves[ply][0] {
		k.KillerMoves[ply][1] = k.KillerMoves[ply][0]
		k.KillerMoves[ply][0] = move
	}
}

func (k *KillerStruct) IsKiller(move gm.Move, ply int) bool {
	return move != gm.NoMove && (k.KillerMoves[ply][0] == move || k.KillerMoves[ply][1] == move)
}

// Clear the killer moves table.
func (k *KillerStruct) ClearKillers() {
	for ply := range k.KillerMoves {
		k.KillerMoves[ply] = [2]gm.Move{}
	}
}

/*
	HISTORY/COUNTER MOVES
	When a quiet move causes a beta cutoff we remember two things: the reply
	to the previous move (a counter move), and a history score for the
	from/to pair so it is tried earlier elsewhere in the tree.
*/

// historyMaxVal keeps history scores below the killer and capture offsets.
const historyMaxVal = 2000

type HistoryStruct struct {
	counterMove [2][64][64]gm.Move
	historyMove [2][64][64]int
}

func (h *HistoryStruct) storeCounter(side gm.Color, prevMove, move gm.Move) {
	if prevMove == gm.NoMove {
		return
	}
	h.counterMove[side][prevMove.From()][prevMove.To()] = move
}

func (h *HistoryStruct) counter(side gm.Color, prevMove gm.Move) gm.Move {
	if prevMove == gm.NoMove {
		return gm.NoMove
	}
	return h.counterMove[side][prevMove.From()][prevMove.To()]
}

// incrementHistoryScore rewards a quiet move that caused a beta cutoff.
func (h *HistoryStruct) incrementHistoryScore(side gm.Color, move gm.Move, depth int) {
	h.historyMove[side][move.From()][move.To()] += depth * depth
	if h.historyMove[side][move.From()][move.To()] >= historyMaxVal {
		h.ageHistoryTable(side)
	}
}

// decrementHistoryScore punishes a quiet move searched before the cutoff move.
func (h *HistoryStruct) decrementHistoryScore(side gm.Color, move gm.Move) {
	h.historyMove[side][move.From()][move.To()] /= 4
}

func (h *HistoryStruct) score(side gm.Color, move gm.Move) int {
	return h.historyMove[side][move.From()][move.To()]
}

// Age the values in the history table.
func (h *HistoryStruct) ageHistoryTable(side gm.Color) {
	for from := range h.historyMove[side] {
		for to := range h.historyMove[side][from] {
			h.historyMove[side][from][to] /= 8
		}
	}
}

func (h *HistoryStruct) clear() {
	*h = HistoryStruct{}
}
