package engine

import (
	"strings"

	gm "chess-core/goosemg"
)

// PVLine is a principal variation: the line the search expects both sides to
// play from a node.
type PVLine struct {
	Moves []gm.Move
}

func (pv *PVLine) Clear() {
	pv.Moves = pv.Moves[:0]
}

// Update sets the line to move followed by the child's line.
func (pv *PVLine) Update(move gm.Move, child PVLine) {
	pv.Moves = append(append(pv.Moves[:0], move), child.Moves...)
}

func (pv PVLine) GetPVMove() gm.Move {
	if len(pv.Moves) == 0 {
		return gm.NoMove
	}
	return pv.Moves[0]
}

func (pv PVLine) Clone() PVLine {
	return PVLine{Moves: append([]gm.Move(nil), pv.Moves...)}
}

func (pv PVLine) String() string {
	var sb strings.Builder
	for i, m := range pv.Moves {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(m.String())
	}
	return sb.String()
}
