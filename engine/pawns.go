package engine

import (
	gm "chess-core/goosemg"
)

// passedMask[c][sq] covers the squares in front of a c pawn on sq, on its own
// and both adjacent files. No enemy pawn there means the pawn is passed.
var passedMask [2][64]uint64

func init() {
	for sq := gm.Square(0); sq < 64; sq++ {
		files := onlyFile[sq.File()] | adjacentFiles[sq.File()]
		var ahead, behind uint64
		for r := sq.Rank() + 1; r < 8; r++ {
			ahead |= gm.RankMask(r)
		}
		for r := sq.Rank() - 1; r >= 0; r-- {
			behind |= gm.RankMask(r)
		}
		passedMask[gm.White][sq] = files & ahead
		passedMask[gm.Black][sq] = files & behind
	}
}

// pawnAttacksOf returns every square attacked by the given pawns of color c.
func pawnAttacksOf(c gm.Color, pawns uint64) uint64 {
	if c == gm.White {
		return (pawns<<7)&^gm.FileH | (pawns<<9)&^gm.FileA
	}
	return (pawns>>9)&^gm.FileH | (pawns>>7)&^gm.FileA
}

// pawnEntry caches everything the evaluation derives from the pawn skeleton
// alone. Scores are from White's point of view.
type pawnEntry struct {
	whitePawns, blackPawns uint64
	valid                  bool

	attacks   [2]uint64
	passed    [2]uint64
	openFiles uint64
	// semiOpen[c] marks files without a c pawn but with an enemy pawn.
	semiOpen [2]uint64

	mg, eg int
}

// PawnHashSize is the number of entries in a searcher's pawn table.
const PawnHashSize = 1 << 14

// pawnTable is a per-searcher cache of pawn entries. It is not safe for
// concurrent use; each worker owns one.
type pawnTable struct {
	entries []pawnEntry
}

func newPawnTable() *pawnTable {
	return &pawnTable{entries: make([]pawnEntry, PawnHashSize)}
}

// pawnHashIndex mixes both pawn bitboards into a table index.
func pawnHashIndex(whitePawns, blackPawns uint64) uint64 {
	const goldenRatio = 0x9E3779B97F4A7C15
	hash := whitePawns ^ (blackPawns * goldenRatio)
	hash ^= hash >> 33
	hash *= 0xFF51AFD7ED558CCD
	hash ^= hash >> 33
	return hash & (PawnHashSize - 1)
}

// entry returns the pawn entry for b, computing and storing it on a miss.
// A nil table always computes.
func (pt *pawnTable) entry(b *gm.Board) *pawnEntry {
	wp, bp := b.Pieces(gm.White, gm.PieceTypePawn), b.Pieces(gm.Black, gm.PieceTypePawn)
	if pt == nil {
		e := computePawnEntry(wp, bp)
		return &e
	}
	e := &pt.entries[pawnHashIndex(wp, bp)]
	if e.valid && e.whitePawns == wp && e.blackPawns == bp {
		return e
	}
	*e = computePawnEntry(wp, bp)
	return e
}

func (pt *pawnTable) clear() {
	for i := range pt.entries {
		pt.entries[i] = pawnEntry{}
	}
}

func computePawnEntry(wp, bp uint64) pawnEntry {
	e := pawnEntry{whitePawns: wp, blackPawns: bp, valid: true}
	pawns := [2]uint64{wp, bp}
	e.attacks[gm.White] = pawnAttacksOf(gm.White, wp)
	e.attacks[gm.Black] = pawnAttacksOf(gm.Black, bp)

	var files [2]uint64
	for c := gm.White; c <= gm.Black; c++ {
		for x := pawns[c]; x != 0; {
			files[c] |= onlyFile[gm.PopLSB(&x).File()]
		}
	}
	e.openFiles = ^files[gm.White] &^ files[gm.Black]
	e.semiOpen[gm.White] = ^files[gm.White] & files[gm.Black]
	e.semiOpen[gm.Black] = ^files[gm.Black] & files[gm.White]

	for c := gm.White; c <= gm.Black; c++ {
		mg, eg := pawnStructure(c, pawns[c], pawns[c.Other()], &e)
		if c == gm.White {
			e.mg += mg
			e.eg += eg
		} else {
			e.mg -= mg
			e.eg -= eg
		}
	}
	return e
}

// pawnStructure scores the pawns of color c: material, placement, passers,
// isolated, doubled and phalanx pawns.
func pawnStructure(c gm.Color, own, enemy uint64, e *pawnEntry) (mg, eg int) {
	n := gm.PopCount(own)
	mg += n * pieceValueMG[gm.PieceTypePawn]
	eg += n * pieceValueEG[gm.PieceTypePawn]

	for x := own; x != 0; {
		sq := gm.PopLSB(&x)
		idx := psqIndex(c, sq)
		mg += PSQT_MG[gm.PieceTypePawn][idx]
		eg += PSQT_EG[gm.PieceTypePawn][idx]

		if passedMask[c][sq]&enemy == 0 {
			e.passed[c] |= 1 << uint(sq)
			mg += PassedPawnPSQT_MG[idx]
			eg += PassedPawnPSQT_EG[idx]
		}
		if adjacentFiles[sq.File()]&own == 0 {
			mg -= IsolatedPawnMG
			eg -= IsolatedPawnEG
		}
	}

	for f := 0; f < 8; f++ {
		if k := gm.PopCount(own & onlyFile[f]); k > 1 {
			mg -= (k - 1) * PawnDoubledMG
			eg -= (k - 1) * PawnDoubledEG
		}
	}

	// Side-by-side pawns; counted once per pair via the east neighbour.
	phalanx := gm.PopCount(own & ((own &^ gm.FileH) << 1))
	mg += phalanx * PawnPhalanxMG
	eg += phalanx * PawnPhalanxEG
	return mg, eg
}
