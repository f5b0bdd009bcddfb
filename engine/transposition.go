package engine

import (
	"sync/atomic"

	gm "chess-core/goosemg"
)

const (
	// Flags. Zero marks an empty slot.
	AlphaFlag uint8 = iota + 1 // upper bound: the search failed low
	BetaFlag                   // lower bound: the search failed high
	ExactFlag

	clusterSize = 4
	slotBytes   = 16
)

// TTEntry is a decoded transposition table entry. Score is stored relative
// to the node it was found at; use ScoreAt to read it from a given ply.
type TTEntry struct {
	Move  gm.Move
	Score int16
	Depth int8
	Flag  uint8
}

// ScoreAt converts the stored score back to a root-relative one at ply.
func (e TTEntry) ScoreAt(ply int) int {
	return scoreFromTT(int(e.Score), ply)
}

// ttSlot holds one entry as two words: the key XORed with the data, and the
// data. A torn write between the two fails the key check instead of
// returning a mix of two entries.
type ttSlot struct {
	check atomic.Uint64
	data  atomic.Uint64
}

// TransTable is a fixed-size hash table shared by all search workers. Probe
// and Store are safe for concurrent use; Clear and NewSearch are not.
type TransTable struct {
	slots    []ttSlot
	mask     uint64 // cluster count - 1
	policy   ReplacePolicy
	age      uint8
	disabled bool
}

// NewTransTable allocates a table of at most mb megabytes, rounded down to a
// power-of-two number of clusters.
func NewTransTable(mb int, policy ReplacePolicy) *TransTable {
	clusters := uint64(Max(mb, 1)) << 20 / (slotBytes * clusterSize)
	n := uint64(1)
	for n*2 <= clusters {
		n *= 2
	}
	return &TransTable{
		slots:  make([]ttSlot, n*clusterSize),
		mask:   n - 1,
		policy: policy,
	}
}

func packEntry(e TTEntry, age uint8) uint64 {
	return uint64(uint32(e.Move)) |
		uint64(uint16(e.Score))<<32 |
		uint64(uint8(e.Depth))<<48 |
		uint64(e.Flag&3)<<56 |
		uint64(age&0x3F)<<58
}

func unpackEntry(d uint64) (TTEntry, uint8) {
	return TTEntry{
		Move:  gm.Move(uint32(d)),
		Score: int16(uint16(d >> 32)),
		Depth: int8(uint8(d >> 48)),
		Flag:  uint8(d>>56) & 3,
	}, uint8(d>>58) & 0x3F
}

func (tt *TransTable) cluster(key uint64) []ttSlot {
	base := (key & tt.mask) * clusterSize
	return tt.slots[base : base+clusterSize]
}

// Probe looks up key. The second result is false on a miss.
func (tt *TransTable) Probe(key uint64) (TTEntry, bool) {
	if tt == nil || tt.disabled {
		return TTEntry{}, false
	}
	cl := tt.cluster(key)
	for i := range cl {
		s := &cl[i]
		d := s.data.Load()
		if d != 0 && s.check.Load()^d == key {
			e, _ := unpackEntry(d)
			return e, true
		}
	}
	return TTEntry{}, false
}

// Store records a search result for key. score is root-relative and is
// converted to a node-relative mate distance using ply.
func (tt *TransTable) Store(key uint64, depth, ply int, move gm.Move, score int, flag uint8) {
	if tt == nil || tt.disabled {
		return
	}
	e := TTEntry{
		Move:  move,
		Score: int16(scoreToTT(score, ply)),
		Depth: int8(Clamp(depth, 0, MaxDepth)),
		Flag:  flag,
	}
	cl := tt.cluster(key)
	target, e := tt.pickSlot(cl, key, e)
	if target < 0 {
		return
	}
	d := packEntry(e, tt.age)
	cl[target].data.Store(d)
	cl[target].check.Store(key ^ d)
}

// pickSlot returns the slot to overwrite, or -1 to keep the cluster as is,
// along with the entry to write there.
func (tt *TransTable) pickSlot(cl []ttSlot, key uint64, e TTEntry) (int, TTEntry) {
	for i := range cl {
		d := cl[i].data.Load()
		if d == 0 || cl[i].check.Load()^d != key {
			continue
		}
		old, age := unpackEntry(d)
		if e.Move == gm.NoMove {
			// Keep the best move we already know for this position.
			e.Move = old.Move
		}
		if tt.policy == ReplaceAlways || e.Depth >= old.Depth || e.Flag == ExactFlag || age != tt.age {
			return i, e
		}
		return -1, e
	}

	if tt.policy == ReplaceAlways {
		return 0, e
	}
	victim, worst := 0, int(^uint(0)>>1)
	for i := range cl {
		d := cl[i].data.Load()
		if d == 0 {
			return i, e
		}
		old, age := unpackEntry(d)
		// Entries from earlier searches go first, then the shallowest.
		w := int(old.Depth)
		if age != tt.age {
			w -= 2 * MaxDepth
		}
		if w < worst {
			victim, worst = i, w
		}
	}
	return victim, e
}

// NewSearch marks the start of a search so stale entries are replaced first.
func (tt *TransTable) NewSearch() {
	tt.age = (tt.age + 1) & 0x3F
}

// SetEnabled switches probing and storing on or off.
func (tt *TransTable) SetEnabled(on bool) {
	tt.disabled = !on
}

// Clear empties the table.
func (tt *TransTable) Clear() {
	for i := range tt.slots {
		tt.slots[i].data.Store(0)
		tt.slots[i].check.Store(0)
	}
	tt.age = 0
}

// Hashfull reports the permille of sampled slots written in this search.
func (tt *TransTable) Hashfull() int {
	n := Min(len(tt.slots), 1000)
	used := 0
	for i := 0; i < n; i++ {
		d := tt.slots[i].data.Load()
		if _, age := unpackEntry(d); d != 0 && age == tt.age {
			used++
		}
	}
	return used * 1000 / n
}

// useEntry decides whether a probed entry settles the node without a search.
func useEntry(e TTEntry, depth, ply, alpha, beta int) (bool, int) {
	if int(e.Depth) < depth {
		return false, 0
	}
	score := e.ScoreAt(ply)
	switch e.Flag {
	case ExactFlag:
		return true, score
	case AlphaFlag:
		if score <= alpha {
			return true, score
		}
	case BetaFlag:
		if score >= beta {
			return true, score
		}
	}
	return false, 0
}

// Mate scores are stored as distance from the node rather than the root so
// they stay correct when the position is reached at another ply.
func scoreToTT(score, ply int) int {
	switch {
	case score >= MateBound:
		return score + ply
	case score <= -MateBound:
		return score - ply
	}
	return score
}

func scoreFromTT(score, ply int) int {
	switch {
	case score >= MateBound:
		return score - ply
	case score <= -MateBound:
		return score + ply
	}
	return score
}
