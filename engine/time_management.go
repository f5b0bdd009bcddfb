package engine

import (
	"time"

	gm "chess-core/goosemg"
)

// Engine-side safety knobs for clock-based budgets.
const (
	overheadTime   = 30 * time.Millisecond // reserve for caller/IO jitter
	minMoveTime    = 5 * time.Millisecond
	maxClockFrac   = 0.7 // never spend more than 70% of the remaining time
	panicThreshold = time.Second
	panicIncFrac   = 0.9 // use 90% of the increment when short on time
)

// moveBudget decides how long the search may run. A fixed MoveTime wins over
// the clock; Infinite returns 0, meaning no deadline.
func moveBudget(b *gm.Board, lim Limits, fallback time.Duration) time.Duration {
	switch {
	case lim.Infinite:
		return 0
	case lim.MoveTime > 0:
		return lim.MoveTime
	case lim.TimeLeft > 0:
		return clockBudget(b, lim.TimeLeft, lim.Increment)
	}
	return fallback
}

func clockBudget(b *gm.Board, rem, inc time.Duration) time.Duration {
	movesLeft := time.Duration(estimateMovesRemaining(GetPiecePhase(b)))

	var moveTime time.Duration
	switch {
	case inc > 0 && rem < panicThreshold:
		// Panic: try to bank a little time
		moveTime = time.Duration(float64(inc) * panicIncFrac)
	case inc > 0:
		moveTime = rem/movesLeft + inc
	default:
		moveTime = rem / 40
	}

	moveTime = Min(moveTime, time.Duration(float64(rem)*maxClockFrac))
	moveTime = Min(moveTime, rem-overheadTime)
	return Max(moveTime, minMoveTime)
}

// estimateMovesRemaining interpolates between 20 moves (bare endgame) and 45
// (full opening material).
func estimateMovesRemaining(phase int) int {
	return (phase*25)/TotalPhase + 20
}
