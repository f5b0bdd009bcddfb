package engine

import (
	"testing"
	"time"

	gm "chess-core/goosemg"
)

func TestMoveBudget(t *testing.T) {
	b := gm.NewStartingBoard()
	tests := []struct {
		name string
		lim  Limits
		want time.Duration
	}{
		{"infinite", Limits{Infinite: true, MoveTime: time.Second}, 0},
		{"fixed move time", Limits{MoveTime: 250 * time.Millisecond, TimeLeft: time.Minute}, 250 * time.Millisecond},
		{"sudden death", Limits{TimeLeft: time.Minute}, 1500 * time.Millisecond},
		{"panic", Limits{TimeLeft: 500 * time.Millisecond, Increment: time.Second}, 350 * time.Millisecond},
		{"fallback", Limits{Depth: 4}, 3 * time.Second},
	}
	for _, tt := range tests {
		if got := moveBudget(b, tt.lim, 3*time.Second); got != tt.want {
			t.Errorf("%s: got %v want %v", tt.name, got, tt.want)
		}
	}
}

func TestClockBudgetWithIncrement(t *testing.T) {
	b := gm.NewStartingBoard()
	rem, inc := 90*time.Second, 2*time.Second
	want := rem/time.Duration(estimateMovesRemaining(TotalPhase)) + inc
	if got := clockBudget(b, rem, inc); got != want {
		t.Fatalf("got %v want %v", got, want)
	}
	if got := clockBudget(b, 10*time.Millisecond, 0); got != minMoveTime {
		t.Fatalf("nearly flagged: got %v want %v", got, minMoveTime)
	}
}

func TestEstimateMovesRemaining(t *testing.T) {
	if got := estimateMovesRemaining(TotalPhase); got != 45 {
		t.Fatalf("opening: got %d", got)
	}
	if got := estimateMovesRemaining(0); got != 20 {
		t.Fatalf("bare kings: got %d", got)
	}
}
