package engine

import (
	"testing"

	"chess-core/notation"
)

func TestSEE(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		move string
		want int
	}{
		{"even trade", "6k1/4q1p1/4n3/8/2B5/8/8/6K1 w - - 0 1", "c4e6", 0},
		{"free pawn", "4k3/8/8/3p4/4P3/8/8/4K3 w - - 0 1", "e4d5", 100},
		{"queen takes defended pawn", "4k3/2p5/3p4/8/8/8/3Q4/4K3 w - - 0 1", "d2d6", -800},
		{"en passant", "7k/8/8/3pP3/8/8/8/6K1 w - d6 0 1", "e5d6", 100},
		{"doubled rooks defend the knight", "3r2k1/3r4/8/8/8/3n4/3R4/3RK3 w - - 0 1", "d2d3", -200},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := notation.MustBoard(tt.fen)
			m, err := notation.ParseMove(b, tt.move)
			if err != nil {
				t.Fatalf("ParseMove(%s): %v", tt.move, err)
			}
			if got := see(b, m); got != tt.want {
				t.Fatalf("see(%s) got %d want %d", tt.move, got, tt.want)
			}
		})
	}
}
