package bench

import (
	"context"
	"testing"

	gm "chess-core/goosemg"
	"chess-core/notation"
)

func benchPerft(b *testing.B, fen string, depth int) {
	board := mustBoard(b, fen)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = gm.Perft(board, depth)
	}
}

func BenchmarkPerft_Initial_D4(b *testing.B) {
	benchPerft(b, notation.FENStartPos, 4)
}

func BenchmarkPerft_Kiwipete_D3(b *testing.B) {
	benchPerft(b, kiwipete, 3)
}

func BenchmarkParallelPerft_Kiwipete_D4(b *testing.B) {
	board := mustBoard(b, kiwipete)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := gm.ParallelPerft(context.Background(), board, 4, 0); err != nil {
			b.Fatal(err)
		}
	}
}
