package bench

import (
	"context"
	"testing"

	"chess-core/engine"
	gm "chess-core/goosemg"
	"chess-core/notation"
)

func BenchmarkEvaluate_Kiwipete(b *testing.B) {
	board := mustBoard(b, kiwipete)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = engine.Evaluate(board)
	}
}

func BenchmarkTransTable_StoreProbe(b *testing.B) {
	tt := engine.NewTransTable(16, engine.ReplaceDepthPreferred)
	m := gm.NewMove(gm.SquareAt(4, 1), gm.SquareAt(4, 3), gm.WhitePawn, gm.NoPiece, gm.NoPiece, gm.FlagDoublePush)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		key := uint64(i) * 0x9E3779B97F4A7C15
		tt.Store(key, i&31, 0, m, i&1023, engine.ExactFlag)
		_, _ = tt.Probe(key)
	}
}

func benchSearch(b *testing.B, fen string, depth, threads int) {
	cfg := engine.DefaultConfig()
	cfg.Threads = threads
	e := engine.New(cfg)
	board := mustBoard(b, fen)
	lim := engine.Limits{Depth: depth, Infinite: true}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		e.NewGame()
		e.Search(context.Background(), board, lim)
	}
}

func BenchmarkSearch_Initial_D6(b *testing.B) {
	benchSearch(b, notation.FENStartPos, 6, 1)
}

func BenchmarkSearch_Kiwipete_D5(b *testing.B) {
	benchSearch(b, kiwipete, 5, 1)
}

func BenchmarkSearch_Kiwipete_D5_4Threads(b *testing.B) {
	benchSearch(b, kiwipete, 5, 4)
}
