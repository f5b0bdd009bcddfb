package goosemg_test

import (
	"errors"
	"testing"

	gm "chess-core/goosemg"
	"chess-core/notation"
)

func TestNewBoardRejectsInvalidSetups(t *testing.T) {
	tests := []struct {
		name string
		fen  string
	}{
		{"no black king", "8/8/8/8/8/8/8/4K3 w - - 0 1"},
		{"two white kings", "4k3/8/8/8/8/8/8/3KK3 w - - 0 1"},
		{"pawn on eighth rank", "P3k3/8/8/8/8/8/8/4K3 w - - 0 1"},
		{"pawn on first rank", "4k3/8/8/8/8/8/8/p3K3 w - - 0 1"},
		{"nine pawns", "4k3/8/8/8/PPPPPPPP/P7/8/4K3 w - - 0 1"},
		{"castling without rook", "4k3/8/8/8/8/8/8/4K3 w K - 0 1"},
		{"castling with king moved", "4k3/8/8/8/8/8/8/3K3R w K - 0 1"},
		{"en passant without pawn", "4k3/8/8/8/8/8/8/4K3 w - e6 0 1"},
		{"en passant on wrong rank", "4k3/8/8/3pP3/8/8/8/4K3 w - d5 0 1"},
		{"side not to move in check", "4k3/8/8/8/8/8/8/4R1K1 w - - 0 1"},
		{"fullmove zero", "4k3/8/8/8/8/8/8/4K3 w - - 0 0"},
		{"negative halfmove", "4k3/8/8/8/8/8/8/4K3 w - - -1 1"},
		{"truncated fen", "4k3/8/8/8 w - -"},
		{"bad piece letter", "4k3/8/8/8/8/8/8/4K2X w - - 0 1"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b, err := notation.BoardFromFEN(tc.fen)
			if !errors.Is(err, gm.ErrInvalidPosition) {
				t.Fatalf("got %v, want ErrInvalidPosition", err)
			}
			if b != nil {
				t.Fatalf("board returned alongside error")
			}
		})
	}
}

func TestSetupRoundTrip(t *testing.T) {
	for _, fen := range []string{notation.FENStartPos, kiwipeteFEN, pos4FEN, pos5FEN, "k7/8/8/3pP3/8/8/8/7K w - d6 0 2"} {
		b := mustBoard(t, fen)
		c, err := gm.NewBoard(b.Setup())
		if err != nil {
			t.Fatalf("%s: %v", fen, err)
		}
		if c.Hash() != b.Hash() || c.Setup() != b.Setup() {
			t.Fatalf("%s: rebuilt board differs", fen)
		}
	}
}

func TestStartingSetupMatchesFEN(t *testing.T) {
	b := gm.NewStartingBoard()
	if got := notation.FEN(b); got != notation.FENStartPos {
		t.Fatalf("got %s", got)
	}
	if b.Hash() != mustBoard(t, notation.FENStartPos).Hash() {
		t.Fatalf("starting position keys differ")
	}
}

// Positions that differ only in side to move, castling rights or en passant
// file must have different keys.
func TestZobristDistinguishesState(t *testing.T) {
	keys := map[uint64]string{}
	for _, fen := range []string{
		"r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1",
		"r3k2r/8/8/8/8/8/8/R3K2R b KQkq - 0 1",
		"r3k2r/8/8/8/8/8/8/R3K2R w Kkq - 0 1",
		"r3k2r/8/8/8/8/8/8/R3K2R w - - 0 1",
		"k7/8/8/3pP3/8/8/8/7K w - d6 0 2",
		"k7/8/8/3pP3/8/8/8/7K w - - 0 2",
	} {
		k := mustBoard(t, fen).Hash()
		if prev, dup := keys[k]; dup {
			t.Fatalf("%s and %s share key %#x", prev, fen, k)
		}
		keys[k] = fen
	}
}

func TestCloneIsIndependent(t *testing.T) {
	b := gm.NewStartingBoard()
	c := b.Clone()
	if err := notation.PlayMoves(c, "e2e4"); err != nil {
		t.Fatal(err)
	}
	if b.Hash() == c.Hash() || len(b.History()) != 0 {
		t.Fatalf("moving the clone changed the original")
	}
}
