package goosemg_test

import (
	"errors"
	"testing"

	gm "chess-core/goosemg"
	"chess-core/notation"
)

// Every legal move of each position must make and unmake back to the exact
// same setup and fingerprint, two plies deep.
func TestMakeUnmakeRoundTrip(t *testing.T) {
	fens := []string{
		notation.FENStartPos,
		kiwipeteFEN,
		pos3FEN,
		pos4FEN,
		pos5FEN,
		"k7/8/8/3pP3/8/8/8/7K w - d6 0 2",
		"r3k2r/1P6/8/8/8/8/6p1/R3K2R b KQkq - 0 1",
	}
	for _, fen := range fens {
		b := mustBoard(t, fen)
		startSetup := b.Setup()
		startKey := b.Hash()
		for _, m := range b.GenerateLegalMoves() {
			ok, st := b.MakeMove(m)
			if !ok {
				t.Fatalf("%s: legal move %v rejected", fen, m)
			}
			if err := b.Validate(); err != nil {
				t.Fatalf("%s: after %v: %v", fen, m, err)
			}
			for _, reply := range b.GenerateLegalMoves() {
				ok, st2 := b.MakeMove(reply)
				if !ok {
					t.Fatalf("%s: reply %v rejected", fen, reply)
				}
				if b.Hash() != b.ComputeZobrist() {
					t.Fatalf("%s: %v %v: incremental key drifted", fen, m, reply)
				}
				b.UnmakeMove(st2)
			}
			b.UnmakeMove(st)
			if b.Setup() != startSetup {
				t.Fatalf("%s: setup mismatch after unmake of %v", fen, m)
			}
			if b.Hash() != startKey {
				t.Fatalf("%s: zobrist mismatch after unmake of %v", fen, m)
			}
		}
	}
}

func TestMakeUnmake_Castling(t *testing.T) {
	b := mustBoard(t, "4k3/8/8/8/8/8/8/4K2R w K - 0 1")
	m, err := notation.ParseMove(b, "e1g1")
	if err != nil {
		t.Fatal(err)
	}
	if !m.IsCastle() {
		t.Fatalf("e1g1 should be a castle, got flags %d", m.Flags())
	}
	u, err := b.Apply(m)
	if err != nil {
		t.Fatal(err)
	}
	if got := b.PieceAt(gm.F1); got != gm.WhiteRook {
		t.Fatalf("expected rook on f1 after castling, got %v", got)
	}
	if b.CastlingRights() != gm.CastlingNone {
		t.Fatalf("castling rights should be cleared, got %#x", b.CastlingRights())
	}
	b.Undo(u)
	if got := b.PieceAt(gm.H1); got != gm.WhiteRook {
		t.Fatalf("expected rook back on h1, got %v", got)
	}
}

func TestMakeUnmake_EnPassant(t *testing.T) {
	b := mustBoard(t, "k7/8/8/3pP3/8/8/8/7K w - d6 0 2")
	m, err := notation.ParseMove(b, "e5d6")
	if err != nil {
		t.Fatal(err)
	}
	if !m.IsEnPassant() || m.CapturedPiece() != gm.BlackPawn {
		t.Fatalf("e5d6 should be an en passant capture, got %v flags %d", m, m.Flags())
	}
	u, err := b.Apply(m)
	if err != nil {
		t.Fatal(err)
	}
	d5, _ := notation.ParseSquare("d5")
	if b.PieceAt(d5) != gm.NoPiece {
		t.Fatalf("captured pawn still on d5")
	}
	b.Undo(u)
	if b.PieceAt(d5) != gm.BlackPawn {
		t.Fatalf("captured pawn not restored")
	}
}

func TestDoublePushSetsEnPassant(t *testing.T) {
	b := gm.NewStartingBoard()
	if err := notation.PlayMoves(b, "e2e4"); err != nil {
		t.Fatal(err)
	}
	if got := b.EnPassantSquare().String(); got != "e3" {
		t.Fatalf("en passant square: got %s want e3", got)
	}
	if err := notation.PlayMoves(b, "g8f6"); err != nil {
		t.Fatal(err)
	}
	if b.EnPassantSquare() != gm.NoSquare {
		t.Fatalf("en passant square should clear after a reply")
	}
}

func TestApplyIllegalMoveLeavesBoard(t *testing.T) {
	b := gm.NewStartingBoard()
	before := b.Setup()
	// e2e5 is not a pawn move at all.
	e2, _ := notation.ParseSquare("e2")
	e5, _ := notation.ParseSquare("e5")
	bogus := gm.NewMove(e2, e5, gm.WhitePawn, gm.NoPiece, gm.NoPiece, gm.FlagNone)
	if _, err := b.Apply(bogus); !errors.Is(err, gm.ErrIllegalMove) {
		t.Fatalf("expected ErrIllegalMove, got %v", err)
	}
	if b.Setup() != before {
		t.Fatalf("board modified by rejected move")
	}

	// A pinned piece may not move.
	p := mustBoard(t, "4k3/4r3/8/8/8/8/4N3/4K3 w - - 0 1")
	if _, err := notation.ParseMove(p, "e2c3"); !errors.Is(err, gm.ErrIllegalMove) {
		t.Fatalf("pinned knight move: expected ErrIllegalMove, got %v", err)
	}
}

func TestCastlingThroughAttackIsIllegal(t *testing.T) {
	// The rook on f8 covers f1, so short castling is off; long castling is fine.
	b := mustBoard(t, "5rk1/8/8/8/8/8/8/R3K2R w KQ - 0 1")
	if _, err := notation.ParseMove(b, "e1g1"); !errors.Is(err, gm.ErrIllegalMove) {
		t.Fatalf("castling through f1: expected ErrIllegalMove, got %v", err)
	}
	if _, err := notation.ParseMove(b, "e1c1"); err != nil {
		t.Fatalf("long castling should be legal: %v", err)
	}
	// In check: no castling at all.
	c := mustBoard(t, "4r1k1/8/8/8/8/8/8/R3K2R w KQ - 0 1")
	for _, m := range c.GenerateLegalMoves() {
		if m.IsCastle() {
			t.Fatalf("castled out of check with %v", m)
		}
	}
}

func TestPromotionGeneratesAllPieces(t *testing.T) {
	b := mustBoard(t, "1n5k/P7/8/8/8/8/8/7K w - - 0 1")
	seen := map[gm.PieceType]int{}
	for _, m := range b.GenerateLegalMoves() {
		if m.IsPromotion() {
			seen[m.PromotionPieceType()]++
		}
	}
	for _, pt := range []gm.PieceType{gm.PieceTypeQueen, gm.PieceTypeRook, gm.PieceTypeBishop, gm.PieceTypeKnight} {
		// a7a8 and a7xb8
		if seen[pt] != 2 {
			t.Fatalf("promotion to %d: got %d moves want 2", pt, seen[pt])
		}
	}
}

func TestNeverCapturesKing(t *testing.T) {
	for _, fen := range []string{kiwipeteFEN, pos4FEN, "4k3/8/8/8/8/8/8/R3K3 w - - 0 1"} {
		b := mustBoard(t, fen)
		for _, m := range b.GeneratePseudoMovesInto(nil) {
			if m.CapturedPiece().Type() == gm.PieceTypeKing {
				t.Fatalf("%s: generated king capture %v", fen, m)
			}
		}
	}
}

func TestNullMoveRoundTrip(t *testing.T) {
	b := mustBoard(t, "k7/8/8/3pP3/8/8/8/7K w - d6 0 2")
	before := b.Setup()
	key := b.Hash()
	st := b.MakeNullMove()
	if b.SideToMove() != gm.Black || b.EnPassantSquare() != gm.NoSquare {
		t.Fatalf("null move should pass the turn and clear en passant")
	}
	if b.Hash() != b.ComputeZobrist() {
		t.Fatalf("null move key drifted")
	}
	b.UnmakeNullMove(st)
	if b.Setup() != before || b.Hash() != key {
		t.Fatalf("null move not undone exactly")
	}
}

func TestGivesCheck(t *testing.T) {
	b := mustBoard(t, "4k3/8/8/8/8/8/8/R3K2R w KQ - 0 1")
	for _, m := range b.GenerateLegalMoves() {
		ok, st := b.MakeMove(m)
		if !ok {
			t.Fatalf("legal move %v rejected", m)
		}
		inCheck := b.InCheck(gm.Black)
		b.UnmakeMove(st)
		if got := b.GivesCheck(m); got != inCheck {
			t.Fatalf("GivesCheck(%v): got %v want %v", m, got, inCheck)
		}
	}
}

func TestRepetitionNotMatchedAcrossNullMove(t *testing.T) {
	b := mustBoard(t, "7k/8/8/8/8/8/8/K7 w - - 0 1")
	start := b.Hash()
	b.MakeNullMove()
	// Black triangulates while White steps out and back.
	if err := notation.PlayMoves(b, "h8g8", "a1b1", "g8g7", "b1a1", "g7h8"); err != nil {
		t.Fatal(err)
	}
	if b.Hash() != start {
		t.Fatalf("expected the position from before the null move")
	}
	if got := b.RepetitionCount(); got != 0 {
		t.Fatalf("repetition matched across a null move: %d", got)
	}
	if err := notation.PlayMoves(b, "a1b1", "h8g8", "b1a1", "g8h8"); err != nil {
		t.Fatal(err)
	}
	if got := b.RepetitionCount(); got != 1 {
		t.Fatalf("repetition after the null move: got %d want 1", got)
	}
}
